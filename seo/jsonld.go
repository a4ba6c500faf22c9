package seo

import (
	"github.com/dimafomin/chef-site-backend/models"
)

const schemaContext = "https://schema.org"

type Person struct {
	Context     string   `json:"@context,omitempty"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	JobTitle    string   `json:"jobTitle,omitempty"`
	Description string   `json:"description,omitempty"`
	SameAs      []string `json:"sameAs,omitempty"`
}

type Blog struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	InLanguage  string `json:"inLanguage"`
	Author      Person `json:"author"`
}

type BlogPosting struct {
	Context          string   `json:"@context"`
	Type             string   `json:"@type"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description,omitempty"`
	DatePublished    string   `json:"datePublished"`
	URL              string   `json:"url"`
	MainEntityOfPage string   `json:"mainEntityOfPage"`
	Image            string   `json:"image"`
	InLanguage       string   `json:"inLanguage"`
	ArticleSection   string   `json:"articleSection,omitempty"`
	Author           Person   `json:"author"`
	WorkTranslation  []string `json:"workTranslation,omitempty"`
}

// Person describes the site author.
func (g Generator) Person() Person {
	return Person{
		Context:     schemaContext,
		Type:        "Person",
		Name:        g.site.Author,
		URL:         g.urls.Origin(),
		JobTitle:    g.site.JobTitle,
		Description: g.site.PersonDescription,
		SameAs:      g.site.SameAs,
	}
}

func (g Generator) author() Person {
	p := g.Person()
	p.Context = ""
	return p
}

// Blog describes the blog index of a locale.
func (g Generator) Blog(locale models.Locale, description string) Blog {
	return Blog{
		Context:     schemaContext,
		Type:        "Blog",
		Name:        g.site.Author + " Blog",
		Description: description,
		URL:         g.urls.URL(locale, models.BlogPage.Path),
		InLanguage:  locale.Tag().String(),
		Author:      g.author(),
	}
}

// BlogPosting describes one post. Translations point at the same slug in the
// other available locales.
func (g Generator) BlogPosting(post models.PostSummary, available []models.Locale) BlogPosting {
	path := models.BlogPostPath(post.Slug)
	url := g.urls.URL(post.Locale, path)
	image := post.CoverImage
	if image == "" {
		image = g.site.DefaultImage
	}

	var translations []string
	for _, l := range models.SortLocales(available) {
		if l != post.Locale {
			translations = append(translations, g.urls.URL(l, path))
		}
	}

	return BlogPosting{
		Context:          schemaContext,
		Type:             "BlogPosting",
		Headline:         post.Title,
		Description:      post.Excerpt,
		DatePublished:    post.EffectiveDate(),
		URL:              url,
		MainEntityOfPage: url,
		Image:            g.urls.Absolute(image),
		InLanguage:       post.Locale.Tag().String(),
		ArticleSection:   post.Category,
		Author:           g.author(),
		WorkTranslation:  translations,
	}
}
