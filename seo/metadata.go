package seo

import (
	"github.com/dimafomin/chef-site-backend/models"
)

const (
	ogImageWidth  = 1200
	ogImageHeight = 630
)

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Alt    string `json:"alt,omitempty"`
}

type OpenGraph struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	URL           string  `json:"url"`
	SiteName      string  `json:"siteName"`
	Images        []Image `json:"images"`
	Locale        string  `json:"locale"`
	Type          string  `json:"type"`
	PublishedTime string  `json:"publishedTime,omitempty"`
}

type Twitter struct {
	Card        string   `json:"card"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
}

type GoogleBot struct {
	Index           bool   `json:"index"`
	Follow          bool   `json:"follow"`
	MaxVideoPreview int    `json:"max-video-preview"`
	MaxImagePreview string `json:"max-image-preview"`
	MaxSnippet      int    `json:"max-snippet"`
}

type Robots struct {
	Index     bool      `json:"index"`
	Follow    bool      `json:"follow"`
	GoogleBot GoogleBot `json:"googleBot"`
}

// Metadata is everything a renderer needs for a page's head.
type Metadata struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Lang        string      `json:"lang"`
	Canonical   string      `json:"canonical"`
	Alternates  []Alternate `json:"alternates"`
	OpenGraph   OpenGraph   `json:"openGraph"`
	Twitter     Twitter     `json:"twitter"`
	Robots      Robots      `json:"robots"`
}

// PageInput describes one page to generate metadata for.
type PageInput struct {
	Title       string
	Description string
	Locale      models.Locale
	Path        string
	Image       string
	// Available restricts alternates; nil means every locale.
	Available []models.Locale
	// PublishedTime marks the page as an article.
	PublishedTime string
	NoIndex       bool
}

// Generator produces page metadata for one site.
type Generator struct {
	urls URLBuilder
	site Site
}

func NewGenerator(site Site) Generator {
	return Generator{urls: NewURLBuilder(site.Origin), site: site}
}

func (g Generator) URLs() URLBuilder {
	return g.urls
}

func (g Generator) Site() Site {
	return g.site
}

// FullTitle appends the author to a page title.
func (g Generator) FullTitle(title string) string {
	if g.site.Author == "" {
		return title
	}
	return title + " | " + g.site.Author
}

func (g Generator) Page(in PageInput) Metadata {
	set := g.urls.Build(in.Path, in.Locale, in.Available)
	title := g.FullTitle(in.Title)

	image := in.Image
	if image == "" {
		image = g.site.DefaultImage
	}
	image = g.urls.Absolute(image)

	ogType := "website"
	if in.PublishedTime != "" {
		ogType = "article"
	}

	return Metadata{
		Title:       title,
		Description: in.Description,
		Lang:        in.Locale.Tag().String(),
		Canonical:   set.Canonical,
		Alternates:  set.Ordered(),
		OpenGraph: OpenGraph{
			Title:         title,
			Description:   in.Description,
			URL:           set.Canonical,
			SiteName:      g.site.Name,
			Images:        []Image{{URL: image, Width: ogImageWidth, Height: ogImageHeight, Alt: in.Title}},
			Locale:        in.Locale.OpenGraph(),
			Type:          ogType,
			PublishedTime: in.PublishedTime,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: in.Description,
			Images:      []string{image},
		},
		Robots: robots(!in.NoIndex),
	}
}

func robots(index bool) Robots {
	return Robots{
		Index:  index,
		Follow: true,
		GoogleBot: GoogleBot{
			Index:           index,
			Follow:          true,
			MaxVideoPreview: -1,
			MaxImagePreview: "large",
			MaxSnippet:      -1,
		},
	}
}

// Post builds article metadata for a blog post available in the given locales.
func (g Generator) Post(post models.PostSummary, available []models.Locale) Metadata {
	return g.Page(PageInput{
		Title:         post.Title,
		Description:   post.Excerpt,
		Locale:        post.Locale,
		Path:          models.BlogPostPath(post.Slug),
		Image:         post.CoverImage,
		Available:     available,
		PublishedTime: post.EffectiveDate(),
	})
}
