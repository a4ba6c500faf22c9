package models

// Level marks the content tier of a post.
type Level string

const (
	LevelNone Level = ""
	LevelBase Level = "base"
	LevelPro  Level = "pro"
)

// ParseLevel returns the level for a metadata value, or LevelNone and false
// when the value is not one of the known tiers.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelBase, LevelPro:
		return Level(s), true
	case LevelNone:
		return LevelNone, true
	}
	return LevelNone, false
}

// Default field values applied when a post's metadata omits them.
const (
	DefaultTitle    = "Untitled"
	DefaultCategory = "General"
	DateLayout      = "2006-01-02"
)

// PostSummary is the metadata-only view of a blog post used in listings.
type PostSummary struct {
	Locale      Locale `json:"locale"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	PublishedAt string `json:"publishedAt,omitempty"`
	ReadTime    string `json:"readTime,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
	Series      string `json:"series,omitempty"`
	SeriesOrder int    `json:"seriesOrder,omitempty"`
	Level       Level  `json:"level,omitempty"`
}

// EffectiveDate is PublishedAt when present, otherwise Date.
func (p PostSummary) EffectiveDate() string {
	if p.PublishedAt != "" {
		return p.PublishedAt
	}
	return p.Date
}

// Post is a full blog post including its body.
type Post struct {
	PostSummary
	Content string `json:"content"`
}
