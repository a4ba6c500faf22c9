package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_GFMAndHeadingIDs(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("## Rice Ratio\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~\n")
	require.NoError(t, err)
	require.Contains(t, html, `<h2 id="rice-ratio">Rice Ratio</h2>`)
	require.Contains(t, html, "<table>")
	require.Contains(t, html, "<del>old</del>")
}

func TestRender_PassesComponentsThrough(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("<ImageGallery images={[]} />\n\nText\n")
	require.NoError(t, err)
	require.Contains(t, html, "<ImageGallery")
}

func TestHeadings(t *testing.T) {
	r := NewRenderer()

	got := r.Headings("# Title\n\n## First *step*\n\ntext\n\n### Detail\n\n#### Too deep\n")
	require.Equal(t, []Heading{
		{Level: 2, ID: "first-step", Text: "First step"},
		{Level: 3, ID: "detail", Text: "Detail"},
	}, got)
}
