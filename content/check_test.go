package content

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dimafomin/chef-site-backend/models"
)

func TestCheck_ReportsRecoveredProblems(t *testing.T) {
	fsys := fstest.MapFS{
		"en/blog/clean.mdx":    {Data: []byte("---\ntitle: Clean\ndate: 2026-01-01\ncategory: Products\n---\n")},
		"en/blog/bare.mdx":     {Data: []byte("no metadata")},
		"en/blog/broken.mdx":   {Data: []byte("---\ntitle: [\n---\n")},
		"en/blog/open.mdx":     {Data: []byte("---\ntitle: Open\n")},
		"en/blog/odd.mdx":      {Data: []byte("---\ntitle: Odd\ndate: 2026-01-01\ncategory: Baking\nlevel: expert\n---\n")},
		"en/blog/untitled.mdx": {Data: []byte("---\ndate: 2026-01-01\n---\n")},
	}
	store := NewStore(fsys)

	issues, err := store.Check(context.Background(), models.LocaleEN)
	require.NoError(t, err)

	got := map[string][]string{}
	for _, i := range issues {
		got[i.Slug] = append(got[i.Slug], i.Problem)
	}
	require.NotContains(t, got, "clean")
	require.Equal(t, []string{"no metadata block"}, got["bare"])
	require.Len(t, got["broken"], 1)
	require.Equal(t, []string{"metadata block is not closed"}, got["open"])
	require.Equal(t, []string{"category Baking is not in the registry", "unknown level expert"}, got["odd"])
	require.Equal(t, []string{"missing title"}, got["untitled"])
}
