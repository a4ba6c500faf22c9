package content

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_InvalidatesOnChange(t *testing.T) {
	root := t.TempDir()
	blog := filepath.Join(root, "en", "blog")
	require.NoError(t, os.MkdirAll(blog, 0o755))

	var calls atomic.Int32
	w, err := NewWatcher(root, func() { calls.Add(1) }, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { require.NoError(t, w.Stop()) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(blog, "post.mdx"), []byte("---\ntitle: x\n---\n"), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), func() {}, 0)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
