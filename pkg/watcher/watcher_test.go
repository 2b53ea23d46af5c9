package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_DebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	fw, err := NewFileWatcher(50*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[ ]"), 0644))
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(path)
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	fw, err := NewFileWatcher(10*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 1)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	select {
	case got := <-changed:
		t.Fatalf("unexpected notification for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFileWatcher_CloseTwice(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	fw.Start()
	assert.NoError(t, fw.Close())
	_ = fw.Close()
}
