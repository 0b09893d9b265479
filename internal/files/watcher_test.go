package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		op       fsnotify.Op
		want     ChangeKind
		relevant bool
	}{
		{fsnotify.Write, ChangeModified, true},
		{fsnotify.Create, ChangeModified, true},
		{fsnotify.Remove, ChangeRemoved, true},
		{fsnotify.Rename, ChangeRemoved, true},
		{fsnotify.Chmod, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			kind, relevant := classify(tt.op)
			assert.Equal(t, tt.want, kind)
			assert.Equal(t, tt.relevant, relevant)
		})
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selected1.csv")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan ChangeKind, 8)
	started := make(chan struct{})
	done := make(chan error, 1)

	w := NewWatcher(path, 50*time.Millisecond, nil)
	go func() {
		close(started)
		done <- w.Run(ctx, func(_ context.Context, kind ChangeKind) {
			changes <- kind
		})
	}()
	<-started
	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	}

	select {
	case kind := <-changes:
		assert.Equal(t, ChangeModified, kind)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "data.csv"), 0, nil)
	err := w.Run(context.Background(), func(context.Context, ChangeKind) {})
	assert.Error(t, err)
}
