package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	assert.NoError(t, err)

	ctx := context.Background()
	path, err := store.Save(ctx, "attendance", "bukti.jpg", strings.NewReader("jpeg-bytes"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "attendance"+string(os.PathSeparator)))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	data, err := os.ReadFile(filepath.Join(root, path))
	assert.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	assert.NoError(t, store.Remove(ctx, path))
	_, err = os.Stat(filepath.Join(root, path))
	assert.True(t, os.IsNotExist(err))

	// Menghapus berkas yang sudah tidak ada bukan error.
	assert.NoError(t, store.Remove(ctx, path))
}

type fakeChecker struct {
	referenced map[string]bool
}

func (f *fakeChecker) IsFileReferenced(ctx context.Context, path string) (bool, error) {
	return f.referenced[path], nil
}

func TestSweepOrphans(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	assert.NoError(t, err)

	ctx := context.Background()
	kept, err := store.Save(ctx, "attendance", "kept.jpg", strings.NewReader("a"))
	assert.NoError(t, err)
	orphan, err := store.Save(ctx, "attendance", "orphan.jpg", strings.NewReader("b"))
	assert.NoError(t, err)
	fresh, err := store.Save(ctx, "leave", "fresh.pdf", strings.NewReader("c"))
	assert.NoError(t, err)

	// Mundurkan mtime dua berkas pertama agar melewati cutoff.
	old := time.Now().Add(-48 * time.Hour)
	assert.NoError(t, os.Chtimes(filepath.Join(root, kept), old, old))
	assert.NoError(t, os.Chtimes(filepath.Join(root, orphan), old, old))

	checker := &fakeChecker{referenced: map[string]bool{kept: true}}
	removed, err := SweepOrphans(ctx, root, 24*time.Hour, []ReferenceChecker{checker}, zap.NewNop())
	assert.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(filepath.Join(root, kept))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, orphan))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, fresh))
	assert.NoError(t, err)
}
