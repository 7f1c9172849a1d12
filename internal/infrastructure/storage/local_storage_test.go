package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSlipStorage_StoreAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalSlipStorage(dir, "/uploads/")
	require.NoError(t, err)

	ctx := context.Background()

	url, err := store.Store(ctx, "ORD-123-ABCD-slip.jpg", strings.NewReader("image-bytes"), 11, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/ORD-123-ABCD-slip.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "ORD-123-ABCD-slip.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Remove(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "ORD-123-ABCD-slip.jpg"))
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	require.NoError(t, store.Remove(ctx, url))
}

func TestLocalSlipStorage_SanitizesFilenames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalSlipStorage(dir, "/uploads")
	require.NoError(t, err)

	ctx := context.Background()

	url, err := store.Store(ctx, "../../etc/pass wd?.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/pass-wd-.png", url)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pass-wd-.png", entries[0].Name())
}

func TestLocalSlipStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalSlipStorage(dir, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"slip.jpg", "slip.jpg"},
		{"ORD-1756600000000-XY12-receipt.png", "ORD-1756600000000-XY12-receipt.png"},
		{"../../../evil.sh", "evil.sh"},
		{"with spaces & symbols!.jpeg", "with-spaces-symbols-.jpeg"},
		{"...", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), tt.in)
	}
}
