package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tracker-service/internal/config"
)

func TestLocalFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalFileStore(config.UploadConfig{Dir: dir, BaseURL: "/uploads/"})
	require.NoError(t, err)

	data := []byte("hello world")
	attachment, err := store.Store("report.pdf", "application/pdf", data)
	require.NoError(t, err)

	require.Equal(t, "report.pdf", attachment.OriginalName)
	require.Equal(t, "application/pdf", attachment.MimeType)
	require.Equal(t, int64(len(data)), attachment.Size)
	require.True(t, strings.HasSuffix(attachment.Filename, ".pdf"))
	require.Equal(t, "/uploads/"+attachment.Filename, attachment.URL)
	require.True(t, strings.HasPrefix(attachment.ID, "att-"))

	written, err := os.ReadFile(filepath.Join(dir, attachment.Filename))
	require.NoError(t, err)
	require.Equal(t, data, written)
}

func TestLocalFileStoreUniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalFileStore(config.UploadConfig{Dir: dir, BaseURL: "/uploads"})
	require.NoError(t, err)

	first, err := store.Store("a.txt", "text/plain", []byte("one"))
	require.NoError(t, err)
	second, err := store.Store("a.txt", "text/plain", []byte("two"))
	require.NoError(t, err)
	require.NotEqual(t, first.Filename, second.Filename)
}
