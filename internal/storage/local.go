package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tracker-service/internal/config"
	"github.com/spec-kit/tracker-service/internal/domain"
)

// FileStore accepts uploaded file bytes and returns stable attachment
// metadata (original name, mime type, size, URL).
type FileStore interface {
	Store(originalName, mimeType string, data []byte) (domain.Attachment, error)
}

type localFileStore struct {
	dir     string
	baseURL string
}

// NewLocalFileStore writes uploads under cfg.Dir and serves them from
// cfg.BaseURL.
func NewLocalFileStore(cfg config.UploadConfig) (FileStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localFileStore{dir: cfg.Dir, baseURL: strings.TrimRight(cfg.BaseURL, "/")}, nil
}

func (s *localFileStore) Store(originalName, mimeType string, data []byte) (domain.Attachment, error) {
	now := time.Now()
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	ext := filepath.Ext(originalName)
	filename := fmt.Sprintf("%d-%s%s", now.UnixMilli(), token, ext)

	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return domain.Attachment{}, fmt.Errorf("write upload: %w", err)
	}

	return domain.Attachment{
		ID:           "att-" + token,
		Filename:     filename,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		URL:          s.baseURL + "/" + filename,
		CreatedAt:    now,
	}, nil
}
