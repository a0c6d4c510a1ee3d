package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tracker-service/internal/api/dto"
	"github.com/spec-kit/tracker-service/internal/config"
	"github.com/spec-kit/tracker-service/internal/storage"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// UploadHandler accepts multipart file uploads and stores them for later
// attachment to comments.
type UploadHandler struct {
	files    storage.FileStore
	maxBytes int64
}

// NewUploadHandler constructs handler.
func NewUploadHandler(files storage.FileStore, cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		files:    files,
		maxBytes: int64(cfg.MaxSizeMB) * 1024 * 1024,
	}
}

// Upload POST /api/upload. Accepts one or more files under the "files"
// field and responds with stored attachment metadata.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return util.NewValidationError("multipart form required", nil)
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		fileHeaders = form.File["file"]
	}
	if len(fileHeaders) == 0 {
		return util.NewValidationError("no files provided", nil)
	}

	stored := make([]dto.AttachmentPayload, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		if h.maxBytes > 0 && header.Size > h.maxBytes {
			return util.NewValidationError("file too large", map[string]any{
				"filename":  header.Filename,
				"max_bytes": h.maxBytes,
			})
		}
		src, err := header.Open()
		if err != nil {
			return util.NewInternalError(err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return util.NewInternalError(err)
		}

		attachment, err := h.files.Store(header.Filename, header.Header.Get("Content-Type"), data)
		if err != nil {
			return util.NewInternalError(err)
		}
		stored = append(stored, dto.AttachmentPayload{
			ID:           attachment.ID,
			Filename:     attachment.Filename,
			OriginalName: attachment.OriginalName,
			MimeType:     attachment.MimeType,
			Size:         attachment.Size,
			URL:          attachment.URL,
			CreatedAt:    attachment.CreatedAt,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"files": stored})
}
