package dto

import "time"

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content     string              `json:"content"`
	AuthorID    string              `json:"authorId"`
	Attachments []AttachmentPayload `json:"attachments"`
}

// AttachmentPayload carries uploaded file metadata. On comment creation the
// client passes back the metadata returned by the upload endpoint.
type AttachmentPayload struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CommentResponse is one comment on a ticket.
type CommentResponse struct {
	ID          string              `json:"id"`
	TicketID    string              `json:"ticketId"`
	AuthorID    string              `json:"authorId"`
	Content     string              `json:"content"`
	Attachments []AttachmentPayload `json:"attachments"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   *time.Time          `json:"updatedAt,omitempty"`
}
