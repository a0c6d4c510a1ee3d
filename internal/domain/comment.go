package domain

import "time"

// Comment is a user-authored note on a ticket. A comment carries text,
// attachments, or both; once stored it is never edited or deleted.
type Comment struct {
	ID          string
	TicketID    string
	AuthorID    string
	Content     string
	Attachments []Attachment
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Attachment stores uploaded file metadata referenced by comments.
type Attachment struct {
	ID           string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	URL          string
	CreatedAt    time.Time
}
