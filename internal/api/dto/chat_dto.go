package dto

import "github.com/spec-kit/tracker-service/internal/domain"

// Chat responses pass the GraphQL backend's entities through unchanged;
// only the request payloads are defined here.

// CreateRoomRequest payload.
type CreateRoomRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	RoomType    domain.ChatRoomType `json:"roomType"`
	IsPrivate   bool                `json:"isPrivate"`
}

// JoinRoomRequest payload; role defaults to member.
type JoinRoomRequest struct {
	Role domain.ParticipantRole `json:"role"`
}

// SendMessageRequest payload.
type SendMessageRequest struct {
	Content     string                 `json:"content"`
	MessageType domain.ChatMessageType `json:"messageType"`
	ReplyToID   *string                `json:"replyToId"`
}

// EditMessageRequest payload.
type EditMessageRequest struct {
	Content string `json:"content"`
}
