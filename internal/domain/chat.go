package domain

// Chat entities are owned by the external GraphQL backend; the JSON tags
// mirror its column naming so query results decode directly.

// ChatRoomType enumerates room visibility kinds.
type ChatRoomType string

const (
	RoomTypePublic  ChatRoomType = "public"
	RoomTypePrivate ChatRoomType = "private"
	RoomTypeDirect  ChatRoomType = "direct"
	RoomTypeGroup   ChatRoomType = "group"
)

// ParticipantRole enumerates membership roles within a room.
type ParticipantRole string

const (
	RoleAdmin     ParticipantRole = "admin"
	RoleModerator ParticipantRole = "moderator"
	RoleMember    ParticipantRole = "member"
)

// ChatMessageType differentiates message payload kinds.
type ChatMessageType string

const (
	MessageTypeText         ChatMessageType = "text"
	MessageTypeImage        ChatMessageType = "image"
	MessageTypeFile         ChatMessageType = "file"
	MessageTypeSystem       ChatMessageType = "system"
	MessageTypeNotification ChatMessageType = "notification"
)

// ChatUser is the backend's view of a user attached to rooms and messages.
type ChatUser struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email,omitempty"`
	Avatar   string  `json:"avatar,omitempty"`
	IsOnline bool    `json:"is_online,omitempty"`
	LastSeen *string `json:"last_seen,omitempty"`
}

// ChatRoomParticipant records a user's membership in a room.
type ChatRoomParticipant struct {
	RoomID   string          `json:"room_id,omitempty"`
	UserID   string          `json:"user_id"`
	JoinedAt string          `json:"joined_at"`
	Role     ParticipantRole `json:"role"`
	User     *ChatUser       `json:"user,omitempty"`
}

// ChatRoom is a conversation container.
type ChatRoom struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Description      string                `json:"description,omitempty"`
	RoomType         ChatRoomType          `json:"room_type"`
	IsPrivate        bool                  `json:"is_private"`
	CreatedBy        string                `json:"created_by"`
	CreatedAt        string                `json:"created_at"`
	UpdatedAt        string                `json:"updated_at"`
	ParticipantCount int                   `json:"participant_count,omitempty"`
	Participants     []ChatRoomParticipant `json:"participants,omitempty"`
	Messages         []ChatMessage         `json:"messages,omitempty"`
	LastMessage      []ChatMessage         `json:"last_message,omitempty"`
}

// ChatMessage is a single message in a room.
type ChatMessage struct {
	ID          string          `json:"id"`
	RoomID      string          `json:"room_id"`
	UserID      string          `json:"user_id"`
	Content     string          `json:"content"`
	MessageType ChatMessageType `json:"message_type"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   *string         `json:"updated_at,omitempty"`
	EditedAt    *string         `json:"edited_at,omitempty"`
	ReplyToID   *string         `json:"reply_to_id,omitempty"`
	User        *ChatUser       `json:"user,omitempty"`
	ReplyTo     *ChatMessage    `json:"reply_to,omitempty"`
}
