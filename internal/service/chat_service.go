package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/tracker-service/internal/domain"
	"github.com/spec-kit/tracker-service/internal/graphql"
	"github.com/spec-kit/tracker-service/internal/presence"
	"github.com/spec-kit/tracker-service/pkg/util"
)

// ChatService fronts the external GraphQL backend that owns chat rooms and
// messages. Every operation is a named query or mutation with variables;
// the backend's schema is not modeled here beyond the result shapes.
type ChatService struct {
	gql      *graphql.Client
	presence *presence.Tracker
}

// NewChatService constructs the service. A nil GraphQL client means the
// chat subsystem is disabled; operations then fail with a configuration
// error at the boundary.
func NewChatService(gql *graphql.Client, tracker *presence.Tracker) *ChatService {
	return &ChatService{gql: gql, presence: tracker}
}

// CreateRoomInput describes room creation payload.
type CreateRoomInput struct {
	Name        string
	Description string
	RoomType    domain.ChatRoomType
	IsPrivate   bool
	CreatedBy   string
}

// ListRooms returns the rooms the user participates in, most recently
// active first.
func (s *ChatService) ListRooms(ctx context.Context, userID string) ([]domain.ChatRoom, error) {
	if userID == "" {
		return nil, util.NewValidationError("userId required", nil)
	}
	const query = `
      query GetChatRooms($userId: uuid!) {
        chat_rooms(
          where: {participants: {user_id: {_eq: $userId}}}
          order_by: {updated_at: desc}
        ) {
          id name description room_type is_private created_at updated_at created_by participant_count
          participants { user_id joined_at role user { id name email avatar } }
          last_message: messages(limit: 1, order_by: {created_at: desc}) {
            id content created_at user { id name avatar }
          }
        }
      }`
	var result struct {
		ChatRooms []domain.ChatRoom `json:"chat_rooms"`
	}
	if err := s.gql.Execute(ctx, query, map[string]any{"userId": userID}, &result); err != nil {
		return nil, err
	}
	s.presence.Touch(ctx, userID)
	return result.ChatRooms, nil
}

// CreateRoom inserts a room and joins the creator as admin.
func (s *ChatService) CreateRoom(ctx context.Context, input CreateRoomInput) (*domain.ChatRoom, error) {
	if strings.TrimSpace(input.Name) == "" || input.CreatedBy == "" {
		return nil, util.NewValidationError("name and created_by required", nil)
	}
	roomType := input.RoomType
	if roomType == "" {
		roomType = domain.RoomTypeGroup
	}

	const mutation = `
      mutation CreateChatRoom($room: chat_rooms_insert_input!) {
        insert_chat_rooms_one(object: $room) {
          id name description room_type is_private created_at updated_at created_by
        }
      }`
	var created struct {
		Room *domain.ChatRoom `json:"insert_chat_rooms_one"`
	}
	room := map[string]any{
		"name":        strings.TrimSpace(input.Name),
		"description": input.Description,
		"room_type":   string(roomType),
		"is_private":  input.IsPrivate,
		"created_by":  input.CreatedBy,
	}
	if err := s.gql.Execute(ctx, mutation, map[string]any{"room": room}, &created); err != nil {
		return nil, err
	}
	if created.Room == nil {
		return nil, util.NewInternalError(nil)
	}

	if err := s.addParticipant(ctx, created.Room.ID, input.CreatedBy, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return created.Room, nil
}

// GetRoom fetches a room with participants and recent messages. Private
// rooms are only visible to participants.
func (s *ChatService) GetRoom(ctx context.Context, roomID, userID string) (*domain.ChatRoom, error) {
	const query = `
      query GetChatRoom($roomId: uuid!) {
        chat_rooms_by_pk(id: $roomId) {
          id name description room_type is_private created_at updated_at created_by participant_count
          participants { user_id joined_at role user { id name email avatar } }
          messages(limit: 50, order_by: {created_at: asc}) {
            id room_id user_id content message_type created_at updated_at edited_at reply_to_id
            user { id name avatar }
          }
        }
      }`
	var result struct {
		Room *domain.ChatRoom `json:"chat_rooms_by_pk"`
	}
	if err := s.gql.Execute(ctx, query, map[string]any{"roomId": roomID}, &result); err != nil {
		return nil, err
	}
	if result.Room == nil {
		return nil, util.NewNotFound("room", map[string]any{"id": roomID})
	}
	if result.Room.IsPrivate && !isParticipant(result.Room.Participants, userID) {
		return nil, util.NewForbidden("not a participant of this room")
	}
	return result.Room, nil
}

// JoinRoom adds the user as a member.
func (s *ChatService) JoinRoom(ctx context.Context, roomID, userID string, role domain.ParticipantRole) error {
	if userID == "" {
		return util.NewValidationError("userId required", nil)
	}
	if role == "" {
		role = domain.RoleMember
	}
	return s.addParticipant(ctx, roomID, userID, role)
}

// LeaveRoom removes the user's membership.
func (s *ChatService) LeaveRoom(ctx context.Context, roomID, userID string) error {
	if userID == "" {
		return util.NewValidationError("userId required", nil)
	}
	const mutation = `
      mutation LeaveChatRoom($roomId: uuid!, $userId: uuid!) {
        delete_chat_room_participants(
          where: {room_id: {_eq: $roomId}, user_id: {_eq: $userId}}
        ) { affected_rows }
      }`
	var result struct {
		Deleted struct {
			AffectedRows int `json:"affected_rows"`
		} `json:"delete_chat_room_participants"`
	}
	if err := s.gql.Execute(ctx, mutation, map[string]any{"roomId": roomID, "userId": userID}, &result); err != nil {
		return err
	}
	if result.Deleted.AffectedRows == 0 {
		return util.NewNotFound("participant", map[string]any{"room_id": roomID, "user_id": userID})
	}
	return nil
}

// ListMessages returns one page of a room's messages. Paging walks
// backwards from the newest message; each page is returned in
// chronological order.
func (s *ChatService) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]domain.ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
      query GetChatMessages($roomId: uuid!, $limit: Int!, $offset: Int!) {
        chat_messages(
          where: {room_id: {_eq: $roomId}}
          order_by: {created_at: desc}
          limit: $limit
          offset: $offset
        ) {
          id room_id user_id content message_type created_at updated_at edited_at reply_to_id
          user { id name avatar }
          reply_to { id content user { id name } }
        }
      }`
	var result struct {
		Messages []domain.ChatMessage `json:"chat_messages"`
	}
	vars := map[string]any{"roomId": roomID, "limit": limit, "offset": offset}
	if err := s.gql.Execute(ctx, query, vars, &result); err != nil {
		return nil, err
	}
	messages := result.Messages
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// SendMessage posts a message to a room on behalf of userID.
func (s *ChatService) SendMessage(ctx context.Context, roomID, userID, content string, messageType domain.ChatMessageType, replyToID *string) (*domain.ChatMessage, error) {
	if userID == "" {
		return nil, util.NewUnauthorized("user identity required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, util.NewValidationError("message content required", nil)
	}
	if messageType == "" {
		messageType = domain.MessageTypeText
	}
	if err := s.requireParticipant(ctx, roomID, userID); err != nil {
		return nil, err
	}

	const mutation = `
      mutation SendChatMessage($message: chat_messages_insert_input!) {
        insert_chat_messages_one(object: $message) {
          id room_id user_id content message_type created_at reply_to_id
          user { id name avatar }
        }
      }`
	message := map[string]any{
		"room_id":      roomID,
		"user_id":      userID,
		"content":      content,
		"message_type": string(messageType),
	}
	if replyToID != nil {
		message["reply_to_id"] = *replyToID
	}
	var result struct {
		Message *domain.ChatMessage `json:"insert_chat_messages_one"`
	}
	if err := s.gql.Execute(ctx, mutation, map[string]any{"message": message}, &result); err != nil {
		return nil, err
	}
	if result.Message == nil {
		return nil, util.NewInternalError(nil)
	}
	// room recency drives the rooms list ordering; the message itself is
	// already committed, so a failed bump is not surfaced
	_ = s.touchRoom(ctx, roomID)
	s.presence.Touch(ctx, userID)
	return result.Message, nil
}

// requireParticipant rejects posts from users who are not members of the
// room.
func (s *ChatService) requireParticipant(ctx context.Context, roomID, userID string) error {
	const query = `
      query CheckRoomMembership($roomId: uuid!, $userId: uuid!) {
        chat_room_participants(
          where: {room_id: {_eq: $roomId}, user_id: {_eq: $userId}}
          limit: 1
        ) { user_id }
      }`
	var result struct {
		Participants []struct {
			UserID string `json:"user_id"`
		} `json:"chat_room_participants"`
	}
	if err := s.gql.Execute(ctx, query, map[string]any{"roomId": roomID, "userId": userID}, &result); err != nil {
		return err
	}
	if len(result.Participants) == 0 {
		return util.NewForbidden("not a participant of this room")
	}
	return nil
}

func (s *ChatService) touchRoom(ctx context.Context, roomID string) error {
	const mutation = `
      mutation UpdateRoomTimestamp($roomId: uuid!, $updatedAt: timestamptz!) {
        update_chat_rooms_by_pk(
          pk_columns: {id: $roomId}
          _set: {updated_at: $updatedAt}
        ) { id updated_at }
      }`
	vars := map[string]any{
		"roomId":    roomID,
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	}
	return s.gql.Execute(ctx, mutation, vars, nil)
}

// EditMessage updates a message's content. Only the author may edit.
func (s *ChatService) EditMessage(ctx context.Context, messageID, userID, content string) (*domain.ChatMessage, error) {
	if userID == "" {
		return nil, util.NewUnauthorized("user identity required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, util.NewValidationError("message content required", nil)
	}

	owner, _, err := s.messagePermissions(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, util.NewForbidden("only the author can edit this message")
	}

	const mutation = `
      mutation UpdateChatMessage($messageId: uuid!, $content: String!, $editedAt: timestamptz!) {
        update_chat_messages_by_pk(
          pk_columns: {id: $messageId}
          _set: {content: $content, edited_at: $editedAt}
        ) {
          id room_id user_id content message_type created_at updated_at edited_at
          user { id name email avatar }
        }
      }`
	vars := map[string]any{
		"messageId": messageID,
		"content":   content,
		"editedAt":  time.Now().UTC().Format(time.RFC3339),
	}
	var result struct {
		Message *domain.ChatMessage `json:"update_chat_messages_by_pk"`
	}
	if err := s.gql.Execute(ctx, mutation, vars, &result); err != nil {
		return nil, err
	}
	if result.Message == nil {
		return nil, util.NewNotFound("message", map[string]any{"id": messageID})
	}
	return result.Message, nil
}

// DeleteMessage removes a message. The author and room admins/moderators
// may delete.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID, userID string) error {
	if userID == "" {
		return util.NewUnauthorized("user identity required")
	}

	owner, moderator, err := s.messagePermissions(ctx, messageID, userID)
	if err != nil {
		return err
	}
	if !owner && !moderator {
		return util.NewForbidden("not allowed to delete this message")
	}

	const mutation = `
      mutation DeleteChatMessage($messageId: uuid!) {
        delete_chat_messages_by_pk(id: $messageId) { id }
      }`
	return s.gql.Execute(ctx, mutation, map[string]any{"messageId": messageID}, nil)
}

// messagePermissions reports whether userID authored the message and
// whether they hold an admin or moderator role in its room.
func (s *ChatService) messagePermissions(ctx context.Context, messageID, userID string) (owner, moderator bool, err error) {
	const query = `
      query CheckMessagePermissions($messageId: uuid!, $userId: uuid!) {
        chat_messages_by_pk(id: $messageId) {
          id user_id
          room {
            id
            participants(where: {user_id: {_eq: $userId}}) { role }
          }
        }
      }`
	var result struct {
		Message *struct {
			ID     string `json:"id"`
			UserID string `json:"user_id"`
			Room   struct {
				ID           string `json:"id"`
				Participants []struct {
					Role domain.ParticipantRole `json:"role"`
				} `json:"participants"`
			} `json:"room"`
		} `json:"chat_messages_by_pk"`
	}
	if err := s.gql.Execute(ctx, query, map[string]any{"messageId": messageID, "userId": userID}, &result); err != nil {
		return false, false, err
	}
	if result.Message == nil {
		return false, false, util.NewNotFound("message", map[string]any{"id": messageID})
	}
	owner = result.Message.UserID == userID
	for _, participant := range result.Message.Room.Participants {
		if participant.Role == domain.RoleAdmin || participant.Role == domain.RoleModerator {
			moderator = true
		}
	}
	return owner, moderator, nil
}

func (s *ChatService) addParticipant(ctx context.Context, roomID, userID string, role domain.ParticipantRole) error {
	const mutation = `
      mutation JoinChatRoom($participant: chat_room_participants_insert_input!) {
        insert_chat_room_participants_one(object: $participant) { room_id user_id role }
      }`
	participant := map[string]any{
		"room_id": roomID,
		"user_id": userID,
		"role":    string(role),
	}
	return s.gql.Execute(ctx, mutation, map[string]any{"participant": participant}, nil)
}

func isParticipant(participants []domain.ChatRoomParticipant, userID string) bool {
	for _, participant := range participants {
		if participant.UserID == userID {
			return true
		}
	}
	return false
}
