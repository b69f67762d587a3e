package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/events"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
	"github.com/pixalara/placement-service/internal/validator"
)

type chatService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	validator      *validator.Validator
	logger         *slog.Logger
}

// NewChatService creates the mentor-student messaging service.
func NewChatService(repo repositories.Repository, publisher events.EventPublisher, v *validator.Validator, logger *slog.Logger) ChatService {
	return &chatService{
		repo:           repo,
		eventPublisher: publisher,
		validator:      v,
		logger:         logger,
	}
}

// OpenChat returns the actor's conversation with the counterpart, creating
// it on first contact. Students open chats with mentors and vice versa;
// no other pairing exists.
func (s *chatService) OpenChat(ctx context.Context, actor Actor, counterpartUID string) (*models.Chat, error) {
	switch actor.Role {
	case models.RoleStudent:
		mentor, err := s.repo.Mentor().GetByUID(ctx, counterpartUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, fmt.Errorf("failed to get mentor %s: %w", counterpartUID, err)
		}
		return s.repo.Chat().GetOrCreate(ctx, actor.UID, actor.Name, mentor.UID, mentor.Name)

	case models.RoleMentor:
		student, err := s.repo.Student().GetByUID(ctx, counterpartUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, fmt.Errorf("failed to get student %s: %w", counterpartUID, err)
		}
		return s.repo.Chat().GetOrCreate(ctx, student.UID, student.Name, actor.UID, actor.Name)

	default:
		return nil, ErrForbidden
	}
}

func (s *chatService) ListChats(ctx context.Context, actor Actor) ([]*models.Chat, error) {
	switch actor.Role {
	case models.RoleStudent:
		return s.repo.Chat().ListByStudent(ctx, actor.UID)
	case models.RoleMentor:
		return s.repo.Chat().ListByMentor(ctx, actor.UID)
	default:
		return nil, ErrForbidden
	}
}

func (s *chatService) SendMessage(ctx context.Context, actor Actor, req *SendMessageRequest) (*models.ChatMessage, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	chat, err := s.getParticipantChat(ctx, actor, req.ChatID)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ChatID:     chat.ID,
		SenderID:   actor.UID,
		SenderName: actor.Name,
		Text:       req.Text,
	}

	if err := s.repo.Chat().AppendMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	receiverID := chat.MentorID
	if actor.UID == chat.MentorID {
		receiverID = chat.StudentID
	}

	event := events.NewEvent(events.EventMessageSent, events.MessageSentEvent{
		ChatID:     chat.ID,
		SenderID:   actor.UID,
		ReceiverID: receiverID,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish message event", "chat_id", chat.ID, "error", err)
	}

	return message, nil
}

// GetMessages pages through a conversation and clears the actor's unread
// flag, since fetching the page is what renders the messages.
func (s *chatService) GetMessages(ctx context.Context, actor Actor, chatID string, page, pageSize int) (*MessageListResponse, error) {
	chat, err := s.getParticipantChat(ctx, actor, chatID)
	if err != nil {
		return nil, err
	}

	page, pageSize = normalizePage(page, pageSize)

	filters := repositories.MessageFilters{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	messages, total, err := s.repo.Chat().ListMessages(ctx, chat.ID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	if err := s.repo.Chat().MarkRead(ctx, chat.ID, actor.Role); err != nil {
		s.logger.Warn("failed to mark chat read", "chat_id", chat.ID, "error", err)
	}

	return &MessageListResponse{
		Messages:   messages,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// UnreadCount counts the actor's conversations with unread messages.
func (s *chatService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	switch actor.Role {
	case models.RoleStudent, models.RoleMentor:
		count, err := s.repo.Chat().CountUnread(ctx, actor.UID, actor.Role)
		if err != nil {
			return 0, fmt.Errorf("failed to count unread chats: %w", err)
		}
		return count, nil
	default:
		return 0, ErrForbidden
	}
}

// getParticipantChat loads a chat and enforces that the actor is one of
// its two participants. Admins get read access through their own console,
// not through the chat endpoints.
func (s *chatService) getParticipantChat(ctx context.Context, actor Actor, chatID string) (*models.Chat, error) {
	chat, err := s.repo.Chat().GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat %s: %w", chatID, err)
	}

	if actor.UID != chat.StudentID && actor.UID != chat.MentorID {
		return nil, ErrNotParticipant
	}

	return chat, nil
}
