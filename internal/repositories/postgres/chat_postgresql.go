package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

type ChatPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewChatPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ChatRepository {
	return &ChatPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

// GetOrCreate returns the conversation for a student/mentor pair,
// creating it on first contact. The unique pair index makes concurrent
// first messages converge on one row.
func (c *ChatPostgreSQL) GetOrCreate(ctx context.Context, studentID, studentName, mentorID, mentorName string) (*models.Chat, error) {
	var chat models.Chat

	err := c.db.WithContext(ctx).
		Where("student_id = ? AND mentor_id = ?", studentID, mentorID).
		First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	chat = models.Chat{
		ID:              uuid.NewString(),
		StudentID:       studentID,
		MentorID:        mentorID,
		StudentName:     studentName,
		MentorName:      mentorName,
		LastUpdated:     time.Now(),
		IsReadByMentor:  true,
		IsReadByStudent: true,
	}

	if err := c.db.WithContext(ctx).Create(&chat).Error; err != nil {
		// Lost the race; the other writer's row wins.
		var existing models.Chat
		if lookupErr := c.db.WithContext(ctx).
			Where("student_id = ? AND mentor_id = ?", studentID, mentorID).
			First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	cache.InvalidateChatCache(ctx, c.cacheManager, chat.ID, studentID, mentorID)

	return &chat, nil
}

// GetByID retrieves a conversation by id.
func (c *ChatPostgreSQL) GetByID(ctx context.Context, chatID string) (*models.Chat, error) {
	var chat models.Chat
	if err := c.db.WithContext(ctx).Where("id = ?", chatID).First(&chat).Error; err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &chat, nil
}

// ListByStudent retrieves a student's conversations, most recent first.
func (c *ChatPostgreSQL) ListByStudent(ctx context.Context, studentID string) ([]*models.Chat, error) {
	return c.listByParticipant(ctx, "student_id", studentID, fmt.Sprintf("student:%s:list", studentID))
}

// ListByMentor retrieves a mentor's conversations, most recent first.
func (c *ChatPostgreSQL) ListByMentor(ctx context.Context, mentorID string) ([]*models.Chat, error) {
	return c.listByParticipant(ctx, "mentor_id", mentorID, fmt.Sprintf("mentor:%s:list", mentorID))
}

func (c *ChatPostgreSQL) listByParticipant(ctx context.Context, column, id, cacheKey string) ([]*models.Chat, error) {
	var chats []*models.Chat

	err := c.cacheManager.Chat.CacheOrExecute(ctx, cacheKey, &chats, cache.ChatCacheConfig.TTL, func() (interface{}, error) {
		var dbChats []*models.Chat
		if err := c.db.WithContext(ctx).
			Where(column+" = ?", id).
			Order("last_updated DESC").
			Find(&dbChats).Error; err != nil {
			return nil, fmt.Errorf("failed to list chats: %w", err)
		}
		return dbChats, nil
	})
	if err != nil {
		return nil, err
	}

	return chats, nil
}

// AppendMessage stores a message and refreshes the conversation's
// last-message fields atomically. The sender's own side is marked read,
// the other side unread.
func (c *ChatPostgreSQL) AppendMessage(ctx context.Context, message *models.ChatMessage) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	var chat models.Chat

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", message.ChatID).First(&chat).Error; err != nil {
			return fmt.Errorf("failed to get chat for message: %w", err)
		}

		if err := tx.Create(message).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		updates := map[string]interface{}{
			"last_message":       message.Text,
			"last_updated":       message.CreatedAt,
			"is_read_by_student": message.SenderID == chat.StudentID,
			"is_read_by_mentor":  message.SenderID == chat.MentorID,
		}

		if err := tx.Model(&models.Chat{}).Where("id = ?", chat.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update chat summary: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateChatCache(ctx, c.cacheManager, chat.ID, chat.StudentID, chat.MentorID)

	return nil
}

// ListMessages retrieves a conversation's messages in chronological order.
func (c *ChatPostgreSQL) ListMessages(ctx context.Context, chatID string, filters repositories.MessageFilters) ([]*models.ChatMessage, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.ChatMessage{}).Where("chat_id = ?", chatID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	query = query.Order("created_at ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var messages []*models.ChatMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, total, nil
}

// MarkRead clears the unread flag for the given participant role.
func (c *ChatPostgreSQL) MarkRead(ctx context.Context, chatID string, reader models.Role) error {
	var column string
	switch reader {
	case models.RoleStudent:
		column = "is_read_by_student"
	case models.RoleMentor:
		column = "is_read_by_mentor"
	default:
		return fmt.Errorf("role %s is not a chat participant", reader)
	}

	var chat models.Chat
	if err := c.db.WithContext(ctx).Where("id = ?", chatID).First(&chat).Error; err != nil {
		return fmt.Errorf("failed to get chat: %w", err)
	}

	if err := c.db.WithContext(ctx).
		Model(&models.Chat{}).
		Where("id = ?", chatID).
		Update(column, true).Error; err != nil {
		return fmt.Errorf("failed to mark chat read: %w", err)
	}

	cache.InvalidateChatCache(ctx, c.cacheManager, chatID, chat.StudentID, chat.MentorID)

	return nil
}

// CountUnread counts the participant's conversations with unread messages.
func (c *ChatPostgreSQL) CountUnread(ctx context.Context, participantID string, role models.Role) (int64, error) {
	var idColumn, readColumn string
	switch role {
	case models.RoleStudent:
		idColumn, readColumn = "student_id", "is_read_by_student"
	case models.RoleMentor:
		idColumn, readColumn = "mentor_id", "is_read_by_mentor"
	default:
		return 0, fmt.Errorf("role %s is not a chat participant", role)
	}

	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.Chat{}).
		Where(idColumn+" = ? AND "+readColumn+" = ?", participantID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread chats: %w", err)
	}

	return count, nil
}
