package repositories

import (
	"context"

	"github.com/pixalara/placement-service/internal/models"
)

// ChatRepository manages mentor-student conversations. Conversation rows
// carry denormalized names and last-message fields so listings never join.
type ChatRepository interface {
	// GetOrCreate returns the conversation for a student/mentor pair,
	// creating it on first contact.
	GetOrCreate(ctx context.Context, studentID, studentName, mentorID, mentorName string) (*models.Chat, error)

	GetByID(ctx context.Context, chatID string) (*models.Chat, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Chat, error)
	ListByMentor(ctx context.Context, mentorID string) ([]*models.Chat, error)

	// AppendMessage stores a message and refreshes the conversation's
	// last-message fields and unread flags atomically.
	AppendMessage(ctx context.Context, message *models.ChatMessage) error

	ListMessages(ctx context.Context, chatID string, filters MessageFilters) ([]*models.ChatMessage, int64, error)

	// MarkRead clears the unread flag for the given participant role.
	MarkRead(ctx context.Context, chatID string, reader models.Role) error

	// CountUnread counts the participant's conversations with unread
	// messages.
	CountUnread(ctx context.Context, participantID string, role models.Role) (int64, error)
}
