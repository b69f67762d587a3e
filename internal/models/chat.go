package models

import (
	"time"
)

// Chat is a one-to-one conversation between a student and a mentor.
// There is at most one chat per (student, mentor) pair. The last message
// and read flags are denormalized onto the chat row so conversation
// listings never scan the messages table.
type Chat struct {
	ID        string `json:"id" gorm:"primaryKey;size:64"`
	StudentID string `json:"student_id" gorm:"index:idx_chats_pair,unique;not null;size:255"`
	MentorID  string `json:"mentor_id" gorm:"index:idx_chats_pair,unique;not null;size:255"`

	StudentName string `json:"student_name" gorm:"size:100"`
	MentorName  string `json:"mentor_name" gorm:"size:100"`

	LastMessage     string    `json:"last_message" gorm:"size:2000"`
	LastUpdated     time.Time `json:"last_updated" gorm:"index"`
	IsReadByMentor  bool      `json:"is_read_by_mentor" gorm:"default:true"`
	IsReadByStudent bool      `json:"is_read_by_student" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatMessage struct {
	ID         string    `json:"id" gorm:"primaryKey;size:64"`
	ChatID     string    `json:"chat_id" gorm:"index;not null;size:64"`
	SenderID   string    `json:"sender_id" gorm:"not null;size:255"`
	SenderName string    `json:"sender_name" gorm:"size:100"`
	Text       string    `json:"text" gorm:"not null;size:2000"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
