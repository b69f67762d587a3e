package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pixalara/placement-service/internal/events"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/validator"
)

func newChatFixture() (ChatService, *events.MockEventPublisher, *fakeChatRepo) {
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	chatRepo := newFakeChatRepo()

	repo := &stubRepository{
		student: newFakeStudentRepo(&models.Student{UID: "s1", Name: "Ravi", Email: "ravi@example.com"}),
		mentor:  newFakeMentorRepo(&models.Mentor{UID: "m1", Name: "Meera", Email: "meera@example.com"}),
		chat:    chatRepo,
	}

	return NewChatService(repo, publisher, validator.New(), logger), publisher, chatRepo
}

var (
	studentActor = Actor{UID: "s1", Name: "Ravi", Role: models.RoleStudent}
	mentorActor  = Actor{UID: "m1", Name: "Meera", Role: models.RoleMentor}
)

func TestChatService_OpenChat(t *testing.T) {
	service, _, _ := newChatFixture()
	ctx := context.Background()

	chat, err := service.OpenChat(ctx, studentActor, "m1")
	if err != nil {
		t.Fatalf("OpenChat() error = %v", err)
	}
	if chat.StudentID != "s1" || chat.MentorID != "m1" {
		t.Errorf("chat pair = %s/%s, want s1/m1", chat.StudentID, chat.MentorID)
	}
	if chat.MentorName != "Meera" {
		t.Errorf("mentor name = %s, want Meera", chat.MentorName)
	}

	// The mentor opening the same pair gets the same conversation.
	again, err := service.OpenChat(ctx, mentorActor, "s1")
	if err != nil {
		t.Fatalf("OpenChat() from mentor side error = %v", err)
	}
	if again.ID != chat.ID {
		t.Errorf("expected the same chat, got %s and %s", chat.ID, again.ID)
	}
}

func TestChatService_OpenChat_UnknownCounterpart(t *testing.T) {
	service, _, _ := newChatFixture()

	if _, err := service.OpenChat(context.Background(), studentActor, "nope"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("OpenChat() error = %v, want ErrProfileNotFound", err)
	}
}

func TestChatService_SendMessage(t *testing.T) {
	service, publisher, chatRepo := newChatFixture()
	ctx := context.Background()

	chat, err := service.OpenChat(ctx, studentActor, "m1")
	if err != nil {
		t.Fatalf("OpenChat() error = %v", err)
	}

	message, err := service.SendMessage(ctx, studentActor, &SendMessageRequest{
		ChatID: chat.ID,
		Text:   "Hello, could we review my resume?",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if message.SenderID != "s1" {
		t.Errorf("sender = %s, want s1", message.SenderID)
	}

	stored, _ := chatRepo.GetByID(ctx, chat.ID)
	if stored.LastMessage != "Hello, could we review my resume?" {
		t.Errorf("last message not updated: %q", stored.LastMessage)
	}
	if stored.IsReadByMentor {
		t.Error("mentor side should be unread after a student message")
	}
	if !stored.IsReadByStudent {
		t.Error("sender side should stay read")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	data, ok := published[0].Data.(events.MessageSentEvent)
	if !ok {
		t.Fatalf("event data has type %T, want MessageSentEvent", published[0].Data)
	}
	if data.ReceiverID != "m1" {
		t.Errorf("receiver = %s, want m1", data.ReceiverID)
	}
}

func TestChatService_SendMessage_NotParticipant(t *testing.T) {
	service, _, _ := newChatFixture()
	ctx := context.Background()

	chat, err := service.OpenChat(ctx, studentActor, "m1")
	if err != nil {
		t.Fatalf("OpenChat() error = %v", err)
	}

	outsider := Actor{UID: "s2", Name: "Other", Role: models.RoleStudent}
	if _, err := service.SendMessage(ctx, outsider, &SendMessageRequest{
		ChatID: chat.ID,
		Text:   "let me in",
	}); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("SendMessage() error = %v, want ErrNotParticipant", err)
	}
}

func TestChatService_GetMessages_MarksRead(t *testing.T) {
	service, _, chatRepo := newChatFixture()
	ctx := context.Background()

	chat, _ := service.OpenChat(ctx, studentActor, "m1")
	if _, err := service.SendMessage(ctx, studentActor, &SendMessageRequest{
		ChatID: chat.ID,
		Text:   "ping",
	}); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	resp, err := service.GetMessages(ctx, mentorActor, chat.ID, 1, 50)
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	if resp.Total != 1 || len(resp.Messages) != 1 {
		t.Fatalf("got %d messages (total %d), want 1", len(resp.Messages), resp.Total)
	}

	stored, _ := chatRepo.GetByID(ctx, chat.ID)
	if !stored.IsReadByMentor {
		t.Error("reading the conversation should clear the mentor's unread flag")
	}
}

func TestChatService_ListChats_AdminForbidden(t *testing.T) {
	service, _, _ := newChatFixture()

	admin := Actor{UID: "a1", Name: "Admin", Role: models.RoleAdmin}
	if _, err := service.ListChats(context.Background(), admin); !errors.Is(err, ErrForbidden) {
		t.Errorf("ListChats() as admin error = %v, want ErrForbidden", err)
	}
}

func TestChatService_UnreadCount(t *testing.T) {
	service, _, _ := newChatFixture()
	ctx := context.Background()

	chat, _ := service.OpenChat(ctx, studentActor, "m1")
	if _, err := service.SendMessage(ctx, studentActor, &SendMessageRequest{
		ChatID: chat.ID,
		Text:   "hello",
	}); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	count, err := service.UnreadCount(ctx, mentorActor)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("mentor unread = %d, want 1", count)
	}

	// Reading the conversation clears the badge.
	if _, err := service.GetMessages(ctx, mentorActor, chat.ID, 1, 50); err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	count, err = service.UnreadCount(ctx, mentorActor)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("mentor unread after reading = %d, want 0", count)
	}
}
