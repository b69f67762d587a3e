package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/pixalara/placement-service/internal/models"
)

// Event types published by the portal.
const (
	EventRoleResolved    = "auth.role_resolved"
	EventAmbiguousRecord = "auth.ambiguous_record"
	EventStageChanged    = "pipeline.stage_changed"
	EventMessageSent     = "chat.message_sent"
)

// Event is the envelope shared by all published events.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent wraps a payload in the standard envelope.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "placement-service",
		Version:   "1.0",
		Timestamp: time.Now(),
		Data:      data,
	}
}

// ===== EVENT PAYLOADS =====

// RoleResolvedEvent records the outcome of a role resolution, including
// unassigned outcomes.
type RoleResolvedEvent struct {
	UID  string      `json:"uid"`
	Role models.Role `json:"role"`
}

// AmbiguousRecordEvent flags a uid present in more than one role store.
// The resolved role is the highest-priority match; the rest are stale
// records an admin should clean up.
type AmbiguousRecordEvent struct {
	UID   string        `json:"uid"`
	Roles []models.Role `json:"roles"`
}

// StageChangedEvent records a job seeker's pipeline transition.
type StageChangedEvent struct {
	UID       string               `json:"uid"`
	From      models.PipelineStage `json:"from"`
	To        models.PipelineStage `json:"to"`
	ChangedBy string               `json:"changed_by"`
}

// MessageSentEvent records a chat message for downstream notification.
type MessageSentEvent struct {
	ChatID     string `json:"chat_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}
