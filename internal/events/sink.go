package events

import (
	"context"
	"log/slog"

	"github.com/pixalara/placement-service/internal/models"
)

// ResolutionSink adapts an EventPublisher to the resolver's event hooks.
// Publish failures are logged and swallowed: resolution must never fail
// because the broker is down.
type ResolutionSink struct {
	publisher EventPublisher
	logger    *slog.Logger
}

func NewResolutionSink(publisher EventPublisher, logger *slog.Logger) *ResolutionSink {
	return &ResolutionSink{
		publisher: publisher,
		logger:    logger,
	}
}

func (s *ResolutionSink) RoleResolved(ctx context.Context, uid string, role models.Role) {
	event := NewEvent(EventRoleResolved, RoleResolvedEvent{UID: uid, Role: role})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish role resolution", "error", err, "uid", uid)
	}
}

func (s *ResolutionSink) AmbiguousRecord(ctx context.Context, uid string, roles []models.Role) {
	event := NewEvent(EventAmbiguousRecord, AmbiguousRecordEvent{UID: uid, Roles: roles})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish ambiguous record", "error", err, "uid", uid)
	}
}
