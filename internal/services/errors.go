package services

import "errors"

// Sentinel errors mapped to HTTP status codes by the handlers.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrChatNotFound    = errors.New("chat not found")

	ErrCourseTitleTaken = errors.New("a course with this title already exists")
	ErrEmailRegistered  = errors.New("this email is already registered")

	// ErrRoleAlreadyAssigned guards onboarding: a uid may live in at most
	// one role store.
	ErrRoleAlreadyAssigned = errors.New("user already has a role assigned")

	// ErrNotParticipant is returned when a user touches a conversation
	// they are not part of.
	ErrNotParticipant = errors.New("user is not a participant of this chat")

	ErrForbidden = errors.New("operation not permitted")
)
