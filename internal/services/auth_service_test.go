package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/events"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/utils"
	"github.com/pixalara/placement-service/internal/validator"
)

func newAuthFixture(t *testing.T, repo *stubRepository, provider *fakeProvider) (AuthService, *events.MockEventPublisher) {
	t.Helper()

	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	sink := events.NewResolutionSink(publisher, logger)

	resolver, err := auth.NewResolver([]auth.RoleStore{
		repo.Admin(),
		repo.Student(),
		repo.JobSeeker(),
		repo.Mentor(),
	}, utils.NewSlogLogger(logger), auth.ResolverOptions{Sink: sink})
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	return NewAuthService(provider, resolver, validator.New(), logger), publisher
}

func fullStubRepository() *stubRepository {
	return &stubRepository{
		admin:     newFakeAdminRepo(),
		student:   newFakeStudentRepo(),
		jobSeeker: newFakeJobSeekerRepo(),
		mentor:    newFakeMentorRepo(),
		course:    newFakeCourseRepo(),
		chat:      newFakeChatRepo(),
		directory: newFakeDirectoryRepo(),
	}
}

func TestAuthService_SignIn(t *testing.T) {
	repo := fullStubRepository()
	repo.student = newFakeStudentRepo(&models.Student{UID: "u-student", Name: "Ravi", Email: "ravi@example.com"})
	repo.mentor = newFakeMentorRepo(&models.Mentor{UID: "u-both", Name: "Meera", Email: "meera@example.com"})
	repo.admin = newFakeAdminRepo(&models.Admin{UID: "u-both", Name: "Meera", Email: "meera@example.com"})

	provider := newFakeProvider()
	provider.addUser("u-student", "ravi@example.com", "secret123", "Ravi")
	provider.addUser("u-both", "meera@example.com", "secret123", "Meera")
	provider.addUser("u-none", "new@example.com", "secret123", "Newcomer")

	service, _ := newAuthFixture(t, repo, provider)
	ctx := context.Background()

	tests := []struct {
		name           string
		email          string
		password       string
		wantErr        error
		wantRole       models.Role
		wantUnassigned bool
		wantRedirect   string
	}{
		{
			name:         "student signs in",
			email:        "ravi@example.com",
			password:     "secret123",
			wantRole:     models.RoleStudent,
			wantRedirect: "/student/dashboard",
		},
		{
			name:         "admin record outranks mentor record",
			email:        "meera@example.com",
			password:     "secret123",
			wantRole:     models.RoleAdmin,
			wantRedirect: "/admin/dashboard",
		},
		{
			name:           "account without any role signs in unassigned",
			email:          "new@example.com",
			password:       "secret123",
			wantRole:       models.RoleUnassigned,
			wantUnassigned: true,
			wantRedirect:   auth.UnassignedRoute,
		},
		{
			name:     "wrong password",
			email:    "ravi@example.com",
			password: "wrong-password",
			wantErr:  auth.ErrInvalidCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.SignIn(ctx, &SignInRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SignIn() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SignIn() error = %v", err)
			}

			if resp.Role != tt.wantRole {
				t.Errorf("role = %s, want %s", resp.Role, tt.wantRole)
			}
			if resp.Unassigned != tt.wantUnassigned {
				t.Errorf("unassigned = %v, want %v", resp.Unassigned, tt.wantUnassigned)
			}
			if resp.Redirect != tt.wantRedirect {
				t.Errorf("redirect = %s, want %s", resp.Redirect, tt.wantRedirect)
			}
			if resp.Token == "" {
				t.Error("token should not be empty")
			}
		})
	}
}

func TestAuthService_SignIn_PublishesResolution(t *testing.T) {
	repo := fullStubRepository()
	repo.student = newFakeStudentRepo(&models.Student{UID: "u-student", Name: "Ravi", Email: "ravi@example.com"})

	provider := newFakeProvider()
	provider.addUser("u-student", "ravi@example.com", "secret123", "Ravi")

	service, publisher := newAuthFixture(t, repo, provider)

	if _, err := service.SignIn(context.Background(), &SignInRequest{
		Email:    "ravi@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("expected 1 resolution event, got %d", len(published))
	}
	event := published[0]
	if event.Type != events.EventRoleResolved {
		t.Errorf("event type = %s, want %s", event.Type, events.EventRoleResolved)
	}
	if event.Source != "placement-service" {
		t.Errorf("event source = %s, want placement-service", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("event version = %s, want 1.0", event.Version)
	}
	data, ok := event.Data.(events.RoleResolvedEvent)
	if !ok {
		t.Fatalf("event data has type %T, want RoleResolvedEvent", event.Data)
	}
	if data.UID != "u-student" || data.Role != models.RoleStudent {
		t.Errorf("event data = %+v, want uid=u-student role=student", data)
	}
}

func TestAuthService_Session(t *testing.T) {
	repo := fullStubRepository()
	repo.mentor = newFakeMentorRepo(&models.Mentor{UID: "u-mentor", Name: "Meera", Email: "meera@example.com"})

	provider := newFakeProvider()
	provider.addUser("u-mentor", "meera@example.com", "secret123", "Meera")

	service, _ := newAuthFixture(t, repo, provider)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		resp, err := service.Session(ctx, "token-u-mentor")
		if err != nil {
			t.Fatalf("Session() error = %v", err)
		}
		if resp.Role != models.RoleMentor {
			t.Errorf("role = %s, want mentor", resp.Role)
		}
		if resp.Redirect != "/mentor/dashboard" {
			t.Errorf("redirect = %s, want /mentor/dashboard", resp.Redirect)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		if _, err := service.Session(ctx, "garbage"); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("Session() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("role change takes effect without a new token", func(t *testing.T) {
		// Promote the mentor to admin; the same token now resolves to
		// admin because roles are re-derived per check.
		repo.admin.(*fakeAdminRepo).admins["u-mentor"] = &models.Admin{UID: "u-mentor", Email: "meera@example.com"}

		resp, err := service.Session(ctx, "token-u-mentor")
		if err != nil {
			t.Fatalf("Session() error = %v", err)
		}
		if resp.Role != models.RoleAdmin {
			t.Errorf("role = %s, want admin after promotion", resp.Role)
		}
	})
}
