package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pixalara/placement-service/internal/events"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/validator"
)

func newPipelineFixture(seekers ...*models.JobSeeker) (PipelineService, *events.MockEventPublisher, *fakeJobSeekerRepo, *fakeProvider) {
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	seekerRepo := newFakeJobSeekerRepo(seekers...)
	provider := newFakeProvider()

	repo := &stubRepository{
		jobSeeker: seekerRepo,
		directory: newFakeDirectoryRepo(),
	}

	service := NewPipelineService(repo, provider, publisher, validator.New(), logger)
	return service, publisher, seekerRepo, provider
}

func TestPipelineService_Register(t *testing.T) {
	service, _, seekerRepo, provider := newPipelineFixture()
	ctx := context.Background()

	req := &RegisterJobSeekerRequest{
		Name:        "Asha Verma",
		Email:       "asha@example.com",
		Password:    "secret123",
		TargetField: "DevOps",
	}

	seeker, err := service.Register(ctx, req)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if seeker.Stage != models.StageRegistered {
		t.Errorf("new job seeker stage = %s, want %s", seeker.Stage, models.StageRegistered)
	}
	if seeker.RegistrationFee != models.FeePending || seeker.FinalFee != models.FeePending {
		t.Errorf("new job seeker fees = %s/%s, want Pending/Pending", seeker.RegistrationFee, seeker.FinalFee)
	}
	if _, ok := provider.principals[seeker.UID]; !ok {
		t.Error("expected an account to be provisioned for the new job seeker")
	}
	if _, err := seekerRepo.GetByUID(ctx, seeker.UID); err != nil {
		t.Errorf("profile not stored: %v", err)
	}
}

func TestPipelineService_Register_DuplicateEmail(t *testing.T) {
	logger := testLogger()
	repo := &stubRepository{
		jobSeeker: newFakeJobSeekerRepo(),
		directory: newFakeDirectoryRepo(&models.DirectoryUser{UID: "u1", Email: "taken@example.com"}),
	}
	service := NewPipelineService(repo, newFakeProvider(), events.NewMockEventPublisher(logger), validator.New(), logger)

	_, err := service.Register(context.Background(), &RegisterJobSeekerRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrEmailRegistered) {
		t.Errorf("Register() error = %v, want ErrEmailRegistered", err)
	}
}

func TestPipelineService_AdvanceStage(t *testing.T) {
	tests := []struct {
		name string
		from models.PipelineStage
		want models.PipelineStage
	}{
		{name: "registered to interview", from: models.StageRegistered, want: models.StageInterview},
		{name: "interview to placed", from: models.StageInterview, want: models.StagePlaced},
		{name: "placed to rejected", from: models.StagePlaced, want: models.StageRejected},
		{name: "rejected wraps to registered", from: models.StageRejected, want: models.StageRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, publisher, _, _ := newPipelineFixture(&models.JobSeeker{
				UID:   "js-1",
				Name:  "Asha",
				Email: "asha@example.com",
				Stage: tt.from,
			})

			seeker, err := service.AdvanceStage(context.Background(), "js-1", "admin-1")
			if err != nil {
				t.Fatalf("AdvanceStage() error = %v", err)
			}
			if seeker.Stage != tt.want {
				t.Errorf("AdvanceStage() stage = %s, want %s", seeker.Stage, tt.want)
			}

			published := publisher.GetPublishedEvents()
			if len(published) != 1 {
				t.Fatalf("expected 1 event, got %d", len(published))
			}
			event := published[0]
			if event.Type != events.EventStageChanged {
				t.Errorf("event type = %s, want %s", event.Type, events.EventStageChanged)
			}
			data, ok := event.Data.(events.StageChangedEvent)
			if !ok {
				t.Fatalf("event data has type %T, want StageChangedEvent", event.Data)
			}
			if data.From != tt.from || data.To != tt.want || data.ChangedBy != "admin-1" {
				t.Errorf("event data = %+v, want from=%s to=%s changed_by=admin-1", data, tt.from, tt.want)
			}
		})
	}
}

func TestPipelineService_SetStage(t *testing.T) {
	service, publisher, seekerRepo, _ := newPipelineFixture(&models.JobSeeker{
		UID:   "js-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Stage: models.StageInterview,
	})
	ctx := context.Background()

	seeker, err := service.SetStage(ctx, "js-1", &SetStageRequest{
		Stage:   models.StagePlaced,
		Company: "Initech",
	}, "admin-1")
	if err != nil {
		t.Fatalf("SetStage() error = %v", err)
	}

	if seeker.Stage != models.StagePlaced {
		t.Errorf("stage = %s, want placed", seeker.Stage)
	}
	stored, _ := seekerRepo.GetByUID(ctx, "js-1")
	if stored.Company != "Initech" {
		t.Errorf("company = %q, want Initech", stored.Company)
	}
	if len(publisher.GetPublishedEvents()) != 1 {
		t.Errorf("expected 1 stage event, got %d", len(publisher.GetPublishedEvents()))
	}
}

func TestPipelineService_SetStage_SameStageNoEvent(t *testing.T) {
	service, publisher, _, _ := newPipelineFixture(&models.JobSeeker{
		UID:   "js-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Stage: models.StageInterview,
	})

	if _, err := service.SetStage(context.Background(), "js-1", &SetStageRequest{
		Stage: models.StageInterview,
	}, "admin-1"); err != nil {
		t.Fatalf("SetStage() error = %v", err)
	}

	if n := len(publisher.GetPublishedEvents()); n != 0 {
		t.Errorf("expected no events for a same-stage move, got %d", n)
	}
}

func TestPipelineService_SetStage_InvalidStage(t *testing.T) {
	service, _, _, _ := newPipelineFixture(&models.JobSeeker{
		UID:   "js-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Stage: models.StageRegistered,
	})

	_, err := service.SetStage(context.Background(), "js-1", &SetStageRequest{
		Stage: "hired",
	}, "admin-1")
	if err == nil {
		t.Fatal("SetStage() with an unknown stage should fail validation")
	}
}

func TestPipelineService_UpdateFees(t *testing.T) {
	service, _, _, _ := newPipelineFixture(&models.JobSeeker{
		UID:             "js-1",
		Name:            "Asha",
		Email:           "asha@example.com",
		Stage:           models.StageRegistered,
		RegistrationFee: models.FeePending,
		FinalFee:        models.FeePending,
	})
	ctx := context.Background()

	paid := models.FeePaid
	seeker, err := service.UpdateFees(ctx, "js-1", &UpdateFeesRequest{RegistrationFee: &paid})
	if err != nil {
		t.Fatalf("UpdateFees() error = %v", err)
	}

	if seeker.RegistrationFee != models.FeePaid {
		t.Errorf("registration fee = %s, want Paid", seeker.RegistrationFee)
	}
	if seeker.FinalFee != models.FeePending {
		t.Errorf("final fee = %s, want untouched Pending", seeker.FinalFee)
	}
}

func TestPipelineService_DeleteJobSeeker(t *testing.T) {
	service, _, seekerRepo, provider := newPipelineFixture(&models.JobSeeker{
		UID:   "js-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Stage: models.StageRegistered,
	})
	ctx := context.Background()

	if err := service.DeleteJobSeeker(ctx, "js-1"); err != nil {
		t.Fatalf("DeleteJobSeeker() error = %v", err)
	}

	if _, err := seekerRepo.GetByUID(ctx, "js-1"); err == nil {
		t.Error("profile should be gone after delete")
	}
	if len(provider.deleted) != 1 || provider.deleted[0] != "js-1" {
		t.Errorf("provider deletions = %v, want [js-1]", provider.deleted)
	}

	if err := service.DeleteJobSeeker(ctx, "js-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("second delete error = %v, want ErrProfileNotFound", err)
	}
}
