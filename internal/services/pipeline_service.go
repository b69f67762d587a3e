package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/events"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
	"github.com/pixalara/placement-service/internal/validator"
)

type pipelineService struct {
	repo           repositories.Repository
	provider       auth.Provider
	eventPublisher events.EventPublisher
	validator      *validator.Validator
	logger         *slog.Logger
}

// NewPipelineService creates the placement pipeline service.
func NewPipelineService(repo repositories.Repository, provider auth.Provider, publisher events.EventPublisher, v *validator.Validator, logger *slog.Logger) PipelineService {
	return &pipelineService{
		repo:           repo,
		provider:       provider,
		eventPublisher: publisher,
		validator:      v,
		logger:         logger,
	}
}

// Register handles the public placement-registration form: it provisions
// an account and writes the job seeker profile at the registered stage.
func (s *pipelineService) Register(ctx context.Context, req *RegisterJobSeekerRequest) (*models.JobSeeker, error) {
	s.logger.Info("registering job seeker", "email", req.Email)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	exists, err := s.repo.Directory().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check directory for %s: %w", req.Email, err)
	}
	if exists {
		return nil, ErrEmailRegistered
	}

	uid, err := s.provider.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create account for %s: %w", req.Email, err)
	}

	seeker := &models.JobSeeker{
		UID:              uid,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Gender:           req.Gender,
		TargetField:      req.TargetField,
		Stage:            models.StageRegistered,
		RegistrationFee:  models.FeePending,
		FinalFee:         models.FeePending,
		HighestEducation: req.HighestEducation,
		DOB:              req.DOB,
		Education:        req.Education,
		Skills:           req.Skills,
		Experience:       req.Experience,
	}

	if err := s.repo.JobSeeker().Create(ctx, seeker); err != nil {
		if delErr := s.provider.DeleteUser(ctx, uid); delErr != nil {
			s.logger.Error("failed to roll back account after profile error",
				"uid", uid, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create job seeker profile: %w", err)
	}

	s.logger.Info("job seeker registered", "uid", uid, "email", req.Email)
	return seeker, nil
}

func (s *pipelineService) GetJobSeeker(ctx context.Context, uid string) (*models.JobSeeker, error) {
	seeker, err := s.repo.JobSeeker().GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get job seeker %s: %w", uid, err)
	}
	return seeker, nil
}

func (s *pipelineService) UpdateJobSeeker(ctx context.Context, uid string, req *UpdateJobSeekerRequest) (*models.JobSeeker, error) {
	s.logger.Info("updating job seeker", "uid", uid)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	seeker, err := s.GetJobSeeker(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		seeker.Name = *req.Name
	}
	if req.Phone != nil {
		seeker.Phone = *req.Phone
	}
	if req.Gender != nil {
		seeker.Gender = *req.Gender
	}
	if req.TargetField != nil {
		seeker.TargetField = *req.TargetField
	}
	if req.Company != nil {
		seeker.Company = *req.Company
	}
	if req.Remarks != nil {
		seeker.Remarks = *req.Remarks
	}
	if req.HighestEducation != nil {
		seeker.HighestEducation = *req.HighestEducation
	}
	if req.DOB != nil {
		seeker.DOB = *req.DOB
	}
	if req.Education != nil {
		seeker.Education = *req.Education
	}
	if req.Skills != nil {
		seeker.Skills = *req.Skills
	}
	if req.Experience != nil {
		seeker.Experience = *req.Experience
	}

	if err := s.repo.JobSeeker().Update(ctx, seeker); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update job seeker %s: %w", uid, err)
	}

	return seeker, nil
}

func (s *pipelineService) DeleteJobSeeker(ctx context.Context, uid string) error {
	s.logger.Info("deleting job seeker", "uid", uid)

	if err := s.repo.JobSeeker().Delete(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete job seeker %s: %w", uid, err)
	}

	if err := s.provider.DeleteUser(ctx, uid); err != nil {
		s.logger.Warn("failed to remove account after profile deletion",
			"uid", uid, "error", err)
	}

	return nil
}

func (s *pipelineService) ListJobSeekers(ctx context.Context, req *ListJobSeekersRequest) (*JobSeekerListResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)

	filters := repositories.JobSeekerFilters{
		Stage:           req.Stage,
		TargetField:     req.TargetField,
		Company:         req.Company,
		RegistrationFee: req.RegistrationFee,
		FinalFee:        req.FinalFee,
		Query:           req.Query,
		Limit:           pageSize,
		Offset:          (page - 1) * pageSize,
		SortBy:          req.SortBy,
		SortOrder:       req.SortOrder,
	}

	seekers, total, err := s.repo.JobSeeker().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list job seekers: %w", err)
	}

	return &JobSeekerListResponse{
		JobSeekers: seekers,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// AdvanceStage moves a job seeker to the stage following their current
// one, wrapping back to registered from the end of the pipeline.
func (s *pipelineService) AdvanceStage(ctx context.Context, uid string, changedBy string) (*models.JobSeeker, error) {
	seeker, err := s.GetJobSeeker(ctx, uid)
	if err != nil {
		return nil, err
	}

	return s.moveToStage(ctx, seeker, models.NextStage(seeker.Stage), changedBy)
}

func (s *pipelineService) SetStage(ctx context.Context, uid string, req *SetStageRequest, changedBy string) (*models.JobSeeker, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	seeker, err := s.GetJobSeeker(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Company != "" {
		seeker.Company = req.Company
	}
	if req.Remarks != "" {
		seeker.Remarks = req.Remarks
	}
	if req.Company != "" || req.Remarks != "" {
		if err := s.repo.JobSeeker().Update(ctx, seeker); err != nil {
			return nil, fmt.Errorf("failed to update job seeker %s: %w", uid, err)
		}
	}

	return s.moveToStage(ctx, seeker, req.Stage, changedBy)
}

func (s *pipelineService) moveToStage(ctx context.Context, seeker *models.JobSeeker, to models.PipelineStage, changedBy string) (*models.JobSeeker, error) {
	from := seeker.Stage
	if from == to {
		return seeker, nil
	}

	if err := s.repo.JobSeeker().UpdateStage(ctx, seeker.UID, to); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to move job seeker %s to %s: %w", seeker.UID, to, err)
	}
	seeker.Stage = to

	s.logger.Info("pipeline stage changed",
		"uid", seeker.UID,
		"from", from,
		"to", to,
		"changed_by", changedBy)

	event := events.NewEvent(events.EventStageChanged, events.StageChangedEvent{
		UID:       seeker.UID,
		From:      from,
		To:        to,
		ChangedBy: changedBy,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish stage change", "uid", seeker.UID, "error", err)
	}

	return seeker, nil
}

func (s *pipelineService) UpdateFees(ctx context.Context, uid string, req *UpdateFeesRequest) (*models.JobSeeker, error) {
	s.logger.Info("updating fees", "uid", uid)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	if err := s.repo.JobSeeker().UpdateFees(ctx, uid, req.RegistrationFee, req.FinalFee); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update fees for %s: %w", uid, err)
	}

	return s.GetJobSeeker(ctx, uid)
}
