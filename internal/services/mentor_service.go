package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
	"github.com/pixalara/placement-service/internal/validator"
)

type mentorService struct {
	repo      repositories.Repository
	provider  auth.Provider
	validator *validator.Validator
	logger    *slog.Logger
}

// NewMentorService creates the mentor profile service.
func NewMentorService(repo repositories.Repository, provider auth.Provider, v *validator.Validator, logger *slog.Logger) MentorService {
	return &mentorService{
		repo:      repo,
		provider:  provider,
		validator: v,
		logger:    logger,
	}
}

func (s *mentorService) CreateMentor(ctx context.Context, req *CreateMentorRequest) (*models.Mentor, error) {
	s.logger.Info("creating mentor", "email", req.Email)

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

	mentor := &models.Mentor{
		UID:       uid,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Expertise: req.Expertise,
		Status:    models.MentorActive,
	}

	if err := s.repo.Mentor().Create(ctx, mentor); err != nil {
		if delErr := s.provider.DeleteUser(ctx, uid); delErr != nil {
			s.logger.Error("failed to roll back account after profile error",
				"uid", uid, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create mentor profile: %w", err)
	}

	s.logger.Info("mentor created", "uid", uid, "email", req.Email)
	return mentor, nil
}

func (s *mentorService) GetMentor(ctx context.Context, uid string) (*models.Mentor, error) {
	mentor, err := s.repo.Mentor().GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get mentor %s: %w", uid, err)
	}
	return mentor, nil
}

func (s *mentorService) UpdateMentor(ctx context.Context, uid string, req *UpdateMentorRequest) (*models.Mentor, error) {
	s.logger.Info("updating mentor", "uid", uid)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	mentor, err := s.GetMentor(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		mentor.Name = *req.Name
	}
	if req.Phone != nil {
		mentor.Phone = *req.Phone
	}
	if req.Expertise != nil {
		mentor.Expertise = *req.Expertise
	}
	if req.Status != nil {
		mentor.Status = *req.Status
	}

	if err := s.repo.Mentor().Update(ctx, mentor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update mentor %s: %w", uid, err)
	}

	return mentor, nil
}

func (s *mentorService) DeleteMentor(ctx context.Context, uid string) error {
	s.logger.Info("deleting mentor", "uid", uid)

	if err := s.repo.Mentor().Delete(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete mentor %s: %w", uid, err)
	}

	if err := s.provider.DeleteUser(ctx, uid); err != nil {
		s.logger.Warn("failed to remove account after profile deletion",
			"uid", uid, "error", err)
	}

	return nil
}

func (s *mentorService) ListMentors(ctx context.Context, req *ListMentorsRequest) (*MentorListResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)

	filters := repositories.MentorFilters{
		Status:    req.Status,
		Expertise: req.Expertise,
		Query:     req.Query,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	mentors, total, err := s.repo.Mentor().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}

	return &MentorListResponse{
		Mentors:    mentors,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
