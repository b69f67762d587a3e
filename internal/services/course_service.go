package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
	"github.com/pixalara/placement-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

// NewCourseService creates the course catalog service.
func NewCourseService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error) {
	s.logger.Info("creating course", "title", req.Title)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	exists, err := s.repo.Course().ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check course title: %w", err)
	}
	if exists {
		return nil, ErrCourseTitleTaken
	}

	course := &models.Course{
		Title:    req.Title,
		Duration: req.Duration,
		Mode:     req.Mode,
		Fees:     req.Fees,
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}
	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, id uint, req *UpdateCourseRequest) (*models.Course, error) {
	s.logger.Info("updating course", "course_id", id)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != course.Title {
		exists, err := s.repo.Course().ExistsByTitle(ctx, *req.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to check course title: %w", err)
		}
		if exists {
			return nil, ErrCourseTitleTaken
		}
		course.Title = *req.Title
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Mode != nil {
		course.Mode = *req.Mode
	}
	if req.Fees != nil {
		course.Fees = *req.Fees
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to update course %d: %w", id, err)
	}

	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, id uint) error {
	s.logger.Info("deleting course", "course_id", id)

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}

	return nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// ImportDefaults seeds the stock catalog. The operation is idempotent on
// course title, so re-running it only fills in what is missing.
func (s *courseService) ImportDefaults(ctx context.Context) (int, error) {
	created, err := s.repo.Course().SeedDefaults(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to import default courses: %w", err)
	}

	s.logger.Info("default courses imported", "created", created)
	return created, nil
}
