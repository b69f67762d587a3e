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

type studentService struct {
	repo      repositories.Repository
	provider  auth.Provider
	validator *validator.Validator
	logger    *slog.Logger
}

// NewStudentService creates the student profile service.
func NewStudentService(repo repositories.Repository, provider auth.Provider, v *validator.Validator, logger *slog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		provider:  provider,
		validator: v,
		logger:    logger,
	}
}

// CreateStudent provisions an account with the identity provider and
// writes the student profile. Creating the profile is what assigns the
// student role.
func (s *studentService) CreateStudent(ctx context.Context, req *CreateStudentRequest) (*models.Student, error) {
	s.logger.Info("creating student", "email", req.Email)

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

	var courseName string
	if req.CourseID != nil {
		course, err := s.repo.Course().GetByID(ctx, *req.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, fmt.Errorf("failed to load course %d: %w", *req.CourseID, err)
		}
		courseName = course.Title
	}

	uid, err := s.provider.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create account for %s: %w", req.Email, err)
	}

	student := &models.Student{
		UID:        uid,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		CourseID:   req.CourseID,
		CourseName: courseName,
		Status:     models.StudentEnrolled,
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		// Roll the account back so a retry is not blocked by a
		// half-created user.
		if delErr := s.provider.DeleteUser(ctx, uid); delErr != nil {
			s.logger.Error("failed to roll back account after profile error",
				"uid", uid, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create student profile: %w", err)
	}

	s.logger.Info("student created", "uid", uid, "email", req.Email)
	return student, nil
}

func (s *studentService) GetStudent(ctx context.Context, uid string) (*models.Student, error) {
	student, err := s.repo.Student().GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get student %s: %w", uid, err)
	}
	return student, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, uid string, req *UpdateStudentRequest) (*models.Student, error) {
	s.logger.Info("updating student", "uid", uid)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	student, err := s.GetStudent(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	if req.CourseID != nil {
		course, err := s.repo.Course().GetByID(ctx, *req.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, fmt.Errorf("failed to load course %d: %w", *req.CourseID, err)
		}
		student.CourseID = req.CourseID
		student.CourseName = course.Title
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update student %s: %w", uid, err)
	}

	return student, nil
}

// DeleteStudent removes the profile and then the provider account. If the
// account removal fails, the user simply resolves as unassigned from now
// on, so the error is logged rather than surfaced.
func (s *studentService) DeleteStudent(ctx context.Context, uid string) error {
	s.logger.Info("deleting student", "uid", uid)

	if err := s.repo.Student().Delete(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete student %s: %w", uid, err)
	}

	if err := s.provider.DeleteUser(ctx, uid); err != nil {
		s.logger.Warn("failed to remove account after profile deletion",
			"uid", uid, "error", err)
	}

	return nil
}

func (s *studentService) ListStudents(ctx context.Context, req *ListStudentsRequest) (*StudentListResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)

	filters := repositories.StudentFilters{
		CourseID:  req.CourseID,
		Status:    req.Status,
		Query:     req.Query,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	students, total, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &StudentListResponse{
		Students:   students,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
