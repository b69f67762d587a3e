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

type settingsService struct {
	repo      repositories.Repository
	provider  auth.Provider
	validator *validator.Validator
	logger    *slog.Logger
}

// NewSettingsService creates the admin settings service.
func NewSettingsService(repo repositories.Repository, provider auth.Provider, v *validator.Validator, logger *slog.Logger) SettingsService {
	return &settingsService{
		repo:      repo,
		provider:  provider,
		validator: v,
		logger:    logger,
	}
}

func (s *settingsService) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	admins, err := s.repo.Admin().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// CreateAdmin promotes an account to admin. If the email is not yet in
// the directory a fresh account is provisioned; otherwise the existing
// account is reused, so a mentor or student can be promoted in place.
func (s *settingsService) CreateAdmin(ctx context.Context, req *CreateAdminRequest) (*models.Admin, error) {
	s.logger.Info("creating admin", "email", req.Email)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	var uid string

	existing, err := s.repo.Directory().GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		uid = existing.UID
	default:
		uid, err = s.provider.CreateUser(ctx, req.Email, req.Password, req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create account for %s: %w", req.Email, err)
		}
	}

	if _, err := s.repo.Admin().GetByUID(ctx, uid); err == nil {
		return nil, ErrRoleAlreadyAssigned
	}

	admin := &models.Admin{
		UID:   uid,
		Name:  req.Name,
		Email: req.Email,
	}

	if err := s.repo.Admin().Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin record: %w", err)
	}

	s.logger.Info("admin created", "uid", uid, "email", req.Email)
	return admin, nil
}

// RemoveAdmin deletes an admin record. The account itself is kept: the
// user falls back to whatever role their remaining records resolve to.
// Admins cannot remove themselves, so the console always has an owner.
func (s *settingsService) RemoveAdmin(ctx context.Context, actor Actor, uid string) error {
	s.logger.Info("removing admin", "uid", uid, "actor", actor.UID)

	if actor.UID == uid {
		return ErrForbidden
	}

	if err := s.repo.Admin().Delete(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to remove admin %s: %w", uid, err)
	}

	return nil
}

func (s *settingsService) GetProfile(ctx context.Context, uid string) (*models.Admin, error) {
	admin, err := s.repo.Admin().GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get admin %s: %w", uid, err)
	}
	return admin, nil
}

// UpdateProfile merges the request into the admin's record: absent fields
// keep their current value.
func (s *settingsService) UpdateProfile(ctx context.Context, uid string, req *UpdateAdminProfileRequest) (*models.Admin, error) {
	s.logger.Info("updating admin profile", "uid", uid)

	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	admin, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Phone != nil {
		admin.Phone = *req.Phone
	}

	if err := s.repo.Admin().Update(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to update admin %s: %w", uid, err)
	}

	return admin, nil
}

func (s *settingsService) SearchDirectory(ctx context.Context, req *DirectorySearchRequest) (*DirectoryListResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	filters := repositories.DirectoryFilters{
		Query:  req.Query,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	users, total, err := s.repo.Directory().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search directory: %w", err)
	}

	return &DirectoryListResponse{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
