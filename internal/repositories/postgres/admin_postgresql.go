package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

type AdminPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAdminPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.AdminRepository {
	return &AdminPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// Role identifies the store for the resolver.
func (a *AdminPostgreSQL) Role() models.Role {
	return models.RoleAdmin
}

// Contains reports whether uid has an admin record.
func (a *AdminPostgreSQL) Contains(ctx context.Context, uid string) (bool, error) {
	return probeMembership(ctx, a.db, a.cacheManager, &models.Admin{}, string(models.RoleAdmin), uid)
}

// Create inserts an admin record and invalidates the uid's role caches.
func (a *AdminPostgreSQL) Create(ctx context.Context, admin *models.Admin) error {
	if err := a.db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	cache.InvalidateRoleCache(ctx, a.cacheManager, admin.UID)

	return nil
}

// GetByUID retrieves an admin by uid with caching.
func (a *AdminPostgreSQL) GetByUID(ctx context.Context, uid string) (*models.Admin, error) {
	cacheKey := fmt.Sprintf("admin:%s", uid)
	var admin models.Admin

	err := a.cacheManager.Profile.CacheOrExecute(ctx, cacheKey, &admin, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbAdmin models.Admin
		if err := a.db.WithContext(ctx).Where("uid = ?", uid).First(&dbAdmin).Error; err != nil {
			return nil, fmt.Errorf("failed to get admin: %w", err)
		}
		return &dbAdmin, nil
	})
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

// GetByEmail retrieves an admin by email.
func (a *AdminPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := a.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return &admin, nil
}

// Update saves an admin's profile fields and invalidates the cached copy.
func (a *AdminPostgreSQL) Update(ctx context.Context, admin *models.Admin) error {
	result := a.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("uid = ?", admin.UID).
		Updates(map[string]interface{}{
			"name":  admin.Name,
			"phone": admin.Phone,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update admin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateProfileCache(ctx, a.cacheManager, string(models.RoleAdmin), admin.UID)

	return nil
}

// List retrieves all admins. The admin set is small; no pagination.
func (a *AdminPostgreSQL) List(ctx context.Context) ([]*models.Admin, error) {
	var admins []*models.Admin
	if err := a.db.WithContext(ctx).Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// Delete removes an admin record and invalidates the uid's role caches.
func (a *AdminPostgreSQL) Delete(ctx context.Context, uid string) error {
	result := a.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Admin{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete admin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateRoleCache(ctx, a.cacheManager, uid)
	cache.InvalidateProfileCache(ctx, a.cacheManager, string(models.RoleAdmin), uid)

	return nil
}
