package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

type MentorPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewMentorPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.MentorRepository {
	return &MentorPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

// Role identifies the store for the resolver.
func (m *MentorPostgreSQL) Role() models.Role {
	return models.RoleMentor
}

// Contains reports whether uid has a mentor record.
func (m *MentorPostgreSQL) Contains(ctx context.Context, uid string) (bool, error) {
	return probeMembership(ctx, m.db, m.cacheManager, &models.Mentor{}, string(models.RoleMentor), uid)
}

// Create inserts a mentor profile and invalidates the uid's role caches.
func (m *MentorPostgreSQL) Create(ctx context.Context, mentor *models.Mentor) error {
	if err := m.db.WithContext(ctx).Create(mentor).Error; err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}

	cache.InvalidateRoleCache(ctx, m.cacheManager, mentor.UID)
	cache.SafeInvalidatePattern(ctx, m.cacheManager.Profile, "list:mentor:*")

	return nil
}

// GetByUID retrieves a mentor by uid with caching.
func (m *MentorPostgreSQL) GetByUID(ctx context.Context, uid string) (*models.Mentor, error) {
	cacheKey := fmt.Sprintf("mentor:%s", uid)
	var mentor models.Mentor

	err := m.cacheManager.Profile.CacheOrExecute(ctx, cacheKey, &mentor, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbMentor models.Mentor
		if err := m.db.WithContext(ctx).Where("uid = ?", uid).First(&dbMentor).Error; err != nil {
			return nil, fmt.Errorf("failed to get mentor: %w", err)
		}
		return &dbMentor, nil
	})
	if err != nil {
		return nil, err
	}

	return &mentor, nil
}

// Update saves profile changes and invalidates the profile cache.
func (m *MentorPostgreSQL) Update(ctx context.Context, mentor *models.Mentor) error {
	result := m.db.WithContext(ctx).
		Model(&models.Mentor{}).
		Where("uid = ?", mentor.UID).
		Updates(map[string]interface{}{
			"name":      mentor.Name,
			"email":     mentor.Email,
			"phone":     mentor.Phone,
			"expertise": mentor.Expertise,
			"status":    mentor.Status,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update mentor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateProfileCache(ctx, m.cacheManager, string(models.RoleMentor), mentor.UID)

	return nil
}

// Delete soft deletes a mentor and invalidates the uid's role caches.
func (m *MentorPostgreSQL) Delete(ctx context.Context, uid string) error {
	result := m.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Mentor{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete mentor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateRoleCache(ctx, m.cacheManager, uid)
	cache.InvalidateProfileCache(ctx, m.cacheManager, string(models.RoleMentor), uid)

	return nil
}

// List retrieves mentors with filters and pagination.
func (m *MentorPostgreSQL) List(ctx context.Context, filters repositories.MentorFilters) ([]*models.Mentor, int64, error) {
	query := m.db.WithContext(ctx).Model(&models.Mentor{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Expertise != nil {
		query = query.Where("expertise ILIKE ?", "%"+*filters.Expertise+"%")
	}
	query = m.helpers.ApplySearchQuery(query, filters.Query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count mentors: %w", err)
	}

	query = m.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var mentors []*models.Mentor
	if err := query.Find(&mentors).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list mentors: %w", err)
	}

	return mentors, total, nil
}

// Count returns the number of mentors.
func (m *MentorPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := m.db.WithContext(ctx).Model(&models.Mentor{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count mentors: %w", err)
	}
	return count, nil
}
