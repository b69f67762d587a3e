package postgres

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
)

// SharedHelpers contains common database operations
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns
	allowedSortColumns := map[string]bool{
		"created_at":   true,
		"updated_at":   true,
		"name":         true,
		"email":        true,
		"course_name":  true,
		"stage":        true,
		"company":      true,
		"status":       true,
		"last_updated": true,
	}

	// Validate and set sort column
	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	// Validate and set sort order
	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// ApplySearchQuery matches a free-text query against name and email.
func (h *SharedHelpers) ApplySearchQuery(query *gorm.DB, text string) *gorm.DB {
	if text == "" {
		return query
	}
	pattern := "%" + text + "%"
	return query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
}

// probeMembership answers a role-store Contains check against a table,
// caching the boolean under the exists: prefix.
func probeMembership(ctx context.Context, db *gorm.DB, cm *cache.CacheManager, model interface{}, role string, uid string) (bool, error) {
	cacheKey := fmt.Sprintf("%s:%s", role, uid)
	if cached, err := cm.Exists.GetString(ctx, cacheKey); err == nil {
		return cached == "true", nil
	}

	var count int64
	if err := db.WithContext(ctx).
		Model(model).
		Where("uid = ?", uid).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to probe %s store: %w", role, err)
	}

	exists := count > 0

	// Cache write failures never fail the probe
	_ = cm.Exists.SetString(ctx, cacheKey, strconv.FormatBool(exists), cache.ExistsCacheConfig.TTL)

	return exists, nil
}
