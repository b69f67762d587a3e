package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

type DashboardPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewDashboardPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.DashboardRepository {
	return &DashboardPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// GetStats aggregates the admin landing-page counters with caching.
func (d *DashboardPostgreSQL) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	err := d.cacheManager.Stats.CacheOrExecute(ctx, "summary", &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var computed models.DashboardStats

		if err := d.db.WithContext(ctx).
			Model(&models.Student{}).
			Count(&computed.Students).Error; err != nil {
			return nil, fmt.Errorf("failed to count students: %w", err)
		}

		if err := d.db.WithContext(ctx).
			Model(&models.JobSeeker{}).
			Count(&computed.JobSeekers).Error; err != nil {
			return nil, fmt.Errorf("failed to count job seekers: %w", err)
		}

		if err := d.db.WithContext(ctx).
			Model(&models.JobSeeker{}).
			Where("stage = ?", models.StagePlaced).
			Count(&computed.Placed).Error; err != nil {
			return nil, fmt.Errorf("failed to count placed job seekers: %w", err)
		}

		if err := d.db.WithContext(ctx).
			Model(&models.JobSeeker{}).
			Where("stage = ?", models.StageInterview).
			Count(&computed.Interviews).Error; err != nil {
			return nil, fmt.Errorf("failed to count interviews: %w", err)
		}

		return &computed, nil
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetCourseDistribution groups students by course for the enrollment chart.
func (d *DashboardPostgreSQL) GetCourseDistribution(ctx context.Context) ([]models.CourseDistribution, error) {
	var distribution []models.CourseDistribution

	err := d.cacheManager.Stats.CacheOrExecute(ctx, "course_distribution", &distribution, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var computed []models.CourseDistribution
		if err := d.db.WithContext(ctx).
			Model(&models.Student{}).
			Select("course_name AS name, COUNT(*) AS value").
			Where("course_name <> ''").
			Group("course_name").
			Order("value DESC").
			Scan(&computed).Error; err != nil {
			return nil, fmt.Errorf("failed to get course distribution: %w", err)
		}
		return computed, nil
	})
	if err != nil {
		return nil, err
	}

	return distribution, nil
}

// GetRecentStudents returns the newest enrollments, uncached: the admin
// expects a fresh student to appear immediately.
func (d *DashboardPostgreSQL) GetRecentStudents(ctx context.Context, limit int) ([]*models.Student, error) {
	if limit <= 0 {
		limit = 5
	}

	var students []*models.Student
	if err := d.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent students: %w", err)
	}

	return students, nil
}
