package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// Create inserts a course and invalidates the catalog cache.
func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Profile, "list:course:*")

	return nil
}

// GetByID retrieves a course by id.
func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

// GetByTitle retrieves a course by its unique title.
func (c *CoursePostgreSQL) GetByTitle(ctx context.Context, title string) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).Where("title = ?", title).First(&course).Error; err != nil {
		return nil, fmt.Errorf("failed to get course by title: %w", err)
	}
	return &course, nil
}

// Update saves course changes.
func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	result := c.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"title":    course.Title,
			"duration": course.Duration,
			"mode":     course.Mode,
			"fees":     course.Fees,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.SafeInvalidatePattern(ctx, c.cacheManager.Profile, "list:course:*")

	return nil
}

// Delete soft deletes a course.
func (c *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.SafeInvalidatePattern(ctx, c.cacheManager.Profile, "list:course:*")

	return nil
}

// List retrieves the full catalog with caching.
func (c *CoursePostgreSQL) List(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course

	err := c.cacheManager.Profile.CacheOrExecute(ctx, "list:course:all", &courses, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbCourses []*models.Course
		if err := c.db.WithContext(ctx).Order("title ASC").Find(&dbCourses).Error; err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		return dbCourses, nil
	})
	if err != nil {
		return nil, err
	}

	return courses, nil
}

// ExistsByTitle checks whether a course with the title exists.
func (c *CoursePostgreSQL) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("title = ?", title).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check course title: %w", err)
	}
	return count > 0, nil
}

// SeedDefaults inserts the stock catalog, one course per missing title.
func (c *CoursePostgreSQL) SeedDefaults(ctx context.Context) (int, error) {
	created := 0

	for _, course := range models.DefaultCourses {
		var existing models.Course
		err := c.db.WithContext(ctx).Where("title = ?", course.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("failed to check default course %q: %w", course.Title, err)
		}

		seed := course
		if err := c.db.WithContext(ctx).Create(&seed).Error; err != nil {
			return created, fmt.Errorf("failed to seed course %q: %w", course.Title, err)
		}
		created++
	}

	if created > 0 {
		cache.SafeInvalidatePattern(ctx, c.cacheManager.Profile, "list:course:*")
	}

	return created, nil
}
