package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

// Role identifies the store for the resolver.
func (s *StudentPostgreSQL) Role() models.Role {
	return models.RoleStudent
}

// Contains reports whether uid has a student record.
func (s *StudentPostgreSQL) Contains(ctx context.Context, uid string) (bool, error) {
	return probeMembership(ctx, s.db, s.cacheManager, &models.Student{}, string(models.RoleStudent), uid)
}

// Create inserts a student profile and invalidates the uid's role caches.
func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}

	cache.InvalidateRoleCache(ctx, s.cacheManager, student.UID)
	cache.SafeInvalidatePattern(ctx, s.cacheManager.Profile, "list:student:*")
	cache.SafeInvalidatePattern(ctx, s.cacheManager.Stats, "*")

	return nil
}

// GetByUID retrieves a student by uid with caching.
func (s *StudentPostgreSQL) GetByUID(ctx context.Context, uid string) (*models.Student, error) {
	cacheKey := fmt.Sprintf("student:%s", uid)
	var student models.Student

	err := s.cacheManager.Profile.CacheOrExecute(ctx, cacheKey, &student, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbStudent models.Student
		if err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&dbStudent).Error; err != nil {
			return nil, fmt.Errorf("failed to get student: %w", err)
		}
		return &dbStudent, nil
	})
	if err != nil {
		return nil, err
	}

	return &student, nil
}

// Update saves profile changes and invalidates the profile cache.
func (s *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	result := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("uid = ?", student.UID).
		Updates(map[string]interface{}{
			"name":        student.Name,
			"email":       student.Email,
			"phone":       student.Phone,
			"course_id":   student.CourseID,
			"course_name": student.CourseName,
			"status":      student.Status,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateProfileCache(ctx, s.cacheManager, string(models.RoleStudent), student.UID)

	return nil
}

// Delete soft deletes a student and invalidates the uid's role caches.
func (s *StudentPostgreSQL) Delete(ctx context.Context, uid string) error {
	result := s.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Student{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateRoleCache(ctx, s.cacheManager, uid)
	cache.InvalidateProfileCache(ctx, s.cacheManager, string(models.RoleStudent), uid)

	return nil
}

// List retrieves students with filters and pagination.
func (s *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Student{})

	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	query = s.helpers.ApplySearchQuery(query, filters.Query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var students []*models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}

	return students, total, nil
}

// Count returns the number of active students.
func (s *StudentPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// CountByCourse groups students by their denormalized course name for the
// enrollment chart.
func (s *StudentPostgreSQL) CountByCourse(ctx context.Context) ([]models.CourseDistribution, error) {
	var distribution []models.CourseDistribution

	err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Select("course_name AS name, COUNT(*) AS value").
		Where("course_name <> ''").
		Group("course_name").
		Order("value DESC").
		Scan(&distribution).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count students by course: %w", err)
	}

	return distribution, nil
}
