package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

type JobSeekerPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewJobSeekerPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.JobSeekerRepository {
	return &JobSeekerPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

// Role identifies the store for the resolver.
func (j *JobSeekerPostgreSQL) Role() models.Role {
	return models.RoleJobSeeker
}

// Contains reports whether uid has a job seeker record.
func (j *JobSeekerPostgreSQL) Contains(ctx context.Context, uid string) (bool, error) {
	return probeMembership(ctx, j.db, j.cacheManager, &models.JobSeeker{}, string(models.RoleJobSeeker), uid)
}

// Create inserts a job seeker profile and invalidates the uid's role caches.
func (j *JobSeekerPostgreSQL) Create(ctx context.Context, seeker *models.JobSeeker) error {
	if err := j.db.WithContext(ctx).Create(seeker).Error; err != nil {
		return fmt.Errorf("failed to create job seeker: %w", err)
	}

	cache.InvalidateRoleCache(ctx, j.cacheManager, seeker.UID)
	cache.SafeInvalidatePattern(ctx, j.cacheManager.Profile, "list:job_seeker:*")
	cache.SafeInvalidatePattern(ctx, j.cacheManager.Stats, "*")

	return nil
}

// GetByUID retrieves a job seeker by uid with caching.
func (j *JobSeekerPostgreSQL) GetByUID(ctx context.Context, uid string) (*models.JobSeeker, error) {
	cacheKey := fmt.Sprintf("job_seeker:%s", uid)
	var seeker models.JobSeeker

	err := j.cacheManager.Profile.CacheOrExecute(ctx, cacheKey, &seeker, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbSeeker models.JobSeeker
		if err := j.db.WithContext(ctx).Where("uid = ?", uid).First(&dbSeeker).Error; err != nil {
			return nil, fmt.Errorf("failed to get job seeker: %w", err)
		}
		return &dbSeeker, nil
	})
	if err != nil {
		return nil, err
	}

	return &seeker, nil
}

// Update saves profile changes and invalidates the profile cache.
func (j *JobSeekerPostgreSQL) Update(ctx context.Context, seeker *models.JobSeeker) error {
	result := j.db.WithContext(ctx).
		Model(&models.JobSeeker{}).
		Where("uid = ?", seeker.UID).
		Updates(map[string]interface{}{
			"name":              seeker.Name,
			"email":             seeker.Email,
			"phone":             seeker.Phone,
			"gender":            seeker.Gender,
			"target_field":      seeker.TargetField,
			"company":           seeker.Company,
			"remarks":           seeker.Remarks,
			"highest_education": seeker.HighestEducation,
			"dob":               seeker.DOB,
			"education":         seeker.Education,
			"skills":            seeker.Skills,
			"experience":        seeker.Experience,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update job seeker: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateProfileCache(ctx, j.cacheManager, string(models.RoleJobSeeker), seeker.UID)

	return nil
}

// Delete soft deletes a job seeker and invalidates the uid's role caches.
func (j *JobSeekerPostgreSQL) Delete(ctx context.Context, uid string) error {
	result := j.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.JobSeeker{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job seeker: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateRoleCache(ctx, j.cacheManager, uid)
	cache.InvalidateProfileCache(ctx, j.cacheManager, string(models.RoleJobSeeker), uid)

	return nil
}

// List retrieves job seekers with filters and pagination.
func (j *JobSeekerPostgreSQL) List(ctx context.Context, filters repositories.JobSeekerFilters) ([]*models.JobSeeker, int64, error) {
	query := j.db.WithContext(ctx).Model(&models.JobSeeker{})

	if filters.Stage != nil {
		query = query.Where("stage = ?", *filters.Stage)
	}
	if filters.TargetField != nil {
		query = query.Where("target_field = ?", *filters.TargetField)
	}
	if filters.Company != nil {
		query = query.Where("company ILIKE ?", "%"+*filters.Company+"%")
	}
	if filters.RegistrationFee != nil {
		query = query.Where("registration_fee = ?", *filters.RegistrationFee)
	}
	if filters.FinalFee != nil {
		query = query.Where("final_fee = ?", *filters.FinalFee)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	query = j.helpers.ApplySearchQuery(query, filters.Query)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count job seekers: %w", err)
	}

	query = j.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var seekers []*models.JobSeeker
	if err := query.Find(&seekers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list job seekers: %w", err)
	}

	return seekers, total, nil
}

// UpdateStage moves a job seeker to a new pipeline stage.
func (j *JobSeekerPostgreSQL) UpdateStage(ctx context.Context, uid string, stage models.PipelineStage) error {
	result := j.db.WithContext(ctx).
		Model(&models.JobSeeker{}).
		Where("uid = ?", uid).
		Update("stage", stage)
	if result.Error != nil {
		return fmt.Errorf("failed to update pipeline stage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateProfileCache(ctx, j.cacheManager, string(models.RoleJobSeeker), uid)

	return nil
}

// UpdateFees updates fee statuses. Nil fields are left untouched.
func (j *JobSeekerPostgreSQL) UpdateFees(ctx context.Context, uid string, registration, final *models.FeeStatus) error {
	updates := map[string]interface{}{}
	if registration != nil {
		updates["registration_fee"] = *registration
	}
	if final != nil {
		updates["final_fee"] = *final
	}
	if len(updates) == 0 {
		return nil
	}

	result := j.db.WithContext(ctx).
		Model(&models.JobSeeker{}).
		Where("uid = ?", uid).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update fees: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateProfileCache(ctx, j.cacheManager, string(models.RoleJobSeeker), uid)

	return nil
}

// Count returns the number of job seekers.
func (j *JobSeekerPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := j.db.WithContext(ctx).Model(&models.JobSeeker{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count job seekers: %w", err)
	}
	return count, nil
}

// CountByStage returns the number of job seekers in a pipeline stage.
func (j *JobSeekerPostgreSQL) CountByStage(ctx context.Context, stage models.PipelineStage) (int64, error) {
	var count int64
	if err := j.db.WithContext(ctx).
		Model(&models.JobSeeker{}).
		Where("stage = ?", stage).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count job seekers by stage: %w", err)
	}
	return count, nil
}
