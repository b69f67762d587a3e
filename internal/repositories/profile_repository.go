package repositories

import (
	"context"

	"github.com/pixalara/placement-service/internal/models"
)

// AdminRepository backs the admins role store. Admin records carry no
// profile beyond identity; membership itself is the privilege.
type AdminRepository interface {
	// Role store surface
	Role() models.Role
	Contains(ctx context.Context, uid string) (bool, error)

	Create(ctx context.Context, admin *models.Admin) error
	GetByUID(ctx context.Context, uid string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	List(ctx context.Context) ([]*models.Admin, error)
	Delete(ctx context.Context, uid string) error
}

// StudentRepository backs the growth_students role store and the student
// profile CRUD used by the admin console.
type StudentRepository interface {
	// Role store surface
	Role() models.Role
	Contains(ctx context.Context, uid string) (bool, error)

	Create(ctx context.Context, student *models.Student) error
	GetByUID(ctx context.Context, uid string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, uid string) error
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)

	Count(ctx context.Context) (int64, error)
	CountByCourse(ctx context.Context) ([]models.CourseDistribution, error)
}

// JobSeekerRepository backs the job_seekers role store and the placement
// pipeline.
type JobSeekerRepository interface {
	// Role store surface
	Role() models.Role
	Contains(ctx context.Context, uid string) (bool, error)

	Create(ctx context.Context, seeker *models.JobSeeker) error
	GetByUID(ctx context.Context, uid string) (*models.JobSeeker, error)
	Update(ctx context.Context, seeker *models.JobSeeker) error
	Delete(ctx context.Context, uid string) error
	List(ctx context.Context, filters JobSeekerFilters) ([]*models.JobSeeker, int64, error)

	UpdateStage(ctx context.Context, uid string, stage models.PipelineStage) error
	UpdateFees(ctx context.Context, uid string, registration, final *models.FeeStatus) error

	Count(ctx context.Context) (int64, error)
	CountByStage(ctx context.Context, stage models.PipelineStage) (int64, error)
}

// MentorRepository backs the mentors role store.
type MentorRepository interface {
	// Role store surface
	Role() models.Role
	Contains(ctx context.Context, uid string) (bool, error)

	Create(ctx context.Context, mentor *models.Mentor) error
	GetByUID(ctx context.Context, uid string) (*models.Mentor, error)
	Update(ctx context.Context, mentor *models.Mentor) error
	Delete(ctx context.Context, uid string) error
	List(ctx context.Context, filters MentorFilters) ([]*models.Mentor, int64, error)

	Count(ctx context.Context) (int64, error)
}
