package repositories

import (
	"context"

	"github.com/pixalara/placement-service/internal/models"
)

// CourseRepository manages the course catalog.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	GetByTitle(ctx context.Context, title string) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Course, error)

	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// SeedDefaults inserts the stock catalog, skipping titles that already
	// exist. Returns how many courses were created.
	SeedDefaults(ctx context.Context) (int, error)
}
