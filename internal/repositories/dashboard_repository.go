package repositories

import (
	"context"

	"github.com/pixalara/placement-service/internal/models"
)

// DashboardRepository serves the admin landing-page aggregates.
type DashboardRepository interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
	GetCourseDistribution(ctx context.Context) ([]models.CourseDistribution, error)

	// GetRecentStudents returns the newest enrollments for the admin
	// landing page.
	GetRecentStudents(ctx context.Context, limit int) ([]*models.Student, error)
}
