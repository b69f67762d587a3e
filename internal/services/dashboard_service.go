package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixalara/placement-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewDashboardService creates the admin dashboard service.
func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
	}
}

// recentStudentLimit is how many of the newest enrollments the landing
// page shows.
const recentStudentLimit = 5

// GetOverview assembles the admin landing page: headline counters, the
// per-course enrollment distribution, and the newest enrollments.
func (s *dashboardService) GetOverview(ctx context.Context) (*DashboardOverview, error) {
	stats, err := s.repo.Dashboard().GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	distribution, err := s.repo.Dashboard().GetCourseDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get course distribution: %w", err)
	}

	recent, err := s.repo.Dashboard().GetRecentStudents(ctx, recentStudentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent students: %w", err)
	}

	return &DashboardOverview{
		Stats:              stats,
		CourseDistribution: distribution,
		RecentStudents:     recent,
	}, nil
}
