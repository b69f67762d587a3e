package repositories

import "context"

// Repository aggregates all repository interfaces
type Repository interface {
	// Role-backed profile stores, in resolution order
	Admin() AdminRepository
	Student() StudentRepository
	JobSeeker() JobSeekerRepository
	Mentor() MentorRepository

	// Course catalog
	Course() CourseRepository

	// Mentor-student messaging
	Chat() ChatRepository

	// Identity directory (read-only, backed by Casdoor)
	Directory() DirectoryRepository

	// Dashboard aggregates
	Dashboard() DashboardRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
