package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/cache"
	"github.com/pixalara/placement-service/internal/config"
	"github.com/pixalara/placement-service/internal/repositories"
	"github.com/pixalara/placement-service/internal/repositories/casdoor"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	admin     repositories.AdminRepository
	student   repositories.StudentRepository
	jobSeeker repositories.JobSeekerRepository
	mentor    repositories.MentorRepository
	course    repositories.CourseRepository
	chat      repositories.ChatRepository
	directory repositories.DirectoryRepository
	dashboard repositories.DashboardRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB            *gorm.DB
	RedisClient   *redis.Client
	CasdoorConfig config.CasdoorConfig
}

// NewPostgreSQLRepository creates a new repository facade with all sub-repositories
func NewPostgreSQLRepository(cfg RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(cfg.RedisClient)

	repo := &PostgreSQLRepository{
		db:           cfg.DB,
		redisClient:  cfg.RedisClient,
		cacheManager: cacheManager,
	}

	// Role-backed profile stores
	repo.admin = NewAdminPostgreSQL(cfg.DB, cacheManager)
	repo.student = NewStudentPostgreSQL(cfg.DB, cacheManager)
	repo.jobSeeker = NewJobSeekerPostgreSQL(cfg.DB, cacheManager)
	repo.mentor = NewMentorPostgreSQL(cfg.DB, cacheManager)

	repo.course = NewCoursePostgreSQL(cfg.DB, cacheManager)
	repo.chat = NewChatPostgreSQL(cfg.DB, cacheManager)
	repo.dashboard = NewDashboardPostgreSQL(cfg.DB, cacheManager)

	// Directory is read from Casdoor, not Postgres
	repo.directory = casdoor.NewDirectoryCasdoor(cfg.CasdoorConfig, cfg.RedisClient)

	return repo
}

// Admin returns the admins role store
func (r *PostgreSQLRepository) Admin() repositories.AdminRepository {
	return r.admin
}

// Student returns the growth_students role store
func (r *PostgreSQLRepository) Student() repositories.StudentRepository {
	return r.student
}

// JobSeeker returns the job_seekers role store
func (r *PostgreSQLRepository) JobSeeker() repositories.JobSeekerRepository {
	return r.jobSeeker
}

// Mentor returns the mentors role store
func (r *PostgreSQLRepository) Mentor() repositories.MentorRepository {
	return r.mentor
}

// Course returns the course repository
func (r *PostgreSQLRepository) Course() repositories.CourseRepository {
	return r.course
}

// Chat returns the chat repository
func (r *PostgreSQLRepository) Chat() repositories.ChatRepository {
	return r.chat
}

// Directory returns the identity directory repository
func (r *PostgreSQLRepository) Directory() repositories.DirectoryRepository {
	return r.directory
}

// Dashboard returns the dashboard repository
func (r *PostgreSQLRepository) Dashboard() repositories.DashboardRepository {
	return r.dashboard
}

// WithTransaction executes a function within a database transaction
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Create a new repository instance bound to the transaction
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}

		txRepo.admin = NewAdminPostgreSQL(tx, r.cacheManager)
		txRepo.student = NewStudentPostgreSQL(tx, r.cacheManager)
		txRepo.jobSeeker = NewJobSeekerPostgreSQL(tx, r.cacheManager)
		txRepo.mentor = NewMentorPostgreSQL(tx, r.cacheManager)
		txRepo.course = NewCoursePostgreSQL(tx, r.cacheManager)
		txRepo.chat = NewChatPostgreSQL(tx, r.cacheManager)
		txRepo.dashboard = NewDashboardPostgreSQL(tx, r.cacheManager)

		// Directory is external; transactions don't apply
		txRepo.directory = r.directory

		return fn(txRepo)
	})
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(cfg RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{
		config: cfg,
	}
}

// Initialize initializes all repositories and connections
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("Redis connection failed: %w", err)
		}
	}

	rm.repo = NewPostgreSQLRepository(rm.config)

	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
