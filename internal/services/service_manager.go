package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/events"
	"github.com/pixalara/placement-service/internal/repositories"
	"github.com/pixalara/placement-service/internal/utils"
	"github.com/pixalara/placement-service/internal/validator"
)

// ServiceManagerConfig carries everything the manager needs to build the
// service graph.
type ServiceManagerConfig struct {
	Repository     repositories.Repository
	Provider       auth.Provider
	EventPublisher events.EventPublisher
	Validator      *validator.Validator
	Logger         *slog.Logger

	// ProbeTimeout bounds each role-store lookup during resolution.
	ProbeTimeout time.Duration

	// DetectAmbiguity keeps probing past the first role match so stale
	// duplicate records get reported.
	DetectAmbiguity bool
}

type serviceManager struct {
	config ServiceManagerConfig

	authService      AuthService
	studentService   StudentService
	mentorService    MentorService
	pipelineService  PipelineService
	courseService    CourseService
	chatService      ChatService
	dashboardService DashboardService
	settingsService  SettingsService
	exportService    ExportService

	mu          sync.RWMutex
	initialized bool
	shutdown    bool
}

// NewServiceManager creates an uninitialized service manager. Call
// Initialize before requesting services.
func NewServiceManager(config ServiceManagerConfig) (ServiceManager, error) {
	if config.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if config.Provider == nil {
		return nil, fmt.Errorf("auth provider is required")
	}
	if config.EventPublisher == nil {
		return nil, fmt.Errorf("event publisher is required")
	}
	if config.Validator == nil {
		config.Validator = validator.New()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &serviceManager{config: config}, nil
}

// Initialize builds the role resolver and every service.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return fmt.Errorf("service manager already initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager has been shut down")
	}

	logger := sm.config.Logger
	logger.Info("initializing services")

	repo := sm.config.Repository

	// The four profile repositories double as the resolver's role stores.
	stores := []auth.RoleStore{
		repo.Admin(),
		repo.Student(),
		repo.JobSeeker(),
		repo.Mentor(),
	}

	sink := events.NewResolutionSink(sm.config.EventPublisher, logger)

	resolver, err := auth.NewResolver(stores, utils.NewSlogLogger(logger), auth.ResolverOptions{
		ProbeTimeout:    sm.config.ProbeTimeout,
		DetectAmbiguity: sm.config.DetectAmbiguity,
		Sink:            sink,
	})
	if err != nil {
		return fmt.Errorf("failed to build role resolver: %w", err)
	}

	v := sm.config.Validator
	provider := sm.config.Provider
	publisher := sm.config.EventPublisher

	sm.authService = NewAuthService(provider, resolver, v, logger)
	logger.Info("auth service initialized")

	sm.studentService = NewStudentService(repo, provider, v, logger)
	logger.Info("student service initialized")

	sm.mentorService = NewMentorService(repo, provider, v, logger)
	logger.Info("mentor service initialized")

	sm.pipelineService = NewPipelineService(repo, provider, publisher, v, logger)
	logger.Info("pipeline service initialized")

	sm.courseService = NewCourseService(repo, v, logger)
	logger.Info("course service initialized")

	sm.chatService = NewChatService(repo, publisher, v, logger)
	logger.Info("chat service initialized")

	sm.dashboardService = NewDashboardService(repo, logger)
	logger.Info("dashboard service initialized")

	sm.settingsService = NewSettingsService(repo, provider, v, logger)
	logger.Info("settings service initialized")

	sm.exportService = NewExportService(repo, logger)
	logger.Info("export service initialized")

	sm.initialized = true
	logger.Info("all services initialized")

	return nil
}

// ===== SERVICE GETTERS =====

func (sm *serviceManager) GetAuthService() AuthService {
	sm.ensureInitialized()
	return sm.authService
}

func (sm *serviceManager) GetStudentService() StudentService {
	sm.ensureInitialized()
	return sm.studentService
}

func (sm *serviceManager) GetMentorService() MentorService {
	sm.ensureInitialized()
	return sm.mentorService
}

func (sm *serviceManager) GetPipelineService() PipelineService {
	sm.ensureInitialized()
	return sm.pipelineService
}

func (sm *serviceManager) GetCourseService() CourseService {
	sm.ensureInitialized()
	return sm.courseService
}

func (sm *serviceManager) GetChatService() ChatService {
	sm.ensureInitialized()
	return sm.chatService
}

func (sm *serviceManager) GetDashboardService() DashboardService {
	sm.ensureInitialized()
	return sm.dashboardService
}

func (sm *serviceManager) GetSettingsService() SettingsService {
	sm.ensureInitialized()
	return sm.settingsService
}

func (sm *serviceManager) GetExportService() ExportService {
	sm.ensureInitialized()
	return sm.exportService
}

func (sm *serviceManager) ensureInitialized() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized; call Initialize first")
	}
	if sm.shutdown {
		panic("service manager has been shut down")
	}
}

// ===== LIFECYCLE =====

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager has been shut down")
	}

	if err := sm.config.Repository.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.config.Logger.Info("shutting down services")

	if err := sm.config.EventPublisher.Close(); err != nil {
		sm.config.Logger.Error("failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	return nil
}
