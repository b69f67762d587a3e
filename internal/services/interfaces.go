package services

import (
	"context"

	"gorm.io/datatypes"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/models"
)

// ===== AUTH DTOs =====

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignInResponse carries everything the client needs to enter the portal:
// the access token, the resolved role and the route to land on.
type SignInResponse struct {
	Token      string      `json:"token"`
	UID        string      `json:"uid"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	AvatarURL  string      `json:"avatar_url,omitempty"`
	Role       models.Role `json:"role"`
	Unassigned bool        `json:"unassigned"`
	Redirect   string      `json:"redirect"`
}

type SessionResponse struct {
	UID        string      `json:"uid"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	AvatarURL  string      `json:"avatar_url,omitempty"`
	Role       models.Role `json:"role"`
	Unassigned bool        `json:"unassigned"`
	Redirect   string      `json:"redirect"`
}

// Actor identifies the authenticated caller inside service methods.
// Handlers build it from the verified token and the resolved role.
type Actor struct {
	UID  string
	Name string
	Role models.Role
}

// ===== STUDENT DTOs =====

type CreateStudentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	CourseID *uint  `json:"course_id" validate:"omitempty"`
}

type UpdateStudentRequest struct {
	Name     *string               `json:"name" validate:"omitempty,min=2,max=100"`
	Phone    *string               `json:"phone" validate:"omitempty,max=20"`
	CourseID *uint                 `json:"course_id" validate:"omitempty"`
	Status   *models.StudentStatus `json:"status" validate:"omitempty,student_status"`
}

type ListStudentsRequest struct {
	Page      int                   `json:"page"`
	PageSize  int                   `json:"page_size"`
	Query     string                `json:"query"`
	CourseID  *uint                 `json:"course_id"`
	Status    *models.StudentStatus `json:"status" validate:"omitempty,student_status"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type StudentListResponse struct {
	Students   []*models.Student `json:"students"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ===== MENTOR DTOs =====

type CreateMentorRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Expertise string `json:"expertise" validate:"omitempty,max=200"`
}

type UpdateMentorRequest struct {
	Name      *string              `json:"name" validate:"omitempty,min=2,max=100"`
	Phone     *string              `json:"phone" validate:"omitempty,max=20"`
	Expertise *string              `json:"expertise" validate:"omitempty,max=200"`
	Status    *models.MentorStatus `json:"status" validate:"omitempty,mentor_status"`
}

type ListMentorsRequest struct {
	Page      int                  `json:"page"`
	PageSize  int                  `json:"page_size"`
	Query     string               `json:"query"`
	Expertise *string              `json:"expertise"`
	Status    *models.MentorStatus `json:"status" validate:"omitempty,mentor_status"`
	SortBy    string               `json:"sort_by"`
	SortOrder string               `json:"sort_order"`
}

type MentorListResponse struct {
	Mentors    []*models.Mentor `json:"mentors"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ===== PIPELINE DTOs =====

// RegisterJobSeekerRequest is the public placement-registration form.
type RegisterJobSeekerRequest struct {
	Name             string         `json:"name" validate:"required,min=2,max=100"`
	Email            string         `json:"email" validate:"required,email"`
	Password         string         `json:"password" validate:"required,min=6"`
	Phone            string         `json:"phone" validate:"omitempty,max=20"`
	Gender           string         `json:"gender" validate:"omitempty,max=20"`
	TargetField      string         `json:"target_field" validate:"omitempty,max=100"`
	HighestEducation string         `json:"highest_education" validate:"omitempty,max=200"`
	DOB              string         `json:"dob" validate:"omitempty,max=20"`
	Education        datatypes.JSON `json:"education"`
	Skills           datatypes.JSON `json:"skills"`
	Experience       datatypes.JSON `json:"experience"`
}

type UpdateJobSeekerRequest struct {
	Name             *string         `json:"name" validate:"omitempty,min=2,max=100"`
	Phone            *string         `json:"phone" validate:"omitempty,max=20"`
	Gender           *string         `json:"gender" validate:"omitempty,max=20"`
	TargetField      *string         `json:"target_field" validate:"omitempty,max=100"`
	Company          *string         `json:"company" validate:"omitempty,max=200"`
	Remarks          *string         `json:"remarks" validate:"omitempty,max=1000"`
	HighestEducation *string         `json:"highest_education" validate:"omitempty,max=200"`
	DOB              *string         `json:"dob" validate:"omitempty,max=20"`
	Education        *datatypes.JSON `json:"education"`
	Skills           *datatypes.JSON `json:"skills"`
	Experience       *datatypes.JSON `json:"experience"`
}

type ListJobSeekersRequest struct {
	Page            int                   `json:"page"`
	PageSize        int                   `json:"page_size"`
	Query           string                `json:"query"`
	Stage           *models.PipelineStage `json:"stage" validate:"omitempty,pipeline_stage"`
	TargetField     *string               `json:"target_field"`
	Company         *string               `json:"company"`
	RegistrationFee *models.FeeStatus     `json:"registration_fee" validate:"omitempty,fee_status"`
	FinalFee        *models.FeeStatus     `json:"final_fee" validate:"omitempty,fee_status"`
	SortBy          string                `json:"sort_by"`
	SortOrder       string                `json:"sort_order"`
}

type JobSeekerListResponse struct {
	JobSeekers []*models.JobSeeker `json:"job_seekers"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

type SetStageRequest struct {
	Stage   models.PipelineStage `json:"stage" validate:"required,pipeline_stage"`
	Company string               `json:"company" validate:"omitempty,max=200"`
	Remarks string               `json:"remarks" validate:"omitempty,max=1000"`
}

type UpdateFeesRequest struct {
	RegistrationFee *models.FeeStatus `json:"registration_fee" validate:"omitempty,fee_status"`
	FinalFee        *models.FeeStatus `json:"final_fee" validate:"omitempty,fee_status"`
}

// ===== COURSE DTOs =====

type CreateCourseRequest struct {
	Title    string `json:"title" validate:"required,min=2,max=200"`
	Duration string `json:"duration" validate:"omitempty,max=50"`
	Mode     string `json:"mode" validate:"omitempty,max=50"`
	Fees     string `json:"fees" validate:"omitempty,max=50"`
}

type UpdateCourseRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=2,max=200"`
	Duration *string `json:"duration" validate:"omitempty,max=50"`
	Mode     *string `json:"mode" validate:"omitempty,max=50"`
	Fees     *string `json:"fees" validate:"omitempty,max=50"`
}

// ===== CHAT DTOs =====

type SendMessageRequest struct {
	ChatID string `json:"chat_id" validate:"required"`
	Text   string `json:"text" validate:"required,min=1,max=2000"`
}

type MessageListResponse struct {
	Messages   []*models.ChatMessage `json:"messages"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// ===== DASHBOARD DTOs =====

type DashboardOverview struct {
	Stats              *models.DashboardStats      `json:"stats"`
	CourseDistribution []models.CourseDistribution `json:"course_distribution"`
	RecentStudents     []*models.Student           `json:"recent_students"`
}

// ===== SETTINGS DTOs =====

type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateAdminProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

type DirectorySearchRequest struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type DirectoryListResponse struct {
	Users      []*models.DirectoryUser `json:"users"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	TotalPages int                     `json:"total_pages"`
}

// ===== SERVICE INTERFACES =====

// AuthService signs users in, verifies tokens and resolves roles.
type AuthService interface {
	// SignIn authenticates against the identity provider, resolves the
	// user's role and returns the session payload with a redirect target.
	SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error)

	// Session verifies a token and re-resolves the caller's role.
	Session(ctx context.Context, token string) (*SessionResponse, error)

	// Verify is the middleware entry point: token to principal and
	// resolution, no response shaping.
	Verify(ctx context.Context, token string) (*auth.Principal, auth.Resolution, error)
}

// StudentService manages growth-school student profiles.
type StudentService interface {
	CreateStudent(ctx context.Context, req *CreateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, uid string) (*models.Student, error)
	UpdateStudent(ctx context.Context, uid string, req *UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, uid string) error
	ListStudents(ctx context.Context, req *ListStudentsRequest) (*StudentListResponse, error)
}

// MentorService manages mentor profiles.
type MentorService interface {
	CreateMentor(ctx context.Context, req *CreateMentorRequest) (*models.Mentor, error)
	GetMentor(ctx context.Context, uid string) (*models.Mentor, error)
	UpdateMentor(ctx context.Context, uid string, req *UpdateMentorRequest) (*models.Mentor, error)
	DeleteMentor(ctx context.Context, uid string) error
	ListMentors(ctx context.Context, req *ListMentorsRequest) (*MentorListResponse, error)
}

// PipelineService manages job seekers through the placement pipeline.
type PipelineService interface {
	Register(ctx context.Context, req *RegisterJobSeekerRequest) (*models.JobSeeker, error)
	GetJobSeeker(ctx context.Context, uid string) (*models.JobSeeker, error)
	UpdateJobSeeker(ctx context.Context, uid string, req *UpdateJobSeekerRequest) (*models.JobSeeker, error)
	DeleteJobSeeker(ctx context.Context, uid string) error
	ListJobSeekers(ctx context.Context, req *ListJobSeekersRequest) (*JobSeekerListResponse, error)

	// AdvanceStage moves a job seeker to the next pipeline stage.
	AdvanceStage(ctx context.Context, uid string, changedBy string) (*models.JobSeeker, error)

	// SetStage moves a job seeker to an explicit stage.
	SetStage(ctx context.Context, uid string, req *SetStageRequest, changedBy string) (*models.JobSeeker, error)

	UpdateFees(ctx context.Context, uid string, req *UpdateFeesRequest) (*models.JobSeeker, error)
}

// CourseService manages the course catalog.
type CourseService interface {
	CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id uint) (*models.Course, error)
	UpdateCourse(ctx context.Context, id uint, req *UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uint) error
	ListCourses(ctx context.Context) ([]*models.Course, error)

	// ImportDefaults seeds the stock catalog; existing titles are skipped.
	ImportDefaults(ctx context.Context) (int, error)
}

// ChatService manages mentor-student conversations. The actor must be a
// participant of every conversation it touches.
type ChatService interface {
	// OpenChat returns the actor's conversation with the counterpart,
	// creating it on first contact.
	OpenChat(ctx context.Context, actor Actor, counterpartUID string) (*models.Chat, error)

	ListChats(ctx context.Context, actor Actor) ([]*models.Chat, error)
	SendMessage(ctx context.Context, actor Actor, req *SendMessageRequest) (*models.ChatMessage, error)

	// GetMessages pages through a conversation and clears the actor's
	// unread flag.
	GetMessages(ctx context.Context, actor Actor, chatID string, page, pageSize int) (*MessageListResponse, error)

	// UnreadCount counts the actor's conversations with unread messages.
	UnreadCount(ctx context.Context, actor Actor) (int64, error)
}

// DashboardService serves the admin landing-page aggregates.
type DashboardService interface {
	GetOverview(ctx context.Context) (*DashboardOverview, error)
}

// SettingsService manages admin accounts and exposes the identity
// directory.
type SettingsService interface {
	ListAdmins(ctx context.Context) ([]*models.Admin, error)
	CreateAdmin(ctx context.Context, req *CreateAdminRequest) (*models.Admin, error)

	// RemoveAdmin deletes an admin record. Admins cannot remove themselves.
	RemoveAdmin(ctx context.Context, actor Actor, uid string) error

	// GetProfile and UpdateProfile serve the signed-in admin's own
	// settings page. Updates merge: absent fields keep their value.
	GetProfile(ctx context.Context, uid string) (*models.Admin, error)
	UpdateProfile(ctx context.Context, uid string, req *UpdateAdminProfileRequest) (*models.Admin, error)

	SearchDirectory(ctx context.Context, req *DirectorySearchRequest) (*DirectoryListResponse, error)
}

// ExportService renders roster spreadsheets for download.
type ExportService interface {
	// ExportStudents returns an xlsx workbook of the student roster.
	ExportStudents(ctx context.Context) ([]byte, string, error)

	// ExportJobSeekers returns an xlsx workbook of the placement pipeline.
	ExportJobSeekers(ctx context.Context) ([]byte, string, error)
}

// ===== SERVICE MANAGER =====

// ServiceManager wires and owns every service instance.
type ServiceManager interface {
	GetAuthService() AuthService
	GetStudentService() StudentService
	GetMentorService() MentorService
	GetPipelineService() PipelineService
	GetCourseService() CourseService
	GetChatService() ChatService
	GetDashboardService() DashboardService
	GetSettingsService() SettingsService
	GetExportService() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
