package repositories

import (
	"time"

	"github.com/pixalara/placement-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	CourseID  *uint                 `json:"course_id"`
	Status    *models.StudentStatus `json:"status"`
	Query     string                `json:"query"` // matches name or email
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "created_at", "name", "course_name"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}

type MentorFilters struct {
	Status    *models.MentorStatus `json:"status"`
	Expertise *string              `json:"expertise"`
	Query     string               `json:"query"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	SortBy    string               `json:"sort_by"`
	SortOrder string               `json:"sort_order"`
}

type JobSeekerFilters struct {
	Stage           *models.PipelineStage `json:"stage"`
	TargetField     *string               `json:"target_field"`
	Company         *string               `json:"company"`
	RegistrationFee *models.FeeStatus     `json:"registration_fee"`
	FinalFee        *models.FeeStatus     `json:"final_fee"`
	Query           string                `json:"query"`
	DateFrom        *time.Time            `json:"date_from"`
	DateTo          *time.Time            `json:"date_to"`
	Limit           int                   `json:"limit"`
	Offset          int                   `json:"offset"`
	SortBy          string                `json:"sort_by"`
	SortOrder       string                `json:"sort_order"`
}

type MessageFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type DirectoryFilters struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
