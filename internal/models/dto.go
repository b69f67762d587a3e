package models

import (
	"time"
)

// ===== DASHBOARD DTOs =====

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	Students   int64 `json:"students"`
	JobSeekers int64 `json:"job_seekers"`
	Placed     int64 `json:"placed"`
	Interviews int64 `json:"interviews"`
}

// CourseDistribution is one slice of the per-course enrollment chart.
type CourseDistribution struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
