package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ===== STUDENT =====

type StudentStatus string

const (
	StudentEnrolled  StudentStatus = "Enrolled"
	StudentActive    StudentStatus = "Active"
	StudentCompleted StudentStatus = "Completed"
)

// Student is the growth-school profile keyed by the principal's uid.
type Student struct {
	UID   string `json:"uid" gorm:"primaryKey;size:255"`
	Name  string `json:"name" gorm:"not null;size:100"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone string `json:"phone" gorm:"size:20"`

	// Course assignment is denormalized: the name is copied onto the
	// student row so listings never join against courses.
	CourseID   *uint  `json:"course_id"`
	CourseName string `json:"course_name" gorm:"size:200"`

	Status StudentStatus `json:"status" gorm:"size:20;default:'Enrolled'"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Student) TableName() string {
	return "growth_students"
}

// ===== MENTOR =====

type MentorStatus string

const (
	MentorActive   MentorStatus = "Active"
	MentorInactive MentorStatus = "Inactive"
)

type Mentor struct {
	UID       string       `json:"uid" gorm:"primaryKey;size:255"`
	Name      string       `json:"name" gorm:"not null;size:100"`
	Email     string       `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone     string       `json:"phone" gorm:"size:20"`
	Expertise string       `json:"expertise" gorm:"size:200"`
	Status    MentorStatus `json:"status" gorm:"size:20;default:'Active'"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Mentor) TableName() string {
	return "mentors"
}

// ===== JOB SEEKER =====

type PipelineStage string

const (
	StageRegistered PipelineStage = "registered"
	StageInterview  PipelineStage = "interview"
	StagePlaced     PipelineStage = "placed"
	StageRejected   PipelineStage = "rejected"
)

// PipelineStages lists the stages in pipeline order.
var PipelineStages = []PipelineStage{StageRegistered, StageInterview, StagePlaced, StageRejected}

// NextStage returns the stage following current, wrapping back to
// registered from the last stage.
func NextStage(current PipelineStage) PipelineStage {
	for i, s := range PipelineStages {
		if s == current && i < len(PipelineStages)-1 {
			return PipelineStages[i+1]
		}
	}
	return StageRegistered
}

type FeeStatus string

const (
	FeePending FeeStatus = "Pending"
	FeePaid    FeeStatus = "Paid"
)

// JobSeeker is the placement-pipeline profile keyed by the principal's uid.
type JobSeeker struct {
	UID         string `json:"uid" gorm:"primaryKey;size:255"`
	Name        string `json:"name" gorm:"not null;size:100"`
	Email       string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone       string `json:"phone" gorm:"size:20"`
	Gender      string `json:"gender" gorm:"size:20"`
	TargetField string `json:"target_field" gorm:"size:100"`

	Stage   PipelineStage `json:"stage" gorm:"size:20;default:'registered'"`
	Company string        `json:"company" gorm:"size:200"`
	Remarks string        `json:"remarks" gorm:"size:1000"`

	RegistrationFee FeeStatus `json:"registration_fee" gorm:"size:20;default:'Pending'"`
	FinalFee        FeeStatus `json:"final_fee" gorm:"size:20;default:'Pending'"`

	// Free-form resume data captured at registration.
	HighestEducation string         `json:"highest_education" gorm:"size:200"`
	DOB              string         `json:"dob" gorm:"size:20"`
	Education        datatypes.JSON `json:"education"`
	Skills           datatypes.JSON `json:"skills"`
	Experience       datatypes.JSON `json:"experience"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (JobSeeker) TableName() string {
	return "job_seekers"
}

// ===== ADMIN =====

type Admin struct {
	UID   string `json:"uid" gorm:"primaryKey;size:255"`
	Name  string `json:"name" gorm:"size:100"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone string `json:"phone" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}
