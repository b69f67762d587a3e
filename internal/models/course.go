package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"uniqueIndex;not null;size:200"`
	Duration string `json:"duration" gorm:"size:50"`
	Mode     string `json:"mode" gorm:"size:50"`
	Fees     string `json:"fees" gorm:"size:50"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}

// DefaultCourses is the Pixalara catalog seeded by the import-defaults
// operation. Import is idempotent on course title.
var DefaultCourses = []Course{
	{Title: "DevOps Masterclass", Duration: "3.5 Months", Mode: "Live Interactive", Fees: "₹ 30,000"},
	{Title: "AWS Cloud Architect", Duration: "2.5 Months", Mode: "Live Classes", Fees: "₹ 25,000"},
	{Title: "RedHat Linux Administration", Duration: "1.5 Months", Mode: "Live + Recorded", Fees: "₹ 15,000"},
	{Title: "Cyber Security Specialist", Duration: "4 Months", Mode: "Live Bootcamp", Fees: "₹ 35,000"},
}
