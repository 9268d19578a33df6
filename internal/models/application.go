package models

import (
	"strconv"
	"time"
)

const submissionDateLayout = "Jan 02, 2006"

type Application struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"type:text;not null" json:"name"`
	Email            string    `gorm:"type:text;not null" json:"email"`
	Domain           string    `gorm:"type:text;not null" json:"domain"`
	KeySkills        []string  `gorm:"type:text;serializer:json;not null" json:"key_skills"`
	MissingSkills    []string  `gorm:"type:text;serializer:json;not null" json:"missing_skills"`
	Score            int       `gorm:"not null;index" json:"score"`
	Analysis         string    `gorm:"type:text;not null" json:"analysis"`
	Overview         string    `gorm:"type:text;not null" json:"overview"`
	ResumePath       string    `gorm:"type:text;not null" json:"-"`
	OriginalFilename string    `gorm:"type:text" json:"original_filename"`
	Indexed          bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

// SubmissionDate formats CreatedAt the way the dashboard displays it.
func (a Application) SubmissionDate() string {
	return a.CreatedAt.Format(submissionDateLayout)
}

// PointKey is the identifier stored alongside the application's vector points.
func (a Application) PointKey() string {
	return strconv.FormatUint(uint64(a.ID), 10)
}
