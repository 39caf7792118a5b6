package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudySession is one open/close interval of tracked study time. It is
// created open (EndTime nil) and transitions exactly once to closed, at
// which point DurationMinutes is fixed.
type StudySession struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	CourseID        *uuid.UUID     `gorm:"type:uuid;index" json:"course_id,omitempty"`
	Course          *Course        `gorm:"constraint:OnDelete:SET NULL;foreignKey:CourseID;references:ID" json:"-"`
	SessionType     string         `gorm:"column:session_type;not null;default:'general'" json:"session_type"`
	StartTime       time.Time      `gorm:"column:start_time;not null" json:"start_time"`
	EndTime         *time.Time     `gorm:"column:end_time" json:"end_time,omitempty"`
	DurationMinutes *int           `gorm:"column:duration_minutes" json:"duration_minutes,omitempty"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (StudySession) TableName() string { return "study_session" }

// Closed reports whether the session has already ended.
func (s *StudySession) Closed() bool {
	return s.EndTime != nil
}
