package types

import (
	"time"

	"github.com/google/uuid"
)

// ConfidenceRecord holds a user's latest 1-3 self-rating for one practice
// question. At most one row exists per (user, question); re-rating updates
// the level in place.
type ConfidenceRecord struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index:idx_user_question,unique" json:"user_id"`
	User            *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	CourseID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"course_id"`
	Course          *Course           `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"-"`
	QuestionID      uuid.UUID         `gorm:"type:uuid;not null;index:idx_user_question,unique" json:"question_id"`
	Question        *PracticeQuestion `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"-"`
	ConfidenceLevel int               `gorm:"column:confidence_level;not null" json:"confidence_level"`
	CreatedAt       time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (ConfidenceRecord) TableName() string { return "confidence_record" }

const (
	ConfidenceLow    = 1
	ConfidenceMedium = 2
	ConfidenceHigh   = 3
)
