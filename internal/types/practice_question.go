package types

import (
	"time"

	"github.com/google/uuid"
)

type PracticeQuestion struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course     *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Question   string    `gorm:"column:question;not null" json:"question"`
	Answer     string    `gorm:"column:answer;not null" json:"answer"`
	Difficulty string    `gorm:"column:difficulty;not null;default:'medium'" json:"difficulty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PracticeQuestion) TableName() string { return "practice_question" }
