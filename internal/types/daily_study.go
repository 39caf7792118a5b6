package types

import (
	"time"

	"github.com/google/uuid"
)

// DailyStudy accumulates closed-session minutes for one user and calendar
// day. Rows are additive only: the progress subsystem never decrements or
// deletes them.
type DailyStudy struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_study_date,unique" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	StudyDate    time.Time `gorm:"column:study_date;type:date;not null;index:idx_user_study_date,unique" json:"study_date"`
	TotalMinutes int       `gorm:"column:total_minutes;not null;default:0" json:"total_minutes"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyStudy) TableName() string { return "daily_study" }
