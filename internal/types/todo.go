package types

import (
	"time"

	"github.com/google/uuid"
)

type Todo struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	CourseID  *uuid.UUID `gorm:"type:uuid;index" json:"course_id,omitempty"`
	Course    *Course    `gorm:"constraint:OnDelete:SET NULL;foreignKey:CourseID;references:ID" json:"-"`
	Text      string     `gorm:"column:text;not null" json:"text"`
	Completed bool       `gorm:"column:completed;not null;default:false" json:"completed"`
	DueDate   *time.Time `gorm:"column:due_date;type:date" json:"due_date,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Todo) TableName() string { return "todo" }
