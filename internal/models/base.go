package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities.
type Base struct {
	ID        string         `json:"id"       gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time      `json:"created"`
	UpdatedAt time.Time      `json:"modified"`
	DeletedAt gorm.DeletedAt `json:"-"        gorm:"index"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// DateLayout is the storage format of a logical date.
const DateLayout = "2006-01-02"

// LogicalDate returns the calendar day of t in time.Local, whatever offset t
// carries. One instant always lands on one day.
func LogicalDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}
