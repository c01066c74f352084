package models

import (
	"time"

	"gorm.io/datatypes"
)

// EmotionScore is a single classifier label with its confidence.
type EmotionScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// JournalEntryModel is the canonical daily entry of an owner.
// (owner_id, date) is indexed but intentionally not unique: the journal
// service keeps it to one row under the owner lock.
type JournalEntryModel struct {
	Base
	OwnerID  string                            `json:"owner_id" gorm:"type:char(36);not null;index:idx_journal_owner_date,priority:1"`
	Date     string                            `json:"date"     gorm:"type:char(10);not null;index:idx_journal_owner_date,priority:2"`
	EntryAt  time.Time                         `json:"entry_at"`
	Content  string                            `json:"content"  gorm:"type:longtext"`
	Emotions datatypes.JSONSlice[EmotionScore] `json:"emotions"`
}

func (JournalEntryModel) TableName() string { return "journal_entries" }

// JournalReminderModel records that an inactivity reminder went out on a date.
type JournalReminderModel struct {
	Base
	OwnerID string `json:"owner_id" gorm:"type:char(36);not null;index:idx_reminder_owner_date,priority:1"`
	Date    string `json:"date"     gorm:"type:char(10);not null;index:idx_reminder_owner_date,priority:2"`
	Kind    string `json:"kind"     gorm:"size:16"` // streak | regular
	Streak  int    `json:"streak"`
}

func (JournalReminderModel) TableName() string { return "journal_reminders" }

const (
	ReminderStreak  = "streak"
	ReminderRegular = "regular"
)
