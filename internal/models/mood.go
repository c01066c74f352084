package models

// MoodSource tells how a mood record came to exist.
type MoodSource string

const (
	MoodSourceDerived MoodSource = "derived"
	MoodSourceManual  MoodSource = "manual"
)

// MoodRecordModel is one mood observation for an owner on a date.
// Derived records always carry JournalEntryID; manual ones never do.
type MoodRecordModel struct {
	Base
	OwnerID        string     `json:"owner_id"         gorm:"type:char(36);not null;index:idx_mood_owner_date,priority:1"`
	Date           string     `json:"date"             gorm:"type:char(10);not null;index:idx_mood_owner_date,priority:2"`
	Mood           string     `json:"mood"             gorm:"size:32;not null;default:neutral"`
	Intensity      int        `json:"intensity"        gorm:"not null"`
	JournalEntryID *string    `json:"journal_entry_id" gorm:"type:char(36);index"`
	Notes          string     `json:"notes"            gorm:"type:text"`
	Source         MoodSource `json:"source"           gorm:"size:16;not null;default:derived"`
}

func (MoodRecordModel) TableName() string { return "mood_records" }

// MoodCauseModel is an owner's answer to "what caused this?".
type MoodCauseModel struct {
	Base
	OwnerID        string  `json:"owner_id"        gorm:"type:char(36);not null;index"`
	NotificationID *string `json:"notification_id" gorm:"type:char(36);index"`
	Cause          string  `json:"cause"           gorm:"size:64;not null"`
	Notes          string  `json:"notes"           gorm:"type:text"`
}

func (MoodCauseModel) TableName() string { return "mood_causes" }
