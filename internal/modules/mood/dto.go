package mood

import "time"

type LogMoodDTO struct {
	Mood      string `json:"mood"      binding:"required"`
	Intensity int    `json:"intensity" binding:"required"`
	Notes     string `json:"notes"`
	Date      string `json:"date"`
}

type HistoryQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type RecordResponse struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"`
	Mood           string    `json:"mood"`
	Category       string    `json:"category"`
	Intensity      int       `json:"intensity"`
	JournalEntryID *string   `json:"journal_entry_id"`
	Notes          string    `json:"notes"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created"`
}
