package journal

import (
	"time"

	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/mood"
)

type SubmitDTO struct {
	Content   string     `json:"content"   binding:"required"`
	Timestamp *time.Time `json:"timestamp"`
}

type entryResponse struct {
	ID          string                `json:"id"`
	Date        string                `json:"date"`
	EntryAt     time.Time             `json:"entry_at"`
	Content     string                `json:"content"`
	ContentHTML string                `json:"content_html"`
	Emotions    []models.EmotionScore `json:"emotions"`
	Summary     string                `json:"emotion_summary"`
	Mood        *mood.RecordResponse  `json:"mood"`
	CreatedAt   time.Time             `json:"created"`
	UpdatedAt   time.Time             `json:"modified"`
}
