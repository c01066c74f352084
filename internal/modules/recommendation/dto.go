package recommendation

import (
	"time"

	"github.com/serenitysphere/core/internal/models"
)

type ListQuery struct {
	Cause string `form:"cause"`
	Limit int    `form:"limit"`
}

type CauseDTO struct {
	NotificationID *string `json:"notification_id"`
	Cause          string  `json:"cause" binding:"required"`
	Notes          string  `json:"notes"`
}

type FeedbackDTO struct {
	IsHelpful *bool  `json:"is_helpful" binding:"required"`
	Feedback  string `json:"feedback"`
}

type itemResponse struct {
	ExposureID  string `json:"exposure_id"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Link        string `json:"link,omitempty"`
}

type causeResponse struct {
	ID              string         `json:"id"`
	NotificationID  *string        `json:"notification_id"`
	Cause           string         `json:"cause"`
	Notes           string         `json:"notes"`
	CreatedAt       time.Time      `json:"created"`
	Recommendations []itemResponse `json:"recommendations"`
}

type exposureResponse struct {
	ID               string    `json:"id"`
	RecommendationID string    `json:"recommendation_id"`
	CauseID          *string   `json:"cause_id"`
	IsHelpful        *bool     `json:"is_helpful"`
	Feedback         string    `json:"feedback"`
	CreatedAt        time.Time `json:"created"`
}

func toItems(exposures []models.RecommendationExposureModel) []itemResponse {
	out := make([]itemResponse, 0, len(exposures))
	for i := range exposures {
		e := &exposures[i]
		item := itemResponse{ExposureID: e.ID, ID: e.RecommendationID}
		if r := e.Recommendation; r != nil {
			item.Title = r.Title
			item.Description = r.Description
			item.Type = r.Type
			item.Category = r.Category
			item.Link = r.Link
		}
		out = append(out, item)
	}
	return out
}
