package trend

import (
	"time"

	"github.com/serenitysphere/core/internal/models"
)

type notificationResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	Severity    string    `json:"severity"`
	IsRead      bool      `json:"is_read"`
	IsDismissed bool      `json:"is_dismissed"`
	SeeksCause  bool      `json:"seeks_cause"`
	CreatedAt   time.Time `json:"created"`
}

func toResponse(n *models.NotificationModel) notificationResponse {
	return notificationResponse{
		ID:          n.ID,
		Kind:        string(n.Kind),
		Message:     n.Message,
		Severity:    string(n.Severity),
		IsRead:      n.IsRead,
		IsDismissed: n.IsDismissed,
		SeeksCause:  n.SeeksCause(),
		CreatedAt:   n.CreatedAt,
	}
}

func toResponses(ns []models.NotificationModel) []notificationResponse {
	out := make([]notificationResponse, len(ns))
	for i := range ns {
		out[i] = toResponse(&ns[i])
	}
	return out
}
