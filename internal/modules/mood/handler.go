package mood

import (
	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/middleware"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	moods := rg.Group("/moods", authMW)
	moods.GET("", h.history)
	moods.POST("", h.log)
}

func (h *Handler) log(c *gin.Context) {
	var dto LogMoodDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rec, err := h.svc.Log(c.Request.Context(), middleware.CurrentOwnerID(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.toResponse(rec))
}

func (h *Handler) history(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	recs, err := h.svc.History(c.Request.Context(), middleware.CurrentOwnerID(c), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	items := make([]RecordResponse, len(recs))
	for i := range recs {
		items[i] = h.toResponse(&recs[i])
	}
	response.OK(c, items)
}

func (h *Handler) toResponse(r *models.MoodRecordModel) RecordResponse {
	return ToResponse(r, string(h.svc.Category(r.Mood)))
}

// ToResponse is shared with the journal handler, which embeds the linked record.
func ToResponse(r *models.MoodRecordModel, category string) RecordResponse {
	return RecordResponse{
		ID:             r.ID,
		Date:           r.Date,
		Mood:           r.Mood,
		Category:       category,
		Intensity:      r.Intensity,
		JournalEntryID: r.JournalEntryID,
		Notes:          r.Notes,
		Source:         string(r.Source),
		CreatedAt:      r.CreatedAt,
	}
}
