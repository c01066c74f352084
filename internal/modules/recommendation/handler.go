package recommendation

import (
	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/middleware"
	"github.com/serenitysphere/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	recs := rg.Group("/recommendations", authMW)
	recs.GET("", h.list)
	recs.POST("/exposures/:id/feedback", h.feedback)

	rg.POST("/moods/causes", authMW, h.cause)
}

func (h *Handler) list(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if q.Limit < 0 {
		response.BadRequest(c, "limit must not be negative")
		return
	}
	exposures, err := h.svc.Select(c.Request.Context(), middleware.CurrentOwnerID(c), q.Cause, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toItems(exposures))
}

func (h *Handler) cause(c *gin.Context) {
	var dto CauseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.svc.RecordCause(c.Request.Context(), middleware.CurrentOwnerID(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, causeResponse{
		ID:              res.Cause.ID,
		NotificationID:  res.Cause.NotificationID,
		Cause:           res.Cause.Cause,
		Notes:           res.Cause.Notes,
		CreatedAt:       res.Cause.CreatedAt,
		Recommendations: toItems(res.Exposures),
	})
}

func (h *Handler) feedback(c *gin.Context) {
	var dto FeedbackDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	e, err := h.svc.RecordFeedback(c.Request.Context(), middleware.CurrentOwnerID(c), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, exposureResponse{
		ID:               e.ID,
		RecommendationID: e.RecommendationID,
		CauseID:          e.CauseID,
		IsHelpful:        e.IsHelpful,
		Feedback:         e.Feedback,
		CreatedAt:        e.CreatedAt,
	})
}
