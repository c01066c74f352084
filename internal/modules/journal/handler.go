package journal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/middleware"
	"github.com/serenitysphere/core/internal/modules/mood"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/serenitysphere/core/internal/pkg/pagination"
	"github.com/serenitysphere/core/internal/pkg/response"
)

type Handler struct {
	svc   *Service
	vocab *vocabulary.Vocabulary
}

func NewHandler(svc *Service, vocab *vocabulary.Vocabulary) *Handler {
	return &Handler{svc: svc, vocab: vocab}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	j := rg.Group("/journal", authMW)
	j.POST("", h.submit)
	j.GET("", h.list)
	j.GET("/date/:date", h.getByDate)
	j.GET("/:id", h.get)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.svc.Submit(c.Request.Context(), middleware.CurrentOwnerID(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.Created {
		response.Created(c, h.toResponse(res))
		return
	}
	c.JSON(http.StatusOK, h.toResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.List(c.Request.Context(), middleware.CurrentOwnerID(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]entryResponse, len(items))
	for i := range items {
		out[i] = h.toResponse(&items[i])
	}
	response.Paged(c, out, pag)
}

func (h *Handler) get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), middleware.CurrentOwnerID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.toResponse(res))
}

func (h *Handler) getByDate(c *gin.Context) {
	res, err := h.svc.GetByDate(c.Request.Context(), middleware.CurrentOwnerID(c), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.toResponse(res))
}

func (h *Handler) toResponse(r *Result) entryResponse {
	e := r.Entry
	out := entryResponse{
		ID:          e.ID,
		Date:        e.Date,
		EntryAt:     e.EntryAt,
		Content:     e.Content,
		ContentHTML: renderContent(e.Content),
		Emotions:    mood.Rank(e.Emotions),
		Summary:     mood.FormatScores(e.Emotions),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if r.Mood != nil {
		m := mood.ToResponse(r.Mood, string(h.vocab.CategoryOf(r.Mood.Mood)))
		out.Mood = &m
	}
	return out
}
