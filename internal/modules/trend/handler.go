package trend

import (
	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/middleware"
	"github.com/serenitysphere/core/internal/pkg/pagination"
	"github.com/serenitysphere/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/trends/analyze", authMW, h.analyze)
	rg.GET("/moods/trends", authMW, h.summary)

	n := rg.Group("/notifications", authMW)
	n.GET("", h.list)
	n.POST("/:id/read", h.read)
	n.POST("/:id/dismiss", h.dismiss)
}

func (h *Handler) analyze(c *gin.Context) {
	created, err := h.svc.Analyze(c.Request.Context(), middleware.CurrentOwnerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponses(created))
}

func (h *Handler) summary(c *gin.Context) {
	period, err := ParsePeriod(c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}
	s, err := h.svc.Summarize(c.Request.Context(), middleware.CurrentOwnerID(c), period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, s)
}

func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.Notifications(c.Request.Context(), middleware.CurrentOwnerID(c),
		c.Query("unread") == "true", pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, toResponses(items), pag)
}

func (h *Handler) read(c *gin.Context) {
	n, err := h.svc.MarkRead(c.Request.Context(), middleware.CurrentOwnerID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(n))
}

func (h *Handler) dismiss(c *gin.Context) {
	n, err := h.svc.Dismiss(c.Request.Context(), middleware.CurrentOwnerID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(n))
}
