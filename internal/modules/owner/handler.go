package owner

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
	owners := rg.Group("/owners")
	owners.POST("", h.create)
	owners.GET("/me", authMW, h.me)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateOwnerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	o, token, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, createResponse{Owner: toResponse(o), Token: token})
}

func (h *Handler) me(c *gin.Context) {
	o, err := h.svc.Get(c.Request.Context(), middleware.CurrentOwnerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(o))
}

func toResponse(o *models.OwnerModel) ownerResponse {
	return ownerResponse{ID: o.ID, Username: o.Username, Email: o.Email, CreatedAt: o.CreatedAt}
}
