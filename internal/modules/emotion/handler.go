package emotion

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/mood"
	"github.com/serenitysphere/core/internal/pkg/response"
)

const maxDetectLength = 20000

type DetectDTO struct {
	Text string `json:"text" binding:"required"`
}

type detectResponse struct {
	Emotions  []models.EmotionScore `json:"emotions"`
	Formatted string                `json:"formatted"`
	Mood      string                `json:"mood,omitempty"`
	Intensity int                   `json:"intensity,omitempty"`
}

type Handler struct {
	classifier Classifier
	derive     func([]models.EmotionScore) (mood.Draft, bool)
}

func NewHandler(c Classifier, derive func([]models.EmotionScore) (mood.Draft, bool)) *Handler {
	return &Handler{classifier: c, derive: derive}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/emotions/detect", authMW, h.detect)
}

// detect runs the classifier without persisting anything.
func (h *Handler) detect(c *gin.Context) {
	var dto DetectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	text := strings.TrimSpace(dto.Text)
	if text == "" || len([]rune(text)) > maxDetectLength {
		response.BadRequest(c, "text must be between 1 and 20000 characters")
		return
	}
	scores, err := h.classifier.Classify(c.Request.Context(), text)
	if err != nil {
		response.Error(c, err)
		return
	}
	resp := detectResponse{Emotions: mood.Rank(scores), Formatted: mood.FormatScores(scores)}
	if h.derive != nil {
		if d, ok := h.derive(scores); ok {
			resp.Mood, resp.Intensity = d.Mood, d.Intensity
		}
	}
	response.OK(c, resp)
}
