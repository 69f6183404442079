package handler

import (
	"context"
	"net/http"

	"candlecast/internal/advisor"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Analyzer interface {
	Analyze(ctx context.Context, variant advisor.Variant, symbol string) (string, error)
}

type Handler struct {
	tracer         trace.Tracer
	analysis       Analyzer
	analyzeVariant advisor.Variant
	predictVariant advisor.Variant
}

func New(tracer trace.Tracer, analysis Analyzer, analyzeVariant, predictVariant advisor.Variant) *Handler {
	return &Handler{
		tracer:         tracer,
		analysis:       analysis,
		analyzeVariant: analyzeVariant,
		predictVariant: predictVariant,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/analyze", h.Analyze)
	r.GET("/predict", h.Predict)
}

// Health godoc
// @Summary      Health check
// @Tags         ops
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
