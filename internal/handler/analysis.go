package handler

import (
	"net/http"
	"strings"

	"candlecast/internal/advisor"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// Analyze godoc
// @Summary      OHLC trend commentary for a trading pair
// @Description  Fetches the recent candle window and returns model-written analysis
// @Tags         commentary
// @Produce      json
// @Param        name_pair  query  string  true  "Trading pair symbol (e.g., BTCUSDT)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /analyze [get]
func (h *Handler) Analyze(c *gin.Context) {
	h.respond(c, h.analyzeVariant)
}

// Predict godoc
// @Summary      Price-level predictions for a trading pair
// @Description  Fetches the recent candle window and returns model-written predictions
// @Tags         commentary
// @Produce      json
// @Param        name_pair  query  string  true  "Trading pair symbol (e.g., BTCUSDT)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /predict [get]
func (h *Handler) Predict(c *gin.Context) {
	h.respond(c, h.predictVariant)
}

func (h *Handler) respond(c *gin.Context, variant advisor.Variant) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler."+variant.Name)
	defer span.End()

	namePair := strings.TrimSpace(c.Query("name_pair"))
	if namePair == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_pair parameter is required."})
		return
	}
	span.SetAttributes(attribute.String("symbol", namePair))

	text, err := h.analysis.Analyze(ctx, variant, namePair)
	if err != nil {
		// Upstream failures are reported in-band with a 200; existing
		// consumers match on the "error" key, not the status code.
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, variant.ResponseKey: text})
}
