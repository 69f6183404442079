package bridge

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Job is the serverless-style invocation payload.
type Job struct {
	Input JobInput `json:"input"`
}

type JobInput struct {
	ImageURL string `json:"image_url"`
	WakeUp   bool   `json:"wake_up"`
}

type Processor interface {
	Process(ctx context.Context, imageURL string) ([]string, error)
}

// JobHandler exposes the bridge as an HTTP job endpoint.
type JobHandler struct {
	tracer    trace.Tracer
	processor Processor
}

func NewJobHandler(tracer trace.Tracer, processor Processor) *JobHandler {
	return &JobHandler{tracer: tracer, processor: processor}
}

func (h *JobHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/run", h.Run)
}

func (h *JobHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *JobHandler) Run(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "jobhandler.run")
	defer span.End()

	var job Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job payload: " + err.Error()})
		return
	}
	log.Printf("new process job: %+v", job.Input)

	// Wake probes must come back before any real work starts; they never
	// touch storage or the model.
	if job.Input.WakeUp {
		c.JSON(http.StatusOK, true)
		return
	}

	type result struct {
		urls []string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		urls, err := h.processor.Process(ctx, job.Input.ImageURL)
		done <- result{urls: urls, err: err}
	}()

	select {
	case <-ctx.Done():
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": ctx.Err().Error()})
	case res := <-done:
		if res.err != nil {
			log.Printf("process job failed: %v", res.err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.err.Error()})
			return
		}
		log.Printf("process job done: %d results", len(res.urls))
		c.JSON(http.StatusOK, res.urls)
	}
}
