package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProcessor struct {
	urls  []string
	err   error
	calls int
}

func (s *stubProcessor) Process(ctx context.Context, imageURL string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.urls, nil
}

func newJobRouter(p Processor) *gin.Engine {
	h := NewJobHandler(testTracer(), p)
	router := gin.New()
	h.RegisterRoutes(router)
	return router
}

func TestRunWakeProbe(t *testing.T) {
	processor := &stubProcessor{urls: []string{"unused"}}
	router := newJobRouter(processor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"input":{"wake_up":true}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "true" {
		t.Fatalf("wake probe must return true, got %s", w.Body.String())
	}
	if processor.calls != 0 {
		t.Fatal("wake probe must not start the pipeline")
	}
}

func TestRunSuccess(t *testing.T) {
	urls := []string{
		"https://imgs.sgp1.cdn.example.com/out_0.jpg",
		"https://imgs.sgp1.cdn.example.com/out_1.jpg",
	}
	router := newJobRouter(&stubProcessor{urls: urls})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"input":{"image_url":"https://example.com/cat.jpg"}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(got) != 2 || got[0] != urls[0] || got[1] != urls[1] {
		t.Fatalf("unexpected urls: %v", got)
	}
}

func TestRunPipelineFailure(t *testing.T) {
	router := newJobRouter(&stubProcessor{err: errors.New("inference: model crashed")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"input":{"image_url":"https://example.com/cat.jpg"}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Pipeline failures surface as job failures, unlike the commentary
	// endpoint's in-band 200 envelope.
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !strings.Contains(resp["error"], "model crashed") {
		t.Fatalf("error lost the cause: %s", resp["error"])
	}
}

func TestRunInvalidPayload(t *testing.T) {
	processor := &stubProcessor{}
	router := newJobRouter(processor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"input":`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if processor.calls != 0 {
		t.Fatal("pipeline must not run for an invalid payload")
	}
}
