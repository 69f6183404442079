package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	_ "image/png"
)

// Runner is the external image model: one decoded input frame in, an
// ordered sequence of output frames back.
type Runner interface {
	Run(ctx context.Context, img image.Image) ([]image.Image, error)
}

// HTTPRunner sends the input frame to a model server as JPEG and decodes
// the frames it returns.
type HTTPRunner struct {
	endpoint string
	client   *http.Client
}

func NewHTTPRunner(endpoint string) *HTTPRunner {
	return &HTTPRunner{
		endpoint: endpoint,
		// Model inference is slow; the timeout covers a full GPU pass.
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (r *HTTPRunner) Run(ctx context.Context, img image.Image) ([]image.Image, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("encode input image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call inference: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Images []string `json:"images"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}

	out := make([]image.Image, 0, len(payload.Images))
	for i, encoded := range payload.Images {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode output image %d: %w", i, err)
		}
		frame, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse output image %d: %w", i, err)
		}
		out = append(out, frame)
	}
	return out, nil
}
