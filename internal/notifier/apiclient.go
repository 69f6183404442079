package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIClient calls the commentary endpoint over the network, the same way
// external consumers do.
type APIClient struct {
	endpoint string
	client   *http.Client
}

func NewAPIClient(endpoint string) *APIClient {
	return &APIClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *APIClient) FetchAnalysis(ctx context.Context, pair string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("name_pair", pair)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build analysis request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch analysis: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read analysis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analysis API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	// The endpoint reports upstream failures in-band with a 200, so the
	// error key has to be checked before the payload.
	var envelope struct {
		Success     bool   `json:"success"`
		Analysis    string `json:"analysis"`
		Predictions string `json:"predictions"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("decode analysis response: %w", err)
	}
	if envelope.Error != "" {
		return "", fmt.Errorf("analysis API error: %s", envelope.Error)
	}

	text := envelope.Analysis
	if text == "" {
		text = envelope.Predictions
	}
	if text == "" {
		return "", fmt.Errorf("analysis API returned an empty payload")
	}
	return text, nil
}
