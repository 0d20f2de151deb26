package timer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APISubmitter posts focus time to the stats tracking endpoint with a
// bearer token.
type APISubmitter struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewAPISubmitter(baseURL, token string) *APISubmitter {
	return &APISubmitter{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *APISubmitter) Submit(ctx context.Context, focusSeconds int) error {
	payload, err := json.Marshal(map[string]int{"focusTime": focusSeconds})
	if err != nil {
		return fmt.Errorf("marshal focus time: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/stats/track",
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("build track request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post focus time: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("track rejected with status %d: %s", resp.StatusCode, body)
	}
	return nil
}
