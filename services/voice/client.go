// File: services/voice/client.go
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ProviderCall mirrors the voice AI provider's call resource.
type ProviderCall struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Outcome      string  `json:"outcome"`
	Duration     int     `json:"duration_seconds"`
	Transcript   string  `json:"transcript"`
	RecordingURL string  `json:"recording_url"`
	Cost         float64 `json:"cost"`
	StartedAt    string  `json:"started_at"`
	EndedAt      string  `json:"ended_at"`
}

// PlaceCallRequest is the outbound call request sent to the provider.
type PlaceCallRequest struct {
	AgentID    string            `json:"agent_id"`
	FromNumber string            `json:"from_number"`
	ToNumber   string            `json:"to_number"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ProviderClient is the HTTP client for the third-party voice AI provider.
// It also fronts the provider's transactional SMS endpoint used for OTPs.
type ProviderClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewProviderClient builds a client with sane timeouts.
func NewProviderClient(baseURL, apiKey string, logger *zap.Logger) *ProviderClient {
	return &ProviderClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

func (c *ProviderClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("voice provider returned error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data))
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}
	return nil
}

// PlaceCall asks the provider to dial the lead with the given agent.
func (c *ProviderClient) PlaceCall(ctx context.Context, req PlaceCallRequest) (*ProviderCall, error) {
	var call ProviderCall
	if err := c.do(ctx, http.MethodPost, "/calls", req, &call); err != nil {
		return nil, fmt.Errorf("failed to place call: %w", err)
	}
	if call.ID == "" {
		return nil, fmt.Errorf("provider returned no call id")
	}
	return &call, nil
}

// GetCall fetches the current state of a provider call.
func (c *ProviderClient) GetCall(ctx context.Context, id string) (*ProviderCall, error) {
	var call ProviderCall
	if err := c.do(ctx, http.MethodGet, "/calls/"+id, nil, &call); err != nil {
		return nil, fmt.Errorf("failed to fetch call %s: %w", id, err)
	}
	return &call, nil
}

// SendSMS delivers a transactional SMS (OTP delivery path).
func (c *ProviderClient) SendSMS(ctx context.Context, to, message string) error {
	body := map[string]string{"to": to, "message": message}
	if err := c.do(ctx, http.MethodPost, "/sms", body, nil); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
