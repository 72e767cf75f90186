package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	advicePath         = "/advice"
	maxAdviceBodyBytes = 64 << 10

	DefaultAdviceTimeout = 5 * time.Second
)

var ErrEmptyTip = errors.New("advice response has no tip")

// adviceWireRequest is the JSON body sent to the provider.
type adviceWireRequest struct {
	Action   string `json:"action"`
	ItemName string `json:"item_name"`
	Price    int    `json:"price"`
	Balance  int    `json:"balance"`
}

// adviceWireResponse is the JSON body returned by the provider.
type adviceWireResponse struct {
	Tip *string `json:"tip"`
}

// HTTPAdviceService implements AdviceService over the provider's HTTP API
type HTTPAdviceService struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure HTTPAdviceService implements AdviceService interface
var _ AdviceService = (*HTTPAdviceService)(nil)

// NewHTTPAdviceService creates a client for the provider at baseURL.
func NewHTTPAdviceService(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPAdviceService {
	if timeout <= 0 {
		timeout = DefaultAdviceTimeout
	}
	return &HTTPAdviceService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetAdvice posts the decision to the provider and returns its tip
func (s *HTTPAdviceService) GetAdvice(ctx context.Context, req AdviceRequest) (string, error) {
	reqBody, err := json.Marshal(adviceWireRequest{
		Action:   wireAction(req.Action),
		ItemName: req.ItemName,
		Price:    req.Price,
		Balance:  req.ResultingBalance,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+advicePath, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAdviceBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("advice request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var adviceResp adviceWireResponse
	if err := json.Unmarshal(body, &adviceResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if adviceResp.Tip == nil || strings.TrimSpace(*adviceResp.Tip) == "" {
		return "", ErrEmptyTip
	}

	s.logger.Debug("Advice received", "action", req.Action, "item", req.ItemName, "tip_length", len(*adviceResp.Tip))
	return strings.TrimSpace(*adviceResp.Tip), nil
}
