package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jwebster45206/nitecrawlers/internal/engine"
	"github.com/jwebster45206/nitecrawlers/internal/handlers"
	"github.com/jwebster45206/nitecrawlers/pkg/item"
	"github.com/jwebster45206/nitecrawlers/pkg/ledger"
	"github.com/jwebster45206/nitecrawlers/pkg/recognition"
)

// apiClient talks to the NiteCrawlers API.
type apiClient struct {
	client  *http.Client
	baseURL string
}

func (a *apiClient) testConnection() bool {
	resp, err := a.client.Get(a.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// do sends an optional JSON body and decodes a 200 response into out.
func (a *apiClient) do(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (a *apiClient) getProfile() (*handlers.ProfileResponse, error) {
	var p handlers.ProfileResponse
	if err := a.do(http.MethodGet, "/v1/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *apiClient) onboard(allowance int, frequency string) (*handlers.ProfileResponse, error) {
	var p handlers.ProfileResponse
	req := handlers.AllowanceRequest{Allowance: &allowance, Frequency: frequency}
	if err := a.do(http.MethodPost, "/v1/profile", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *apiClient) reset() (*handlers.ProfileResponse, error) {
	var p handlers.ProfileResponse
	if err := a.do(http.MethodDelete, "/v1/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *apiClient) decide(action string, it *item.ScannedItem) (*engine.Result, error) {
	var res engine.Result
	req := handlers.DecisionRequest{Action: action, Item: it}
	if err := a.do(http.MethodPost, "/v1/decisions", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *apiClient) catalog() (*recognition.Catalog, error) {
	var c recognition.Catalog
	if err := a.do(http.MethodGet, "/v1/catalog", nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *apiClient) recognize(label string) (*item.ScannedItem, error) {
	var it item.ScannedItem
	if err := a.do(http.MethodGet, "/v1/catalog?label="+url.QueryEscape(label), nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (a *apiClient) transactions() ([]ledger.Transaction, error) {
	var resp handlers.TransactionsResponse
	if err := a.do(http.MethodGet, "/v1/transactions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}
