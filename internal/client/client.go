// Package client is an HTTP client for the gasguard API, used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gasguard/gasguard/internal/mixture"
)

// Client is an HTTP client for the gasguard API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// EvaluateParams are the inputs for one evaluation.
type EvaluateParams struct {
	Flows   mixture.FlowInputs
	Patient mixture.PatientContext
}

// Outcome mirrors the server's evaluation response.
type Outcome struct {
	FiO2Pct        float64  `json:"fio2"`
	TotalFlow      float64  `json:"totalFlow"`
	Classification string   `json:"classification"`
	Indicator      string   `json:"indicator"`
	Explanation    string   `json:"explanation"`
	Alerts         []string `json:"alerts,omitempty"`
	Advisories     []string `json:"advisories,omitempty"`
	ThresholdsETag string   `json:"thresholdsEtag"`
	EvaluatedAt    string   `json:"evaluatedAt"`
}

// ThresholdsView mirrors the server's thresholds snapshot response.
type ThresholdsView struct {
	ETag       string             `json:"etag"`
	Thresholds mixture.Thresholds `json:"thresholds"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// Evaluate submits flows and patient context for classification.
func (c *Client) Evaluate(ctx context.Context, params EvaluateParams) (*Outcome, error) {
	payload := map[string]any{
		"flows":   params.Flows,
		"patient": params.Patient,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/mixture/evaluate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var outcome Outcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &outcome, nil
}

// GetThresholds retrieves the active threshold snapshot.
func (c *Client) GetThresholds(ctx context.Context) (*ThresholdsView, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/v1/thresholds", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var view ThresholdsView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &view, nil
}

// ThresholdsUpdate is a partial thresholds update; nil fields are unchanged.
type ThresholdsUpdate struct {
	ElderlyAgeYears         *int     `json:"elderlyAgeYears,omitempty"`
	HighRiskASA             *int     `json:"highRiskASA,omitempty"`
	HighRiskFiO2Pct         *float64 `json:"highRiskFiO2Pct,omitempty"`
	LowFlowTotalLPM         *float64 `json:"lowFlowTotalLPM,omitempty"`
	AgentMaxPct             *float64 `json:"agentMaxPct,omitempty"`
	AgentSensitivePct       *float64 `json:"agentSensitivePct,omitempty"`
	LowWeightKg             *float64 `json:"lowWeightKg,omitempty"`
	LowComplianceMLPerCmH2O *float64 `json:"lowComplianceMLPerCmH2O,omitempty"`
}

// UpdateThresholds applies a partial thresholds update and returns the new ETag.
func (c *Client) UpdateThresholds(ctx context.Context, update ThresholdsUpdate) (string, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", c.BaseURL+"/v1/thresholds", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var ack struct {
		OK   bool   `json:"ok"`
		ETag string `json:"etag"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return ack.ETag, nil
}

// EvaluateQuery builds the GET form of the evaluate endpoint; useful for
// quick checks with curl-style tooling.
func (c *Client) EvaluateQuery(params EvaluateParams) (string, error) {
	u, err := url.Parse(c.BaseURL + "/v1/mixture/evaluate")
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	q := u.Query()
	q.Set("o2", strconv.FormatFloat(params.Flows.O2, 'f', -1, 64))
	q.Set("n2o", strconv.FormatFloat(params.Flows.N2O, 'f', -1, 64))
	q.Set("air", strconv.FormatFloat(params.Flows.Air, 'f', -1, 64))
	if params.Flows.AgentPct > 0 {
		q.Set("agent", strconv.FormatFloat(params.Flows.AgentPct, 'f', -1, 64))
	}
	q.Set("age", strconv.Itoa(params.Patient.Age))
	q.Set("asa", strconv.Itoa(params.Patient.ASA))
	q.Set("weight", strconv.FormatFloat(params.Patient.WeightKg, 'f', -1, 64))
	if params.Patient.ComplianceMLPerCmH2O > 0 {
		q.Set("compliance", strconv.FormatFloat(params.Patient.ComplianceMLPerCmH2O, 'f', -1, 64))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func apiError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
}
