package api_test

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/gasguard/gasguard/internal/testutil"
)

type evaluateBody struct {
	FiO2Pct        float64  `json:"fio2"`
	TotalFlow      float64  `json:"totalFlow"`
	Classification string   `json:"classification"`
	Indicator      string   `json:"indicator"`
	Explanation    string   `json:"explanation"`
	Alerts         []string `json:"alerts"`
	Advisories     []string `json:"advisories"`
	ThresholdsETag string   `json:"thresholdsEtag"`
	EvaluatedAt    string   `json:"evaluatedAt"`
}

func decodeEvaluate(t *testing.T, body string) evaluateBody {
	t.Helper()
	var resp evaluateBody
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v (%s)", err, body)
	}
	return resp
}

func TestEvaluatePOST(t *testing.T) {
	resetPolicy(t)
	srv, _ := testutil.NewTestServer(t, "test-key")
	handler := srv.Router()

	tests := []struct {
		name          string
		body          string
		wantFiO2      float64
		wantClass     string
		wantIndicator string
	}{
		{
			name:          "pure oxygen normal",
			body:          `{"flows":{"o2":1.0},"patient":{"age":30,"asa":2,"weight":70}}`,
			wantFiO2:      100,
			wantClass:     "NORMAL",
			wantIndicator: "green",
		},
		{
			name:          "elderly clinical warning",
			body:          `{"flows":{"o2":0.1,"air":0.9},"patient":{"age":70,"asa":2,"weight":60}}`,
			wantFiO2:      28.9,
			wantClass:     "CLINICAL_WARNING",
			wantIndicator: "orange",
		},
		{
			name:          "low total flow",
			body:          `{"flows":{"o2":0.05,"air":0.15},"patient":{"age":30,"asa":2,"weight":70}}`,
			wantFiO2:      40.75,
			wantClass:     "LOW_FLOW_WARNING",
			wantIndicator: "orange",
		},
		{
			name:          "hypoxic critical",
			body:          `{"flows":{"n2o":0.5,"air":0.5},"patient":{"age":30,"asa":2,"weight":70}}`,
			wantFiO2:      10.5,
			wantClass:     "CRITICAL_HYPOXIC",
			wantIndicator: "red",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := (&testutil.HTTPRequest{
				Method: http.MethodPost,
				Path:   "/v1/mixture/evaluate",
				Body:   tt.body,
			}).Do(t, handler)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}
			resp := decodeEvaluate(t, rr.Body.String())
			if math.Abs(resp.FiO2Pct-tt.wantFiO2) > 1e-9 {
				t.Errorf("fio2 = %v, want %v", resp.FiO2Pct, tt.wantFiO2)
			}
			if resp.Classification != tt.wantClass {
				t.Errorf("classification = %s, want %s", resp.Classification, tt.wantClass)
			}
			if resp.Indicator != tt.wantIndicator {
				t.Errorf("indicator = %s, want %s", resp.Indicator, tt.wantIndicator)
			}
			if resp.ThresholdsETag == "" {
				t.Error("expected thresholdsEtag to be set")
			}
			if resp.EvaluatedAt == "" {
				t.Error("expected evaluatedAt to be set")
			}
		})
	}
}

func TestEvaluatePOST_BadRequests(t *testing.T) {
	resetPolicy(t)
	srv, _ := testutil.NewTestServer(t, "test-key")
	handler := srv.Router()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "invalid JSON", body: `{not json`, wantCode: "INVALID_JSON"},
		{name: "missing flows", body: `{"patient":{"age":30,"asa":2,"weight":70}}`, wantCode: "MISSING_FIELD"},
		{name: "missing patient", body: `{"flows":{"o2":1.0}}`, wantCode: "MISSING_FIELD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := (&testutil.HTTPRequest{
				Method: http.MethodPost,
				Path:   "/v1/mixture/evaluate",
				Body:   tt.body,
			}).Do(t, handler)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.wantCode) {
				t.Errorf("body = %s, want code %s", rr.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestEvaluatePOST_ValidationErrors(t *testing.T) {
	resetPolicy(t)
	srv, _ := testutil.NewTestServer(t, "test-key")
	handler := srv.Router()

	rr := (&testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/v1/mixture/evaluate",
		Body:   `{"flows":{"o2":0,"n2o":0,"air":0},"patient":{"age":0,"asa":7,"weight":-1}}`,
	}).Do(t, handler)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}

	var resp struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %s, want VALIDATION_ERROR", resp.Code)
	}
	for _, field := range []string{"flows", "age", "asa", "weight"} {
		if _, ok := resp.Fields[field]; !ok {
			t.Errorf("fields = %v, want entry for %q", resp.Fields, field)
		}
	}
}

func TestEvaluateGET(t *testing.T) {
	resetPolicy(t)
	srv, _ := testutil.NewTestServer(t, "test-key")
	handler := srv.Router()

	rr := (&testutil.HTTPRequest{
		Method: http.MethodGet,
		Path:   "/v1/mixture/evaluate?o2=0.2&air=0.8&age=30&asa=2&weight=70",
	}).Do(t, handler)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeEvaluate(t, rr.Body.String())
	if math.Abs(resp.FiO2Pct-36.8) > 1e-9 {
		t.Errorf("fio2 = %v, want 36.8", resp.FiO2Pct)
	}
	if resp.Classification != "NORMAL" {
		t.Errorf("classification = %s, want NORMAL", resp.Classification)
	}
}

func TestEvaluateGET_InvalidParams(t *testing.T) {
	resetPolicy(t)
	srv, _ := testutil.NewTestServer(t, "test-key")
	handler := srv.Router()

	tests := []struct {
		name string
		path string
	}{
		{name: "non-numeric flow", path: "/v1/mixture/evaluate?o2=abc&age=30&asa=2&weight=70"},
		{name: "non-integer age", path: "/v1/mixture/evaluate?o2=1&age=thirty&asa=2&weight=70"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := (&testutil.HTTPRequest{Method: http.MethodGet, Path: tt.path}).Do(t, handler)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "INVALID_PARAM") {
				t.Errorf("body = %s, want INVALID_PARAM", rr.Body.String())
			}
		})
	}
}

func TestEvaluatePOST_ExplanationMentionsAllHazards(t *testing.T) {
	resetPolicy(t)
	srv, _ := testutil.NewTestServer(t, "test-key")
	handler := srv.Router()

	// low flow and hypoxic at once: single classification, both messages
	rr := (&testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/v1/mixture/evaluate",
		Body:   `{"flows":{"n2o":0.2,"air":0.1},"patient":{"age":30,"asa":2,"weight":70}}`,
	}).Do(t, handler)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeEvaluate(t, rr.Body.String())
	if resp.Classification != "CRITICAL_HYPOXIC" {
		t.Errorf("classification = %s, want CRITICAL_HYPOXIC", resp.Classification)
	}
	if !strings.Contains(resp.Explanation, "Hypoxic mixture") || !strings.Contains(resp.Explanation, "Low fresh gas flow") {
		t.Errorf("explanation = %q, want both hazards mentioned", resp.Explanation)
	}
}
