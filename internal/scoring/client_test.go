package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnalyze_Success(t *testing.T) {
	expected := AnalysisResult{
		ProductName: "Stainless Steel Water Bottle",
		EnvironmentalScore: EnvironmentalScore{
			CO2TotalKg:         12.3,
			WaterUsageLiters:   40,
			RecyclabilityScore: 60,
			DurabilityScore:    80,
			OverallEcoScore:    85,
			ConfidenceLevel:    90,
		},
		Recommendations: []string{"Buy refurbished"},
		Timestamp:       "2026-08-30T12:00:00Z",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		if r.URL.Path != "/analyze" {
			t.Errorf("expected path /analyze, got %s", r.URL.Path)
		}

		var reqBody AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		if reqBody.URL != "https://www.example.com/dp/B000123" {
			t.Errorf("expected product URL in request, got %s", reqBody.URL)
		}

		if !reqBody.Detailed {
			t.Error("expected detailed flag to be set")
		}

		if !reqBody.Cache {
			t.Error("expected cache flag to be set")
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(expected); err != nil {
			t.Fatalf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	result, err := client.Analyze(context.Background(), "https://www.example.com/dp/B000123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ProductName != expected.ProductName {
		t.Errorf("expected product name %s, got %s", expected.ProductName, result.ProductName)
	}

	if result.EnvironmentalScore.OverallEcoScore != expected.EnvironmentalScore.OverallEcoScore {
		t.Errorf("expected eco score %v, got %v",
			expected.EnvironmentalScore.OverallEcoScore, result.EnvironmentalScore.OverallEcoScore)
	}

	if len(result.Recommendations) != 1 || result.Recommendations[0] != "Buy refurbished" {
		t.Errorf("unexpected recommendations: %v", result.Recommendations)
	}
}

func TestAnalyze_NonOKStatus(t *testing.T) {
	statuses := []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError}

	for _, status := range statuses {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client, err := New(server.URL, WithHTTPClient(server.Client()))
		if err != nil {
			t.Fatalf("unexpected error creating client: %v", err)
		}

		_, err = client.Analyze(context.Background(), "https://www.example.com/dp/B000123")
		if err == nil {
			t.Errorf("status %d: expected an error, got nil", status)
		}

		server.Close()
	}
}

func TestNew_MissingBaseURL(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrMissingBaseURL) {
		t.Errorf("expected ErrMissingBaseURL, got %v", err)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	client, err := New("http://localhost:8080/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("expected trimmed base URL, got %s", client.baseURL)
	}
}
