// Package api provides the HTTP surface of the environmental scoring
// service consumed by the browser companion.
package api

import (
	"crypto/md5" //nolint:gosec // cache key only, no security property
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/theopenlane/ecolens/internal/ecoscore"
	"github.com/theopenlane/ecolens/internal/scoring"
)

// serviceName identifies this service in health and info responses
const serviceName = "ecolens"

// serviceVersion is reported by the root info endpoint
const serviceVersion = "1.0.0"

// Handler manages API endpoints. Analyze responses are memoized in-process
// keyed by URL hash; entries never expire for the handler's lifetime.
type Handler struct {
	// mu guards the memoized analyze responses
	mu    sync.RWMutex
	cache map[string]scoring.AnalysisResult
}

// NewHandler creates a handler with an empty response cache
func NewHandler() *Handler {
	return &Handler{
		cache: make(map[string]scoring.AnalysisResult),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Service   string `json:"service" example:"ecolens"`
	Timestamp string `json:"timestamp" example:"2026-08-30T10:30:00Z"`
}

// handleHealth returns service health status
//
//	@Summary		Health check
//	@Description	Returns the health status of the scoring service
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// InfoResponse describes the service at the root endpoint
type InfoResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// handleRoot returns service identification and the available endpoints
func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Status:    "active",
		Service:   "Environmental Impact Engine",
		Version:   serviceVersion,
		Endpoints: []string{"/analyze", "/materials", "/health"},
	})
}

// handleAnalyze computes the environmental assessment for one product URL
//
//	@Summary		Analyze product
//	@Description	Calculates environmental impact metrics for a product listing URL
//	@Tags			analyze
//	@Accept			json
//	@Produce		json
//	@Param			request	body		scoring.AnalysisRequest	true	"Product URL with detail and cache flags"
//	@Success		200		{object}	scoring.AnalysisResult
//	@Failure		400		{object}	Error
//	@Router			/analyze [post]
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req scoring.AnalysisRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.URL == "" {
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrURLRequired.Error())
		return
	}

	key := cacheKey(req.URL)

	if req.Cache {
		h.mu.RLock()
		cached, ok := h.cache[key]
		h.mu.RUnlock()

		if ok {
			cached.Cached = true
			writeJSON(w, http.StatusOK, cached)

			return
		}
	}

	result := buildResult(ecoscore.Assess(req.URL), req.Detailed)

	if req.Cache {
		h.mu.Lock()
		h.cache[key] = result
		h.mu.Unlock()
	}

	writeJSON(w, http.StatusOK, result)
}

// MaterialsResponse wraps the material reference database
type MaterialsResponse struct {
	Materials map[string]ecoscore.Material `json:"materials"`
	Info      string                       `json:"info"`
}

// handleMaterials returns the material factor database for reference
//
//	@Summary		Materials database
//	@Description	Returns the built-in material environmental factors
//	@Tags			materials
//	@Produce		json
//	@Success		200	{object}	MaterialsResponse
//	@Router			/materials [get]
func (h *Handler) handleMaterials(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MaterialsResponse{
		Materials: ecoscore.MaterialTable(),
		Info:      "CO2 in kg per kg of material, water in liters per kg",
	})
}

// cacheKey hashes a product URL into a cache key
func cacheKey(url string) string {
	sum := md5.Sum([]byte(url)) //nolint:gosec // cache key only, no security property

	return hex.EncodeToString(sum[:])
}

// buildResult shapes an assessment into the wire response
func buildResult(a ecoscore.Assessment, detailed bool) scoring.AnalysisResult {
	result := scoring.AnalysisResult{
		ProductName: a.ProductName,
		EnvironmentalScore: scoring.EnvironmentalScore{
			CO2TotalKg:         a.CO2TotalKg,
			WaterUsageLiters:   a.WaterUsageLiters,
			RecyclabilityScore: a.Recyclability,
			DurabilityScore:    a.Durability,
			OverallEcoScore:    a.EcoScore,
			ConfidenceLevel:    a.Confidence,
		},
		Recommendations: a.Recommendations,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}

	if detailed {
		result.Details = &scoring.AnalysisDetails{
			Materials:         a.Materials,
			EstimatedWeightKg: a.WeightKg,
			Origin:            a.Origin,
			CO2Breakdown: scoring.CO2Breakdown{
				Manufacturing: a.CO2ManufacturingKg,
				Transport:     a.CO2TransportKg,
			},
		}
	}

	return result
}
