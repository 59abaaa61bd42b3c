package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adplanhq/mixengine/internal/mix"
	"github.com/adplanhq/mixengine/internal/models"
)

type scaleLineRequest struct {
	Item models.CatalogItem `json:"item"`
	Days int                `json:"days"`
}

// ScaleLineHandler scales a single catalog item to a campaign length.
// Used when a planner adds or edits one line by hand.
func (s *Server) ScaleLineHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "scale_line"
	const method = "POST"

	var req scaleLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		s.Metrics.IncrementRequests(endpoint, method, "400")
		return
	}
	if req.Days < 1 {
		http.Error(w, "days must be at least 1", http.StatusBadRequest)
		s.Metrics.IncrementRequests(endpoint, method, "400")
		return
	}

	line := mix.Scale(req.Item, req.Days)
	writeJSON(w, line)
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}

type summaryRequest struct {
	Lines          []models.MediaMixLine `json:"lines"`
	BudgetTotal    int64                 `json:"budget_total"`
	DiscountRate   int                   `json:"discount_rate"`
	CommissionRate int                   `json:"commission_rate"`
	DurationDays   int                   `json:"duration_days"`
}

// SummaryHandler recomputes the financial summary for a manually edited
// line set. Lines may exceed the budget; the residual reports it.
func (s *Server) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "summary"
	const method = "POST"

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		s.Metrics.IncrementRequests(endpoint, method, "400")
		return
	}
	if req.DurationDays <= 0 {
		req.DurationDays = s.Config.DefaultDurationDays
	}

	result := mix.Aggregate(req.Lines, req.BudgetTotal, req.DiscountRate, req.DurationDays)
	result.CommissionAmount = mix.Commission(result.DiscountedSubtotal, req.CommissionRate)

	writeJSON(w, result)
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
