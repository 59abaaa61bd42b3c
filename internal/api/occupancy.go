package api

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/adplanhq/mixengine/internal/mix"
)

// OccupancyHandler returns the per-placement monthly utilization table
// for a calendar year. Tables are cached in Redis until a booking or
// catalog write invalidates them.
func (s *Server) OccupancyHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "occupancy"
	const method = "GET"

	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		yearStr = strconv.Itoa(time.Now().Year())
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		s.Metrics.IncrementRequests(endpoint, method, "400")
		return
	}

	if s.Cache != nil && s.Cache.Client != nil {
		cached, err := s.Cache.GetOccupancy(year)
		if err != nil {
			s.Logger.Error("occupancy cache read", zap.Error(err))
		}
		if cached != nil {
			s.Metrics.IncrementOccupancyCacheLookups("hit")
			writeJSON(w, cached)
			s.Metrics.IncrementRequests(endpoint, method, "200")
			s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
			return
		}
		s.Metrics.IncrementOccupancyCacheLookups("miss")
	}

	table := mix.ComputeMonthlyOccupancy(
		s.Inventory.GetAllCatalogItems(),
		s.Inventory.GetAllBookings(),
		year,
	)

	if s.Cache != nil && s.Cache.Client != nil {
		if err := s.Cache.SetOccupancy(year, table, s.Config.OccupancyCacheTTL); err != nil {
			s.Logger.Error("occupancy cache write", zap.Error(err))
		}
	}

	writeJSON(w, table)
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
