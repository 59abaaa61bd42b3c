package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adplanhq/mixengine/internal/models"
)

// ProposalHandler generates a media mix proposal for the posted input.
// Catalog and existing bookings default to the server's inventory when
// the request omits them, so a thin client can post just a budget and
// campaign window.
func (s *Server) ProposalHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "proposal"
	const method = "POST"

	var input models.MediaMixInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		s.Metrics.IncrementRequests(endpoint, method, "400")
		return
	}

	if len(input.Catalog) == 0 && s.Inventory != nil {
		input.Catalog = s.Inventory.GetAllCatalogItems()
	}
	if len(input.ExistingBookings) == 0 && s.Inventory != nil {
		input.ExistingBookings = s.Inventory.GetAllBookings()
	}
	if len(input.PriorityOrder) == 0 {
		for _, item := range input.Catalog {
			input.PriorityOrder = append(input.PriorityOrder, item.ID)
		}
	}
	if input.DurationDays <= 0 {
		input.DurationDays = s.Config.DefaultDurationDays
	}
	if input.Rules.MaxLines <= 0 {
		input.Rules.MaxLines = s.Config.DefaultMaxLines
	}

	result := s.Mix.GenerateProposal(input)

	outcome := "ok"
	if len(result.Lines) == 0 {
		outcome = "empty"
	}
	s.Metrics.IncrementProposals(outcome)
	s.Metrics.RecordProposalLines(len(result.Lines))

	writeJSON(w, result)
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
