package mix

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/adplanhq/mixengine/internal/models"
)

// Engine runs proposal generation. It holds no state between runs;
// every call works on a private copy of the booking list and discards
// it afterwards, so concurrent calls are independent.
type Engine struct {
	Logger *zap.Logger
}

// NewEngine creates a proposal engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Logger: logger}
}

// Allocate greedily selects placements in priority order until the
// budget or line limit is reached. A placement is admitted only when it
// has free capacity over the campaign window and its scaled price still
// fits the budget; each admission is simulated as a provisional booking
// so later candidates see the reduced capacity. First-fit by priority,
// not budget-optimal: line ordering is part of the product contract.
//
// An empty result is a valid outcome, not an error.
func (e *Engine) Allocate(catalog []models.CatalogItem, priorityOrder []string, budgetTotal int64, startDate string, days int, existingBookings []models.Booking, maxLines int) []models.MediaMixLine {
	sorted := sortByPriority(catalog, priorityOrder)

	working := append([]models.Booking(nil), existingBookings...)
	selected := make([]models.MediaMixLine, 0, maxLines)
	var subtotal int64

	for _, item := range sorted {
		if len(selected) >= maxLines {
			break
		}

		available := Availability(item.ID, item.TotalSlots, startDate, days, working)
		if available <= 0 {
			e.Logger.Debug("placement unavailable",
				zap.String("product_id", item.ID),
				zap.Int("availability", available),
			)
			continue
		}

		line := Scale(item, days)
		if subtotal+line.PriceActual > budgetTotal {
			continue
		}

		selected = append(selected, line)
		subtotal += line.PriceActual
		working = append(working, proposedBooking(item.ID, startDate, days))
	}

	return selected
}

// GenerateProposal is the main entry point: it allocates lines for the
// input and aggregates them into a result, including the informational
// commission figure.
func (e *Engine) GenerateProposal(input models.MediaMixInput) models.MediaMixResult {
	lines := e.Allocate(
		input.Catalog,
		input.PriorityOrder,
		input.BudgetTotal,
		input.StartDate,
		input.DurationDays,
		input.ExistingBookings,
		input.Rules.MaxLines,
	)

	result := Aggregate(lines, input.BudgetTotal, input.Discount.Rate, input.DurationDays)
	result.CommissionAmount = Commission(result.DiscountedSubtotal, input.CommissionRate)

	e.Logger.Info("proposal generated",
		zap.Int("lines", len(result.Lines)),
		zap.Int64("subtotal", result.Subtotal),
		zap.Int64("residual", result.Residual),
		zap.Int("duration_days", input.DurationDays),
	)
	return result
}

// sortByPriority orders catalog items by their position in the priority
// list. Items absent from the list sort after all present items while
// keeping their relative catalog order.
func sortByPriority(catalog []models.CatalogItem, priorityOrder []string) []models.CatalogItem {
	rank := make(map[string]int, len(priorityOrder))
	for i, id := range priorityOrder {
		if _, seen := rank[id]; !seen {
			rank[id] = i
		}
	}

	sorted := append([]models.CatalogItem(nil), catalog...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, iOK := rank[sorted[i].ID]
		rj, jOK := rank[sorted[j].ID]
		if !iOK && !jOK {
			return false
		}
		if !iOK {
			return false
		}
		if !jOK {
			return true
		}
		return ri < rj
	})
	return sorted
}

// proposedBooking builds the transient booking an admission adds to the
// working set. It occupies one slot over [start, start+days), so the
// inclusive end date is the day before the window closes.
func proposedBooking(productID, startDate string, days int) models.Booking {
	end := startDate
	if start, err := time.Parse(models.DateLayout, startDate); err == nil && days > 0 {
		end = start.AddDate(0, 0, days-1).Format(models.DateLayout)
	}
	return models.Booking{
		ID:         "proposed-" + productID,
		ProductID:  productID,
		ClientName: "Proposed",
		StartDate:  startDate,
		EndDate:    end,
		SlotsUsed:  1,
	}
}
