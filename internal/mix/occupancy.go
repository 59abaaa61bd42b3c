package mix

import (
	"time"

	"github.com/adplanhq/mixengine/internal/models"
)

// MonthsPerYear is the width of an occupancy table row.
const MonthsPerYear = 12

// OccupancyRate returns the utilization percentage of a placement for
// one calendar month: booked slot-days divided by available slot-days.
// Unlike Availability this sums usage across all days rather than
// taking a peak, and the result intentionally exceeds 100% when
// overlapping bookings over-commit the placement — the metric exists to
// surface over-booking, not hide it. Returns 0 when the placement has
// no capacity.
func OccupancyRate(productID string, totalSlots, year int, month time.Month, bookings []models.Booking) float64 {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	totalUsedSlotDays := 0
	for day := 0; day < daysInMonth; day++ {
		current := first.AddDate(0, 0, day).Format(models.DateLayout)
		for _, b := range bookings {
			if b.ProductID == productID && b.Covers(current) {
				totalUsedSlotDays += b.SlotsUsed
			}
		}
	}

	totalAvailableSlotDays := totalSlots * daysInMonth
	if totalAvailableSlotDays == 0 {
		return 0
	}
	return float64(totalUsedSlotDays) / float64(totalAvailableSlotDays) * 100
}

// ComputeMonthlyOccupancy builds the per-placement, per-month
// utilization table for a calendar year. Index 0 is January.
func ComputeMonthlyOccupancy(catalog []models.CatalogItem, bookings []models.Booking, year int) map[string][MonthsPerYear]float64 {
	table := make(map[string][MonthsPerYear]float64, len(catalog))
	for _, item := range catalog {
		var months [MonthsPerYear]float64
		for m := 0; m < MonthsPerYear; m++ {
			months[m] = OccupancyRate(item.ID, item.TotalSlots, year, time.Month(m+1), bookings)
		}
		table[item.ID] = months
	}
	return table
}
