package mix

import (
	"time"

	"github.com/adplanhq/mixengine/internal/models"
)

// Availability returns the free capacity of a placement over the window
// [startDate, startDate+days). For each day in the window it sums
// SlotsUsed across bookings covering that day, takes the worst single
// day, and subtracts it from totalSlots. The result is negative when
// existing bookings already over-commit the placement.
//
// This is a peak-usage check, not an average: one fully booked day
// makes the whole window unavailable.
//
// An empty or unparseable start date means no date context exists (e.g.
// an ad-hoc manual addition) and the placement counts as fully
// available.
func Availability(productID string, totalSlots int, startDate string, days int, bookings []models.Booking) int {
	if startDate == "" {
		return totalSlots
	}
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return totalSlots
	}

	maxUsed := 0
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(models.DateLayout)
		used := 0
		for _, b := range bookings {
			if b.ProductID == productID && b.Covers(day) {
				used += b.SlotsUsed
			}
		}
		if used > maxUsed {
			maxUsed = used
		}
	}
	return totalSlots - maxUsed
}
