package mix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adplanhq/mixengine/internal/models"
)

func TestOccupancyRate(t *testing.T) {
	tests := []struct {
		name       string
		productID  string
		totalSlots int
		year       int
		month      time.Month
		bookings   []models.Booking
		want       float64
	}{
		{
			name:       "no bookings",
			productID:  "A1",
			totalSlots: 2,
			year:       2025,
			month:      time.June,
			want:       0,
		},
		{
			name:       "full month single slot",
			productID:  "A1",
			totalSlots: 1,
			year:       2025,
			month:      time.June,
			bookings: []models.Booking{
				booking("A1", "2025-06-01", "2025-06-30", 1),
			},
			want: 100,
		},
		{
			name:       "half month of one of two slots",
			productID:  "A1",
			totalSlots: 2,
			year:       2025,
			month:      time.June,
			bookings: []models.Booking{
				booking("A1", "2025-06-01", "2025-06-15", 1),
			},
			want: 25,
		},
		{
			name:       "overlapping bookings exceed 100 percent",
			productID:  "TOP",
			totalSlots: 1,
			year:       2025,
			month:      time.June,
			bookings: []models.Booking{
				booking("TOP", "2025-06-01", "2025-06-30", 1),
				booking("TOP", "2025-06-01", "2025-06-30", 1),
			},
			want: 200,
		},
		{
			name:       "booking spanning month boundary counts in-month days only",
			productID:  "A1",
			totalSlots: 1,
			year:       2025,
			month:      time.July,
			bookings: []models.Booking{
				// 2025-06-20 .. 2025-07-10: July contributes 10 of 31 days.
				booking("A1", "2025-06-20", "2025-07-10", 1),
			},
			want: float64(10) / 31 * 100,
		},
		{
			name:       "other products ignored",
			productID:  "A1",
			totalSlots: 1,
			year:       2025,
			month:      time.June,
			bookings: []models.Booking{
				booking("TOP", "2025-06-01", "2025-06-30", 1),
			},
			want: 0,
		},
		{
			name:       "zero capacity is zero, never NaN",
			productID:  "A1",
			totalSlots: 0,
			year:       2025,
			month:      time.June,
			bookings: []models.Booking{
				booking("A1", "2025-06-01", "2025-06-30", 1),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OccupancyRate(tt.productID, tt.totalSlots, tt.year, tt.month, tt.bookings)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOccupancyRateFebruaryLeapYear(t *testing.T) {
	b := []models.Booking{booking("A1", "2024-02-01", "2024-02-29", 1)}

	assert.InDelta(t, 100, OccupancyRate("A1", 1, 2024, time.February, b), 1e-9)
	// Same span in a non-leap year covers all 28 days of February.
	b2 := []models.Booking{booking("A1", "2025-02-01", "2025-02-28", 1)}
	assert.InDelta(t, 100, OccupancyRate("A1", 1, 2025, time.February, b2), 1e-9)
}

func TestComputeMonthlyOccupancy(t *testing.T) {
	catalog := []models.CatalogItem{
		{ID: "A1", TotalSlots: 1},
		{ID: "TOP", TotalSlots: 2},
	}
	bookings := []models.Booking{
		booking("A1", "2025-03-01", "2025-03-31", 1),
		booking("TOP", "2025-03-01", "2025-03-31", 2),
	}

	table := ComputeMonthlyOccupancy(catalog, bookings, 2025)

	assert.Len(t, table, 2)
	for id, months := range table {
		assert.Len(t, months, MonthsPerYear, "row for %s", id)
	}

	a1 := table["A1"]
	top := table["TOP"]
	assert.InDelta(t, 100, a1[2], 1e-9)  // March, index 2
	assert.InDelta(t, 100, top[2], 1e-9) // both slots booked
	assert.InDelta(t, 0, a1[0], 1e-9)
	assert.InDelta(t, 0, a1[11], 1e-9)
}

func TestComputeMonthlyOccupancyEmptyCatalog(t *testing.T) {
	table := ComputeMonthlyOccupancy(nil, nil, 2025)
	assert.Empty(t, table)
}
