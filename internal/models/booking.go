package models

// DateLayout is the calendar date format used throughout the system.
// Dates are carried as ISO strings so that range containment can be
// checked with plain lexicographic comparison.
const DateLayout = "2006-01-02"

// Booking is a date-ranged occupancy record against a placement. Both
// ends of the range are inclusive. SlotsUsed counts against the
// placement's TotalSlots for every day in the range; nothing prevents a
// set of bookings from over-committing a placement, and downstream
// checks tolerate (and surface) that rather than reject it.
//
// The allocation engine also synthesizes transient "proposed" bookings
// during a run; those are never persisted.
type Booking struct {
	ID         string `json:"id"`
	ProductID  string `json:"productId"` // Weak reference to CatalogItem.ID.
	ClientName string `json:"clientName"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD, inclusive.
	EndDate    string `json:"end_date"`   // YYYY-MM-DD, inclusive.
	SlotsUsed  int    `json:"slots_used"`
}

// Covers reports whether the booking occupies the given day. Malformed
// dates on either side simply never match.
func (b Booking) Covers(day string) bool {
	return day >= b.StartDate && day <= b.EndDate
}
