package models

// Discount types. Only the rate is used in calculations; the type is
// carried for display and reporting.
const (
	DiscountNone     = "none"
	DiscountPackage  = "package"
	DiscountLongTerm = "longterm"
)

// DiscountConfig describes the discount applied to a proposal subtotal.
type DiscountConfig struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount,omitempty"`
	Rate   int    `json:"rate,omitempty"` // Percent, 0-100.
}

// Rules bundles proposal policy limits. MaxLines caps the number of
// lines the allocation engine admits. The remaining fields are accepted
// so callers can round-trip their configuration, but are not enforced
// by the engine today.
type Rules struct {
	MinTotalWeeks        int      `json:"min_total_weeks"`
	LineWeekOptions      []int    `json:"line_week_options"`
	AllowDuplicateLines  bool     `json:"allow_duplicate_lines"`
	MaxLines             int      `json:"max_lines"`
	MustInclude          []string `json:"must_include,omitempty"`
	BigResidualThreshold float64  `json:"big_residual_threshold"`
}

// MediaMixInput is everything a proposal run needs. The engine treats
// all of it as an immutable snapshot; concurrent runs over the same
// input are independent.
type MediaMixInput struct {
	BudgetTotal      int64          `json:"budget_total"`
	Catalog          []CatalogItem  `json:"catalog"`
	PriorityOrder    []string       `json:"priority_order"`
	CommissionRate   int            `json:"commission_rate"` // Percent, informational only.
	Discount         DiscountConfig `json:"discount"`
	DurationDays     int            `json:"duration_days"`
	StartDate        string         `json:"start_date"` // YYYY-MM-DD.
	Rules            Rules          `json:"rules"`
	ExistingBookings []Booking      `json:"existing_bookings"`
}

// MediaMixLine is a catalog item scaled to a concrete campaign length.
// Lines are derived values: recomputation replaces them, nothing
// mutates them in place.
type MediaMixLine struct {
	CatalogItem
	Days        int   `json:"days"`
	PriceActual int64 `json:"price_actual"`
	// ImpressionsActualText is what a planner shows: a formatted number
	// for numeric catalog figures, or the original guarantee wording
	// annotated with the day-scaling factor.
	ImpressionsActualText string `json:"impressions_actual_text"`
	// ImpressionsNumeric is the scaled impression count used for any
	// further arithmetic regardless of the display form.
	ImpressionsNumeric int64 `json:"impressions_numeric"`
	// BudgetShare is this line's percentage of the proposal subtotal,
	// filled in during aggregation for visualization.
	BudgetShare float64 `json:"budget_share_percent"`
}

// MediaMixResult aggregates a set of lines against a budget. It is
// recomputed from scratch on every change; Residual may be negative
// when manually added lines push past the budget.
type MediaMixResult struct {
	Lines              []MediaMixLine `json:"lines"`
	Subtotal           int64          `json:"subtotal"`
	DiscountApplied    int64          `json:"discount_applied"`
	DiscountLabel      string         `json:"discount_label"`
	DiscountedSubtotal int64          `json:"discounted_subtotal"`
	// CommissionAmount is the agency commission share of the discounted
	// subtotal. Informational: it is never deducted from the total.
	CommissionAmount int64   `json:"commission_amount,omitempty"`
	Residual         int64   `json:"residual"`
	ResidualPercent  float64 `json:"residual_percent"`
	TotalDays        int     `json:"total_days"`
	DurationLabel    string  `json:"duration_label"`
}
