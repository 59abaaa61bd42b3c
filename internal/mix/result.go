package mix

import (
	"fmt"

	"github.com/adplanhq/mixengine/internal/models"
)

// Aggregate computes the financial summary for a set of lines. Pure and
// total: an empty line list yields all-zero monetary fields and a
// residual equal to the budget. Residual goes negative when the caller
// passes manually assembled lines that exceed the budget.
func Aggregate(lines []models.MediaMixLine, budgetTotal int64, discountRatePercent int, days int) models.MediaMixResult {
	out := make([]models.MediaMixLine, len(lines))
	copy(out, lines)

	var subtotal int64
	for _, l := range out {
		subtotal += l.PriceActual
	}

	discountApplied := subtotal * int64(discountRatePercent) / 100
	discountedSubtotal := subtotal - discountApplied
	if discountedSubtotal < 0 {
		discountedSubtotal = 0
	}

	residual := budgetTotal - discountedSubtotal
	var residualPercent float64
	if budgetTotal > 0 {
		residualPercent = float64(residual) / float64(budgetTotal) * 100
	}

	label := "none"
	if discountRatePercent > 0 {
		label = fmt.Sprintf("discount applied (%d%%)", discountRatePercent)
	}

	for i := range out {
		if subtotal > 0 {
			out[i].BudgetShare = float64(out[i].PriceActual) / float64(subtotal) * 100
		} else {
			out[i].BudgetShare = 0
		}
	}

	return models.MediaMixResult{
		Lines:              out,
		Subtotal:           subtotal,
		DiscountApplied:    discountApplied,
		DiscountLabel:      label,
		DiscountedSubtotal: discountedSubtotal,
		Residual:           residual,
		ResidualPercent:    residualPercent,
		TotalDays:          days,
		DurationLabel:      FormatDuration(days),
	}
}

// Commission returns the informational agency commission share of a
// discounted subtotal. It is reported alongside the total but never
// deducted from it.
func Commission(discountedSubtotal int64, ratePercent int) int64 {
	if discountedSubtotal <= 0 || ratePercent <= 0 {
		return 0
	}
	return discountedSubtotal * int64(ratePercent) / 100
}

// FormatDuration renders a campaign length as weeks and days, e.g.
// "4w", "2w 3d" or "5d".
func FormatDuration(days int) string {
	weeks := days / 7
	rem := days % 7
	switch {
	case weeks > 0 && rem > 0:
		return fmt.Sprintf("%dw %dd", weeks, rem)
	case weeks > 0:
		return fmt.Sprintf("%dw", weeks)
	default:
		return fmt.Sprintf("%dd", days)
	}
}
