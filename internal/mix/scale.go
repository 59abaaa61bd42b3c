package mix

import (
	"fmt"
	"math"

	"github.com/adplanhq/mixengine/internal/models"
)

// ReferenceDays is the campaign length the catalog's reference figures
// are quoted for.
const ReferenceDays = 28

// PriceIncrement is the quoting granularity. Scaled prices are always
// rounded up to the next increment so a proposal never under-quotes a
// placement, even when the scale factor lands on an exact multiple.
const PriceIncrement = 100_000

// roundUpToIncrement rounds a raw price up to the next PriceIncrement.
func roundUpToIncrement(v float64) int64 {
	return int64(math.Ceil(v/PriceIncrement)) * PriceIncrement
}

// Scale converts a catalog item's 28-day reference figures to a line
// for a campaign of the given length. Price scales linearly and rounds
// up to the nearest 100,000; a non-free placement never scales below
// one increment. Impressions scale linearly and floor to an integer;
// free-text guarantee wording is kept verbatim in the display text,
// annotated with the day factor, while the scaled number is still
// computed for arithmetic use.
//
// Callers are expected to validate days >= 1; Scale itself does not.
func Scale(item models.CatalogItem, days int) models.MediaMixLine {
	factor := float64(days) / ReferenceDays

	price := roundUpToIncrement(float64(item.Price4W) * factor)
	if price == 0 && item.Price4W > 0 {
		price = PriceIncrement
	}

	base := ParseImpressions(item.Impressions4W)
	scaled := int64(math.Floor(base * factor))

	var text string
	if !item.Impressions4W.IsNumber && base > 0 {
		text = fmt.Sprintf("%s (x%d/%dd)", item.Impressions4W.Raw, days, ReferenceDays)
	} else {
		text = formatCount(scaled)
	}

	return models.MediaMixLine{
		CatalogItem:           item,
		Days:                  days,
		PriceActual:           price,
		ImpressionsActualText: text,
		ImpressionsNumeric:    scaled,
	}
}
