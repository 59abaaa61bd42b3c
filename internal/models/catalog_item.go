package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// CatalogItem describes a sellable placement: a screen position with a
// reference price and impression volume for a standard 28-day run, and a
// daily capacity expressed in slots. Sales teams maintain the catalog;
// the proposal engine only reads it.
type CatalogItem struct {
	// ID is the stable product code used in priority orders and bookings
	// (e.g. "A1", "COMM_MID").
	ID        string `json:"id"`
	Screen    string `json:"screen"`    // Surface the placement lives on (e.g. "PC Main", "Mobile Sub").
	Placement string `json:"placement"` // Position name within the screen.
	Size      string `json:"size"`      // Creative dimensions, display only (e.g. "560 X 187").
	AdType    string `json:"ad_type"`   // Accepted creative types, display only (e.g. "JPEG, GIF").
	// Price4W is the reference price for a 28-day run in whole currency
	// units. Campaign prices are scaled from this figure.
	Price4W  int64  `json:"price_4w"`
	Rotation string `json:"rotation"` // Free-text rotation description shown in the catalog.
	// TotalSlots is the number of concurrent bookings the placement
	// supports on any single day. Must be positive for the item to be
	// allocatable.
	TotalSlots int `json:"total_slots"`
	// Impressions4W is the reference impression volume for a 28-day run.
	// Catalog feeds carry it either as a plain number or as guarantee
	// wording such as "30만 보장"; see ImpressionVolume.
	Impressions4W ImpressionVolume `json:"impressions_4w"`
	CTR           string           `json:"ctr"` // Reference click-through rate, display only.
}

// ImpressionVolume holds an impression figure that may arrive as a JSON
// number or as a free-text string. The raw form is preserved because
// guarantee wording ("30만 보장") must survive into proposals verbatim
// instead of being replaced by a computed number.
type ImpressionVolume struct {
	Raw      string
	IsNumber bool
}

// NumericVolume returns an ImpressionVolume for a plain number.
func NumericVolume(n int64) ImpressionVolume {
	return ImpressionVolume{Raw: strconv.FormatInt(n, 10), IsNumber: true}
}

// TextVolume returns an ImpressionVolume for free-text wording.
func TextVolume(s string) ImpressionVolume {
	return ImpressionVolume{Raw: s}
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (v *ImpressionVolume) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.Raw = s
		v.IsNumber = false
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	v.Raw = n.String()
	v.IsNumber = true
	return nil
}

// MarshalJSON writes the value back in its original form.
func (v ImpressionVolume) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		if _, err := strconv.ParseFloat(v.Raw, 64); err == nil {
			return []byte(v.Raw), nil
		}
	}
	return json.Marshal(v.Raw)
}

// String returns the raw figure as entered in the catalog.
func (v ImpressionVolume) String() string { return v.Raw }
