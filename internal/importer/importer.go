// Package importer parses pasted booking sheets into bookings. Sales
// teams copy rows out of spreadsheets, so the parser tolerates tab,
// comma and pipe separators, several date notations, and a leading
// header row.
package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/adplanhq/mixengine/internal/models"
)

// Report summarizes one bulk import: the bookings parsed out of the
// text plus the raw lines that could not be used and why.
type Report struct {
	Bookings []models.Booking `json:"bookings"`
	Failed   []string         `json:"failed"`
	Errors   []string         `json:"errors"`
}

var (
	fieldSplit  = regexp.MustCompile(`\t|,|\|`)
	datePattern = regexp.MustCompile(`\d{4}[-./]\d{2}[-./]\d{2}`)
	isoDate     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// maxErrorDetails bounds the per-row error messages in a report. Failed
// lines are always listed in full; only the explanations are capped.
const maxErrorDetails = 20

// ParseBulk extracts bookings from pasted sheet text. Expected columns
// per row are client name, placement, and a period; the period is
// either "start ~ end" in one field or start and end in two fields,
// with "." and "/" accepted as date separators. A missing end date
// means a one-day booking. The placement field is matched against the
// catalog by exact product id (case-insensitive) or by the id appearing
// inside the field. Rows that cannot be matched or parsed land in the
// report's Failed list; one bad row never aborts the rest.
func ParseBulk(text string, catalog []models.CatalogItem) Report {
	report := Report{}

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		// The first line is a header when it carries no date at all.
		if i == 0 && !datePattern.MatchString(line) {
			continue
		}

		b, err := parseRow(line, catalog)
		if err != nil {
			report.Failed = append(report.Failed, line)
			if len(report.Errors) < maxErrorDetails {
				report.Errors = append(report.Errors, err.Error())
			}
			continue
		}
		report.Bookings = append(report.Bookings, b)
	}
	return report
}

func parseRow(line string, catalog []models.CatalogItem) (models.Booking, error) {
	var fields []string
	for _, f := range fieldSplit.Split(line, -1) {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) < 3 {
		return models.Booking{}, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}

	clientName := fields[0]
	placement := fields[1]

	startDate, endDate, err := parsePeriod(fields[2:])
	if err != nil {
		return models.Booking{}, err
	}

	productID, ok := matchProduct(placement, catalog)
	if !ok {
		return models.Booking{}, fmt.Errorf("no catalog item matches %q", placement)
	}

	return models.Booking{
		ID:         uuid.New().String(),
		ProductID:  productID,
		ClientName: clientName,
		StartDate:  startDate,
		EndDate:    endDate,
		SlotsUsed:  1,
	}, nil
}

// parsePeriod reads a date range from the remaining fields: a single
// "start ~ end" field, a bare start date, or start and end in two
// separate fields.
func parsePeriod(fields []string) (string, string, error) {
	first := fields[0]
	if strings.Contains(first, "~") {
		parts := strings.SplitN(first, "~", 2)
		start, err := normalizeDate(parts[0])
		if err != nil {
			return "", "", err
		}
		end, err := normalizeDate(parts[1])
		if err != nil {
			return "", "", err
		}
		return start, end, nil
	}

	start, err := normalizeDate(first)
	if err != nil {
		return "", "", err
	}
	if len(fields) > 1 {
		if end, err := normalizeDate(fields[1]); err == nil {
			return start, end, nil
		}
	}
	return start, start, nil
}

func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	if !isoDate.MatchString(s) {
		return "", fmt.Errorf("unrecognized date %q", s)
	}
	return s, nil
}

// matchProduct resolves a free-text placement field to a catalog id:
// first by exact id match, then by the id appearing as a substring.
func matchProduct(placement string, catalog []models.CatalogItem) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(placement))
	for _, item := range catalog {
		if strings.ToUpper(item.ID) == upper {
			return item.ID, true
		}
	}
	for _, item := range catalog {
		if strings.Contains(upper, strings.ToUpper(item.ID)) {
			return item.ID, true
		}
	}
	return "", false
}
