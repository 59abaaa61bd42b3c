package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adplanhq/mixengine/internal/models"
)

var testCatalog = []models.CatalogItem{
	{ID: "A1", Placement: "Top banner"},
	{ID: "TOP", Placement: "Home top"},
	{ID: "MID", Placement: "Home middle"},
}

func TestParseBulkTabSeparated(t *testing.T) {
	text := "Acme\tA1\t2025-06-01 ~ 2025-06-28"

	report := ParseBulk(text, testCatalog)

	require.Len(t, report.Bookings, 1)
	b := report.Bookings[0]
	assert.Equal(t, "A1", b.ProductID)
	assert.Equal(t, "Acme", b.ClientName)
	assert.Equal(t, "2025-06-01", b.StartDate)
	assert.Equal(t, "2025-06-28", b.EndDate)
	assert.Equal(t, 1, b.SlotsUsed)
	assert.NotEmpty(t, b.ID)
	assert.Empty(t, report.Failed)
}

func TestParseBulkSeparators(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"comma", "Acme,A1,2025-06-01 ~ 2025-06-28"},
		{"pipe", "Acme|A1|2025-06-01 ~ 2025-06-28"},
		{"two date fields", "Acme\tA1\t2025-06-01\t2025-06-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ParseBulk(tt.text, testCatalog)
			require.Len(t, report.Bookings, 1)
			assert.Equal(t, "2025-06-01", report.Bookings[0].StartDate)
			assert.Equal(t, "2025-06-28", report.Bookings[0].EndDate)
		})
	}
}

func TestParseBulkDateNotations(t *testing.T) {
	report := ParseBulk("Acme\tA1\t2025.06.01 ~ 2025/06/28", testCatalog)

	require.Len(t, report.Bookings, 1)
	assert.Equal(t, "2025-06-01", report.Bookings[0].StartDate)
	assert.Equal(t, "2025-06-28", report.Bookings[0].EndDate)
}

func TestParseBulkMissingEndDate(t *testing.T) {
	report := ParseBulk("Acme\tA1\t2025-06-01", testCatalog)

	require.Len(t, report.Bookings, 1)
	assert.Equal(t, "2025-06-01", report.Bookings[0].StartDate)
	assert.Equal(t, "2025-06-01", report.Bookings[0].EndDate)
}

func TestParseBulkSkipsHeader(t *testing.T) {
	text := "Client\tPlacement\tPeriod\n" +
		"Acme\tA1\t2025-06-01 ~ 2025-06-28\n" +
		"Globex\tTOP\t2025-06-10 ~ 2025-06-20"

	report := ParseBulk(text, testCatalog)

	require.Len(t, report.Bookings, 2)
	assert.Empty(t, report.Failed)
}

func TestParseBulkFirstLineWithDateIsData(t *testing.T) {
	report := ParseBulk("Acme\tA1\t2025-06-01 ~ 2025-06-28", testCatalog)
	assert.Len(t, report.Bookings, 1)
}

func TestParseBulkSubstringPlacementMatch(t *testing.T) {
	report := ParseBulk("Acme\t[TOP] Home top banner\t2025-06-01", testCatalog)

	require.Len(t, report.Bookings, 1)
	assert.Equal(t, "TOP", report.Bookings[0].ProductID)
}

func TestParseBulkCaseInsensitiveMatch(t *testing.T) {
	report := ParseBulk("Acme\ta1\t2025-06-01", testCatalog)

	require.Len(t, report.Bookings, 1)
	assert.Equal(t, "A1", report.Bookings[0].ProductID)
}

func TestParseBulkBadRowsReported(t *testing.T) {
	text := "Acme\tA1\t2025-06-01 ~ 2025-06-28\n" +
		"Globex\tNOPE\t2025-06-10\n" +
		"Initech\tTOP\tnot-a-date\n" +
		"short line"

	report := ParseBulk(text, testCatalog)

	assert.Len(t, report.Bookings, 1)
	require.Len(t, report.Failed, 3)
	require.Len(t, report.Errors, 3)
	assert.Contains(t, report.Errors[0], "no catalog item matches")
	assert.Contains(t, report.Errors[1], "unrecognized date")
	assert.Contains(t, report.Errors[2], "at least 3 fields")
}

func TestParseBulkErrorDetailCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("Acme\tNOPE\t2025-06-01\n")
	}

	report := ParseBulk(sb.String(), testCatalog)

	assert.Len(t, report.Failed, 30)
	assert.Len(t, report.Errors, 20)
}

func TestParseBulkEmptyText(t *testing.T) {
	report := ParseBulk("", testCatalog)
	assert.Empty(t, report.Bookings)
	assert.Empty(t, report.Failed)

	report = ParseBulk("\n\n  \n", testCatalog)
	assert.Empty(t, report.Bookings)
}
