package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *InMemoryInventoryStore {
	t.Helper()
	s := NewInMemoryInventoryStore()
	err := s.ReloadAll(
		[]CatalogItem{
			{ID: "A1", Placement: "Top banner", Price4W: 5_000_000, TotalSlots: 2},
			{ID: "TOP", Placement: "Home top", Price4W: 4_000_000, TotalSlots: 1},
		},
		[]Booking{
			{ID: "b1", ProductID: "A1", ClientName: "Acme", StartDate: "2025-06-01", EndDate: "2025-06-28", SlotsUsed: 1},
			{ID: "b2", ProductID: "TOP", ClientName: "Globex", StartDate: "2025-06-10", EndDate: "2025-06-20", SlotsUsed: 1},
		},
	)
	require.NoError(t, err)
	return s
}

func TestStoreGetCatalogItem(t *testing.T) {
	s := testStore(t)

	item := s.GetCatalogItem("A1")
	require.NotNil(t, item)
	assert.Equal(t, int64(5_000_000), item.Price4W)

	assert.Nil(t, s.GetCatalogItem("missing"))
}

func TestStoreGetAllCatalogItemsIsCopy(t *testing.T) {
	s := testStore(t)

	items := s.GetAllCatalogItems()
	require.Len(t, items, 2)
	items[0].Price4W = 1

	again := s.GetAllCatalogItems()
	assert.Equal(t, int64(5_000_000), again[0].Price4W)
}

func TestStoreGetBookingsForProduct(t *testing.T) {
	s := testStore(t)

	assert.Len(t, s.GetBookingsForProduct("A1"), 1)
	assert.Empty(t, s.GetBookingsForProduct("missing"))
}

func TestStoreInsertCatalogItem(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.InsertCatalogItem(CatalogItem{ID: "MID", Price4W: 2_500_000}))
	assert.Len(t, s.GetAllCatalogItems(), 3)

	err := s.InsertCatalogItem(CatalogItem{ID: "A1"})
	assert.Error(t, err, "duplicate id must be rejected")
}

func TestStoreUpdateCatalogItem(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.UpdateCatalogItem(CatalogItem{ID: "A1", Price4W: 6_000_000}))
	assert.Equal(t, int64(6_000_000), s.GetCatalogItem("A1").Price4W)

	assert.ErrorIs(t, s.UpdateCatalogItem(CatalogItem{ID: "missing"}), ErrNotFound)
}

func TestStoreDeleteCatalogItem(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.DeleteCatalogItem("TOP"))
	assert.Nil(t, s.GetCatalogItem("TOP"))
	// Bookings referencing the deleted item survive.
	assert.Len(t, s.GetBookingsForProduct("TOP"), 1)

	assert.ErrorIs(t, s.DeleteCatalogItem("TOP"), ErrNotFound)
}

func TestStoreBookingCRUD(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.InsertBooking(Booking{ID: "b3", ProductID: "A1", StartDate: "2025-07-01", EndDate: "2025-07-14", SlotsUsed: 1}))
	assert.Len(t, s.GetAllBookings(), 3)
	assert.Error(t, s.InsertBooking(Booking{ID: "b1"}))

	require.NoError(t, s.UpdateBooking(Booking{ID: "b3", ProductID: "A1", SlotsUsed: 2}))
	assert.Equal(t, 2, s.GetBooking("b3").SlotsUsed)
	assert.ErrorIs(t, s.UpdateBooking(Booking{ID: "missing"}), ErrNotFound)

	require.NoError(t, s.DeleteBooking("b3"))
	assert.Nil(t, s.GetBooking("b3"))
	assert.ErrorIs(t, s.DeleteBooking("b3"), ErrNotFound)
}

func TestStoreReloadReplacesEverything(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.ReloadAll([]CatalogItem{{ID: "BL"}}, nil))
	assert.Len(t, s.GetAllCatalogItems(), 1)
	assert.Empty(t, s.GetAllBookings())
	assert.Nil(t, s.GetCatalogItem("A1"))
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := testStore(t)

	before := s.GetAllBookings()
	require.NoError(t, s.InsertBooking(Booking{ID: "b9", ProductID: "A1"}))

	// The slice handed out before the write is unaffected.
	assert.Len(t, before, 2)
	assert.Len(t, s.GetAllBookings(), 3)
}

func TestBookingCovers(t *testing.T) {
	b := Booking{StartDate: "2025-06-10", EndDate: "2025-06-20"}

	assert.True(t, b.Covers("2025-06-10"))
	assert.True(t, b.Covers("2025-06-20"))
	assert.True(t, b.Covers("2025-06-15"))
	assert.False(t, b.Covers("2025-06-09"))
	assert.False(t, b.Covers("2025-06-21"))
}
