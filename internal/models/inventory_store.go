package models

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrNotFound is returned when an entity is not found in the store.
var ErrNotFound = errors.New("entity not found")

// InventoryStore provides thread-safe access to the catalog and booking
// data the service owns. The proposal engine never touches the store
// directly; handlers read a snapshot and pass plain slices in.
type InventoryStore interface {
	GetCatalogItem(id string) *CatalogItem
	GetAllCatalogItems() []CatalogItem
	GetBooking(id string) *Booking
	GetAllBookings() []Booking
	GetBookingsForProduct(productID string) []Booking

	// ReloadAll atomically replaces both data sets.
	ReloadAll(items []CatalogItem, bookings []Booking) error

	InsertCatalogItem(item CatalogItem) error
	UpdateCatalogItem(item CatalogItem) error
	DeleteCatalogItem(id string) error

	InsertBooking(b Booking) error
	UpdateBooking(b Booking) error
	DeleteBooking(id string) error
}

// inventorySnapshot is an immutable view of the store's data. Readers
// load the current snapshot and are never affected by later writes.
type inventorySnapshot struct {
	items        []CatalogItem
	itemIndex    map[string]*CatalogItem
	bookings     []Booking
	bookingIndex map[string]*Booking
}

func buildSnapshot(items []CatalogItem, bookings []Booking) *inventorySnapshot {
	snap := &inventorySnapshot{
		items:        items,
		itemIndex:    make(map[string]*CatalogItem, len(items)),
		bookings:     bookings,
		bookingIndex: make(map[string]*Booking, len(bookings)),
	}
	for i := range snap.items {
		snap.itemIndex[snap.items[i].ID] = &snap.items[i]
	}
	for i := range snap.bookings {
		snap.bookingIndex[snap.bookings[i].ID] = &snap.bookings[i]
	}
	return snap
}

// InMemoryInventoryStore implements InventoryStore with atomic snapshot
// swaps: reads are lock-free, writes rebuild the snapshot under a
// mutex. Suited to the read-heavy proposal workload.
type InMemoryInventoryStore struct {
	data    atomic.Pointer[inventorySnapshot]
	writeMu sync.Mutex
}

// NewInMemoryInventoryStore creates an empty store.
func NewInMemoryInventoryStore() *InMemoryInventoryStore {
	s := &InMemoryInventoryStore{}
	s.data.Store(buildSnapshot(nil, nil))
	return s
}

// GetCatalogItem returns the item with the given id, or nil.
func (s *InMemoryInventoryStore) GetCatalogItem(id string) *CatalogItem {
	if item, ok := s.data.Load().itemIndex[id]; ok {
		cp := *item
		return &cp
	}
	return nil
}

// GetAllCatalogItems returns a copy of the catalog in insertion order.
func (s *InMemoryInventoryStore) GetAllCatalogItems() []CatalogItem {
	snap := s.data.Load()
	out := make([]CatalogItem, len(snap.items))
	copy(out, snap.items)
	return out
}

// GetBooking returns the booking with the given id, or nil.
func (s *InMemoryInventoryStore) GetBooking(id string) *Booking {
	if b, ok := s.data.Load().bookingIndex[id]; ok {
		cp := *b
		return &cp
	}
	return nil
}

// GetAllBookings returns a copy of all bookings.
func (s *InMemoryInventoryStore) GetAllBookings() []Booking {
	snap := s.data.Load()
	out := make([]Booking, len(snap.bookings))
	copy(out, snap.bookings)
	return out
}

// GetBookingsForProduct returns the bookings referencing a placement.
func (s *InMemoryInventoryStore) GetBookingsForProduct(productID string) []Booking {
	snap := s.data.Load()
	var out []Booking
	for _, b := range snap.bookings {
		if b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out
}

// ReloadAll atomically replaces the catalog and bookings.
func (s *InMemoryInventoryStore) ReloadAll(items []CatalogItem, bookings []Booking) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	itemsCopy := make([]CatalogItem, len(items))
	copy(itemsCopy, items)
	bookingsCopy := make([]Booking, len(bookings))
	copy(bookingsCopy, bookings)
	s.data.Store(buildSnapshot(itemsCopy, bookingsCopy))
	return nil
}

// InsertCatalogItem adds a new item. Inserting an existing id fails.
func (s *InMemoryInventoryStore) InsertCatalogItem(item CatalogItem) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	snap := s.data.Load()
	if _, exists := snap.itemIndex[item.ID]; exists {
		return errors.New("catalog item already exists")
	}
	items := append(append([]CatalogItem(nil), snap.items...), item)
	s.data.Store(buildSnapshot(items, snap.bookings))
	return nil
}

// UpdateCatalogItem replaces an existing item by id.
func (s *InMemoryInventoryStore) UpdateCatalogItem(item CatalogItem) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	snap := s.data.Load()
	if _, exists := snap.itemIndex[item.ID]; !exists {
		return ErrNotFound
	}
	items := append([]CatalogItem(nil), snap.items...)
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			break
		}
	}
	s.data.Store(buildSnapshot(items, snap.bookings))
	return nil
}

// DeleteCatalogItem removes an item by id. Bookings referencing it are
// left in place.
func (s *InMemoryInventoryStore) DeleteCatalogItem(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	snap := s.data.Load()
	if _, exists := snap.itemIndex[id]; !exists {
		return ErrNotFound
	}
	items := make([]CatalogItem, 0, len(snap.items)-1)
	for _, it := range snap.items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	s.data.Store(buildSnapshot(items, snap.bookings))
	return nil
}

// InsertBooking adds a new booking. Inserting an existing id fails.
func (s *InMemoryInventoryStore) InsertBooking(b Booking) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	snap := s.data.Load()
	if _, exists := snap.bookingIndex[b.ID]; exists {
		return errors.New("booking already exists")
	}
	bookings := append(append([]Booking(nil), snap.bookings...), b)
	s.data.Store(buildSnapshot(snap.items, bookings))
	return nil
}

// UpdateBooking replaces an existing booking by id.
func (s *InMemoryInventoryStore) UpdateBooking(b Booking) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	snap := s.data.Load()
	if _, exists := snap.bookingIndex[b.ID]; !exists {
		return ErrNotFound
	}
	bookings := append([]Booking(nil), snap.bookings...)
	for i := range bookings {
		if bookings[i].ID == b.ID {
			bookings[i] = b
			break
		}
	}
	s.data.Store(buildSnapshot(snap.items, bookings))
	return nil
}

// DeleteBooking removes a booking by id.
func (s *InMemoryInventoryStore) DeleteBooking(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	snap := s.data.Load()
	if _, exists := snap.bookingIndex[id]; !exists {
		return ErrNotFound
	}
	bookings := make([]Booking, 0, len(snap.bookings)-1)
	for _, b := range snap.bookings {
		if b.ID != id {
			bookings = append(bookings, b)
		}
	}
	s.data.Store(buildSnapshot(snap.items, bookings))
	return nil
}
