package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adplanhq/mixengine/internal/importer"
	"github.com/adplanhq/mixengine/internal/middleware"
	"github.com/adplanhq/mixengine/internal/models"
)

// ===== Catalog =====

func (s *Server) ListCatalogItems(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s.Inventory.GetAllCatalogItems())
}

func (s *Server) CreateCatalogItem(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if item.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := s.Inventory.InsertCatalogItem(item); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	// Also persist to PostgreSQL
	if s.PG != nil {
		if err := s.PG.InsertCatalogItem(item); err != nil {
			s.Logger.Error("insert catalog item to postgres", zap.Error(err))
		}
	}

	s.invalidateOccupancyCache()
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, item)
}

func (s *Server) UpdateCatalogItem(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	item.ID = mux.Vars(r)["id"]

	if err := s.Inventory.UpdateCatalogItem(item); err != nil {
		if err == models.ErrNotFound {
			http.Error(w, "catalog item not found", http.StatusNotFound)
			return
		}
		s.Logger.Error("update catalog item", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if s.PG != nil {
		if err := s.PG.UpdateCatalogItem(item); err != nil {
			s.Logger.Error("update catalog item in postgres", zap.Error(err))
		}
	}

	s.invalidateOccupancyCache()
	writeJSON(w, item)
}

func (s *Server) DeleteCatalogItem(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	id := mux.Vars(r)["id"]

	if err := s.Inventory.DeleteCatalogItem(id); err != nil {
		if err == models.ErrNotFound {
			http.Error(w, "catalog item not found", http.StatusNotFound)
			return
		}
		s.Logger.Error("delete catalog item", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if s.PG != nil {
		if err := s.PG.DeleteCatalogItem(id); err != nil {
			s.Logger.Error("delete catalog item in postgres", zap.Error(err))
		}
	}

	s.invalidateOccupancyCache()
	w.WriteHeader(http.StatusNoContent)
}

// ===== Bookings =====

func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	if productID := r.URL.Query().Get("product_id"); productID != "" {
		writeJSON(w, s.Inventory.GetBookingsForProduct(productID))
		return
	}
	writeJSON(w, s.Inventory.GetAllBookings())
}

func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	var b models.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.SlotsUsed <= 0 {
		b.SlotsUsed = 1
	}
	if b.EndDate == "" {
		b.EndDate = b.StartDate
	}

	if err := s.Inventory.InsertBooking(b); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if s.PG != nil {
		if err := s.PG.InsertBooking(b); err != nil {
			s.Logger.Error("insert booking to postgres", zap.Error(err))
		}
	}

	s.invalidateOccupancyCache()
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, b)
}

func (s *Server) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	var b models.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	b.ID = mux.Vars(r)["id"]

	if err := s.Inventory.UpdateBooking(b); err != nil {
		if err == models.ErrNotFound {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		s.Logger.Error("update booking", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if s.PG != nil {
		if err := s.PG.UpdateBooking(b); err != nil {
			s.Logger.Error("update booking in postgres", zap.Error(err))
		}
	}

	s.invalidateOccupancyCache()
	writeJSON(w, b)
}

func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	id := mux.Vars(r)["id"]

	if err := s.Inventory.DeleteBooking(id); err != nil {
		if err == models.ErrNotFound {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		s.Logger.Error("delete booking", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if s.PG != nil {
		if err := s.PG.DeleteBooking(id); err != nil {
			s.Logger.Error("delete booking in postgres", zap.Error(err))
		}
	}

	s.invalidateOccupancyCache()
	w.WriteHeader(http.StatusNoContent)
}

type importRequest struct {
	Text string `json:"text"`
}

// ImportBookingsHandler parses pasted sheet text into bookings and
// stores every row that parsed. Failed rows are reported back, they do
// not abort the import.
func (s *Server) ImportBookingsHandler(w http.ResponseWriter, r *http.Request) {
	if s.Inventory == nil {
		http.Error(w, "inventory unavailable", http.StatusInternalServerError)
		return
	}
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	logger := middleware.LoggerFromRequest(r, s.Logger)
	report := importer.ParseBulk(req.Text, s.Inventory.GetAllCatalogItems())

	stored := 0
	for _, b := range report.Bookings {
		if err := s.Inventory.InsertBooking(b); err != nil {
			logger.Error("insert imported booking", zap.String("id", b.ID), zap.Error(err))
			continue
		}
		if s.PG != nil {
			if err := s.PG.InsertBooking(b); err != nil {
				logger.Error("insert imported booking to postgres", zap.Error(err))
			}
		}
		stored++
	}

	s.Metrics.IncrementBookingsImported("ok", stored)
	s.Metrics.IncrementBookingsImported("failed", len(report.Failed))
	if stored > 0 {
		s.invalidateOccupancyCache()
	}

	logger.Info("bulk import finished",
		zap.Int("stored", stored),
		zap.Int("failed", len(report.Failed)),
	)
	writeJSON(w, report)
}
