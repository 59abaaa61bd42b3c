package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/adplanhq/mixengine/internal/config"
	"github.com/adplanhq/mixengine/internal/db"
	"github.com/adplanhq/mixengine/internal/mix"
	"github.com/adplanhq/mixengine/internal/models"
	"github.com/adplanhq/mixengine/internal/observability"
)

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger    *zap.Logger
	PG        *db.Postgres
	Cache     *db.RedisStore
	Inventory models.InventoryStore
	Mix       *mix.Engine
	Metrics   observability.MetricsRegistry
	Config    config.Config
}

// NewServer constructs a Server. PG and Cache may be nil; handlers fall
// back to the in-memory inventory alone.
func NewServer(logger *zap.Logger, pg *db.Postgres, cache *db.RedisStore, inventory models.InventoryStore, engine *mix.Engine, metrics observability.MetricsRegistry, cfg config.Config) *Server {
	if engine == nil {
		engine = mix.NewEngine(logger)
	}
	return &Server{
		Logger:    logger,
		PG:        pg,
		Cache:     cache,
		Inventory: inventory,
		Mix:       engine,
		Metrics:   metrics,
		Config:    cfg,
	}
}

// helper function to write JSON response
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// invalidateOccupancyCache drops cached occupancy tables after a write.
func (s *Server) invalidateOccupancyCache() {
	if s.Cache == nil || s.Cache.Client == nil {
		return
	}
	if err := s.Cache.InvalidateOccupancy(); err != nil {
		s.Logger.Error("invalidate occupancy cache", zap.Error(err))
	}
}
