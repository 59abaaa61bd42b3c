package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq" // registers the postgres driver
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/adplanhq/mixengine/internal/models"
)

// Postgres wraps a postgres DB connection.
type Postgres struct {
	DB *sql.DB
}

// schemaSQL sets up the necessary tables if they don't exist.
const schemaSQL = `CREATE TABLE IF NOT EXISTS catalog_items (
    id TEXT PRIMARY KEY,
    screen TEXT NOT NULL,
    placement TEXT NOT NULL,
    size TEXT,
    ad_type TEXT,
    price_4w BIGINT NOT NULL,
    rotation TEXT,
    total_slots INT NOT NULL,
    impressions_4w TEXT,
    impressions_is_number BOOLEAN NOT NULL DEFAULT TRUE,
    ctr TEXT
);

CREATE TABLE IF NOT EXISTS bookings (
    id TEXT PRIMARY KEY,
    product_id TEXT REFERENCES catalog_items(id),
    client_name TEXT NOT NULL,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    slots_used INT NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_bookings_product_dates ON bookings (product_id, start_date, end_date);
`

// InitPostgres connects to Postgres with connection pooling configuration.
func InitPostgres(dsn string, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (*Postgres, error) {
	// Register the otelsql wrapper for postgres
	driverName, err := otelsql.Register("postgres",
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	p := &Postgres{DB: db}
	if err := p.ensureSchema(); err != nil {
		return nil, err
	}
	if err := p.ensureDefaultCatalog(); err != nil {
		return nil, err
	}
	zap.L().Info("Connected to Postgres with connection pooling",
		zap.Int("max_open_conns", maxOpenConns),
		zap.Int("max_idle_conns", maxIdleConns),
		zap.Duration("conn_max_lifetime", connMaxLifetime))
	return p, nil
}

// Close terminates the Postgres connection.
func (p *Postgres) Close() {
	if p != nil && p.DB != nil {
		if err := p.DB.Close(); err != nil {
			zap.L().Error("postgres close", zap.Error(err))
		}
	}
}

// ensureSchema creates the required tables if they do not exist.
func (p *Postgres) ensureSchema() error {
	ctx := context.Background()
	if _, err := p.DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// DefaultCatalog returns the rate card seeded into an empty database.
func DefaultCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "A1", Screen: "PC Main", Placement: "A1", Size: "560 X 187", AdType: "JPEG, GIF", Price4W: 5000000, Rotation: "6 구좌", TotalSlots: 6, Impressions4W: models.NumericVolume(100000), CTR: "0.21%"},
		{ID: "A2", Screen: "PC Main", Placement: "A2", Size: "270 X 187", AdType: "JPEG", Price4W: 4000000, Rotation: "6 구좌", TotalSlots: 6, Impressions4W: models.NumericVolume(100000), CTR: "0.21%"},
		{ID: "TOP", Screen: "PC Main", Placement: "TOP", Size: "800 X 80", AdType: "JPEG", Price4W: 4000000, Rotation: "5 구좌", TotalSlots: 5, Impressions4W: models.NumericVolume(140000), CTR: "0.14%"},
		{ID: "BL", Screen: "PC Main", Placement: "BL", Size: "200 X 420", AdType: "JPEG, GIF", Price4W: 5000000, Rotation: "2 구좌", TotalSlots: 2, Impressions4W: models.NumericVolume(200000), CTR: "0.05%"},
		{ID: "B", Screen: "PC Main", Placement: "B", Size: "200 X 210", AdType: "JPEG, GIF", Price4W: 3000000, Rotation: "10 구좌", TotalSlots: 10, Impressions4W: models.NumericVolume(180000), CTR: "0.05%"},
		{ID: "COMM_MID", Screen: "Mobile Sub", Placement: "커뮤 Middle", Size: "750 X 240", AdType: "JPEG", Price4W: 4000000, Rotation: "10 구좌", TotalSlots: 10, Impressions4W: models.TextVolume("30만 보장"), CTR: "0.15%"},
		{ID: "COMM_LOW", Screen: "Mobile Sub", Placement: "커뮤 Lower", Size: "750 X 240", AdType: "JPEG, GIF, VOD", Price4W: 2500000, Rotation: "6 구좌", TotalSlots: 6, Impressions4W: models.NumericVolume(400000), CTR: "0.04%"},
		{ID: "MID", Screen: "Mobile Main", Placement: "Middle", Size: "750 X 240", AdType: "JPEG, GIF, VOD", Price4W: 2500000, Rotation: "5 구좌", TotalSlots: 5, Impressions4W: models.NumericVolume(130000), CTR: "0.01%"},
		{ID: "LOW", Screen: "Mobile Main", Placement: "Lower", Size: "750 X 240", AdType: "JPEG", Price4W: 2000000, Rotation: "5 구좌 슬라이드", TotalSlots: 5, Impressions4W: models.NumericVolume(130000), CTR: "0.03%"},
	}
}

// ensureDefaultCatalog seeds the default rate card when the catalog is empty.
func (p *Postgres) ensureDefaultCatalog() error {
	ctx := context.Background()
	var count int
	if err := p.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_items`).Scan(&count); err != nil {
		return fmt.Errorf("count catalog items: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, item := range DefaultCatalog() {
		if err := p.InsertCatalogItem(item); err != nil {
			return fmt.Errorf("seed catalog item %s: %w", item.ID, err)
		}
	}
	zap.L().Info("Seeded default catalog", zap.Int("items", len(DefaultCatalog())))
	return nil
}

// LoadCatalogItems retrieves the full catalog from the database.
func (p *Postgres) LoadCatalogItems() ([]models.CatalogItem, error) {
	rows, err := p.DB.QueryContext(context.Background(), `SELECT id, screen, placement, size, ad_type, price_4w, rotation, total_slots, impressions_4w, impressions_is_number, ctr FROM catalog_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query catalog items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []models.CatalogItem
	for rows.Next() {
		var item models.CatalogItem
		var size, adType, rotation, impressions, ctr sql.NullString
		var isNumber bool
		if err := rows.Scan(&item.ID, &item.Screen, &item.Placement, &size, &adType, &item.Price4W, &rotation, &item.TotalSlots, &impressions, &isNumber, &ctr); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		item.Size = size.String
		item.AdType = adType.String
		item.Rotation = rotation.String
		item.CTR = ctr.String
		item.Impressions4W = models.ImpressionVolume{Raw: impressions.String, IsNumber: isNumber}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

// LoadBookings retrieves all bookings from the database. Dates come back
// as plain YYYY-MM-DD strings.
func (p *Postgres) LoadBookings() ([]models.Booking, error) {
	rows, err := p.DB.QueryContext(context.Background(), `SELECT id, product_id, client_name, start_date, end_date, slots_used FROM bookings ORDER BY start_date`)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		var start, end time.Time
		if err := rows.Scan(&b.ID, &b.ProductID, &b.ClientName, &start, &end, &b.SlotsUsed); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.StartDate = start.Format(models.DateLayout)
		b.EndDate = end.Format(models.DateLayout)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return bookings, nil
}

// InsertCatalogItem inserts a new catalog item.
func (p *Postgres) InsertCatalogItem(item models.CatalogItem) error {
	_, err := p.DB.ExecContext(context.Background(), `INSERT INTO catalog_items (id, screen, placement, size, ad_type, price_4w, rotation, total_slots, impressions_4w, impressions_is_number, ctr) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		item.ID, item.Screen, item.Placement, item.Size, item.AdType, item.Price4W, item.Rotation, item.TotalSlots, item.Impressions4W.Raw, item.Impressions4W.IsNumber, item.CTR)
	if err != nil {
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// UpdateCatalogItem updates an existing catalog item.
func (p *Postgres) UpdateCatalogItem(item models.CatalogItem) error {
	_, err := p.DB.ExecContext(context.Background(), `UPDATE catalog_items SET screen=$1, placement=$2, size=$3, ad_type=$4, price_4w=$5, rotation=$6, total_slots=$7, impressions_4w=$8, impressions_is_number=$9, ctr=$10 WHERE id=$11`,
		item.Screen, item.Placement, item.Size, item.AdType, item.Price4W, item.Rotation, item.TotalSlots, item.Impressions4W.Raw, item.Impressions4W.IsNumber, item.CTR, item.ID)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	return nil
}

// DeleteCatalogItem removes a catalog item by ID, first deleting its bookings.
func (p *Postgres) DeleteCatalogItem(id string) error {
	_, err := p.DB.ExecContext(context.Background(), `DELETE FROM bookings WHERE product_id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete bookings for catalog item: %w", err)
	}

	_, err = p.DB.ExecContext(context.Background(), `DELETE FROM catalog_items WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	return nil
}

// InsertBooking inserts a new booking.
func (p *Postgres) InsertBooking(b models.Booking) error {
	_, err := p.DB.ExecContext(context.Background(), `INSERT INTO bookings (id, product_id, client_name, start_date, end_date, slots_used) VALUES ($1,$2,$3,$4,$5,$6)`,
		b.ID, b.ProductID, b.ClientName, b.StartDate, b.EndDate, b.SlotsUsed)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// UpdateBooking updates an existing booking.
func (p *Postgres) UpdateBooking(b models.Booking) error {
	_, err := p.DB.ExecContext(context.Background(), `UPDATE bookings SET product_id=$1, client_name=$2, start_date=$3, end_date=$4, slots_used=$5 WHERE id=$6`,
		b.ProductID, b.ClientName, b.StartDate, b.EndDate, b.SlotsUsed, b.ID)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// DeleteBooking removes a booking by ID.
func (p *Postgres) DeleteBooking(id string) error {
	_, err := p.DB.ExecContext(context.Background(), `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}
