package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/spherical/catalog-extractor/internal/domain"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

const createProductsTable = `
	CREATE TABLE IF NOT EXISTS catalog_products (
		run_id         TEXT NOT NULL,
		product_id     INTEGER NOT NULL,
		name           TEXT NOT NULL,
		price          INTEGER NOT NULL,
		description    TEXT NOT NULL,
		category       TEXT NOT NULL,
		rating         INTEGER NOT NULL,
		reviews        INTEGER NOT NULL,
		images         TEXT NOT NULL,
		in_stock       BOOLEAN NOT NULL,
		weight         TEXT NOT NULL,
		dimensions     TEXT NOT NULL,
		material       TEXT NOT NULL,
		badge          TEXT,
		date_added     TEXT NOT NULL,
		specifications TEXT NOT NULL,
		created_at     TIMESTAMP NOT NULL,
		PRIMARY KEY (run_id, product_id)
	)
`

// OpenDatabase opens and pings a connection for the configured driver
func OpenDatabase(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var sqlDriver string
	switch driver {
	case DriverSQLite:
		sqlDriver = "sqlite3"
	case DriverPostgres:
		sqlDriver = "postgres"
	default:
		return nil, domain.ConfigError(fmt.Sprintf("unsupported database driver %q", driver), nil)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, domain.IOError("failed to open database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, domain.IOError("failed to connect to database", err)
	}
	return db, nil
}

// ProductRepository stores each build's products under a run identifier.
type ProductRepository struct {
	db     DB
	driver string
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db DB, driver string) *ProductRepository {
	return &ProductRepository{db: db, driver: driver}
}

// EnsureSchema creates the products table if needed.
func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProductsTable); err != nil {
		return domain.IOError("failed to create catalog_products table", err)
	}
	return nil
}

// SaveRun inserts the products of one build and returns the new run id.
func (r *ProductRepository) SaveRun(ctx context.Context, products []domain.Product) (uuid.UUID, error) {
	runID := uuid.New()
	createdAt := time.Now().UTC()

	query := r.rebind(`
		INSERT INTO catalog_products (run_id, product_id, name, price, description, category,
			rating, reviews, images, in_stock, weight, dimensions, material, badge,
			date_added, specifications, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, domain.IOError("failed to begin transaction", err)
	}
	// no-op once committed
	defer tx.Rollback()

	for _, p := range products {
		var badge sql.NullString
		if p.Badge != nil {
			badge = sql.NullString{String: *p.Badge, Valid: true}
		}
		_, err := tx.ExecContext(ctx, query,
			runID.String(), p.ID, p.Name, p.Price, p.Description, string(p.Category),
			p.Rating, p.Reviews, strings.Join(p.Images, ","), p.InStock, p.Weight,
			p.Dimensions, p.Material, badge, p.DateAdded, p.Specifications, createdAt,
		)
		if err != nil {
			return uuid.Nil, domain.IOError(fmt.Sprintf("failed to insert product %d", p.ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, domain.IOError("failed to commit run", err)
	}
	return runID, nil
}

// ListRun returns a run's products ordered by id.
func (r *ProductRepository) ListRun(ctx context.Context, runID uuid.UUID) ([]domain.Product, error) {
	query := r.rebind(`
		SELECT product_id, name, price, description, category, rating, reviews, images,
			in_stock, weight, dimensions, material, badge, date_added, specifications
		FROM catalog_products WHERE run_id = ? ORDER BY product_id
	`)
	rows, err := r.db.QueryContext(ctx, query, runID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p        domain.Product
			category string
			images   string
			badge    sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &category,
			&p.Rating, &p.Reviews, &images, &p.InStock, &p.Weight, &p.Dimensions,
			&p.Material, &badge, &p.DateAdded, &p.Specifications); err != nil {
			return nil, err
		}
		p.Category = domain.Category(category)
		if images != "" {
			p.Images = strings.Split(images, ",")
		}
		if badge.Valid {
			b := badge.String
			p.Badge = &b
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// rebind converts ? placeholders to $n for postgres.
func (r *ProductRepository) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
