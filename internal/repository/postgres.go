package repository

import (
	"context"
	"fmt"
	"time"

	"listingprice/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository reads the listing_reference table. The table is
// maintained outside this service and is never written here.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection pool
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const nearestQuery = `
		SELECT
			id, name, neighbourhood, room_type, accommodates, bedrooms, price, url,
			features <-> $1 AS distance
		FROM listing_reference
		WHERE room_type = $2 AND features IS NOT NULL
		ORDER BY distance ASC
		LIMIT $3
	`

// FindNearest returns the reference listings of roomType whose stored feature
// rows are closest (L2) to features
func (r *PostgresRepository) FindNearest(
	ctx context.Context,
	features []float32,
	roomType string,
	limit int,
) ([]model.ReferenceListing, error) {
	if limit <= 0 {
		return nil, nil
	}

	var listings []model.ReferenceListing
	err := r.db.SelectContext(ctx, &listings, nearestQuery, pgvector.NewVector(features), roomType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comparable listings: %w", err)
	}
	return listings, nil
}

// CountReference returns how many reference listings carry a feature row
func (r *PostgresRepository) CountReference(ctx context.Context) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM listing_reference WHERE features IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to count reference listings: %w", err)
	}
	return total, nil
}
