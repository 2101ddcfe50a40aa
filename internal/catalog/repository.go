package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/database"
	"github.com/ayodelep/weathercat/pkg/logger"
)

// Repository handles database operations for locations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new catalog repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new location and returns it with its assigned ID.
func (r *Repository) Create(ctx context.Context, name string) (*Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.NewValidationError("location name must not be empty")
	}

	var loc Location
	query := `INSERT INTO locations (name) VALUES ($1) RETURNING id, name`
	err := r.db.QueryRow(ctx, query, name).Scan(&loc.ID, &loc.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.NewDuplicateError("location with name %s already exists", name)
		}
		return nil, common.NewStorageError("failed to create location", err)
	}

	logger.Info("location created", zap.Int64("id", loc.ID), zap.String("name", loc.Name))
	return &loc, nil
}

// SoftDelete marks a location as deleted without removing the row.
// Deleting a row that is already marked deleted is an error.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	var deleted bool
	err := r.db.QueryRow(ctx, `SELECT deleted FROM locations WHERE id = $1`, id).Scan(&deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NewNotFoundError("location with id: %d not found", id)
		}
		return common.NewStorageError("failed to fetch location", err)
	}
	if deleted {
		return common.NewDuplicateError("location with id: %d has already been deleted", id)
	}

	_, err = r.db.Exec(ctx, `UPDATE locations SET deleted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return common.NewStorageError("failed to delete location", err)
	}

	logger.Info("location soft-deleted", zap.Int64("id", id))
	return nil
}

// GetByID fetches a single active location by its ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Location, error) {
	var loc Location
	query := `SELECT id, name FROM locations WHERE id = $1 AND deleted = FALSE`
	err := r.db.QueryRow(ctx, query, id).Scan(&loc.ID, &loc.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("location with id: %d not found", id)
		}
		return nil, common.NewStorageError("failed to fetch location", err)
	}
	return &loc, nil
}

// GetByName fetches a single active location by its name.
func (r *Repository) GetByName(ctx context.Context, name string) (*Location, error) {
	var loc Location
	query := `SELECT id, name FROM locations WHERE name = $1 AND deleted = FALSE`
	err := r.db.QueryRow(ctx, query, name).Scan(&loc.ID, &loc.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("location with name: %s not found", name)
		}
		return nil, common.NewStorageError("failed to fetch location", err)
	}
	return &loc, nil
}

// ListActive returns all locations that have not been soft-deleted.
func (r *Repository) ListActive(ctx context.Context) ([]*Location, error) {
	query := `SELECT id, name FROM locations WHERE deleted = FALSE ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, common.NewStorageError("failed to list locations", err)
	}
	defer rows.Close()

	var locations []*Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, common.NewStorageError("failed to scan location", err)
		}
		locations = append(locations, &loc)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("failed to read locations", err)
	}

	if len(locations) == 0 {
		logger.Warn("location catalog is empty")
	}
	return locations, nil
}

// RecordView increments the view counter for a location.
func (r *Repository) RecordView(ctx context.Context, id int64) error {
	query := `UPDATE locations SET view_count = view_count + 1, updated_at = NOW() WHERE id = $1 AND deleted = FALSE`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return common.NewStorageError("failed to record view", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("location with id: %d not found", id)
	}
	return nil
}

// Reset drops and recreates the locations table, discarding all rows
// including soft-deleted ones.
func (r *Repository) Reset(ctx context.Context) error {
	schema, err := database.LocationsSchema()
	if err != nil {
		return common.NewStorageError("failed to load locations schema", err)
	}
	if _, err := r.db.Exec(ctx, `DROP TABLE IF EXISTS locations`); err != nil {
		return common.NewStorageError("failed to drop locations table", err)
	}
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return common.NewStorageError("failed to recreate locations table", err)
	}
	logger.Info("location catalog reset")
	return nil
}
