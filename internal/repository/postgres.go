package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aptchat/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

const apartmentColumns = "id, bedrooms, location, price, area_sqft, amenities, created_at, updated_at"

// ApartmentRepository handles database operations against the apartments table
type ApartmentRepository struct {
	db *sqlx.DB
}

// NewApartmentRepository creates a new PostgreSQL-backed apartment repository
func NewApartmentRepository(dsn string, maxConn, maxIdleConn int) (*ApartmentRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &ApartmentRepository{db: db}, nil
}

// Close closes the database connection
func (r *ApartmentRepository) Close() error {
	return r.db.Close()
}

// buildWhere translates a filter spec into WHERE clauses with positional args
func buildWhere(spec *model.FilterSpec, argIndex int) ([]string, []interface{}, int) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}

	if spec != nil {
		if spec.Bedrooms != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("bedrooms = $%d", argIndex))
			args = append(args, *spec.Bedrooms)
			argIndex++
		}
		if spec.Location != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("location = $%d", argIndex))
			args = append(args, *spec.Location)
			argIndex++
		}
		if spec.PriceMin != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
			args = append(args, *spec.PriceMin)
			argIndex++
		}
		if spec.PriceMax != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
			args = append(args, *spec.PriceMax)
			argIndex++
		}
		// JSONB containment: record must hold every requested amenity
		if len(spec.Amenities) > 0 {
			whereClauses = append(whereClauses, fmt.Sprintf("amenities @> $%d", argIndex))
			args = append(args, model.StringArray(spec.Amenities))
			argIndex++
		}
	}

	return whereClauses, args, argIndex
}

// Find returns apartments matching the filter spec. A limit of 0 means no limit.
func (r *ApartmentRepository) Find(ctx context.Context, spec *model.FilterSpec, limit int) ([]model.Apartment, error) {
	whereClauses, args, argIndex := buildWhere(spec, 1)

	query := fmt.Sprintf(
		"SELECT %s FROM apartments WHERE %s ORDER BY id",
		apartmentColumns, strings.Join(whereClauses, " AND "),
	)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
	}

	apartments := []model.Apartment{}
	if err := r.db.SelectContext(ctx, &apartments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch apartments: %w", err)
	}
	return apartments, nil
}

// FindSorted returns apartments matching the filter spec, ordered by the given
// field and truncated to limit. field must be "price" or "area_sqft".
func (r *ApartmentRepository) FindSorted(ctx context.Context, spec *model.FilterSpec, field string, descending bool, limit int) ([]model.Apartment, error) {
	switch field {
	case model.SortFieldPrice, model.SortFieldArea:
	default:
		return nil, fmt.Errorf("unsupported sort field: %s", field)
	}
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	whereClauses, args, argIndex := buildWhere(spec, 1)

	query := fmt.Sprintf(
		"SELECT %s FROM apartments WHERE %s ORDER BY %s %s LIMIT $%d",
		apartmentColumns, strings.Join(whereClauses, " AND "), field, direction, argIndex,
	)
	args = append(args, limit)

	apartments := []model.Apartment{}
	if err := r.db.SelectContext(ctx, &apartments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch sorted apartments: %w", err)
	}
	return apartments, nil
}

// DistinctLocations returns the distinct location values currently in the
// store. Lexicographic order keeps alias resolution deterministic.
func (r *ApartmentRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	locations := []string{}
	query := `SELECT DISTINCT location FROM apartments WHERE location <> '' ORDER BY location ASC`
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}
	return locations, nil
}

// NearestNeighbors returns the k apartments closest to the query embedding,
// nearest first, with the embedding distance attached.
func (r *ApartmentRepository) NearestNeighbors(ctx context.Context, embedding []float32, k int) ([]model.Neighbor, error) {
	vec := pgvector.NewVector(embedding)
	query := fmt.Sprintf(`
		SELECT %s, embedding <-> $1 AS distance
		FROM apartments
		WHERE embedding IS NOT NULL
		ORDER BY embedding <-> $1
		LIMIT $2
	`, apartmentColumns)

	neighbors := []model.Neighbor{}
	if err := r.db.SelectContext(ctx, &neighbors, query, vec, k); err != nil {
		return nil, fmt.Errorf("failed to run vector search: %w", err)
	}
	return neighbors, nil
}

// BatchUpdateEmbeddings writes embeddings for multiple apartments in one transaction
func (r *ApartmentRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingUpdate) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE apartments SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, vec, item.ApartmentID); err != nil {
			errors = append(errors, fmt.Sprintf("apartment %d: %v", item.ApartmentID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// InsertApartment stores a new apartment listing
func (r *ApartmentRepository) InsertApartment(ctx context.Context, a *model.Apartment) error {
	query := `
		INSERT INTO apartments (bedrooms, location, price, area_sqft, amenities)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := r.db.GetContext(ctx, &a.ID, query, a.Bedrooms, a.Location, a.Price, a.AreaSqft, a.Amenities); err != nil {
		return fmt.Errorf("failed to insert apartment: %w", err)
	}
	return nil
}
