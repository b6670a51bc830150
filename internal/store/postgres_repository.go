package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository, for
// deployments that manage the store catalog in a database instead of a CSV.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL store catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// All returns every record in catalog order.
func (r *PostgresRepository) All(ctx context.Context) ([]Record, error) {
	query := `
		SELECT retailer, store_number, address
		FROM stores
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Retailer, &rec.StoreNumber, &rec.Address); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoValidStores
	}

	return records, nil
}

// Retailers returns the distinct retailer codes in listing order.
func (r *PostgresRepository) Retailers(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT retailer
		FROM stores
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var retailers []string
	for rows.Next() {
		var retailer string
		if err := rows.Scan(&retailer); err != nil {
			return nil, err
		}
		retailers = append(retailers, retailer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return SortRetailers(retailers), nil
}

// StoreNumbers returns the store numbers for a retailer in catalog order.
func (r *PostgresRepository) StoreNumbers(ctx context.Context, retailer string) ([]string, error) {
	query := `
		SELECT store_number
		FROM stores
		WHERE retailer = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, retailer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, err
		}
		numbers = append(numbers, number)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return numbers, nil
}

// AddressFor returns the address for the given retailer and store number.
func (r *PostgresRepository) AddressFor(ctx context.Context, retailer, storeNumber string) (string, error) {
	query := `
		SELECT address
		FROM stores
		WHERE retailer = $1 AND store_number = $2
	`

	var address string
	err := r.pool.QueryRow(ctx, query, retailer, storeNumber).Scan(&address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrStoreNotFound
		}
		return "", err
	}

	return address, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
