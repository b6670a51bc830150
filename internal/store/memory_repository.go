package store

import "context"

// InMemoryRepository is an in-memory implementation of Repository for testing.
type InMemoryRepository struct {
	records []Record
}

// NewInMemoryRepository creates a new in-memory catalog with the given records.
func NewInMemoryRepository(records []Record) *InMemoryRepository {
	out := make([]Record, len(records))
	copy(out, records)
	return &InMemoryRepository{records: out}
}

// All returns every record in catalog order.
func (r *InMemoryRepository) All(_ context.Context) ([]Record, error) {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Retailers returns the distinct retailer codes in listing order.
func (r *InMemoryRepository) Retailers(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var retailers []string
	for _, rec := range r.records {
		if !seen[rec.Retailer] {
			seen[rec.Retailer] = true
			retailers = append(retailers, rec.Retailer)
		}
	}
	return SortRetailers(retailers), nil
}

// StoreNumbers returns the store numbers for a retailer in catalog order.
func (r *InMemoryRepository) StoreNumbers(_ context.Context, retailer string) ([]string, error) {
	var numbers []string
	for _, rec := range r.records {
		if rec.Retailer == retailer {
			numbers = append(numbers, rec.StoreNumber)
		}
	}
	return numbers, nil
}

// AddressFor returns the address for the given retailer and store number.
func (r *InMemoryRepository) AddressFor(_ context.Context, retailer, storeNumber string) (string, error) {
	for _, rec := range r.records {
		if rec.Retailer == retailer && rec.StoreNumber == storeNumber {
			return rec.Address, nil
		}
	}
	return "", ErrStoreNotFound
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
