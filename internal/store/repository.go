package store

import "context"

// Repository provides read-only access to the store catalog.
type Repository interface {
	// All returns every record in catalog order.
	All(ctx context.Context) ([]Record, error)
	// Retailers returns the distinct retailer codes in listing order.
	Retailers(ctx context.Context) ([]string, error)
	// StoreNumbers returns the store numbers for a retailer in catalog order.
	StoreNumbers(ctx context.Context, retailer string) ([]string, error)
	// AddressFor returns the address of the store identified by retailer and
	// store number, or ErrStoreNotFound.
	AddressFor(ctx context.Context, retailer, storeNumber string) (string, error)
}
