// Package store provides the retail store catalog.
package store

import (
	"errors"
	"sort"
)

// Catalog errors.
var (
	// ErrStoreNotFound indicates no store matches the given retailer and store number.
	ErrStoreNotFound = errors.New("store not found")
	// ErrNoValidStores indicates the catalog source contained no usable rows.
	ErrNoValidStores = errors.New("no valid store data found")
)

// Record is a single catalog entry. Records are immutable once loaded;
// identity is the (retailer, store number) pair.
type Record struct {
	Retailer    string
	StoreNumber string
	Address     string
}

// Label returns the display label used for a selected destination.
func (r Record) Label() string {
	return r.Retailer + " " + r.StoreNumber
}

// preferredRetailerOrder is the fixed listing order for known retailers.
// Retailers outside this list sort alphabetically after it.
var preferredRetailerOrder = []string{"SDM", "LD", "SEP", "REX"}

// SortRetailers orders retailer codes: preferred retailers first in their
// fixed order, then the rest alphabetically.
func SortRetailers(retailers []string) []string {
	seen := make(map[string]bool, len(retailers))
	for _, r := range retailers {
		seen[r] = true
	}

	ordered := make([]string, 0, len(retailers))
	for _, r := range preferredRetailerOrder {
		if seen[r] {
			ordered = append(ordered, r)
			seen[r] = false
		}
	}

	var rest []string
	for _, r := range retailers {
		if seen[r] {
			rest = append(rest, r)
			seen[r] = false
		}
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}
