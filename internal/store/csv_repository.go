package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// requiredColumns are the CSV columns the catalog loader expects.
var requiredColumns = []string{"retailer", "store_number", "address"}

// CSVRepository is an in-memory catalog loaded once from a CSV file.
type CSVRepository struct {
	records []Record
}

// NewCSVRepository loads the catalog from the CSV file at path. Rows with any
// empty required field are skipped with a warning; a missing file, missing
// columns, or zero valid rows is an error.
func NewCSVRepository(path string, log zerolog.Logger) (*CSVRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store data file not found: %s: %w", path, err)
	}
	defer f.Close()

	records, err := parseCatalogCSV(f, log)
	if err != nil {
		return nil, fmt.Errorf("loading store catalog from %s: %w", path, err)
	}

	log.Info().
		Int("stores", len(records)).
		Str("path", path).
		Msg("store catalog loaded")

	return &CSVRepository{records: records}, nil
}

func parseCatalogCSV(r io.Reader, log zerolog.Logger) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns in CSV: %s", strings.Join(missing, ", "))
	}

	var records []Record
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			log.Warn().Int("row", rowNum).Err(err).Msg("skipping malformed CSV row")
			continue
		}

		rec := Record{
			Retailer:    strings.TrimSpace(row[colIndex["retailer"]]),
			StoreNumber: strings.TrimSpace(row[colIndex["store_number"]]),
			Address:     strings.TrimSpace(row[colIndex["address"]]),
		}
		if rec.Retailer == "" || rec.StoreNumber == "" || rec.Address == "" {
			log.Warn().Int("row", rowNum).Msg("skipping CSV row with empty values")
			continue
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoValidStores
	}

	return records, nil
}

// All returns every record in catalog order.
func (r *CSVRepository) All(_ context.Context) ([]Record, error) {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Retailers returns the distinct retailer codes in listing order.
func (r *CSVRepository) Retailers(_ context.Context) ([]string, error) {
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
func (r *CSVRepository) StoreNumbers(_ context.Context, retailer string) ([]string, error) {
	var numbers []string
	for _, rec := range r.records {
		if rec.Retailer == retailer {
			numbers = append(numbers, rec.StoreNumber)
		}
	}
	return numbers, nil
}

// AddressFor returns the address for the given retailer and store number.
func (r *CSVRepository) AddressFor(_ context.Context, retailer, storeNumber string) (string, error) {
	for _, rec := range r.records {
		if rec.Retailer == retailer && rec.StoreNumber == storeNumber {
			return rec.Address, nil
		}
	}
	return "", ErrStoreNotFound
}

// Ensure CSVRepository implements Repository.
var _ Repository = (*CSVRepository)(nil)
