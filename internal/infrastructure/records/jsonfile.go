// Package records reads and writes scraped product record batches as JSON
// files. A batch file may hold either a single record object or an array
// of record objects; anything else is a malformed batch.
package records

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pricelens/backend/internal/domain"
)

// ReadFile loads a batch of product records from a JSON file.
// A top-level object is treated as a batch of one.
func ReadFile(path string) ([]domain.ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	return Decode(data)
}

// Decode parses record JSON that is either a single object or an array
func Decode(data []byte) ([]domain.ProductRecord, error) {
	var batch []domain.ProductRecord
	if err := json.Unmarshal(data, &batch); err == nil {
		if batch == nil {
			return nil, domain.ErrMalformedBatch
		}
		return batch, nil
	}

	var single domain.ProductRecord
	if err := json.Unmarshal(data, &single); err == nil {
		return []domain.ProductRecord{single}, nil
	}

	return nil, domain.ErrMalformedBatch
}

// WriteFile saves processed records as an indented JSON array
func WriteFile(path string, records []domain.ProductRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}
	return nil
}
