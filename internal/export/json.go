// Package export writes tracker data to files: the full backup document
// as JSON and the ledger as CSV.
package export

import (
	"fmt"
	"os"
)

// ToJSON writes the engine's export document to path. The document is
// already serialized by the engine; this only lands it on disk.
func ToJSON(doc []byte, path string) error {
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
