// Package artifact writes the JSON pallet-instruction file a successful
// packing call produces, per the wire format in the external interfaces
// section: one file per packing call, named with the order number and a
// timestamp so re-triggers never clobber a prior run's output.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fulcrum-wms/packer/internal/packing"
)

// Write serializes pallets to dir/pallet_instructions_<orderNumber>_<stamp>.json
// and returns the path written.
func Write(dir, orderNumber string, pallets []packing.Pallet, stamp time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("artifact: create dir %s: %w", dir, err)
	}

	name := fmt.Sprintf("pallet_instructions_%s_%s.json", orderNumber, stamp.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	records := packing.Serialize(pallets)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("artifact: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("artifact: write %s: %w", path, err)
	}
	return path, nil
}

// Read loads a previously written artifact back into its record form, used
// by cmd/palletctl's replay command.
func Read(path string) ([]packing.PalletRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: read %s: %w", path, err)
	}
	var records []packing.PalletRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("artifact: unmarshal %s: %w", path, err)
	}
	return records, nil
}
