package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"streamcal/pkg/calendar"
	"streamcal/pkg/domain"
)

// Build assembles the persisted artifact from a finished run. Nil slices
// become empty ones so consumers always see arrays.
func Build(windows []calendar.MonthWindow, releases, theatrical []domain.Release) *domain.Dataset {
	months := make([]domain.Month, 0, len(windows))
	for _, w := range windows {
		months = append(months, domain.Month{Name: w.DisplayName(), Year: w.Year})
	}

	if releases == nil {
		releases = []domain.Release{}
	}
	if theatrical == nil {
		theatrical = []domain.Release{}
	}

	return &domain.Dataset{
		LastUpdated: time.Now().Format(time.RFC3339),
		Months:      months,
		Releases:    releases,
		Theatrical:  theatrical,
	}
}

// Write marshals the dataset and atomically replaces path, creating the
// parent directory if needed.
func Write(path string, ds *domain.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace dataset: %w", err)
	}
	return nil
}
