package models

import "time"

// ImportRow is one parsed spreadsheet row of a bulk fuel history import.
// The vehicle columns repeat on every row and are only consulted the first
// time a plate is seen. Missing numeric columns arrive as zero values from
// the import facility; Liters zero is replaced with 1 during import so the
// derived cost-per-liter stays defined.
type ImportRow struct {
	Plate              string    `json:"plate"`
	Model              string    `json:"model"`
	Driver             string    `json:"driver"`
	Capacity           float64   `json:"capacity"`
	ExpectedEfficiency float64   `json:"expectedEfficiency"`
	InitialMileage     int       `json:"initialMileage"`
	Timestamp          time.Time `json:"timestamp"`
	Cost               float64   `json:"cost"`
	Liters             float64   `json:"liters"`
	NewMileage         int       `json:"newMileage"`
}

// SkippedRow explains one dropped import row
type SkippedRow struct {
	Index  int    `json:"index"`
	Plate  string `json:"plate"`
	Reason string `json:"reason"`
}

// ImportSummary reports what a bulk import actually did. Rows are dropped
// rather than aborting the batch, but every drop is counted and explained.
type ImportSummary struct {
	BatchID         string       `json:"batchID"`
	EntriesCreated  int          `json:"entriesCreated"`
	VehiclesCreated int          `json:"vehiclesCreated"`
	RowsSkipped     int          `json:"rowsSkipped"`
	Skipped         []SkippedRow `json:"skipped,omitempty"`
}
