package models

import "time"

// BackupVersion is the format version written into every backup.
const BackupVersion = 1

// Backup is the JSON document produced by GET /api/backup and accepted by
// POST /api/backup/restore. Ids inside are only used to link records; they
// are remapped on restore.
type Backup struct {
	Version    int        `json:"version"`
	ExportedAt time.Time  `json:"exportedAt"`
	Locations  []Location `json:"locations"`
	Boxes      []Box      `json:"boxes"`
	Items      []Item     `json:"items"`
	Categories []Category `json:"categories"`
}

// RestoreResult reports what a restore created.
type RestoreResult struct {
	Locations  int `json:"locations"`
	Boxes      int `json:"boxes"`
	Items      int `json:"items"`
	Categories int `json:"categories"`
}

// ImportRow is one parsed CSV line of an item import.
type ImportRow struct {
	Line        int    `json:"line"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"max=128"`
	Quantity    int    `json:"quantity" validate:"gte=0,lte=1000000"`
	BoxID       *int64 `json:"boxId" validate:"omitempty,gt=0"`
}

// Item converts a validated row into an item to insert.
func (r ImportRow) Item() Item {
	return Item{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Quantity:    r.Quantity,
		BoxID:       r.BoxID,
	}
}

// ImportRowError lists the problems found on one CSV line.
type ImportRowError struct {
	Line   int          `json:"line"`
	Fields []FieldError `json:"fields"`
}

// ImportPreview is the dry-run result of an item import.
type ImportPreview struct {
	Rows   []ImportRow      `json:"rows"`
	Errors []ImportRowError `json:"errors"`
	Valid  int              `json:"valid"`
	Total  int              `json:"total"`
}

// ImportResult is returned once valid rows were inserted.
type ImportResult struct {
	Created int              `json:"created"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors"`
}

// ItemExportRow is one line of the items CSV export. Box and location names
// are empty for orphaned items.
type ItemExportRow struct {
	Item
	BoxName      string
	LocationName string
}
