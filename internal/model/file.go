package model

import "time"

// File represents an uploaded sequencing file.
// This is a pure domain model with no database-specific dependencies or tags;
// bytes live in object storage under StoragePath, the row is read-only after
// the upload that created it.
type File struct {
	ID           string     `json:"id"`
	OriginalName string     `json:"original_name"`
	ContentType  string     `json:"content_type"`
	Size         int64      `json:"size"`
	StoragePath  string     `json:"storage_path"`
	// MetadataPath points at an optional sample-sheet spreadsheet uploaded
	// alongside the primary file. Empty when none was provided.
	MetadataPath string     `json:"metadata_path,omitempty"`
	Place        string     `json:"place,omitempty"`
	CapturedAt   *time.Time `json:"captured_at,omitempty"`
	Weather      string     `json:"weather,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
