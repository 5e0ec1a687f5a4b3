package domain

import "time"

// TagCreatedEvent is published every time a tag is created
type TagCreatedEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExportPrefix is the storage prefix every export key lives under
const ExportPrefix = "exports/"

// StoredExport is an export object as listed by the storage
type StoredExport struct {
	Key          string
	LastModified time.Time
}

// Export describes a CSV export of the tag list uploaded to object storage
type Export struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	Items     int       `json:"items"`
}
