package models

import "time"

// Document is one persisted JSON collection. The whole collection is a single
// row whose body is replaced atomically; the version column backs the
// compare-and-swap write discipline in the document store.
type Document struct {
	Key       string `gorm:"primaryKey;size:255"`
	Body      []byte `gorm:"not null"`
	Version   int64  `gorm:"not null;default:1"`
	UpdatedAt time.Time
}

// ModelRegistry lists every model subject to auto-migration.
var ModelRegistry = []interface{}{
	&Document{},
}
