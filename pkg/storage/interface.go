package storage

import (
	"github.com/Sriram-PR/md-toc/pkg/models"
)

// DocumentStore remembers the last processing result of each document so
// unchanged documents can be skipped and self-inflicted writes recognised
type DocumentStore interface {
	// GetDocumentEntry retrieves the recorded entry for a document path
	// Returns status (the recorded FileStatus, FileStatusNotFound or FileStatusDBError),
	// the DocumentEntry if found and parsed, and any error
	GetDocumentEntry(path string) (status models.FileStatus, entry *models.DocumentEntry, err error)

	// UpdateDocumentEntry records the entry for a document path
	UpdateDocumentEntry(path string, entry *models.DocumentEntry) error

	// Count returns the number of documents recorded
	Count() (int, error)

	// Close releases the store
	Close() error
}
