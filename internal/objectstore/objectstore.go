// Package objectstore abstracts the Drive-like storage that holds customer
// media. The backend only needs folder provisioning and basic file CRUD; a
// real cloud SDK plugs in behind the Store interface.
package objectstore

import (
	"context"
	"errors"
	"time"
)

// ErrFileNotFound is returned when a file or folder id does not exist.
var ErrFileNotFound = errors.New("file not found in object store")

// File describes a stored object.
type File struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	ContentURL   string    `json:"content_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	MimeType     string    `json:"mime_type,omitempty"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the external folder/file collaborator.
type Store interface {
	// FindOrCreateFolder returns the id and browse URL of the folder with
	// the given name under parentID, creating it when absent. An empty
	// parentID addresses the root.
	FindOrCreateFolder(ctx context.Context, name, parentID string) (id string, url string, err error)
	Upload(ctx context.Context, content []byte, name, folderID, mimeType string) (*File, error)
	List(ctx context.Context, folderID string) ([]File, error)
	Delete(ctx context.Context, fileID string) error
}
