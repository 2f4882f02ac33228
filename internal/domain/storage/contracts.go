// Package storage defines the object storage contract shared by documents and QR code images.
package storage

import "context"

// ObjectConnector stores opaque objects under slash separated keys
type ObjectConnector interface {
	// Upload writes data under key, replacing any existing object.
	Upload(ctx context.Context, key, contentType string, data []byte) error

	// Download returns the object stored under key.
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
