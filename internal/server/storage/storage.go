// Package storage talks to the external object store holding chat
// attachments. One small interface covers the three operations the chat
// needs, so the URL-fragment normalization quirk of the signing endpoint
// lives in exactly one place.
package storage

import (
	"context"
	"io"
	"net/url"
	"strings"

	"cofre/internal/server/config"
)

// Object describes one stored object as returned by List.
type Object struct {
	Name string
}

// ObjectStore is the integration surface against the object-storage service.
type ObjectStore interface {
	// SignURL exchanges a stored attachment reference for a time-limited,
	// authenticated download URL. The reference may be a bare object name
	// or, in legacy rows, a full path or URL; implementations reduce it to
	// the bare name first. Each call re-signs; nothing is cached.
	SignURL(ctx context.Context, ref string) (string, error)

	// Upload stores body under name with the given content type.
	Upload(ctx context.Context, name string, contentType string, body io.Reader) error

	// List returns the objects currently in the attachment bucket.
	List(ctx context.Context) ([]Object, error)
}

// NewStore selects the ObjectStore implementation for the configured driver.
func NewStore(cfg *config.Config) ObjectStore {
	if cfg.StorageDriver == config.DriverS3 {
		return NewS3Store(cfg)
	}
	return NewSupabaseStore(cfg)
}

// bareName reduces a stored reference to its percent-decoded bare object
// name. Legacy rows stored full paths or URLs; only the last segment
// matters. The name is decoded exactly once.
func bareName(ref string) string {
	name := strings.TrimSpace(ref)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}
