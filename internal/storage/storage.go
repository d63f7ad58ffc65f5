// Package storage holds the single backing store for uploaded photos.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Domenick1991/staybooking/config"
)

// ObjectStore saves an object under key and returns the URL it can be fetched from.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Backend {
	case "local":
		return NewLocalStore(cfg.LocalDir, cfg.BaseURL)
	case "firebase":
		return NewFirebaseStore(ctx, cfg.Firebase)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
