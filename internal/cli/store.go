package cli

import (
	"context"
	"fmt"

	"github.com/fpgakit/placer/pkg/errors"
	"github.com/fpgakit/placer/pkg/runs"
)

// Store backend names accepted by --store.
const (
	storeFile  = "file"
	storeMongo = "mongo"
)

// mongoDatabase is the database name used by the mongo store backend.
const mongoDatabase = "placer"

// newStore creates a run store for the requested backend. The file backend
// archives under the XDG data directory; the mongo backend needs --mongo-uri.
func newStore(ctx context.Context, backend, mongoURI string) (runs.Store, error) {
	switch backend {
	case storeFile:
		dir, err := dataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve run directory: %w", err)
		}
		return runs.NewFileStore(dir)
	case storeMongo:
		if err := errors.ValidateMongoURI(mongoURI); err != nil {
			return nil, err
		}
		return runs.NewMongoStore(ctx, mongoURI, mongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (use file or mongo)", backend)
	}
}
