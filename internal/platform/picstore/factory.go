package picstore

import (
	"context"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
)

// NewStore builds the store selected by cfg.Backend.
func NewStore(ctx context.Context, log *logger.Logger, cfg Config) (Store, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendGCS:
		return NewGCSStore(ctx, log, cfg)
	case BackendLocal:
		return NewLocalStore(log, cfg)
	default:
		return NewHTTPStore(log, cfg)
	}
}
