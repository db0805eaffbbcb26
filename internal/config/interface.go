package config

import (
	"context"
)

// Loader is the interface for a format-specific build file loader.
type Loader interface {
	// Load discovers and reads every build file under root and translates
	// them into the format-agnostic model.
	Load(ctx context.Context, root string) (*Model, error)
}
