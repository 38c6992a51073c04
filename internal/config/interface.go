package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it into
	// the format-agnostic model. Files and directories are both accepted.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
