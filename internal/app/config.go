package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath is a manifest file or a directory searched recursively.
	// Empty means only the built-in module types are available.
	ManifestPath string
	// IndexDB is the SQLite index store path. Empty resolves indexes
	// against the declared index fields only.
	IndexDB string

	LogFormat string
	LogLevel  string
	// InspectDepth is the default depth of the inspect rendering; -1 renders
	// everything.
	InspectDepth int
}

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case LogFormatText, LogFormatJSON:
	case "":
		cfg.LogFormat = LogFormatText
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if cfg.InspectDepth < -1 {
		return nil, errors.New("inspect depth must be -1 (unlimited) or greater")
	}

	return &cfg, nil
}
