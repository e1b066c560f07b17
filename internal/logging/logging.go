package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. Quiet by default so CLI output stays
// clean; debug switches to the development config with full levels.
func New(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	return cfg.Build()
}

// NewServer builds the JSON-encoded logger used by the HTTP server, where
// output goes to a collector rather than a terminal.
func NewServer(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
