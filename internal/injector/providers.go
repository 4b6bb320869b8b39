package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/hexcurl/internal/config"
	"github.com/zeusync/hexcurl/internal/core/level"
	"github.com/zeusync/hexcurl/internal/core/observability/log"
	"github.com/zeusync/hexcurl/internal/runner"
)

// ConfigPath is the tuning file to load. Empty means the defaults.
type ConfigPath string

// LevelsPath is a level document to load. Empty means the built-in levels.
type LevelsPath string

var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideCatalog,
	runner.New,
)

func ProvideConfig(path ConfigPath) (config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.LoadFile(string(path))
}

// ProvideLogger builds the process logger at the configured level. The
// cleanup flushes it.
func ProvideLogger(cfg config.Config) (log.Log, func()) {
	logger := log.New(cfg.LogLevel())
	return logger, func() { _ = logger.Sync() }
}

func ProvideCatalog(path LevelsPath) (*level.Catalog, error) {
	if path == "" {
		return level.Builtin()
	}
	return level.LoadFile(string(path))
}
