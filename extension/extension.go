// Package extension provides the Forge extension adapter for Ajo.
//
// It implements the forge.Extension interface to integrate Ajo
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.ajo" or "ajo" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	ajo "github.com/xraph/ajo"
	"github.com/xraph/ajo/store"
	"github.com/xraph/ajo/store/bolt"
	"github.com/xraph/ajo/store/memory"
	"github.com/xraph/ajo/store/redis"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "ajo"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Rotating savings group engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Ajo as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *ajo.Engine
	store      store.Store
	engineOpts []ajo.Option
}

// New creates a new Ajo Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ajo engine.
// This is nil until Register is called.
func (e *Extension) Engine() *ajo.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Open the configured store unless one was provided programmatically.
	if e.store == nil {
		s, err := e.openStore()
		if err != nil {
			return err
		}
		e.store = s
	}

	e.engine = ajo.New(e.store, e.engineOpts...)

	return vessel.Provide(fapp.Container(), func() (*ajo.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("ajo: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("ajo: store not initialized")
	}
	return e.store.Ping(ctx)
}

// openStore constructs the storage backend named by the resolved config.
func (e *Extension) openStore() (store.Store, error) {
	switch e.config.Driver {
	case "", DriverMemory:
		return memory.New(), nil
	case DriverBolt:
		return bolt.Open(e.config.BoltPath)
	case DriverRedis:
		return redis.Open(e.config.RedisAddr)
	default:
		return nil, fmt.Errorf("ajo: unknown storage driver %q", e.config.Driver)
	}
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("ajo: configuration is required but not found in config files; " +
				"ensure 'extensions.ajo' or 'ajo' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("ajo: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("driver", e.config.Driver),
		forge.F("bolt_path", e.config.BoltPath),
		forge.F("redis_addr", e.config.RedisAddr),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.ajo" first (namespaced pattern).
	if cm.IsSet("extensions.ajo") {
		if err := cm.Bind("extensions.ajo", &cfg); err == nil {
			e.Logger().Debug("ajo: loaded config from file",
				forge.F("key", "extensions.ajo"),
			)
			return cfg, true
		}
		e.Logger().Warn("ajo: failed to bind extensions.ajo config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "ajo" key.
	if cm.IsSet("ajo") {
		if err := cm.Bind("ajo", &cfg); err == nil {
			e.Logger().Debug("ajo: loaded config from file",
				forge.F("key", "ajo"),
			)
			return cfg, true
		}
		e.Logger().Warn("ajo: failed to bind ajo config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Driver == "" {
		cfg.Driver = defaults.Driver
	}
	if cfg.BoltPath == "" {
		cfg.BoltPath = defaults.BoltPath
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = defaults.RedisAddr
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.Driver == "" && programmaticConfig.Driver != "" {
		yamlConfig.Driver = programmaticConfig.Driver
	}
	if yamlConfig.BoltPath == "" && programmaticConfig.BoltPath != "" {
		yamlConfig.BoltPath = programmaticConfig.BoltPath
	}
	if yamlConfig.RedisAddr == "" && programmaticConfig.RedisAddr != "" {
		yamlConfig.RedisAddr = programmaticConfig.RedisAddr
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
