package extension

import (
	ajo "github.com/xraph/ajo"
	"github.com/xraph/ajo/plugin"
	"github.com/xraph/ajo/store"
)

// Option configures the Ajo Forge extension.
type Option func(*Extension)

// WithStore sets the store for the engine, bypassing driver config.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEngineOption passes an ajo.Option through to the underlying engine.
func WithEngineOption(opt ajo.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers an engine plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, ajo.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithDriver selects the storage backend by name.
func WithDriver(driver string) Option {
	return func(e *Extension) { e.config.Driver = driver }
}

// WithBoltPath sets the database file path for the bolt driver.
func WithBoltPath(path string) Option {
	return func(e *Extension) {
		e.config.Driver = DriverBolt
		e.config.BoltPath = path
	}
}

// WithRedisAddr sets the server address for the redis driver.
func WithRedisAddr(addr string) Option {
	return func(e *Extension) {
		e.config.Driver = DriverRedis
		e.config.RedisAddr = addr
	}
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
