package extension

// Config holds the Ajo extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.ajo" or "ajo" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// Driver selects the storage backend: "memory", "bolt" or "redis"
	// (default: "memory").
	Driver string `json:"driver" mapstructure:"driver" yaml:"driver"`

	// BoltPath is the database file path for the bolt driver
	// (default: "ajo.db").
	BoltPath string `json:"bolt_path" mapstructure:"bolt_path" yaml:"bolt_path"`

	// RedisAddr is the server address for the redis driver
	// (default: "localhost:6379").
	RedisAddr string `json:"redis_addr" mapstructure:"redis_addr" yaml:"redis_addr"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Driver:    DriverMemory,
		BoltPath:  "ajo.db",
		RedisAddr: "localhost:6379",
	}
}

// Storage driver names accepted by Config.Driver.
const (
	DriverMemory = "memory"
	DriverBolt   = "bolt"
	DriverRedis  = "redis"
)
