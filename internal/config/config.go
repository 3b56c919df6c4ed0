package config

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Forex      ForexConfig    `mapstructure:"forex"`
	Sync       SyncConfig     `mapstructure:"sync"`
	Storage    StorageConfig  `mapstructure:"storage"`
	UI         UIConfig       `mapstructure:"ui"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultsConfig.Currency is the base currency. When empty the store's
// Settings.currency is used.
type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
}

type ForexConfig struct {
	Enabled        bool              `mapstructure:"enabled"`
	CacheTTLHours  int               `mapstructure:"cache_ttl_hours"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
	CachePath      string            `mapstructure:"cache_path"`
	Rates          map[string]string `mapstructure:"rates"`
}

type SyncConfig struct {
	Enabled          bool           `mapstructure:"enabled"`
	UpdateType       string         `mapstructure:"update_type"`
	MinPayloadSize   map[string]int `mapstructure:"min_payload_size"`
	CompressionLevel int            `mapstructure:"compression_level"`
}

type StorageConfig struct {
	LockRetries   int `mapstructure:"lock_retries"`
	LockBackoffMS int `mapstructure:"lock_backoff_ms"`
	BusyTimeoutMS int `mapstructure:"busy_timeout_ms"`
}

type UIConfig struct {
	Control      bool   `mapstructure:"control"`
	CloseCommand string `mapstructure:"close_command"`
	OpenCommand  string `mapstructure:"open_command"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Defaults: DefaultsConfig{Currency: ""},
		Forex: ForexConfig{
			Enabled:        true,
			CacheTTLHours:  1,
			TimeoutSeconds: 5,
		},
		Sync: SyncConfig{
			Enabled:          true,
			CompressionLevel: 9,
			MinPayloadSize:   DefaultMinPayloadSize(),
		},
		Storage: StorageConfig{
			LockRetries:   5,
			LockBackoffMS: 100,
			BusyTimeoutMS: 1000,
		},
		Log: LogConfig{Level: "info", Console: true},
	}
}

// DefaultMinPayloadSize pads every full-detail operation to 512 bytes.
// Delete operations are left at their natural length.
func DefaultMinPayloadSize() map[string]int {
	return map[string]int{
		"AddExpense":     512,
		"AddIncome":      512,
		"AddTransfer":    512,
		"UpdateExpense":  512,
		"UpdateIncome":   512,
		"UpdateTransfer": 512,
	}
}
