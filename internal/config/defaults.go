package config

const (
	defaultConfigPath   = "~/.config/larder/config.toml"
	defaultDataDir      = "~/.local/share/larder"
	defaultDatabaseName = "larder.db"
	defaultLogFormat    = "console"
	defaultLogLevel     = "warn"
	defaultOutputFormat = "plain"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
	}
}
