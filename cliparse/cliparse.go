package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys, shared by the config file, env vars and flags.
const (
	KeyPort                = "port"
	KeyDatabasePath        = "database_path"
	KeyLogLevel            = "log_level"
	KeyLogFormat           = "log_format"
	KeyShutdownTimeout     = "shutdown_timeout"
	KeyPruneMapTransitions = "prune_map_transitions"
)

const (
	DefaultPort            = 5000
	DefaultDatabasePath    = "bjj.db"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultEnvFile         = ".env"
	defaultConfigName      = "bjjournal"
)

type Config struct {
	Port                int
	DatabasePath        string
	LogLevel            string
	LogFormat           string
	ShutdownTimeout     time.Duration
	PruneMapTransitions bool
	ConfigFile          string
}

// flag name -> config key
var flagKeys = map[string]string{
	"port":                  KeyPort,
	"database":              KeyDatabasePath,
	"log-level":             KeyLogLevel,
	"log-format":            KeyLogFormat,
	"shutdown-timeout":      KeyShutdownTimeout,
	"prune-map-transitions": KeyPruneMapTransitions,
}

// config key -> env var
var envKeys = map[string]string{
	KeyPort:                "PORT",
	KeyDatabasePath:        "DATABASE_PATH",
	KeyLogLevel:            "LOG_LEVEL",
	KeyLogFormat:           "LOG_FORMAT",
	KeyShutdownTimeout:     "SHUTDOWN_TIMEOUT",
	KeyPruneMapTransitions: "PRUNE_MAP_TRANSITIONS",
}

// RegisterFlags adds the server flags to flags
func RegisterFlags(flags *pflag.FlagSet) {
	flags.IntP("port", "p", DefaultPort, "Server port")
	flags.StringP("database", "d", DefaultDatabasePath, "SQLite database file")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.String("log-format", DefaultLogFormat, "Log format (text or json)")
	flags.Duration("shutdown-timeout", DefaultShutdownTimeout, "Graceful shutdown timeout")
	flags.Bool("prune-map-transitions", false, "Delete transitions touching a map's moves when the map is deleted")
	flags.String("config", "", "Config file (default: ./bjjournal.yaml if present)")
	flags.String("env-file", DefaultEnvFile, "Dotenv file loaded before reading env vars")
}

// ParseFlags parses args and resolves the config
func ParseFlags(args []string) (Config, error) {
	flags := pflag.NewFlagSet("bjjournal", pflag.ContinueOnError)
	RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	return Load(flags)
}

// Load resolves the config from an already parsed flag set.
// Precedence: flags, then env (including the dotenv file), then the config
// file, then defaults.
func Load(flags *pflag.FlagSet) (Config, error) {
	envFile, _ := flags.GetString("env-file")
	if err := loadDotEnv(envFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyShutdownTimeout, DefaultShutdownTimeout)
	v.SetDefault(KeyPruneMapTransitions, false)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	configFile, _ := flags.GetString("config")
	if err := readConfigFile(v, configFile); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:                v.GetInt(KeyPort),
		DatabasePath:        strings.TrimSpace(v.GetString(KeyDatabasePath)),
		LogLevel:            strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:           strings.ToLower(v.GetString(KeyLogFormat)),
		ShutdownTimeout:     v.GetDuration(KeyShutdownTimeout),
		PruneMapTransitions: v.GetBool(KeyPruneMapTransitions),
		ConfigFile:          v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d (use -p or PORT)", c.Port)
	}
	if c.DatabasePath == "" {
		return errors.New("database path required (use -d or DATABASE_PATH)")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (text or json)", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q (debug, info, warn, error)", c.LogLevel)
	}
	return level, nil
}

// Addr is the listen address for http.Server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is fine.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// readConfigFile reads an explicit config file, or ./bjjournal.yaml when one
// exists. Only an explicit file is required to exist.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(defaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
