// Package config loads rad-report settings from a YAML file, RADREPORT_*
// environment variables and built-in defaults, in that order of precedence
// (environment first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// RADREPORT_STORE_DRIVER for store.driver.
const EnvPrefix = "RADREPORT"

// Store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Defaults.
const (
	DefaultAddr       = ":8080"
	DefaultFilePath   = "data/operator_schedule.json"
	DefaultSQLitePath = "data/schedule.db"
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Log    LogConfig    `mapstructure:"log"`
	PDF    PDFConfig    `mapstructure:"pdf"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects the schedule backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// AdminConfig guards the admin console.
type AdminConfig struct {
	Password   string        `mapstructure:"password"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PDFConfig configures the schedule PDF export.
type PDFConfig struct {
	FontPath string `mapstructure:"font_path"`
}

// SMTPConfig configures the report mailer.
type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	From string `mapstructure:"from"`
}

// New returns a viper instance with defaults and environment bindings set.
// When cfgFile is empty, radreport.yaml is searched for in the working
// directory and $HOME/.radreport; a missing file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.radreport")
		v.SetConfigType("yaml")
		v.SetConfigName("radreport")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.path", "")
	v.SetDefault("admin.password", "admin")
	v.SetDefault("admin.session_ttl", 12*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("pdf.font_path", "")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", "")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.from", "")
}

// Load decodes v into a validated Config. PORT, when set, replaces the
// default listen address.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" && cfg.Server.Addr == DefaultAddr {
		cfg.Server.Addr = ":" + port
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case DriverFile:
		if cfg.Store.Path == "" {
			cfg.Store.Path = DefaultFilePath
		}
	case DriverSQLite:
		if cfg.Store.Path == "" {
			cfg.Store.Path = DefaultSQLitePath
		}
	default:
		return Config{}, fmt.Errorf("store.driver: unknown driver %q (want %s or %s)", cfg.Store.Driver, DriverFile, DriverSQLite)
	}

	switch cfg.Log.Format {
	case "auto", "json", "console":
	default:
		return Config{}, fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	if cfg.Admin.Password == "" {
		return Config{}, errors.New("admin.password must not be empty")
	}
	if cfg.Admin.SessionTTL <= 0 {
		return Config{}, errors.New("admin.session_ttl must be positive")
	}
	return cfg, nil
}
