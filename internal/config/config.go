package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds application configuration. Home is the storage root every
// relative directory is resolved against; it is built once at startup and
// passed to whatever needs it.
type Config struct {
	Home    string        `mapstructure:"home" toml:"home"`
	Dirs    DirsConfig    `mapstructure:"dirs" toml:"dirs"`
	Storage StorageConfig `mapstructure:"storage" toml:"storage"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
	UI      UIConfig      `mapstructure:"ui" toml:"ui"`
}

// DirsConfig names the directories, relative to Home unless absolute.
type DirsConfig struct {
	Incoming  string `mapstructure:"incoming" toml:"incoming"`
	Processed string `mapstructure:"processed" toml:"processed"`
	Data      string `mapstructure:"data" toml:"data"`
}

// StorageConfig selects the document backend.
type StorageConfig struct {
	Backend    string `mapstructure:"backend" toml:"backend"`
	SQLitePath string `mapstructure:"sqlite_path" toml:"sqlite_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	Dir   string `mapstructure:"dir" toml:"dir"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Currency   string `mapstructure:"currency" toml:"currency"`
	DateFormat string `mapstructure:"date_format" toml:"date_format"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("home", os.Getenv("HOME"))
	v.SetDefault("dirs.incoming", filepath.Join("Downloads", "importar"))
	v.SetDefault("dirs.processed", filepath.Join("Downloads", "importado"))
	v.SetDefault("dirs.data", ".financeiro")
	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")
	v.SetDefault("ui.currency", "BRL")
	v.SetDefault("ui.date_format", "02/01/2006")
}

// Load reads configuration from file and env. A .env file in the working
// directory is loaded first when present. Env var overrides use prefix
// JASKFIN_.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.SetConfigType("toml")

	if cfgPath := os.Getenv("JASKFIN_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jaskfin"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKFIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// a missing config file is fine; a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend != BackendSQLite {
		c.Storage.Backend = BackendJSON
	}
	return c, nil
}

// Save writes cfg as TOML to $JASKFIN_CONFIG or the default location,
// creating the directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("JASKFIN_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "jaskfin", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Home, p)
}

// IncomingDir is where statement exports are picked up.
func (c Config) IncomingDir() string { return c.resolve(c.Dirs.Incoming) }

// ProcessedDir is where consumed exports are moved.
func (c Config) ProcessedDir() string { return c.resolve(c.Dirs.Processed) }

// DataDir holds the persisted documents.
func (c Config) DataDir() string { return c.resolve(c.Dirs.Data) }

// LogDir defaults to a log directory inside DataDir.
func (c Config) LogDir() string {
	if c.Log.Dir == "" {
		return filepath.Join(c.DataDir(), "log")
	}
	return c.resolve(c.Log.Dir)
}

// SQLitePath defaults to jaskfin.db inside DataDir.
func (c Config) SQLitePath() string {
	if c.Storage.SQLitePath == "" {
		return filepath.Join(c.DataDir(), "jaskfin.db")
	}
	return c.resolve(c.Storage.SQLitePath)
}

// Prepare creates the incoming, processed and data directories.
func (c Config) Prepare() error {
	for _, dir := range []string{c.IncomingDir(), c.ProcessedDir(), c.DataDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return nil
}
