package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/finance-dashboard/internal/adapter/notify"
	"github.com/simaogato/finance-dashboard/internal/logging"
)

// DefaultPath is used when FINANCE_CONFIG is not set
const DefaultPath = "finance.yaml"

// Config represents the top-level finance.yaml configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Remote   RemoteConfig   `yaml:"remote"`
	Sync     SyncConfig     `yaml:"sync"`
	Market   MarketConfig   `yaml:"market"`
	BankFeed BankFeedConfig `yaml:"bank_feed"`
	Notify   notify.Config  `yaml:"notify"`
	Log      logging.Config `yaml:"log"`
}

// ServerConfig holds the listen addresses; an empty address disables that transport.
type ServerConfig struct {
	GRPCAddr string `yaml:"grpc_addr"`
	HTTPAddr string `yaml:"http_addr"`
}

// AuthConfig controls bearer token verification.
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	RequireAuth bool   `yaml:"require_auth"` // false: callers without a token use the anonymous profile
}

// StorageConfig locates the device-local data.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// RemoteConfig controls the per-user remote record store.
type RemoteConfig struct {
	Enabled   bool   `yaml:"enabled"`
	DBConnStr string `yaml:"db_conn_str"`
}

// SyncConfig tunes the remote push.
type SyncConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "2s"
}

// MarketConfig controls market data refresh.
type MarketConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Schedule   string `yaml:"schedule"` // cron spec
	CBRBaseURL string `yaml:"cbr_base_url"`
}

// BankFeedConfig points at the bank transaction proxy.
type BankFeedConfig struct {
	URL              string `yaml:"url"` // empty disables the feed
	TransactionsPath string `yaml:"transactions_path"`
}

// Default returns a Config with sensible defaults for a local install.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			GRPCAddr: ":8080",
			HTTPAddr: ":8081",
		},
		Storage: StorageConfig{
			DataDir: "data",
		},
		Sync: SyncConfig{
			Debounce: "2s",
		},
		Market: MarketConfig{
			Enabled:    true,
			Schedule:   "@every 15m",
			CBRBaseURL: "https://www.cbr.ru/scripts",
		},
		BankFeed: BankFeedConfig{
			TransactionsPath: "$.transactions",
		},
		Notify: notify.Config{
			SMTPPort: "587",
		},
		Log: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a finance.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Resolve loads path when it exists (defaults otherwise) and overlays the environment.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	ApplyEnv(cfg, os.LookupEnv)
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from environment variables
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	setString := func(key string, target *string) {
		if v, ok := lookup(key); ok {
			*target = v
		}
	}
	setBool := func(key string, target *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*target = b
			}
		}
	}

	setString("FINANCE_GRPC_ADDR", &cfg.Server.GRPCAddr)
	setString("FINANCE_HTTP_ADDR", &cfg.Server.HTTPAddr)
	setString("JWT_SECRET", &cfg.Auth.JWTSecret)
	setBool("FINANCE_REQUIRE_AUTH", &cfg.Auth.RequireAuth)
	setString("FINANCE_DATA_DIR", &cfg.Storage.DataDir)
	setBool("REMOTE_ENABLED", &cfg.Remote.Enabled)
	setString("FINANCE_SYNC_DEBOUNCE", &cfg.Sync.Debounce)
	setBool("MARKET_ENABLED", &cfg.Market.Enabled)
	setString("MARKET_SCHEDULE", &cfg.Market.Schedule)
	setString("CBR_URL", &cfg.Market.CBRBaseURL)
	setString("BANK_FEED_URL", &cfg.BankFeed.URL)
	setString("BANK_FEED_PATH", &cfg.BankFeed.TransactionsPath)
	setBool("NOTIFY_ENABLED", &cfg.Notify.Enabled)
	setString("SMTP_HOST", &cfg.Notify.SMTPHost)
	setString("SMTP_PORT", &cfg.Notify.SMTPPort)
	setString("SMTP_USERNAME", &cfg.Notify.SMTPUsername)
	setString("SMTP_PASSWORD", &cfg.Notify.SMTPPassword)
	setString("SENDER_EMAIL", &cfg.Notify.SenderEmail)
	setString("NOTIFY_EMAIL", &cfg.Notify.Recipient)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)

	if v, ok := lookup("DB_CONN_STR"); ok && v != "" {
		cfg.Remote.DBConnStr = v
		return
	}

	// If explicit string is missing, build it from individual vars (Docker friendly)
	if _, ok := lookup("DB_HOST"); ok || cfg.Remote.DBConnStr == "" {
		getEnv := func(key, defaultVal string) string {
			if value, exists := lookup(key); exists {
				return value
			}
			return defaultVal
		}
		cfg.Remote.DBConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "finance"),
		)
	}
}

// Validate checks settings that cannot be repaired with a default
func (c *Config) Validate() error {
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if c.Auth.RequireAuth && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.require_auth needs auth.jwt_secret")
	}
	if c.Notify.Enabled && (c.Notify.SMTPHost == "" || c.Notify.Recipient == "") {
		return fmt.Errorf("notify.enabled needs notify.smtp_host and notify.recipient")
	}
	return nil
}

// DebounceDuration parses sync.debounce; empty means the default
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Sync.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Sync.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid sync.debounce %q: %w", c.Sync.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid sync.debounce %q: negative", c.Sync.Debounce)
	}
	return d, nil
}
