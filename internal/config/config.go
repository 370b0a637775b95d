package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`

	// Access gate
	AccessPIN     string        `yaml:"access_pin"`
	SessionSecret string        `yaml:"session_secret"`
	SessionMaxAge time.Duration `yaml:"session_max_age"`
	SecureCookies bool          `yaml:"secure_cookies"`
	StaticDir     string        `yaml:"static_dir"`

	// Record store
	StoreBackend      string `yaml:"store_backend"`
	SheetID           string `yaml:"sheet_id"`
	GoogleClientEmail string `yaml:"google_client_email"`
	GooglePrivateKey  string `yaml:"google_private_key"`
	DBConnStr         string `yaml:"db_conn_str"`
	SQLitePath        string `yaml:"sqlite_path"`

	// Reads
	CacheTTL         time.Duration `yaml:"cache_ttl"`
	RecomputeDerived bool          `yaml:"recompute_derived"`
	Currency         string        `yaml:"currency"`
	HealthInterval   time.Duration `yaml:"health_interval"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:         ":8080",
		GRPCAddr:         "",
		SessionMaxAge:    30 * 24 * time.Hour,
		SecureCookies:    false,
		StaticDir:        "web/dist",
		StoreBackend:     BackendSheets,
		SQLitePath:       "./assetboard.db",
		CacheTTL:         time.Hour,
		RecomputeDerived: false,
		Currency:         "KRW",
		HealthInterval:   30 * time.Second,
	}
}

// Load reads configuration from the specified file path, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.DBConnStr == "" {
		cfg.DBConnStr = postgresConnStr()
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings needed by the selected backend
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSheets:
		if c.SheetID == "" {
			return fmt.Errorf("sheet_id is required for the %s backend", c.StoreBackend)
		}
	case BackendPostgres:
		if c.DBConnStr == "" {
			return fmt.Errorf("db_conn_str is required for the %s backend", c.StoreBackend)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the %s backend", c.StoreBackend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}

	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Hour
	}
	if c.SessionMaxAge <= 0 {
		c.SessionMaxAge = 30 * 24 * time.Hour
	}
	if c.HealthInterval <= 0 {
		c.HealthInterval = 30 * time.Second
	}
	if c.Currency == "" {
		c.Currency = "KRW"
	}
	return nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"HTTP_ADDR":          &c.HTTPAddr,
		"GRPC_ADDR":          &c.GRPCAddr,
		"ACCESS_PIN":         &c.AccessPIN,
		"SESSION_SECRET":     &c.SessionSecret,
		"STATIC_DIR":         &c.StaticDir,
		"STORE_BACKEND":      &c.StoreBackend,
		"GOOGLE_SHEET_ID":    &c.SheetID,
		"GOOGLE_PRIVATE_KEY": &c.GooglePrivateKey,
		"DB_CONN_STR":        &c.DBConnStr,
		"SQLITE_PATH":        &c.SQLitePath,
		"CURRENCY":           &c.Currency,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	// Either name is accepted for the service account
	if v := os.Getenv("GOOGLE_CLIENT_EMAIL"); v != "" {
		c.GoogleClientEmail = v
	} else if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"); v != "" {
		c.GoogleClientEmail = v
	}

	durations := map[string]*time.Duration{
		"SESSION_MAX_AGE": &c.SessionMaxAge,
		"CACHE_TTL":       &c.CacheTTL,
		"HEALTH_INTERVAL": &c.HealthInterval,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	bools := map[string]*bool{
		"SECURE_COOKIES":    &c.SecureCookies,
		"RECOMPUTE_DERIVED": &c.RecomputeDerived,
	}
	for key, dst := range bools {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = b
		}
	}

	return nil
}

// postgresConnStr builds a connection string from individual vars (Docker friendly).
// It returns "" when no DB_* variable is set.
func postgresConnStr() string {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	if host == "" && port == "" && user == "" && password == "" && dbname == "" {
		return ""
	}

	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	if user == "" {
		user = "postgres"
	}
	if password == "" {
		password = "postgres"
	}
	if dbname == "" {
		dbname = "assetboard"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}
