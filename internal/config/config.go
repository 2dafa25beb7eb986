package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	SupplierAddress string
	SupplierAPIKey  string
	EasyPostAddress string
	EasyPostAPIKey  string
	AuthSecret      string
	TokenStrategy   string
	SyncInterval    time.Duration
	SyncMaxAge      time.Duration
	WorkerPoolSize  int
	SyncBatchSize   int
	ShutdownTimeout time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

const (
	defaultRunAddress      = ":8080"
	defaultAuthSecret      = "change-me-in-production"
	defaultTokenStrategy   = "jwt"
	defaultSyncInterval    = 30 * time.Second
	defaultSyncMaxAge      = time.Hour
	defaultWorkerPoolSize  = 4
	defaultSyncBatchSize   = 32
	defaultShutdownTimeout = 10 * time.Second
	defaultMinioBucket     = "printshop-artwork"
	defaultEasyPostAddress = "https://api.easypost.com"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		SupplierAddress: getString(lookup, "SUPPLIER_ADDRESS", ""),
		SupplierAPIKey:  getString(lookup, "SUPPLIER_API_KEY", ""),
		EasyPostAddress: getString(lookup, "EASYPOST_ADDRESS", defaultEasyPostAddress),
		EasyPostAPIKey:  getString(lookup, "EASYPOST_API_KEY", ""),
		AuthSecret:      getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		TokenStrategy:   getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		SyncInterval:    getDuration(lookup, "SYNC_INTERVAL", defaultSyncInterval),
		SyncMaxAge:      getDuration(lookup, "SYNC_MAX_AGE", defaultSyncMaxAge),
		WorkerPoolSize:  getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		SyncBatchSize:   getInt(lookup, "SYNC_BATCH_SIZE", defaultSyncBatchSize),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MinioEndpoint:   getString(lookup, "MINIO_ENDPOINT", ""),
		MinioAccessKey:  getString(lookup, "MINIO_ACCESS_KEY", ""),
		MinioSecretKey:  getString(lookup, "MINIO_SECRET_KEY", ""),
		MinioBucket:     getString(lookup, "MINIO_BUCKET", defaultMinioBucket),
		MinioUseSSL:     getBool(lookup, "MINIO_USE_SSL", false),
	}

	fs := flag.NewFlagSet("printshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		syncIntervalStr    = cfg.SyncInterval.String()
		syncMaxAgeStr      = cfg.SyncMaxAge.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SupplierAddress, "s", cfg.SupplierAddress, "Supplier API base URL")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Token strategy: jwt or hmac")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sync workers")
	fs.StringVar(&syncIntervalStr, "sync-interval", syncIntervalStr, "Interval between supplier sync polls")
	fs.StringVar(&syncMaxAgeStr, "sync-max-age", syncMaxAgeStr, "Product age before it is considered stale")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.SyncBatchSize, "sync-batch", cfg.SyncBatchSize, "Maximum products per sync batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SyncInterval, err = time.ParseDuration(syncIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sync interval: %w", err)
	}

	if cfg.SyncMaxAge, err = time.ParseDuration(syncMaxAgeStr); err != nil {
		return nil, fmt.Errorf("invalid sync max age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SyncBatchSize <= 0 {
		cfg.SyncBatchSize = defaultSyncBatchSize
	}

	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = defaultSyncInterval
	}

	if cfg.SyncMaxAge <= 0 {
		cfg.SyncMaxAge = defaultSyncMaxAge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenStrategy != "jwt" && cfg.TokenStrategy != "hmac" {
		return nil, fmt.Errorf("token strategy must be jwt or hmac, got %q", cfg.TokenStrategy)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.SupplierAddress == "" {
		return nil, fmt.Errorf("supplier API address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
