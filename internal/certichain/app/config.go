package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer    string // Optional: issuer claim for session tokens (default: certichain)
	PublicURL string // Optional: base URL used in share links (default: http://localhost:8080)
	NumKeys   int    // Optional: number of ephemeral session signing keys (default: 3)

	SessionKeyPath string // Optional: PEM session key, created if missing; ephemeral keys when unset

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./certichain.db)
	DatabaseURL    string // Required for postgres: DSN

	LedgerMode           string        // Optional: dev or solana (default: dev)
	SolanaRPCURL         string        // Required for solana: RPC endpoint
	SolanaNetwork        string        // Optional: devnet, testnet, mainnet-beta, localnet (default: devnet)
	SolanaProgramID      string        // Required for solana: base58 program id
	SolanaPayerKeypair   string        // Required for solana: keygen JSON path or base58 secret
	SolanaConfirmTimeout time.Duration // Optional: confirmation deadline (default: 60s)

	MetadataMode       string // Optional: memory or s3 (default: memory)
	S3Bucket           string // Required for s3
	S3Region           string // Optional (default: us-east-1)
	S3Endpoint         string // Optional: S3 compatible endpoint (MinIO, localstack)
	ContentGatewayURL  string // Optional: gateway prefix for content addresses
	PublishMaxAttempts int    // Optional: publish attempts before giving up (default: 5)

	MasterKeyPath string // Optional: path to the attribute sealing key
	MasterKey     string // Optional: raw sealing key, used when no path is set

	AMQPURL      string // Optional: broker URL, log only dispatch when unset
	AMQPExchange string // Optional: topic exchange (default: certichain)

	RedisAddr     string // Optional: challenge store, in-memory when unset
	RedisPassword string // Optional

	ChallengeTTL     time.Duration // Optional: sign-in challenge lifetime (default: 5m)
	SessionTTL       time.Duration // Optional: session token lifetime (default: 1h)
	DefaultShareDays int           // Optional: share expiry when omitted (default: 7)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 10m)
}

func LoadConfig() Config {
	return Config{
		Issuer:    getEnvOrDefault("CERTICHAIN_ISSUER", "certichain"),
		PublicURL: strings.TrimRight(getEnvOrDefault("CERTICHAIN_PUBLIC_URL", "http://localhost:8080"), "/"),
		NumKeys:   getEnvIntOrDefault("CERTICHAIN_NUM_KEYS", 3),

		SessionKeyPath: os.Getenv("CERTICHAIN_SESSION_KEY_PATH"),

		DatabaseDriver: getEnvOrDefault("CERTICHAIN_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("CERTICHAIN_DATABASE_FILE", "certichain.db"),
		DatabaseURL:    os.Getenv("CERTICHAIN_DATABASE_URL"),

		LedgerMode:           getEnvOrDefault("CERTICHAIN_LEDGER_MODE", "dev"),
		SolanaRPCURL:         os.Getenv("CERTICHAIN_SOLANA_RPC_URL"),
		SolanaNetwork:        getEnvOrDefault("CERTICHAIN_SOLANA_NETWORK", "devnet"),
		SolanaProgramID:      os.Getenv("CERTICHAIN_SOLANA_PROGRAM_ID"),
		SolanaPayerKeypair:   os.Getenv("CERTICHAIN_SOLANA_PAYER_KEYPAIR"),
		SolanaConfirmTimeout: getEnvDurationOrDefault("CERTICHAIN_SOLANA_CONFIRM_TIMEOUT", 60*time.Second),

		MetadataMode:       getEnvOrDefault("CERTICHAIN_METADATA_MODE", "memory"),
		S3Bucket:           os.Getenv("CERTICHAIN_S3_BUCKET"),
		S3Region:           getEnvOrDefault("CERTICHAIN_S3_REGION", "us-east-1"),
		S3Endpoint:         os.Getenv("CERTICHAIN_S3_ENDPOINT"),
		ContentGatewayURL:  os.Getenv("CERTICHAIN_CONTENT_GATEWAY_URL"),
		PublishMaxAttempts: getEnvIntOrDefault("CERTICHAIN_PUBLISH_MAX_ATTEMPTS", 5),

		MasterKeyPath: os.Getenv("CERTICHAIN_MASTER_KEY_PATH"),
		MasterKey:     os.Getenv("CERTICHAIN_MASTER_KEY"),

		AMQPURL:      os.Getenv("CERTICHAIN_AMQP_URL"),
		AMQPExchange: getEnvOrDefault("CERTICHAIN_AMQP_EXCHANGE", "certichain"),

		RedisAddr:     os.Getenv("CERTICHAIN_REDIS_ADDR"),
		RedisPassword: os.Getenv("CERTICHAIN_REDIS_PASSWORD"),

		ChallengeTTL:     getEnvDurationOrDefault("CERTICHAIN_CHALLENGE_TTL", 5*time.Minute),
		SessionTTL:       getEnvDurationOrDefault("CERTICHAIN_SESSION_TTL", time.Hour),
		DefaultShareDays: getEnvIntOrDefault("CERTICHAIN_DEFAULT_SHARE_DAYS", 7),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
	}
}

// Validate checks the settings each selected backend needs.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("CERTICHAIN_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.DatabaseDriver)
	}

	switch c.LedgerMode {
	case "dev":
	case "solana":
		if c.SolanaRPCURL == "" || c.SolanaProgramID == "" || c.SolanaPayerKeypair == "" {
			return fmt.Errorf("solana ledger needs CERTICHAIN_SOLANA_RPC_URL, CERTICHAIN_SOLANA_PROGRAM_ID and CERTICHAIN_SOLANA_PAYER_KEYPAIR")
		}
	default:
		return fmt.Errorf("unknown ledger mode %q", c.LedgerMode)
	}

	switch c.MetadataMode {
	case "memory":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("CERTICHAIN_S3_BUCKET is required for the s3 metadata mode")
		}
		// Sealed attributes in durable documents must outlive the process.
		if c.MasterKeyPath == "" && c.MasterKey == "" {
			return fmt.Errorf("CERTICHAIN_MASTER_KEY or CERTICHAIN_MASTER_KEY_PATH is required for the s3 metadata mode")
		}
	default:
		return fmt.Errorf("unknown metadata mode %q", c.MetadataMode)
	}

	if c.DefaultShareDays < 1 {
		return fmt.Errorf("CERTICHAIN_DEFAULT_SHARE_DAYS must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
