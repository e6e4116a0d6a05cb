package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "dev", cfg.LedgerMode)
	require.Equal(t, "memory", cfg.MetadataMode)
	require.Equal(t, 7, cfg.DefaultShareDays)
	require.Equal(t, 5*time.Minute, cfg.ChallengeTTL)
	require.Equal(t, 60*time.Second, cfg.SolanaConfirmTimeout)
	require.Equal(t, 5, cfg.PublishMaxAttempts)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("CERTICHAIN_PUBLIC_URL", "https://certs.example.com/")
	t.Setenv("CERTICHAIN_SESSION_TTL", "90")
	t.Setenv("CERTICHAIN_CHALLENGE_TTL", "30s")
	t.Setenv("PORT", "not-a-number")

	cfg := LoadConfig()

	require.Equal(t, "https://certs.example.com", cfg.PublicURL)
	require.Equal(t, 90*time.Minute, cfg.SessionTTL)
	require.Equal(t, 30*time.Second, cfg.ChallengeTTL)
	require.Equal(t, 8080, cfg.Port)
}

func TestConfig_ValidateS3WithMasterKey(t *testing.T) {
	cfg := LoadConfig()
	cfg.MetadataMode = "s3"
	cfg.S3Bucket = "certs"
	cfg.MasterKey = "correct horse battery staple"
	require.NoError(t, cfg.Validate())

	cfg.MasterKey = ""
	cfg.MasterKeyPath = "/run/secrets/master.key"
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"postgres without url", func(c *Config) { c.DatabaseDriver = "postgres" }},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }},
		{"solana without program", func(c *Config) { c.LedgerMode = "solana"; c.SolanaRPCURL = "http://localhost:8899" }},
		{"s3 without bucket", func(c *Config) { c.MetadataMode = "s3" }},
		{"s3 without master key", func(c *Config) { c.MetadataMode = "s3"; c.S3Bucket = "certs" }},
		{"unknown metadata mode", func(c *Config) { c.MetadataMode = "ipfs" }},
		{"zero share days", func(c *Config) { c.DefaultShareDays = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
