package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv_Overlay(t *testing.T) {
	t.Setenv("VAULT_ADDRESS", ":7070")
	t.Setenv("VAULT_ENV", EnvProduction)
	t.Setenv("VAULT_ENCRYPTION_KEY", "c2VjcmV0LWtleQ==")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":7070", cfg.Address)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "c2VjcmV0LWtleQ==", cfg.EncryptionKey)

	// untouched variables keep defaults
	assert.Equal(t, "super-secret-key", cfg.SecretKey)
	assert.Equal(t, "file:instance/vault.db?_foreign_keys=on", cfg.DatabaseDSN)
}
