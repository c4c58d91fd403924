package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_LoadsFromFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"address":                         "www.example:9000",
		"database_dsn":                    "vault.db",
		"environment":                     "production",
		"secret_key":                      "my_secret_key",
		"encryption_key":                  "a2V5LWJ5dGVz",
		"key_file":                        "/var/lib/vault/vault.key",
		"access_token_validity_duration":  "30m",
		"refresh_token_validity_duration": "12h",
	})

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, "www.example:9000", cfg.Address)
	assert.Equal(t, "vault.db", cfg.DatabaseDSN)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "my_secret_key", cfg.SecretKey)
	assert.Equal(t, "a2V5LWJ5dGVz", cfg.EncryptionKey)
	assert.Equal(t, "/var/lib/vault/vault.key", cfg.KeyFile)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 12*time.Hour, cfg.RefreshTokenValidityDuration)
}

func Test_parseJson_UnsetFieldsKeepCurrentValues(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"address": ":9999",
	})

	os.Args = []string{"testbin", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9999", cfg.Address)
	assert.Equal(t, "file:instance/vault.db?_foreign_keys=on", cfg.DatabaseDSN)
	assert.Equal(t, 1*time.Hour, cfg.AccessTokenValidityDuration)
}

func Test_parseJson_NoConfigFlag_NoChanges(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{Address: "defaults:1234"}
	parseJson(cfg)

	assert.Equal(t, "defaults:1234", cfg.Address)
}
