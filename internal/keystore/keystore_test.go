package keystore

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkadlec/passvault/internal/common"
	"github.com/mkadlec/passvault/internal/cryptox"
	"github.com/stretchr/testify/require"
)

func TestResolve_SuppliedKey(t *testing.T) {
	key := bytes.Repeat([]byte{0xab}, cryptox.KeySize)
	encoded := base64.StdEncoding.EncodeToString(key)

	got, err := Resolve(encoded, true, "")
	require.NoError(t, err)
	require.Equal(t, key, got)
}

func TestResolve_SuppliedKeyBadBase64(t *testing.T) {
	_, err := Resolve("%%% not base64 %%%", false, "")
	require.ErrorIs(t, err, common.ErrInvalidKeyFormat)
}

func TestResolve_SuppliedKeyWrongLength(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err := Resolve(encoded, false, "")
	require.ErrorIs(t, err, common.ErrInvalidKeyFormat)
}

func TestResolve_ProductionWithoutKeyFailsClosed(t *testing.T) {
	_, err := Resolve("", true, filepath.Join(t.TempDir(), "vault.key"))
	require.ErrorIs(t, err, common.ErrMissingProductionKey)
}

func TestResolve_DevGeneratesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance", "vault.key")

	key1, err := Resolve("", false, path)
	require.NoError(t, err)
	require.Len(t, key1, cryptox.KeySize)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, key1, onDisk)

	// second resolve must reuse the file, not regenerate
	key2, err := Resolve("", false, path)
	require.NoError(t, err)
	require.Equal(t, key1, key2)
}

func TestResolve_DevRejectsCorruptKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.key")
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o600))

	_, err := Resolve("", false, path)
	require.True(t, errors.Is(err, common.ErrInvalidKeyFormat))
}
