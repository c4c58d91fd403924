// Package keystore resolves the process-wide symmetric encryption key at
// startup. Resolution fails closed in production: a missing or malformed key
// aborts initialization instead of silently generating a fresh one, which
// would leave previously encrypted secrets unrecoverable after a redeploy.
package keystore

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mkadlec/passvault/internal/common"
	"github.com/mkadlec/passvault/internal/cryptox"
	"github.com/mkadlec/passvault/internal/filex"
)

// Resolve returns the symmetric key the secret cipher is keyed with.
// It is called once at startup; the result lives in memory only.
//
// Resolution order:
//  1. encodedKey, if set: base64 with exactly cryptox.KeySize decoded bytes,
//     otherwise common.ErrInvalidKeyFormat.
//  2. production without a supplied key: common.ErrMissingProductionKey.
//  3. Development fallback: read keyFile, or generate a new random key and
//     persist it there before first use.
func Resolve(encodedKey string, production bool, keyFile string) ([]byte, error) {
	if encodedKey != "" {
		key, err := base64.StdEncoding.DecodeString(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidKeyFormat, err)
		}
		if len(key) != cryptox.KeySize {
			return nil, fmt.Errorf("%w: need %d bytes, got %d", common.ErrInvalidKeyFormat, cryptox.KeySize, len(key))
		}
		return key, nil
	}

	if production {
		return nil, common.ErrMissingProductionKey
	}

	return loadOrCreateKeyFile(keyFile)
}

func loadOrCreateKeyFile(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != cryptox.KeySize {
			return nil, fmt.Errorf("%w: key file %s holds %d bytes", common.ErrInvalidKeyFormat, path, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading key file %s: %w", path, err)
	}

	key = make([]byte, cryptox.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("writing key file %s: %w", path, err)
	}

	return key, nil
}
