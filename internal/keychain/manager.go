// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for askdb.
// It manages all interactions with the OS keychain/credential store: the
// backend session cookie and database passwords never touch the config file.
//
// macOS Keychain, Windows Credential Manager and the Linux Secret Service
// (with KWallet and pass as fallbacks) are supported through
// github.com/99designs/keyring.
package keychain

import (
	"errors"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "askdb"

// Keys used for storing secrets in the OS keychain.
const (
	KeySessionID = "backend_session_id"
	// keyDBPasswordPrefix is followed by the owning user's e-mail.
	keyDBPasswordPrefix = "db_password:"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("secret not found in keychain")

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewWithRing wraps an already opened keyring.
func NewWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
// There is deliberately no encrypted-file fallback.
func openRing() (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowed = []keyring.BackendType{keyring.WinCredBackend}
	case "linux", "freebsd", "openbsd":
		allowed = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	default:
		return nil, errors.New("secure storage not supported on " + runtime.GOOS)
	}

	cfg := keyring.Config{
		ServiceName:             ServiceName,
		AllowedBackends:         allowed,
		PassPrefix:              ServiceName,
		LibSecretCollectionName: ServiceName,
		KWalletAppID:            ServiceName,
		KWalletFolder:           ServiceName,
		WinCredPrefix:           ServiceName,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. Install 'pass' as a fallback: brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

func (m *Manager) set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: ServiceName + " " + key})
}

func (m *Manager) get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, err := m.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", ErrNotFound
	}
	return string(it.Data), nil
}

func (m *Manager) remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// SaveSessionID stores the backend session cookie value.
func (m *Manager) SaveSessionID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("empty session id")
	}
	return m.set(KeySessionID, id)
}

// LoadSessionID returns the stored session cookie value or ErrNotFound.
func (m *Manager) LoadSessionID() (string, error) {
	return m.get(KeySessionID)
}

// ClearSessionID removes the stored session. Removing a missing key is not
// an error.
func (m *Manager) ClearSessionID() error {
	return m.remove(KeySessionID)
}

// SaveDBPassword stores the database password submitted for email.
func (m *Manager) SaveDBPassword(email, password string) error {
	return m.set(dbPasswordKey(email), password)
}

// LoadDBPassword returns the database password last saved for email.
func (m *Manager) LoadDBPassword(email string) (string, error) {
	return m.get(dbPasswordKey(email))
}

// ClearDBPassword removes the stored database password for email.
func (m *Manager) ClearDBPassword(email string) error {
	return m.remove(dbPasswordKey(email))
}

func dbPasswordKey(email string) string {
	return keyDBPasswordPrefix + strings.ToLower(strings.TrimSpace(email))
}
