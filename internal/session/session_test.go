package session

import (
	"errors"
	"testing"

	"askdb/cli/internal/keychain"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(env map[string]string) *Service {
	s := NewService(keychain.NewWithRing(keyring.NewArrayKeyring(nil)))
	s.getenv = func(k string) string { return env[k] }
	return s
}

func TestResolve(t *testing.T) {
	s := newTestService(nil)
	id, src, err := s.Resolve()
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, SourceNone, src)

	require.NoError(t, s.Set("sessionid=abc; Path=/"))
	id, src, err = s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, SourceKeychain, src)

	s.getenv = func(string) string { return "from-env" }
	id, src, err = s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "from-env", id)
	assert.Equal(t, SourceEnv, src)
}

func TestClear(t *testing.T) {
	s := newTestService(nil)
	require.NoError(t, s.Set("abc"))
	require.NoError(t, s.Clear())
	id, _, err := s.Resolve()
	require.NoError(t, err)
	assert.Empty(t, id)
}

type brokenStore struct{}

func (brokenStore) SaveSessionID(string) error     { return errors.New("locked") }
func (brokenStore) LoadSessionID() (string, error) { return "", errors.New("locked") }
func (brokenStore) ClearSessionID() error          { return errors.New("locked") }

func TestResolve_StoreFailure(t *testing.T) {
	s := NewService(brokenStore{})
	s.getenv = func(string) string { return "" }
	_, _, err := s.Resolve()
	assert.Error(t, err)

	nilStore := NewService(nil)
	nilStore.getenv = func(string) string { return "" }
	id, _, err := nilStore.Resolve()
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Error(t, nilStore.Set("x"))
}
