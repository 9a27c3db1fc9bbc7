package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID(t *testing.T) {
	m := NewWithRing(keyring.NewArrayKeyring(nil))

	_, err := m.LoadSessionID()
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, m.SaveSessionID("  "))
	require.NoError(t, m.SaveSessionID("abc123"))

	got, err := m.LoadSessionID()
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	require.NoError(t, m.ClearSessionID())
	require.NoError(t, m.ClearSessionID())
	_, err = m.LoadSessionID()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDBPasswordKeyedByEmail(t *testing.T) {
	m := NewWithRing(keyring.NewArrayKeyring(nil))

	require.NoError(t, m.SaveDBPassword("Ana@Example.com", "s3cret"))
	require.NoError(t, m.SaveDBPassword("bo@example.com", "other"))

	got, err := m.LoadDBPassword(" ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, m.ClearDBPassword("ana@example.com"))
	_, err = m.LoadDBPassword("ana@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = m.LoadDBPassword("bo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "other", got)
}
