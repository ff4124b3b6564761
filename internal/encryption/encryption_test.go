package encryption

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	enc, err := NewEncryptor("correct horse", t.TempDir())
	require.NoError(t, err)

	sealed, err := enc.Encrypt("Dear diary, today was long.")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "diary")

	again, err := enc.Encrypt("Dear diary, today was long.")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per call")

	plain, err := enc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "Dear diary, today was long.", plain)
}

func TestEmptyStringsPassThrough(t *testing.T) {
	enc, err := NewEncryptor("pw", t.TempDir())
	require.NoError(t, err)

	s, err := enc.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, s)

	s, err = enc.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestSaltIsReused(t *testing.T) {
	dir := t.TempDir()
	a, err := NewEncryptor("pw", dir)
	require.NoError(t, err)
	sealed, err := a.Encrypt("secret")
	require.NoError(t, err)

	salt, err := os.ReadFile(filepath.Join(dir, "salt"))
	require.NoError(t, err)
	assert.Len(t, salt, SaltSize)

	b, err := NewEncryptor("pw", dir)
	require.NoError(t, err)
	plain, err := b.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "secret", plain)
}

func TestWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	a, err := NewEncryptor("right", dir)
	require.NoError(t, err)
	sealed, err := a.Encrypt("secret")
	require.NoError(t, err)

	b, err := NewEncryptor("wrong", dir)
	require.NoError(t, err)
	_, err = b.Decrypt(sealed)
	assert.Error(t, err)

	_, err = b.Decrypt("AAAA")
	assert.ErrorIs(t, err, ErrCiphertext)
}

func TestEmptyPassphrase(t *testing.T) {
	_, err := NewEncryptor("", t.TempDir())
	assert.ErrorIs(t, err, ErrNoPassphrase)
}
