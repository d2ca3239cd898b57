package signature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	sig, err := New([]byte("crypty"))
	require.NoError(t, err)
	assert.Equal(t, 6, sig.Len())
	assert.Equal(t, Signature("crypty"), sig)
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New([]byte{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewCopiesInput(t *testing.T) {
	raw := []byte("crypty")
	sig, err := New(raw)
	require.NoError(t, err)

	// Mutating the caller's buffer must not affect the signature.
	raw[0] = 'X'
	assert.Equal(t, Signature("crypty"), sig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sig.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x7F, 0x00, 0xFF, 'c'}, 0644))

	sig, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Signature{0x7F, 0x00, 0xFF, 'c'}, sig)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
