package pkg

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToString(t *testing.T) {
	assert.Equal(t, "form check", BytesToString([]byte("form check")))
	assert.Equal(t, "", BytesToString(nil))
}

func TestGenerateRandomBytes(t *testing.T) {
	b1, err := GenerateRandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, b1, 32)

	b2, err := GenerateRandomBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, b1, b2)
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(35)
	require.NoError(t, err)
	assert.NotEmpty(t, s)

	decoded, err := base64.URLEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.Len(t, decoded, 35)
}
