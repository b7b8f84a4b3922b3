package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_NotPlaintext(t *testing.T) {
	hash, err := Hash("securePassword123")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "securePassword123", hash)
}

func TestHash_Salted(t *testing.T) {
	h1, err := Hash("securePassword123")
	require.NoError(t, err)
	h2, err := Hash("securePassword123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "same password should produce different hashes due to salt")
}

func TestCheck(t *testing.T) {
	hash, err := Hash("securePassword123")
	require.NoError(t, err)

	tests := []struct {
		name   string
		hash   string
		secret string
		want   bool
	}{
		{"correct", hash, "securePassword123", true},
		{"wrong", hash, "wrongPassword456", false},
		{"empty", hash, "", false},
		{"malformed hash", "not-a-valid-bcrypt-hash", "securePassword123", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.hash, tt.secret))
		})
	}
}

func TestCheckDummy_AlwaysFalse(t *testing.T) {
	assert.False(t, CheckDummy("task-tracker-dummy-password"))
	assert.False(t, CheckDummy("anything"))
}
