package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	token, err := Sign("owner-1", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.OwnerID)
}

func TestParseRejectsExpiredAndForeign(t *testing.T) {
	expired, err := Sign("owner-1", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(expired)
	assert.Error(t, err)

	_, err = Parse("not-a-token")
	assert.Error(t, err)

	_, err = Sign("", time.Hour)
	assert.Error(t, err)
}
