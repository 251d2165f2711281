package services_test

import (
	"testing"
	"time"

	"artisan/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", time.Hour)

	token, expiresAt, err := tokens.Issue("sess-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	sessionID, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)
}

func TestTokenService_Rejects(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", time.Hour)

	foreign, _, err := services.NewTokenService("other_secret", time.Hour).Issue("sess-1")
	require.NoError(t, err)
	_, err = tokens.Validate(foreign)
	assert.Error(t, err)

	expired, _, err := services.NewTokenService("test_jwt_secret", -time.Minute).Issue("sess-1")
	require.NoError(t, err)
	_, err = tokens.Validate(expired)
	assert.Error(t, err)

	_, err = tokens.Validate("not.a.token")
	assert.Error(t, err)

	noSession, _, err := tokens.Issue("")
	require.NoError(t, err)
	_, err = tokens.Validate(noSession)
	assert.Error(t, err)
}
