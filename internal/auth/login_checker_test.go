package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/warren-xu/exercise-form-analyzer/internal/auth"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLogged(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	checker := auth.NewLoginChecker(time.Hour, redisClient)

	redisMock.ExpectGet("form-analyzer-session||" + testToken).
		SetVal(unixString(time.Now().Add(-time.Minute)))

	logged, err := checker.IsLogged(context.Background(), testToken)
	require.NoError(t, err)
	assert.True(t, logged)
}

func TestIsLogged_Expired(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	checker := auth.NewLoginChecker(time.Hour, redisClient)

	redisMock.ExpectGet("form-analyzer-session||" + testToken).
		SetVal(unixString(time.Now().Add(-2 * time.Hour)))

	logged, err := checker.IsLogged(context.Background(), testToken)
	require.NoError(t, err)
	assert.False(t, logged)
}

func TestIsLogged_UnknownToken(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	checker := auth.NewLoginChecker(time.Hour, redisClient)

	redisMock.ExpectGet("form-analyzer-session||nope").RedisNil()

	logged, err := checker.IsLogged(context.Background(), "nope")
	assert.False(t, logged)
	assert.Error(t, err)
}

func TestLoginTestChecker(t *testing.T) {
	checker := &auth.LoginTestChecker{LoggedSessions: map[string]bool{
		"known-token": true,
	}}

	logged, err := checker.IsLogged(context.Background(), "known-token")
	require.NoError(t, err)
	assert.True(t, logged)

	logged, err = checker.IsLogged(context.Background(), "other-token")
	require.NoError(t, err)
	assert.False(t, logged)
}
