package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockoutStore_FailedAttempts(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewLockoutStore(client, 15*time.Minute)
	ctx := context.Background()

	t.Run("no counter yet", func(t *testing.T) {
		mock.ExpectGet("warranty:login:failed:john@x.com").RedisNil()

		n, err := store.FailedAttempts(ctx, "John@X.com")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("existing counter", func(t *testing.T) {
		mock.ExpectGet("warranty:login:failed:john@x.com").SetVal("3")

		n, err := store.FailedAttempts(ctx, "john@x.com")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet("warranty:login:failed:john@x.com").SetErr(errors.New("connection refused"))

		_, err := store.FailedAttempts(ctx, "john@x.com")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockoutStore_RecordFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	window := 15 * time.Minute
	store := NewLockoutStore(client, window)
	ctx := context.Background()

	t.Run("first failure starts the window", func(t *testing.T) {
		mock.ExpectIncr("warranty:login:failed:john@x.com").SetVal(1)
		mock.ExpectExpire("warranty:login:failed:john@x.com", window).SetVal(true)

		n, err := store.RecordFailure(ctx, "john@x.com")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("later failures only increment", func(t *testing.T) {
		mock.ExpectIncr("warranty:login:failed:john@x.com").SetVal(4)

		n, err := store.RecordFailure(ctx, "john@x.com")
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockoutStore_Clear(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewLockoutStore(client, time.Minute)

	mock.ExpectDel("warranty:login:failed:john@x.com").SetVal(1)

	require.NoError(t, store.Clear(context.Background(), "john@x.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
