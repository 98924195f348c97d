package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestRedisCacheGetSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "test")
	ctx := context.Background()

	mock.ExpectSet("test:k", []byte(`{"name":"a","score":3}`), time.Minute).SetVal("OK")
	require.NoError(t, c.Set(ctx, "k", payload{Name: "a", Score: 3}, time.Minute))

	mock.ExpectGet("test:k").SetVal(`{"name":"a","score":3}`)
	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "a", Score: 3}, got)

	mock.ExpectGet("test:missing").RedisNil()
	assert.ErrorIs(t, c.Get(ctx, "missing", &got), ErrCacheMiss)

	mock.ExpectUnlink("test:k").SetVal(1)
	require.NoError(t, c.Delete(ctx, "k"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheRawString(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "")
	ctx := context.Background()

	mock.ExpectGet("plain").SetVal("hello")
	var s string
	require.NoError(t, c.Get(ctx, "plain", &s))
	assert.Equal(t, "hello", s)
	assert.NoError(t, mock.ExpectationsWereMet())
}
