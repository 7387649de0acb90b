package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideCachesFetchResult(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var got profile
	fetch := func() error {
		calls++
		got = profile{ID: 7, Username: "ada"}
		return nil
	}

	require.NoError(t, Aside(ctx, UserKey(7), &got, UserTTL, fetch))
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, 1, calls)

	// Second call is served from the cache
	got = profile{}
	require.NoError(t, Aside(ctx, UserKey(7), &got, UserTTL, fetch))
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, 1, calls)

	// Key carries a TTL
	assert.Greater(t, mr.TTL(UserKey(7)), time.Duration(0))
}

func TestAsideFetchErrorIsNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var got profile
	fetch := func() error {
		calls++
		if calls == 1 {
			return errors.New("db down")
		}
		got = profile{ID: 1, Username: "grace"}
		return nil
	}

	require.Error(t, Aside(ctx, UserKey(1), &got, UserTTL, fetch))

	require.NoError(t, Aside(ctx, UserKey(1), &got, UserTTL, fetch))
	assert.Equal(t, "grace", got.Username)
	assert.Equal(t, 2, calls)
}

func TestAsideCorruptEntryFallsThrough(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(3), "{not json"))

	var got profile
	err := Aside(ctx, UserKey(3), &got, UserTTL, func() error {
		got = profile{ID: 3, Username: "linus"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "linus", got.Username)
}

func TestAsideNilClientSkipsCache(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	for i := 0; i < 2; i++ {
		var got []profile
		err := Aside(ctx, UsersListKey, &got, UsersListTTL, func() error {
			calls++
			got = []profile{{ID: 1}}
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 2, calls)
}

func TestInvalidateUser(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(5), `{"id":5}`))
	require.NoError(t, mr.Set(UsersListKey, `[]`))

	InvalidateUser(ctx, 5)

	assert.False(t, mr.Exists(UserKey(5)))
	assert.False(t, mr.Exists(UsersListKey))
}
