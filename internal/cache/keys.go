package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	UsersListKey           = "users:list"
	PostsListKey           = "posts:list"
	NotificationsKeyPrefix = "notifications:%d"
)

const (
	UserTTL          = 5 * time.Minute
	UsersListTTL     = 1 * time.Minute
	PostsListTTL     = 1 * time.Minute
	NotificationsTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func NotificationsKey(userID uint) string {
	return fmt.Sprintf(NotificationsKeyPrefix, userID)
}

// Aside is a cache-aside helper: it fills dest from the cached value at key
// when present, otherwise it runs fetch (which must fill dest), then stores
// dest with the given TTL. Cache failures degrade to the fetch path; a nil
// client skips caching entirely.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	if raw, err := client.Get(ctx, key).Result(); err == nil {
		if err := json.Unmarshal([]byte(raw), dest); err == nil {
			return nil
		}
		// Corrupt entry, drop it and fall through to the source
		client.Del(ctx, key)
	}

	if err := fetch(); err != nil {
		return err
	}

	if raw, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, raw, ttl)
	}
	return nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UsersListKey)
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey)
}

func InvalidateNotifications(ctx context.Context, userID uint) {
	Invalidate(ctx, NotificationsKey(userID))
}
