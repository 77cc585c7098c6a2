package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLoginWindow = 15 * time.Minute

// LoginThrottle counts login attempts per username in a fixed window.
// Key format: login_attempts:<username>
type LoginThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewLoginThrottle wraps client. A non-positive window falls back to 15 minutes.
func NewLoginThrottle(client *redis.Client, window time.Duration) *LoginThrottle {
	if window <= 0 {
		window = defaultLoginWindow
	}
	return &LoginThrottle{client: client, window: window}
}

// Hit increments the attempt counter and starts the window on the first
// attempt. It returns the attempts seen in the current window.
func (t *LoginThrottle) Hit(ctx context.Context, username string) (int64, error) {
	key := t.key(username)

	pipe := t.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("login throttle hit: %w", err)
	}
	return incr.Val(), nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	if err := t.client.Del(ctx, t.key(username)).Err(); err != nil {
		return fmt.Errorf("login throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(username string) string {
	return "login_attempts:" + username
}
