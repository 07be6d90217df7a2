package cache

import (
	"context"
	"fmt"
	"time"
)

const revokedTokenKeyPrefix = "revoked_jti:%s"

func revokedTokenKey(jti string) string {
	return fmt.Sprintf(revokedTokenKeyPrefix, jti)
}

// RevokeToken marks a session token's JTI as revoked until the token's own
// expiry, after which the entry is pointless and allowed to lapse.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || ttl <= 0 {
		return nil
	}
	return client.Set(ctx, revokedTokenKey(jti), "1", ttl).Err()
}

// IsTokenRevoked reports whether the JTI has been revoked. Fails open:
// without Redis every structurally valid token is accepted.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, revokedTokenKey(jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
