package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationList tracks signed-out token IDs until their natural expiry.
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList builds the list on top of a Redis client.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke marks a token ID as signed out. The entry expires together with the
// token so the list does not grow unbounded.
func (r *RevocationList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if r == nil || r.client == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been signed out. Redis being
// unreachable fails open: the token is still subject to its expiry.
func (r *RevocationList) IsRevoked(ctx context.Context, tokenID string) bool {
	if r == nil || r.client == nil {
		return false
	}
	exists, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return exists > 0
}
