package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"sessionbooker/config"
)

// AuthCacheClient is the dedicated client for auth token caching.
var AuthCacheClient *redis.Client

const authTokenPrefix = "authToken:"

// InitAuthCache initializes the Redis client for auth token caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for auth token caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// CacheAuthToken stores the hash of a user's current token so it can be
// checked and revoked.
func CacheAuthToken(ctx context.Context, userID, tokenHash string, ttl time.Duration) error {
	return GetAuthCacheClient().Set(ctx, authTokenPrefix+userID, tokenHash, ttl).Err()
}

// LookupAuthToken returns the cached token hash for the user, or redis.Nil.
func LookupAuthToken(ctx context.Context, userID string) (string, error) {
	return GetAuthCacheClient().Get(ctx, authTokenPrefix+userID).Result()
}

// DropAuthToken removes the user's cached token hash, revoking the token.
func DropAuthToken(ctx context.Context, userID string) error {
	return GetAuthCacheClient().Del(ctx, authTokenPrefix+userID).Err()
}
