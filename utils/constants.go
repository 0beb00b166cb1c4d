package utils

// Cache key prefixes.
const (
	// AuthCachePrefix prefixes revoked-token hashes in the auth cache.
	AuthCachePrefix = "auth:revoked:"
)
