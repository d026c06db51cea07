// Package cache stores photo-insight payloads so repeat analyses of the
// same listing do not re-hit the rate-limited insight service.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory, disk, and
// layered implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ListingKey derives the cache key for one listing's insight payload.
// Hashing keeps MLS numbers out of filenames on the disk layer.
func ListingKey(mlsNumber string) string {
	hash := sha256.Sum256([]byte(mlsNumber))
	return "compscan:insight:v1:" + hex.EncodeToString(hash[:])
}
