package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKey returns the cache key of one rendered output. optionsHash
// identifies everything that shapes the scene; format and engine identify
// how it was rendered.
func ArtifactKey(optionsHash, format, engine string) string {
	return hashKey("artifact", optionsHash, format, engine)
}

// HashJSON hashes the JSON encoding of v.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash options: %w", err)
	}
	return Hash(data), nil
}

// hashKey generates a cache key of the form prefix:sha256(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
