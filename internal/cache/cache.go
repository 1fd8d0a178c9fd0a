// Package cache stores computed embedding vectors so repeated utterance text
// ("yes", "thanks") and unchanged reference documents are embedded once.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for embedding caches
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// EmbeddingKey generates a cache key for an embedding of text under a model.
// The model name is part of the key: vectors from different models are never
// interchangeable.
func EmbeddingKey(embeddingModel, text string) string {
	hash := sha256.Sum256([]byte(embeddingModel + "\x00" + text))
	return "classpulse.v1." + hex.EncodeToString(hash[:])
}
