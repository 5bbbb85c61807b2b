package storage

import (
	"context"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReceiptStore keeps encoded receipt variants in object storage
type ReceiptStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	// Delete removes every key; missing keys are not an error
	Delete(ctx context.Context, keys ...string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ReceiptBaseKey returns a fresh prefix users/<user>/entries/<entry>/<uuid>.
// Each upload gets its own prefix so a replacement never overwrites a variant
// a client may still be loading.
func ReceiptBaseKey(userID uuid.UUID, entryID int32) string {
	return path.Join("users", userID.String(), "entries", strconv.Itoa(int(entryID)), uuid.NewString())
}

// ReceiptVariantKey returns the object key of one stored variant
func ReceiptVariantKey(baseKey, variant string) string {
	return baseKey + "_" + variant + ".jpg"
}
