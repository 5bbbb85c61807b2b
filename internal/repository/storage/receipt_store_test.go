package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestReceiptKeys(t *testing.T) {
	userID := uuid.MustParse("4b0e3c1e-0b7c-4d8e-9f5a-2f1f7a0d3b11")

	base := ReceiptBaseKey(userID, 42)

	prefix := "users/4b0e3c1e-0b7c-4d8e-9f5a-2f1f7a0d3b11/entries/42/"
	if !strings.HasPrefix(base, prefix) {
		t.Fatalf("key %q does not start with %q", base, prefix)
	}
	if ReceiptBaseKey(userID, 42) == base {
		t.Error("keys should be unique per call")
	}
	if got := ReceiptVariantKey(base, "thumb"); got != base+"_thumb.jpg" {
		t.Errorf("variant key = %q", got)
	}
}
