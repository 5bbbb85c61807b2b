package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

// createTestImage creates a test image of the specified size and format
func createTestImage(width, height int, format string) ([]byte, string) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	if format == "png" {
		_ = png.Encode(&buf, img)
		return buf.Bytes(), "receipt.png"
	}
	_ = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	return buf.Bytes(), "receipt.jpg"
}

type receiptFixture struct {
	service *ReceiptService
	store   *testutil.MockReceiptStore
	entries *testutil.MockEntryRepository
	userID  uuid.UUID
	entry   *domain.Entry
}

func newReceiptFixture() *receiptFixture {
	store := testutil.NewMockReceiptStore()
	entries := testutil.NewMockEntryRepository()
	userID := uuid.New()
	entry := &domain.Entry{
		ID:     5,
		UserID: userID,
		Title:  "Dinner",
		Amount: decimal.RequireFromString("20"),
		Type:   domain.EntryTypeExpense,
	}
	entries.AddEntry(entry)

	return &receiptFixture{
		service: NewReceiptService(store, entries),
		store:   store,
		entries: entries,
		userID:  userID,
		entry:   entry,
	}
}

func TestReceiptUpload_StoresVariants(t *testing.T) {
	f := newReceiptFixture()
	data, filename := createTestImage(1600, 900, "png")

	urls, err := f.service.Upload(context.Background(), f.userID, f.entry.ID, data, filename)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(f.store.Objects) != 2 {
		t.Fatalf("expected 2 stored variants, got %d", len(f.store.Objects))
	}
	if f.entry.ReceiptKey == nil {
		t.Fatal("expected receipt key on entry")
	}
	if !strings.Contains(urls.ThumbnailURL, "_thumb.jpg") || !strings.Contains(urls.DisplayURL, "_display.jpg") {
		t.Errorf("unexpected urls %+v", urls)
	}

	thumb, _, err := image.Decode(bytes.NewReader(f.store.Objects[*f.entry.ReceiptKey+"_thumb.jpg"]))
	if err != nil {
		t.Fatalf("thumbnail not decodable: %v", err)
	}
	if thumb.Bounds().Dx() != ThumbnailWidth {
		t.Errorf("expected thumbnail width %d, got %d", ThumbnailWidth, thumb.Bounds().Dx())
	}
}

func TestReceiptUpload_ReplacesPrevious(t *testing.T) {
	f := newReceiptFixture()
	data, filename := createTestImage(100, 100, "jpeg")

	_, _ = f.service.Upload(context.Background(), f.userID, f.entry.ID, data, filename)
	first := *f.entry.ReceiptKey
	_, err := f.service.Upload(context.Background(), f.userID, f.entry.ID, data, filename)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if *f.entry.ReceiptKey == first {
		t.Error("expected a new receipt key")
	}
	if _, ok := f.store.Objects[first+"_thumb.jpg"]; ok {
		t.Error("expected old variants to be removed")
	}
	if len(f.store.Objects) != 2 {
		t.Errorf("expected 2 stored objects, got %d", len(f.store.Objects))
	}
}

func TestReceiptUpload_Validation(t *testing.T) {
	f := newReceiptFixture()
	small, _ := createTestImage(10, 10, "jpeg")
	ok, _ := createTestImage(100, 100, "jpeg")

	tests := []struct {
		name     string
		data     []byte
		filename string
		want     error
	}{
		{"too small", small, "r.jpg", ErrReceiptTooSmall},
		{"bad extension", ok, "r.gif", ErrInvalidReceiptFormat},
		{"not an image", []byte("hello"), "r.jpg", ErrInvalidReceiptData},
		{"too large", make([]byte, MaxReceiptSize+1), "r.jpg", ErrReceiptTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Upload(context.Background(), f.userID, f.entry.ID, tt.data, tt.filename)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestReceipt_ForeignEntry(t *testing.T) {
	f := newReceiptFixture()
	data, filename := createTestImage(100, 100, "jpeg")

	_, err := f.service.Upload(context.Background(), uuid.New(), f.entry.ID, data, filename)
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestReceipt_GetAndDelete(t *testing.T) {
	f := newReceiptFixture()
	ctx := context.Background()

	if _, err := f.service.Get(ctx, f.userID, f.entry.ID); !errors.Is(err, domain.ErrReceiptNotFound) {
		t.Fatalf("expected ErrReceiptNotFound, got %v", err)
	}

	data, filename := createTestImage(100, 100, "jpeg")
	_, _ = f.service.Upload(ctx, f.userID, f.entry.ID, data, filename)

	if _, err := f.service.Get(ctx, f.userID, f.entry.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := f.service.Delete(ctx, f.userID, f.entry.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.entry.ReceiptKey != nil || len(f.store.Objects) != 0 {
		t.Error("expected receipt to be fully removed")
	}
}

func TestReceipt_NotConfigured(t *testing.T) {
	svc := NewReceiptService(nil, testutil.NewMockEntryRepository())
	if svc.IsEnabled() {
		t.Fatal("expected disabled service")
	}
	if _, err := svc.Get(context.Background(), uuid.New(), 1); !errors.Is(err, ErrReceiptStorageNotConfigured) {
		t.Errorf("expected ErrReceiptStorageNotConfigured, got %v", err)
	}
}

func TestReceiptUpload_StorageFailureLeavesEntryUntouched(t *testing.T) {
	f := newReceiptFixture()
	f.store.PutErr = errors.New("bucket unavailable")
	data, filename := createTestImage(100, 100, "jpeg")

	if _, err := f.service.Upload(context.Background(), f.userID, f.entry.ID, data, filename); err == nil {
		t.Fatal("expected upload error")
	}
	if f.entry.ReceiptKey != nil {
		t.Errorf("expected no receipt key, got %q", *f.entry.ReceiptKey)
	}
	if len(f.store.Objects) != 0 {
		t.Errorf("expected no stored objects, got %d", len(f.store.Objects))
	}
}

// aliasingEntryRepository hands out the stored entry itself, so a write made
// through SetReceiptKey is visible on entries the caller already holds
type aliasingEntryRepository struct {
	*testutil.MockEntryRepository
}

func (r aliasingEntryRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Entry, error) {
	entry, ok := r.Entries[id]
	if !ok || entry.UserID != userID {
		return nil, domain.ErrEntryNotFound
	}
	return entry, nil
}

func TestReceipt_SharedEntryStateKeepsNewVariants(t *testing.T) {
	f := newReceiptFixture()
	svc := NewReceiptService(f.store, aliasingEntryRepository{f.entries})
	ctx := context.Background()
	data, filename := createTestImage(100, 100, "jpeg")

	if _, err := svc.Upload(ctx, f.userID, f.entry.ID, data, filename); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	first := *f.entry.ReceiptKey
	if _, err := svc.Upload(ctx, f.userID, f.entry.ID, data, filename); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	current := *f.entry.ReceiptKey
	if _, ok := f.store.Objects[current+"_display.jpg"]; !ok {
		t.Error("expected the new variants to be kept")
	}
	if _, ok := f.store.Objects[first+"_display.jpg"]; ok {
		t.Error("expected the old variants to be removed")
	}

	if err := svc.Delete(ctx, f.userID, f.entry.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(f.store.Objects) != 0 {
		t.Errorf("expected no stored objects, got %d", len(f.store.Objects))
	}
}
