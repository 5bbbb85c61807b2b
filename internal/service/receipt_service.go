package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/repository/storage"
	"github.com/rs/zerolog/log"
)

const (
	MaxReceiptSize   = 5 * 1024 * 1024 // 5MB
	MinReceiptWidth  = 50
	MinReceiptHeight = 50
	ThumbnailWidth   = 200
	DisplayWidth     = 1200
	JPEGQuality      = 85

	receiptURLExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidReceiptFormat        = errors.New("invalid format. Supported: JPEG, PNG")
	ErrReceiptTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidReceiptData          = errors.New("invalid image data")
	ErrReceiptStorageNotConfigured = errors.New("receipt storage not configured")
)

// AllowedReceiptExtensions maps accepted upload extensions to content types
var AllowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var receiptVariants = []struct {
	name     string
	maxWidth int
}{
	{"thumb", ThumbnailWidth},
	{"display", DisplayWidth},
}

// ReceiptURLs are short-lived links to the stored variants
type ReceiptURLs struct {
	ThumbnailURL string    `json:"thumbnailUrl"`
	DisplayURL   string    `json:"displayUrl"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// ReceiptService resizes receipt photos and keeps them in object storage
type ReceiptService struct {
	store     storage.ReceiptStore
	entryRepo domain.EntryRepository
}

// NewReceiptService creates a new ReceiptService; store may be nil when storage is not configured
func NewReceiptService(store storage.ReceiptStore, entryRepo domain.EntryRepository) *ReceiptService {
	return &ReceiptService{store: store, entryRepo: entryRepo}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.store != nil
}

func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedReceiptExtensions[ext]; !ok {
		return nil, ErrInvalidReceiptFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidReceiptData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinReceiptWidth || bounds.Dy() < MinReceiptHeight {
		return nil, ErrReceiptTooSmall
	}
	return img, nil
}

// Upload attaches a receipt to an entry, replacing any previous one
func (s *ReceiptService) Upload(ctx context.Context, userID uuid.UUID, entryID int32, data []byte, filename string) (*ReceiptURLs, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	entry, err := s.entryRepo.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	var previousKey string
	if entry.ReceiptKey != nil {
		previousKey = *entry.ReceiptKey
	}

	baseKey := storage.ReceiptBaseKey(userID, entryID)
	var uploaded []string

	for _, variant := range receiptVariants {
		processed := img
		if img.Bounds().Dx() > variant.maxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			s.deleteKeys(ctx, uploaded)
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		key := storage.ReceiptVariantKey(baseKey, variant.name)
		if err := s.store.Put(ctx, key, buf.Bytes(), "image/jpeg"); err != nil {
			s.deleteKeys(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, key)
	}

	if err := s.entryRepo.SetReceiptKey(ctx, userID, entryID, &baseKey); err != nil {
		s.deleteKeys(ctx, uploaded)
		return nil, err
	}

	s.DeleteVariants(ctx, previousKey)

	return s.urls(ctx, baseKey)
}

// Get returns presigned URLs for an entry's receipt
func (s *ReceiptService) Get(ctx context.Context, userID uuid.UUID, entryID int32) (*ReceiptURLs, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}
	entry, err := s.entryRepo.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.ReceiptKey == nil {
		return nil, domain.ErrReceiptNotFound
	}
	return s.urls(ctx, *entry.ReceiptKey)
}

// Delete detaches and removes an entry's receipt
func (s *ReceiptService) Delete(ctx context.Context, userID uuid.UUID, entryID int32) error {
	if !s.IsEnabled() {
		return ErrReceiptStorageNotConfigured
	}
	entry, err := s.entryRepo.GetByID(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if entry.ReceiptKey == nil {
		return domain.ErrReceiptNotFound
	}
	previousKey := *entry.ReceiptKey
	if err := s.entryRepo.SetReceiptKey(ctx, userID, entryID, nil); err != nil {
		return err
	}
	s.DeleteVariants(ctx, previousKey)
	return nil
}

// DeleteVariants removes every stored variant of a receipt; failures are only logged
func (s *ReceiptService) DeleteVariants(ctx context.Context, baseKey string) {
	if !s.IsEnabled() || baseKey == "" {
		return
	}
	keys := make([]string, len(receiptVariants))
	for i, v := range receiptVariants {
		keys[i] = storage.ReceiptVariantKey(baseKey, v.name)
	}
	s.deleteKeys(ctx, keys)
}

func (s *ReceiptService) deleteKeys(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("Failed to delete receipt objects")
	}
}

func (s *ReceiptService) urls(ctx context.Context, baseKey string) (*ReceiptURLs, error) {
	thumb, err := s.store.PresignGet(ctx, storage.ReceiptVariantKey(baseKey, "thumb"), receiptURLExpiry)
	if err != nil {
		return nil, err
	}
	display, err := s.store.PresignGet(ctx, storage.ReceiptVariantKey(baseKey, "display"), receiptURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ReceiptURLs{
		ThumbnailURL: thumb,
		DisplayURL:   display,
		ExpiresAt:    time.Now().Add(receiptURLExpiry),
	}, nil
}
