package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register the jpeg decoder for image.Decode
	"image/png"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/store"
	"golang.org/x/image/draw"
)

const (
	// maxAvatarBytes bounds the raw upload size, enforced before any
	// decoding is attempted.
	maxAvatarBytes = 1_000_000

	// avatarSize is the edge length of the stored square avatar.
	avatarSize = 250
)

// AvatarService handles avatar upload, retrieval and deletion. Uploads are
// validated, scaled to a fixed square and re-encoded as PNG before they are
// stored on the user record.
type AvatarService struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewAvatarService creates an AvatarService backed by the given user store.
func NewAvatarService(userStore store.UserStore, logger *slog.Logger) *AvatarService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvatarService{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "avatar_service")),
	}
}

// Upload validates, resizes and stores an avatar for the user. The size
// bound and extension check run before any image decoding.
func (s *AvatarService) Upload(ctx context.Context, userID uuid.UUID, filename string, data []byte) error {
	if len(data) == 0 {
		return ErrAvatarBadType
	}
	if len(data) > maxAvatarBytes {
		return ErrAvatarTooLarge
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
	default:
		return ErrAvatarBadType
	}

	resized, err := resizeToPNG(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAvatarBadType, err)
	}

	return s.userStore.UpdateAvatar(ctx, userID, resized)
}

// Delete clears the user's stored avatar.
func (s *AvatarService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.userStore.UpdateAvatar(ctx, userID, nil)
}

// Get returns the stored avatar PNG bytes for the user.
// Returns store.ErrAvatarNotFound when the user or avatar is missing.
func (s *AvatarService) Get(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	return s.userStore.GetAvatar(ctx, userID)
}

// resizeToPNG decodes jpeg or png bytes, scales them to avatarSize x
// avatarSize and re-encodes the result as PNG.
func resizeToPNG(data []byte) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if format != "jpeg" && format != "png" {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return buf.Bytes(), nil
}
