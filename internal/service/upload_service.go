package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/genaimarketing/api/internal/client"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

const (
	MaxImageSize = 10 * 1024 * 1024  // 10MB
	MaxVideoSize = 100 * 1024 * 1024 // 100MB
)

var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var videoTypes = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// CreativeUpload is one file destined for an asset slot
type CreativeUpload struct {
	AssetID     string
	Slot        model.CreativeSlot
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadService stores creatives in R2 and links them into the asset set
type UploadService struct {
	r2Client client.StorageClient
	assets   store.AssetStore
	logger   *zap.Logger
}

// NewUploadService creates a new upload service. A nil r2Client produces mock URLs.
func NewUploadService(r2Client client.StorageClient, assets store.AssetStore, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{
		r2Client: r2Client,
		assets:   assets,
		logger:   logger.Named("uploads"),
	}
}

// ValidateCreative checks slot, content type and size before anything is stored
func ValidateCreative(slot model.CreativeSlot, contentType string, size int64) (string, error) {
	if !slot.IsValid() {
		return "", model.NewValidationError("slot", "invalid")
	}

	allowed, limit := imageTypes, int64(MaxImageSize)
	if slot.AcceptsVideo() {
		allowed, limit = videoTypes, MaxVideoSize
	}

	ext, ok := allowed[strings.ToLower(contentType)]
	if !ok {
		return "", model.NewValidationError("file", "content_type")
	}
	if size <= 0 || size > limit {
		return "", model.NewValidationError("file", fmt.Sprintf("max=%d", limit))
	}
	return ext, nil
}

// UploadCreative stores the file and sets the slot's URL on the asset set
func (s *UploadService) UploadCreative(ctx context.Context, p model.Principal, up CreativeUpload) (*model.CreativeUploadResponse, error) {
	ext, err := ValidateCreative(up.Slot, up.ContentType, up.Size)
	if err != nil {
		return nil, err
	}

	// Resolve ownership before spending bandwidth on the upload
	if _, err := s.assets.GetAsset(ctx, p, up.AssetID); err != nil {
		return nil, err
	}

	key := path.Join("creatives", p.UserID, up.AssetID, fmt.Sprintf("%s-%s%s", up.Slot, uuid.New().String(), ext))

	var fileURL string
	if s.r2Client == nil {
		fileURL = fmt.Sprintf("https://cdn.genaimarketing.dev/%s", key)
	} else {
		fileURL, err = s.r2Client.Upload(ctx, key, up.Body, up.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload creative: %w", err)
		}
	}

	if _, err := s.assets.UpdateAsset(ctx, p, up.AssetID, model.Fields{string(up.Slot): fileURL}); err != nil {
		if s.r2Client != nil {
			if derr := s.r2Client.Delete(ctx, key); derr != nil {
				s.logger.Warn("failed to remove orphaned creative", zap.String("key", key), zap.Error(derr))
			}
		}
		return nil, err
	}

	return &model.CreativeUploadResponse{
		AssetID:     up.AssetID,
		Slot:        up.Slot,
		FileURL:     fileURL,
		ContentType: up.ContentType,
		Size:        up.Size,
		CreatedAt:   time.Now(),
	}, nil
}
