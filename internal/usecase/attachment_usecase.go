package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

const defaultContentType = "application/octet-stream"

// fallbackTypes tizimda mime.types bo'lmaganda Telegram fayllari uchun
var fallbackTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".gif":  "image/gif",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// AttachmentResolver mediani yuklab olib Gemini fayl xotirasiga joylash
type AttachmentResolver interface {
	Resolve(ctx context.Context, media entity.Media) (entity.Attachment, error)
}

type attachmentResolver struct {
	source repository.MediaSource
	store  repository.FileStore
}

// NewAttachmentResolver yangi AttachmentResolver yaratish
func NewAttachmentResolver(source repository.MediaSource, store repository.FileStore) AttachmentResolver {
	return &attachmentResolver{source: source, store: store}
}

// Resolve media -> Attachment. Xato bo'lsa qisman natija qaytmaydi.
func (r *attachmentResolver) Resolve(ctx context.Context, media entity.Media) (entity.Attachment, error) {
	fileID, err := selectFileID(media)
	if err != nil {
		return entity.Attachment{}, fmt.Errorf("%w: %v", entity.ErrAttachmentResolution, err)
	}

	filePath, data, err := r.source.Fetch(ctx, fileID)
	if err != nil {
		return entity.Attachment{}, fmt.Errorf("%w: fetch %s: %w", entity.ErrAttachmentResolution, fileID, err)
	}

	contentType := contentTypeFromPath(filePath)
	name := path.Base(filePath)
	if name == "." || name == "/" {
		name = fileID
	}

	target, err := r.store.Register(ctx, name, len(data), contentType)
	if err != nil {
		return entity.Attachment{}, fmt.Errorf("%w: register %s: %w", entity.ErrAttachmentResolution, name, err)
	}

	uri, err := r.store.Upload(ctx, target, data)
	if err != nil {
		return entity.Attachment{}, fmt.Errorf("%w: upload %s: %w", entity.ErrAttachmentResolution, name, err)
	}

	return entity.Attachment{URI: uri, ContentType: contentType}, nil
}

// selectFileID eng katta hajmli photo variantini yoki animation faylini tanlash
func selectFileID(media entity.Media) (string, error) {
	switch media.Kind {
	case entity.MediaPhoto:
		if len(media.Photos) == 0 {
			return "", errors.New("photo has no variants")
		}
		best := media.Photos[0]
		for _, p := range media.Photos[1:] {
			if p.FileSize > best.FileSize {
				best = p
			}
		}
		return best.FileID, nil
	case entity.MediaAnimation:
		if media.FileID == "" {
			return "", errors.New("animation has no file id")
		}
		return media.FileID, nil
	default:
		return "", fmt.Errorf("unsupported media kind %q", media.Label)
	}
}

// contentTypeFromPath fayl kengaytmasi bo'yicha MIME turi
func contentTypeFromPath(p string) string {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return defaultContentType
	}
	ct := mime.TypeByExtension(ext)
	if ct == "" {
		if fallback, ok := fallbackTypes[ext]; ok {
			return fallback
		}
		return defaultContentType
	}
	if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
		return mediaType
	}
	return ct
}
