package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

func photoMedia() entity.Media {
	return entity.Media{
		Kind: entity.MediaPhoto,
		Photos: []entity.PhotoVariant{
			{FileID: "small", FileSize: 1_000, Width: 90, Height: 90},
			{FileID: "large", FileSize: 90_000, Width: 1280, Height: 1280},
			{FileID: "medium", FileSize: 20_000, Width: 320, Height: 320},
		},
	}
}

func TestAttachmentResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads the largest photo variant", func(t *testing.T) {
		var fetched string
		var registered repository.UploadTarget
		source := &mockMediaSource{FetchFunc: func(ctx context.Context, fileID string) (string, []byte, error) {
			fetched = fileID
			return "photos/file_7.jpg", []byte("12345"), nil
		}}
		store := &mockFileStore{
			RegisterFunc: func(ctx context.Context, name string, size int, contentType string) (repository.UploadTarget, error) {
				registered = repository.UploadTarget{URL: "https://upload/1", Name: name, Size: size, ContentType: contentType}
				return registered, nil
			},
			UploadFunc: func(ctx context.Context, target repository.UploadTarget, data []byte) (string, error) {
				assert.Equal(t, registered, target)
				assert.Equal(t, []byte("12345"), data)
				return "https://files/abc", nil
			},
		}

		att, err := NewAttachmentResolver(source, store).Resolve(ctx, photoMedia())
		require.NoError(t, err)

		assert.Equal(t, "large", fetched)
		assert.Equal(t, "file_7.jpg", registered.Name)
		assert.Equal(t, 5, registered.Size)
		assert.Equal(t, "image/jpeg", registered.ContentType)
		assert.Equal(t, entity.Attachment{URI: "https://files/abc", ContentType: "image/jpeg"}, att)
	})

	t.Run("animation uses its single file", func(t *testing.T) {
		source := &mockMediaSource{FetchFunc: func(ctx context.Context, fileID string) (string, []byte, error) {
			assert.Equal(t, "anim-1", fileID)
			return "animations/file_3.mp4", []byte("mp4"), nil
		}}

		att, err := NewAttachmentResolver(source, &mockFileStore{}).Resolve(ctx, entity.Media{
			Kind:   entity.MediaAnimation,
			FileID: "anim-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "video/mp4", att.ContentType)
	})

	t.Run("unknown extension falls back to octet-stream", func(t *testing.T) {
		var contentType string
		source := &mockMediaSource{FetchFunc: func(ctx context.Context, fileID string) (string, []byte, error) {
			return "documents/file_1.unknownext", []byte("x"), nil
		}}
		store := &mockFileStore{RegisterFunc: func(ctx context.Context, name string, size int, ct string) (repository.UploadTarget, error) {
			contentType = ct
			return repository.UploadTarget{URL: "u", Name: name, Size: size, ContentType: ct}, nil
		}}

		att, err := NewAttachmentResolver(source, store).Resolve(ctx, photoMedia())
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", contentType)
		assert.Equal(t, "application/octet-stream", att.ContentType)
	})

	failures := []struct {
		name   string
		source *mockMediaSource
		store  *mockFileStore
		media  entity.Media
	}{
		{
			name: "fetch fails",
			source: &mockMediaSource{FetchFunc: func(ctx context.Context, fileID string) (string, []byte, error) {
				return "", nil, errors.New("telegram down")
			}},
			store: &mockFileStore{},
			media: photoMedia(),
		},
		{
			name:   "register fails",
			source: &mockMediaSource{},
			store: &mockFileStore{RegisterFunc: func(ctx context.Context, name string, size int, ct string) (repository.UploadTarget, error) {
				return repository.UploadTarget{}, errors.New("quota")
			}},
			media: photoMedia(),
		},
		{
			name:   "upload fails",
			source: &mockMediaSource{},
			store: &mockFileStore{UploadFunc: func(ctx context.Context, target repository.UploadTarget, data []byte) (string, error) {
				return "", errors.New("connection reset")
			}},
			media: photoMedia(),
		},
		{
			name:   "photo without variants",
			source: &mockMediaSource{},
			store:  &mockFileStore{},
			media:  entity.Media{Kind: entity.MediaPhoto},
		},
		{
			name:   "unsupported kind",
			source: &mockMediaSource{},
			store:  &mockFileStore{},
			media:  entity.Media{Kind: entity.MediaUnsupported, Label: "sticker"},
		},
	}

	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			att, err := NewAttachmentResolver(tc.source, tc.store).Resolve(ctx, tc.media)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrAttachmentResolution)
			assert.Equal(t, entity.Attachment{}, att)
		})
	}
}

func TestContentTypeFromPath(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentTypeFromPath("photos/file_1.jpg"))
	assert.Equal(t, "image/jpeg", contentTypeFromPath("photos/FILE_1.JPG"))
	assert.Equal(t, "image/png", contentTypeFromPath("photos/file_1.png"))
	assert.Equal(t, "video/mp4", contentTypeFromPath("animations/file_2.mp4"))
	assert.Equal(t, "application/octet-stream", contentTypeFromPath("photos/file"))
}

func TestSelectFileID(t *testing.T) {
	id, err := selectFileID(photoMedia())
	require.NoError(t, err)
	assert.Equal(t, "large", id)

	_, err = selectFileID(entity.Media{Kind: entity.MediaPhoto})
	assert.EqualError(t, err, "photo has no variants")

	_, err = selectFileID(entity.Media{Kind: entity.MediaAnimation})
	assert.EqualError(t, err, "animation has no file id")

	_, err = selectFileID(entity.Media{Kind: entity.MediaUnsupported, Label: "video"})
	assert.EqualError(t, err, `unsupported media kind "video"`)
}
