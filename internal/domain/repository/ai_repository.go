package repository

import (
	"context"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
)

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// Generate tayyor kontent ketma-ketligi bo'yicha javob yaratish
	Generate(ctx context.Context, req entity.GenerateRequest) (*entity.GenerateResponse, error)
}

// UploadTarget Register qaytargan yuklash manzili
type UploadTarget struct {
	URL         string
	Name        string
	Size        int
	ContentType string
}

// FileStore AI backend fayl xotirasi
type FileStore interface {
	// Register fayl uchun joy ochish (hajm va turi oldindan e'lon qilinadi)
	Register(ctx context.Context, name string, size int, contentType string) (UploadTarget, error)

	// Upload baytlarni yuklash va doimiy URI olish
	Upload(ctx context.Context, target UploadTarget, data []byte) (string, error)
}
