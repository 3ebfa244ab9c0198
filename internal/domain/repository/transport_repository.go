package repository

import (
	"context"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
)

// MediaSource transport qatlamidan fayllarni olish
type MediaSource interface {
	// Fetch fayl yo'li (kengaytma bilan) va baytlarini qaytaradi
	Fetch(ctx context.Context, fileID string) (path string, data []byte, err error)
}

// MessageSender javoblarni chatga yuborish
type MessageSender interface {
	SendHTML(ctx context.Context, chatID entity.ChatID, text string) error
	SendTyping(ctx context.Context, chatID entity.ChatID) error
}
