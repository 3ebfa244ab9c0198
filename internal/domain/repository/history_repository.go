package repository

import "github.com/yourusername/gemini-relay-bot/internal/domain/entity"

// HistoryRepository har bir chat uchun cheklangan xabarlar tarixi
type HistoryRepository interface {
	// Add xabarni tarix oxiriga qo'shish, to'lgan bo'lsa eng eskisini chiqarish
	Add(chatID entity.ChatID, message entity.Message)

	// Messages tarix nusxasi, eskidan yangiga. Bufer yaratmaydi.
	Messages(chatID entity.ChatID) []entity.Message

	// Len tarixdagi xabarlar soni
	Len(chatID entity.ChatID) int
}
