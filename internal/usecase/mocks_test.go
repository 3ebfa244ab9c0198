package usecase

import (
	"context"
	"sync"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

// mockMediaSource repository.MediaSource uchun mock
type mockMediaSource struct {
	FetchFunc func(ctx context.Context, fileID string) (string, []byte, error)
}

func (m *mockMediaSource) Fetch(ctx context.Context, fileID string) (string, []byte, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, fileID)
	}
	return "photos/" + fileID + ".jpg", []byte("image-bytes"), nil
}

// mockFileStore repository.FileStore uchun mock
type mockFileStore struct {
	RegisterFunc func(ctx context.Context, name string, size int, contentType string) (repository.UploadTarget, error)
	UploadFunc   func(ctx context.Context, target repository.UploadTarget, data []byte) (string, error)
}

func (m *mockFileStore) Register(ctx context.Context, name string, size int, contentType string) (repository.UploadTarget, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, size, contentType)
	}
	return repository.UploadTarget{URL: "https://upload.example/" + name, Name: name, Size: size, ContentType: contentType}, nil
}

func (m *mockFileStore) Upload(ctx context.Context, target repository.UploadTarget, data []byte) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, target, data)
	}
	return "https://files.example/" + target.Name, nil
}

// mockResolver AttachmentResolver uchun mock
type mockResolver struct {
	ResolveFunc func(ctx context.Context, media entity.Media) (entity.Attachment, error)
}

func (m *mockResolver) Resolve(ctx context.Context, media entity.Media) (entity.Attachment, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, media)
	}
	return entity.Attachment{URI: "https://files.example/" + media.FileID, ContentType: "image/jpeg"}, nil
}

// mockTranslator MessageTranslator uchun mock
type mockTranslator struct {
	TranslateFunc func(ctx context.Context, msg entity.Message, bot entity.BotIdentity) (entity.Content, error)
}

func (m *mockTranslator) Translate(ctx context.Context, msg entity.Message, bot entity.BotIdentity) (entity.Content, error) {
	return m.TranslateFunc(ctx, msg, bot)
}

// mockHistory repository.HistoryRepository uchun oddiy mock
type mockHistory struct {
	mu       sync.Mutex
	messages map[entity.ChatID][]entity.Message
}

func newMockHistory() *mockHistory {
	return &mockHistory{messages: make(map[entity.ChatID][]entity.Message)}
}

func (m *mockHistory) Add(chatID entity.ChatID, message entity.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[chatID] = append(m.messages[chatID], message)
}

func (m *mockHistory) Messages(chatID entity.ChatID) []entity.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.Message{}, m.messages[chatID]...)
}

func (m *mockHistory) Len(chatID entity.ChatID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages[chatID])
}

// mockAI repository.AIRepository uchun mock
type mockAI struct {
	mu           sync.Mutex
	calls        []entity.GenerateRequest
	GenerateFunc func(ctx context.Context, req entity.GenerateRequest) (*entity.GenerateResponse, error)
}

func (m *mockAI) Generate(ctx context.Context, req entity.GenerateRequest) (*entity.GenerateResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &entity.GenerateResponse{Parts: []entity.Part{entity.TextPart("hello")}}, nil
}

// mockSender repository.MessageSender uchun mock
type mockSender struct {
	mu          sync.Mutex
	sent        []string
	typing      int
	SendHTMLErr error
	// onSend yuborish paytida chaqiriladi (tartibni tekshirish uchun)
	onSend func()
}

func (m *mockSender) SendHTML(ctx context.Context, chatID entity.ChatID, text string) error {
	if m.onSend != nil {
		m.onSend()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, text)
	return m.SendHTMLErr
}

func (m *mockSender) SendTyping(ctx context.Context, chatID entity.ChatID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typing++
	return nil
}
