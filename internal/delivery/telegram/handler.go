package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/usecase"
)

// updateSource *tgbotapi.BotAPI ning long polling qismi
type updateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// BotHandler Telegram bot handler.
// Bir chat xabarlari kelish tartibida ketma-ket, turli chatlar parallel qayta ishlanadi.
type BotHandler struct {
	bot         updateSource
	chatUseCase usecase.ChatUseCase
	logger      *zap.Logger

	// queues faqat ishlayotgan chatlar; navbat bo'shaganda o'chiriladi
	mu     sync.Mutex
	queues map[entity.ChatID][]*tgbotapi.Message
	wg     sync.WaitGroup
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(bot *tgbotapi.BotAPI, chatUseCase usecase.ChatUseCase, logger *zap.Logger) *BotHandler {
	return newBotHandler(bot, chatUseCase, logger)
}

func newBotHandler(bot updateSource, chatUseCase usecase.ChatUseCase, logger *zap.Logger) *BotHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BotHandler{
		bot:         bot,
		chatUseCase: chatUseCase,
		logger:      logger,
		queues:      make(map[entity.ChatID][]*tgbotapi.Message),
	}
}

// Start botni ishga tushirish. ctx bekor qilinganda navbatdagi ishlar tugashini kutadi.
func (h *BotHandler) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	h.logger.Info("bot started")

	defer func() {
		h.bot.StopReceivingUpdates()
		h.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bot stopping")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}
			h.enqueue(ctx, update.Message)
		}
	}
}

// enqueue polling loop ni hech qachon bloklamaydi
func (h *BotHandler) enqueue(ctx context.Context, message *tgbotapi.Message) {
	chatID := entity.ChatID(message.Chat.ID)

	h.mu.Lock()
	defer h.mu.Unlock()

	pending, running := h.queues[chatID]
	h.queues[chatID] = append(pending, message)
	if !running {
		h.wg.Add(1)
		go h.drain(ctx, chatID)
	}
}

// drain chat navbatini tartib bilan qayta ishlaydi va bo'sh qolganda chiqadi
func (h *BotHandler) drain(ctx context.Context, chatID entity.ChatID) {
	defer h.wg.Done()
	for {
		h.mu.Lock()
		pending := h.queues[chatID]
		if len(pending) == 0 || ctx.Err() != nil {
			delete(h.queues, chatID)
			h.mu.Unlock()
			return
		}
		message := pending[0]
		pending[0] = nil
		h.queues[chatID] = pending[1:]
		h.mu.Unlock()

		h.handleMessage(ctx, chatID, message)
	}
}

// handleMessage xabarni qayta ishlash. Panic butun botni to'xtatmasligi kerak.
func (h *BotHandler) handleMessage(ctx context.Context, chatID entity.ChatID, message *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling message",
				zap.Int64("chat_id", int64(chatID)),
				zap.Int("message_id", message.MessageID),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	h.logger.Debug("message received",
		zap.Int64("chat_id", int64(chatID)),
		zap.Int("message_id", message.MessageID),
	)
	h.chatUseCase.OnMessage(ctx, ToEntity(message))
}
