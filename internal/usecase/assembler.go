package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

// DefaultConcurrency bir vaqtda tarjima qilinadigan xabarlar soni
const DefaultConcurrency = 3

// HistoryAssembler tarix + yangi xabardan model uchun kontent yig'ish
type HistoryAssembler interface {
	Assemble(ctx context.Context, chatID entity.ChatID, trigger entity.Message, bot entity.BotIdentity) []entity.Content
}

type historyAssembler struct {
	history     repository.HistoryRepository
	translator  MessageTranslator
	concurrency int
	logger      *zap.Logger
}

// NewHistoryAssembler yangi HistoryAssembler yaratish
func NewHistoryAssembler(
	history repository.HistoryRepository,
	translator MessageTranslator,
	concurrency int,
	logger *zap.Logger,
) HistoryAssembler {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &historyAssembler{
		history:     history,
		translator:  translator,
		concurrency: concurrency,
		logger:      logger,
	}
}

type translation struct {
	content entity.Content
	err     error
}

// Assemble oynadagi har bir xabarni parallel tarjima qiladi, tartib saqlanadi.
// Tarjima qilinmagan xabarlar tashlab yuboriladi.
func (a *historyAssembler) Assemble(ctx context.Context, chatID entity.ChatID, trigger entity.Message, bot entity.BotIdentity) []entity.Content {
	window := append(a.history.Messages(chatID), trigger)
	results := make([]translation, len(window))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, msg := range window {
		i, msg := i, msg
		g.Go(func() error {
			content, err := a.translator.Translate(gctx, msg, bot)
			results[i] = translation{content: content, err: err}
			return nil
		})
	}
	_ = g.Wait()

	contents := make([]entity.Content, 0, len(window))
	for i, res := range results {
		if res.err != nil {
			a.logger.Debug("message dropped from history window",
				zap.Int64("chat_id", int64(chatID)),
				zap.Int("message_id", window[i].ID),
				zap.Error(res.err),
			)
			continue
		}
		contents = append(contents, res.content)
	}
	return contents
}
