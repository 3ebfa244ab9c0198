package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

const reportSuffix = "\nReport this issue to the admins"

// ChatUseCase chat bilan bog'liq business logic
type ChatUseCase interface {
	// OnMessage kelgan xabarni qayta ishlash: kerak bo'lsa javob berish, keyin tarixga qo'shish
	OnMessage(ctx context.Context, msg entity.Message)
}

// ChatOptions ChatUseCase sozlamalari
type ChatOptions struct {
	Personality string
	Timeout     time.Duration
	// Sanitize model javobini Telegram HTML ga aylantirish
	Sanitize func(string) string
}

type chatUseCase struct {
	bot       entity.BotIdentity
	names     *NameMatcher
	history   repository.HistoryRepository
	assembler HistoryAssembler
	aiRepo    repository.AIRepository
	sender    repository.MessageSender
	opts      ChatOptions
	logger    *zap.Logger
}

// NewChatUseCase yangi ChatUseCase yaratish
func NewChatUseCase(
	bot entity.BotIdentity,
	names *NameMatcher,
	history repository.HistoryRepository,
	assembler HistoryAssembler,
	aiRepo repository.AIRepository,
	sender repository.MessageSender,
	opts ChatOptions,
	logger *zap.Logger,
) ChatUseCase {
	if opts.Sanitize == nil {
		opts.Sanitize = func(s string) string { return s }
	}
	return &chatUseCase{
		bot:       bot,
		names:     names,
		history:   history,
		assembler: assembler,
		aiRepo:    aiRepo,
		sender:    sender,
		opts:      opts,
		logger:    logger,
	}
}

// OnMessage xabarni qayta ishlash
func (u *chatUseCase) OnMessage(ctx context.Context, msg entity.Message) {
	logger := u.logger.With(
		zap.Int64("chat_id", int64(msg.ChatID)),
		zap.Int("message_id", msg.ID),
	)

	if ShouldReply(msg, u.bot, u.names) {
		logger = logger.With(zap.String("request_id", uuid.NewString()))

		if err := u.sender.SendTyping(ctx, msg.ChatID); err != nil {
			logger.Debug("typing action failed", zap.Error(err))
		}

		reply := u.opts.Sanitize(u.reply(ctx, msg, logger))
		logger.Debug("reply", zap.String("text", reply))

		if err := u.sender.SendHTML(ctx, msg.ChatID, reply); err != nil {
			logger.Error("failed to send message", zap.Error(fmt.Errorf("%w: %w", entity.ErrTransportSend, err)))
		}
	}

	u.history.Add(msg.ChatID, msg)
}

// reply Gemini dan javob matnini olish. Xato bo'lsa xato matni qaytadi.
func (u *chatUseCase) reply(ctx context.Context, msg entity.Message, logger *zap.Logger) string {
	contents := u.assembler.Assemble(ctx, msg.ChatID, msg, u.bot)
	logger.Debug("history assembled", zap.Int("contents", len(contents)))

	if u.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.opts.Timeout)
		defer cancel()
	}

	resp, err := u.generate(ctx, contents)
	if err != nil {
		logger.Warn("gemini request failed", zap.Error(err))
		return ErrorReply(err)
	}

	text, ok := singleText(resp)
	if !ok {
		logger.Warn("unexpected gemini response shape", zap.Int("parts", len(resp.Parts)))
		return "```\nissue\n```" + reportSuffix
	}
	return text
}

func (u *chatUseCase) generate(ctx context.Context, contents []entity.Content) (*entity.GenerateResponse, error) {
	if len(contents) == 0 {
		return nil, fmt.Errorf("%w: %w", entity.ErrBackendRequest, entity.ErrEmptyRequest)
	}

	resp, err := u.aiRepo.Generate(ctx, entity.GenerateRequest{
		SystemInstruction: u.opts.Personality,
		Contents:          contents,
	})
	if err != nil {
		if errors.Is(err, entity.ErrBackendRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", entity.ErrBackendRequest, err)
	}
	return resp, nil
}

// ErrorReply xatoni foydalanuvchiga ko'rsatiladigan matnga aylantirish
func ErrorReply(err error) string {
	return "```\n" + err.Error() + "\n```" + reportSuffix
}

// singleText javob aynan bitta matn bo'lagidan iboratmi
func singleText(resp *entity.GenerateResponse) (string, bool) {
	if resp == nil || len(resp.Parts) != 1 {
		return "", false
	}
	text, ok := resp.Parts[0].(entity.TextPart)
	if !ok {
		return "", false
	}
	return string(text), true
}
