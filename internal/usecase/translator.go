package usecase

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
)

// MessageTranslator xabarni Gemini contentiga aylantirish
type MessageTranslator interface {
	Translate(ctx context.Context, msg entity.Message, bot entity.BotIdentity) (entity.Content, error)
}

type messageTranslator struct {
	resolver AttachmentResolver
	logger   *zap.Logger
}

// NewMessageTranslator yangi MessageTranslator yaratish
func NewMessageTranslator(resolver AttachmentResolver, logger *zap.Logger) MessageTranslator {
	return &messageTranslator{resolver: resolver, logger: logger}
}

// Translate bitta xabarni tarjima qilish
func (t *messageTranslator) Translate(ctx context.Context, msg entity.Message, bot entity.BotIdentity) (entity.Content, error) {
	if msg.Author == nil {
		return entity.Content{}, fmt.Errorf("%w: message %d has no author", entity.ErrUntranslatableMessage, msg.ID)
	}
	if msg.Service {
		return entity.Content{}, fmt.Errorf("%w: message %d is a service message", entity.ErrUntranslatableMessage, msg.ID)
	}
	if msg.Media != nil && msg.Media.Kind == entity.MediaUnsupported {
		return entity.Content{}, fmt.Errorf("%w: message %d has unsupported media %q", entity.ErrUntranslatableMessage, msg.ID, msg.Media.Label)
	}

	role := entity.RoleUser
	if bot.Is(msg.Author) {
		role = entity.RoleModel
	}

	text := msg.PrimaryText()
	info, err := EncodeMessageInfo(entity.MessageInfo{
		UserName:       msg.Author.FullName(),
		UserID:         msg.Author.ID,
		MessageContent: text,
		MessageID:      msg.ID,
	})
	if err != nil {
		return entity.Content{}, fmt.Errorf("encode message %d: %w", msg.ID, err)
	}

	parts := []entity.Part{entity.TextPart(info)}

	if msg.Media != nil {
		attachment, err := t.resolver.Resolve(ctx, *msg.Media)
		if err != nil {
			if text == "" {
				return entity.Content{}, fmt.Errorf("%w: message %d is media-only: %w", entity.ErrUntranslatableMessage, msg.ID, err)
			}
			t.logger.Debug("couldn't submit an attachment",
				zap.Int("message_id", msg.ID),
				zap.Int64("chat_id", int64(msg.ChatID)),
				zap.Error(err),
			)
		} else {
			parts = append(parts, attachment.Part())
		}
	}

	return entity.Content{Role: role, Parts: parts}, nil
}

// EncodeMessageInfo MessageInfo ni JSON matnga aylantirish
func EncodeMessageInfo(info entity.MessageInfo) (string, error) {
	raw, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeMessageInfo JSON matndan MessageInfo olish
func DecodeMessageInfo(s string) (entity.MessageInfo, error) {
	var info entity.MessageInfo
	err := json.Unmarshal([]byte(s), &info)
	return info, err
}
