package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
)

// Identity bot haqidagi ma'lumotni olish (getMe natijasi)
func Identity(self tgbotapi.User) entity.BotIdentity {
	return entity.BotIdentity{
		ID:        self.ID,
		Username:  self.UserName,
		FirstName: self.FirstName,
	}
}

// ToEntity tgbotapi xabarini domen xabariga aylantirish
func ToEntity(m *tgbotapi.Message) entity.Message {
	msg := entity.Message{
		ID:      m.MessageID,
		Text:    m.Text,
		Caption: m.Caption,
		Media:   toMedia(m),
		Service: isService(m),
		Date:    m.Time(),
	}
	if m.Chat != nil {
		msg.ChatID = entity.ChatID(m.Chat.ID)
		msg.ChatKind = entity.ChatKind(m.Chat.Type)
	}
	if m.From != nil {
		msg.Author = toAuthor(m.From)
	}
	if m.ReplyToMessage != nil && m.ReplyToMessage.From != nil {
		msg.ReplyTo = toAuthor(m.ReplyToMessage.From)
	}
	return msg
}

func toAuthor(u *tgbotapi.User) *entity.Author {
	return &entity.Author{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.UserName,
		IsBot:     u.IsBot,
	}
}

// toMedia animation hujjat sifatida ham keladi, shuning uchun Document dan oldin tekshiriladi
func toMedia(m *tgbotapi.Message) *entity.Media {
	switch {
	case len(m.Photo) > 0:
		variants := make([]entity.PhotoVariant, len(m.Photo))
		for i, p := range m.Photo {
			variants[i] = entity.PhotoVariant{
				FileID:       p.FileID,
				FileUniqueID: p.FileUniqueID,
				Width:        p.Width,
				Height:       p.Height,
				FileSize:     p.FileSize,
			}
		}
		return &entity.Media{Kind: entity.MediaPhoto, Photos: variants}
	case m.Animation != nil:
		return &entity.Media{
			Kind:     entity.MediaAnimation,
			FileID:   m.Animation.FileID,
			FileName: m.Animation.FileName,
			FileSize: m.Animation.FileSize,
		}
	}

	if label := unsupportedLabel(m); label != "" {
		return &entity.Media{Kind: entity.MediaUnsupported, Label: label}
	}
	return nil
}

func unsupportedLabel(m *tgbotapi.Message) string {
	switch {
	case m.Video != nil:
		return "video"
	case m.VideoNote != nil:
		return "video_note"
	case m.Sticker != nil:
		return "sticker"
	case m.Voice != nil:
		return "voice"
	case m.Audio != nil:
		return "audio"
	case m.Document != nil:
		return "document"
	case m.Contact != nil:
		return "contact"
	case m.Location != nil:
		return "location"
	case m.Venue != nil:
		return "venue"
	case m.Poll != nil:
		return "poll"
	case m.Dice != nil:
		return "dice"
	case m.Game != nil:
		return "game"
	}
	return ""
}

// isService tizim hodisalari (oddiy foydalanuvchi xabari emas)
func isService(m *tgbotapi.Message) bool {
	return len(m.NewChatMembers) > 0 ||
		m.LeftChatMember != nil ||
		m.NewChatTitle != "" ||
		len(m.NewChatPhoto) > 0 ||
		m.DeleteChatPhoto ||
		m.GroupChatCreated ||
		m.SuperGroupChatCreated ||
		m.ChannelChatCreated ||
		m.MigrateToChatID != 0 ||
		m.MigrateFromChatID != 0 ||
		m.PinnedMessage != nil ||
		m.MessageAutoDeleteTimerChanged != nil ||
		m.VoiceChatScheduled != nil ||
		m.VoiceChatStarted != nil ||
		m.VoiceChatEnded != nil ||
		m.VoiceChatParticipantsInvited != nil ||
		m.SuccessfulPayment != nil ||
		m.ConnectedWebsite != "" ||
		m.ProximityAlertTriggered != nil
}
