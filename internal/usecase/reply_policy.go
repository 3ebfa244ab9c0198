package usecase

import (
	"strings"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
)

// NameMatcher bot nomlari (alias) bo'yicha katta-kichik harfga qaramay qidirish
type NameMatcher struct {
	patterns []string
}

// NewNameMatcher bo'sh nomlarni tashlab matcher yaratish
func NewNameMatcher(names ...string) *NameMatcher {
	m := &NameMatcher{}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		m.patterns = append(m.patterns, n)
	}
	return m
}

// IsMatch matnda biror nom uchraydimi
func (m *NameMatcher) IsMatch(text string) bool {
	if m == nil || text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range m.patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// ShouldReply xabarga javob berish kerakmi
func ShouldReply(msg entity.Message, bot entity.BotIdentity, names *NameMatcher) bool {
	if msg.Service {
		return false
	}
	return msg.ChatKind == entity.ChatPrivate ||
		bot.Is(msg.ReplyTo) ||
		names.IsMatch(msg.Text) ||
		names.IsMatch(msg.Caption)
}
