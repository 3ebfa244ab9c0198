package entity

import (
	"strings"
	"time"
)

// ChatID suhbat identifikatori
type ChatID int64

// ChatKind chat turi
type ChatKind string

const (
	ChatPrivate    ChatKind = "private"
	ChatGroup      ChatKind = "group"
	ChatSupergroup ChatKind = "supergroup"
	ChatChannel    ChatKind = "channel"
)

// Author xabar muallifi
type Author struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	IsBot     bool
}

// FullName ism va familiya
func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// MediaKind xabardagi media turi
type MediaKind string

const (
	MediaPhoto       MediaKind = "photo"
	MediaAnimation   MediaKind = "animation"
	MediaUnsupported MediaKind = "unsupported"
)

// PhotoVariant rasmning bitta o'lchami
type PhotoVariant struct {
	FileID       string
	FileUniqueID string
	Width        int
	Height       int
	FileSize     int
}

// Media xabarga biriktirilgan fayl
type Media struct {
	Kind MediaKind
	// Photos photo uchun barcha o'lchamlar
	Photos []PhotoVariant
	// FileID, FileName, FileSize animation uchun
	FileID   string
	FileName string
	FileSize int
	// Label qo'llab-quvvatlanmaydigan tur nomi (video, sticker, voice...)
	Label string
}

// Message chatdan kelgan xabar. Qiymat sifatida uzatiladi va o'zgartirilmaydi.
type Message struct {
	ID       int
	ChatID   ChatID
	ChatKind ChatKind
	Author   *Author
	Text     string
	Caption  string
	Media    *Media
	// ReplyTo javob berilgan xabar muallifi
	ReplyTo *Author
	// Service tizim hodisasi (yangi a'zo, pin va h.k.)
	Service bool
	Date    time.Time
}

// PrimaryText asosiy matn: Text, bo'lmasa Caption
func (m Message) PrimaryText() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// BotIdentity botning o'zi haqida ma'lumot. Ishga tushganda bir marta olinadi.
type BotIdentity struct {
	ID        int64
	Username  string
	FirstName string
}

// Is muallif bot ekanligini tekshirish
func (b BotIdentity) Is(a *Author) bool {
	return a != nil && a.ID == b.ID
}
