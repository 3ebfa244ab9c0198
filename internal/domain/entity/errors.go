package entity

import "errors"

var (
	// ErrUntranslatableMessage muallifsiz, tizim yoki qo'llab-quvvatlanmaydigan xabar
	ErrUntranslatableMessage = errors.New("untranslatable message")
	// ErrAttachmentResolution faylni yuklab olish yoki Gemini ga yuklash xatosi
	ErrAttachmentResolution = errors.New("attachment resolution failed")
	// ErrBackendRequest Gemini so'rovi xatosi
	ErrBackendRequest = errors.New("backend request failed")
	// ErrTransportSend Telegram ga yuborish xatosi
	ErrTransportSend = errors.New("transport send failed")
	// ErrEmptyRequest tarixdan birorta ham xabar tarjima qilinmadi
	ErrEmptyRequest = errors.New("empty request: no translatable messages")
)
