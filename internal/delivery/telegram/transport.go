package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

// botAPI *tgbotapi.BotAPI ning biz ishlatadigan qismi
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// maxDownloadSize Bot API getFile orqali 20 MB dan katta fayl bermaydi
const maxDownloadSize = 20 << 20

// Transport Telegram orqali fayl olish va xabar yuborish
type Transport struct {
	api          botAPI
	token        string
	httpClient   *http.Client
	fileEndpoint string
}

var (
	_ repository.MediaSource   = (*Transport)(nil)
	_ repository.MessageSender = (*Transport)(nil)
)

// NewTransport yangi transport yaratish
func NewTransport(bot *tgbotapi.BotAPI, httpClient *http.Client) *Transport {
	return newTransport(bot, bot.Token, httpClient, tgbotapi.FileEndpoint)
}

func newTransport(api botAPI, token string, httpClient *http.Client, fileEndpoint string) *Transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Transport{
		api:          api,
		token:        token,
		httpClient:   httpClient,
		fileEndpoint: fileEndpoint,
	}
}

// Fetch Telegram dan faylni yuklash
func (t *Transport) Fetch(ctx context.Context, fileID string) (string, []byte, error) {
	file, err := t.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", nil, fmt.Errorf("getFile %s: %w", fileID, err)
	}
	if file.FilePath == "" {
		return "", nil, fmt.Errorf("getFile %s: empty file path", fileID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(t.fileEndpoint, t.token, file.FilePath), nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		// URL da token bor, uni xatoga qo'shmaymiz
		return "", nil, fmt.Errorf("download %s: %w", file.FilePath, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("download %s: status %d", file.FilePath, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("download %s: %w", file.FilePath, err)
	}
	if len(data) > maxDownloadSize {
		return "", nil, fmt.Errorf("download %s: file exceeds %d bytes", file.FilePath, maxDownloadSize)
	}
	return file.FilePath, data, nil
}

// SendHTML HTML formatidagi xabar yuborish
func (t *Transport) SendHTML(ctx context.Context, chatID entity.ChatID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(int64(chatID), text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := t.api.Send(msg)
	return err
}

// SendTyping "yozmoqda..." holatini ko'rsatish
func (t *Transport) SendTyping(ctx context.Context, chatID entity.ChatID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// sendChatAction bool qaytaradi, shuning uchun Send emas Request
	_, err := t.api.Request(tgbotapi.NewChatAction(int64(chatID), tgbotapi.ChatTyping))
	return err
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
