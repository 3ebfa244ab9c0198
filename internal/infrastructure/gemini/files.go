package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

// DefaultBaseURL Gemini API manzili
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

const uploadPath = "/upload/v1beta/files"

type fileStore struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewFileStore Gemini File API uchun resumable upload client yaratish
func NewFileStore(httpClient *http.Client, baseURL, apiKey string) repository.FileStore {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &fileStore{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type fileMetadata struct {
	File struct {
		DisplayName string `json:"display_name"`
	} `json:"file"`
}

type uploadResponse struct {
	File struct {
		Name     string `json:"name"`
		URI      string `json:"uri"`
		MIMEType string `json:"mimeType"`
	} `json:"file"`
}

// Register upload sessiyasini boshlash va yuklash URL ini olish
func (s *fileStore) Register(ctx context.Context, name string, size int, contentType string) (repository.UploadTarget, error) {
	var meta fileMetadata
	meta.File.DisplayName = name
	body, err := json.Marshal(meta)
	if err != nil {
		return repository.UploadTarget{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+uploadPath, bytes.NewReader(body))
	if err != nil {
		return repository.UploadTarget{}, err
	}
	req.Header.Set("x-goog-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.Itoa(size))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return repository.UploadTarget{}, fmt.Errorf("start upload: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return repository.UploadTarget{}, fmt.Errorf("start upload: %w", err)
	}

	uploadURL := resp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return repository.UploadTarget{}, fmt.Errorf("start upload: response has no upload url")
	}

	return repository.UploadTarget{
		URL:         uploadURL,
		Name:        name,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Upload baytlarni yuborib sessiyani yakunlash
func (s *fileStore) Upload(ctx context.Context, target repository.UploadTarget, data []byte) (string, error) {
	if len(data) != target.Size {
		return "", fmt.Errorf("upload %s: declared %d bytes, got %d", target.Name, target.Size, len(data))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("X-Goog-Upload-Offset", "0")
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", target.Name, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", fmt.Errorf("upload %s: %w", target.Name, err)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload %s: decode response: %w", target.Name, err)
	}
	if out.File.URI == "" {
		return "", fmt.Errorf("upload %s: response has no file uri", target.Name)
	}
	return out.File.URI, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
}
