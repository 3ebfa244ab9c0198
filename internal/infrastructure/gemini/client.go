package gemini

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yourusername/gemini-relay-bot/internal/domain/entity"
	"github.com/yourusername/gemini-relay-bot/internal/domain/repository"
)

// DefaultModel standart Gemini modeli
const DefaultModel = "gemini-2.0-flash"

// safetyCategories barcha kategoriyalar BLOCK_NONE bilan yuboriladi
var safetyCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

type geminiClient struct {
	client    *genai.Client
	modelName string
	sem       chan struct{}
	mu        sync.Mutex
	last      time.Time
	delay     time.Duration
}

// Client Generate va Close imkoniyatlari
type Client interface {
	repository.AIRepository
	Close() error
}

// NewGeminiClient yangi Gemini AI client yaratish
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	return &geminiClient{
		client:    client,
		modelName: modelName,
		sem:       make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:     350 * time.Millisecond, // minimal interval
	}, nil
}

// Generate tarix bilan javob yaratish
func (g *geminiClient) Generate(ctx context.Context, req entity.GenerateRequest) (*entity.GenerateResponse, error) {
	if len(req.Contents) == 0 {
		return nil, fmt.Errorf("%w: %w", entity.ErrBackendRequest, entity.ErrEmptyRequest)
	}

	release, err := g.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrBackendRequest, err)
	}
	defer release()

	model := g.client.GenerativeModel(g.modelName)
	configureModel(model, req.SystemInstruction)

	history, last := toGenaiContents(req.Contents)
	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrBackendRequest, err)
	}

	return &entity.GenerateResponse{Parts: fromGenaiResponse(resp)}, nil
}

// configureModel system instruction va safety sozlamalari
func configureModel(model *genai.GenerativeModel, systemInstruction string) {
	if systemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemInstruction)},
		}
	}
	model.SafetySettings = SafetySettings()
}

// SafetySettings barcha kategoriyalar uchun eng erkin chegara
func SafetySettings() []*genai.SafetySetting {
	settings := make([]*genai.SafetySetting, 0, len(safetyCategories))
	for _, category := range safetyCategories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockNone,
		})
	}
	return settings
}

// toGenaiContents oxirgisidan boshqasi chat tarixiga ketadi
func toGenaiContents(contents []entity.Content) ([]*genai.Content, *genai.Content) {
	out := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		gc := &genai.Content{Role: string(c.Role)}
		for _, p := range c.Parts {
			switch part := p.(type) {
			case entity.TextPart:
				gc.Parts = append(gc.Parts, genai.Text(part))
			case entity.FilePart:
				gc.Parts = append(gc.Parts, genai.FileData{MIMEType: part.MIMEType, URI: part.URI})
			}
		}
		out = append(out, gc)
	}
	return out[:len(out)-1], out[len(out)-1]
}

// fromGenaiResponse javobdagi bo'laklarni olish
func fromGenaiResponse(resp *genai.GenerateContentResponse) []entity.Part {
	var parts []entity.Part
	if resp == nil {
		return parts
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				parts = append(parts, entity.TextPart(p))
			case genai.FileData:
				parts = append(parts, entity.FilePart{URI: p.URI, MIMEType: p.MIMEType})
			default:
				parts = append(parts, entity.UnknownPart{Kind: fmt.Sprintf("%T", part)})
			}
		}
	}
	return parts
}

// acquire semafor va so'rovlar orasidagi minimal interval
func (g *geminiClient) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			timer := time.NewTimer(sleep)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				<-g.sem
				return nil, ctx.Err()
			}
			now = time.Now()
		}
	}
	g.last = now

	return func() {
		<-g.sem
	}, nil
}

// Close client ni yopish
func (g *geminiClient) Close() error {
	return g.client.Close()
}
