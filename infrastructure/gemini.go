package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const pdfExtractionPrompt = `Extract ALL text content from this PDF document. Return ONLY the raw extracted text without any additional comments, formatting, or explanations. Include:

- Personal information (name, email, phone)
- Education history
- Work experience
- Skills and technologies
- Certifications
- Projects and achievements

Return the text exactly as it appears in the document.`

var defaultGeminiModels = []string{
	"gemini-2.0-flash",
	"gemini-2.5-flash",
	"gemini-flash-latest",
}

// GeminiClient reads scanned or otherwise unextractable PDFs through Gemini.
type GeminiClient struct {
	client *genai.Client
	models []string
	logger *zap.Logger
}

// NewGeminiClient creates a client for the Gemini API backend. When model is
// set it is tried before the default list.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	models := defaultGeminiModels
	if model = strings.TrimSpace(model); model != "" {
		models = append([]string{model}, defaultGeminiModels...)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GeminiClient{client: client, models: models, logger: logger}, nil
}

func (g *GeminiClient) ExtractPDFText(ctx context.Context, data []byte) (string, error) {
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: pdfExtractionPrompt},
			{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: data}},
		},
	}}
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.1)}

	var lastErr error
	for _, model := range g.models {
		resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			g.logger.Debug("gemini pdf extraction failed", zap.String("model", model), zap.Error(err))
			lastErr = err
			continue
		}

		text := strings.TrimSpace(responseText(resp))
		if text == "" {
			lastErr = fmt.Errorf("model %s returned empty text", model)
			continue
		}

		g.logger.Info("pdf text extracted with gemini", zap.String("model", model), zap.Int("chars", len(text)))
		return text, nil
	}

	return "", fmt.Errorf("all gemini models failed for pdf extraction: %w", lastErr)
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
