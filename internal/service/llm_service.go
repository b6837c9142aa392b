package service

import (
	"context"
	"fmt"

	"drawer/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// FileAttachment is a document passed inline to the model.
type FileAttachment struct {
	Data     []byte
	MIMEType string
}

// Generator is the boundary to the external generative model: given a prompt
// and an optional inline file, return free text. No retries, no timeout
// beyond the request context; a failure is terminal for the current
// operation.
type Generator interface {
	Generate(ctx context.Context, prompt string, file *FileAttachment) (string, error)
}

const (
	chatMaxOutputTokens       = 8192
	extractionMaxOutputTokens = 16384
)

type LLMService struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewLLMService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*LLMService, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Info("Gemini client created", zap.String("model", cfg.Model))

	return &LLMService{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

func (s *LLMService) Generate(ctx context.Context, prompt string, file *FileAttachment) (string, error) {
	parts := []*genai.Part{{Text: prompt}}
	maxTokens := int32(chatMaxOutputTokens)
	if file != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: file.MIMEType,
				Data:     file.Data,
			},
		})
		maxTokens = extractionMaxOutputTokens
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	text := resp.Text()
	s.logger.Debug("Model response received",
		zap.Int("prompt_length", len(prompt)),
		zap.Int("response_length", len(text)),
		zap.Bool("inline_file", file != nil),
	)

	return text, nil
}
