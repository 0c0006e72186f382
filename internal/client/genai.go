package client

import (
	"context"
	"fmt"

	"github.com/gemchat/backend/internal/config"
	"google.golang.org/genai"
)

// GenAIClient wraps the Gemini API for text-only generation.
type GenAIClient struct {
	client *genai.Client
	model  string
}

func NewGenAIClient(cfg config.GeminiConfig) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}
	return &GenAIClient{client: client, model: cfg.Model}, nil
}

func (c *GenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if res == nil || len(res.Candidates) == 0 {
		return "", fmt.Errorf("empty generation result")
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("empty generation result")
	}
	return text, nil
}
