// Package llm constructs the Gemini chat models backing the extractor and
// phraser collaborators.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	logx "github.com/refundflow/server/pkg/logger"

	"github.com/refundflow/server/internal/refund/model"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	APIKey       string
	BaseURL      string
	Extractor    *model.ExtractorModelConfig
	Phraser      *model.PhraserModelConfig
}

// ChatModels holds the extractor and phraser chat models.
type ChatModels struct {
	Extractor          *gemini.ChatModel
	Phraser            *gemini.ChatModel
	ExtractorModelName string
	PhraserModelName   string
}

// NewChatModels creates both chat models over a shared Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	extractorModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Extractor.Model,
		Temperature: &config.Extractor.Temperature,
		MaxTokens:   &config.Extractor.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating extractor model")
		return nil, fmt.Errorf("error creating extractor model: %w", err)
	}

	phraserModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Phraser.Model,
		Temperature: &config.Phraser.Temperature,
		MaxTokens:   &config.Phraser.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating phraser model")
		return nil, fmt.Errorf("error creating phraser model: %w", err)
	}

	return &ChatModels{
		Extractor:          extractorModel,
		Phraser:            phraserModel,
		ExtractorModelName: config.Extractor.Model,
		PhraserModelName:   config.Phraser.Model,
	}, nil
}
