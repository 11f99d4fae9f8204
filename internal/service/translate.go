// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrTranslationDisabled is returned when no API key is configured.
var ErrTranslationDisabled = errors.New("machine translation is not configured")

// translateSystemPrompt keeps the model on task: translate memorial media
// captions into warm, natural Spanish and answer with JSON only.
const translateSystemPrompt = "You translate short photo and video captions " +
	"for a family memorial website from English into Spanish. Keep the tone " +
	"warm and natural. Respond with valid JSON only, in the shape " +
	`{"title":"...","alt":"...","description":"..."}` + ". Leave a field " +
	"empty when the input field is empty."

// MediaText is the translatable text of one media record.
type MediaText struct {
	Title       string `json:"title"`
	Alt         string `json:"alt"`
	Description string `json:"description"`
}

// TranslateService machine-translates media text into Spanish via the
// OpenAI API. Disabled (nil client) when no API key is configured.
type TranslateService struct {
	client *openai.Client
	model  string
}

// NewTranslateService creates a translation service. Returns a disabled
// service when apiKey is empty.
func NewTranslateService(apiKey, model string) *TranslateService {
	s := &TranslateService{model: model}
	if apiKey != "" {
		client := openai.NewClient(option.WithAPIKey(apiKey))
		s.client = &client
	}
	return s
}

// Enabled reports whether translation requests can be served.
func (s *TranslateService) Enabled() bool {
	return s.client != nil
}

// TranslateToSpanish translates the non-empty fields of text into Spanish.
func (s *TranslateService) TranslateToSpanish(ctx context.Context, text MediaText) (MediaText, error) {
	if s.client == nil {
		return MediaText{}, ErrTranslationDisabled
	}

	input, err := json.Marshal(text)
	if err != nil {
		return MediaText{}, err
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(translateSystemPrompt),
			openai.UserMessage(string(input)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return MediaText{}, fmt.Errorf("translation request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return MediaText{}, fmt.Errorf("translation: no choices returned")
	}

	var out MediaText
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	// Some models wrap JSON in a code fence despite instructions.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return MediaText{}, fmt.Errorf("translation: decoding response: %w", err)
	}

	return out, nil
}
