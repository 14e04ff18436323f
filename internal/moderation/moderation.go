// Package moderation wraps the external text classifier used to screen
// grievance submissions for abusive content. The adapter is deliberately
// fail-open: moderation is advisory, and an outage of the classifier must
// never block a legitimate submission.
package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"grievgo/backend/internal/config"
	"grievgo/backend/internal/metrics"
)

// Verdict is the normalized moderation result.
type Verdict struct {
	IsFlagged bool
	Reason    string
}

type Classifier interface {
	Classify(ctx context.Context, text string) Verdict
}

// ChatCompleter is the slice of the OpenAI client the classifier needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClassifier asks a chat model for a structured verdict on a text.
type OpenAIClassifier struct {
	Client ChatCompleter
	Model  string
}

// NewOpenAIClassifier builds a classifier against the OpenAI API.
// baseURL and model are optional overrides.
func NewOpenAIClassifier(apiKey, baseURL, model string) *OpenAIClassifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = config.ModerationModel
	}
	return &OpenAIClassifier{
		Client: openai.NewClientWithConfig(cfg),
		Model:  model,
	}
}

// verdictPayload matches the JSON object the moderator prompt asks for.
type verdictPayload struct {
	IsFlagged bool    `json:"isFlagged"`
	Reason    *string `json:"reason"`
}

// Classify sends the text to the classifier and normalizes the verdict.
// Any failure (transport, empty response, malformed JSON) degrades to
// "not flagged".
func (m *OpenAIClassifier) Classify(ctx context.Context, text string) Verdict {
	req := openai.ChatCompletionRequest{
		Model: m.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: config.ModerationPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := m.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return failOpen(err)
	}
	if len(resp.Choices) == 0 {
		return failOpen(errors.New("classifier returned no choices"))
	}

	var payload verdictPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return failOpen(err)
	}

	if !payload.IsFlagged {
		metrics.ModerationChecks.WithLabelValues(metrics.OutcomeOK).Inc()
		return Verdict{}
	}

	metrics.ModerationChecks.WithLabelValues(metrics.OutcomeFlagged).Inc()
	reason := ""
	if payload.Reason != nil {
		reason = *payload.Reason
	}
	return Verdict{IsFlagged: true, Reason: reason}
}

func failOpen(err error) Verdict {
	log.Printf("ERROR: Moderation check failed, failing open: %v", err)
	metrics.ModerationChecks.WithLabelValues(metrics.OutcomeError).Inc()
	return Verdict{}
}
