package explain

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const explainSystemPrompt = "You are an English teacher helping a Chinese " +
	"middle-school student. The student reordered sentence fragments " +
	"incorrectly. In two or three short sentences, explain in simple English " +
	"why the correct ordering is right, focusing on the grammar rule the " +
	"student missed. Do not praise or scold."

// OpenAIExplainer implements Explainer on the OpenAI chat API.
type OpenAIExplainer struct {
	client *openai.Client
	model  string
}

// NewOpenAIExplainer creates an explainer with the given key and
// model. An empty model falls back to gpt-4o-mini.
func NewOpenAIExplainer(apiKey, model string) (*OpenAIExplainer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIExplainer{client: openai.NewClient(apiKey), model: model}, nil
}

func (e *OpenAIExplainer) Explain(ctx context.Context, userAnswer, correctAnswer string) (string, error) {
	prompt := fmt.Sprintf("Correct sentence: %s\nStudent's ordering: %s", correctAnswer, userAnswer)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: explainSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in explanation response")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("empty explanation response")
	}
	return out, nil
}
