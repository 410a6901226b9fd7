package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements the Client interface against the OpenAI API or
// any OpenAI-compatible endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client. The API key is read from
// OPENAI_API_KEY; baseURL is optional and overrides the hosted endpoint.
func NewOpenAIClient(model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("openai model is required")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Chat sends messages to the LLM and returns the response.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			openaiMessages[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			openaiMessages[i] = openai.AssistantMessage(msg.Content)
		default:
			openaiMessages[i] = openai.UserMessage(msg.Content)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: openaiMessages,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// ChatJSON sends messages and parses the response as JSON into the provided type.
func (c *OpenAIClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}

	jsonContent := extractJSON(content)
	if err := json.Unmarshal([]byte(jsonContent), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}

	return nil
}
