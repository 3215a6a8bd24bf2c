package crew

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"github.com/sashabaranov/go-openai"
)

//go:embed write_prompt_template.txt
var writePromptTemplate string

const writeTemperature = 0.5

// WriteAgent turns a research document into a markdown article draft.
type WriteAgent struct {
	client *openai.Client
	model  string
}

func NewWriteAgent(client *openai.Client, model string) *WriteAgent {
	return &WriteAgent{
		client: client,
		model:  model,
	}
}

func (a *WriteAgent) Write(ctx context.Context, research string) (string, error) {
	prompt := fillTemplate(writePromptTemplate, map[string]any{
		"research": research,
	})

	ctx, cancel := context.WithTimeout(ctx, maxStageDuration)
	defer cancel()

	aiResponse, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: writeTemperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}
