package chat

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"github.com/sashabaranov/go-openai"
)

//go:embed answer_prompt_template.txt
var answerPromptTemplate string

const answerTemperature = 0.2

// AnswerAgent produces a direct free-text reply grounded in the
// conversation history.
type AnswerAgent struct {
	client *openai.Client
	model  string
}

func NewAnswerAgent(client *openai.Client, model string) *AnswerAgent {
	return &AnswerAgent{
		client: client,
		model:  model,
	}
}

func (a *AnswerAgent) Answer(ctx context.Context, topic, memorySnapshot string) (string, error) {
	prompt := fillTemplate(answerPromptTemplate, map[string]any{
		"topic":  topic,
		"memory": memorySnapshot,
	})

	ctx, cancel := context.WithTimeout(ctx, maxReasonDuration)
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
			Temperature: answerTemperature,
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
