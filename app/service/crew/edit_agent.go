package crew

import (
	"context"
	"encoding/json"
	"fmt"

	_ "embed"

	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

//go:embed editor_prompt_template.txt
var editorPromptTemplate string

const editTemperature = 0.2

// EditAgent proofreads a markdown draft and emits the structured blog.
type EditAgent struct {
	client *openai.Client
	model  string
}

func NewEditAgent(client *openai.Client, model string) *EditAgent {
	return &EditAgent{
		client: client,
		model:  model,
	}
}

func (a *EditAgent) Edit(ctx context.Context, draft string) (*Blog, error) {
	prompt := fillTemplate(editorPromptTemplate, map[string]any{
		"draft": draft,
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
			Temperature: editTemperature,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return nil, fmt.Errorf("no chat completion found")
	}

	result := trimJSONFences(aiResponse.Choices[0].Message.Content)

	var blog Blog
	if err = json.Unmarshal([]byte(result), &blog); err != nil {
		return nil, oops.Code("schema_violation").Wrapf(err, "failed to unmarshal blog")
	}

	if err = ValidateBlog(&blog); err != nil {
		return nil, oops.Code("schema_violation").Wrapf(err, "blog shape is invalid")
	}

	return &blog, nil
}
