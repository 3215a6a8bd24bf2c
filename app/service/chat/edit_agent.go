package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"blogsmith/app/service/crew"

	_ "embed"

	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

//go:embed edit_prompt_template.txt
var editPromptTemplate string

const editTemperature = 0.2

// EditAgent revises the current blog per the user's request. The
// collaborator must return a complete replacement blog, partial patches are
// not supported.
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

func (a *EditAgent) Revise(ctx context.Context, request, memorySnapshot string, blog *crew.Blog) (*crew.Blog, error) {
	blogJSON, err := json.Marshal(blog)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal blog: %w", err)
	}

	prompt := fillTemplate(editPromptTemplate, map[string]any{
		"request": request,
		"memory":  memorySnapshot,
		"blog":    string(blogJSON),
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

	var revised crew.Blog
	if err = json.Unmarshal([]byte(result), &revised); err != nil {
		return nil, oops.Code("schema_violation").Wrapf(err, "failed to unmarshal revised blog")
	}

	if err = crew.ValidateBlog(&revised); err != nil {
		return nil, oops.Code("schema_violation").Wrapf(err, "revised blog shape is invalid")
	}

	return &revised, nil
}
