package chat

import (
	"context"
	"encoding/json"
	"fmt"

	_ "embed"

	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

//go:embed router_prompt_template.txt
var routerPromptTemplate string

const routerTemperature = 0.2

// RouterAgent classifies a turn into one of the routing labels using a
// JSON-constrained completion. An out-of-enum label is a failure, never a
// silent default.
type RouterAgent struct {
	client *openai.Client
	model  string
}

func NewRouterAgent(client *openai.Client, model string) *RouterAgent {
	return &RouterAgent{
		client: client,
		model:  model,
	}
}

func (a *RouterAgent) Classify(ctx context.Context, topic, memorySnapshot string) (Route, error) {
	prompt := fillTemplate(routerPromptTemplate, map[string]any{
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
			MaxCompletionTokens: 100,
			Temperature:         routerTemperature,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	result := trimJSONFences(aiResponse.Choices[0].Message.Content)

	var response routerResponse
	if err = json.Unmarshal([]byte(result), &response); err != nil {
		return "", oops.Code("classification_failed").Wrapf(err, "failed to unmarshal router response")
	}

	return parseRoute(response.Way)
}

func parseRoute(way string) (Route, error) {
	switch Route(way) {
	case RouteAnswer, RouteWriteBlog, RouteEditBlog:
		return Route(way), nil
	default:
		return "", oops.Code("classification_failed").Errorf("unknown route label: %q", way)
	}
}
