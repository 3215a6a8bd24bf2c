package crew

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "embed"

	"github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/tools"
)

//go:embed research_prompt_template.txt
var researchPromptTemplate string

const (
	researchTemperature = 0.5
	maxStageDuration    = 3 * time.Minute
)

// ResearchAgent produces a research document for a topic, optionally
// consulting external search tools first.
type ResearchAgent struct {
	client *openai.Client
	model  string
	tools  []tools.Tool
}

func NewResearchAgent(client *openai.Client, model string, searchTools []tools.Tool) *ResearchAgent {
	return &ResearchAgent{
		client: client,
		model:  model,
		tools:  searchTools,
	}
}

func (a *ResearchAgent) Research(ctx context.Context, topic string) (string, error) {
	prompt := fillTemplate(researchPromptTemplate, map[string]any{
		"topic":          topic,
		"search_results": a.collectSearchResults(ctx, topic),
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
			Temperature: researchTemperature,
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

// collectSearchResults queries every configured tool with the topic. Tool
// failures degrade the research context instead of failing the stage.
func (a *ResearchAgent) collectSearchResults(ctx context.Context, topic string) string {
	if len(a.tools) == 0 {
		return "No search results available"
	}

	var builder strings.Builder

	for _, tool := range a.tools {
		result, err := tool.Call(ctx, topic)
		if err != nil {
			slog.Warn("Search tool failed",
				"tool", tool.Name(),
				"error", err)
			continue
		}

		builder.WriteString(fmt.Sprintf("## %s\n%s\n\n", tool.Name(), result))
	}

	if builder.Len() == 0 {
		return "No search results available"
	}

	return builder.String()
}
