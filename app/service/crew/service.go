package crew

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blogsmith/app/config"

	"github.com/mark3labs/mcp-go/client"
	"github.com/samber/do"
	"github.com/samber/oops"
)

// ResearchStage gathers material on a topic.
type ResearchStage interface {
	Research(ctx context.Context, topic string) (string, error)
}

// WriteStage turns a research document into a markdown draft.
type WriteStage interface {
	Write(ctx context.Context, research string) (string, error)
}

// EditStage turns a markdown draft into the structured blog.
type EditStage interface {
	Edit(ctx context.Context, draft string) (*Blog, error)
}

// Service runs the research -> write -> edit pipeline. The stages are
// strictly sequential, each one consumes its predecessor's output.
type Service struct {
	research ResearchStage
	write    WriteStage
	edit     EditStage

	mcpClient client.MCPClient
}

var _ do.Shutdownable = (*Service)(nil)

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	searchTools, mcpClient, err := initSearchTools(cfg.Search.MCP)
	if err != nil {
		return nil, fmt.Errorf("initSearchTools: %w", err)
	}

	crewClient := createClient(cfg.OpenAI.Crew)

	return &Service{
		research:  NewResearchAgent(crewClient, cfg.OpenAI.Crew.Model, searchTools),
		write:     NewWriteAgent(crewClient, cfg.OpenAI.Crew.Model),
		edit:      NewEditAgent(createClient(cfg.OpenAI.Editor), cfg.OpenAI.Editor.Model),
		mcpClient: mcpClient,
	}, nil
}

// NewWithStages wires an explicit stage chain, bypassing config and clients.
func NewWithStages(research ResearchStage, write WriteStage, edit EditStage) *Service {
	return &Service{
		research: research,
		write:    write,
		edit:     edit,
	}
}

// Kickoff produces a complete blog for the topic. Any stage failure aborts
// the run and no partial blog is returned.
func (s *Service) Kickoff(ctx context.Context, topic string) (*Blog, error) {
	start := time.Now()

	research, err := s.research.Research(ctx, topic)
	if err != nil {
		return nil, oops.Code("pipeline_stage_failed").With("stage", "research").Wrapf(err, "research stage failed")
	}

	slog.Debug("Research stage finished", "topic", topic, "duration", time.Since(start))

	draft, err := s.write.Write(ctx, research)
	if err != nil {
		return nil, oops.Code("pipeline_stage_failed").With("stage", "write").Wrapf(err, "write stage failed")
	}

	slog.Debug("Write stage finished", "topic", topic, "duration", time.Since(start))

	blog, err := s.edit.Edit(ctx, draft)
	if err != nil {
		return nil, oops.Code("pipeline_stage_failed").With("stage", "edit").Wrapf(err, "edit stage failed")
	}

	slog.Info("Blog pipeline finished",
		"topic", topic,
		"header", blog.Header,
		"duration", time.Since(start))

	return blog, nil
}

func (s *Service) Shutdown() error {
	if s.mcpClient != nil {
		return s.mcpClient.Close()
	}

	return nil
}
