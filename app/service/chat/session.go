package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"blogsmith/app/service/crew"
	"blogsmith/app/service/memory"
)

type classifier interface {
	Classify(ctx context.Context, topic, memorySnapshot string) (Route, error)
}

type answerer interface {
	Answer(ctx context.Context, topic, memorySnapshot string) (string, error)
}

type reviser interface {
	Revise(ctx context.Context, request, memorySnapshot string, blog *crew.Blog) (*crew.Blog, error)
}

type pipeline interface {
	Kickoff(ctx context.Context, topic string) (*crew.Blog, error)
}

type renderer interface {
	Render(blog *crew.Blog) (string, error)
}

// Session owns one conversation: its memory and the current blog. Turns are
// processed one at a time to completion; handlers never touch session state,
// the session commits their results after they return.
type Session struct {
	mu sync.Mutex

	memoryBuf *memory.Buffer
	blog      *crew.Blog

	classifier classifier
	answerer   answerer
	reviser    reviser
	pipeline   pipeline
	renderer   renderer
}

func newSession(classifier classifier, answerer answerer, reviser reviser, pipeline pipeline, renderer renderer) *Session {
	return &Session{
		memoryBuf:  memory.NewBuffer(),
		classifier: classifier,
		answerer:   answerer,
		reviser:    reviser,
		pipeline:   pipeline,
		renderer:   renderer,
	}
}

// Blog returns the current blog, nil until the first successful draft.
func (s *Session) Blog() *crew.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.blog
}

// Memory exposes the session's conversation log.
func (s *Session) Memory() *memory.Buffer {
	return s.memoryBuf
}

// ProcessTurn runs one classify -> guard -> dispatch -> record cycle.
func (s *Session) ProcessTurn(ctx context.Context, text string) (*Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	raw, err := s.classifier.Classify(ctx, text, s.memoryBuf.Format())
	if err != nil {
		return nil, fmt.Errorf("classifier.Classify: %w", err)
	}

	blankInput := strings.TrimSpace(text) == ""
	route, canned := resolveRoute(raw, blankInput, s.blog != nil)

	slog.Debug("Routed turn",
		"raw", raw,
		"route", route,
		"guarded", canned != "")

	if canned != "" {
		s.memoryBuf.Append(text, canned)
		return &Envelope{Response: canned}, nil
	}

	var envelope *Envelope

	switch route {
	case RouteAnswer:
		envelope, err = s.runAnswer(ctx, text)
	case RouteWriteBlog:
		envelope, err = s.runWriteBlog(ctx, text)
	case RouteEditBlog:
		envelope, err = s.runEditBlog(ctx, text)
	default:
		err = fmt.Errorf("unhandled route: %q", route)
	}

	if err != nil {
		return nil, err
	}

	slog.Info("Processed turn",
		"route", route,
		"artifact", envelope.ArtifactName,
		"duration", time.Since(start))

	return envelope, nil
}

func (s *Session) runAnswer(ctx context.Context, text string) (*Envelope, error) {
	response, err := s.answerer.Answer(ctx, text, s.memoryBuf.Format())
	if err != nil {
		return nil, fmt.Errorf("answerer.Answer: %w", err)
	}

	s.memoryBuf.Append(text, response)

	return &Envelope{Response: response}, nil
}

func (s *Session) runWriteBlog(ctx context.Context, text string) (*Envelope, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("blank topic reached the blog pipeline")
	}

	blog, err := s.pipeline.Kickoff(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("pipeline.Kickoff: %w", err)
	}

	return s.commitBlog(text, blog, msgBlogReady)
}

func (s *Session) runEditBlog(ctx context.Context, text string) (*Envelope, error) {
	blog, err := s.reviser.Revise(ctx, text, s.memoryBuf.Format(), s.blog)
	if err != nil {
		return nil, fmt.Errorf("reviser.Revise: %w", err)
	}

	return s.commitBlog(text, blog, msgBlogRevised)
}

// commitBlog renders the artifact first: a render failure aborts the turn
// before any state changes, so the prior blog stays current.
func (s *Session) commitBlog(text string, blog *crew.Blog, response string) (*Envelope, error) {
	artifactName, err := s.renderer.Render(blog)
	if err != nil {
		return nil, fmt.Errorf("renderer.Render: %w", err)
	}

	blogJSON, err := json.Marshal(blog)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal blog: %w", err)
	}

	s.memoryBuf.Append(text, string(blogJSON))
	s.blog = blog

	return &Envelope{
		Response:     response,
		ArtifactName: artifactName,
	}, nil
}
