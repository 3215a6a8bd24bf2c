package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"blogsmith/app/config"
	"blogsmith/app/service/artifact"
	"blogsmith/app/service/chat"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
)

// Server is the caller-facing HTTP surface: one chat turn per request,
// artifact download and a draft preview. Each session id maps to its own
// chat.Session.
type Server struct {
	cfg         *config.Config
	chatSvc     *chat.Service
	artifactSvc *artifact.Service

	app *fiber.App

	mu       sync.RWMutex
	sessions map[string]*chat.Session
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:         do.MustInvoke[*config.Config](di),
		chatSvc:     do.MustInvoke[*chat.Service](di),
		artifactSvc: do.MustInvoke[*artifact.Service](di),
		sessions:    make(map[string]*chat.Session),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Post("/api/sessions", s.handleCreateSession)
	app.Post("/api/sessions/:id/chat", s.handleChat)
	app.Get("/api/sessions/:id/preview", s.handlePreview)
	app.Get("/api/artifacts/:name", s.handleArtifact)

	s.app = app

	return s, nil
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", s.cfg.Server.Listen)
		return s.app.Listen(s.cfg.Server.Listen)
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.app.Shutdown()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return oops.Wrapf(err, "server stopped")
	}

	return nil
}

func (s *Server) session(id string) (*chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	return session, ok
}

func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = s.chatSvc.NewSession()
	s.mu.Unlock()

	slog.Info("Session created", "session_id", id)

	return c.JSON(fiber.Map{
		"session_id": id,
		"greeting":   chat.Greeting,
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	session, ok := s.session(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown session")
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	envelope, err := session.ProcessTurn(c.UserContext(), req.Message)
	if err != nil {
		slog.Error("Turn failed",
			"session_id", c.Params("id"),
			"error", err)

		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(envelope)
}

func (s *Server) handlePreview(c *fiber.Ctx) error {
	session, ok := s.session(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown session")
	}

	blog := session.Blog()
	if blog == nil {
		return fiber.NewError(fiber.StatusNotFound, "no blog drafted yet")
	}

	html, err := s.artifactSvc.PreviewHTML(blog)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(html)
}

func (s *Server) handleArtifact(c *fiber.Ctx) error {
	path, err := s.artifactSvc.Open(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "unknown artifact")
	}

	return c.Download(path)
}
