package chat

import (
	"blogsmith/app/config"
	"blogsmith/app/service/artifact"
	"blogsmith/app/service/crew"

	"github.com/samber/do"
)

// Service builds sessions wired to the real collaborators. Sessions are
// independent of each other and never share memory or blog state.
type Service struct {
	routerAgent *RouterAgent
	answerAgent *AnswerAgent
	editAgent   *EditAgent
	crewSvc     *crew.Service
	artifactSvc *artifact.Service
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		routerAgent: NewRouterAgent(createClient(cfg.OpenAI.Router), cfg.OpenAI.Router.Model),
		answerAgent: NewAnswerAgent(createClient(cfg.OpenAI.Answer), cfg.OpenAI.Answer.Model),
		editAgent:   NewEditAgent(createClient(cfg.OpenAI.Editor), cfg.OpenAI.Editor.Model),
		crewSvc:     do.MustInvoke[*crew.Service](di),
		artifactSvc: do.MustInvoke[*artifact.Service](di),
	}, nil
}

func (s *Service) NewSession() *Session {
	return newSession(s.routerAgent, s.answerAgent, s.editAgent, s.crewSvc, s.artifactSvc)
}
