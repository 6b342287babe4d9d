package usecase

import (
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/service/history"
	"github.com/resume-lab/vitae/pkg/service/session"
	"github.com/resume-lab/vitae/pkg/service/tracker"
)

// DefaultContextTurns is the number of recent turns handed to the LLM
const DefaultContextTurns = 20

type UseCases struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient

	sessionTimeout time.Duration
	tokenCeiling   int
	contextTurns   int
	llmTimeout     time.Duration

	Chat    *ChatUseCase
	Session *SessionUseCase
	Change  *ChangeUseCase
	Profile *ProfileUseCase
	Resume  *ResumeUseCase
}

type Option func(*UseCases)

// WithLLMClient sets the LLM client used by the chat orchestrator. Without
// one, chat requests fail with ErrLLMNotConfigured.
func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

// WithSessionTimeout overrides the session reuse window
func WithSessionTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.sessionTimeout = d
	}
}

// WithTokenCeiling overrides the context compression threshold
func WithTokenCeiling(n int) Option {
	return func(uc *UseCases) {
		uc.tokenCeiling = n
	}
}

// WithContextTurns overrides how many recent turns feed the LLM context
func WithContextTurns(n int) Option {
	return func(uc *UseCases) {
		uc.contextTurns = n
	}
}

// WithLLMTimeout bounds a single agent execution. Zero means no timeout.
func WithLLMTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.llmTimeout = d
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:           repo,
		sessionTimeout: session.DefaultTimeout,
		tokenCeiling:   history.DefaultTokenCeiling,
		contextTurns:   DefaultContextTurns,
	}

	for _, opt := range opts {
		opt(uc)
	}

	sessions := session.New(repo.Turn(), session.WithTimeout(uc.sessionTimeout))
	turns := history.New(repo.Turn(), history.WithTokenCeiling(uc.tokenCeiling))
	changes := tracker.New(repo.Change())

	uc.Chat = &ChatUseCase{
		repo:         repo,
		llmClient:    uc.llmClient,
		sessions:     sessions,
		history:      turns,
		tracker:      changes,
		contextTurns: uc.contextTurns,
		llmTimeout:   uc.llmTimeout,
	}
	uc.Session = &SessionUseCase{sessions: sessions, history: turns}
	uc.Change = &ChangeUseCase{tracker: changes}
	uc.Profile = &ProfileUseCase{repo: repo}
	uc.Resume = &ResumeUseCase{repo: repo}

	return uc
}
