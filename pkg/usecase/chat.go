package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/resume-lab/vitae/pkg/agent/tool"
	"github.com/resume-lab/vitae/pkg/agent/tool/core"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/service/history"
	"github.com/resume-lab/vitae/pkg/service/session"
	"github.com/resume-lab/vitae/pkg/service/tracker"
	"github.com/resume-lab/vitae/pkg/utils/async"
	"github.com/resume-lab/vitae/pkg/utils/logging"
)

//go:embed prompt/chat_system.md
var chatSystemPromptTmpl string

var chatSystemPrompt = template.Must(template.New("chat_system").Parse(chatSystemPromptTmpl))

// apologyReply is returned when the LLM or a tool fails; the user sees a
// degraded answer instead of an error.
const apologyReply = "I'm sorry, I ran into a problem handling that request. Please try again in a moment."

// toolRoundLimit caps the agent at one round of tool calls followed by the
// forced final text reply.
const toolRoundLimit = 2

// ChatUseCase orchestrates one user message: resolve the session, build the
// compressed context, run the LLM with the resume tools, and persist both
// turns in the background.
type ChatUseCase struct {
	repo         interfaces.Repository
	llmClient    gollem.LLMClient
	sessions     *session.Service
	history      *history.Service
	tracker      *tracker.Service
	contextTurns int
	llmTimeout   time.Duration
}

// ChatReply is the user-visible outcome of one chat message
type ChatReply struct {
	Response  string
	UserID    string
	SessionID string
}

// SendMessage processes one chat message. Validation failures are returned as
// errors; LLM and tool failures degrade to an apologetic reply.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, sessionID, message string) (*ChatReply, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(message) == "" {
		return nil, goerr.Wrap(ErrEmptyMessage, "rejecting chat message",
			goerr.V("userID", userID),
		)
	}
	if uc.llmClient == nil {
		return nil, goerr.Wrap(ErrLLMNotConfigured, "cannot process chat message")
	}

	if sessionID == "" {
		sessionID = uc.sessions.GetOrCreate(ctx, userID)
	}

	contextTurns := uc.history.Context(ctx, userID, sessionID, uc.contextTurns)
	systemPrompt := uc.buildSystemPrompt(ctx, userID, contextTurns)

	ctx = tool.WithUpdate(ctx, func(ctx context.Context, message string) {
		logger.Info("tool progress", "message", message, "userID", userID, "sessionID", sessionID)
	})

	tools := core.New(uc.repo, uc.tracker, userID, sessionID)
	agent := gollem.New(uc.llmClient,
		gollem.WithSystemPrompt(systemPrompt),
		gollem.WithTools(tools...),
		gollem.WithLoopLimit(toolRoundLimit),
		gollem.WithToolMiddleware(
			func(next gollem.ToolHandler) gollem.ToolHandler {
				return func(ctx context.Context, req *gollem.ToolExecRequest) (*gollem.ToolExecResponse, error) {
					logger.Info("executing tool", "tool", req.Tool.Name, "userID", userID)
					resp, err := next(ctx, req)
					if resp != nil && resp.Error != nil {
						logger.Error("tool execution failed", "tool", req.Tool.Name, "error", resp.Error.Error())
					}
					return resp, err
				}
			},
		),
	)

	llmCtx := ctx
	if uc.llmTimeout > 0 {
		var cancel context.CancelFunc
		llmCtx, cancel = context.WithTimeout(ctx, uc.llmTimeout)
		defer cancel()
	}

	reply := apologyReply
	resp, err := agent.Execute(llmCtx, gollem.Text(message))
	if err != nil {
		logger.Error("agent execution failed",
			"userID", userID,
			"sessionID", sessionID,
			"error", err.Error(),
		)
	} else if text := strings.TrimSpace(strings.Join(resp.Texts, "\n")); text != "" {
		reply = text
	}

	uc.persistTurns(ctx, userID, sessionID, message, reply)

	return &ChatReply{
		Response:  reply,
		UserID:    userID,
		SessionID: sessionID,
	}, nil
}

// persistTurns appends the human and AI turns off the request path. The reply
// is never blocked on persistence; a failed append is logged inside the
// history service and the turn is lost.
func (uc *ChatUseCase) persistTurns(ctx context.Context, userID, sessionID, message, reply string) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		uc.history.Append(ctx, userID, sessionID, types.TurnRoleHuman, message, nil)
		uc.history.Append(ctx, userID, sessionID, types.TurnRoleAI, reply, nil)
		return nil
	})
}

// chatPromptProfile is the profile block for the system prompt template
type chatPromptProfile struct {
	Exists   bool
	Name     string
	Title    string
	Location string
	Plan     string
}

// chatPromptResume is the resume outline block for the system prompt template
type chatPromptResume struct {
	Exists          bool
	HasSummary      bool
	ExperienceCount int
	EducationCount  int
	SkillCount      int
}

// chatPromptTurn is one rendered conversation turn
type chatPromptTurn struct {
	Role    string
	Content string
}

type chatPromptData struct {
	Profile chatPromptProfile
	Resume  chatPromptResume
	Turns   []chatPromptTurn
}

// buildSystemPrompt renders the system instruction with a token-light outline
// of the user's profile and resume plus the recent conversation. Storage
// failures leave the corresponding block empty; the prompt still renders.
func (uc *ChatUseCase) buildSystemPrompt(ctx context.Context, userID string, turns []*model.Turn) string {
	logger := logging.From(ctx)
	data := chatPromptData{}

	if profile, err := uc.repo.Profile().Get(ctx, userID); err != nil {
		logger.Error("failed to load profile for prompt", "userID", userID, "error", err.Error())
	} else if profile != nil {
		data.Profile = chatPromptProfile{
			Exists:   true,
			Name:     profile.Name,
			Title:    profile.Title,
			Location: profile.Location,
			Plan:     profile.SubscriptionPlan,
		}
	}

	if resume, err := uc.repo.Resume().GetLatestByProfile(ctx, userID); err != nil {
		logger.Error("failed to load resume for prompt", "userID", userID, "error", err.Error())
	} else if resume != nil {
		data.Resume = chatPromptResume{
			Exists:          true,
			HasSummary:      resume.Summary != "",
			ExperienceCount: len(resume.Experience),
			EducationCount:  len(resume.Education),
			SkillCount:      len(resume.Skills),
		}
	}

	for _, turn := range turns {
		data.Turns = append(data.Turns, chatPromptTurn{
			Role:    turn.Role.String(),
			Content: turn.Content,
		})
	}

	var buf bytes.Buffer
	if err := chatSystemPrompt.Execute(&buf, data); err != nil {
		logger.Error("failed to render system prompt", "error", err.Error())
		return "You are a professional resume assistant. Use the provided tools to read and modify the user's resume."
	}
	return buf.String()
}
