package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/resume-lab/vitae/pkg/usecase"
)

func TestChatSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty message", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo(), usecase.WithLLMClient(&mockLLMClient{}))
		_, err := uc.Chat.SendMessage(ctx, "u1", "", "   ")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrEmptyMessage)).True()
	})

	t.Run("fails without an LLM client", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		_, err := uc.Chat.SendMessage(ctx, "u1", "", "Hello")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrLLMNotConfigured)).True()
	})

	t.Run("returns the LLM reply and persists both turns", func(t *testing.T) {
		repo := newMemoryRepo()
		seedProfile(t, repo, "u1")

		uc := usecase.New(repo, usecase.WithLLMClient(&mockLLMClient{}))
		reply, err := uc.Chat.SendMessage(ctx, "u1", "", "Please review my summary")
		gt.NoError(t, err).Required()
		gt.Value(t, reply.Response).Equal("Here is my advice on your resume.")
		gt.Value(t, reply.UserID).Equal("u1")
		gt.Value(t, strings.HasPrefix(reply.SessionID, "session_u1_")).Equal(true)

		waitFor(t, func() bool {
			turns, err := repo.Turn().ListRecent(ctx, "u1", reply.SessionID, 0)
			return err == nil && len(turns) == 2
		})
		turns, err := repo.Turn().ListRecent(ctx, "u1", reply.SessionID, 0)
		gt.NoError(t, err)
		gt.Value(t, turns[0].Content).Equal("Please review my summary")
		gt.Value(t, turns[0].Role.String()).Equal("human")
		gt.Value(t, turns[1].Content).Equal("Here is my advice on your resume.")
		gt.Value(t, turns[1].Role.String()).Equal("ai")
	})

	t.Run("keeps the caller's session ID", func(t *testing.T) {
		repo := newMemoryRepo()
		seedProfile(t, repo, "u1")

		uc := usecase.New(repo, usecase.WithLLMClient(&mockLLMClient{}))
		reply, err := uc.Chat.SendMessage(ctx, "u1", "session_u1_custom", "Hi")
		gt.NoError(t, err).Required()
		gt.Value(t, reply.SessionID).Equal("session_u1_custom")
	})

	t.Run("LLM failure degrades to an apologetic reply", func(t *testing.T) {
		repo := newMemoryRepo()
		seedProfile(t, repo, "u1")

		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, errors.New("model unavailable")
			},
		}
		uc := usecase.New(repo, usecase.WithLLMClient(llm))
		reply, err := uc.Chat.SendMessage(ctx, "u1", "", "Hello")
		gt.NoError(t, err).Required()
		gt.Value(t, reply.Response).Equal(usecase.ApologyReply)
	})

	t.Run("blank LLM output degrades to an apologetic reply", func(t *testing.T) {
		repo := newMemoryRepo()
		seedProfile(t, repo, "u1")

		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{Texts: []string{"  "}}, nil
					},
				}, nil
			},
		}
		uc := usecase.New(repo, usecase.WithLLMClient(llm))
		reply, err := uc.Chat.SendMessage(ctx, "u1", "", "Hello")
		gt.NoError(t, err).Required()
		gt.Value(t, reply.Response).Equal(usecase.ApologyReply)
	})

	t.Run("degraded reply is still persisted", func(t *testing.T) {
		repo := newMemoryRepo()
		seedProfile(t, repo, "u1")

		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, errors.New("model unavailable")
			},
		}
		uc := usecase.New(repo, usecase.WithLLMClient(llm))
		reply, err := uc.Chat.SendMessage(ctx, "u1", "", "Hello")
		gt.NoError(t, err).Required()

		waitFor(t, func() bool {
			turns, err := repo.Turn().ListRecent(ctx, "u1", reply.SessionID, 0)
			return err == nil && len(turns) == 2
		})
	})
}
