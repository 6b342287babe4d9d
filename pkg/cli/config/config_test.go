package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/resume-lab/vitae/pkg/cli/config"
)

func TestGemini_Configure(t *testing.T) {
	t.Run("returns nil client when project ID is empty", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "us-central1")
		client, err := cfg.Configure(t.Context())
		gt.NoError(t, err)
		gt.Value(t, client).Nil()
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "")
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(2)
	})
}

func TestRepository_Configure(t *testing.T) {
	t.Run("memory backend needs no project", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("memory", "", "")
		repo, err := cfg.Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, repo).NotNil()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore backend requires a project ID", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("firestore", "", "")
		_, err := cfg.Configure(t.Context())
		gt.Error(t, err)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("cassandra", "", "")
		_, err := cfg.Configure(t.Context())
		gt.Error(t, err)
	})
}

func TestChat_Configure(t *testing.T) {
	writePolicy := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "chat.toml")
		gt.NoError(t, os.WriteFile(path, []byte(body), 0644)).Required()
		return path
	}

	t.Run("no config yields no options", func(t *testing.T) {
		cfg := config.NewChatForTest("", 0, 0, 0, 0)
		opts, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Value(t, len(opts)).Equal(0)
	})

	t.Run("loads values from the policy file", func(t *testing.T) {
		path := writePolicy(t, `
session_timeout = "45m"
token_ceiling = 6000
context_turns = 12
llm_timeout = "30s"
`)
		cfg := config.NewChatForTest(path, 0, 0, 0, 0)
		opts, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, len(opts)).Equal(4)
		gt.Value(t, cfg.SessionTimeout()).Equal(45 * time.Minute)
		gt.Number(t, cfg.TokenCeiling()).Equal(6000)
		gt.Number(t, cfg.ContextTurns()).Equal(12)
		gt.Value(t, cfg.LLMTimeout()).Equal(30 * time.Second)
	})

	t.Run("flags win over the policy file", func(t *testing.T) {
		path := writePolicy(t, `
session_timeout = "45m"
context_turns = 12
`)
		cfg := config.NewChatForTest(path, 10*time.Minute, 0, 0, 0)
		_, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.SessionTimeout()).Equal(10 * time.Minute)
		gt.Number(t, cfg.ContextTurns()).Equal(12)
	})

	t.Run("missing file is reported", func(t *testing.T) {
		cfg := config.NewChatForTest("/no/such/chat.toml", 0, 0, 0, 0)
		_, err := cfg.Configure()
		gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
	})

	t.Run("bad duration is rejected", func(t *testing.T) {
		path := writePolicy(t, `session_timeout = "soon"`)
		cfg := config.NewChatForTest(path, 0, 0, 0, 0)
		_, err := cfg.Configure()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("negative token ceiling is rejected", func(t *testing.T) {
		path := writePolicy(t, `token_ceiling = -1`)
		cfg := config.NewChatForTest(path, 0, 0, 0, 0)
		_, err := cfg.Configure()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})
}

func TestLogger_Configure(t *testing.T) {
	t.Run("valid settings", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "json", "stderr")
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		cfg := config.NewLoggerForTest("chatty", "console", "stdout")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format is rejected", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "stdout")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("writes to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vitae.log")
		cfg := config.NewLoggerForTest("debug", "json", path)
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()

		_, err = os.Stat(path)
		gt.NoError(t, err)
	})
}
