package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/resume-lab/vitae/pkg/utils/logging"
)

func TestNew(t *testing.T) {
	t.Run("console handler writes the message", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, slog.LevelInfo, logging.FormatConsole)

		logger.Info("resume updated", "userID", "u1")
		gt.Bool(t, strings.Contains(buf.String(), "resume updated")).True()
	})

	t.Run("console handler honors the level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, slog.LevelWarn, logging.FormatConsole)

		logger.Info("should be dropped")
		gt.Value(t, buf.Len()).Equal(0)
	})

	t.Run("json handler redacts tagged secrets", func(t *testing.T) {
		type credentials struct {
			Name  string
			Token string `masq:"secret"`
		}

		var buf bytes.Buffer
		logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

		logger.Info("auth", "credentials", credentials{Name: "gemini", Token: "abc123"})
		out := buf.String()
		gt.Bool(t, strings.Contains(out, "gemini")).True()
		gt.Bool(t, strings.Contains(out, "abc123")).False()
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("From falls back to the default logger", func(t *testing.T) {
		gt.Value(t, logging.From(context.Background())).NotNil()
	})

	t.Run("With carries the logger through the context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

		ctx := logging.With(context.Background(), logger)
		logging.From(ctx).Info("carried")
		gt.Bool(t, strings.Contains(buf.String(), "carried")).True()
	})
}
