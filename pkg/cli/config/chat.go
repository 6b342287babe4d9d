package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/resume-lab/vitae/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Chat holds tuning configuration for the chat pipeline. Values come from an
// optional TOML policy file, with individual flags taking precedence.
type Chat struct {
	configPath     string
	sessionTimeout time.Duration
	tokenCeiling   int
	contextTurns   int
	llmTimeout     time.Duration
}

// chatPolicy is the TOML shape of the chat tuning file
type chatPolicy struct {
	SessionTimeout string `toml:"session_timeout"`
	TokenCeiling   int    `toml:"token_ceiling"`
	ContextTurns   int    `toml:"context_turns"`
	LLMTimeout     string `toml:"llm_timeout"`
}

// Flags returns CLI flags for chat tuning
func (c *Chat) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "chat-config",
			Usage:       "Path to a TOML file with chat tuning values",
			Sources:     cli.EnvVars("VITAE_CHAT_CONFIG"),
			Destination: &c.configPath,
		},
		&cli.DurationFlag{
			Name:        "session-timeout",
			Usage:       "Idle duration after which a new chat session starts",
			Sources:     cli.EnvVars("VITAE_SESSION_TIMEOUT"),
			Destination: &c.sessionTimeout,
		},
		&cli.IntFlag{
			Name:        "token-ceiling",
			Usage:       "Estimated token budget for conversation context",
			Sources:     cli.EnvVars("VITAE_TOKEN_CEILING"),
			Destination: &c.tokenCeiling,
		},
		&cli.IntFlag{
			Name:        "context-turns",
			Usage:       "Number of recent turns handed to the LLM",
			Sources:     cli.EnvVars("VITAE_CONTEXT_TURNS"),
			Destination: &c.contextTurns,
		},
		&cli.DurationFlag{
			Name:        "llm-timeout",
			Usage:       "Per-request deadline for LLM calls (0 means no deadline)",
			Sources:     cli.EnvVars("VITAE_LLM_TIMEOUT"),
			Destination: &c.llmTimeout,
		},
	}
}

// Configure resolves the chat tuning into usecase options. Unset values fall
// through to the usecase defaults.
func (c *Chat) Configure() ([]usecase.Option, error) {
	if c.configPath != "" {
		if err := c.loadPolicy(); err != nil {
			return nil, err
		}
	}

	var opts []usecase.Option
	if c.sessionTimeout > 0 {
		opts = append(opts, usecase.WithSessionTimeout(c.sessionTimeout))
	}
	if c.tokenCeiling > 0 {
		opts = append(opts, usecase.WithTokenCeiling(c.tokenCeiling))
	}
	if c.contextTurns > 0 {
		opts = append(opts, usecase.WithContextTurns(c.contextTurns))
	}
	if c.llmTimeout > 0 {
		opts = append(opts, usecase.WithLLMTimeout(c.llmTimeout))
	}
	return opts, nil
}

// loadPolicy reads the TOML policy file. Flag-provided values win over the
// file's values.
func (c *Chat) loadPolicy() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return goerr.Wrap(ErrConfigNotFound, "chat config does not exist", goerr.V("path", c.configPath))
		}
		return goerr.Wrap(err, "failed to read chat config", goerr.V("path", c.configPath))
	}

	var policy chatPolicy
	if err := toml.Unmarshal(data, &policy); err != nil {
		return goerr.Wrap(ErrInvalidConfig, "failed to parse chat config", goerr.V("path", c.configPath), goerr.V("error", err.Error()))
	}

	if c.sessionTimeout == 0 && policy.SessionTimeout != "" {
		d, err := time.ParseDuration(policy.SessionTimeout)
		if err != nil {
			return goerr.Wrap(ErrInvalidConfig, "invalid session_timeout", goerr.V("value", policy.SessionTimeout))
		}
		c.sessionTimeout = d
	}
	if c.tokenCeiling == 0 {
		if policy.TokenCeiling < 0 {
			return goerr.Wrap(ErrInvalidConfig, "token_ceiling must not be negative", goerr.V("value", policy.TokenCeiling))
		}
		c.tokenCeiling = policy.TokenCeiling
	}
	if c.contextTurns == 0 {
		if policy.ContextTurns < 0 {
			return goerr.Wrap(ErrInvalidConfig, "context_turns must not be negative", goerr.V("value", policy.ContextTurns))
		}
		c.contextTurns = policy.ContextTurns
	}
	if c.llmTimeout == 0 && policy.LLMTimeout != "" {
		d, err := time.ParseDuration(policy.LLMTimeout)
		if err != nil {
			return goerr.Wrap(ErrInvalidConfig, "invalid llm_timeout", goerr.V("value", policy.LLMTimeout))
		}
		c.llmTimeout = d
	}
	return nil
}
