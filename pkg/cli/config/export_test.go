package config

import "time"

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}

// NewChatForTest creates a Chat config for testing purposes
func NewChatForTest(configPath string, sessionTimeout time.Duration, tokenCeiling, contextTurns int, llmTimeout time.Duration) *Chat {
	return &Chat{
		configPath:     configPath,
		sessionTimeout: sessionTimeout,
		tokenCeiling:   tokenCeiling,
		contextTurns:   contextTurns,
		llmTimeout:     llmTimeout,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// SessionTimeout exposes the resolved session timeout for tests
func (c *Chat) SessionTimeout() time.Duration { return c.sessionTimeout }

// TokenCeiling exposes the resolved token ceiling for tests
func (c *Chat) TokenCeiling() int { return c.tokenCeiling }

// ContextTurns exposes the resolved context turn count for tests
func (c *Chat) ContextTurns() int { return c.contextTurns }

// LLMTimeout exposes the resolved LLM timeout for tests
func (c *Chat) LLMTimeout() time.Duration { return c.llmTimeout }
