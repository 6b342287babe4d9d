package history

// Export internal functions for testing
var (
	Summarize      = summarize
	EstimateTokens = estimateTokens
)
