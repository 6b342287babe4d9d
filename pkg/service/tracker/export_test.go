package tracker

// Export internal functions and options for testing
var (
	UnifiedDiff = unifiedDiff
	ValueDiff   = valueDiff
	WithNow     = withNow
)
