package session

// Export internal options for testing
var WithNow = withNow
