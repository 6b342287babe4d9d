package model

import "time"

// SessionSummary is one row of the session listing, aggregated over the turns
// that belong to the session.
type SessionSummary struct {
	SessionID    string
	Title        string
	MessageCount int
	CreatedAt    time.Time
	LastActivity time.Time
	IsActive     bool
}

// ConversationStats summarizes a user's chat activity
type ConversationStats struct {
	TotalMessages  int
	RecentMessages int // turns within the last 7 days
	LastActivity   *time.Time
}
