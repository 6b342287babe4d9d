package model

import "time"

// Profile represents a user's account profile. The profile ID doubles as the
// user_id used across the chat and change-tracking surfaces.
type Profile struct {
	ID       string
	Name     string
	Title    string
	Email    string
	Phone    string
	Location string
	Linkedin string
	Website  string
	Avatar   string
	Bio      string

	// Preferences
	Theme         string
	Notifications bool
	AutoSave      bool

	// Subscription
	SubscriptionPlan      string
	SubscriptionExpiresAt *time.Time

	// Stats
	ResumesCreated     int
	ProfileViews       int
	DownloadsThisMonth int
	LastActive         time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
