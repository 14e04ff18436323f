package config

import "time"

const (
	// Sessions
	SessionTTL       = 24 * time.Hour
	SessionCookie    = "grievgo_session"
	SessionKeyPrefix = "session:"

	// Credentials
	BcryptCost = 10

	// Moderation
	ModerationModel  = "gpt-4o-mini"
	ModerationPrompt = "You are a content moderator. Check the following text for foul, abusive, " +
		"or hate language. Return a JSON object with { \"isFlagged\": boolean, \"reason\": string | null }."
)
