package entity

import "time"

// BotRecord holds the per-team bot identity captured on app installation.
// The access token is the Slack Web API token used for outbound messages.
type BotRecord struct {
	TeamId      string
	BotUserId   string
	BotName     string
	AccessToken string
	InstalledBy string
	CreatedAt   time.Time
}
