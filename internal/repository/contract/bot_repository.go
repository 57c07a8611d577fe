package contract

import (
	"context"

	"meeting-assistant-be/internal/entity"
)

// BotRepository persists per-workspace bot installations, keyed by the
// Slack team id. Get returns (nil, nil) when the workspace never installed
// the app.
type BotRepository interface {
	Get(ctx context.Context, teamId string) (*entity.BotRecord, error)
	Save(ctx context.Context, bot *entity.BotRecord) error
}
