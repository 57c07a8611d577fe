package contract

import (
	"context"

	"meeting-assistant-be/internal/entity"
)

// UserRepository persists Slack users and their linked Google credentials.
// Get returns (nil, nil) when the user is unknown.
type UserRepository interface {
	Get(ctx context.Context, id string) (*entity.UserRecord, error)
	Save(ctx context.Context, user *entity.UserRecord) error
}
