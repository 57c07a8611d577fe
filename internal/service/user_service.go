package service

import (
	"context"
	"strings"
	"time"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/internal/repository/contract"
	"meeting-assistant-be/pkg/slack"
)

type IUserService interface {
	// Resolve returns the cached user record, provisioning one on first
	// contact. Resolving the same user twice never creates a second record.
	Resolve(ctx context.Context, userId, teamId string) (*entity.UserRecord, error)
	PersistCredential(user *entity.UserRecord, creds *entity.GoogleCredentials) error
}

type userService struct {
	users  contract.UserRepository
	bots   contract.BotRepository
	client *slack.Client
	log    logger.ILogger
}

func NewUserService(
	users contract.UserRepository,
	bots contract.BotRepository,
	client *slack.Client,
	log logger.ILogger,
) IUserService {
	return &userService{
		users:  users,
		bots:   bots,
		client: client,
		log:    log,
	}
}

func (s *userService) Resolve(ctx context.Context, userId, teamId string) (*entity.UserRecord, error) {
	// Transport user ids may carry a ":team" suffix.
	id := userId
	if i := strings.IndexByte(id, ':'); i >= 0 {
		id = id[:i]
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &entity.UserRecord{
		Id:        id,
		TeamId:    teamId,
		Name:      id,
		CreatedAt: time.Now(),
	}

	if teamId != "" {
		if bot, err := s.bots.Get(ctx, teamId); err == nil && bot != nil {
			profile, err := s.client.UserInfo(ctx, bot.AccessToken, id)
			if err != nil {
				s.log.Warn("UserService", "Profile enrichment failed", map[string]interface{}{
					"user_id": id, "error": err.Error(),
				})
			} else {
				user.Name = profile.Name
				user.FullName = profile.RealName
				user.Email = profile.Email
				user.Timezone = profile.Timezone
			}
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("UserService", "Provisioned user", map[string]interface{}{
		"user_id": id, "team_id": teamId,
	})
	return user, nil
}

func (s *userService) PersistCredential(user *entity.UserRecord, creds *entity.GoogleCredentials) error {
	user.Credentials = creds
	now := time.Now()
	user.UpdatedAt = &now
	return s.users.Save(context.Background(), user)
}
