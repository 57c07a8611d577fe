package mapper

import (
	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/model"
)

type BotMapper struct{}

func NewBotMapper() *BotMapper {
	return &BotMapper{}
}

func (m *BotMapper) ToEntity(b *model.SlackBot) *entity.BotRecord {
	if b == nil {
		return nil
	}
	return &entity.BotRecord{
		TeamId:      b.TeamId,
		BotUserId:   b.BotUserId,
		BotName:     b.BotName,
		AccessToken: b.AccessToken,
		InstalledBy: b.InstalledBy,
		CreatedAt:   b.CreatedAt,
	}
}

func (m *BotMapper) ToModel(b *entity.BotRecord) *model.SlackBot {
	if b == nil {
		return nil
	}
	return &model.SlackBot{
		TeamId:      b.TeamId,
		BotUserId:   b.BotUserId,
		BotName:     b.BotName,
		AccessToken: b.AccessToken,
		InstalledBy: b.InstalledBy,
		CreatedAt:   b.CreatedAt,
	}
}
