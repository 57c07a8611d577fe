package implementation

import (
	"context"
	"errors"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/mapper"
	"meeting-assistant-be/internal/model"
	"meeting-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BotMapper
}

func NewBotRepository(db *gorm.DB) contract.BotRepository {
	return &BotRepositoryImpl{
		db:     db,
		mapper: mapper.NewBotMapper(),
	}
}

func (r *BotRepositoryImpl) Get(ctx context.Context, teamId string) (*entity.BotRecord, error) {
	var modelBot model.SlackBot
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamId).First(&modelBot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelBot), nil
}

func (r *BotRepositoryImpl) Save(ctx context.Context, bot *entity.BotRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}},
			UpdateAll: true,
		}).
		Create(r.mapper.ToModel(bot)).Error
}
