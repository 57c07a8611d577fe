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

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Get(ctx context.Context, id string) (*entity.UserRecord, error) {
	var modelUser model.SlackUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelUser)
}

func (r *UserRepositoryImpl) Save(ctx context.Context, user *entity.UserRecord) error {
	modelUser, err := r.mapper.ToModel(user)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(modelUser).Error
}
