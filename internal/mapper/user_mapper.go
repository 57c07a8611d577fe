package mapper

import (
	"encoding/json"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.SlackUser) (*entity.UserRecord, error) {
	if u == nil {
		return nil, nil
	}
	record := &entity.UserRecord{
		Id:        u.Id,
		TeamId:    u.TeamId,
		FullName:  u.FullName,
		Name:      u.Name,
		Email:     u.Email,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
	if !u.UpdatedAt.IsZero() {
		updated := u.UpdatedAt
		record.UpdatedAt = &updated
	}
	if len(u.Credentials) > 0 {
		var creds entity.GoogleCredentials
		if err := json.Unmarshal(u.Credentials, &creds); err != nil {
			return nil, err
		}
		record.Credentials = &creds
	}
	return record, nil
}

func (m *UserMapper) ToModel(u *entity.UserRecord) (*model.SlackUser, error) {
	if u == nil {
		return nil, nil
	}
	modelUser := &model.SlackUser{
		Id:        u.Id,
		TeamId:    u.TeamId,
		FullName:  u.FullName,
		Name:      u.Name,
		Email:     u.Email,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
	if u.UpdatedAt != nil {
		modelUser.UpdatedAt = *u.UpdatedAt
	}
	if u.Credentials != nil {
		payload, err := json.Marshal(u.Credentials)
		if err != nil {
			return nil, err
		}
		modelUser.Credentials = payload
	}
	return modelUser, nil
}
