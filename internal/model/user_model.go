package model

import (
	"time"

	"gorm.io/datatypes"
)

type SlackUser struct {
	Id          string `gorm:"type:varchar(64);primaryKey"`
	TeamId      string `gorm:"type:varchar(64);index"`
	FullName    string `gorm:"type:varchar(255)"`
	Name        string `gorm:"type:varchar(255)"`
	Email       string `gorm:"type:varchar(255);index"`
	Timezone    string `gorm:"type:varchar(64)"`
	Credentials datatypes.JSON
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (SlackUser) TableName() string {
	return "slack_users"
}
