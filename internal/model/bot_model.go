package model

import "time"

type SlackBot struct {
	TeamId      string    `gorm:"type:varchar(64);primaryKey"`
	BotUserId   string    `gorm:"type:varchar(64)"`
	BotName     string    `gorm:"type:varchar(255)"`
	AccessToken string    `gorm:"type:text;not null"`
	InstalledBy string    `gorm:"type:varchar(64)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (SlackBot) TableName() string {
	return "slack_bots"
}
