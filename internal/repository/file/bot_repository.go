package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/repository/contract"
)

type BotRepository struct {
	dir string
}

func NewBotRepository(dataDir string) (contract.BotRepository, error) {
	dir := filepath.Join(dataDir, "bots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &BotRepository{dir: dir}, nil
}

func (r *BotRepository) path(teamId string) string {
	return filepath.Join(r.dir, filepath.Base(teamId)+".json")
}

func (r *BotRepository) Get(ctx context.Context, teamId string) (*entity.BotRecord, error) {
	payload, err := os.ReadFile(r.path(teamId))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var bot entity.BotRecord
	if err := json.Unmarshal(payload, &bot); err != nil {
		return nil, err
	}
	return &bot, nil
}

func (r *BotRepository) Save(ctx context.Context, bot *entity.BotRecord) error {
	payload, err := json.MarshalIndent(bot, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(r.path(bot.TeamId), payload)
}
