// Package file provides flat-file JSON repositories, one document per
// record. Handy for single-instance deployments that should survive a
// restart without running a database.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/repository/contract"
)

type UserRepository struct {
	dir string
}

func NewUserRepository(dataDir string) (contract.UserRepository, error) {
	dir := filepath.Join(dataDir, "users")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &UserRepository{dir: dir}, nil
}

func (r *UserRepository) path(id string) string {
	return filepath.Join(r.dir, filepath.Base(id)+".json")
}

func (r *UserRepository) Get(ctx context.Context, id string) (*entity.UserRecord, error) {
	payload, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var user entity.UserRecord
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Save(ctx context.Context, user *entity.UserRecord) error {
	payload, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(r.path(user.Id), payload)
}

// writeAtomic writes via a temp file and rename so a crash mid-write never
// leaves a truncated document behind.
func writeAtomic(path string, payload []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
