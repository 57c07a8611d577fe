package file

import (
	"context"
	"testing"
	"time"

	"meeting-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryRoundtrip(t *testing.T) {
	repo, err := NewUserRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	missing, err := repo.Get(ctx, "U404")
	require.NoError(t, err)
	assert.Nil(t, missing)

	expiry := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	user := &entity.UserRecord{
		Id:       "U1",
		TeamId:   "T1",
		Name:     "alice",
		FullName: "Alice Anderson",
		Email:    "alice@example.com",
		Timezone: "Europe/Copenhagen",
		Credentials: &entity.GoogleCredentials{
			AccessToken:  "ya29.test",
			RefreshToken: "1//refresh",
			Expiry:       &expiry,
		},
		CreatedAt: time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, user))

	loaded, err := repo.Get(ctx, "U1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Alice Anderson", loaded.FullName)
	assert.True(t, loaded.HasCredentials())
	require.NotNil(t, loaded.Credentials.Expiry)
	assert.True(t, loaded.Credentials.Expiry.Equal(expiry))
}

func TestUserRepositorySaveOverwrites(t *testing.T) {
	repo, err := NewUserRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.UserRecord{Id: "U1", Name: "before"}))
	require.NoError(t, repo.Save(ctx, &entity.UserRecord{Id: "U1", Name: "after"}))

	loaded, err := repo.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "after", loaded.Name)
}

func TestUserRepositoryIgnoresPathTraversal(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewUserRepository(dir)
	require.NoError(t, err)
	ctx := context.Background()

	// Hostile ids collapse to their base name and stay inside the store.
	require.NoError(t, repo.Save(ctx, &entity.UserRecord{Id: "../../etc/passwd", Name: "sneaky"}))

	loaded, err := repo.Get(ctx, "passwd")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "sneaky", loaded.Name)
}

func TestBotRepositoryRoundtrip(t *testing.T) {
	repo, err := NewBotRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	missing, err := repo.Get(ctx, "T404")
	require.NoError(t, err)
	assert.Nil(t, missing)

	bot := &entity.BotRecord{
		TeamId:      "T1",
		BotUserId:   "B1",
		BotName:     "meeting-assistant",
		AccessToken: "xoxb-test",
		InstalledBy: "U1",
		CreatedAt:   time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, bot))

	loaded, err := repo.Get(ctx, "T1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "xoxb-test", loaded.AccessToken)
	assert.Equal(t, "U1", loaded.InstalledBy)
}
