package memory

import (
	"testing"

	"meeting-assistant-be/pkg/dialog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationRepositoryLifecycle(t *testing.T) {
	repo := NewConversationRepository()

	_, found := repo.Get("C1")
	assert.False(t, found)

	state := &dialog.State{
		ConversationId: "C1",
		UserId:         "U1",
		FlowId:         dialog.FlowAddAppointment,
		StepIndex:      2,
	}
	repo.Save(state)

	loaded, found := repo.Get("C1")
	require.True(t, found)
	assert.Same(t, state, loaded)

	repo.Delete("C1")
	_, found = repo.Get("C1")
	assert.False(t, found)
}

func TestConversationRepositorySaveReplaces(t *testing.T) {
	repo := NewConversationRepository()

	repo.Save(&dialog.State{ConversationId: "C1", StepIndex: 1})
	repo.Save(&dialog.State{ConversationId: "C1", StepIndex: 4})

	loaded, found := repo.Get("C1")
	require.True(t, found)
	assert.Equal(t, 4, loaded.StepIndex)
}
