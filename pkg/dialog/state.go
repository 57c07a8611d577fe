package dialog

import (
	"time"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/pkg/recognizer"
)

// Flow identifiers. One flow is active per conversation at a time.
const (
	FlowGreeting         = "GreetingFlow"
	FlowHelp             = "HelpFlow"
	FlowAppInstalled     = "AppInstalledFlow"
	FlowGoogleLogin      = "GoogleLoginFlow"
	FlowFindAppointments = "FindAppointmentsFlow"
	FlowAddAppointment   = "AddAppointmentFlow"
	FlowRoomSelection    = "RoomSelectionFlow"
)

// ResumeTarget records where to re-enter a parent flow once a delegated
// sub-flow completes.
type ResumeTarget struct {
	FlowId    string `json:"flow_id"`
	StepIndex int    `json:"step_index"`
}

// State is the per-conversation dialog position plus the flow-specific
// draft being accumulated. Exactly one of Meeting/Search is non-nil for the
// flows that use a draft.
type State struct {
	ConversationId string `json:"conversation_id"`
	UserId         string `json:"user_id"`
	TeamId         string `json:"team_id"`

	FlowId    string `json:"flow_id"`
	StepIndex int    `json:"step_index"`

	Meeting *entity.MeetingDraft `json:"meeting,omitempty"`
	Search  *entity.SearchParams `json:"search,omitempty"`

	// Room-selection sub-flow scratch space.
	Office    string               `json:"office,omitempty"`
	RoomOffer []entity.MeetingRoom `json:"room_offer,omitempty"`

	Resume *ResumeTarget `json:"resume,omitempty"`

	// Entities captured at dispatch, replayed into the parent flow after a
	// credential-acquisition detour.
	Pending []recognizer.Entity `json:"pending,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the conversation-state persistence the engine runs against.
// Implementations live in internal/repository (go-cache, redis).
type Store interface {
	Get(conversationId string) (*State, bool)
	Save(state *State)
	Delete(conversationId string)
}
