// Package flows holds the declarative flow definitions the dialog engine
// runs: greeting, app-installed, Google login, find-appointments and the
// add-appointment flow with its room-selection sub-flow.
package flows

import (
	"context"
	"time"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/gcal"
	"meeting-assistant-be/pkg/recognizer"
)

// RoomDirectory filters bookable rooms for a time slot and office.
type RoomDirectory interface {
	AvailableRooms(ctx context.Context, user *entity.UserRecord, start, end time.Time, office string, attendeeCount int) ([]entity.MeetingRoom, error)
}

// UserDirectory is the subset of the user service the flows mutate.
type UserDirectory interface {
	PersistCredential(user *entity.UserRecord, creds *entity.GoogleCredentials) error
}

// LoginLinkProvider mints a Google consent URL correlated to the
// conversation waiting for the callback.
type LoginLinkProvider interface {
	LoginURL(conversationId, userId string) (string, error)
}

// Deps are the collaborators injected into every flow.
type Deps struct {
	Calendar gcal.API
	Rooms    RoomDirectory
	Users    UserDirectory
	Login    LoginLinkProvider
	Logger   logger.ILogger
	Clock    func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// RegisterAll wires every flow and its intent binding into the engine.
func RegisterAll(e *dialog.Engine, deps *Deps) {
	e.Register(NewGreeting())
	e.Register(NewHelp())
	e.Register(NewAppInstalled())
	e.Register(NewGoogleLogin(deps))
	e.Register(NewFindAppointments(deps))
	e.Register(NewAddAppointment(deps))
	e.Register(NewRoomSelection(deps))

	e.BindIntent(recognizer.IntentGreeting, dialog.FlowGreeting)
	e.BindIntent(recognizer.IntentHelp, dialog.FlowHelp)
	e.BindIntent(recognizer.IntentCalendarAdd, dialog.FlowAddAppointment)
	e.BindIntent(recognizer.IntentCalendarFind, dialog.FlowFindAppointments)
}
