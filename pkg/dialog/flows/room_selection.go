package flows

import (
	"context"
	"regexp"
	"strings"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/slack"
)

// NewRoomSelection builds the room-selection sub-flow the AddAppointment
// flow delegates to. One self-consuming step: the first entry queries
// availability and offers the fitting rooms; the re-entry resolves the
// user's pick and hands control back for the confirmation prompt.
func NewRoomSelection(deps *Deps) *dialog.Flow {
	return &dialog.Flow{
		Id: dialog.FlowRoomSelection,
		Steps: []dialog.Step{{
			Name: "select-room",
			Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
				draft := t.State.Meeting
				if draft == nil || draft.StartTime == nil || draft.EndTime == nil {
					// Cannot query availability without a slot; hand back
					// for confirmation without a room.
					return dialog.Complete(), nil
				}

				if len(t.State.RoomOffer) == 0 {
					rooms, err := deps.Rooms.AvailableRooms(ctx, t.User, *draft.StartTime, *draft.EndTime, t.State.Office, len(draft.Attendees))
					if err != nil {
						deps.Logger.Error("RoomSelection", "Room lookup failed", map[string]interface{}{
							"office": t.State.Office, "error": err.Error(),
						})
						rooms = nil
					}
					if len(rooms) == 0 {
						return dialog.Complete(slack.Text("I could not find any available rooms for that time slot.")), nil
					}
					t.State.RoomOffer = rooms
					return dialog.Suspend(slack.RoomSelectionMessage(rooms)), nil
				}

				room, ok := matchRoom(t.State.RoomOffer, t.Reply)
				t.State.RoomOffer = nil
				if !ok {
					// Preserved behavior: an unmatched reply is logged and
					// the meeting proceeds without a room.
					deps.Logger.Error("RoomSelection", "Could not find room", map[string]interface{}{
						"reply": t.Reply,
					})
					return dialog.Complete(), nil
				}

				draft.Location = room.Name
				draft.AddAttendee(room.Mail)
				return dialog.CompleteWith(room), nil
			},
		}},
	}
}

// matchRoom resolves a free-text reply against the offered room names.
// The reply is tried as a regular expression first (falling back to a
// substring test), and the first match wins.
func matchRoom(rooms []entity.MeetingRoom, reply string) (entity.MeetingRoom, bool) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return entity.MeetingRoom{}, false
	}

	pattern, err := regexp.Compile(reply)
	for _, room := range rooms {
		if err == nil && pattern.MatchString(room.Name) {
			return room, true
		}
		if err != nil && strings.Contains(room.Name, reply) {
			return room, true
		}
	}
	return entity.MeetingRoom{}, false
}
