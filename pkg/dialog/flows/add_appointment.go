package flows

import (
	"context"
	"strings"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/recognizer"
	"meeting-assistant-be/pkg/slack"
)

const (
	promptStartTime = "When do you want to schedule your meeting? (example: tomorrow at 10am; today 8 - 9; today from 15 to 17)"
	promptEndTime   = "When is the meeting going to end?"
	promptSubject   = "What is the subject of the meeting?"

	msgEventNotAdded = "The event was NOT added to your calendar"

	defaultDescription = "This meeting was scheduled by the HAL9000 meeting assistant."
)

// Step index the room-selection sub-flow resumes the parent at.
const stepAddConfirm = 5

// NewAddAppointment builds the multi-turn appointment-creation flow. Every
// step is gated on "field already known?": fields recovered from the intent
// entities skip their prompt and the engine runs the next step in the same
// turn. A suspended step is re-entered with the user's reply.
func NewAddAppointment(deps *Deps) *dialog.Flow {
	return &dialog.Flow{
		Id:            dialog.FlowAddAppointment,
		RequiresLogin: true,
		Steps: []dialog.Step{
			{
				Name: "collect-entities",
				Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
					if t.State.Meeting == nil {
						t.State.Meeting = &entity.MeetingDraft{Attendees: []entity.Attendee{}}
					}
					recognizer.ApplyToDraft(t.Entities, t.State.Meeting, t.User.Location())
					return dialog.Advance(), nil
				},
			},
			{
				Name: "start-time",
				Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
					draft := t.State.Meeting
					if draft.StartTime == nil {
						if t.Reply == "" {
							return dialog.Suspend(slack.Text(promptStartTime)), nil
						}
						start, end := recognizer.ParseReplyTime(t.Entities, t.Reply, deps.now(), t.User.Location())
						if start == nil {
							return dialog.Suspend(slack.Text(promptStartTime)), nil
						}
						draft.StartTime = start
						if end != nil {
							draft.EndTime = end
						}
					}
					return dialog.Advance(), nil
				},
			},
			{
				Name: "end-time",
				Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
					draft := t.State.Meeting
					if draft.EndTime == nil {
						if t.Reply == "" {
							return dialog.Suspend(slack.Text(promptEndTime)), nil
						}
						end, _ := recognizer.ParseReplyTime(t.Entities, t.Reply, deps.now(), t.User.Location())
						if end == nil {
							return dialog.Suspend(slack.Text(promptEndTime)), nil
						}
						draft.EndTime = end
					}
					if draft.StartTime != nil && draft.EndTime.Before(*draft.StartTime) {
						draft.EndTime = nil
						return dialog.Suspend(slack.Text("That end time is before the meeting starts. %s", promptEndTime)), nil
					}
					return dialog.Advance(), nil
				},
			},
			{
				Name: "subject",
				Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
					draft := t.State.Meeting
					if draft.Subject == "" {
						if t.Reply == "" {
							return dialog.Suspend(slack.Text(promptSubject)), nil
						}
						draft.Subject = t.Reply
					}
					return dialog.Advance(), nil
				},
			},
			{
				Name: "location-choice",
				Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
					draft := t.State.Meeting
					choice := strings.TrimSpace(t.Reply)
					if choice == "" {
						choice = draft.Location
					}
					if choice == "" {
						return dialog.Suspend(slack.LocationSelectionMessage()), nil
					}
					if strings.EqualFold(choice, "none") {
						draft.Location = ""
						return dialog.Advance(), nil
					}
					// Office code scopes the room search by building.
					office := "B2C"
					if strings.EqualFold(choice, "aarhus") {
						office = "ARH"
					}
					t.State.Office = office
					return dialog.Delegate(dialog.FlowRoomSelection, stepAddConfirm), nil
				},
			},
			{
				Name: "confirm",
				Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
					draft := t.State.Meeting
					reply := strings.TrimSpace(t.Reply)
					if reply == "" {
						if draft.Description == "" {
							draft.Description = defaultDescription
						}
						return dialog.Suspend(slack.ConfirmMeetingMessage(draft, t.User.Location())), nil
					}

					if !strings.EqualFold(reply, "yes") {
						return dialog.Complete(slack.Text(msgEventNotAdded)), nil
					}

					if !draft.Complete() {
						deps.Logger.Error("AddAppointment", "Draft incomplete at commit", map[string]interface{}{
							"conversation_id": t.State.ConversationId,
						})
						return dialog.Complete(slack.Text("I am sorry, %s... System error.", t.User.Name)), nil
					}

					created, err := deps.Calendar.CreateEvent(ctx, t.User.Credentials, draft)
					if err != nil {
						deps.Logger.Error("AddAppointment", "Calendar insert failed", map[string]interface{}{
							"user_id": t.User.Id, "error": err.Error(),
						})
						return dialog.Complete(slack.Text("I am sorry, %s... System error.", t.User.Name)), nil
					}

					msg := slack.OutboundMessage{
						Text:        "Your event is on the calendar",
						Attachments: []slack.Attachment{slack.EventAttachment(*created, true)},
					}
					return dialog.Complete(msg), nil
				},
			},
		},
	}
}
