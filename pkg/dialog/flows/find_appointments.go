package flows

import (
	"context"

	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/recognizer"
	"meeting-assistant-be/pkg/slack"
)

// NewFindAppointments builds the single-step search flow: resolve a time
// window from the entities (default: from now, next 10 results), list the
// user's calendar and render the outcome. Always terminal.
func NewFindAppointments(deps *Deps) *dialog.Flow {
	return &dialog.Flow{
		Id:            dialog.FlowFindAppointments,
		RequiresLogin: true,
		Steps: []dialog.Step{{
			Name: "list-events",
			Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
				loc := t.User.Location()
				params := recognizer.SearchWindow(t.Entities, deps.now(), loc)
				t.State.Search = &params

				events, err := deps.Calendar.ListEvents(ctx, t.User.Credentials, params)
				if err != nil {
					deps.Logger.Error("FindAppointments", "Calendar listing failed", map[string]interface{}{
						"user_id": t.User.Id, "error": err.Error(),
					})
					return dialog.Complete(slack.Text("I am sorry, %s... System error.", t.User.Name)), nil
				}

				if len(events) == 0 {
					return dialog.Complete(slack.Text("%s, it seems like you don't have any events in the requested period", t.User.Name)), nil
				}
				return dialog.Complete(slack.EventListMessage(events)), nil
			},
		}},
	}
}
