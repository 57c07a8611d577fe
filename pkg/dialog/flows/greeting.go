package flows

import (
	"context"

	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/slack"
)

func NewGreeting() *dialog.Flow {
	return &dialog.Flow{
		Id: dialog.FlowGreeting,
		Steps: []dialog.Step{{
			Name: "greet",
			Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
				name := t.User.FullName
				if name == "" {
					name = t.User.Name
				}
				return dialog.Complete(slack.Text("Nice to meet you, %s!", name)), nil
			},
		}},
	}
}
