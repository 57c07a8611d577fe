package flows

import (
	"context"

	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/slack"
)

const helpText = "I can manage your Google calendar. Try:\n" +
	"• \"schedule a meeting tomorrow from 14 to 15 about budgets\"\n" +
	"• \"what is on my calendar this week?\"\n" +
	"You can say \"cancel\" at any point to start over."

func NewHelp() *dialog.Flow {
	return &dialog.Flow{
		Id: dialog.FlowHelp,
		Steps: []dialog.Step{{
			Name: "explain",
			Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
				return dialog.Complete(slack.Text("%s", helpText)), nil
			},
		}},
	}
}
