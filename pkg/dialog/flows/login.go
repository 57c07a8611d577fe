package flows

import (
	"context"
	"strings"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/slack"
)

// LoginResult is the payload the OAuth callback delivers into the
// suspended login step.
type LoginResult struct {
	Credentials *entity.GoogleCredentials
	Email       string // email of the account that authorized the app
}

// NewGoogleLogin builds the credential-acquisition sub-flow. It emits a
// consent URL and suspends; the engine re-enters the same step when the
// callback arrives. An email mismatch between the authorized Google account
// and the cached Slack profile re-prompts instead of terminating.
func NewGoogleLogin(deps *Deps) *dialog.Flow {
	promptLogin := func(t *dialog.Turn) (dialog.StepResult, error) {
		url, err := deps.Login.LoginURL(t.State.ConversationId, t.State.UserId)
		if err != nil {
			return dialog.StepResult{}, err
		}
		text := "Hello there! This is the HAL9000 meeting assistant. Please allow HAL9000 to use your Google calendar.\n<" + url + "|Google Login Link>"
		return dialog.Suspend(slack.Text("%s", text)), nil
	}

	return &dialog.Flow{
		Id: dialog.FlowGoogleLogin,
		Steps: []dialog.Step{{
			Name: "acquire-credentials",
			Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
				result, ok := t.SubResult.(*LoginResult)
				if !ok {
					// First entry, or the user typed something while we
					// wait for the callback: (re-)issue the link.
					return promptLogin(t)
				}

				if t.User.Email != "" && !strings.EqualFold(t.User.Email, result.Email) {
					deps.Logger.Warn("Login", "Account email mismatch", map[string]interface{}{
						"user_id": t.User.Id, "expected": t.User.Email, "got": result.Email,
					})
					res, err := promptLogin(t)
					if err != nil {
						return dialog.StepResult{}, err
					}
					res.Messages = append([]slack.OutboundMessage{
						slack.Text("That Google account (%s) does not match your Slack profile email. Please log in with %s.", result.Email, t.User.Email),
					}, res.Messages...)
					return res, nil
				}

				if err := deps.Users.PersistCredential(t.User, result.Credentials); err != nil {
					return dialog.StepResult{}, err
				}
				return dialog.CompleteWith(result), nil
			},
		}},
	}
}

// NewAppInstalled greets a fresh installation by walking the installer
// through the Google login once.
func NewAppInstalled() *dialog.Flow {
	return &dialog.Flow{
		Id: dialog.FlowAppInstalled,
		Steps: []dialog.Step{
			{
				Name: "begin-login",
				Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
					return dialog.Delegate(dialog.FlowGoogleLogin, 1), nil
				},
			},
			{
				Name: "done",
				Run: func(ctx context.Context, t *dialog.Turn) (dialog.StepResult, error) {
					if _, ok := t.SubResult.(*LoginResult); ok {
						return dialog.Complete(slack.Text("Done!")), nil
					}
					return dialog.Complete(), nil
				},
			},
		},
	}
}
