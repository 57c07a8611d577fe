package dialog

import (
	"context"
	"errors"
	"testing"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/pkg/recognizer"
	"meeting-assistant-be/pkg/slack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	states map[string]*State
}

func newMapStore() *mapStore {
	return &mapStore{states: make(map[string]*State)}
}

func (s *mapStore) Get(conversationId string) (*State, bool) {
	state, ok := s.states[conversationId]
	return state, ok
}

func (s *mapStore) Save(state *State) {
	s.states[state.ConversationId] = state
}

func (s *mapStore) Delete(conversationId string) {
	delete(s.states, conversationId)
}

type recordingSender struct {
	sent []slack.OutboundMessage
	err  error
}

func (s *recordingSender) Send(ctx context.Context, state *State, msg slack.OutboundMessage) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *recordingSender) texts() []string {
	out := make([]string, len(s.sent))
	for i, msg := range s.sent {
		out[i] = msg.Text
	}
	return out
}

func testUser() *entity.UserRecord {
	return &entity.UserRecord{Id: "U123", TeamId: "T123", Name: "alice"}
}

func newTestEngine(t *testing.T) (*Engine, *mapStore, *recordingSender) {
	t.Helper()
	store := newMapStore()
	sender := &recordingSender{}
	return NewEngine(store, sender, logger.NewNop()), store, sender
}

func TestDispatchUnknownIntentReplies(t *testing.T) {
	engine, store, sender := newTestEngine(t)

	err := engine.Dispatch(context.Background(), "C1", testUser(), &recognizer.Result{
		Query:  "flurble",
		Intent: recognizer.IntentNone,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{msgNotUnderstood}, sender.texts())
	assert.Empty(t, store.states, "no flow should be started")
}

func TestDispatchRoutesIntentToFlow(t *testing.T) {
	engine, store, sender := newTestEngine(t)
	engine.Register(&Flow{
		Id: "EchoFlow",
		Steps: []Step{{
			Name: "echo",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				return Complete(slack.Text("hi %s", turn.User.Name)), nil
			},
		}},
	})
	engine.BindIntent("Echo", "EchoFlow")

	err := engine.Dispatch(context.Background(), "C1", testUser(), &recognizer.Result{Intent: "Echo"})

	require.NoError(t, err)
	assert.Equal(t, []string{"hi alice"}, sender.texts())
	_, active := store.Get("C1")
	assert.False(t, active, "completed flow should leave no state behind")
}

func TestSuspendedStepIsReenteredWithReply(t *testing.T) {
	engine, store, sender := newTestEngine(t)
	engine.Register(&Flow{
		Id: "AskFlow",
		Steps: []Step{{
			Name: "ask-name",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				if turn.Reply == "" {
					return Suspend(slack.Text("what is your name?")), nil
				}
				return Complete(slack.Text("hello %s", turn.Reply)), nil
			},
		}},
	})
	engine.BindIntent("Ask", "AskFlow")

	ctx := context.Background()
	user := testUser()
	require.NoError(t, engine.Dispatch(ctx, "C1", user, &recognizer.Result{Intent: "Ask"}))

	state, active := store.Get("C1")
	require.True(t, active)
	assert.Equal(t, 0, state.StepIndex, "suspension keeps the step index")

	require.NoError(t, engine.Dispatch(ctx, "C1", user, &recognizer.Result{Query: "Bob", Intent: recognizer.IntentNone}))

	assert.Equal(t, []string{"what is your name?", "hello Bob"}, sender.texts())
	_, active = store.Get("C1")
	assert.False(t, active)
}

func TestCancelClearsActiveFlow(t *testing.T) {
	for _, phrase := range []string{"cancel", "Abort", "stop", "Start over please"} {
		t.Run(phrase, func(t *testing.T) {
			engine, store, sender := newTestEngine(t)
			engine.Register(&Flow{
				Id: "AskFlow",
				Steps: []Step{{
					Name: "ask",
					Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
						return Suspend(slack.Text("?")), nil
					},
				}},
			})
			engine.BindIntent("Ask", "AskFlow")

			ctx := context.Background()
			user := testUser()
			require.NoError(t, engine.Dispatch(ctx, "C1", user, &recognizer.Result{Intent: "Ask"}))
			require.NoError(t, engine.Dispatch(ctx, "C1", user, &recognizer.Result{Query: phrase, Intent: recognizer.IntentNone}))

			// The wording is flow-neutral; cancel works the same way in
			// every flow, not just appointment creation.
			assert.Equal(t, "Ok, canceling that.", sender.sent[len(sender.sent)-1].Text)
			_, active := store.Get("C1")
			assert.False(t, active)
		})
	}
}

func TestCancelMidSentenceDoesNotTrigger(t *testing.T) {
	engine, store, sender := newTestEngine(t)
	engine.Register(&Flow{
		Id: "AskFlow",
		Steps: []Step{{
			Name: "ask",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				if turn.Reply == "" {
					return Suspend(slack.Text("?")), nil
				}
				return Complete(slack.Text("got: %s", turn.Reply)), nil
			},
		}},
	})
	engine.BindIntent("Ask", "AskFlow")

	ctx := context.Background()
	user := testUser()
	require.NoError(t, engine.Dispatch(ctx, "C1", user, &recognizer.Result{Intent: "Ask"}))
	require.NoError(t, engine.Dispatch(ctx, "C1", user, &recognizer.Result{Query: "please do not cancel", Intent: recognizer.IntentNone}))

	assert.Equal(t, "got: please do not cancel", sender.sent[len(sender.sent)-1].Text)
	_, active := store.Get("C1")
	assert.False(t, active)
}

func TestLoginDetourForUnlinkedUser(t *testing.T) {
	engine, store, _ := newTestEngine(t)
	calendarRan := false
	engine.Register(&Flow{
		Id:            "CalendarFlow",
		RequiresLogin: true,
		Steps: []Step{{
			Name: "list",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				calendarRan = true
				return Complete(), nil
			},
		}},
	})
	engine.Register(&Flow{
		Id: FlowGoogleLogin,
		Steps: []Step{{
			Name: "acquire",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				if turn.SubResult == nil {
					return Suspend(slack.Text("log in first")), nil
				}
				return CompleteWith(turn.SubResult), nil
			},
		}},
	})

	ctx := context.Background()
	user := testUser()
	entities := []recognizer.Entity{{Kind: recognizer.KindSubject, Text: "standup"}}
	require.NoError(t, engine.StartFlow(ctx, "C1", user, "CalendarFlow", entities))

	state, active := store.Get("C1")
	require.True(t, active)
	assert.Equal(t, FlowGoogleLogin, state.FlowId)
	require.NotNil(t, state.Resume)
	assert.Equal(t, "CalendarFlow", state.Resume.FlowId)
	assert.False(t, calendarRan)

	// The callback hands credentials to the suspended login step; the
	// parent then resumes with the entities captured at dispatch.
	require.NoError(t, engine.DeliverResult(ctx, "C1", user, "token"))
	assert.True(t, calendarRan)
	_, active = store.Get("C1")
	assert.False(t, active)
}

func TestLinkedUserSkipsLoginDetour(t *testing.T) {
	engine, _, sender := newTestEngine(t)
	engine.Register(&Flow{
		Id:            "CalendarFlow",
		RequiresLogin: true,
		Steps: []Step{{
			Name: "list",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				return Complete(slack.Text("listing")), nil
			},
		}},
	})

	user := testUser()
	user.Credentials = &entity.GoogleCredentials{AccessToken: "tok"}
	require.NoError(t, engine.StartFlow(context.Background(), "C1", user, "CalendarFlow", nil))
	assert.Equal(t, []string{"listing"}, sender.texts())
}

func TestDelegateResumesParentWithSubResult(t *testing.T) {
	engine, store, sender := newTestEngine(t)
	engine.Register(&Flow{
		Id: "ParentFlow",
		Steps: []Step{
			{
				Name: "hand-off",
				Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
					return Delegate("ChildFlow", 1), nil
				},
			},
			{
				Name: "resume",
				Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
					picked, _ := turn.SubResult.(string)
					return Complete(slack.Text("child picked %s", picked)), nil
				},
			},
		},
	})
	engine.Register(&Flow{
		Id: "ChildFlow",
		Steps: []Step{{
			Name: "pick",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				return CompleteWith("blue"), nil
			},
		}},
	})

	require.NoError(t, engine.StartFlow(context.Background(), "C1", testUser(), "ParentFlow", nil))

	assert.Equal(t, []string{"child picked blue"}, sender.texts())
	_, active := store.Get("C1")
	assert.False(t, active)
}

func TestStepErrorTerminatesWithApology(t *testing.T) {
	engine, store, sender := newTestEngine(t)
	engine.Register(&Flow{
		Id: "BrokenFlow",
		Steps: []Step{{
			Name: "boom",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				return StepResult{}, errors.New("backend down")
			},
		}},
	})

	require.NoError(t, engine.StartFlow(context.Background(), "C1", testUser(), "BrokenFlow", nil))

	assert.Equal(t, []string{msgSystemError}, sender.texts())
	_, active := store.Get("C1")
	assert.False(t, active)
}

func TestActiveReportsSuspendedFlow(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	engine.Register(&Flow{
		Id: "AskFlow",
		Steps: []Step{{
			Name: "ask",
			Run: func(ctx context.Context, turn *Turn) (StepResult, error) {
				return Suspend(slack.Text("?")), nil
			},
		}},
	})

	_, active := engine.Active("C1")
	assert.False(t, active)

	require.NoError(t, engine.StartFlow(context.Background(), "C1", testUser(), "AskFlow", nil))

	flowId, active := engine.Active("C1")
	assert.True(t, active)
	assert.Equal(t, "AskFlow", flowId)
}
