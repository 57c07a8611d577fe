// Package dialog is the state machine driving the assistant's multi-turn
// conversations. A flow is an ordered list of steps; each step either
// derives what it needs from collected state and advances, or prompts the
// user and suspends until the next inbound message re-enters the same step
// with the reply.
package dialog

import (
	"context"
	"regexp"
	"strings"
	"time"

	"meeting-assistant-be/internal/entity"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/pkg/recognizer"
	"meeting-assistant-be/pkg/slack"
)

// Sender delivers outbound messages to a conversation.
type Sender interface {
	Send(ctx context.Context, state *State, msg slack.OutboundMessage) error
}

// Turn is everything a step may consume on one entry.
type Turn struct {
	State    *State
	User     *entity.UserRecord
	Reply    string              // inbound text when re-entering a suspended step
	Entities []recognizer.Entity // fresh recognition of the inbound text
	// SubResult carries a completed sub-flow's payload into the parent's
	// resume step, or an out-of-band OAuth result into the login step.
	SubResult interface{}
}

type ResultKind int

const (
	ResultAdvance ResultKind = iota
	ResultSuspend
	ResultComplete
	ResultDelegate
)

// StepResult tells the engine what to do after a step ran. Messages are
// sent in order before the transition is applied.
type StepResult struct {
	Kind       ResultKind
	Messages   []slack.OutboundMessage
	TargetFlow string // delegation target
	ResumeStep int    // parent step to resume at after delegation
	SubResult  interface{}
}

func Advance() StepResult {
	return StepResult{Kind: ResultAdvance}
}

func Suspend(msgs ...slack.OutboundMessage) StepResult {
	return StepResult{Kind: ResultSuspend, Messages: msgs}
}

func Complete(msgs ...slack.OutboundMessage) StepResult {
	return StepResult{Kind: ResultComplete, Messages: msgs}
}

func CompleteWith(result interface{}, msgs ...slack.OutboundMessage) StepResult {
	return StepResult{Kind: ResultComplete, SubResult: result, Messages: msgs}
}

func Delegate(targetFlow string, resumeStep int, msgs ...slack.OutboundMessage) StepResult {
	return StepResult{Kind: ResultDelegate, TargetFlow: targetFlow, ResumeStep: resumeStep, Messages: msgs}
}

type StepFunc func(ctx context.Context, t *Turn) (StepResult, error)

type Step struct {
	Name string
	Run  StepFunc
}

// Flow is a named, ordered step list. RequiresLogin flows get a
// GoogleLogin detour injected when the user has no linked credentials.
type Flow struct {
	Id            string
	RequiresLogin bool
	Steps         []Step
}

var cancelPattern = regexp.MustCompile(`(?i)^cancel|abort|stop|start over`)

const (
	msgNotUnderstood = "Sorry, I do not understand this."
	msgCanceled      = "Ok, canceling that."
	msgSystemError   = "I am sorry... System error."
)

type Engine struct {
	flows   map[string]*Flow
	intents map[string]string // intent name -> flow id
	store   Store
	sender  Sender
	logger  logger.ILogger
	clock   func() time.Time
}

func NewEngine(store Store, sender Sender, log logger.ILogger) *Engine {
	return &Engine{
		flows:   make(map[string]*Flow),
		intents: make(map[string]string),
		store:   store,
		sender:  sender,
		logger:  log,
		clock:   time.Now,
	}
}

func (e *Engine) Register(flow *Flow) {
	e.flows[flow.Id] = flow
}

// BindIntent routes a recognized intent to a flow when no flow is active.
func (e *Engine) BindIntent(intent, flowId string) {
	e.intents[intent] = flowId
}

// Dispatch routes one inbound message: to the active flow's suspended step,
// or to a new flow selected by intent.
func (e *Engine) Dispatch(ctx context.Context, conversationId string, user *entity.UserRecord, rec *recognizer.Result) error {
	text := rec.Query

	if state, ok := e.store.Get(conversationId); ok {
		if cancelPattern.MatchString(strings.TrimSpace(text)) {
			e.store.Delete(conversationId)
			e.logger.Info("Dialog", "Flow canceled", map[string]interface{}{
				"conversation_id": conversationId, "flow_id": state.FlowId, "step": state.StepIndex,
			})
			return e.sender.Send(ctx, state, slack.Text(msgCanceled))
		}
		turn := &Turn{State: state, User: user, Reply: text, Entities: rec.Entities}
		return e.run(ctx, state, turn)
	}

	flowId, ok := e.intents[rec.Intent]
	if !ok {
		state := &State{ConversationId: conversationId, UserId: user.Id, TeamId: user.TeamId}
		return e.sender.Send(ctx, state, slack.Text(msgNotUnderstood))
	}
	return e.StartFlow(ctx, conversationId, user, flowId, rec.Entities)
}

// StartFlow begins a flow at step 0, detouring through the login sub-flow
// first when the flow needs calendar access the user has not granted yet.
func (e *Engine) StartFlow(ctx context.Context, conversationId string, user *entity.UserRecord, flowId string, entities []recognizer.Entity) error {
	flow, ok := e.flows[flowId]
	if !ok {
		e.logger.Error("Dialog", "Unknown flow", map[string]interface{}{"flow_id": flowId})
		return nil
	}

	state := &State{
		ConversationId: conversationId,
		UserId:         user.Id,
		TeamId:         user.TeamId,
		FlowId:         flowId,
		Pending:        entities,
		UpdatedAt:      e.clock(),
	}

	if flow.RequiresLogin && !user.HasCredentials() {
		state.Resume = &ResumeTarget{FlowId: flowId, StepIndex: 0}
		state.FlowId = FlowGoogleLogin
	}

	turn := &Turn{State: state, User: user, Entities: entities}
	return e.run(ctx, state, turn)
}

// DeliverResult re-enters the suspended step with an out-of-band payload,
// used by the OAuth callback to hand tokens to the waiting login step.
func (e *Engine) DeliverResult(ctx context.Context, conversationId string, user *entity.UserRecord, payload interface{}) error {
	state, ok := e.store.Get(conversationId)
	if !ok {
		e.logger.Warn("Dialog", "No suspended flow for delivered result", map[string]interface{}{
			"conversation_id": conversationId,
		})
		return nil
	}
	turn := &Turn{State: state, User: user, SubResult: payload, Entities: state.Pending}
	return e.run(ctx, state, turn)
}

// Active reports whether a conversation has a suspended flow.
func (e *Engine) Active(conversationId string) (string, bool) {
	state, ok := e.store.Get(conversationId)
	if !ok {
		return "", false
	}
	return state.FlowId, true
}

// run executes steps synchronously until one suspends or the flow chain
// completes. Step errors terminate the flow with an apology; they are never
// surfaced as transport errors.
func (e *Engine) run(ctx context.Context, state *State, turn *Turn) error {
	for {
		flow, ok := e.flows[state.FlowId]
		if !ok || state.StepIndex < 0 || state.StepIndex >= len(flow.Steps) {
			e.logger.Error("Dialog", "Step index out of range", map[string]interface{}{
				"flow_id": state.FlowId, "step": state.StepIndex,
			})
			e.store.Delete(state.ConversationId)
			return e.sender.Send(ctx, state, slack.Text(msgSystemError))
		}

		step := flow.Steps[state.StepIndex]
		result, err := step.Run(ctx, turn)
		if err != nil {
			e.logger.Error("Dialog", "Step failed", map[string]interface{}{
				"flow_id": state.FlowId, "step": step.Name, "error": err.Error(),
			})
			e.store.Delete(state.ConversationId)
			return e.sender.Send(ctx, state, slack.Text(msgSystemError))
		}

		for _, msg := range result.Messages {
			if err := e.sender.Send(ctx, state, msg); err != nil {
				e.logger.Error("Dialog", "Send failed", map[string]interface{}{
					"conversation_id": state.ConversationId, "error": err.Error(),
				})
			}
		}

		switch result.Kind {
		case ResultAdvance:
			state.StepIndex++
			turn = &Turn{State: state, User: turn.User}

		case ResultSuspend:
			state.UpdatedAt = e.clock()
			e.store.Save(state)
			return nil

		case ResultDelegate:
			state.Resume = &ResumeTarget{FlowId: state.FlowId, StepIndex: result.ResumeStep}
			state.FlowId = result.TargetFlow
			state.StepIndex = 0
			turn = &Turn{State: state, User: turn.User}

		case ResultComplete:
			if state.Resume != nil {
				target := state.Resume
				state.Resume = nil
				state.FlowId = target.FlowId
				state.StepIndex = target.StepIndex
				turn = &Turn{State: state, User: turn.User, SubResult: result.SubResult, Entities: state.Pending}
				continue
			}
			e.store.Delete(state.ConversationId)
			return nil
		}
	}
}
