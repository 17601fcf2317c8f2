package studio

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/render/sink"
)

// Message types exchanged with a preview client.
const (
	MsgLayout = "layout"
	MsgCounts = "counts"
	MsgPrompt = "prompt"

	MsgScene = "scene"
	MsgError = "error"
)

// Message is an inbound preview request. Exactly one of Layout, Counts or
// Prompt is read, selected by Type.
type Message struct {
	Type   string       `json:"type"`
	Layout *plan.Layout `json:"layout,omitempty"`
	Counts *plan.Counts `json:"counts,omitempty"`
	Color  string       `json:"color,omitempty"`
	Prompt string       `json:"prompt,omitempty"`
	Name   string       `json:"name,omitempty"`
}

// Reply is an outbound preview message.
type Reply struct {
	Type     string       `json:"type"`
	Session  string       `json:"session"`
	Revision int          `json:"revision"`
	Layout   *plan.Layout `json:"layout,omitempty"`
	Scene    *sink.Scene  `json:"scene,omitempty"`
	Plan2D   *grid.Result `json:"plan2d,omitempty"`
	Code     string       `json:"code,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// DecodeMessage parses a client frame.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode preview message")
	}
	return m, nil
}

// Session is one live preview. It owns its State and must be driven from a
// single goroutine.
type Session struct {
	ID        string
	CreatedAt time.Time

	ctrl  *Controller
	state State
}

// NewSession starts a session with an empty state.
func NewSession(ctrl *Controller) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		ctrl:      ctrl,
	}
}

// State returns the last good state.
func (s *Session) State() State { return s.state }

// Handle applies msg and returns the reply to send. On failure the reply
// has type "error" and the session keeps its previous state.
func (s *Session) Handle(ctx context.Context, msg Message) Reply {
	next, err := s.apply(ctx, msg)
	if err != nil {
		return Reply{
			Type:     MsgError,
			Session:  s.ID,
			Revision: s.state.Revision,
			Code:     string(errors.GetCode(err)),
			Error:    errors.UserMessage(err),
		}
	}
	// The previous scene is released here; only the new one is referenced.
	s.state = next
	return s.reply()
}

func (s *Session) apply(ctx context.Context, msg Message) (State, error) {
	switch msg.Type {
	case MsgLayout:
		if msg.Layout == nil {
			return s.state, errors.New(errors.ErrCodeInvalidInput, "layout message without layout")
		}
		l := *msg.Layout
		if msg.Name != "" {
			l.Name = msg.Name
		}
		prev := s.state
		if msg.Color != "" {
			if err := pipeline.ValidateColor(msg.Color); err != nil {
				return s.state, err
			}
			prev.Color = msg.Color
		}
		next, err := s.ctrl.Apply(ctx, prev, l)
		if err != nil {
			return s.state, err
		}
		return next, nil
	case MsgCounts:
		if msg.Counts == nil {
			return s.state, errors.New(errors.ErrCodeInvalidInput, "counts message without counts")
		}
		return s.ctrl.ApplyCounts(ctx, s.state, *msg.Counts, msg.Color)
	case MsgPrompt:
		return s.ctrl.ApplyPrompt(ctx, s.state, msg.Prompt, msg.Name)
	default:
		return s.state, errors.New(errors.ErrCodeInvalidInput, "unknown message type %q", msg.Type)
	}
}

func (s *Session) reply() Reply {
	st := s.state
	r := Reply{
		Type:     MsgScene,
		Session:  s.ID,
		Revision: st.Revision,
		Layout:   &st.Layout,
		Scene:    &st.Scene,
	}
	if st.Result != nil {
		r.Plan2D = &st.Result.Plan2D
	}
	return r
}
