package extraction

import (
	"strings"

	"stagehand/internal/event"
)

// Outcome is Begin's verdict on a submission.
type Outcome int

const (
	// OutcomeStarted: user turn appended, request built, caller must run it.
	OutcomeStarted Outcome = iota
	// OutcomeRejected: a call is already in flight (or the input was blank);
	// nothing changed, nothing to run. Not queued.
	OutcomeRejected
	// OutcomeClarified: degenerate repeat of the assistant's last message;
	// a clarification turn was appended instead of calling out.
	OutcomeClarified
)

const (
	clarificationText = "I think we already covered that. Is there anything new to add, or something you'd like to change?"
	failureText       = "Sorry, something went wrong while processing that. Could you try again?"
)

// Sequencer owns the ordered, append-only conversation and the single
// in-flight flag. It is not safe for concurrent use; the event loop is its
// scheduler. Network work happens outside it: Begin hands back a Request and
// a token, Resolve takes the eventual result, and responses that are not the
// latest issued token are discarded unseen.
type Sequencer struct {
	store  *event.Store
	window int

	turns        []event.ChatTurn
	inFlight     bool
	token        uint64
	lastFollowup string
}

// NewSequencer builds a sequencer over the given store. window bounds how
// many recent turns each extraction request carries.
func NewSequencer(store *event.Store, window int) *Sequencer {
	return &Sequencer{store: store, window: window}
}

// Turns returns a copy of the full conversation, oldest first.
func (s *Sequencer) Turns() []event.ChatTurn {
	return append([]event.ChatTurn(nil), s.turns...)
}

// InFlight reports whether an extraction call is outstanding.
func (s *Sequencer) InFlight() bool { return s.inFlight }

// SeedAssistant appends an assistant turn outside the request cycle, used
// for the opening greeting and resume banners.
func (s *Sequencer) SeedAssistant(text string) {
	s.turns = append(s.turns, event.ChatTurn{Sender: "assistant", Text: text})
}

// Begin admits a user submission. On OutcomeStarted the user's turn is
// already appended (optimistically, before the network resolves) and the
// returned Request plus token must be handed to the transport and then to
// Resolve. On any other outcome the request is zero and must not be sent.
func (s *Sequencer) Begin(input string, att *Attachment) (Request, uint64, Outcome) {
	trimmed := strings.TrimSpace(input)
	if s.inFlight || trimmed == "" {
		return Request{}, 0, OutcomeRejected
	}
	if LooksRepeated(trimmed, s.lastAssistant()) {
		s.turns = append(s.turns,
			event.ChatTurn{Sender: "user", Text: trimmed},
			event.ChatTurn{Sender: "assistant", Text: clarificationText},
		)
		return Request{}, 0, OutcomeClarified
	}

	s.turns = append(s.turns, event.ChatTurn{Sender: "user", Text: trimmed})
	s.inFlight = true
	s.token++

	req := Request{
		Messages:   s.recentMessages(),
		Known:      KnownFromRecord(s.store.Get()),
		Attachment: att,
	}
	return req, s.token, OutcomeStarted
}

// Resolve lands the result of the call identified by token. Stale tokens are
// dropped without touching any state, including the in-flight flag, which
// belongs to the latest call. An error appends a generic failure turn and
// leaves the record as it was. Success merges the response into the store
// and appends one assistant turn: the reply text, or a generated follow-up
// when the reply is empty. Returns whether the response was applied.
func (s *Sequencer) Resolve(token uint64, resp *Response, err error) bool {
	if token != s.token {
		return false
	}
	s.inFlight = false
	if err != nil {
		s.turns = append(s.turns, event.ChatTurn{Sender: "assistant", Text: failureText})
		return false
	}

	Apply(s.store, resp)

	text := strings.TrimSpace(resp.Message)
	if text == "" {
		text, s.lastFollowup = BuildFollowup(s.store.Get(), s.lastFollowup)
	} else {
		// A real reply still advances the follow-up cursor so the next
		// generated prompt doesn't claim a just-filled field is missing.
		_, s.lastFollowup = BuildFollowup(s.store.Get(), s.lastFollowup)
	}
	if text != "" {
		s.turns = append(s.turns, event.ChatTurn{Sender: "assistant", Text: text})
	}
	return true
}

func (s *Sequencer) lastAssistant() string {
	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Sender == "assistant" {
			return s.turns[i].Text
		}
	}
	return ""
}

func (s *Sequencer) recentMessages() []Message {
	start := 0
	if s.window > 0 && len(s.turns) > s.window {
		start = len(s.turns) - s.window
	}
	msgs := make([]Message, 0, len(s.turns)-start)
	for _, t := range s.turns[start:] {
		role := "user"
		if t.Sender == "assistant" {
			role = "assistant"
		}
		msgs = append(msgs, Message{Role: role, Content: t.Text})
	}
	return msgs
}
