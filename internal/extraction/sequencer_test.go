package extraction

import (
	"errors"
	"fmt"
	"testing"

	"stagehand/internal/event"
)

func newTestSequencer() (*event.Store, *Sequencer) {
	store := event.NewStore()
	return store, NewSequencer(store, 8)
}

func TestBeginAppendsUserTurnOptimistically(t *testing.T) {
	_, seq := newTestSequencer()
	_, _, outcome := seq.Begin("we're planning a quiz night", nil)
	if outcome != OutcomeStarted {
		t.Fatalf("outcome = %v, want started", outcome)
	}
	turns := seq.Turns()
	if len(turns) != 1 || turns[0].Sender != "user" {
		t.Fatalf("turns = %v, want single user turn before resolution", turns)
	}
	if !seq.InFlight() {
		t.Fatal("sequencer not in flight after Begin")
	}
}

func TestBeginRejectsWhileInFlight(t *testing.T) {
	_, seq := newTestSequencer()
	_, _, _ = seq.Begin("first", nil)
	before := len(seq.Turns())

	_, _, outcome := seq.Begin("second", nil)
	if outcome != OutcomeRejected {
		t.Fatalf("outcome = %v, want rejected", outcome)
	}
	if len(seq.Turns()) != before {
		t.Fatal("rejected submission changed the conversation")
	}
}

func TestBeginRejectsBlankInput(t *testing.T) {
	_, seq := newTestSequencer()
	if _, _, outcome := seq.Begin("   \n", nil); outcome != OutcomeRejected {
		t.Fatalf("outcome = %v, want rejected for blank input", outcome)
	}
}

func TestBeginDetectsRepeatedInput(t *testing.T) {
	_, seq := newTestSequencer()
	seq.SeedAssistant(`What should the event be called?`)

	_, _, outcome := seq.Begin(`"What should the event be called?"`, nil)
	if outcome != OutcomeClarified {
		t.Fatalf("outcome = %v, want clarified", outcome)
	}
	turns := seq.Turns()
	last := turns[len(turns)-1]
	if last.Sender != "assistant" || last.Text != clarificationText {
		t.Fatalf("last turn = %+v, want canned clarification", last)
	}
	if seq.InFlight() {
		t.Fatal("clarification must not start a network call")
	}
}

func TestBeginWindowsHistory(t *testing.T) {
	store := event.NewStore()
	seq := NewSequencer(store, 4)
	for i := 0; i < 5; i++ {
		req, token, outcome := seq.Begin(fmt.Sprintf("detail %d", i), nil)
		if outcome != OutcomeStarted {
			t.Fatalf("turn %d rejected", i)
		}
		if i == 4 {
			if len(req.Messages) != 4 {
				t.Fatalf("window = %d messages, want 4", len(req.Messages))
			}
			if req.Messages[3].Content != "detail 4" {
				t.Fatalf("window tail = %q, want newest turn", req.Messages[3].Content)
			}
		}
		seq.Resolve(token, &Response{Message: "noted"}, nil)
	}
}

func TestResolveSuccessMergesAndReplies(t *testing.T) {
	store, seq := newTestSequencer()
	_, token, _ := seq.Begin("it's called Spring Gala", nil)

	applied := seq.Resolve(token, &Response{
		EventName: event.StringPtr("Spring Gala"),
		Message:   "Spring Gala, got it!",
	}, nil)
	if !applied {
		t.Fatal("fresh response not applied")
	}
	rec := store.Get()
	if rec.EventName == nil || *rec.EventName != "Spring Gala" {
		t.Fatalf("EventName = %v after merge", rec.EventName)
	}
	turns := seq.Turns()
	if turns[len(turns)-1].Text != "Spring Gala, got it!" {
		t.Fatalf("reply turn = %q", turns[len(turns)-1].Text)
	}
	if seq.InFlight() {
		t.Fatal("still in flight after resolve")
	}
}

func TestResolveFailureAppendsTurnAndLeavesRecord(t *testing.T) {
	store, seq := newTestSequencer()
	store.Patch(event.Patch{EventName: event.StringPtr("Gala")})
	_, token, _ := seq.Begin("and it's outdoors", nil)

	applied := seq.Resolve(token, nil, errors.New("boom"))
	if applied {
		t.Fatal("failed response reported as applied")
	}
	turns := seq.Turns()
	if turns[len(turns)-1].Text != failureText {
		t.Fatalf("last turn = %q, want failure turn", turns[len(turns)-1].Text)
	}
	if *store.Get().EventName != "Gala" {
		t.Fatal("record changed on failure")
	}
	if seq.InFlight() {
		t.Fatal("failure must clear the in-flight flag")
	}
}

func TestResolveDropsStaleToken(t *testing.T) {
	store, seq := newTestSequencer()
	_, first, _ := seq.Begin("first", nil)
	seq.Resolve(first, nil, errors.New("timeout"))
	_, second, _ := seq.Begin("second", nil)

	// The first call's response straggles in after a newer call was issued.
	applied := seq.Resolve(first, &Response{
		EventName: event.StringPtr("Stale Name"),
		Message:   "late",
	}, nil)
	if applied {
		t.Fatal("stale response was applied")
	}
	if store.Get().EventName != nil {
		t.Fatal("stale response mutated the record")
	}
	if !seq.InFlight() {
		t.Fatal("stale resolve must not clear the newer call's in-flight flag")
	}

	if !seq.Resolve(second, &Response{Message: "ok"}, nil) {
		t.Fatal("current token rejected")
	}
}

func TestResolveEmptyReplyFallsBackToFollowup(t *testing.T) {
	_, seq := newTestSequencer()
	_, token, _ := seq.Begin("hello", nil)
	seq.Resolve(token, &Response{}, nil)

	turns := seq.Turns()
	last := turns[len(turns)-1]
	if last.Sender != "assistant" || last.Text == "" {
		t.Fatalf("expected generated follow-up, got %+v", last)
	}
}
