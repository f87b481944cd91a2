package extraction

import (
	"strings"
	"testing"

	"stagehand/internal/event"
)

func TestFollowupAsksRequiredFirst(t *testing.T) {
	rec := event.Record{Venue: event.StringPtr("Town Hall")}
	text, key := BuildFollowup(rec, "")
	if key != "eventName" {
		t.Fatalf("key = %q, want eventName asked before optional fields", key)
	}
	if text == "" {
		t.Fatal("empty question")
	}
}

func TestFollowupRepeatPhrasing(t *testing.T) {
	rec := event.Record{}
	_, key := BuildFollowup(rec, "")
	text, again := BuildFollowup(rec, key)
	if again != key {
		t.Fatalf("repeat changed key: %q -> %q", key, again)
	}
	if !strings.Contains(text, "still need") {
		t.Fatalf("repeat phrasing missing from %q", text)
	}
}

func TestFollowupWalksIntoOptionalPhase(t *testing.T) {
	rec := event.Record{
		EventName:        event.StringPtr("Gala"),
		EventType:        event.StringPtr("talent show"),
		ParticipantCount: event.IntPtr(20),
	}
	_, key := BuildFollowup(rec, "")
	if key != "venue" {
		t.Fatalf("key = %q, want venue as first optional", key)
	}
}

func TestFollowupConfirmationShownOnce(t *testing.T) {
	rec := event.Record{
		EventName:        event.StringPtr("Gala"),
		EventType:        event.StringPtr("talent show"),
		ParticipantCount: event.IntPtr(20),
		Venue:            event.StringPtr("Town Hall"),
		StartDateTime:    event.StringPtr("2026-05-01T19:00"),
		ScoringMode:      event.ModePtr(event.ScoringJudges),
		Sponsor:          event.StringPtr("Acme"),
	}
	text, key := BuildFollowup(rec, "")
	if key != "done" || text == "" {
		t.Fatalf("first exhausted call = (%q, %q), want confirmation", text, key)
	}
	text, key = BuildFollowup(rec, key)
	if text != "" || key != "" {
		t.Fatalf("confirmation repeated: (%q, %q)", text, key)
	}
}
