package extraction

import (
	"fmt"

	"stagehand/internal/event"
)

type followupStep struct {
	key      string
	desc     string
	question string
	unset    func(event.Record) bool
}

// Required steps gate saving; optional ones just round out the record. Order
// here is the order the assistant walks the user through.
var followupSteps = []followupStep{
	{"eventName", "the event name", "What should the event be called?",
		func(r event.Record) bool { return r.EventName == nil }},
	{"eventType", "the event type", "What kind of event is it (talent show, quiz night, pitch contest)?",
		func(r event.Record) bool { return r.EventType == nil }},
	{"participantCount", "the number of participants", "Roughly how many participants are you expecting?",
		func(r event.Record) bool { return r.ParticipantCount == nil }},
	{"venue", "the venue", "Where will it take place?",
		func(r event.Record) bool { return r.Venue == nil }},
	{"startDateTime", "the start date", "When does it start?",
		func(r event.Record) bool { return r.StartDateTime == nil }},
	{"scoringMode", "the scoring setup", "How should scoring work: judges, audience, or a mix?",
		func(r event.Record) bool { return r.ScoringMode == nil }},
	{"sponsor", "a sponsor", "Is there a sponsor to mention?",
		func(r event.Record) bool { return r.Sponsor == nil }},
}

const followupDoneKey = "done"

// BuildFollowup returns the next guidance line for the user and a key naming
// the field it asks about. Asking for the same field twice in a row switches
// to "still missing" phrasing. Once nothing is left it returns a confirmation
// exactly once (key "done"); after that both returns are empty.
func BuildFollowup(rec event.Record, lastKey string) (text, key string) {
	for _, step := range followupSteps {
		if !step.unset(rec) {
			continue
		}
		if step.key == lastKey {
			return fmt.Sprintf("I still need %s before we can move on. %s", step.desc, step.question), step.key
		}
		return step.question, step.key
	}
	if lastKey == followupDoneKey {
		return "", ""
	}
	return "That covers everything I need. Say \"save it\" whenever you're ready.", followupDoneKey
}
