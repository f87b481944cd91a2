// Package extraction talks to the field-extraction collaborator and merges
// its answers into the canonical event record. Two transports implement the
// same contract: the HTTP backend and a direct Gemini client. The sequencer
// above them cannot tell which one it is driving.
package extraction

import (
	"context"

	"stagehand/internal/event"
)

// Message is one chat turn on the wire, oldest first.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Attachment is an optional file sent alongside the user's message.
type Attachment struct {
	Name string
	MIME string
	Data []byte
}

// Request carries everything the extraction collaborator needs: the bounded
// conversation window, the fixed fields already known (so the response can be
// a coherent superset), and an optional attachment.
type Request struct {
	Messages   []Message
	Known      KnownFields
	Attachment *Attachment
}

// KnownFields is the flat snake_case snapshot of captured fixed fields.
// Unset fields marshal as null.
type KnownFields struct {
	EventName        *string  `json:"event_name"`
	EventType        *string  `json:"event_type"`
	ParticipantCount *int     `json:"participant_count"`
	ScoringMode      *string  `json:"scoring_mode"`
	ScoringAudience  *float64 `json:"scoring_audience"`
	ScoringJudge     *float64 `json:"scoring_judge"`
	Venue            *string  `json:"venue"`
	StartDateTime    *string  `json:"start_date_time"`
	EndDateTime      *string  `json:"end_date_time"`
	Sponsor          *string  `json:"sponsor"`
	Rules            *string  `json:"rules"`
	AudienceLimit    *int     `json:"audience_limit"`
}

// KnownFromRecord projects the record's fixed fields onto the wire shape.
func KnownFromRecord(rec event.Record) KnownFields {
	k := KnownFields{
		EventName:        rec.EventName,
		EventType:        rec.EventType,
		ParticipantCount: rec.ParticipantCount,
		ScoringAudience:  rec.ScoringAudience,
		ScoringJudge:     rec.ScoringJudge,
		Venue:            rec.Venue,
		StartDateTime:    rec.StartDateTime,
		EndDateTime:      rec.EndDateTime,
		Sponsor:          rec.Sponsor,
		Rules:            rec.Rules,
		AudienceLimit:    rec.AudienceLimit,
	}
	if rec.ScoringMode != nil {
		m := string(*rec.ScoringMode)
		k.ScoringMode = &m
	}
	return k
}

// FieldUpdate is one dynamic checklist entry as the service returns it.
type FieldUpdate struct {
	Label string `json:"label"`
	Value any    `json:"value"`
	Type  string `json:"type"`
}

// Response is the extraction result: a fixed-field snapshot where null means
// "nothing new for this key", an optional full-replacement dynamic field
// list, and the assistant's reply. DynamicFields distinguishes absent (nil
// pointer, no list change) from present-but-empty (replace with nothing).
type Response struct {
	EventName        *string  `json:"eventName"`
	EventType        *string  `json:"eventType"`
	ParticipantCount *int     `json:"participantCount"`
	ScoringMode      *string  `json:"scoringMode"`
	ScoringAudience  *float64 `json:"scoringAudience"`
	ScoringJudge     *float64 `json:"scoringJudge"`
	Venue            *string  `json:"venue"`
	StartDateTime    *string  `json:"startDateTime"`
	EndDateTime      *string  `json:"endDateTime"`
	Sponsor          *string  `json:"sponsor"`
	Rules            *string  `json:"rules"`
	AudienceLimit    *int     `json:"audienceLimit"`

	DynamicFields *[]FieldUpdate `json:"dynamicFields,omitempty"`
	Message       string         `json:"message"`
}

// Extractor is the transport boundary. Implementations must treat transport
// failure and unparseable bodies uniformly as an error; a returned Response
// is always safe to merge.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*Response, error)
}
