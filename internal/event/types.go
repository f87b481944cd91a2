// Package event holds the canonical event-under-construction record and the
// store that owns it. The store is the single shared mutable resource of the
// wizard: assistant merges, direct user edits, and server hydration all land
// here, and every rendering consumer observes mutations synchronously.
package event

import (
	"fmt"
	"strings"
)

// ScoringMode selects how an event is judged.
type ScoringMode string

const (
	ScoringJudges   ScoringMode = "judges"
	ScoringAudience ScoringMode = "audience"
	ScoringMixed    ScoringMode = "mixed"
)

// Status mirrors the backend's event lifecycle states.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusOpen     Status = "OPEN"
	StatusFinished Status = "FINISHED"
)

// Record is the canonical in-progress event. Fixed fields are nullable until
// known; nil means "not captured yet". DynamicFields is the open-ended
// checklist tail whose shape is only known at runtime. The two namespaces are
// kept separate here and merged only at the rendering boundary.
type Record struct {
	ID        string
	EventCode string

	EventName        *string
	EventType        *string
	ParticipantCount *int

	ScoringMode     *ScoringMode
	ScoringAudience *float64
	ScoringJudge    *float64

	Venue         *string
	StartDateTime *string
	EndDateTime   *string

	Sponsor       *string
	Rules         *string
	AudienceLimit *int

	Image *string

	// Ordered; order is render order. The last entry is the most recently
	// introduced field.
	DynamicFields []DynamicField
}

// RequiredComplete reports whether the fields gating forward navigation are
// all captured: name, type, and participant count.
func (r Record) RequiredComplete() bool {
	return r.EventName != nil && r.EventType != nil && r.ParticipantCount != nil
}

// MissingRequired lists the human-readable names of unset required fields.
func (r Record) MissingRequired() []string {
	var missing []string
	if r.EventName == nil {
		missing = append(missing, "the event name")
	}
	if r.EventType == nil {
		missing = append(missing, "the event type")
	}
	if r.ParticipantCount == nil {
		missing = append(missing, "how many participants you expect")
	}
	return missing
}

// FieldKind is the closed set of semantic types a dynamic field can carry.
// Each kind maps to exactly one input-control strategy in the checklist.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindNumber      FieldKind = "number"
	KindDate        FieldKind = "date"
	KindTime        FieldKind = "time"
	KindLocation    FieldKind = "location"
	KindDescription FieldKind = "description"
	KindUnknown     FieldKind = "unknown"
)

// ParseFieldKind maps a wire type string to a FieldKind, defaulting to
// KindUnknown for anything outside the closed set.
func ParseFieldKind(s string) FieldKind {
	switch FieldKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindText, KindNumber, KindDate, KindTime, KindLocation, KindDescription:
		return FieldKind(strings.ToLower(strings.TrimSpace(s)))
	default:
		return KindUnknown
	}
}

// MultiLine reports whether values of this kind need a multi-line editor.
// Multi-line fields must never commit on the single-line submit key.
func (k FieldKind) MultiLine() bool {
	return k == KindDescription
}

// DynamicField is one runtime-declared checklist entry. Label is the display
// key and, for compatibility with the extraction service, also the loose
// identity used across merges (case-sensitive). ID is a durable identifier
// assigned when the field is first seen and preserved across merges that
// reuse the label, so an open edit session survives a value-only update.
type DynamicField struct {
	ID    string
	Label string
	Value any // string, float64, int, or nil
	Kind  FieldKind
}

// ValueString renders the opaque scalar for display. Nil renders empty.
func (f DynamicField) ValueString() string {
	switch v := f.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ChatTurn is one entry in the append-only conversation log.
type ChatTurn struct {
	Sender string // "user" or "assistant"
	Text   string
}

// Patch is a shallow merge of fixed fields into the Record. Nil pointers are
// left unchanged; there is no way to clear a captured field through a patch,
// matching the merge-over rule for extraction snapshots.
type Patch struct {
	ID        *string
	EventCode *string

	EventName        *string
	EventType        *string
	ParticipantCount *int

	ScoringMode     *ScoringMode
	ScoringAudience *float64
	ScoringJudge    *float64

	Venue         *string
	StartDateTime *string
	EndDateTime   *string

	Sponsor       *string
	Rules         *string
	AudienceLimit *int

	Image *string
}

// IsZero reports whether the patch carries no updates at all.
func (p Patch) IsZero() bool {
	return p == Patch{}
}

// String pointer helper used throughout the wizard.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// ModePtr returns a pointer to m.
func ModePtr(m ScoringMode) *ScoringMode { return &m }
