package event

import (
	"sync"

	"github.com/google/uuid"
)

// ChangeKind discriminates store mutations for observers.
type ChangeKind int

const (
	// PatchApplied means fixed fields changed; Delta is zero.
	PatchApplied ChangeKind = iota
	// FieldsReplaced means the dynamic list was swapped wholesale. Delta is
	// new length minus old length, so consumers never diff lengths themselves.
	FieldsReplaced
	// ValueSet means a single dynamic field's value was committed in place.
	ValueSet
	// RecordReset means the whole record was discarded.
	RecordReset
)

// Change describes one store mutation, delivered synchronously to
// subscribers before the mutating call returns.
type Change struct {
	Kind  ChangeKind
	Delta int // list growth for FieldsReplaced
	Index int // touched index for ValueSet, -1 otherwise
}

// Store owns the canonical Record. All mutations go through it; reads return
// copies so callers can never alias internal state. A mutex guards the record
// because the non-interactive commands and tests run without the TUI loop.
type Store struct {
	mu    sync.Mutex
	rec   Record
	subs  []func(Change)
	newID func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// NewStoreFrom seeds the store with an existing record, assigning durable
// ids to any dynamic fields that lack one. Used when resuming an event.
func NewStoreFrom(rec Record) *Store {
	s := NewStore()
	for i := range rec.DynamicFields {
		if rec.DynamicFields[i].ID == "" {
			rec.DynamicFields[i].ID = s.newID()
		}
	}
	s.rec = rec
	return s
}

// Subscribe registers an observer invoked synchronously on every mutation,
// in registration order, while the mutation lock is NOT held. Observers must
// not call back into the store from the callback.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Get returns a deep copy of the current record.
func (s *Store) Get() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() Record {
	rec := s.rec
	rec.DynamicFields = append([]DynamicField(nil), s.rec.DynamicFields...)
	return rec
}

// Patch merges non-nil fixed fields over the record. A zero patch is a no-op
// and notifies nobody.
func (s *Store) Patch(p Patch) {
	if p.IsZero() {
		return
	}
	s.mu.Lock()
	if p.ID != nil {
		s.rec.ID = *p.ID
	}
	if p.EventCode != nil {
		s.rec.EventCode = *p.EventCode
	}
	if p.EventName != nil {
		s.rec.EventName = p.EventName
	}
	if p.EventType != nil {
		s.rec.EventType = p.EventType
	}
	if p.ParticipantCount != nil {
		s.rec.ParticipantCount = p.ParticipantCount
	}
	if p.ScoringMode != nil {
		s.rec.ScoringMode = p.ScoringMode
	}
	if p.ScoringAudience != nil {
		s.rec.ScoringAudience = p.ScoringAudience
	}
	if p.ScoringJudge != nil {
		s.rec.ScoringJudge = p.ScoringJudge
	}
	if p.Venue != nil {
		s.rec.Venue = p.Venue
	}
	if p.StartDateTime != nil {
		s.rec.StartDateTime = p.StartDateTime
	}
	if p.EndDateTime != nil {
		s.rec.EndDateTime = p.EndDateTime
	}
	if p.Sponsor != nil {
		s.rec.Sponsor = p.Sponsor
	}
	if p.Rules != nil {
		s.rec.Rules = p.Rules
	}
	if p.AudienceLimit != nil {
		s.rec.AudienceLimit = p.AudienceLimit
	}
	if p.Image != nil {
		s.rec.Image = p.Image
	}
	s.mu.Unlock()
	s.notify(Change{Kind: PatchApplied, Index: -1})
}

// ReplaceFields swaps the dynamic list wholesale. Incoming fields carry no
// ids; a field whose label matches an existing one inherits that field's
// durable id, everything else gets a fresh one. Label matching is
// case-sensitive, first match wins, and an existing id is inherited at most
// once. Emits FieldsReplaced with the length delta.
func (s *Store) ReplaceFields(fields []DynamicField) {
	s.mu.Lock()
	old := len(s.rec.DynamicFields)
	byLabel := make(map[string]string, old)
	for _, f := range s.rec.DynamicFields {
		if _, ok := byLabel[f.Label]; !ok {
			byLabel[f.Label] = f.ID
		}
	}
	next := make([]DynamicField, len(fields))
	for i, f := range fields {
		if id, ok := byLabel[f.Label]; ok {
			f.ID = id
			delete(byLabel, f.Label)
		} else if f.ID == "" {
			f.ID = s.newID()
		}
		next[i] = f
	}
	s.rec.DynamicFields = next
	delta := len(next) - old
	s.mu.Unlock()
	s.notify(Change{Kind: FieldsReplaced, Delta: delta, Index: -1})
}

// SetFieldValue commits a value into the dynamic field at index i. Out of
// range indexes are ignored; the list may have been replaced since the
// caller last looked.
func (s *Store) SetFieldValue(i int, value any) {
	s.mu.Lock()
	if i < 0 || i >= len(s.rec.DynamicFields) {
		s.mu.Unlock()
		return
	}
	s.rec.DynamicFields[i].Value = value
	s.mu.Unlock()
	s.notify(Change{Kind: ValueSet, Index: i})
}

// Reset discards everything, returning the store to its initial empty state.
func (s *Store) Reset() {
	s.mu.Lock()
	s.rec = Record{}
	s.mu.Unlock()
	s.notify(Change{Kind: RecordReset, Index: -1})
}

func (s *Store) notify(c Change) {
	s.mu.Lock()
	subs := make([]func(Change), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(c)
	}
}
