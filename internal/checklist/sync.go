package checklist

import "stagehand/internal/event"

// SyncAction says what the viewport should do after a round of mutations.
type SyncAction int

const (
	SyncNone     SyncAction = iota
	SyncCenterOn            // center the row at Index
	SyncToEnd               // scroll to the end of the list
)

// SyncPlan is one scroll decision. Index is meaningful only for SyncCenterOn.
type SyncPlan struct {
	Action SyncAction
	Index  int
}

// Synchronizer folds store changes into a single scroll decision per render.
// A user-committed field always wins over list growth: the user is looking
// at the row they just edited, not at whatever the assistant appended.
type Synchronizer struct {
	touched int
	grew    bool
}

// NewSynchronizer returns a synchronizer with no pending plan.
func NewSynchronizer() *Synchronizer {
	return &Synchronizer{touched: -1}
}

// Observe records one store change. Safe to call any number of times
// between Takes.
func (s *Synchronizer) Observe(c event.Change) {
	switch c.Kind {
	case event.ValueSet:
		s.touched = c.Index
	case event.FieldsReplaced:
		if c.Delta > 0 {
			s.grew = true
		}
	case event.RecordReset:
		s.touched = -1
		s.grew = false
	}
}

// Take returns the accumulated plan and clears it. Manual scrolling by the
// user is not tracked here; callers apply the plan best-effort.
func (s *Synchronizer) Take() SyncPlan {
	plan := SyncPlan{Action: SyncNone, Index: -1}
	switch {
	case s.touched >= 0:
		plan = SyncPlan{Action: SyncCenterOn, Index: s.touched}
	case s.grew:
		plan = SyncPlan{Action: SyncToEnd, Index: -1}
	}
	s.touched = -1
	s.grew = false
	return plan
}
