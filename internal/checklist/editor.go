// Package checklist derives the field checklist shown beside the chat: the
// render rows, the per-field edit session, and the scroll plan that follows
// each mutation.
package checklist

import (
	"stagehand/internal/event"
)

// Editor is the edit session for at most one dynamic field at a time. It
// tracks fields by durable id, not by index, so the session survives a
// concurrent merge that reorders or re-values the list. While a session is
// open the draft is the field's displayed value; the committed value changing
// underneath never clobbers it.
type Editor struct {
	fieldID string
	kind    event.FieldKind
	draft   string
}

// Editing reports whether a session is open.
func (e *Editor) Editing() bool { return e.fieldID != "" }

// EditingID returns the id of the field under edit, or "".
func (e *Editor) EditingID() string { return e.fieldID }

// Open starts a session on f, seeding the draft from the value committed at
// this moment. Opening while another session is active implicitly commits
// nothing; the previous draft is discarded (matches blur-to-switch behavior
// being routed through Commit by the caller first).
func (e *Editor) Open(f event.DynamicField) {
	e.fieldID = f.ID
	e.kind = f.Kind
	e.draft = f.ValueString()
}

// Draft returns the in-progress text.
func (e *Editor) Draft() string { return e.draft }

// SetDraft mirrors the input widget's current text into the session.
func (e *Editor) SetDraft(s string) {
	if e.Editing() {
		e.draft = s
	}
}

// DisplayValue returns what the row for f should render: the open draft when
// f is under edit, the committed value otherwise.
func (e *Editor) DisplayValue(f event.DynamicField) string {
	if e.fieldID == f.ID {
		return e.draft
	}
	return f.ValueString()
}

// Commit closes the session and hands back the field id and the draft the
// user actually typed. ok is false when nothing was being edited.
func (e *Editor) Commit() (id, draft string, ok bool) {
	if !e.Editing() {
		return "", "", false
	}
	id, draft = e.fieldID, e.draft
	e.reset()
	return id, draft, true
}

// Cancel discards the draft and reverts to the committed value.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.fieldID = ""
	e.kind = event.KindUnknown
	e.draft = ""
}

// KeyAction classifies a keypress inside an open session.
type KeyAction int

const (
	KeyPass   KeyAction = iota // let the input widget handle it
	KeyCommit                  // close the session, keep the draft
	KeyCancel                  // close the session, drop the draft
)

// ClassifyKey maps the submit and cancel keys for the session's kind.
// Multi-line kinds never commit on enter; there ctrl+s confirms and enter
// stays a newline. Esc cancels everywhere.
func (e *Editor) ClassifyKey(key string) KeyAction {
	if !e.Editing() {
		return KeyPass
	}
	switch key {
	case "esc":
		return KeyCancel
	case "enter":
		if e.kind.MultiLine() {
			return KeyPass
		}
		return KeyCommit
	case "ctrl+s", "tab":
		return KeyCommit
	}
	return KeyPass
}
