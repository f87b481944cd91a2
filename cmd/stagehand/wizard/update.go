package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"stagehand/internal/checklist"
	"stagehand/internal/event"
	"stagehand/internal/extraction"
	"stagehand/internal/logging"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		m.refreshChat()
		m.refreshChecklist()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.seq.InFlight() && !m.saving && !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case extractionResultMsg:
		applied := m.seq.Resolve(msg.token, msg.resp, msg.err)
		logging.ExtractionDebug("resolved token=%d applied=%v", msg.token, applied)
		m.refreshChat()
		m.refreshChecklist()
		m.applySyncPlan()
		return m, nil

	case attachedMsg:
		if msg.err != nil {
			m.status = m.styles.Error.Render(msg.err.Error())
			return m, nil
		}
		m.attachment = msg.att
		m.status = fmt.Sprintf("Attached %s; it will ride along with your next message", msg.att.Name)
		return m, nil

	case saveResultMsg:
		m.saving = false
		if msg.err != nil {
			m.status = m.styles.Error.Render("Save failed: " + msg.err.Error())
			return m, nil
		}
		if msg.created {
			m.store.Patch(event.Patch{ID: &msg.id})
			rec := m.store.Get()
			m.seq.SeedAssistant(fmt.Sprintf(
				"Saved! Your event code is **%s**. Share it with your audience, or keep refining the details.",
				rec.EventCode))
			m.refreshChat()
		}
		m.status = m.styles.Success.Render("Event saved")
		m.refreshChecklist()
		return m, nil

	case importResultMsg:
		m.uploading = false
		if msg.err != nil {
			m.status = m.styles.Error.Render("Import failed: " + msg.err.Error())
			return m, nil
		}
		m.status = fmt.Sprintf("Imported %d of %d participants (%d skipped, %d problems)",
			msg.sum.Created, msg.sum.TotalRows, msg.sum.Skipped, len(msg.sum.Errors))
		return m, nil

	case imageResultMsg:
		m.uploading = false
		if msg.err != nil {
			m.status = m.styles.Error.Render("Image upload failed: " + msg.err.Error())
			return m, nil
		}
		m.status = m.styles.Success.Render("Image uploaded")
		return m, nil
	}

	return m, m.forwardToFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.editor.Editing() {
		return m.handleEditKey(msg)
	}

	switch key {
	case "ctrl+s":
		return m, m.saveEvent()
	case "tab":
		if m.focus == focusChat {
			m.focus = focusChecklist
			m.input.Blur()
		} else {
			m.focus = focusChat
			m.input.Focus()
		}
		return m, nil
	}

	if m.focus == focusChecklist {
		return m.handleChecklistKey(key)
	}

	if key == "enter" {
		return m, m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.editor.ClassifyKey(msg.String()) {
	case checklist.KeyCommit:
		m.commitEdit()
		return m, nil
	case checklist.KeyCancel:
		m.editor.Cancel()
		m.editInput.Blur()
		m.editArea.Blur()
		m.refreshChecklist()
		return m, nil
	}

	var cmd tea.Cmd
	if m.editArea.Focused() {
		m.editArea, cmd = m.editArea.Update(msg)
		m.editor.SetDraft(m.editArea.Value())
	} else {
		m.editInput, cmd = m.editInput.Update(msg)
		m.editor.SetDraft(m.editInput.Value())
	}
	m.refreshChecklist()
	return m, cmd
}

func (m *Model) handleChecklistKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.rows) && m.rows[m.cursor].Editable {
			m.openEdit(m.rows[m.cursor])
		}
	case "pgup":
		m.listView.HalfViewUp()
	case "pgdown":
		m.listView.HalfViewDown()
	}
	m.refreshChecklist()
	return m, nil
}

// submit admits the chat input to the sequencer, or runs a slash command.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		return m.runCommand(text)
	}

	req, token, outcome := m.seq.Begin(text, m.attachment)
	switch outcome {
	case extraction.OutcomeRejected:
		if m.seq.InFlight() {
			m.status = "Still thinking about your last message; one moment"
		}
		return nil
	case extraction.OutcomeClarified:
		m.input.Reset()
		m.refreshChat()
		return nil
	}

	m.attachment = nil
	m.input.Reset()
	m.status = ""
	m.refreshChat()
	logging.Extraction("dispatching request token=%d turns=%d", token, len(req.Messages))
	return tea.Batch(
		m.spin.Tick,
		extractCmd(m.extractor, req, token, m.extractTimeout),
	)
}

func (m *Model) runCommand(text string) tea.Cmd {
	fields := strings.Fields(text)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "/attach":
		if len(args) != 1 {
			m.status = "Usage: /attach <file>"
			return nil
		}
		return attachCmd(args[0])
	case "/save":
		return m.saveEvent()
	case "/import":
		if len(args) != 1 {
			m.status = "Usage: /import <file.csv>"
			return nil
		}
		return m.upload(func(id string) tea.Cmd {
			return importCmd(m.api, id, args[0], m.extractTimeout)
		})
	case "/image":
		if len(args) != 1 {
			m.status = "Usage: /image <file>"
			return nil
		}
		return m.upload(func(id string) tea.Cmd {
			return imageCmd(m.api, id, args[0], m.extractTimeout)
		})
	case "/reset":
		m.store.Reset()
		m.status = "Cleared; starting fresh"
		m.refreshChecklist()
		return nil
	case "/quit":
		return tea.Quit
	}
	m.status = "Unknown command " + cmd
	return nil
}

// saveEvent persists the record, gated on the required fields. Blocking the
// save never touches entered data.
func (m *Model) saveEvent() tea.Cmd {
	if m.saving {
		return nil
	}
	rec := m.store.Get()
	if !rec.RequiredComplete() {
		m.status = m.styles.Warning.Render(
			"Before saving I still need " + strings.Join(rec.MissingRequired(), ", "))
		return nil
	}
	if m.api == nil {
		m.status = m.styles.Warning.Render("No backend configured; the event stays local")
		return nil
	}
	m.saving = true
	m.status = "Saving..."
	return tea.Batch(m.spin.Tick, saveCmd(m.api, m.store, m.extractTimeout))
}

// upload runs one upload Cmd, keeping its triggering control disabled until
// the result message lands.
func (m *Model) upload(build func(eventID string) tea.Cmd) tea.Cmd {
	if m.uploading {
		return nil
	}
	rec := m.store.Get()
	if rec.ID == "" {
		m.status = m.styles.Warning.Render("Save the event first (ctrl+s)")
		return nil
	}
	if m.api == nil {
		m.status = m.styles.Warning.Render("No backend configured")
		return nil
	}
	m.uploading = true
	m.status = "Uploading..."
	return tea.Batch(m.spin.Tick, build(rec.ID))
}

func (m *Model) openEdit(row checklist.Row) {
	rec := m.store.Get()
	for _, f := range rec.DynamicFields {
		if f.ID != row.FieldID {
			continue
		}
		m.editor.Open(f)
		if f.Kind.MultiLine() {
			m.editArea.SetValue(m.editor.Draft())
			m.editArea.Focus()
		} else {
			m.editInput.SetValue(m.editor.Draft())
			m.editInput.Focus()
			m.editInput.CursorEnd()
		}
		m.refreshChecklist()
		return
	}
}

func (m *Model) commitEdit() {
	id, draft, ok := m.editor.Commit()
	m.editInput.Blur()
	m.editArea.Blur()
	if !ok {
		return
	}
	// Resolve the index at commit time; a merge may have reordered the
	// list (or dropped the field) since the session opened.
	rec := m.store.Get()
	for i, f := range rec.DynamicFields {
		if f.ID == id {
			m.store.SetFieldValue(i, draft)
			break
		}
	}
	m.refreshChecklist()
	m.applySyncPlan()
}

func (m *Model) applySyncPlan() {
	plan := m.syncer.Take()
	switch plan.Action {
	case checklist.SyncToEnd:
		m.listView.GotoBottom()
	case checklist.SyncCenterOn:
		line := checklist.DynamicOffset + plan.Index
		offset := line - m.listView.Height/2
		if offset < 0 {
			offset = 0
		}
		m.listView.SetYOffset(offset)
	}
}

func (m *Model) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.editor.Editing() {
		if m.editArea.Focused() {
			m.editArea, cmd = m.editArea.Update(msg)
		} else {
			m.editInput, cmd = m.editInput.Update(msg)
		}
		return cmd
	}
	if m.focus == focusChat {
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	m.listView, cmd = m.listView.Update(msg)
	return cmd
}
