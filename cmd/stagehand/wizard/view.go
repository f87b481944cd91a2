package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stagehand/internal/checklist"
)

func (m *Model) layout(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	chatWidth := width * 3 / 5
	listWidth := width - chatWidth - 6
	paneHeight := height - 7

	if chatWidth < 20 {
		chatWidth = 20
	}
	if listWidth < 20 {
		listWidth = 20
	}
	if paneHeight < 5 {
		paneHeight = 5
	}

	m.chatView.Width = chatWidth
	m.chatView.Height = paneHeight
	m.listView.Width = listWidth
	m.listView.Height = paneHeight
	m.input.SetWidth(chatWidth)
	m.editInput.Width = listWidth - 4
	m.editArea.SetWidth(listWidth - 2)
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Setting the stage..."
	}

	chat := m.styles.ChatPane.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.chatView.View(),
		m.inputLine(),
	))
	list := m.styles.ChecklistPane.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Checklist"),
		m.listView.View(),
	))

	body := lipgloss.JoinHorizontal(lipgloss.Top, chat, list)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer())
}

func (m *Model) inputLine() string {
	if m.seq.InFlight() {
		return m.spin.View() + m.styles.Muted.Render(" thinking...")
	}
	return m.input.View()
}

func (m *Model) footer() string {
	hints := "enter send · tab switch pane · ctrl+s save · ctrl+c quit"
	if m.focus == focusChecklist {
		hints = "↑/↓ select · enter edit · tab back to chat · ctrl+c quit"
	}
	if m.editor.Editing() {
		hints = "enter commit · esc cancel"
		if m.editArea.Focused() {
			hints = "ctrl+s commit · esc cancel · enter newline"
		}
	}
	line := m.styles.Footer.Render(hints)
	if m.status != "" {
		line = lipgloss.JoinVertical(lipgloss.Left, m.styles.Footer.Render(m.status), line)
	}
	return line
}

func (m *Model) refreshChat() {
	var sb strings.Builder
	for _, turn := range m.seq.Turns() {
		if turn.Sender == "user" {
			sb.WriteString(m.styles.UserTurn.Render("You") + "\n")
			sb.WriteString(turn.Text)
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(m.styles.AssistantTurn.Render(m.safeRenderMarkdown(turn.Text)))
		sb.WriteString("\n")
	}
	m.chatView.SetContent(sb.String())
	m.chatView.GotoBottom()
}

func (m *Model) refreshChecklist() {
	m.rows = checklist.BuildRows(m.store.Get(), m.editor)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.listView.SetContent(m.renderChecklist())
}

func (m *Model) renderChecklist() string {
	var sb strings.Builder
	for i, row := range m.rows {
		mark := m.styles.MarkPending.Render("○")
		if row.Done {
			mark = m.styles.MarkDone.Render("✓")
		}

		label := m.styles.RowLabel.Render(row.Label)
		if row.Required && !row.Done {
			label += m.styles.Warning.Render("*")
		}

		var value string
		switch {
		case m.editor.Editing() && m.editor.EditingID() == row.FieldID && row.FieldID != "":
			if m.editArea.Focused() {
				value = "\n" + m.editArea.View()
			} else {
				value = m.editInput.View()
			}
			label = m.styles.RowEditing.Render(row.Label)
		case row.Value == "":
			value = m.styles.RowEmpty.Render("—")
		default:
			value = m.styles.RowValue.Render(row.Value)
		}

		line := fmt.Sprintf("%s %s: %s", mark, label, value)
		if m.focus == focusChecklist && i == m.cursor && !m.editor.Editing() {
			line = m.styles.RowSelected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery; glamour can choke
// on odd model output and the wizard must never crash over a reply.
func (m *Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			return strings.TrimRight(rendered, "\n") + "\n"
		}
	}
	return content
}
