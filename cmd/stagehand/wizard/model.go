// Package wizard is the interactive event-setup TUI: a chat pane driving the
// extraction loop on the left, the live field checklist on the right.
package wizard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"stagehand/cmd/stagehand/ui"
	"stagehand/internal/checklist"
	"stagehand/internal/event"
	"stagehand/internal/eventsapi"
	"stagehand/internal/extraction"
	"stagehand/internal/logging"
)

const greeting = `Hi! Tell me about the event you're setting up. A name, a date,
how many people, anything at all; I'll keep track on the right.`

// focusArea is which pane receives keys.
type focusArea int

const (
	focusChat focusArea = iota
	focusChecklist
)

// Options wires the wizard's collaborators.
type Options struct {
	Store     *event.Store
	Extractor extraction.Extractor
	// API may be nil when no backend is configured; saving is then disabled.
	API *eventsapi.Client

	HistoryWindow  int
	ExtractTimeout time.Duration
	Resumed        bool
}

// Model is the bubbletea model for the wizard.
type Model struct {
	styles ui.Styles

	store     *event.Store
	seq       *extraction.Sequencer
	extractor extraction.Extractor
	api       *eventsapi.Client

	editor *checklist.Editor
	syncer *checklist.Synchronizer
	rows   []checklist.Row

	chatView  viewport.Model
	listView  viewport.Model
	input     textarea.Model
	editInput textinput.Model
	editArea  textarea.Model
	spin      spinner.Model
	renderer  *glamour.TermRenderer

	focus  focusArea
	cursor int // selected row in the checklist pane

	attachment *extraction.Attachment
	saving     bool
	uploading  bool
	status     string

	extractTimeout time.Duration

	width  int
	height int
	ready  bool
}

// New assembles the wizard around an existing store (possibly hydrated from
// the server when resuming).
func New(opts Options) *Model {
	styles := ui.DefaultStyles()

	input := textarea.New()
	input.Placeholder = "Describe your event..."
	input.ShowLineNumbers = false
	input.SetHeight(2)
	input.Focus()

	editInput := textinput.New()
	editArea := textarea.New()
	editArea.ShowLineNumbers = false
	editArea.SetHeight(3)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		logging.Get(logging.CategoryWizard).Warn("glamour unavailable: %v", err)
	}

	window := opts.HistoryWindow
	if window <= 0 {
		window = 8
	}
	timeout := opts.ExtractTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	seq := extraction.NewSequencer(opts.Store, window)
	if opts.Resumed {
		seq.SeedAssistant("Welcome back! Here's where we left off; tell me what's changed.")
	} else {
		seq.SeedAssistant(greeting)
	}

	m := &Model{
		styles:         styles,
		store:          opts.Store,
		seq:            seq,
		extractor:      opts.Extractor,
		api:            opts.API,
		editor:         &checklist.Editor{},
		syncer:         checklist.NewSynchronizer(),
		chatView:       viewport.New(0, 0),
		listView:       viewport.New(0, 0),
		input:          input,
		editInput:      editInput,
		editArea:       editArea,
		spin:           spin,
		renderer:       renderer,
		extractTimeout: timeout,
	}
	// Scroll decisions derive from store changes, not from diffing renders.
	opts.Store.Subscribe(m.syncer.Observe)
	m.rows = checklist.BuildRows(opts.Store.Get(), m.editor)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}
