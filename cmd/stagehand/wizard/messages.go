package wizard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stagehand/internal/event"
	"stagehand/internal/eventsapi"
	"stagehand/internal/extraction"
	"stagehand/internal/logging"
)

// extractionResultMsg carries one extraction outcome back to the loop. The
// token lets the sequencer drop results from superseded calls.
type extractionResultMsg struct {
	token uint64
	resp  *extraction.Response
	err   error
}

// saveResultMsg is the outcome of persisting the event.
type saveResultMsg struct {
	id      string
	created bool
	err     error
}

// importResultMsg is the outcome of a participant CSV upload.
type importResultMsg struct {
	sum eventsapi.ImportSummary
	err error
}

// imageResultMsg is the outcome of an image upload.
type imageResultMsg struct {
	err error
}

// attachedMsg reports a file staged for the next extraction call.
type attachedMsg struct {
	att *extraction.Attachment
	err error
}

func extractCmd(ext extraction.Extractor, req extraction.Request, token uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		timer := logging.StartTimer(logging.CategoryExtraction, "extract")
		defer timer.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := ext.Extract(ctx, req)
		if err != nil {
			logging.Get(logging.CategoryExtraction).Error("extract failed: %v", err)
		}
		return extractionResultMsg{token: token, resp: resp, err: err}
	}
}

func saveCmd(api *eventsapi.Client, store *event.Store, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rec := store.Get()
		if rec.ID == "" {
			id, err := api.CreateEvent(ctx, rec)
			return saveResultMsg{id: id, created: true, err: err}
		}
		return saveResultMsg{id: rec.ID, err: api.UpdateEvent(ctx, rec.ID, rec)}
	}
}

func importCmd(api *eventsapi.Client, eventID, path string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importResultMsg{err: fmt.Errorf("reading %s: %w", path, err)}
		}
		if _, _, err := eventsapi.PreValidateCSV(strings.NewReader(string(data))); err != nil {
			return importResultMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sum, err := api.ImportParticipants(ctx, eventID, filepath.Base(path), data)
		return importResultMsg{sum: sum, err: err}
	}
}

func imageCmd(api *eventsapi.Client, eventID, path string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return imageResultMsg{err: fmt.Errorf("reading %s: %w", path, err)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return imageResultMsg{err: api.UploadImage(ctx, eventID, filepath.Base(path), data)}
	}
}

func attachCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return attachedMsg{err: fmt.Errorf("reading %s: %w", path, err)}
		}
		return attachedMsg{att: &extraction.Attachment{
			Name: filepath.Base(path),
			MIME: mimeForFile(path),
			Data: data,
		}}
	}
}

func mimeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
