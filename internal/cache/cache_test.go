package cache

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stagehand/internal/eventsapi"
)

func openTestCache(t *testing.T) *EventCache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), ".stagehand", "events.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestListRoundTrip(t *testing.T) {
	c := openTestCache(t)
	in := []eventsapi.Summary{
		{ID: "1", Name: "Gala", Status: "DRAFT", StartDate: "2026-05-01", ParticipantCount: 40, EventCode: "AAA111"},
		{ID: "2", Name: "Quiz", Status: "OPEN", StartDate: "2026-04-01", ParticipantCount: 16, EventCode: "BBB222"},
	}
	if err := c.SaveList(in); err != nil {
		t.Fatalf("SaveList: %v", err)
	}
	got, err := c.LoadList()
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveListOverwrites(t *testing.T) {
	c := openTestCache(t)
	if err := c.SaveList([]eventsapi.Summary{
		{ID: "1", Name: "Old Gala"},
		{ID: "2", Name: "Old Quiz"},
	}); err != nil {
		t.Fatalf("first SaveList: %v", err)
	}
	if err := c.SaveList([]eventsapi.Summary{{ID: "3", Name: "Fresh"}}); err != nil {
		t.Fatalf("second SaveList: %v", err)
	}

	got, err := c.LoadList()
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("cache = %v, want only the fresh server rows", got)
	}
}

func TestEmptyCacheLoadsNothing(t *testing.T) {
	c := openTestCache(t)
	got, err := c.LoadList()
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("fresh cache returned %v", got)
	}
}
