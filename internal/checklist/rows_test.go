package checklist

import (
	"testing"

	"stagehand/internal/event"
)

func TestBuildRowsFixedThenDynamic(t *testing.T) {
	rec := event.Record{
		EventName: event.StringPtr("Spring Gala"),
		DynamicFields: []event.DynamicField{
			{ID: "f1", Label: "Venue", Value: nil, Kind: event.KindLocation},
		},
	}
	rows := BuildRows(rec, nil)

	if len(rows) != DynamicOffset+1 {
		t.Fatalf("rows = %d, want %d fixed + 1 dynamic", len(rows), DynamicOffset)
	}
	if rows[0].Label != "Event name" || rows[0].Value != "Spring Gala" || !rows[0].Done {
		t.Fatalf("name row = %+v", rows[0])
	}
	venue := rows[DynamicOffset]
	if venue.Label != "Venue" || venue.Value != "" || venue.Done || !venue.Editable {
		t.Fatalf("dynamic row = %+v, want empty editable placeholder", venue)
	}
	if venue.FieldIndex != 0 || venue.FieldID != "f1" {
		t.Fatalf("dynamic row addressing = %+v", venue)
	}
}

func TestBuildRowsShowsDraftForFieldUnderEdit(t *testing.T) {
	f := event.DynamicField{ID: "f1", Label: "Venue", Value: "Hall B", Kind: event.KindLocation}
	rec := event.Record{DynamicFields: []event.DynamicField{f}}

	var e Editor
	e.Open(f)
	e.SetDraft("Hall A")

	rows := BuildRows(rec, &e)
	if got := rows[DynamicOffset].Value; got != "Hall A" {
		t.Fatalf("value = %q, want the open draft", got)
	}
}

func TestBuildRowsMarksRequired(t *testing.T) {
	rows := BuildRows(event.Record{}, nil)
	required := 0
	for _, r := range rows {
		if r.Required {
			required++
		}
	}
	if required != 3 {
		t.Fatalf("required rows = %d, want name, type, participants", required)
	}
}

func TestFormatScoring(t *testing.T) {
	cases := []struct {
		name string
		rec  event.Record
		want string
	}{
		{"unset", event.Record{}, ""},
		{"judges", event.Record{ScoringMode: event.ModePtr(event.ScoringJudges)}, "Judges only"},
		{"audience", event.Record{ScoringMode: event.ModePtr(event.ScoringAudience)}, "Audience only"},
		{"mixed fractions", event.Record{
			ScoringMode:     event.ModePtr(event.ScoringMixed),
			ScoringJudge:    event.FloatPtr(0.6),
			ScoringAudience: event.FloatPtr(0.4),
		}, "Mixed (60% judges / 40% audience)"},
		{"mixed percents", event.Record{
			ScoringMode:     event.ModePtr(event.ScoringMixed),
			ScoringJudge:    event.FloatPtr(70),
			ScoringAudience: event.FloatPtr(30),
		}, "Mixed (70% judges / 30% audience)"},
		{"mixed no split", event.Record{ScoringMode: event.ModePtr(event.ScoringMixed)}, "Mixed"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FormatScoring(c.rec); got != c.want {
				t.Fatalf("FormatScoring = %q, want %q", got, c.want)
			}
		})
	}
}

func TestFormatDateTimeRange(t *testing.T) {
	cases := []struct {
		name  string
		start *string
		end   *string
		want  string
	}{
		{"unset", nil, nil, ""},
		{"start only", event.StringPtr("2026-05-01T19:00"), nil, "Fri, May 1 2026 19:00"},
		{"same day", event.StringPtr("2026-05-01T19:00"), event.StringPtr("2026-05-01T22:00"),
			"Fri, May 1 2026 19:00 to 22:00"},
		{"spans days", event.StringPtr("2026-05-01T19:00"), event.StringPtr("2026-05-02T01:00"),
			"Fri, May 1 2026 19:00 to Sat, May 2 2026 01:00"},
		{"unparseable passthrough", event.StringPtr("next friday"), event.StringPtr("late"),
			"next friday to late"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FormatDateTimeRange(c.start, c.end); got != c.want {
				t.Fatalf("range = %q, want %q", got, c.want)
			}
		})
	}
}
