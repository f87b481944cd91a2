package event

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPatchMergesOnlyNonNil(t *testing.T) {
	s := NewStore()
	s.Patch(Patch{EventName: StringPtr("Spring Gala"), ParticipantCount: IntPtr(40)})
	s.Patch(Patch{EventType: StringPtr("talent show")})

	rec := s.Get()
	if rec.EventName == nil || *rec.EventName != "Spring Gala" {
		t.Fatalf("EventName = %v, want Spring Gala", rec.EventName)
	}
	if rec.EventType == nil || *rec.EventType != "talent show" {
		t.Fatalf("EventType = %v, want talent show", rec.EventType)
	}
	if rec.ParticipantCount == nil || *rec.ParticipantCount != 40 {
		t.Fatalf("ParticipantCount = %v, want 40", rec.ParticipantCount)
	}
}

func TestPatchNilNeverClears(t *testing.T) {
	s := NewStore()
	s.Patch(Patch{Venue: StringPtr("Town Hall")})
	s.Patch(Patch{EventName: StringPtr("Quiz Night")}) // Venue absent

	rec := s.Get()
	if rec.Venue == nil || *rec.Venue != "Town Hall" {
		t.Fatalf("Venue = %v, want Town Hall to survive the second patch", rec.Venue)
	}
}

func TestZeroPatchNotifiesNobody(t *testing.T) {
	s := NewStore()
	calls := 0
	s.Subscribe(func(Change) { calls++ })
	s.Patch(Patch{})
	if calls != 0 {
		t.Fatalf("zero patch produced %d notifications, want 0", calls)
	}
}

func TestReplaceFieldsPreservesIDsByLabel(t *testing.T) {
	s := NewStore()
	s.ReplaceFields([]DynamicField{
		{Label: "Theme", Value: "retro", Kind: KindText},
		{Label: "Dress code", Value: nil, Kind: KindText},
	})
	before := s.Get().DynamicFields

	s.ReplaceFields([]DynamicField{
		{Label: "Theme", Value: "80s retro", Kind: KindText},
		{Label: "Catering", Value: "buffet", Kind: KindText},
	})
	after := s.Get().DynamicFields

	if after[0].ID != before[0].ID {
		t.Fatalf("Theme id changed across merge: %s -> %s", before[0].ID, after[0].ID)
	}
	if after[0].Value != "80s retro" {
		t.Fatalf("Theme value = %v, want 80s retro", after[0].Value)
	}
	if after[1].ID == "" || after[1].ID == before[1].ID {
		t.Fatalf("Catering should get a fresh id, got %q", after[1].ID)
	}
}

func TestReplaceFieldsIsFullReplacement(t *testing.T) {
	s := NewStore()
	s.ReplaceFields([]DynamicField{
		{Label: "A", Kind: KindText},
		{Label: "B", Kind: KindText},
		{Label: "C", Kind: KindText},
	})
	s.ReplaceFields([]DynamicField{{Label: "B", Value: "only", Kind: KindText}})

	got := s.Get().DynamicFields
	if len(got) != 1 || got[0].Label != "B" {
		t.Fatalf("list after replacement = %v, want only B", got)
	}
}

func TestReplaceFieldsEmitsDelta(t *testing.T) {
	s := NewStore()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.ReplaceFields([]DynamicField{{Label: "A", Kind: KindText}, {Label: "B", Kind: KindText}})
	s.ReplaceFields([]DynamicField{{Label: "A", Kind: KindText}})

	want := []Change{
		{Kind: FieldsReplaced, Delta: 2, Index: -1},
		{Kind: FieldsReplaced, Delta: -1, Index: -1},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("change stream mismatch (-want +got):\n%s", diff)
	}
}

func TestSetFieldValueOutOfRangeIgnored(t *testing.T) {
	s := NewStore()
	s.ReplaceFields([]DynamicField{{Label: "A", Kind: KindText}})
	s.SetFieldValue(5, "nope")
	s.SetFieldValue(-1, "nope")
	s.SetFieldValue(0, "yes")

	got := s.Get().DynamicFields
	if got[0].Value != "yes" {
		t.Fatalf("value = %v, want yes", got[0].Value)
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := NewStore()
	s.Patch(Patch{EventName: StringPtr("X")})
	s.ReplaceFields([]DynamicField{{Label: "A", Kind: KindText}})
	s.Reset()

	rec := s.Get()
	if rec.EventName != nil || len(rec.DynamicFields) != 0 {
		t.Fatalf("record not empty after reset: %+v", rec)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.ReplaceFields([]DynamicField{{Label: "A", Value: "v", Kind: KindText}})
	rec := s.Get()
	rec.DynamicFields[0].Value = "mutated"

	if s.Get().DynamicFields[0].Value != "v" {
		t.Fatal("mutating a Get() copy leaked into the store")
	}
}

func TestNewStoreFromAssignsMissingIDs(t *testing.T) {
	s := NewStoreFrom(Record{DynamicFields: []DynamicField{{Label: "A", Kind: KindText}}})
	if s.Get().DynamicFields[0].ID == "" {
		t.Fatal("resumed field has no durable id")
	}
}

func TestRequiredComplete(t *testing.T) {
	rec := Record{}
	if rec.RequiredComplete() {
		t.Fatal("empty record reported complete")
	}
	rec.EventName = StringPtr("X")
	rec.EventType = StringPtr("quiz")
	if rec.RequiredComplete() {
		t.Fatal("missing participant count reported complete")
	}
	rec.ParticipantCount = IntPtr(10)
	if !rec.RequiredComplete() {
		t.Fatal("full required set reported incomplete")
	}
}

func TestParseFieldKind(t *testing.T) {
	cases := map[string]FieldKind{
		"text":        KindText,
		"NUMBER":      KindNumber,
		" date ":      KindDate,
		"time":        KindTime,
		"location":    KindLocation,
		"description": KindDescription,
		"dropdown":    KindUnknown,
		"":            KindUnknown,
	}
	for in, want := range cases {
		if got := ParseFieldKind(in); got != want {
			t.Fatalf("ParseFieldKind(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"hall", "hall"},
		{float64(12), "12"},
		{12.5, "12.5"},
		{7, "7"},
	}
	for _, c := range cases {
		f := DynamicField{Value: c.in}
		if got := f.ValueString(); got != c.want {
			t.Fatalf("ValueString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
