package checklist

import (
	"fmt"

	"stagehand/internal/event"
)

// Row is one renderable checklist line. Fixed rows summarize the schema
// fields and are corrected through the conversation; dynamic rows map to a
// DynamicField and are editable in place.
type Row struct {
	Label string
	Value string
	Kind  event.FieldKind

	// FieldIndex is the index into Record.DynamicFields, or -1 for a
	// fixed row. FieldID is empty for fixed rows.
	FieldIndex int
	FieldID    string
	Editable   bool

	// Done marks the row as captured for the ✓/○ marker.
	Done bool

	// Required rows gate saving the event.
	Required bool
}

// BuildRows projects the record onto the checklist: the fixed slots in a
// stable order, then every dynamic field in list order. editor supplies the
// displayed value for a field under edit; pass nil outside the wizard.
func BuildRows(rec event.Record, editor *Editor) []Row {
	rows := []Row{
		fixedRow("Event name", strVal(rec.EventName), true),
		fixedRow("Event type", strVal(rec.EventType), true),
		fixedRow("Participants", intVal(rec.ParticipantCount), true),
		fixedRow("Scoring", FormatScoring(rec), false),
		fixedRow("When", FormatDateTimeRange(rec.StartDateTime, rec.EndDateTime), false),
		fixedRow("Venue", strVal(rec.Venue), false),
		fixedRow("Sponsor", strVal(rec.Sponsor), false),
		fixedRow("Rules", strVal(rec.Rules), false),
		fixedRow("Audience limit", intVal(rec.AudienceLimit), false),
	}
	for i, f := range rec.DynamicFields {
		value := f.ValueString()
		if editor != nil {
			value = editor.DisplayValue(f)
		}
		rows = append(rows, Row{
			Label:      f.Label,
			Value:      value,
			Kind:       f.Kind,
			FieldIndex: i,
			FieldID:    f.ID,
			Editable:   true,
			Done:       value != "",
		})
	}
	return rows
}

// DynamicOffset is how many fixed rows precede the first dynamic row.
const DynamicOffset = 9

func fixedRow(label, value string, required bool) Row {
	return Row{
		Label:      label,
		Value:      value,
		Kind:       event.KindUnknown,
		FieldIndex: -1,
		Done:       value != "",
		Required:   required,
	}
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}
