package extraction

import (
	"stagehand/internal/event"
)

// Apply merges a successful extraction response into the store: non-null
// fixed fields are patched over the record, and a present dynamicFields list
// replaces the previous one wholesale. An absent list leaves the checklist
// untouched. The reply text is the caller's concern.
func Apply(store *event.Store, resp *Response) {
	p := event.Patch{
		EventName:        resp.EventName,
		EventType:        resp.EventType,
		ParticipantCount: resp.ParticipantCount,
		ScoringAudience:  resp.ScoringAudience,
		ScoringJudge:     resp.ScoringJudge,
		Venue:            resp.Venue,
		StartDateTime:    resp.StartDateTime,
		EndDateTime:      resp.EndDateTime,
		Sponsor:          resp.Sponsor,
		Rules:            resp.Rules,
		AudienceLimit:    resp.AudienceLimit,
	}
	if resp.ScoringMode != nil {
		p.ScoringMode = parseScoringMode(*resp.ScoringMode)
	}
	store.Patch(p)

	if resp.DynamicFields != nil {
		fields := make([]event.DynamicField, len(*resp.DynamicFields))
		for i, u := range *resp.DynamicFields {
			fields[i] = event.DynamicField{
				Label: u.Label,
				Value: u.Value,
				Kind:  event.ParseFieldKind(u.Type),
			}
		}
		store.ReplaceFields(fields)
	}
}

// parseScoringMode tolerates casing but drops values outside the known set
// rather than storing garbage the rest of the wizard cannot render.
func parseScoringMode(s string) *event.ScoringMode {
	switch event.ScoringMode(s) {
	case event.ScoringJudges, event.ScoringAudience, event.ScoringMixed:
		m := event.ScoringMode(s)
		return &m
	}
	return nil
}
