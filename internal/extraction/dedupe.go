package extraction

import "strings"

var quoteStripper = strings.NewReplacer(
	`"`, "", "'", "",
	"“", "", "”", "", // curly double quotes
	"‘", "", "’", "", // curly single quotes
)

// normalizeTurn reduces a turn to its comparable core: lowercase, quotes
// stripped, whitespace collapsed. Users often answer a question by echoing
// it back verbatim or with quotes around the subject.
func normalizeTurn(s string) string {
	s = strings.ToLower(quoteStripper.Replace(s))
	return strings.Join(strings.Fields(s), " ")
}

// LooksRepeated reports whether the new user input is a near-duplicate of
// the immediately preceding assistant message. Such input carries no new
// information and gets a clarification turn instead of a network call.
func LooksRepeated(input, lastAssistant string) bool {
	if lastAssistant == "" {
		return false
	}
	return normalizeTurn(input) == normalizeTurn(lastAssistant)
}
