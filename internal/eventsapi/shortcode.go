package eventsapi

import (
	"strings"

	"github.com/google/uuid"
)

// shortCodeAlphabet avoids look-alike characters (0/O, 1/I/L) so codes
// survive being read out loud at a venue.
const shortCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// ShortCode derives a 6-character join code from fresh uuid entropy.
func ShortCode() string {
	id := uuid.New()
	var b strings.Builder
	b.Grow(6)
	for i := 0; i < 6; i++ {
		b.WriteByte(shortCodeAlphabet[int(id[i])%len(shortCodeAlphabet)])
	}
	return b.String()
}
