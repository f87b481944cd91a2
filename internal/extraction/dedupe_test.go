package extraction

import "testing"

func TestLooksRepeated(t *testing.T) {
	cases := []struct {
		name          string
		input         string
		lastAssistant string
		want          bool
	}{
		{"exact echo", "What should the event be called?", "What should the event be called?", true},
		{"case insensitive", "WHAT SHOULD THE EVENT BE CALLED?", "What should the event be called?", true},
		{"quoted echo", `"What should the event be called?"`, "What should the event be called?", true},
		{"curly quotes", "“What should the event be called?”", "What should the event be called?", true},
		{"extra whitespace", "  What  should the event be called? ", "What should the event be called?", true},
		{"actual answer", "Spring Gala", "What should the event be called?", false},
		{"no assistant yet", "hello", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := LooksRepeated(c.input, c.lastAssistant); got != c.want {
				t.Fatalf("LooksRepeated(%q, %q) = %v, want %v", c.input, c.lastAssistant, got, c.want)
			}
		})
	}
}
