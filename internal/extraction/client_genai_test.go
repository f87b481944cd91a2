package extraction

import (
	"testing"

	"google.golang.org/genai"
)

func TestExtractionSchemaShape(t *testing.T) {
	s := extractionSchema()
	if s.Type != genai.TypeObject {
		t.Fatalf("schema type = %v, want object", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "message" {
		t.Fatalf("required = %v, want only the reply message", s.Required)
	}

	mode, ok := s.Properties["scoringMode"]
	if !ok {
		t.Fatal("schema missing scoringMode")
	}
	if mode.Nullable == nil || !*mode.Nullable {
		t.Fatal("scoringMode must be nullable; null means keep the known value")
	}
	if len(mode.Enum) != 3 {
		t.Fatalf("scoringMode enum = %v, want the three modes", mode.Enum)
	}

	dyn, ok := s.Properties["dynamicFields"]
	if !ok || dyn.Type != genai.TypeArray {
		t.Fatal("schema missing the dynamicFields array")
	}
	for _, req := range dyn.Items.Required {
		if req == "value" {
			t.Fatal("value must stay optional so placeholder fields can arrive empty")
		}
	}
}
