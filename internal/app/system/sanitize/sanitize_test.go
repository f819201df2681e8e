package sanitize_test

import (
	"testing"

	"github.com/huddleup/huddle/internal/app/system/sanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Saturday hike", "Saturday hike"},
		{"trims whitespace", "  Trip  ", "Trip"},
		{"strips tags", "<b>Trip</b>", "Trip"},
		{"strips script", "Trip<script>alert('x')</script>", "Trip"},
		{"strips attributes", `<span onclick="x">Dinner?</span>`, "Dinner?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize.Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
