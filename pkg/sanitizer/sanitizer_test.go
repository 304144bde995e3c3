package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Conference Room A  ",
			want:  "Conference Room A",
		},
		{
			name:  "multiple spaces between words",
			input: "Conference    Room",
			want:  "Conference Room",
		},
		{
			name:  "tabs and newlines",
			input: "Conference\t\nRoom",
			want:  "Conference Room",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Salle Café™ ",
			want:  "Salle Café™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoomID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Room1", want: "room1"},
		{name: "strip internal spaces", input: " room 1 ", want: "room1"},
		{name: "already normalized", input: "room-101", want: "room-101"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRoomID(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeRoomID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
