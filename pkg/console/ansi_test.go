package console

import "testing"

func TestStripANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "✓ plain result line",
			want:  "✓ plain result line",
		},
		{
			name:  "color codes removed",
			input: "\x1b[32m✓\x1b[0m green check",
			want:  "✓ green check",
		},
		{
			name:  "multi-parameter SGR",
			input: "\x1b[1;31;40mbold red\x1b[0m",
			want:  "bold red",
		},
		{
			name:  "cursor movement",
			input: "\x1b[2K\x1b[1Gprogress line",
			want:  "progress line",
		},
		{
			name:  "OSC title sequence",
			input: "\x1b]0;window title\x07visible",
			want:  "visible",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
