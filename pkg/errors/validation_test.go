package errors

import (
	"strings"
	"testing"
)

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		max     int
		wantErr bool
	}{
		{"one", 1, 100, false},
		{"max", 100, 100, false},
		{"middle", 42, 100, false},

		{"zero", 0, 100, true},
		{"negative", -3, 100, true},
		{"over max", 101, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("width", tt.value, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%d, %d) error = %v, wantErr %v", tt.value, tt.max, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("ValidateDimension(%d) code = %v, want %v", tt.value, GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidateGlyph(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"full block", "█", false},
		{"space", " ", false},
		{"hash", "#", false},
		{"dot", ".", false},

		{"empty", "", true},
		{"two chars", "##", true},
		{"newline", "\n", true},
		{"tab", "\t", true},
		{"invalid utf8", "\xff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGlyph(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGlyph(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "maze.svg", false},
		{"relative dir", "out/maze.png", false},
		{"absolute", "/tmp/maze.txt", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "maze\x00.svg", true},
		{"control char", "maze\x01.svg", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
