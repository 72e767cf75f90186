package textfilter

import (
	"testing"
)

func TestProfanityFilter_FilterText(t *testing.T) {
	filter := NewProfanityFilter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple replacement",
			input:    "Saving is a hell of a habit!",
			expected: "Saving is a heck of a habit!",
		},
		{
			name:     "multiple words",
			input:    "Don't buy damn crap you don't need.",
			expected: "Don't buy dang crud you don't need.",
		},
		{
			name:     "case preservation - uppercase",
			input:    "DAMN, that's a good deal!",
			expected: "DANG, that's a good deal!",
		},
		{
			name:     "case preservation - title case",
			input:    "Stupid purchases add up.",
			expected: "Silly purchases add up.",
		},
		{
			name:     "case preservation - mixed case",
			input:    "HeLl yes, you saved!",
			expected: "HeCk yes, you saved!",
		},
		{
			name:     "word boundaries",
			input:    "A classic class assignment about assets",
			expected: "A classic class assignment about assets",
		},
		{
			name:     "longest word wins",
			input:    "Don't be a dumbass with your allowance",
			expected: "Don't be a dummy with your allowance",
		},
		{
			name:     "plural keeps suffix",
			input:    "Impulse buys are idiots' traps for idiots",
			expected: "Impulse buys are goofs' traps for goofs",
		},
		{
			name:     "severe words are masked",
			input:    "Only a douchebag spends it all",
			expected: "Only a [oops] spends it all",
		},
		{
			name:     "clean text untouched",
			input:    "Skipping today means more tomorrow.",
			expected: "Skipping today means more tomorrow.",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterText(tt.input)
			if result != tt.expected {
				t.Errorf("FilterText() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestProfanityFilter_ContainsProfanity(t *testing.T) {
	filter := NewProfanityFilter()

	tests := []struct {
		input    string
		expected bool
	}{
		{"What the hell is a budget?", true},
		{"HELL no!", true},
		{"Two hells", true},
		{"Save for something classic", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := filter.ContainsProfanity(tt.input); got != tt.expected {
				t.Errorf("ContainsProfanity(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
