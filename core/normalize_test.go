package core

import (
	"slices"
	"testing"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase unchanged", "ai", "ai"},
		{"uppercase folded", "AI", "ai"},
		{"surrounding whitespace trimmed", " AI ", "ai"},
		{"mixed case", "GoLang", "golang"},
		{"interior whitespace kept", "machine learning", "machine learning"},
		{"empty", "", ""},
		{"whitespace only", "   \t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTag(tt.input); got != tt.want {
				t.Errorf("NormalizeTag(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTag_Idempotent(t *testing.T) {
	inputs := []string{" AI ", "ai", "AI", "  Machine Learning ", ""}
	for _, input := range inputs {
		once := NormalizeTag(input)
		twice := NormalizeTag(once)
		if once != twice {
			t.Errorf("NormalizeTag not idempotent for %q: %q vs %q", input, once, twice)
		}
	}
}

func TestNormalizeTag_VariantsCollapse(t *testing.T) {
	variants := []string{" AI ", "ai", "AI", "Ai"}
	for _, v := range variants {
		if got := NormalizeTag(v); got != "ai" {
			t.Errorf("NormalizeTag(%q) = %q, want %q", v, got, "ai")
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "dedupes case variants",
			input: []string{"AI", " ai ", "golang"},
			want:  []string{"ai", "golang"},
		},
		{
			name:  "drops empties",
			input: []string{"", "  ", "saas"},
			want:  []string{"saas"},
		},
		{
			name:  "sorted output",
			input: []string{"zebra", "alpha", "Middle"},
			want:  []string{"alpha", "middle", "zebra"},
		},
		{
			name:  "all empty",
			input: []string{"", " "},
			want:  []string{},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
