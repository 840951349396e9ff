package picstore

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical name", "ABC_SUP001_red_1.jpg", false},
		{"no extension", "ABC_SUP001_red_1", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"path separator", "a/b.jpg", true},
		{"backslash", "a\\b.jpg", true},
		{"colon", "a:b", true},
		{"wildcard", "a*.jpg", true},
		{"null byte", "a\x00b", true},
		{"control character", "a\nb", true},
		{"dot", ".", true},
		{"dot dot", "..", true},
		{"dot dot prefix", "../escape", true},
		{"reserved stem", "con", true},
		{"reserved stem with extension", "CON.jpg", true},
		{"reserved-looking but fine", "console.jpg", false},
		{"too long", strings.Repeat("a", 256), true},
		{"max length", strings.Repeat("a", 255), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr && err == nil {
				t.Fatalf("ValidateName(%q) = nil, want error", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ValidateName(%q) = %v, want nil", tt.input, err)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		code int
		want Outcome
	}{
		{200, OutcomeSuccess},
		{201, OutcomeSuccess},
		{204, OutcomeSuccess},
		{404, OutcomeNotFound},
		{403, OutcomePermissionDenied},
		{409, OutcomeAlreadyExists},
		{507, OutcomeStorageFull},
		{500, OutcomeUnknownError},
		{400, OutcomeUnknownError},
		{301, OutcomeUnknownError},
	}
	for _, tt := range tests {
		if got := classifyStatus(tt.code); got != tt.want {
			t.Fatalf("classifyStatus(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
