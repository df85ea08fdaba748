package importer

import (
	"testing"
	"time"
)

func TestParseBool(t *testing.T) {
	truthy := []string{"TRUE", "Yes", "1", "ya", "y", " Ya "}
	for _, s := range truthy {
		if !parseBool(s) {
			t.Errorf("expected %q to be true", s)
		}
	}
	falsy := []string{"FALSE", "", "no", "2", "on"}
	for _, s := range falsy {
		if parseBool(s) {
			t.Errorf("expected %q to be false", s)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2021-03-14", "2021/03/14", "14-03-2021", "14/03/2021"} {
		got := parseDate(s)
		if got == nil || !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, want %v", s, got, want)
		}
	}
	for _, s := range []string{"", "not a date", "2021-13-99"} {
		if parseDate(s) != nil {
			t.Errorf("parseDate(%q) should be nil", s)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"2020", intPtr(2020)},
		{" 2020.0 ", intPtr(2020)},
		{"2020.5", nil},
		{"abc", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := parseInt(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseInt(%q) = %d, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("parseInt(%q) = %v, want %d", tt.in, got, *tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if got := parseFloat("12.5"); got == nil || *got != 12.5 {
		t.Errorf("parseFloat(12.5) = %v", got)
	}
	if parseFloat("x") != nil {
		t.Error("expected nil for non-numeric titer")
	}
}

func intPtr(i int) *int { return &i }
