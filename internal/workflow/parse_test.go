package workflow

import "testing"

func TestParseIndex(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		max    int
		want   int
		wantOK bool
	}{
		{"first option", "1", 5, 0, true},
		{"last option", "5", 5, 4, true},
		{"with spaces", "  3 ", 5, 2, true},
		{"zero is out of range", "0", 5, 0, false},
		{"above max", "6", 5, 0, false},
		{"negative", "-1", 5, 0, false},
		{"not a number", "abc", 5, 0, false},
		{"empty", "", 5, 0, false},
		{"no options", "1", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseIndex(tt.text, tt.max)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseIndex(%q, %d) = (%d, %v), want (%d, %v)",
					tt.text, tt.max, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsMoreToken(t *testing.T) {
	for _, text := range []string{"0", "mais", "MAIS", " 0 "} {
		if !IsMoreToken(text) {
			t.Errorf("IsMoreToken(%q) = false, want true", text)
		}
	}
	for _, text := range []string{"1", "menos", "", "mais dias"} {
		if IsMoreToken(text) {
			t.Errorf("IsMoreToken(%q) = true, want false", text)
		}
	}
}

func TestIsAffirmative(t *testing.T) {
	for _, text := range []string{"1", "sim", "Sim", "S", "ok", "OK", "confirmo", "confirmar", "yes"} {
		if !IsAffirmative(text) {
			t.Errorf("IsAffirmative(%q) = false, want true", text)
		}
	}
	for _, text := range []string{"2", "não", "talvez", ""} {
		if IsAffirmative(text) {
			t.Errorf("IsAffirmative(%q) = true, want false", text)
		}
	}
}

func TestIsNegative(t *testing.T) {
	for _, text := range []string{"2", "não", "nao", "NÃO", "n", "no"} {
		if !IsNegative(text) {
			t.Errorf("IsNegative(%q) = false, want true", text)
		}
	}
	for _, text := range []string{"1", "sim", "nunca", ""} {
		if IsNegative(text) {
			t.Errorf("IsNegative(%q) = true, want false", text)
		}
	}
}
