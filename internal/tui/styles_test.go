package tui

import (
	"strings"
	"testing"

	"github.com/pokeview/pokeview/internal/catalog"
)

func TestStatBar_FillsProportionally(t *testing.T) {
	tests := []struct {
		value  int
		filled int
	}{
		{value: 0, filled: 0},
		{value: 75, filled: 10},
		{value: 150, filled: 20},
		{value: 255, filled: 20},
	}
	for _, tt := range tests {
		plain := stripANSI(StatBar(catalog.Stat{Name: "speed", Value: tt.value}))
		if got := strings.Count(plain, "█"); got != tt.filled {
			t.Errorf("value %d: filled = %d, want %d", tt.value, got, tt.filled)
		}
		if got := strings.Count(plain, "█") + strings.Count(plain, "░"); got != statBarWidth {
			t.Errorf("value %d: bar width = %d, want %d", tt.value, got, statBarWidth)
		}
		if !strings.HasPrefix(plain, "Speed") {
			t.Errorf("bar should start with the stat label, got %q", plain)
		}
	}
}

func TestTypeBadges_KeepsOrder(t *testing.T) {
	plain := stripANSI(TypeBadges([]string{"grass", "poison"}))
	if strings.Index(plain, "grass") > strings.Index(plain, "poison") {
		t.Errorf("badges out of order: %q", plain)
	}
}

func TestCapitalize(t *testing.T) {
	if got := Capitalize("pikachu"); got != "Pikachu" {
		t.Errorf("Capitalize = %q", got)
	}
	if got := Capitalize(""); got != "" {
		t.Errorf("Capitalize empty = %q", got)
	}
}
