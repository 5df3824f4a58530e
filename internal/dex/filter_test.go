package dex

import (
	"math"
	"testing"

	"github.com/pokeview/pokeview/internal/catalog"
)

func TestBoundsClampsToTotal(t *testing.T) {
	testCases := []struct {
		total, page, size int
		start, end        int
	}{
		{25, 1, 21, 0, 21},
		{25, 2, 21, 21, 25},
		{25, 3, 21, 25, 25},
		{0, 1, 21, 0, 0},
		{42, 2, 21, 21, 42},
		{25, 2, math.MaxInt, 25, 25},
		{25, 1, math.MaxInt, 0, 25},
		{25, math.MaxInt, 21, 25, 25},
		{25, math.MaxInt, math.MaxInt, 25, 25},
		{25, 0, 21, 0, 0},
		{25, 1, 0, 0, 0},
	}
	for _, tc := range testCases {
		start, end := Bounds(tc.total, tc.page, tc.size)
		if start != tc.start || end != tc.end {
			t.Fatalf("Bounds(%d,%d,%d) = [%d,%d), want [%d,%d)",
				tc.total, tc.page, tc.size, start, end, tc.start, tc.end)
		}
	}
}

func TestFilterEmptyTermMatchesAll(t *testing.T) {
	entries := []catalog.Entry{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	if got := Filter(entries, "", 0); len(got) != 3 {
		t.Fatalf("empty term with no limit should match all, got %d", len(got))
	}
	if got := Filter(entries, "", 2); len(got) != 2 {
		t.Fatalf("limit should truncate, got %d", len(got))
	}
}

func TestIsBlankTerm(t *testing.T) {
	if !IsBlankTerm("  \t") || !IsBlankTerm("") {
		t.Fatalf("whitespace terms should be blank")
	}
	if IsBlankTerm(" pika ") {
		t.Fatalf("non-empty term should not be blank")
	}
}
