package util

import (
	"reflect"
	"testing"
)

func TestParseSymbols(t *testing.T) {
	got := ParseSymbols(" aapl,MSFT, ,aapl,brk.b ")
	want := []string{"AAPL", "MSFT", "BRK.B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected symbols %v", got)
	}
}

func TestParseSymbolsEmpty(t *testing.T) {
	if got := ParseSymbols("  "); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestNormalizeSymbolsKeepsFirstOccurrence(t *testing.T) {
	got := NormalizeSymbols([]string{"msft", "AAPL", "Msft"})
	if len(got) != 2 || got[0] != "MSFT" || got[1] != "AAPL" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestValidSymbol(t *testing.T) {
	for _, s := range []string{"AAPL", "BRK.B", "BF-B", "7203", "SPY"} {
		if !ValidSymbol(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "AAPL MSFT", "<SCRIPT>", "ABCDEFGHIJK", ".AAPL", "AAPL$", "ÄPFEL"} {
		if ValidSymbol(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestInvalidSymbols(t *testing.T) {
	got := InvalidSymbols([]string{"AAPL", "X!", "MSFT", "A/B"})
	want := []string{"X!", "A/B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected invalid symbols %v", got)
	}
}
