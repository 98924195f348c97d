package util

import (
	"regexp"
	"strings"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,9}$`)

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSymbols normalizes each ticker, drops blanks and keeps the first
// occurrence of duplicates.
func NormalizeSymbols(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ParseSymbols splits a comma separated list such as "aapl, msft".
func ParseSymbols(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return NormalizeSymbols(strings.Split(csv, ","))
}

// ValidSymbol reports whether a normalized symbol looks like a ticker:
// letters, digits, dots and hyphens, at most ten characters.
func ValidSymbol(s string) bool {
	return tickerPattern.MatchString(s)
}

// InvalidSymbols returns the entries of normalized symbols that fail ValidSymbol.
func InvalidSymbols(symbols []string) []string {
	var bad []string
	for _, s := range symbols {
		if !ValidSymbol(s) {
			bad = append(bad, s)
		}
	}
	return bad
}
