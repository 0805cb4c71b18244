package domain

import (
	"regexp"
	"strings"
)

// WatchedSymbols is the fixed universe the bulk refresher keeps warm. The
// on-demand quote path is not restricted to it.
var WatchedSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA",
	"META", "TSLA", "BRK.B", "JPM", "V",
	"JNJ", "WMT", "PG", "UNH", "HD",
	"MA", "BAC", "XOM", "PFE", "KO",
	"DIS", "CSCO", "PEP", "INTC", "AMD",
	"NFLX", "CRM", "ADBE", "ORCL", "QCOM",
	"IBM", "NKE", "MCD", "T", "BA",
}

var symbolRe = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// NormalizeSymbol maps user input to the upstream ticker form.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidSymbol reports whether s looks like a normalized US ticker.
func ValidSymbol(s string) bool {
	return symbolRe.MatchString(s)
}
