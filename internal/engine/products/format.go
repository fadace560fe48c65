package products

import "strconv"

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func PrimeMark(isPrime bool) string {
	if isPrime {
		return "✓"
	}
	return "✗"
}

// SalesRankDisplay renders the rank, or N/A when the item has none.
func (r Record) SalesRankDisplay() string {
	if !r.HasSalesRank() {
		return NotAvailable
	}
	return strconv.Itoa(r.SalesRank)
}
