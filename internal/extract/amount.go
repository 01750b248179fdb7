package extract

import (
	"strconv"
	"strings"
)

// amountPattern matches a thousands-grouped decimal amount like "22.00" or
// "4,793.50". It is shared by the item grammar and the totals parser.
const amountPattern = `\d{1,3}(?:,\d{3})*\.\d{2}`

// parseAmount converts a thousands-grouped decimal string to a float,
// stripping the grouping separators first.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// formatAmount renders an amount with exactly two decimal places.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
