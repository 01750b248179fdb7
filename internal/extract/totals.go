package extract

import (
	"regexp"
	"strings"
)

// Totals holds the declared totals of the document, used as a fallback source
// of truth when no item rows were recognized.
type Totals struct {
	TotalQty      *float64 `json:"total_qty"`
	GrandTotal    *float64 `json:"grand_total"`
	AmountInWords string   `json:"amount_in_words"`
}

var (
	totalQtyRe = regexp.MustCompile(`(?i)Total\s+Qty\s+(` + amountPattern + `)`)
	amountRe   = regexp.MustCompile(amountPattern)
)

// wordsLineMarker identifies the "amount in words" summary line
const wordsLineMarker = "RINGGIT MALAYSIA"

// ParseTotals extracts the declared quantity total and the grand total from
// the "amount in words" summary line. The last number on that line is the
// grand total; earlier numbers belong to the spelled-out amount.
func ParseTotals(text string) Totals {
	var totals Totals

	if m := totalQtyRe.FindStringSubmatch(text); m != nil {
		if v, err := parseAmount(m[1]); err == nil {
			totals.TotalQty = &v
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(strings.ToUpper(line), wordsLineMarker) {
			totals.AmountInWords = strings.TrimSpace(line)
			break
		}
	}

	if totals.AmountInWords != "" {
		nums := amountRe.FindAllString(totals.AmountInWords, -1)
		if len(nums) > 0 {
			if v, err := parseAmount(nums[len(nums)-1]); err == nil {
				totals.GrandTotal = &v
			}
		}
	}

	return totals
}
