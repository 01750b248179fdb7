package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// LineItem is one structured row of the document's item table
type LineItem struct {
	LineNo      int     `json:"line_no"`
	ItemCode    string  `json:"item_code"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UOM         string  `json:"uom"`
	UnitPrice   float64 `json:"unit_price"`
	Disc        string  `json:"disc"`
	LineTotal   float64 `json:"line_total"`
}

// itemLineRe is the fixed tabular grammar of an item line:
//
//	1. PCC-50KG 50KG CEMENT BAG 20.00 BAG 22.00 440.00
//	6. UP-3B 4IN PIPE CS 2.00 LGTH 101.00 30% 141.40
//
// sequence number, item code, lazy description, quantity, unit of measure,
// unit price, optional discount, line amount anchored to end of line. The
// description is matched non-greedily so the trailing numeric fields win.
var itemLineRe = regexp.MustCompile(
	`^\s*(\d+)\.\s+` + // 1: sequence number
		`([A-Z0-9\-]+)\s+` + // 2: item code
		`(.+?)\s+` + // 3: description
		`(\d+(?:\.\d+)?)\s+` + // 4: quantity
		`([A-Z]+)\s+` + // 5: unit of measure
		`(` + amountPattern + `)` + // 6: unit price
		`(?:\s+(\d+%))?` + // 7: optional discount
		`\s+(` + amountPattern + `)\s*$`) // 8: line amount

// ParseItems scans each line of the text for the item grammar and returns the
// matching rows in source order. A line either fully matches or is skipped;
// there is no cross-line joining. Sequence numbers are taken verbatim, so
// gaps or duplicates in the source numbering are preserved.
func ParseItems(text string) []LineItem {
	var items []LineItem

	for _, line := range strings.Split(text, "\n") {
		m := itemLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		lineNo, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		qty, err := parseAmount(m[4])
		if err != nil {
			continue
		}
		unitPrice, err := parseAmount(m[6])
		if err != nil {
			continue
		}
		lineTotal, err := parseAmount(m[8])
		if err != nil {
			continue
		}

		items = append(items, LineItem{
			LineNo:      lineNo,
			ItemCode:    m[2],
			Description: strings.TrimSpace(m[3]),
			Qty:         qty,
			UOM:         m[5],
			UnitPrice:   unitPrice,
			Disc:        m[7],
			LineTotal:   lineTotal,
		})
	}

	return items
}
