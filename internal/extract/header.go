package extract

import (
	"regexp"
	"strings"
)

// Supplier identifies the business that issued the document
type Supplier struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Document holds the type label, number and date of the document
type Document struct {
	Type   string `json:"type"`
	Number string `json:"number"`
	Date   string `json:"date"`
}

// Header is the parsed header block of a receipt or invoice. Unresolved
// fields are empty strings, never absent.
type Header struct {
	Supplier Supplier `json:"supplier"`
	Document Document `json:"document"`
}

// defaultCompanySuffix is the company-suffix marker that identifies the
// supplier name line in the source convention (Malaysian private limited
// companies).
const defaultCompanySuffix = "SDN BHD"

// typeMarkers identify the document-type label line
var typeMarkers = []string{"CASH SALE", "CASH SALES", "INVOICE"}

// addressStopMarkers terminate accumulation of supplier address lines
var addressStopMarkers = []string{"CASH SALE", "INVOICE"}

// defaultNumberPatterns are tried in order against the whole text; the first
// match wins. Label-anchored patterns capture the number token, bare patterns
// match the number itself.
var defaultNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)CASH\s*SALE\s*No\.?\s*[:\-]?\s*([A-Z0-9\-]+)`),
	regexp.MustCompile(`(?i)INVOICE\s*NO\.?\s*[:\-]?\s*([A-Z0-9\-]+)`),
	regexp.MustCompile(`(?i)\bSGM-\d{7}\b`),
	regexp.MustCompile(`(?i)\bCS\d{6}\b`),
}

var dateRe = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

// HeaderParser extracts the header block from linearized document text. The
// number patterns are an ordered list tried first to last, so a tier can be
// swapped or reordered without touching the scan itself.
type HeaderParser struct {
	companySuffix  string
	typeMarkers    []string
	numberPatterns []*regexp.Regexp
}

// NewHeaderParser creates a HeaderParser. An empty companySuffix falls back
// to the default "SDN BHD" marker.
func NewHeaderParser(companySuffix string) *HeaderParser {
	if companySuffix == "" {
		companySuffix = defaultCompanySuffix
	}
	return &HeaderParser{
		companySuffix:  strings.ToUpper(companySuffix),
		typeMarkers:    typeMarkers,
		numberPatterns: defaultNumberPatterns,
	}
}

// Parse scans the text for the supplier block, document type label, document
// number and document date. The four scans are independent passes; none
// short-circuits another.
func (p *HeaderParser) Parse(text string) Header {
	lines := strings.Split(text, "\n")

	var header Header
	header.Supplier.Name, header.Supplier.Address = p.parseSupplier(lines)
	header.Document.Type = p.parseTypeLabel(lines)
	header.Document.Number = p.parseNumber(text)
	header.Document.Date = dateRe.FindString(text)
	return header
}

// parseSupplier finds the first line carrying the company-suffix marker, then
// accumulates following non-blank lines into the address until a blank line
// or a document-type marker. First match wins; later candidates are ignored.
func (p *HeaderParser) parseSupplier(lines []string) (name, address string) {
	for i, line := range lines {
		if !strings.Contains(strings.ToUpper(line), p.companySuffix) {
			continue
		}
		name = strings.TrimSpace(line)

		var addressLines []string
		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if strings.TrimSpace(next) == "" {
				break
			}
			if containsAny(strings.ToUpper(next), addressStopMarkers) {
				break
			}
			addressLines = append(addressLines, strings.TrimSpace(next))
		}
		return name, strings.Join(addressLines, " ")
	}
	return "", ""
}

// parseTypeLabel returns the first line containing a document-type marker,
// verbatim.
func (p *HeaderParser) parseTypeLabel(lines []string) string {
	for _, line := range lines {
		if containsAny(strings.ToUpper(line), p.typeMarkers) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// parseNumber tries the ordered number patterns against the whole text.
func (p *HeaderParser) parseNumber(text string) string {
	for _, re := range p.numberPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if re.NumSubexp() > 0 {
			return m[1]
		}
		return m[0]
	}
	return ""
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
