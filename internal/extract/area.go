package extract

import (
	"regexp"
	"strings"
)

// postcodeTailRe matches a 5-digit Malaysian postal code followed by a run of
// letters, periods and whitespace, e.g. "43650 B.B.BANGI CASH SALE NO".
var postcodeTailRe = regexp.MustCompile(`\b\d{5}\b\s+([A-Z.\s]+)`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// areaStopWords terminate accumulation of area candidate tokens. They are
// labels that commonly trail the address on the same recognized line.
var areaStopWords = map[string]struct{}{
	"CASH": {}, "SALE": {}, "NO": {}, "PAGE": {}, "TEL": {}, "FAX": {},
	"ITEMITEM": {}, "RM": {}, "RINGGIT": {}, "MALAYSIA": {},
}

// ResolveArea extracts a short locality token from a free-text address line:
//
//	"NO 5, JLN 12/1, SEKSYEN 12, 43650 B.B.BANGI" -> "Bangi"
//
// Returns the empty string when no postal-code token is present.
func ResolveArea(address string) string {
	if address == "" {
		return ""
	}

	m := postcodeTailRe.FindStringSubmatch(strings.ToUpper(address))
	if m == nil {
		return ""
	}

	segment := strings.ReplaceAll(m[1], ".", " ")
	segment = strings.TrimSpace(whitespaceRe.ReplaceAllString(segment, " "))
	if segment == "" {
		return ""
	}

	tokens := strings.Split(segment, " ")

	areaTokens := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, stop := areaStopWords[t]; stop {
			break
		}
		areaTokens = append(areaTokens, t)
	}
	if len(areaTokens) == 0 {
		areaTokens = tokens
	}

	// Prefer the last token longer than 2 characters; abbreviations like
	// "B.B." collapse into short tokens that make poor area names.
	for i := len(areaTokens) - 1; i >= 0; i-- {
		if len(areaTokens[i]) > 2 {
			return titleCase(areaTokens[i])
		}
	}
	return titleCase(areaTokens[len(areaTokens)-1])
}

// titleCase upper-cases the first letter and lower-cases the rest.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
