package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// TableRow is one human-facing row of the rendered item table
type TableRow struct {
	Description string  `json:"Product Description"`
	Quantity    float64 `json:"Quantity"`
	UnitPrice   string  `json:"Unit Price"`
	Amount      string  `json:"Amount"`
}

// ResultData is the structured payload of a processed document
type ResultData struct {
	InvoiceNumber string     `json:"Invoice Number"`
	InvoiceDate   string     `json:"Date of Invoice"`
	TotalRM       string     `json:"Total RM"`
	DealerName    string     `json:"Dealer Name"`
	Area          string     `json:"Area"`
	Table         []TableRow `json:"table"`
	IsInvoice     bool       `json:"isInvoice"`
}

// Result is the aggregate output of one extraction. A document with zero
// recognized items or an undetermined invoice number is still a success
// (degraded, not failed); Status is false only when extraction raised.
// IsInvoice, InvoiceNumber and ProcessingTime are duplicated at the top level
// for caller convenience.
type Result struct {
	Status         bool        `json:"status"`
	Message        string      `json:"message"`
	Data           *ResultData `json:"data"`
	StatusCode     int         `json:"status_code"`
	IsInvoice      bool        `json:"isInvoice"`
	InvoiceNumber  string      `json:"invoice_number"`
	ProcessingTime string      `json:"processing_time"`
}

// Failure builds a status=false result record. The data block is present but
// empty so callers never see partial or null fields.
func Failure(message string, statusCode int, invoiceNumber string) *Result {
	return &Result{
		Status:         false,
		Message:        message,
		Data:           &ResultData{Table: []TableRow{}},
		StatusCode:     statusCode,
		InvoiceNumber:  invoiceNumber,
		ProcessingTime: "00:00",
	}
}

// File is one batch input: a document path and its declared extension
type File struct {
	Path string
	Ext  string
}

// BatchResult wraps per-document results keyed by resolved invoice number
type BatchResult struct {
	Status  bool               `json:"status"`
	Message string             `json:"message"`
	Data    map[string]*Result `json:"data"`
}

// summaryDescriptionMarkers exclude summary-like rows that slipped through
// the item grammar from the charge-item sum.
var summaryDescriptionMarkers = []string{"RINGGIT MALAYSIA", "TOTAL QTY"}

// invoiceNumberPrefixes mark document numbers that identify an invoice even
// when no "INVOICE" type label was found.
var invoiceNumberPrefixes = []string{"CS", "SGM", "P"}

// Extractor turns a document into a structured extraction result.
type Extractor struct {
	source     TextSource
	header     *HeaderParser
	timeSource TimeSource
}

// NewExtractor creates an Extractor. An empty companySuffix keeps the default
// supplier marker.
func NewExtractor(source TextSource, companySuffix string) *Extractor {
	return &Extractor{
		source:     source,
		header:     NewHeaderParser(companySuffix),
		timeSource: &defaultTimeSource{},
	}
}

// NewExtractorWithDeps creates an Extractor with a custom time source for
// testing.
func NewExtractorWithDeps(source TextSource, companySuffix string, timeSource TimeSource) *Extractor {
	e := NewExtractor(source, companySuffix)
	e.timeSource = timeSource
	return e
}

// Extract acquires the document text and parses it into the result record.
// Acquisition and parsing errors escape so the caller decides how to report
// them; a degraded parse (nothing recognized) is still a success.
func (e *Extractor) Extract(path, ext string) (*Result, error) {
	start := e.timeSource.Now()

	text, err := e.source.Acquire(path, ext)
	if err != nil {
		return nil, fmt.Errorf("acquiring text: %w", err)
	}

	header := e.header.Parse(text)
	items := ParseItems(text)
	totals := ParseTotals(text)

	invoiceNumber := header.Document.Number
	if invoiceNumber == "" {
		invoiceNumber = fileStem(path)
	}

	data := &ResultData{
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   header.Document.Date,
		TotalRM:       totalAmount(items, totals),
		DealerName:    header.Supplier.Name,
		Area:          ResolveArea(header.Supplier.Address),
		Table:         renderTable(items),
		IsInvoice:     isInvoice(header.Document.Type, invoiceNumber),
	}

	elapsed := e.timeSource.Now().Sub(start)

	return &Result{
		Status:         true,
		Message:        "File processed successfully",
		Data:           data,
		StatusCode:     200,
		IsInvoice:      data.IsInvoice,
		InvoiceNumber:  invoiceNumber,
		ProcessingTime: formatElapsed(elapsed),
	}, nil
}

// ExtractBatch runs Extract for each file independently. A failing document
// is recorded as a status=false placeholder keyed by its filename stem and
// never aborts its siblings. Duplicate invoice numbers overwrite earlier
// entries (keep-last).
func (e *Extractor) ExtractBatch(files []File) *BatchResult {
	results := make(map[string]*Result, len(files))
	processed := 0

	for _, f := range files {
		res, err := e.Extract(f.Path, f.Ext)
		if err != nil {
			stem := fileStem(f.Path)
			results[stem] = Failure(fmt.Sprintf("Error processing file: %v", err), 500, stem)
			continue
		}
		key := res.InvoiceNumber
		if key == "" {
			key = "UNKNOWN"
		}
		results[key] = res
		processed++
	}

	return &BatchResult{
		Status:  processed == len(files),
		Message: fmt.Sprintf("%d out of %d files processed", processed, len(files)),
		Data:    results,
	}
}

// totalAmount prefers the sum of charge item amounts over the grand total
// parsed from the amount-in-words line; per-item sums survive recognition
// noise better than the free-text summary.
func totalAmount(items []LineItem, totals Totals) string {
	var sum float64
	var charged bool
	for _, it := range items {
		desc := strings.ToUpper(it.Description)
		if containsAny(desc, summaryDescriptionMarkers) {
			continue
		}
		if strings.TrimSpace(desc) == "TOTAL" {
			continue
		}
		sum += it.LineTotal
		charged = true
	}

	if charged {
		return formatAmount(sum)
	}
	if totals.GrandTotal != nil {
		return formatAmount(*totals.GrandTotal)
	}
	return ""
}

// renderTable builds the human-facing item table rows.
func renderTable(items []LineItem) []TableRow {
	rows := make([]TableRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, TableRow{
			Description: it.Description,
			Quantity:    it.Qty,
			UnitPrice:   formatAmount(it.UnitPrice),
			Amount:      formatAmount(it.LineTotal),
		})
	}
	return rows
}

// isInvoice classifies the document from its type label or number prefix.
func isInvoice(typeLabel, invoiceNumber string) bool {
	if strings.Contains(strings.ToUpper(typeLabel), "INVOICE") {
		return true
	}
	for _, prefix := range invoiceNumberPrefixes {
		if strings.HasPrefix(invoiceNumber, prefix) {
			return true
		}
	}
	return false
}

// formatElapsed renders a wall-time duration as MM:SS.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// fileStem returns the file's base name without extension, or "UNKNOWN" when
// that is empty.
func fileStem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "UNKNOWN"
	}
	return stem
}
