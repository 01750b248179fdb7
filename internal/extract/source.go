package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/vivatalent/receipt-extract/internal/ocr"
)

// nativeTextThreshold is the minimum joined length at which a PDF's embedded
// text layer is trusted. Scanned PDFs typically carry no text layer at all, or
// a few stray characters; anything shorter falls back to page recognition.
const nativeTextThreshold = 100

// TextSource produces the linearized text of a document.
type TextSource interface {
	// Acquire returns the best-effort text content of the document at path,
	// all pages concatenated in order
	Acquire(path, ext string) (string, error)
}

// Source implements TextSource using the document's native text layer when
// available and a recognition engine otherwise.
type Source struct {
	recognizer ocr.Recognizer
}

// NewSource creates a new Source backed by the given recognition engine
func NewSource(recognizer ocr.Recognizer) *Source {
	return &Source{recognizer: recognizer}
}

// Acquire extracts text from a PDF or image document. Recognition engine
// failures are not retried here; they propagate to the caller.
func (s *Source) Acquire(path, ext string) (string, error) {
	if strings.ToLower(ext) == "pdf" {
		return s.fromPDF(path)
	}
	return s.fromImage(path)
}

// fromPDF reads the native text layer of every page first. If the joined text
// is long enough it is returned as-is; otherwise every page is rendered and
// run through the recognition engine in page order.
func (s *Source) fromPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", n, err)
		}
		pages = append(pages, text)
	}

	joined := strings.TrimSpace(strings.Join(pages, "\n"))
	if len(joined) > nativeTextThreshold {
		return joined, nil
	}

	var recognized []string
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return "", fmt.Errorf("rendering page %d: %w", n, err)
		}
		pngData, err := ocr.PreparePage(img)
		if err != nil {
			return "", fmt.Errorf("preparing page %d: %w", n, err)
		}
		text, err := s.recognizer.Recognize(pngData)
		if err != nil {
			return "", fmt.Errorf("recognizing page %d: %w", n, err)
		}
		recognized = append(recognized, text)
	}
	return strings.Join(recognized, "\n"), nil
}

// fromImage runs the recognition engine on a single photo or scan.
func (s *Source) fromImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	pngData, err := ocr.PrepareImage(data)
	if err != nil {
		return "", fmt.Errorf("preparing image: %w", err)
	}

	return s.recognizer.Recognize(pngData)
}
