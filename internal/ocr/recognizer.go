package ocr

import "strings"

// transcribePrompt is the shared prompt used by the LLM-backed engines. Unlike
// a classic OCR API they need to be told to return the raw text and nothing
// else, preserving the line structure the downstream parsers depend on.
const transcribePrompt = `You are transcribing a scanned receipt or invoice. Read every piece of text in the image and return it verbatim.

Rules:
- Output plain text only, one line of output per visual line of the document, top to bottom.
- Preserve the original spelling, casing, punctuation and numbers exactly as printed.
- Keep amounts exactly as written, including thousands separators (e.g. 4,793.50).
- Do not summarize, translate, annotate or reorder anything.
- Do not wrap the output in markdown code blocks.`

// Recognizer converts a single PNG-encoded page or photo into plain text.
type Recognizer interface {
	// Recognize runs text recognition on PNG image data
	Recognize(imageData []byte) (string, error)
	// Close closes the recognizer and releases resources
	Close() error
}

// stripFences removes markdown code fences that LLM engines sometimes wrap
// their output in despite instructions.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
