package receipt

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vivatalent/receipt-extract/internal/extract"
)

// allowedExtensions is the upload allow-list; anything else is rejected
// before reaching the extraction core.
var allowedExtensions = map[string]struct{}{
	"pdf": {}, "png": {}, "jpg": {}, "jpeg": {},
}

// Extractor runs the extraction pipeline on saved uploads
type Extractor interface {
	// Extract converts one document into a structured result record
	Extract(path, ext string) (*extract.Result, error)
	// ExtractBatch converts a set of documents independently
	ExtractBatch(files []extract.File) *extract.BatchResult
}

// Upload is one file received from a client
type Upload struct {
	Filename string
	Data     []byte
}

// Service handles upload validation, persistence, extraction and usage
// counters for the HTTP layer.
type Service struct {
	extractor Extractor
	storage   Storage
	stats     StatsStore
}

// NewService creates a new Service
func NewService(extractor Extractor, storage Storage, stats StatsStore) *Service {
	return &Service{
		extractor: extractor,
		storage:   storage,
		stats:     stats,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and
// truncating length, keeping the extension intact.
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)

	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// extension returns the lower-cased extension tag of a filename, without the
// leading dot.
func extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// ProcessUpload validates, saves and extracts a single uploaded document.
// The returned status code is the HTTP status the result should be served
// with. Rejected uploads do not touch the usage counters; processed ones do.
func (s *Service) ProcessUpload(upload Upload) (*extract.Result, int) {
	if upload.Filename == "" {
		return extract.Failure("No file selected", 400, ""), 400
	}

	filename := sanitizeFilename(upload.Filename)

	ext := extension(filename)
	if ext == "" {
		return extract.Failure("Missing file extension", 400, ""), 400
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return extract.Failure("Invalid file type. Allowed: pdf, png, jpg, jpeg", 400, ""), 400
	}

	path, err := s.storage.Save(filename, upload.Data)
	if err != nil {
		slog.Error("Failed to save upload", "filename", upload.Filename, "error", err)
		s.bump(false)
		return extract.Failure(fmt.Sprintf("Error saving file: %v", err), 500, ""), 500
	}

	result, err := s.extractor.Extract(path, ext)
	if err != nil {
		slog.Error("Failed to extract document",
			"filename", upload.Filename,
			"ext", ext,
			"file_size", len(upload.Data),
			"error", err,
		)
		s.bump(false)
		return extract.Failure(fmt.Sprintf("Error processing file: %v", err), 500, ""), 500
	}

	s.bump(result.Status)
	return result, 200
}

// ProcessUploadBatch validates and saves every upload, then runs the batch
// extractor over the valid ones. Invalid uploads are skipped; failed saves
// are recorded as failed documents without aborting siblings.
func (s *Service) ProcessUploadBatch(uploads []Upload) *extract.BatchResult {
	files := make([]extract.File, 0, len(uploads))
	for _, upload := range uploads {
		if upload.Filename == "" {
			continue
		}
		filename := sanitizeFilename(upload.Filename)
		ext := extension(filename)
		if _, ok := allowedExtensions[ext]; !ok {
			continue
		}
		path, err := s.storage.Save(filename, upload.Data)
		if err != nil {
			slog.Error("Failed to save upload", "filename", upload.Filename, "error", err)
			continue
		}
		files = append(files, extract.File{Path: path, Ext: ext})
	}

	if len(files) == 0 {
		return &extract.BatchResult{
			Status:  false,
			Message: "No valid files uploaded",
			Data:    map[string]*extract.Result{},
		}
	}

	batch := s.extractor.ExtractBatch(files)
	for _, result := range batch.Data {
		s.bump(result.Status)
	}
	return batch
}

// Stats returns the current usage counters
func (s *Service) Stats() (Stats, error) {
	return s.stats.Snapshot()
}

func (s *Service) bump(success bool) {
	if err := s.stats.Bump(success); err != nil {
		slog.Warn("Failed to update stats", "error", err)
	}
}
