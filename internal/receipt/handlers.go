package receipt

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxUploadSize caps multipart form parsing; high-resolution phone photos of
// receipts can run tens of megabytes.
const maxUploadSize = int64(50 << 20) // 50MB

// writeJSON serializes a payload with the given HTTP status
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleIndex serves the HTML upload interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"message": "OK",
	})
}

// handleAPIStats returns the usage counters as JSON
func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats()
	if err != nil {
		slog.Error("Error reading stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":  false,
			"message": "Error reading stats",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": true,
		"data":   stats,
	})
}

// handleStatsPage renders the usage counters as a small HTML page
func (s *Server) handleStatsPage(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats()
	if err != nil {
		slog.Error("Error reading stats", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, statsPageHTML, stats.TotalFiles, stats.Success, stats.Failed)
}

// handleExtract accepts a single multipart upload in the "file" field and
// returns its extraction record.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	uploads, ok := s.readUploads(w, r)
	if !ok {
		return
	}
	if len(uploads) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":      false,
			"message":     "No file part in request (expected form field 'file')",
			"data":        map[string]any{},
			"status_code": 400,
		})
		return
	}

	result, status := s.service.ProcessUpload(uploads[0])
	writeJSON(w, status, result)
}

// handleExtractBatch accepts multiple files in the "file" field and returns a
// map of invoice number to extraction record.
func (s *Server) handleExtractBatch(w http.ResponseWriter, r *http.Request) {
	uploads, ok := s.readUploads(w, r)
	if !ok {
		return
	}
	if len(uploads) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":      false,
			"message":     "No file part in request (expected form field 'file')",
			"data":        map[string]any{},
			"status_code": 400,
		})
		return
	}

	writeJSON(w, http.StatusOK, s.service.ProcessUploadBatch(uploads))
}

// readUploads parses the multipart form and reads every "file" part. The
// boolean is false when a response has already been written.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) ([]Upload, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		message := "Error parsing form"
		if err.Error() == "http: request body too large" {
			message = "File is too large. Maximum size is 50MB."
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":      false,
			"message":     message,
			"data":        map[string]any{},
			"status_code": 400,
		})
		return nil, false
	}

	if r.MultipartForm == nil {
		return nil, true
	}

	var uploads []Upload
	for _, header := range r.MultipartForm.File["file"] {
		f, err := header.Open()
		if err != nil {
			slog.Error("Error opening uploaded file", "filename", header.Filename, "error", err)
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			slog.Error("Error reading uploaded file", "filename", header.Filename, "error", err)
			continue
		}
		uploads = append(uploads, Upload{Filename: header.Filename, Data: data})
	}
	return uploads, true
}
