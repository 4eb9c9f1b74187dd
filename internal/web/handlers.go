package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mvanrooyen/officeloader/internal/core"
	"github.com/mvanrooyen/officeloader/internal/logging"
)

// importRequest names the spreadsheet to ingest.
type importRequest struct {
	SourcePath string `json:"sourcePath"`
}

// scriptRequest names the licensing script to run.
type scriptRequest struct {
	ScriptPath string `json:"scriptPath"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"configured": s.service.Configured(),
	})
}

// handleConfigureConnection establishes the shared database connection.
// Must be called before any other operation.
func (s *Server) handleConfigureConnection(w http.ResponseWriter, r *http.Request) {
	var params core.ConnectionParams
	if err := decodeJSON(r, &params); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	if params.Server == "" || params.Database == "" || params.User == "" {
		s.respondError(w, r, http.StatusBadRequest,
			errors.New("server, database and user are required"))
		return
	}

	ack, err := s.service.Configure(r.Context(), params)
	if err != nil {
		s.respondError(w, r, http.StatusBadGateway, err)
		return
	}

	logging.FromContext(r.Context()).Info("connection configured",
		"server", ack.Server, "database", ack.Database)
	respondJSON(w, http.StatusOK, ack)
}

// handleRunLicensingScript executes a GO-separated T-SQL script.
func (s *Server) handleRunLicensingScript(w http.ResponseWriter, r *http.Request) {
	var req scriptRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.ScriptPath == "" {
		s.respondError(w, r, http.StatusBadRequest, errors.New("scriptPath is required"))
		return
	}

	result, err := s.service.RunLicensingScript(r.Context(), req.ScriptPath)
	if err != nil {
		s.respondError(w, r, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleImportOffices runs the import pipeline. The response is always the
// structured ImportResult with a rendered summary; per-row problems live in
// its error list, not in the HTTP status.
func (s *Server) handleImportOffices(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.SourcePath == "" {
		s.respondError(w, r, http.StatusBadRequest, errors.New("sourcePath is required"))
		return
	}

	result := s.service.ImportOffices(r.Context(), req.SourcePath)

	logging.FromContext(r.Context()).Info("import finished",
		"source", req.SourcePath,
		"imported", result.RecordsImported,
		"errors", len(result.Errors),
		"success", result.Success,
	)
	respondJSON(w, http.StatusOK, result)
}

// fieldInfo describes one expected spreadsheet column to clients.
type fieldInfo struct {
	Header   string `json:"header"`
	Required bool   `json:"required"`
	MaxLen   int    `json:"maxLen,omitempty"`
}

// handleImportFields lists the spreadsheet columns the importer expects, so
// clients can build a valid workbook without guessing headers.
func (s *Server) handleImportFields(w http.ResponseWriter, r *http.Request) {
	specs := core.OfficeFields()
	fields := make([]fieldInfo, 0, len(specs))
	for _, spec := range specs {
		fields = append(fields, fieldInfo{
			Header:   spec.Header,
			Required: spec.Required,
			MaxLen:   spec.MaxLen,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"fields": fields})
}

// handleStatus reports table counts and the service status label.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Status(r.Context())
	if err != nil {
		s.respondError(w, r, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, core.ErrNotConfigured) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// decodeJSON decodes a request body, rejecting unknown fields so typos in
// tool arguments fail loudly.
func decodeJSON(r *http.Request, dst any) error {
	dec := jsonDecoder(r)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}
