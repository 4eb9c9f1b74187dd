package web

// errors.go provides the unified JSON error envelope for the tool API.
// Technical details are logged server-side with the request id; clients get
// the message and the id for correlation.

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvanrooyen/officeloader/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// respondError logs the failure and writes the error envelope.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	requestID := middleware.GetReqID(r.Context())

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
	)

	respondJSON(w, statusCode, ErrorResponse{
		Error:     err.Error(),
		RequestID: requestID,
	})
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonDecoder returns a strict decoder for a request body.
func jsonDecoder(r *http.Request) *json.Decoder {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec
}
