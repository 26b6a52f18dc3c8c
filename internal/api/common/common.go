// Package common provides shared HTTP utility functions for API handlers.
package common

import (
	"encoding/json"
	"net/http"

	"github.com/synclab/metasync/internal/logger"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`

	// Details lists the individual validation failures of a request
	Details []string `json:"details,omitempty"`
}

// WriteJSONResponse writes a JSON response with the given data
func WriteJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// WriteErrorResponse writes a standardized error response
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int, details ...string) {
	WriteJSONResponse(w, ErrorResponse{Error: message, Details: details}, statusCode)
}

// DecodeJSONBody decodes the request body into out, rejecting unknown fields
func DecodeJSONBody(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}
