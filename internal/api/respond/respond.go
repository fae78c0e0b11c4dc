package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/happythoughts/thoughts-service/internal/model"
)

// Envelope is the uniform response body. Every endpoint, success or
// failure, returns this shape so clients can branch on Success alone.
type Envelope struct {
	Success  bool            `json:"success"`
	Response interface{}     `json:"response"`
	Message  string          `json:"message,omitempty"`
	Meta     *model.PageMeta `json:"meta,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteSuccess writes a success envelope without pagination metadata.
func WriteSuccess(w http.ResponseWriter, statusCode int, response interface{}) {
	WriteJSON(w, statusCode, Envelope{Success: true, Response: response})
}

// WritePage writes a success envelope carrying a listing page plus its
// pagination metadata.
func WritePage(w http.ResponseWriter, statusCode int, response interface{}, meta model.PageMeta) {
	WriteJSON(w, statusCode, Envelope{Success: true, Response: response, Meta: &meta})
}

// WriteFailure writes a failure envelope. Response is explicitly null so
// clients never have to guess between a missing and an empty payload.
func WriteFailure(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Success: false, Response: nil, Message: message})
}
