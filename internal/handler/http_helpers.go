package handler

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the envelope every endpoint response uses.
type apiResponse struct {
	Data    map[string]string `json:"data"`
	Message string            `json:"message"`
}

// writeMessage writes a response with an empty data object (helper function)
func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeResponse(w, statusCode, map[string]string{}, message)
}

// writeResponse writes the standard JSON envelope
func writeResponse(w http.ResponseWriter, statusCode int, data map[string]string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(apiResponse{Data: data, Message: message})
}
