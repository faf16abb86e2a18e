package request

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ClientWriter is a response writer that remembers the status code written to it.
type ClientWriter struct {
	http.ResponseWriter
	statusCode int
}

// NewClientWriter wraps the response writer.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (c *ClientWriter) WriteHeader(code int) {
	c.statusCode = code
	c.ResponseWriter.WriteHeader(code)
}

// StatusCode is the status code of the response, 200 if none was written.
func (c *ClientWriter) StatusCode() int {
	return c.statusCode
}

// Encode writes the value as a JSON response with the status code.
func Encode(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("error encoding response: %w", err)
	}
	return nil
}
