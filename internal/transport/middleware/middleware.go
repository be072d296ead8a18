// Package middleware holds the net/http middleware shared by every route:
// request IDs, panic recovery, CORS, bearer-token identity, role gates,
// rate limiting and access logging.
package middleware

import (
	"encoding/json"
	"net/http"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// writeError answers with the same {"error": msg} body the REST handlers use,
// so clients see one error shape whichever layer rejected the request.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg})
}
