package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Encoding failures only happen for values that can't be
		// represented as JSON; dump the payload so it shows up in logs.
		panic("httpapi: failed to encode response: " + spew.Sdump(v))
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]string{
		"error": kind,
		"message": msg,
	})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
