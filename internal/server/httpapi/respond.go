package httpapi

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v before touching w, so an encoding failure can still be
// reported through the error translator.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
	return nil
}
