package httpapi

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes bounds JSON request bodies; the largest is a score submission.
const maxBodyBytes = 16 << 10

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeJSON reads a bounded JSON body into v. On failure it answers 400
// itself and reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, ErrorResponse{Code: errCode, Message: msg})
}
