package httputil

import "net/http"

// LegacyResponse is the flat envelope of the /api/products endpoints, which
// predate the versioned API. Failures carry an opaque message only.
type LegacyResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteLegacyList writes {success:true, data, count}.
func WriteLegacyList[T any](w http.ResponseWriter, data []T) {
	if data == nil {
		data = []T{}
	}
	count := len(data)
	WriteJSON(w, http.StatusOK, LegacyResponse{Success: true, Data: data, Count: &count})
}

// WriteLegacyItem writes {success:true, data} with the given status.
func WriteLegacyItem(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, LegacyResponse{Success: true, Data: data})
}

// WriteLegacyFailure writes {success:false, error} with status 500.
func WriteLegacyFailure(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusInternalServerError, LegacyResponse{Success: false, Error: message})
}
