// internal/controller/respond.go
package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/MarcusGasberg/somemellier/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto HTTP statuses with an
// {"error": ...} body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch appErrors.KindOf(err) {
	case appErrors.KindUnauthorized:
		status = http.StatusUnauthorized
		message = err.Error()
	case appErrors.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case appErrors.KindConflict:
		status = http.StatusConflict
		message = err.Error()
	case appErrors.KindValidation:
		status = http.StatusBadRequest
		message = err.Error()
	}

	writeJSON(w, status, map[string]string{"error": message})
}
