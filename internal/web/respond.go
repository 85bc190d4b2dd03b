// Package web holds the response helpers shared by the HTTP handlers.
package web

import (
	"encoding/json"
	"net/http"

	"bakeshop/internal/validation"
)

// JSON writes a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// FieldErrors writes the 422 validation response: an ordered list of
// {field, message} pairs.
func FieldErrors(w http.ResponseWriter, errs validation.Errors) {
	JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": errs})
}

// StoreError writes the generic persistence failure response. Detail stays
// in the logs.
func StoreError(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, map[string]string{"message": "Error connecting to db"})
}

// ErrorMessage writes the {"errors":{"msg":...}} shape used by the image and
// content routes.
func ErrorMessage(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]interface{}{"errors": map[string]string{"msg": msg}})
}

// BadRequest writes a 400 for malformed request bodies.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, map[string]string{"message": msg})
}
