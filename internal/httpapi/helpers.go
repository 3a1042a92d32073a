package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-sitebuilder/internal/generate"
	"github.com/goliatone/go-sitebuilder/internal/validation"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string, issues []validation.ValidationIssue) {
	writeJSON(w, status, errorResponse{
		Error:   code,
		Message: message,
		Issues:  issues,
	})
}

// mapError classifies a domain error into an HTTP reply.
func mapError(w http.ResponseWriter, err error) {
	var notFound *website.NotFoundError
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, website.ErrPageNotFound),
		errors.Is(err, website.ErrSectionNotFound),
		errors.Is(err, website.ErrServiceNotFound),
		errors.Is(err, website.ErrLocationNotFound),
		errors.Is(err, website.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, generate.ErrSectionLocked):
		writeError(w, http.StatusConflict, "section_locked", err.Error(), nil)
	case errors.Is(err, validation.ErrSchemaValidation):
		writeError(w, http.StatusUnprocessableEntity, "invalid_content", err.Error(), validation.Issues(err))
	case errors.Is(err, website.ErrBusinessNameRequired),
		errors.Is(err, website.ErrWebsiteRequired),
		errors.Is(err, website.ErrPageTitleRequired),
		errors.Is(err, website.ErrPageSlugExists),
		errors.Is(err, website.ErrPostSlugExists):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}
