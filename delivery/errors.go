package delivery

import (
	"errors"
	"net/http"

	"github.com/XyvinTech/councelling-backend/domain"
)

// statusForError maps the domain error taxonomy onto HTTP statuses:
// missing rows are 404, ownership violations 403, illegal transitions and
// bad payloads 400, the rest 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsInvalidTransition(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
