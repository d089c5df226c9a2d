package api

import (
	"errors"
	"net/http"

	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/service"
	"github.com/pageza/mealfinder/internal/session"
)

// StatusFor maps finder errors onto HTTP statuses
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyTerm):
		return http.StatusBadRequest
	case errors.Is(err, mealdb.ErrMealNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case mealdb.IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
