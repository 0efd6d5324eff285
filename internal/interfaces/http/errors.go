package http

import (
	"errors"
	"log"
	"net/http"

	"tally/internal/domain/category"
	"tally/internal/domain/transaction"
	"tally/internal/domain/user"
)

// writeDomainError maps domain sentinel errors onto status codes. Anything
// unrecognized is a 500 with the cause logged, never echoed to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrInvalidType),
		errors.Is(err, category.ErrNameRequired),
		errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, transaction.ErrDescriptionRequired),
		errors.Is(err, transaction.ErrCategoryTypeMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, user.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, category.ErrForbidden),
		errors.Is(err, transaction.ErrForbidden),
		errors.Is(err, transaction.ErrCategoryForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, category.ErrDuplicateCategory),
		errors.Is(err, user.ErrDuplicateEmail):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
