package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"carx-store/middleware"
	"carx-store/models"
	"carx-store/store"
	"carx-store/utils"
)

// storeTimeout bounds every store call made while serving a request
const storeTimeout = 5 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), storeTimeout)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// storeError maps a store error onto a response. Unexpected errors are logged
// and hidden from the client.
func storeError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrDuplicate):
		utils.ErrorResponse(w, http.StatusConflict, "Already exists")
	default:
		log.Printf("store error: %v", err)
		utils.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// currentUser re-reads the authenticated user. It writes the error response and
// returns false when the token carries no user, the user is gone or blocked.
func currentUser(ctx context.Context, w http.ResponseWriter, r *http.Request, s store.Store) (*models.User, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	user, err := s.GetUser(ctx, claims.UserID)
	if err != nil {
		storeError(w, err, "User not found")
		return nil, false
	}
	if user.Blocked {
		utils.ErrorResponse(w, http.StatusForbidden, "Your account has been blocked")
		return nil, false
	}
	return user, true
}

// sendAsync runs a mail job in the background; failures are only logged
func sendAsync(what string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Printf("failed to send %s: %v", what, err)
		}
	}()
}
