package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/aaronzipp/secret-assassins-society/internal/game"
)

// playerID returns the caller's identity from the session cookie, minting a
// fresh one when the caller has none yet
func playerID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie("player_id"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     "player_id",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	})
	return id
}

// userErrors are expected outcomes reported back to the caller as-is
var userErrors = []error{
	game.ErrDuplicateGame,
	game.ErrNoGame,
	game.ErrAlreadyStarted,
	game.ErrNotStarted,
	game.ErrInsufficientPlayers,
	game.ErrNotEnrolled,
	game.ErrAlreadyEnrolled,
	game.ErrGameNotJoinable,
	game.ErrNoTarget,
	game.ErrDuplicateClaim,
	game.ErrNoPendingClaim,
	game.ErrTaskActive,
	game.ErrNoActiveTask,
	game.ErrWrongAnswer,
	game.ErrInvalidPattern,
	game.ErrMissingHandle,
	game.ErrMissingField,
	game.ErrDirtyInput,
}

// writeError maps a service error to an HTTP response
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, game.ErrNotAuthorized) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	for _, userErr := range userErrors {
		if errors.Is(err, userErr) {
			http.Error(w, userErr.Error(), http.StatusBadRequest)
			return
		}
	}
	log.Printf("ERROR: %s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}

// requirePost guards command endpoints
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
