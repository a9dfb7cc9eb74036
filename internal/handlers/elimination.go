package handlers

import (
	"fmt"
	"net/http"
	"strings"
)

// HandleBurn forcibly eliminates an assassin from the caller's game
func (ctx *Context) HandleBurn(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	r.ParseForm()
	assassinID := strings.TrimSpace(r.FormValue("target_id"))
	if assassinID == "" {
		http.Error(w, "Target id is required", http.StatusBadRequest)
		return
	}

	events, err := ctx.Service.Burn(r.Context(), playerID(w, r), assassinID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprint(w, "The assassin has been burned.")
}

// HandleClaimKill records the caller's claim on their target
func (ctx *Context) HandleClaimKill(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	events, err := ctx.Service.ClaimKill(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprint(w, "Claim recorded. Your target has been asked to confirm.")
}

// HandleConfirmDead confirms the caller's own death. With credit=false the
// hunter inherits the target but scores no elimination.
func (ctx *Context) HandleConfirmDead(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	r.ParseForm()
	credit := r.FormValue("credit") != "false"

	events, err := ctx.Service.ConfirmDead(r.Context(), playerID(w, r), credit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprint(w, "Your death has been confirmed. Thank you for playing.")
}
