package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aaronzipp/secret-assassins-society/internal/game"
	"github.com/aaronzipp/secret-assassins-society/internal/render"
)

// HandleJoin enrolls the caller into an open game
func (ctx *Context) HandleJoin(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	r.ParseForm()
	input := game.EnrollInput{
		ID:          playerID(w, r),
		GameCode:    strings.ToUpper(strings.TrimSpace(r.FormValue("code"))),
		Name:        r.FormValue("name"),
		CodeName:    r.FormValue("codename"),
		Address:     r.FormValue("address"),
		Major:       r.FormValue("major"),
		NeedsWeapon: r.FormValue("needs_weapon") == "true",
	}

	a, err := ctx.Service.Enroll(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	fmt.Fprintf(w, "Welcome to the society, %s. You will receive your target once the game starts. The rules:\n\n%s",
		a.CodeName, render.Rules())
}

// HandleDropout removes the caller from their game voluntarily
func (ctx *Context) HandleDropout(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	events, err := ctx.Service.Dropout(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprint(w, "You have left the game. Farewell.")
}

// HandleSubscribe toggles kill announcements for the caller
func (ctx *Context) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	subscribed, err := ctx.Service.ToggleSubscription(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if subscribed {
		fmt.Fprint(w, "You are now subscribed to kill announcements.")
	} else {
		fmt.Fprint(w, "You are no longer subscribed to kill announcements.")
	}
}
