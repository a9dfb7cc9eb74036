package handlers

import (
	"fmt"
	"net/http"
	"strings"
)

// HandleNewGame registers a new game for the caller as master
func (ctx *Context) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	r.ParseForm()
	handle := strings.TrimSpace(r.FormValue("handle"))
	masterID := playerID(w, r)

	g, err := ctx.Service.RegisterGame(r.Context(), masterID, handle)
	if err != nil {
		writeError(w, r, err)
		return
	}

	fmt.Fprintf(w, "Your game is registered. Assassins can enroll with the code %s or the invite link %s/invite/%s",
		g.Code, ctx.BaseURL, g.Code)
}

// HandleStartGame starts the caller's game and hands out the first targets
func (ctx *Context) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	events, err := ctx.Service.StartGame(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprint(w, "The game has started. Targets have been handed out.")
}

// HandleStopGame stops the caller's game and publishes the final leaderboard
func (ctx *Context) HandleStopGame(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	events, err := ctx.Service.StopGame(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprint(w, "The game has been stopped.")
}
