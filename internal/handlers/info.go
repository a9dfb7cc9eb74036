package handlers

import (
	"fmt"
	"net/http"

	"github.com/aaronzipp/secret-assassins-society/internal/render"
)

// HandleLeaderboard shows the current standing of the caller's game
func (ctx *Context) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := ctx.Service.Leaderboard(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	fmt.Fprint(w, board)
}

// HandlePlayers lists the caller's roster; master only
func (ctx *Context) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	members, err := ctx.Service.Players(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	for _, m := range members {
		weapon := ""
		if m.NeedsWeapon {
			weapon = " (needs a weapon)"
		}
		status := "alive"
		if !m.Alive() {
			status = "eliminated"
		}
		fmt.Fprintf(w, "%d. %s aka %s, %s, kills: %d, jokers: %d%s\n",
			m.Seq, m.Name, m.CodeName, status, m.Tally, m.JokersUsed, weapon)
	}
}

// HandleDossier re-sends the caller's current target dossier
func (ctx *Context) HandleDossier(w http.ResponseWriter, r *http.Request) {
	dossier, err := ctx.Service.Dossier(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	fmt.Fprint(w, dossier)
}

// HandleRules prints the rules of the game
func (ctx *Context) HandleRules(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, render.Rules())
}

// HandleBroadcast sends a master message to all living assassins
func (ctx *Context) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	ctx.broadcast(w, r, true)
}

// HandleBroadcastAll sends a master message to every enrolled assassin
func (ctx *Context) HandleBroadcastAll(w http.ResponseWriter, r *http.Request) {
	ctx.broadcast(w, r, false)
}

func (ctx *Context) broadcast(w http.ResponseWriter, r *http.Request, onlyAlive bool) {
	if !requirePost(w, r) {
		return
	}

	r.ParseForm()
	events, err := ctx.Service.Broadcast(r.Context(), playerID(w, r), r.FormValue("message"), onlyAlive)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprintf(w, "Your message has been sent to %d assassins.", len(events))
}
