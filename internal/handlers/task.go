package handlers

import (
	"fmt"
	"net/http"
)

// HandleNewTask opens a task round for the caller's game
func (ctx *Context) HandleNewTask(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	r.ParseForm()
	events, err := ctx.Service.PostTask(r.Context(), playerID(w, r), r.FormValue("message"), r.FormValue("solution"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprint(w, "The task has been posted to all living assassins.")
}

// HandleCloseTask ends the active task round and settles jokers
func (ctx *Context) HandleCloseTask(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	events, err := ctx.Service.CloseTask(r.Context(), playerID(w, r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx.Notifier.Dispatch(events)

	fmt.Fprint(w, "The task has been closed.")
}

// HandleAnswerTask checks the caller's answer to the active task
func (ctx *Context) HandleAnswerTask(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	r.ParseForm()
	if err := ctx.Service.AnswerTask(r.Context(), playerID(w, r), r.FormValue("answer")); err != nil {
		writeError(w, r, err)
		return
	}

	fmt.Fprint(w, "Correct. The society is pleased.")
}
