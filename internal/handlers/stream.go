package handlers

import (
	"fmt"
	"log"
	"net/http"
)

// HandleUpdates streams the caller's game events over Server-Sent Events
func (ctx *Context) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	id := playerID(w, r)
	if ctx.Debug {
		log.Printf("updates stream requested: recipient=%s", id)
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies
	flusher.Flush()

	clientChan := ctx.Notifier.Subscribe(id)
	defer ctx.Notifier.Unsubscribe(clientChan)

	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			if ctx.Debug {
				log.Printf("updates stream closed: recipient=%s", id)
			}
			return
		case event := <-clientChan:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, sseData(event.Payload))
			flusher.Flush()
		}
	}
}

// sseData flattens a payload into a single SSE data line
func sseData(payload string) string {
	out := make([]byte, 0, len(payload))
	for i := 0; i < len(payload); i++ {
		if payload[i] == '\n' {
			out = append(out, '\\', 'n')
			continue
		}
		out = append(out, payload[i])
	}
	return string(out)
}
