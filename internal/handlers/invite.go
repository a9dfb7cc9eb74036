package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// HandleInvite serves a QR code PNG that encodes the join link for a game
func (ctx *Context) HandleInvite(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/invite/"))
	if code == "" || strings.Contains(code, "/") {
		http.Error(w, "Invalid invite link", http.StatusBadRequest)
		return
	}

	joinURL := fmt.Sprintf("%s/join?code=%s", ctx.BaseURL, code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		log.Printf("ERROR: encode invite qr for game=%s: %v", code, err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
