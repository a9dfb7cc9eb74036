package main

import (
	"log"
	"net/http"

	"github.com/aaronzipp/secret-assassins-society/internal/config"
	"github.com/aaronzipp/secret-assassins-society/internal/game"
	"github.com/aaronzipp/secret-assassins-society/internal/handlers"
	"github.com/aaronzipp/secret-assassins-society/internal/notify"
	"github.com/aaronzipp/secret-assassins-society/internal/store"
	"github.com/aaronzipp/secret-assassins-society/internal/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	var st store.Store
	switch cfg.Storage {
	case "sqlite":
		sqliteStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Fatal("Failed to open sqlite store: ", err)
		}
		defer sqliteStore.Close()
		st = sqliteStore
	default:
		st = store.NewMemoryStore()
	}
	log.Printf("Storage backend: %s", cfg.Storage)

	ctx := &handlers.Context{
		Service:  game.NewService(st),
		Notifier: notify.New(),
		BaseURL:  cfg.BaseURL,
		Debug:    cfg.Debug,
	}

	// Master commands
	http.HandleFunc("/newgame", ctx.HandleNewGame)
	http.HandleFunc("/startgame", ctx.HandleStartGame)
	http.HandleFunc("/stopgame", ctx.HandleStopGame)
	http.HandleFunc("/burn", ctx.HandleBurn)
	http.HandleFunc("/task", ctx.HandleNewTask)
	http.HandleFunc("/task/close", ctx.HandleCloseTask)
	http.HandleFunc("/broadcast", ctx.HandleBroadcast)
	http.HandleFunc("/broadcastall", ctx.HandleBroadcastAll)
	http.HandleFunc("/players", ctx.HandlePlayers)

	// Assassin commands
	http.HandleFunc("/join", ctx.HandleJoin)
	http.HandleFunc("/dropout", ctx.HandleDropout)
	http.HandleFunc("/claimkill", ctx.HandleClaimKill)
	http.HandleFunc("/confirmdead", ctx.HandleConfirmDead)
	http.HandleFunc("/task/answer", ctx.HandleAnswerTask)
	http.HandleFunc("/subscribe", ctx.HandleSubscribe)
	http.HandleFunc("/dossier", ctx.HandleDossier)
	http.HandleFunc("/leaderboard", ctx.HandleLeaderboard)
	http.HandleFunc("/rules", ctx.HandleRules)
	http.HandleFunc("/invite/", ctx.HandleInvite)
	http.HandleFunc("/updates", ctx.HandleUpdates)

	log.Printf("Server starting on http://localhost%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}
