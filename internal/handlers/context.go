package handlers

import (
	"github.com/aaronzipp/secret-assassins-society/internal/game"
	"github.com/aaronzipp/secret-assassins-society/internal/notify"
)

// Context carries the shared dependencies of all HTTP handlers
type Context struct {
	Service  *game.Service
	Notifier *notify.Notifier
	BaseURL  string
	Debug    bool
}
