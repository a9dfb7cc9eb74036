package models

// GameState represents the lifecycle state of a game
type GameState string

const (
	GameOpen    GameState = "open"
	GameStarted GameState = "started"
	GameStopped GameState = "stopped"
)

// Game represents one run of the elimination contest, owned by a master.
// The code is unique among non-stopped games; a stopped game's code may be
// reused by a later game.
type Game struct {
	Code         string
	MasterID     string
	MasterHandle string
	State        GameState
}

// Active reports whether the game still accepts commands
func (g *Game) Active() bool {
	return g.State != GameStopped
}
