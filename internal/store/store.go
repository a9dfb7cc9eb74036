package store

import (
	"context"
	"errors"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

// ErrNotFound indicates a requested record is missing
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a record with the same identity already exists
var ErrDuplicate = errors.New("record already exists")

// Store persists games, assassins and tasks. Implementations must make
// SaveAssassins atomic: either every record in the batch is written or none
// is, so a ring splice and its tally credit always land together.
type Store interface {
	// CreateGame inserts a new game. It fails with ErrDuplicate when the
	// code or the master already belongs to a non-stopped game.
	CreateGame(ctx context.Context, game *models.Game) error
	// GetGame returns the non-stopped game with the given code.
	GetGame(ctx context.Context, code string) (*models.Game, error)
	// ActiveGameByMaster returns the non-stopped game owned by masterID.
	ActiveGameByMaster(ctx context.Context, masterID string) (*models.Game, error)
	// UpdateGameState advances the state of the game with the given code.
	UpdateGameState(ctx context.Context, code string, state models.GameState) error

	// CreateAssassin enrolls an assassin. It fails with ErrDuplicate when
	// the id is already enrolled in any non-stopped game.
	CreateAssassin(ctx context.Context, assassin *models.Assassin) error
	// GetAssassin returns the assassin enrolled in a non-stopped game.
	GetAssassin(ctx context.Context, id string) (*models.Assassin, error)
	// ListAssassins returns all assassins of a game in enrollment order.
	ListAssassins(ctx context.Context, gameCode string) ([]*models.Assassin, error)
	// SaveAssassins writes the given records of one game as a single
	// atomic batch.
	SaveAssassins(ctx context.Context, gameCode string, assassins []*models.Assassin) error
	// DeleteAssassin hard-removes an assassin (pre-start dropout only).
	DeleteAssassin(ctx context.Context, id string) error

	// CreateTask inserts a task. It fails with ErrDuplicate when the game
	// already has an active task.
	CreateTask(ctx context.Context, task *models.Task) error
	// ActiveTask returns the active task of a game.
	ActiveTask(ctx context.Context, gameCode string) (*models.Task, error)
	// SaveTask updates an existing task.
	SaveTask(ctx context.Context, task *models.Task) error

	// DeleteGameData removes all assassins and tasks of a game (cascade
	// on stop). The game record itself is kept.
	DeleteGameData(ctx context.Context, gameCode string) error
}
