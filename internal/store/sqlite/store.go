// Package sqlite provides a SQLite-backed store implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
	"github.com/aaronzipp/secret-assassins-society/internal/store"
)

// schema bootstraps all tables on open. Games keep a surrogate key so a
// stopped game's code and master may be reused by a later game; the partial
// unique indexes enforce uniqueness among non-stopped games only.
const schema = `
CREATE TABLE IF NOT EXISTS games (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	code          TEXT NOT NULL,
	master_id     TEXT NOT NULL,
	master_handle TEXT NOT NULL,
	state         TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS games_active_code
	ON games (code) WHERE state != 'stopped';
CREATE UNIQUE INDEX IF NOT EXISTS games_active_master
	ON games (master_id) WHERE state != 'stopped';

CREATE TABLE IF NOT EXISTS assassins (
	id            TEXT NOT NULL,
	game_code     TEXT NOT NULL,
	seq           INTEGER NOT NULL,
	name          TEXT NOT NULL,
	code_name     TEXT NOT NULL,
	address       TEXT NOT NULL,
	major         TEXT NOT NULL,
	needs_weapon  INTEGER NOT NULL DEFAULT 0,
	target_id     TEXT NOT NULL DEFAULT '',
	presumed_dead INTEGER NOT NULL DEFAULT 0,
	tally         INTEGER NOT NULL DEFAULT 0,
	jokers_used   INTEGER NOT NULL DEFAULT 0,
	task_answered INTEGER NOT NULL DEFAULT 0,
	subscribed    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (id, game_code)
);

CREATE TABLE IF NOT EXISTS tasks (
	id        TEXT PRIMARY KEY,
	game_code TEXT NOT NULL,
	message   TEXT NOT NULL,
	solution  TEXT NOT NULL,
	active    INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS tasks_active_game
	ON tasks (game_code) WHERE active = 1;
`

// Store persists game state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at path and bootstraps the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateGame inserts a new game. It fails with store.ErrDuplicate when the
// code or the master already belongs to a non-stopped game.
func (s *Store) CreateGame(ctx context.Context, game *models.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM games
		 WHERE (code = ? OR master_id = ?) AND state != 'stopped'`,
		game.Code, game.MasterID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("check game uniqueness: %w", err)
	}
	if count > 0 {
		return store.ErrDuplicate
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (code, master_id, master_handle, state)
		 VALUES (?, ?, ?, ?)`,
		game.Code, game.MasterID, game.MasterHandle, string(game.State),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game: %w", err)
	}
	return nil
}

func scanGame(row *sql.Row) (*models.Game, error) {
	var g models.Game
	var state string
	err := row.Scan(&g.Code, &g.MasterID, &g.MasterHandle, &state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	g.State = models.GameState(state)
	return &g, nil
}

// GetGame returns the non-stopped game with the given code.
func (s *Store) GetGame(ctx context.Context, code string) (*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT code, master_id, master_handle, state FROM games
		 WHERE code = ? AND state != 'stopped'`,
		code,
	)
	return scanGame(row)
}

// ActiveGameByMaster returns the non-stopped game owned by masterID.
func (s *Store) ActiveGameByMaster(ctx context.Context, masterID string) (*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT code, master_id, master_handle, state FROM games
		 WHERE master_id = ? AND state != 'stopped'`,
		masterID,
	)
	return scanGame(row)
}

// UpdateGameState advances the state of the game with the given code.
func (s *Store) UpdateGameState(ctx context.Context, code string, state models.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE games SET state = ? WHERE code = ? AND state != 'stopped'`,
		string(state), code,
	)
	if err != nil {
		return fmt.Errorf("update game state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game state: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

const assassinColumns = `id, game_code, seq, name, code_name, address, major,
	needs_weapon, target_id, presumed_dead, tally, jokers_used, task_answered, subscribed`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssassin(row rowScanner) (*models.Assassin, error) {
	var a models.Assassin
	err := row.Scan(
		&a.ID, &a.GameCode, &a.Seq, &a.Name, &a.CodeName, &a.Address, &a.Major,
		&a.NeedsWeapon, &a.TargetID, &a.PresumedDead, &a.Tally, &a.JokersUsed,
		&a.TaskAnswered, &a.Subscribed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan assassin: %w", err)
	}
	return &a, nil
}

// CreateAssassin enrolls an assassin. It fails with store.ErrDuplicate when
// the id is already enrolled in any non-stopped game.
func (s *Store) CreateAssassin(ctx context.Context, assassin *models.Assassin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assassins a
		 JOIN games g ON g.code = a.game_code
		 WHERE a.id = ? AND g.state != 'stopped'`,
		assassin.ID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("check enrollment uniqueness: %w", err)
	}
	if count > 0 {
		return store.ErrDuplicate
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO assassins (`+assassinColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		assassin.ID, assassin.GameCode, assassin.Seq, assassin.Name,
		assassin.CodeName, assassin.Address, assassin.Major, assassin.NeedsWeapon,
		assassin.TargetID, assassin.PresumedDead, assassin.Tally,
		assassin.JokersUsed, assassin.TaskAnswered, assassin.Subscribed,
	)
	if err != nil {
		return fmt.Errorf("insert assassin: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assassin: %w", err)
	}
	return nil
}

// GetAssassin returns the assassin enrolled in a non-stopped game.
func (s *Store) GetAssassin(ctx context.Context, id string) (*models.Assassin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT a.id, a.game_code, a.seq, a.name, a.code_name, a.address, a.major,
		 a.needs_weapon, a.target_id, a.presumed_dead, a.tally, a.jokers_used,
		 a.task_answered, a.subscribed FROM assassins a
		 JOIN games g ON g.code = a.game_code
		 WHERE a.id = ? AND g.state != 'stopped'`,
		id,
	)
	return scanAssassin(row)
}

// ListAssassins returns all assassins of a game in enrollment order.
func (s *Store) ListAssassins(ctx context.Context, gameCode string) ([]*models.Assassin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+assassinColumns+` FROM assassins
		 WHERE game_code = ? ORDER BY seq`,
		gameCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list assassins: %w", err)
	}
	defer rows.Close()

	var assassins []*models.Assassin
	for rows.Next() {
		a, err := scanAssassin(rows)
		if err != nil {
			return nil, err
		}
		assassins = append(assassins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assassins: %w", err)
	}
	return assassins, nil
}

// SaveAssassins writes the given records of one game as a single atomic
// batch.
func (s *Store) SaveAssassins(ctx context.Context, gameCode string, assassins []*models.Assassin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, a := range assassins {
		result, err := tx.ExecContext(ctx,
			`UPDATE assassins SET
				seq = ?, name = ?, code_name = ?, address = ?, major = ?,
				needs_weapon = ?, target_id = ?, presumed_dead = ?, tally = ?,
				jokers_used = ?, task_answered = ?, subscribed = ?
			 WHERE id = ? AND game_code = ?`,
			a.Seq, a.Name, a.CodeName, a.Address, a.Major, a.NeedsWeapon,
			a.TargetID, a.PresumedDead, a.Tally, a.JokersUsed, a.TaskAnswered,
			a.Subscribed, a.ID, gameCode,
		)
		if err != nil {
			return fmt.Errorf("update assassin %s: %w", a.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update assassin %s: %w", a.ID, err)
		}
		if affected == 0 {
			return store.ErrNotFound
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assassin batch: %w", err)
	}
	return nil
}

// DeleteAssassin hard-removes an assassin from its non-stopped game.
func (s *Store) DeleteAssassin(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM assassins
		 WHERE id = ? AND game_code IN
			(SELECT code FROM games WHERE state != 'stopped')`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete assassin: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete assassin: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// CreateTask inserts a task. It fails with store.ErrDuplicate when the game
// already has an active task.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if task.Active {
		var count int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tasks WHERE game_code = ? AND active = 1`,
			task.GameCode,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("check active task: %w", err)
		}
		if count > 0 {
			return store.ErrDuplicate
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tasks (id, game_code, message, solution, active)
		 VALUES (?, ?, ?, ?, ?)`,
		task.ID, task.GameCode, task.Message, task.Solution, task.Active,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit task: %w", err)
	}
	return nil
}

// ActiveTask returns the active task of a game.
func (s *Store) ActiveTask(ctx context.Context, gameCode string) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, game_code, message, solution, active FROM tasks
		 WHERE game_code = ? AND active = 1`,
		gameCode,
	)
	var t models.Task
	err := row.Scan(&t.ID, &t.GameCode, &t.Message, &t.Solution, &t.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}

// SaveTask updates an existing task.
func (s *Store) SaveTask(ctx context.Context, task *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE tasks SET message = ?, solution = ?, active = ?
		 WHERE id = ? AND game_code = ?`,
		task.Message, task.Solution, task.Active, task.ID, task.GameCode,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteGameData removes all assassins and tasks of a game. The game record
// itself is kept.
func (s *Store) DeleteGameData(ctx context.Context, gameCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assassins WHERE game_code = ?`, gameCode); err != nil {
		return fmt.Errorf("delete assassins: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE game_code = ?`, gameCode); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cascade: %w", err)
	}
	return nil
}
