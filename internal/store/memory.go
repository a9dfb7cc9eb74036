package store

import (
	"context"
	"sync"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

// MemoryStore keeps all game state in process memory
type MemoryStore struct {
	mu        sync.RWMutex
	games     []*models.Game
	assassins map[string][]*models.Assassin // gameCode -> enrollment order
	tasks     map[string][]*models.Task     // gameCode -> tasks
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assassins: make(map[string][]*models.Assassin),
		tasks:     make(map[string][]*models.Task),
	}
}

func cloneGame(g *models.Game) *models.Game {
	c := *g
	return &c
}

func cloneAssassin(a *models.Assassin) *models.Assassin {
	c := *a
	return &c
}

func cloneTask(t *models.Task) *models.Task {
	c := *t
	return &c
}

// CreateGame inserts a new game
func (s *MemoryStore) CreateGame(ctx context.Context, game *models.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.games {
		if !g.Active() {
			continue
		}
		if g.Code == game.Code || g.MasterID == game.MasterID {
			return ErrDuplicate
		}
	}
	s.games = append(s.games, cloneGame(game))
	return nil
}

// GetGame retrieves the non-stopped game with the given code
func (s *MemoryStore) GetGame(ctx context.Context, code string) (*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.games {
		if g.Code == code && g.Active() {
			return cloneGame(g), nil
		}
	}
	return nil, ErrNotFound
}

// ActiveGameByMaster retrieves the non-stopped game owned by masterID
func (s *MemoryStore) ActiveGameByMaster(ctx context.Context, masterID string) (*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.games {
		if g.MasterID == masterID && g.Active() {
			return cloneGame(g), nil
		}
	}
	return nil, ErrNotFound
}

// UpdateGameState advances the state of a game
func (s *MemoryStore) UpdateGameState(ctx context.Context, code string, state models.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.games {
		if g.Code == code && g.Active() {
			g.State = state
			return nil
		}
	}
	return ErrNotFound
}

// CreateAssassin enrolls an assassin in a game
func (s *MemoryStore) CreateAssassin(ctx context.Context, assassin *models.Assassin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findAssassin(assassin.ID) != nil {
		return ErrDuplicate
	}
	s.assassins[assassin.GameCode] = append(s.assassins[assassin.GameCode], cloneAssassin(assassin))
	return nil
}

// findAssassin returns the assassin enrolled in a non-stopped game, or nil.
// Must be called with the store lock held.
func (s *MemoryStore) findAssassin(id string) *models.Assassin {
	for _, g := range s.games {
		if !g.Active() {
			continue
		}
		for _, a := range s.assassins[g.Code] {
			if a.ID == id {
				return a
			}
		}
	}
	return nil
}

// GetAssassin retrieves the assassin enrolled in a non-stopped game
func (s *MemoryStore) GetAssassin(ctx context.Context, id string) (*models.Assassin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a := s.findAssassin(id); a != nil {
		return cloneAssassin(a), nil
	}
	return nil, ErrNotFound
}

// ListAssassins returns all assassins of a game in enrollment order
func (s *MemoryStore) ListAssassins(ctx context.Context, gameCode string) ([]*models.Assassin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*models.Assassin, 0, len(s.assassins[gameCode]))
	for _, a := range s.assassins[gameCode] {
		list = append(list, cloneAssassin(a))
	}
	return list, nil
}

// SaveAssassins writes the given records of one game as a single batch
func (s *MemoryStore) SaveAssassins(ctx context.Context, gameCode string, assassins []*models.Assassin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.assassins[gameCode]
	for _, update := range assassins {
		found := false
		for i, a := range stored {
			if a.ID == update.ID {
				stored[i] = cloneAssassin(update)
				found = true
				break
			}
		}
		if !found {
			return ErrNotFound
		}
	}
	return nil
}

// DeleteAssassin hard-removes an assassin
func (s *MemoryStore) DeleteAssassin(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, list := range s.assassins {
		for i, a := range list {
			if a.ID == id {
				s.assassins[code] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return ErrNotFound
}

// CreateTask inserts a task for a game
func (s *MemoryStore) CreateTask(ctx context.Context, task *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.Active {
		for _, t := range s.tasks[task.GameCode] {
			if t.Active {
				return ErrDuplicate
			}
		}
	}
	s.tasks[task.GameCode] = append(s.tasks[task.GameCode], cloneTask(task))
	return nil
}

// ActiveTask returns the active task of a game
func (s *MemoryStore) ActiveTask(ctx context.Context, gameCode string) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks[gameCode] {
		if t.Active {
			return cloneTask(t), nil
		}
	}
	return nil, ErrNotFound
}

// SaveTask updates an existing task
func (s *MemoryStore) SaveTask(ctx context.Context, task *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks[task.GameCode] {
		if t.ID == task.ID {
			s.tasks[task.GameCode][i] = cloneTask(task)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteGameData removes all assassins and tasks of a game
func (s *MemoryStore) DeleteGameData(ctx context.Context, gameCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assassins, gameCode)
	delete(s.tasks, gameCode)
	return nil
}
