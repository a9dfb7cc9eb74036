package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
	"github.com/aaronzipp/secret-assassins-society/internal/render"
	"github.com/aaronzipp/secret-assassins-society/internal/store"
)

// codeAttempts bounds the retry loop for generating a free game code
const codeAttempts = 5

// dirtyPattern matches characters forbidden in free-text enrollment fields
var dirtyPattern = regexp.MustCompile(`[@!#$%^&*<>?|}{~;]`)

// Service is the game engine. Every command validates, serializes on the
// per-game lock, reads and writes through the store, and returns the
// notification events for the transport layer to deliver after commit.
type Service struct {
	store   store.Store
	locks   *lockTable
	newID   func() string
	newCode func() string
}

// NewService creates a Service backed by the given store
func NewService(st store.Store) *Service {
	return &Service{
		store:   st,
		locks:   newLockTable(),
		newID:   uuid.NewString,
		newCode: GenerateGameCode,
	}
}

// masterGame resolves the caller's non-stopped game
func (s *Service) masterGame(ctx context.Context, masterID string) (*models.Game, error) {
	g, err := s.store.ActiveGameByMaster(ctx, masterID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoGame
	}
	if err != nil {
		return nil, fmt.Errorf("load game of master %s: %w", masterID, err)
	}
	return g, nil
}

// RegisterGame creates a new game owned by the master. The generated code is
// unique among non-stopped games; stopped games' codes may be reused.
func (s *Service) RegisterGame(ctx context.Context, masterID, masterHandle string) (*models.Game, error) {
	if strings.TrimSpace(masterHandle) == "" {
		return nil, ErrMissingHandle
	}
	if _, err := s.store.ActiveGameByMaster(ctx, masterID); err == nil {
		return nil, ErrDuplicateGame
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check games of master %s: %w", masterID, err)
	}

	for i := 0; i < codeAttempts; i++ {
		g := &models.Game{
			Code:         s.newCode(),
			MasterID:     masterID,
			MasterHandle: strings.TrimSpace(masterHandle),
			State:        models.GameOpen,
		}
		err := s.store.CreateGame(ctx, g)
		if err == nil {
			log.Printf("game registered: code=%s master=%s", g.Code, masterID)
			return g, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("create game: %w", err)
		}
		// The insert lost a race: either the master registered twice
		// concurrently or the code collided with another active game.
		if _, lookupErr := s.store.ActiveGameByMaster(ctx, masterID); lookupErr == nil {
			return nil, ErrDuplicateGame
		}
	}
	return nil, fmt.Errorf("create game: no free code after %d attempts", codeAttempts)
}

// StartGame starts the master's game: builds the initial target ring in
// enrollment order and returns the dossier events for every member.
func (s *Service) StartGame(ctx context.Context, masterID string) ([]models.Event, error) {
	g, err := s.masterGame(ctx, masterID)
	if err != nil {
		return nil, err
	}
	if g.State != models.GameOpen {
		return nil, ErrAlreadyStarted
	}

	lock := s.locks.acquire(g.Code)
	lock.Lock()
	defer lock.Unlock()

	g, err = s.store.GetGame(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("reload game %s: %w", g.Code, err)
	}
	if g.State != models.GameOpen {
		return nil, ErrAlreadyStarted
	}

	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}
	ring := NewRing(members)
	if err := ring.AssignInitial(); err != nil {
		return nil, err
	}
	if err := s.store.SaveAssassins(ctx, g.Code, members); err != nil {
		return nil, fmt.Errorf("save initial ring of game %s: %w", g.Code, err)
	}
	if err := s.store.UpdateGameState(ctx, g.Code, models.GameStarted); err != nil {
		return nil, fmt.Errorf("start game %s: %w", g.Code, err)
	}
	log.Printf("game started: code=%s master=%s players=%d", g.Code, masterID, len(members))

	events := make([]models.Event, 0, 2*len(members))
	for _, member := range members {
		events = append(events, models.Event{
			RecipientID: member.ID,
			Kind:        models.EventGameStarted,
			Payload:     "The game has begun. Stay vigilant! This is your target:",
		})
		events = append(events, s.dossierEvent(ring, member))
	}
	return events, nil
}

// dossierEvent builds the new-target notification for a ring member
func (s *Service) dossierEvent(ring *Ring, member *models.Assassin) models.Event {
	target, ok := ring.Member(member.TargetID)
	if !ok {
		log.Printf("ERROR: dossier for assassin=%s game=%s: target %q not found", member.ID, member.GameCode, member.TargetID)
		return models.Event{RecipientID: member.ID, Kind: models.EventNewTarget, Payload: "Your target could not be resolved, contact your game master."}
	}
	return models.Event{
		RecipientID: member.ID,
		Kind:        models.EventNewTarget,
		Payload:     render.Dossier(target, RandomSkills(DossierSkills)),
	}
}

// StopGame stops the master's game manually: delivers the final leaderboard
// to everyone and cascades removal of its assassins and tasks.
func (s *Service) StopGame(ctx context.Context, masterID string) ([]models.Event, error) {
	g, err := s.masterGame(ctx, masterID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.acquire(g.Code)
	lock.Lock()
	defer lock.Unlock()

	g, err = s.store.GetGame(ctx, g.Code)
	if errors.Is(err, store.ErrNotFound) {
		// Already stopped in the meantime; stopping twice is a no-op.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reload game %s: %w", g.Code, err)
	}

	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}
	return s.finishGame(ctx, g, members, nil)
}

// finishGame transitions a game to stopped, cascades removal of its data and
// returns the closing events. A non-nil winner adds the last-man-standing
// announcement; callers must hold the game lock.
func (s *Service) finishGame(ctx context.Context, g *models.Game, members []*models.Assassin, winner *models.Assassin) ([]models.Event, error) {
	closing := "That's it! This round of the Secret Assassins Society has come to a close. Take a look at the final leaderboard:"
	if winner != nil {
		closing = fmt.Sprintf("That's it! This round of the Secret Assassins Society has come to a close and %s has won by being the last one standing with %d eliminations. Take a look at the final leaderboard:",
			winner.CodeName, winner.Tally)
	}
	board := render.Leaderboard(Rank(members))

	recipients := make([]string, 0, len(members)+1)
	for _, m := range members {
		recipients = append(recipients, m.ID)
	}
	recipients = append(recipients, g.MasterID)

	events := make([]models.Event, 0, 2*len(recipients))
	for _, id := range recipients {
		events = append(events, models.Event{RecipientID: id, Kind: models.EventGameOver, Payload: closing})
		events = append(events, models.Event{RecipientID: id, Kind: models.EventLeaderboard, Payload: board})
	}

	if err := s.store.UpdateGameState(ctx, g.Code, models.GameStopped); err != nil {
		return nil, fmt.Errorf("stop game %s: %w", g.Code, err)
	}
	if err := s.store.DeleteGameData(ctx, g.Code); err != nil {
		return nil, fmt.Errorf("cascade removal for game %s: %w", g.Code, err)
	}
	log.Printf("game stopped: code=%s players=%d winner=%v", g.Code, len(members), winner != nil)
	return events, nil
}

// EnrollInput carries the validated sign-up record for one assassin
type EnrollInput struct {
	ID          string // optional; generated when empty
	GameCode    string
	Name        string
	CodeName    string
	Address     string
	Major       string
	NeedsWeapon bool
}

// Enroll adds an assassin to an open game
func (s *Service) Enroll(ctx context.Context, input EnrollInput) (*models.Assassin, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.CodeName = strings.TrimSpace(input.CodeName)
	input.Address = strings.TrimSpace(input.Address)
	input.Major = strings.TrimSpace(input.Major)
	if input.GameCode == "" || input.Name == "" || input.CodeName == "" || input.Address == "" || input.Major == "" {
		return nil, ErrMissingField
	}
	for _, field := range []string{input.Name, input.CodeName, input.Address, input.Major} {
		if dirtyPattern.MatchString(field) {
			return nil, ErrDirtyInput
		}
	}
	if input.ID == "" {
		input.ID = s.newID()
	}

	if _, err := s.store.GetAssassin(ctx, input.ID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check enrollment of %s: %w", input.ID, err)
	}

	g, err := s.store.GetGame(ctx, input.GameCode)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGameNotJoinable
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", input.GameCode, err)
	}
	if g.State != models.GameOpen {
		return nil, ErrGameNotJoinable
	}

	lock := s.locks.acquire(g.Code)
	lock.Lock()
	defer lock.Unlock()

	g, err = s.store.GetGame(ctx, g.Code)
	if err != nil || g.State != models.GameOpen {
		return nil, ErrGameNotJoinable
	}
	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}

	assassin := &models.Assassin{
		ID:          input.ID,
		GameCode:    g.Code,
		Seq:         len(members) + 1,
		Name:        input.Name,
		CodeName:    input.CodeName,
		Address:     input.Address,
		Major:       input.Major,
		NeedsWeapon: input.NeedsWeapon,
	}
	if err := s.store.CreateAssassin(ctx, assassin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("enroll assassin %s: %w", input.ID, err)
	}
	log.Printf("assassin enrolled: game=%s assassin=%s codename=%s", g.Code, assassin.ID, assassin.CodeName)
	return assassin, nil
}

// ToggleSubscription flips whether the assassin receives kill announcements
// and reports the new value
func (s *Service) ToggleSubscription(ctx context.Context, assassinID string) (bool, error) {
	a, err := s.store.GetAssassin(ctx, assassinID)
	if errors.Is(err, store.ErrNotFound) {
		return false, ErrNotEnrolled
	}
	if err != nil {
		return false, fmt.Errorf("load assassin %s: %w", assassinID, err)
	}

	lock := s.locks.acquire(a.GameCode)
	lock.Lock()
	defer lock.Unlock()

	a, err = s.store.GetAssassin(ctx, assassinID)
	if err != nil {
		return false, ErrNotEnrolled
	}
	a.Subscribed = !a.Subscribed
	if err := s.store.SaveAssassins(ctx, a.GameCode, []*models.Assassin{a}); err != nil {
		return false, fmt.Errorf("save subscription of %s: %w", assassinID, err)
	}
	return a.Subscribed, nil
}

// Broadcast sends a master message to enrolled assassins. With onlyAlive set
// the message goes to ring members only.
func (s *Service) Broadcast(ctx context.Context, masterID, message string, onlyAlive bool) ([]models.Event, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMissingField
	}
	g, err := s.masterGame(ctx, masterID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}

	var events []models.Event
	for _, m := range members {
		if onlyAlive && !m.Alive() {
			continue
		}
		events = append(events, models.Event{RecipientID: m.ID, Kind: models.EventBroadcast, Payload: message})
	}
	return events, nil
}

// Leaderboard renders the current standing of the caller's game; the caller
// may be the master or a participant.
func (s *Service) Leaderboard(ctx context.Context, callerID string) (string, error) {
	g, err := s.masterGame(ctx, callerID)
	if errors.Is(err, ErrNoGame) {
		a, lookupErr := s.store.GetAssassin(ctx, callerID)
		if lookupErr != nil {
			return "", ErrNotEnrolled
		}
		g, err = s.store.GetGame(ctx, a.GameCode)
	}
	if err != nil {
		return "", fmt.Errorf("resolve game of %s: %w", callerID, err)
	}

	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return "", fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}
	return render.Leaderboard(Rank(members)), nil
}

// Players returns the master's full roster in enrollment order
func (s *Service) Players(ctx context.Context, masterID string) ([]*models.Assassin, error) {
	g, err := s.masterGame(ctx, masterID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}
	return members, nil
}

// Dossier re-renders the caller's current target dossier
func (s *Service) Dossier(ctx context.Context, assassinID string) (string, error) {
	a, err := s.store.GetAssassin(ctx, assassinID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrNotEnrolled
	}
	if err != nil {
		return "", fmt.Errorf("load assassin %s: %w", assassinID, err)
	}
	if !a.Alive() {
		g, lookupErr := s.store.GetGame(ctx, a.GameCode)
		if lookupErr == nil && g.State == models.GameOpen {
			return "", ErrNotStarted
		}
		return "", ErrNoTarget
	}
	target, err := s.store.GetAssassin(ctx, a.TargetID)
	if err != nil {
		log.Printf("ERROR: dossier for assassin=%s game=%s: target %q missing: %v", a.ID, a.GameCode, a.TargetID, err)
		return "", fmt.Errorf("%w: target of %s is missing", ErrInvalidRingState, a.ID)
	}
	return render.Dossier(target, RandomSkills(DossierSkills)), nil
}
