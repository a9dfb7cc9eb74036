package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
	"github.com/aaronzipp/secret-assassins-society/internal/store"
)

// Dropout removes the caller from their game voluntarily. Before the start
// the record is simply deleted; afterwards the ring is spliced around them
// and their hunter inherits the target without a tally award.
func (s *Service) Dropout(ctx context.Context, assassinID string) ([]models.Event, error) {
	a, err := s.store.GetAssassin(ctx, assassinID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, fmt.Errorf("load assassin %s: %w", assassinID, err)
	}

	lock := s.locks.acquire(a.GameCode)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.store.GetGame(ctx, a.GameCode)
	if err != nil {
		return nil, ErrNotEnrolled
	}
	if g.State == models.GameOpen {
		if err := s.store.DeleteAssassin(ctx, assassinID); err != nil {
			return nil, fmt.Errorf("remove assassin %s from game %s: %w", assassinID, g.Code, err)
		}
		log.Printf("assassin dropped out: game=%s assassin=%s", g.Code, assassinID)
		return nil, nil
	}

	return s.removeFromRing(ctx, g, assassinID, models.Event{})
}

// Burn forcibly eliminates an assassin from the master's game. Mechanically
// identical to a dropout, plus a notification to the burned assassin.
func (s *Service) Burn(ctx context.Context, masterID, assassinID string) ([]models.Event, error) {
	g, err := s.masterGame(ctx, masterID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.acquire(g.Code)
	lock.Lock()
	defer lock.Unlock()

	g, err = s.store.GetGame(ctx, g.Code)
	if err != nil {
		return nil, ErrNoGame
	}
	a, err := s.store.GetAssassin(ctx, assassinID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && a.GameCode != g.Code) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, fmt.Errorf("load assassin %s: %w", assassinID, err)
	}

	if g.State == models.GameOpen {
		if err := s.store.DeleteAssassin(ctx, assassinID); err != nil {
			return nil, fmt.Errorf("remove assassin %s from game %s: %w", assassinID, g.Code, err)
		}
		log.Printf("assassin burned before start: game=%s assassin=%s", g.Code, assassinID)
		return nil, nil
	}
	if !a.Alive() {
		return nil, ErrNoTarget
	}

	notice := models.Event{
		RecipientID: assassinID,
		Kind:        models.EventBurned,
		Payload:     "You got burned and are out of the game. Better luck next time!",
	}
	return s.removeFromRing(ctx, g, assassinID, notice)
}

// removeFromRing splices an assassin out of a started game's ring without a
// tally award and persists the result. The victim's record stays on the
// roster. When the victim is the last man standing the game finishes with no
// winner announcement. Callers must hold the game lock; a non-zero notice
// event is delivered alongside the hunter's new dossier.
func (s *Service) removeFromRing(ctx context.Context, g *models.Game, victimID string, notice models.Event) ([]models.Event, error) {
	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}
	ring := NewRing(members)
	if _, ok := ring.Member(victimID); !ok {
		return nil, ErrNotEnrolled
	}

	if ring.IsLastManStanding(victimID) {
		return s.finishGame(ctx, g, members, nil)
	}

	hunter, err := ring.Splice(victimID)
	if err != nil {
		log.Printf("ERROR: splice of %s in game %s failed: %v", victimID, g.Code, err)
		return nil, err
	}
	victim, _ := ring.Member(victimID)

	var events []models.Event
	if notice.Kind != "" {
		events = append(events, notice)
	}

	if ring.IsLastManStanding(hunter.ID) {
		closing, err := s.finishGame(ctx, g, members, hunter)
		if err != nil {
			return nil, err
		}
		return append(events, closing...), nil
	}

	if err := s.store.SaveAssassins(ctx, g.Code, []*models.Assassin{victim, hunter}); err != nil {
		return nil, fmt.Errorf("persist removal of %s from game %s: %w", victimID, g.Code, err)
	}
	log.Printf("assassin removed from ring: game=%s assassin=%s hunter=%s", g.Code, victimID, hunter.ID)

	events = append(events, models.Event{
		RecipientID: hunter.ID,
		Kind:        models.EventNewTarget,
		Payload:     "Your target has left the game. This is your new target:",
	})
	return append(events, s.dossierEvent(ring, hunter)), nil
}

// ClaimKill records the caller's claim that they eliminated their target.
// The target is marked presumed dead and must confirm before the ring moves.
func (s *Service) ClaimKill(ctx context.Context, assassinID string) ([]models.Event, error) {
	a, err := s.store.GetAssassin(ctx, assassinID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, fmt.Errorf("load assassin %s: %w", assassinID, err)
	}

	lock := s.locks.acquire(a.GameCode)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.store.GetGame(ctx, a.GameCode)
	if err != nil {
		return nil, ErrNotEnrolled
	}
	if g.State != models.GameStarted {
		return nil, ErrNotStarted
	}
	a, err = s.store.GetAssassin(ctx, assassinID)
	if err != nil || !a.Alive() {
		return nil, ErrNoTarget
	}
	target, err := s.store.GetAssassin(ctx, a.TargetID)
	if err != nil {
		log.Printf("ERROR: claim by %s in game %s: target %q missing: %v", a.ID, g.Code, a.TargetID, err)
		return nil, fmt.Errorf("%w: target of %s is missing", ErrInvalidRingState, a.ID)
	}
	if target.PresumedDead {
		return nil, ErrDuplicateClaim
	}

	target.PresumedDead = true
	if err := s.store.SaveAssassins(ctx, g.Code, []*models.Assassin{target}); err != nil {
		return nil, fmt.Errorf("save claim on %s in game %s: %w", target.ID, g.Code, err)
	}
	log.Printf("kill claimed: game=%s hunter=%s victim=%s", g.Code, a.ID, target.ID)

	return []models.Event{{
		RecipientID: target.ID,
		Kind:        models.EventClaimNotice,
		Payload: fmt.Sprintf("Someone claims to have assassinated you. Confirm your death, or report a false claim to your game master (%s).",
			g.MasterHandle),
	}}, nil
}

// ConfirmDead is the victim's confirmation of a claimed kill: the ring is
// spliced, the hunter inherits the target and, with awardTally set, scores
// an elimination. Confirming as the last man standing ends the game with the
// hunter as winner.
func (s *Service) ConfirmDead(ctx context.Context, victimID string, awardTally bool) ([]models.Event, error) {
	v, err := s.store.GetAssassin(ctx, victimID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, fmt.Errorf("load assassin %s: %w", victimID, err)
	}

	lock := s.locks.acquire(v.GameCode)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.store.GetGame(ctx, v.GameCode)
	if err != nil {
		return nil, ErrNotEnrolled
	}
	if g.State != models.GameStarted {
		return nil, ErrNotStarted
	}
	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}
	ring := NewRing(members)
	victim, ok := ring.Member(victimID)
	if !ok || !victim.Alive() {
		return nil, ErrNoTarget
	}
	if !victim.PresumedDead {
		return nil, ErrNoPendingClaim
	}

	hunter, err := ring.HunterOf(victimID)
	if err != nil {
		log.Printf("ERROR: confirm by %s in game %s: %v", victimID, g.Code, err)
		return nil, err
	}
	if _, err := ring.Splice(victimID); err != nil {
		log.Printf("ERROR: splice of %s in game %s failed: %v", victimID, g.Code, err)
		return nil, err
	}
	if awardTally {
		hunter.Tally++
	}

	announcement := fmt.Sprintf("%s has assassinated %s and now counts %d eliminations. The society takes note.",
		hunter.CodeName, victim.CodeName, hunter.Tally)
	var events []models.Event
	for _, m := range members {
		if m.Subscribed && m.ID != victim.ID {
			events = append(events, models.Event{RecipientID: m.ID, Kind: models.EventKillAnnounce, Payload: announcement})
		}
	}
	events = append(events, models.Event{RecipientID: g.MasterID, Kind: models.EventKillAnnounce, Payload: announcement})

	if ring.IsLastManStanding(hunter.ID) {
		closing, err := s.finishGame(ctx, g, members, hunter)
		if err != nil {
			return nil, err
		}
		return append(events, closing...), nil
	}

	if err := s.store.SaveAssassins(ctx, g.Code, []*models.Assassin{victim, hunter}); err != nil {
		return nil, fmt.Errorf("persist kill of %s in game %s: %w", victimID, g.Code, err)
	}
	log.Printf("kill confirmed: game=%s hunter=%s victim=%s tally=%d", g.Code, hunter.ID, victim.ID, hunter.Tally)

	events = append(events, models.Event{
		RecipientID: hunter.ID,
		Kind:        models.EventNewTarget,
		Payload:     "Target eliminated. This is your next target:",
	})
	return append(events, s.dossierEvent(ring, hunter)), nil
}
