package game

import (
	"fmt"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

// Ring is the cyclic target relation among the living assassins of a
// started game. It indexes the records by id and mutates them in place;
// callers persist the changed records afterwards.
//
// Invariant: the target edges of all living members form exactly one cycle
// covering all of them.
type Ring struct {
	byID  map[string]*models.Assassin
	order []*models.Assassin
}

// NewRing indexes the assassins of one game
func NewRing(assassins []*models.Assassin) *Ring {
	r := &Ring{
		byID:  make(map[string]*models.Assassin, len(assassins)),
		order: assassins,
	}
	for _, a := range assassins {
		r.byID[a.ID] = a
	}
	return r
}

// Member returns the assassin with the given id
func (r *Ring) Member(id string) (*models.Assassin, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// Living returns all members still in the ring, in enrollment order
func (r *Ring) Living() []*models.Assassin {
	var living []*models.Assassin
	for _, a := range r.order {
		if a.Alive() {
			living = append(living, a)
		}
	}
	return living
}

// AssignInitial arranges all members into one cycle in enrollment order;
// each member's target becomes the next member, wrapping around. Requires
// at least MinPlayers members.
func (r *Ring) AssignInitial() error {
	if len(r.order) < MinPlayers {
		return ErrInsufficientPlayers
	}
	for i, a := range r.order {
		a.TargetID = r.order[(i+1)%len(r.order)].ID
	}
	return nil
}

// IsLastManStanding reports whether the assassin targets themself, the
// terminal ring state
func (r *Ring) IsLastManStanding(id string) bool {
	a, ok := r.byID[id]
	return ok && a.Alive() && a.TargetID == a.ID
}

// HunterOf returns the unique living member whose target is the given id.
// A living member of a started game always has exactly one hunter; anything
// else is a broken invariant.
func (r *Ring) HunterOf(id string) (*models.Assassin, error) {
	var hunter *models.Assassin
	for _, a := range r.order {
		if !a.Alive() || a.TargetID != id {
			continue
		}
		if hunter != nil {
			return nil, fmt.Errorf("%w: %s is hunted by both %s and %s", ErrInvalidRingState, id, hunter.ID, a.ID)
		}
		hunter = a
	}
	if hunter == nil {
		return nil, fmt.Errorf("%w: no hunter for %s", ErrInvalidRingState, id)
	}
	return hunter, nil
}

// Splice removes the victim from the ring and reconnects their hunter
// directly to their former target. Returns the hunter. Splicing the last
// man standing is illegal; callers must check IsLastManStanding first.
func (r *Ring) Splice(victimID string) (*models.Assassin, error) {
	victim, ok := r.byID[victimID]
	if !ok || !victim.Alive() {
		return nil, fmt.Errorf("%w: %s is not in the ring", ErrInvalidRingState, victimID)
	}
	hunter, err := r.HunterOf(victimID)
	if err != nil {
		return nil, err
	}
	if hunter.ID == victim.ID {
		return nil, fmt.Errorf("%w: cannot splice last man standing %s", ErrInvalidRingState, victimID)
	}
	hunter.TargetID = victim.TargetID
	victim.TargetID = ""
	victim.PresumedDead = false
	return hunter, nil
}

// Validate checks that the target edges of all living members form exactly
// one cycle covering all of them
func (r *Ring) Validate() error {
	living := r.Living()
	if len(living) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(living))
	current := living[0]
	for range living {
		if seen[current.ID] {
			return fmt.Errorf("%w: cycle revisits %s before covering all living members", ErrInvalidRingState, current.ID)
		}
		seen[current.ID] = true
		next, ok := r.byID[current.TargetID]
		if !ok || !next.Alive() {
			return fmt.Errorf("%w: %s targets %q which is not a living member", ErrInvalidRingState, current.ID, current.TargetID)
		}
		current = next
	}
	if current.ID != living[0].ID {
		return fmt.Errorf("%w: walk from %s does not close the cycle", ErrInvalidRingState, living[0].ID)
	}
	if len(seen) != len(living) {
		return fmt.Errorf("%w: cycle covers %d of %d living members", ErrInvalidRingState, len(seen), len(living))
	}
	return nil
}
