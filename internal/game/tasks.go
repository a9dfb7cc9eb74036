package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
	"github.com/aaronzipp/secret-assassins-society/internal/store"
)

// PostTask opens a task round for the master's started game. The solution is
// a regular expression matched against submitted answers; only one task may
// be active at a time.
func (s *Service) PostTask(ctx context.Context, masterID, message, solution string) ([]models.Event, error) {
	if strings.TrimSpace(message) == "" || solution == "" {
		return nil, ErrMissingField
	}
	if _, err := regexp.Compile(solution); err != nil {
		return nil, ErrInvalidPattern
	}
	g, err := s.masterGame(ctx, masterID)
	if err != nil {
		return nil, err
	}
	if g.State != models.GameStarted {
		return nil, ErrNotStarted
	}

	lock := s.locks.acquire(g.Code)
	lock.Lock()
	defer lock.Unlock()

	task := &models.Task{
		ID:       s.newID(),
		GameCode: g.Code,
		Message:  message,
		Solution: solution,
		Active:   true,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrTaskActive
		}
		return nil, fmt.Errorf("create task for game %s: %w", g.Code, err)
	}

	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}
	var changed []*models.Assassin
	for _, m := range members {
		if m.TaskAnswered {
			m.TaskAnswered = false
			changed = append(changed, m)
		}
	}
	if len(changed) > 0 {
		if err := s.store.SaveAssassins(ctx, g.Code, changed); err != nil {
			return nil, fmt.Errorf("reset task answers of game %s: %w", g.Code, err)
		}
	}
	log.Printf("task posted: game=%s task=%s", g.Code, task.ID)

	var events []models.Event
	for _, m := range members {
		if !m.Alive() {
			continue
		}
		events = append(events, models.Event{
			RecipientID: m.ID,
			Kind:        models.EventTaskPosted,
			Payload:     "The society demands a task of you:\n\n" + message,
		})
	}
	return events, nil
}

// AnswerTask checks the caller's answer against the active task's solution
// pattern. A correct answer is recorded; answering again is a no-op.
func (s *Service) AnswerTask(ctx context.Context, assassinID, answer string) error {
	a, err := s.store.GetAssassin(ctx, assassinID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotEnrolled
	}
	if err != nil {
		return fmt.Errorf("load assassin %s: %w", assassinID, err)
	}

	task, err := s.store.ActiveTask(ctx, a.GameCode)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoActiveTask
	}
	if err != nil {
		return fmt.Errorf("load active task of game %s: %w", a.GameCode, err)
	}
	if a.TaskAnswered {
		return nil
	}

	matched, err := regexp.MatchString(task.Solution, answer)
	if err != nil {
		log.Printf("ERROR: task %s of game %s has invalid solution pattern: %v", task.ID, a.GameCode, err)
		return ErrNoActiveTask
	}
	if !matched {
		return ErrWrongAnswer
	}

	lock := s.locks.acquire(a.GameCode)
	lock.Lock()
	defer lock.Unlock()

	a, err = s.store.GetAssassin(ctx, assassinID)
	if err != nil {
		return ErrNotEnrolled
	}
	a.TaskAnswered = true
	if err := s.store.SaveAssassins(ctx, a.GameCode, []*models.Assassin{a}); err != nil {
		return fmt.Errorf("save task answer of %s: %w", assassinID, err)
	}
	log.Printf("task answered: game=%s assassin=%s task=%s", a.GameCode, assassinID, task.ID)
	return nil
}

// CloseTask ends the active task round. Every living member who did not
// answer spends a joker; whoever reaches the joker limit is burned from the
// ring on the spot. Answer flags reset for the next round.
func (s *Service) CloseTask(ctx context.Context, masterID string) ([]models.Event, error) {
	g, err := s.masterGame(ctx, masterID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.acquire(g.Code)
	lock.Lock()
	defer lock.Unlock()

	task, err := s.store.ActiveTask(ctx, g.Code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoActiveTask
	}
	if err != nil {
		return nil, fmt.Errorf("load active task of game %s: %w", g.Code, err)
	}
	task.Active = false
	if err := s.store.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("close task %s of game %s: %w", task.ID, g.Code, err)
	}

	members, err := s.store.ListAssassins(ctx, g.Code)
	if err != nil {
		return nil, fmt.Errorf("list assassins of game %s: %w", g.Code, err)
	}
	ring := NewRing(members)

	var events []models.Event
	var burnList []*models.Assassin
	for _, m := range members {
		if m.Alive() && !m.TaskAnswered {
			m.JokersUsed++
			if m.JokersUsed >= JokerLimit {
				burnList = append(burnList, m)
			} else {
				events = append(events, models.Event{
					RecipientID: m.ID,
					Kind:        models.EventJokerSpent,
					Payload:     fmt.Sprintf("You failed to complete the task and spent a joker. %d of %d jokers used.", m.JokersUsed, JokerLimit),
				})
			}
		}
		m.TaskAnswered = false
	}
	log.Printf("task closed: game=%s task=%s burned=%d", g.Code, task.ID, len(burnList))

	for _, victim := range burnList {
		if ring.IsLastManStanding(victim.ID) {
			closing, err := s.finishGame(ctx, g, members, nil)
			if err != nil {
				return nil, err
			}
			return append(events, closing...), nil
		}
		hunter, err := ring.Splice(victim.ID)
		if err != nil {
			log.Printf("ERROR: splice of %s in game %s failed: %v", victim.ID, g.Code, err)
			return nil, err
		}
		events = append(events, models.Event{
			RecipientID: victim.ID,
			Kind:        models.EventBurned,
			Payload:     "You spent your last joker and got burned. Better luck next time!",
		})
		if ring.IsLastManStanding(hunter.ID) {
			closing, err := s.finishGame(ctx, g, members, hunter)
			if err != nil {
				return nil, err
			}
			return append(events, closing...), nil
		}
		events = append(events, models.Event{
			RecipientID: hunter.ID,
			Kind:        models.EventNewTarget,
			Payload:     "Your target got burned. This is your new target:",
		})
		events = append(events, s.dossierEvent(ring, hunter))
	}

	if err := s.store.SaveAssassins(ctx, g.Code, members); err != nil {
		return nil, fmt.Errorf("persist task round of game %s: %w", g.Code, err)
	}
	return events, nil
}
