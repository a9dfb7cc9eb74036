package models

// EventKind labels an outbound notification
type EventKind string

const (
	EventGameStarted  EventKind = "game-started"
	EventGameOver     EventKind = "game-over"
	EventNewTarget    EventKind = "new-target"
	EventClaimNotice  EventKind = "claim-notice"
	EventKillAnnounce EventKind = "kill-announcement"
	EventBurned       EventKind = "burned"
	EventTaskPosted   EventKind = "task-posted"
	EventJokerSpent   EventKind = "joker-spent"
	EventLeaderboard  EventKind = "leaderboard"
	EventBroadcast    EventKind = "broadcast"
)

// Event is an outbound notification produced by a committed engine
// operation. Delivery happens after the state change is stored; a failed
// delivery never rolls anything back.
type Event struct {
	RecipientID string
	Kind        EventKind
	Payload     string
}
