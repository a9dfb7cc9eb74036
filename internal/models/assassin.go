package models

// Assassin represents an enrolled player. TargetID is empty until the game
// starts and empty again once the assassin has been eliminated; the assassin
// is alive exactly while it is part of the target ring.
type Assassin struct {
	ID           string
	GameCode     string
	Seq          int // enrollment order within the game
	Name         string
	CodeName     string
	Address      string
	Major        string
	NeedsWeapon  bool
	TargetID     string
	PresumedDead bool
	Tally        int
	JokersUsed   int
	TaskAnswered bool
	Subscribed   bool
}

// Alive reports whether the assassin is still part of the target ring
func (a *Assassin) Alive() bool {
	return a.TargetID != ""
}
