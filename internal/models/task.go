package models

// Task is a per-game challenge the master posts for all living assassins.
// Solution is a regular expression matched against submitted answers with
// search semantics. At most one task per game is active at any time.
type Task struct {
	ID       string
	GameCode string
	Message  string
	Solution string
	Active   bool
}
