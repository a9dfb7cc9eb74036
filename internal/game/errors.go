package game

import "errors"

// Expected user-facing outcomes. Handlers map these to friendly responses;
// none of them is retried automatically.
var (
	// ErrDuplicateGame indicates the master already owns a non-stopped game
	ErrDuplicateGame = errors.New("you already have a game registered")

	// ErrNoGame indicates the caller has no non-stopped game registered
	ErrNoGame = errors.New("you do not have a game registered")

	// ErrAlreadyStarted indicates the game has already started
	ErrAlreadyStarted = errors.New("your game has already started")

	// ErrNotStarted indicates the game has not started yet
	ErrNotStarted = errors.New("your game has not started yet")

	// ErrInsufficientPlayers indicates too few assassins to build a ring
	ErrInsufficientPlayers = errors.New("not enough assassins enrolled to start")

	// ErrNotAuthorized indicates the target does not belong to the caller's game
	ErrNotAuthorized = errors.New("this assassin is not enrolled in your game")

	// ErrNotEnrolled indicates the caller is not enrolled in a running game
	ErrNotEnrolled = errors.New("you are not enrolled in a game")

	// ErrAlreadyEnrolled indicates the id is already enrolled in a running game
	ErrAlreadyEnrolled = errors.New("you are already enrolled in a running game")

	// ErrGameNotJoinable indicates the game does not exist or has started
	ErrGameNotJoinable = errors.New("this game does not exist or is not joinable anymore")

	// ErrNoTarget indicates the caller has no target assigned
	ErrNoTarget = errors.New("you are either dead or have no target assigned")

	// ErrDuplicateClaim indicates the kill was already claimed
	ErrDuplicateClaim = errors.New("you already claimed this kill")

	// ErrNoPendingClaim indicates nobody has claimed the caller's kill
	ErrNoPendingClaim = errors.New("nobody has claimed your kill yet")

	// ErrTaskActive indicates the game already has an active task
	ErrTaskActive = errors.New("a task is already active for this game")

	// ErrNoActiveTask indicates the game has no active task
	ErrNoActiveTask = errors.New("there is no active task for this game")

	// ErrWrongAnswer indicates the submitted answer does not match
	ErrWrongAnswer = errors.New("this answer is not correct")

	// ErrInvalidPattern indicates the task solution is not a valid regexp
	ErrInvalidPattern = errors.New("the solution pattern is not a valid regular expression")

	// ErrMissingHandle indicates the master has no contact handle
	ErrMissingHandle = errors.New("a contact handle is required to register a game")

	// ErrMissingField indicates a required enrollment field is empty
	ErrMissingField = errors.New("all enrollment fields are required")

	// ErrDirtyInput indicates an enrollment field contains forbidden characters
	ErrDirtyInput = errors.New("please refrain from using special characters")
)

// ErrInvalidRingState indicates a broken ring invariant, e.g. a living
// member with no hunter. It signals a bug, not a user mistake; callers log
// it with full context and never swallow it.
var ErrInvalidRingState = errors.New("target ring is in an invalid state")
