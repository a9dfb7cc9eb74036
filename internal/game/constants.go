package game

const (
	// MinPlayers is the minimum number of assassins required to start a
	// game; a ring of one would be an immediate last man standing
	MinPlayers = 2

	// JokerLimit is the number of jokers that triggers an automatic burn
	JokerLimit = 3

	// GameCodeLength is the length of generated game codes
	GameCodeLength = 6

	// GameCodeChars are the characters used for generating game codes
	// (excluding ambiguous chars)
	GameCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// DossierSkills is the number of random skills on a dossier
	DossierSkills = 2
)
