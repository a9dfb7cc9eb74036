package render

import (
	"fmt"
	"strings"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

// Leaderboard renders ranked assassins as a monospace table
func Leaderboard(ranked []*models.Assassin) string {
	var b strings.Builder
	b.WriteString("alive | codename               | kills\n")
	b.WriteString("----------------------------------------")
	for _, a := range ranked {
		mark := "yes"
		if !a.Alive() {
			mark = "no"
		}
		fmt.Fprintf(&b, "\n%-6s| %-23s| %d", mark, a.CodeName, a.Tally)
	}
	return b.String()
}

// Dossier renders the profile packet an assassin receives about their target
func Dossier(target *models.Assassin, skills []string) string {
	return fmt.Sprintf("Name: %s\n\nCode name: %s\n\nAddress: %s\n\nMajor: %s\n\nSkills: %s",
		target.Name, target.CodeName, target.Address, target.Major, strings.Join(skills, ", "))
}

// Rules returns the rules text handed to every enrolling assassin
func Rules() string {
	return "1. Your task is to assassinate your assigned target by shooting them with a water gun. " +
		"Kills must be reported to the game master bot by both assassin and target.\n" +
		"2. Targets are always safe on their floor, in classes, and places of work.\n" +
		"3. When you assassinate your target, their target becomes your new target.\n" +
		"4. If you are shot by your target, you are then disabled for 24 hrs.\n" +
		"5. The last person alive or the person with the most assassinations at the end of the game is the winner.\n" +
		"6. Always stay 1.5 meters away from other assassins. They're assassins after all.\n" +
		"7. Failure to complete an assigned task will result in you getting burned. You have 2 jokers.\n" +
		"8. The game master is always right."
}
