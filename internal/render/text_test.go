package render

import (
	"strings"
	"testing"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

func TestLeaderboardTable(t *testing.T) {
	board := Leaderboard([]*models.Assassin{
		{CodeName: "Viper", TargetID: "x", Tally: 3},
		{CodeName: "Mongoose", Tally: 1},
	})

	lines := strings.Split(board, "\n")
	if len(lines) != 4 {
		t.Fatalf("board has %d lines, want 4:\n%s", len(lines), board)
	}
	if !strings.HasPrefix(lines[0], "alive") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "yes") || !strings.Contains(lines[2], "Viper") {
		t.Fatalf("first row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "no") || !strings.Contains(lines[3], "Mongoose") {
		t.Fatalf("second row = %q", lines[3])
	}
}

func TestDossierFields(t *testing.T) {
	target := &models.Assassin{
		Name: "Alice", CodeName: "Viper", Address: "Room 12", Major: "Physics",
	}
	dossier := Dossier(target, []string{"poison", "disguises"})

	for _, want := range []string{
		"Name: Alice", "Code name: Viper", "Address: Room 12",
		"Major: Physics", "Skills: poison, disguises",
	} {
		if !strings.Contains(dossier, want) {
			t.Errorf("dossier missing %q:\n%s", want, dossier)
		}
	}
}
