package game

import (
	"testing"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

func TestRankOrdersByTallyThenAliveFirst(t *testing.T) {
	members := []*models.Assassin{
		{ID: "a1", CodeName: "One", Tally: 1, TargetID: ""},
		{ID: "a2", CodeName: "Two", Tally: 3, TargetID: "a3"},
		{ID: "a3", CodeName: "Three", Tally: 3, TargetID: ""},
		{ID: "a4", CodeName: "Four", Tally: 0, TargetID: "a2"},
		{ID: "a5", CodeName: "Five", Tally: 1, TargetID: "a4"},
	}

	ranked := Rank(members)

	wantOrder := []string{"a2", "a5", "a4", "a3", "a1"}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("ranked len = %d, want %d", len(ranked), len(wantOrder))
	}
	for i, a := range ranked {
		if a.ID != wantOrder[i] {
			t.Errorf("ranked[%d] = %s, want %s", i, a.ID, wantOrder[i])
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	members := []*models.Assassin{
		{ID: "a1", Tally: 0, TargetID: "a2"},
		{ID: "a2", Tally: 5, TargetID: "a1"},
	}

	Rank(members)

	if members[0].ID != "a1" || members[1].ID != "a2" {
		t.Fatal("input slice reordered")
	}
}

func TestRankStableWithinTies(t *testing.T) {
	members := []*models.Assassin{
		{ID: "a1", Tally: 2, TargetID: "a2"},
		{ID: "a2", Tally: 2, TargetID: "a3"},
		{ID: "a3", Tally: 2, TargetID: "a1"},
	}

	ranked := Rank(members)
	for i, want := range []string{"a1", "a2", "a3"} {
		if ranked[i].ID != want {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].ID, want)
		}
	}
}
