package store

import (
	"context"
	"errors"
	"testing"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

func TestMemoryGameLifecycle(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	g := &models.Game{Code: "GAME01", MasterID: "m1", MasterHandle: "@master", State: models.GameOpen}
	if err := st.CreateGame(ctx, g); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m2", State: models.GameOpen}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate code err = %v, want ErrDuplicate", err)
	}
	if err := st.CreateGame(ctx, &models.Game{Code: "GAME02", MasterID: "m1", State: models.GameOpen}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate master err = %v, want ErrDuplicate", err)
	}

	got, err := st.GetGame(ctx, "GAME01")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.MasterHandle != "@master" {
		t.Fatalf("master handle = %q, want @master", got.MasterHandle)
	}

	byMaster, err := st.ActiveGameByMaster(ctx, "m1")
	if err != nil {
		t.Fatalf("get by master: %v", err)
	}
	if byMaster.Code != "GAME01" {
		t.Fatalf("code = %s, want GAME01", byMaster.Code)
	}

	if err := st.UpdateGameState(ctx, "GAME01", models.GameStopped); err != nil {
		t.Fatalf("stop game: %v", err)
	}
	if _, err := st.GetGame(ctx, "GAME01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get stopped game err = %v, want ErrNotFound", err)
	}

	// A stopped game frees its code and its master.
	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1", State: models.GameOpen}); err != nil {
		t.Fatalf("reuse code after stop: %v", err)
	}
}

func TestMemoryAssassinUniqueAcrossGames(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	for _, g := range []*models.Game{
		{Code: "GAME01", MasterID: "m1", State: models.GameOpen},
		{Code: "GAME02", MasterID: "m2", State: models.GameOpen},
	} {
		if err := st.CreateGame(ctx, g); err != nil {
			t.Fatalf("create game %s: %v", g.Code, err)
		}
	}

	if err := st.CreateAssassin(ctx, &models.Assassin{ID: "p1", GameCode: "GAME01", Seq: 1}); err != nil {
		t.Fatalf("create assassin: %v", err)
	}
	if err := st.CreateAssassin(ctx, &models.Assassin{ID: "p1", GameCode: "GAME02", Seq: 1}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("cross-game enroll err = %v, want ErrDuplicate", err)
	}

	if err := st.UpdateGameState(ctx, "GAME01", models.GameStopped); err != nil {
		t.Fatalf("stop game: %v", err)
	}
	if err := st.DeleteGameData(ctx, "GAME01"); err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if err := st.CreateAssassin(ctx, &models.Assassin{ID: "p1", GameCode: "GAME02", Seq: 1}); err != nil {
		t.Fatalf("enroll after old game stopped: %v", err)
	}
}

func TestMemorySaveAssassinsIsolatesCallers(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1", State: models.GameOpen}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := st.CreateAssassin(ctx, &models.Assassin{ID: "p1", GameCode: "GAME01", Seq: 1}); err != nil {
		t.Fatalf("create assassin: %v", err)
	}

	a, err := st.GetAssassin(ctx, "p1")
	if err != nil {
		t.Fatalf("get assassin: %v", err)
	}
	a.Tally = 7
	// The mutation must not leak into the store before SaveAssassins.
	fresh, err := st.GetAssassin(ctx, "p1")
	if err != nil {
		t.Fatalf("get fresh: %v", err)
	}
	if fresh.Tally != 0 {
		t.Fatalf("tally before save = %d, want 0", fresh.Tally)
	}

	if err := st.SaveAssassins(ctx, "GAME01", []*models.Assassin{a}); err != nil {
		t.Fatalf("save assassins: %v", err)
	}
	saved, err := st.GetAssassin(ctx, "p1")
	if err != nil {
		t.Fatalf("get saved: %v", err)
	}
	if saved.Tally != 7 {
		t.Fatalf("tally after save = %d, want 7", saved.Tally)
	}

	if err := st.SaveAssassins(ctx, "GAME01", []*models.Assassin{{ID: "ghost", GameCode: "GAME01"}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("save unknown err = %v, want ErrNotFound", err)
	}
}

func TestMemoryListAssassinsEnrollmentOrder(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1", State: models.GameOpen}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	for i, id := range []string{"p1", "p2", "p3"} {
		if err := st.CreateAssassin(ctx, &models.Assassin{ID: id, GameCode: "GAME01", Seq: i + 1}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	list, err := st.ListAssassins(ctx, "GAME01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range []string{"p1", "p2", "p3"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}

	if err := st.DeleteAssassin(ctx, "p2"); err != nil {
		t.Fatalf("delete p2: %v", err)
	}
	list, err = st.ListAssassins(ctx, "GAME01")
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p1" || list[1].ID != "p3" {
		t.Fatalf("list after delete = %v", list)
	}
}

func TestMemoryTasks(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	task := &models.Task{ID: "t1", GameCode: "GAME01", Message: "Solve", Solution: "42", Active: true}
	if err := st.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := st.CreateTask(ctx, &models.Task{ID: "t2", GameCode: "GAME01", Active: true}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second active task err = %v, want ErrDuplicate", err)
	}

	active, err := st.ActiveTask(ctx, "GAME01")
	if err != nil {
		t.Fatalf("active task: %v", err)
	}
	if active.ID != "t1" {
		t.Fatalf("active task = %s, want t1", active.ID)
	}

	active.Active = false
	if err := st.SaveTask(ctx, active); err != nil {
		t.Fatalf("save task: %v", err)
	}
	if _, err := st.ActiveTask(ctx, "GAME01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("active after close err = %v, want ErrNotFound", err)
	}

	if err := st.CreateTask(ctx, &models.Task{ID: "t2", GameCode: "GAME01", Active: true}); err != nil {
		t.Fatalf("new task after close: %v", err)
	}
}

func TestMemoryContextCancellation(t *testing.T) {
	st := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("create with cancelled ctx err = %v, want context.Canceled", err)
	}
	if _, err := st.GetGame(ctx, "GAME01"); !errors.Is(err, context.Canceled) {
		t.Fatalf("get with cancelled ctx err = %v, want context.Canceled", err)
	}
}
