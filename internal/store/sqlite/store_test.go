package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
	"github.com/aaronzipp/secret-assassins-society/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir() + "/assassins.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestGameRoundTripAndCodeReuse(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	g := &models.Game{Code: "GAME01", MasterID: "m1", MasterHandle: "@master", State: models.GameOpen}
	if err := st.CreateGame(ctx, g); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m2", State: models.GameOpen}); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate code err = %v, want ErrDuplicate", err)
	}
	if err := st.CreateGame(ctx, &models.Game{Code: "GAME02", MasterID: "m1", State: models.GameOpen}); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate master err = %v, want ErrDuplicate", err)
	}

	got, err := st.GetGame(ctx, "GAME01")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.MasterHandle != "@master" || got.State != models.GameOpen {
		t.Fatalf("game = %+v", got)
	}

	if err := st.UpdateGameState(ctx, "GAME01", models.GameStarted); err != nil {
		t.Fatalf("start: %v", err)
	}
	byMaster, err := st.ActiveGameByMaster(ctx, "m1")
	if err != nil {
		t.Fatalf("get by master: %v", err)
	}
	if byMaster.State != models.GameStarted {
		t.Fatalf("state = %s, want started", byMaster.State)
	}

	if err := st.UpdateGameState(ctx, "GAME01", models.GameStopped); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, err := st.GetGame(ctx, "GAME01"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get stopped err = %v, want ErrNotFound", err)
	}
	if err := st.UpdateGameState(ctx, "GAME01", models.GameStarted); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("restart stopped err = %v, want ErrNotFound", err)
	}

	// The stopped row stays but no longer blocks the code or the master.
	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1", State: models.GameOpen}); err != nil {
		t.Fatalf("reuse code after stop: %v", err)
	}
}

func TestAssassinRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1", State: models.GameOpen}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	a := &models.Assassin{
		ID: "p1", GameCode: "GAME01", Seq: 1, Name: "Alice", CodeName: "Viper",
		Address: "Room 1", Major: "Physics", NeedsWeapon: true,
	}
	if err := st.CreateAssassin(ctx, a); err != nil {
		t.Fatalf("create assassin: %v", err)
	}
	if err := st.CreateAssassin(ctx, &models.Assassin{ID: "p1", GameCode: "GAME01"}); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("re-enroll err = %v, want ErrDuplicate", err)
	}

	got, err := st.GetAssassin(ctx, "p1")
	if err != nil {
		t.Fatalf("get assassin: %v", err)
	}
	if got.Name != "Alice" || !got.NeedsWeapon || got.Alive() {
		t.Fatalf("assassin = %+v", got)
	}

	got.TargetID = "p2"
	got.Tally = 2
	got.Subscribed = true
	if err := st.SaveAssassins(ctx, "GAME01", []*models.Assassin{got}); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved, err := st.GetAssassin(ctx, "p1")
	if err != nil {
		t.Fatalf("get saved: %v", err)
	}
	if saved.TargetID != "p2" || saved.Tally != 2 || !saved.Subscribed {
		t.Fatalf("saved = %+v", saved)
	}

	if err := st.DeleteAssassin(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.GetAssassin(ctx, "p1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get deleted err = %v, want ErrNotFound", err)
	}
	if err := st.DeleteAssassin(ctx, "p1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete again err = %v, want ErrNotFound", err)
	}
}

func TestSaveAssassinsBatchIsAtomic(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1", State: models.GameOpen}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := st.CreateAssassin(ctx, &models.Assassin{ID: "p1", GameCode: "GAME01", Seq: 1}); err != nil {
		t.Fatalf("create assassin: %v", err)
	}

	good, err := st.GetAssassin(ctx, "p1")
	if err != nil {
		t.Fatalf("get assassin: %v", err)
	}
	good.Tally = 5
	ghost := &models.Assassin{ID: "ghost", GameCode: "GAME01"}

	err = st.SaveAssassins(ctx, "GAME01", []*models.Assassin{good, ghost})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("batch with ghost err = %v, want ErrNotFound", err)
	}

	// The batch rolled back, so the good record stays untouched.
	fresh, err := st.GetAssassin(ctx, "p1")
	if err != nil {
		t.Fatalf("get fresh: %v", err)
	}
	if fresh.Tally != 0 {
		t.Fatalf("tally after rollback = %d, want 0", fresh.Tally)
	}
}

func TestListAssassinsEnrollmentOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1", State: models.GameOpen}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	for i, id := range []string{"p3", "p1", "p2"} {
		if err := st.CreateAssassin(ctx, &models.Assassin{ID: id, GameCode: "GAME01", Seq: i + 1}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	list, err := st.ListAssassins(ctx, "GAME01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range []string{"p3", "p1", "p2"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}
}

func TestTasksAndCascade(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.CreateGame(ctx, &models.Game{Code: "GAME01", MasterID: "m1", State: models.GameStarted}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := st.CreateAssassin(ctx, &models.Assassin{ID: "p1", GameCode: "GAME01", Seq: 1}); err != nil {
		t.Fatalf("create assassin: %v", err)
	}
	if err := st.CreateTask(ctx, &models.Task{ID: "t1", GameCode: "GAME01", Message: "Solve", Solution: "42", Active: true}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := st.CreateTask(ctx, &models.Task{ID: "t2", GameCode: "GAME01", Active: true}); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("second active task err = %v, want ErrDuplicate", err)
	}

	task, err := st.ActiveTask(ctx, "GAME01")
	if err != nil {
		t.Fatalf("active task: %v", err)
	}
	task.Active = false
	if err := st.SaveTask(ctx, task); err != nil {
		t.Fatalf("save task: %v", err)
	}
	if _, err := st.ActiveTask(ctx, "GAME01"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("active after close err = %v, want ErrNotFound", err)
	}

	if err := st.DeleteGameData(ctx, "GAME01"); err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if _, err := st.GetAssassin(ctx, "p1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("assassin after cascade err = %v, want ErrNotFound", err)
	}
	list, err := st.ListAssassins(ctx, "GAME01")
	if err != nil {
		t.Fatalf("list after cascade: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list after cascade len = %d, want 0", len(list))
	}
}
