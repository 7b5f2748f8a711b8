package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lakshmikanth1222/color-wars/game/engine"
	"github.com/lakshmikanth1222/color-wars/game/session"
)

func newTestService() GameService {
	return NewGameService(session.NewManager())
}

func mustJoin(t *testing.T, svc GameService, room, conn, name string, max int) *JoinResult {
	t.Helper()
	res, err := svc.CreateOrJoin(context.Background(), room, conn, name, max)
	if err != nil {
		t.Fatalf("CreateOrJoin(%s, %s) failed: %v", room, name, err)
	}
	return res
}

func mustMove(t *testing.T, svc GameService, room, conn string, r, c int) *MoveResult {
	t.Helper()
	res, err := svc.SubmitMove(context.Background(), room, conn, r, c)
	if err != nil {
		t.Fatalf("SubmitMove(%s, %s, %d, %d) failed: %v", room, conn, r, c, err)
	}
	return res
}

func rejectCode(t *testing.T, err error) RejectCode {
	t.Helper()
	var rej *Reject
	if !errors.As(err, &rej) {
		t.Fatalf("Expected a *Reject, got %T: %v", err, err)
	}
	return rej.Code
}

func TestCreateOrJoin(t *testing.T) {
	svc := newTestService()

	res := mustJoin(t, svc, "r1", "conn-a", "alice", 2)
	if res.Color != engine.Red {
		t.Errorf("First joiner should be red, got %s", res.Color)
	}
	if res.State.Started {
		t.Error("Room below capacity must not be started")
	}
	if res.State.Max != 2 {
		t.Errorf("Expected max 2, got %d", res.State.Max)
	}

	res = mustJoin(t, svc, "r1", "conn-b", "bob", 2)
	if res.Color != engine.Blue {
		t.Errorf("Second joiner should be blue, got %s", res.Color)
	}
	if !res.State.Started {
		t.Error("Room at capacity should be started")
	}
}

func TestCreateOrJoin_InvalidInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		room, name string
	}{
		{"", "alice"},
		{"r1", ""},
		{"  ", "alice"},
		{"r1", string(make([]byte, engine.MaxNameLen+1))},
		{string(make([]byte, engine.MaxRoomIDLen+1)), "alice"},
	}
	for _, tc := range cases {
		_, err := svc.CreateOrJoin(ctx, tc.room, "conn", tc.name, 2)
		if err == nil {
			t.Errorf("Join room=%q name=%q: expected rejection", tc.room, tc.name)
			continue
		}
		if code := rejectCode(t, err); code != RejectInvalidInput {
			t.Errorf("Join room=%q name=%q: expected %s, got %s", tc.room, tc.name, RejectInvalidInput, code)
		}
	}
}

func TestCreateOrJoin_DuplicateNameAndFull(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	mustJoin(t, svc, "r1", "conn-a", "alice", 2)

	_, err := svc.CreateOrJoin(ctx, "r1", "conn-b", "alice", 2)
	if code := rejectCode(t, err); code != RejectDuplicateName {
		t.Errorf("Expected %s, got %s", RejectDuplicateName, code)
	}

	mustJoin(t, svc, "r1", "conn-b", "bob", 2)
	_, err = svc.CreateOrJoin(ctx, "r1", "conn-c", "carol", 2)
	if code := rejectCode(t, err); code != RejectRoomFull {
		t.Errorf("Expected %s, got %s", RejectRoomFull, code)
	}
}

func TestCreateOrJoin_DefaultCapacity(t *testing.T) {
	svc := newTestService()

	// An absent player count falls back to a 4-seat room.
	res := mustJoin(t, svc, "r1", "conn-a", "alice", 0)
	if res.State.Max != engine.MaxSeats {
		t.Errorf("Expected default capacity %d, got %d", engine.MaxSeats, res.State.Max)
	}
}

func TestSubmitMove_RoomNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.SubmitMove(context.Background(), "ghost", "conn", 0, 0)
	if code := rejectCode(t, err); code != RejectRoomNotFound {
		t.Errorf("Expected %s, got %s", RejectRoomNotFound, code)
	}
}

func TestSubmitMove_RejectionTaxonomy(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	mustJoin(t, svc, "r1", "conn-a", "alice", 2)

	// Not started: only one player seated.
	_, err := svc.SubmitMove(ctx, "r1", "conn-a", 0, 0)
	if code := rejectCode(t, err); code != RejectNotStarted {
		t.Errorf("Expected %s, got %s", RejectNotStarted, code)
	}

	mustJoin(t, svc, "r1", "conn-b", "bob", 2)

	_, err = svc.SubmitMove(ctx, "r1", "conn-a", 8, 0)
	if code := rejectCode(t, err); code != RejectOutOfBounds {
		t.Errorf("Expected %s, got %s", RejectOutOfBounds, code)
	}

	_, err = svc.SubmitMove(ctx, "r1", "conn-b", 0, 0)
	if code := rejectCode(t, err); code != RejectNotYourTurn {
		t.Errorf("Expected %s, got %s", RejectNotYourTurn, code)
	}

	mustMove(t, svc, "r1", "conn-a", 0, 0)
	_, err = svc.SubmitMove(ctx, "r1", "conn-b", 0, 0)
	if code := rejectCode(t, err); code != RejectFirstMove {
		t.Errorf("Expected %s, got %s", RejectFirstMove, code)
	}

	mustMove(t, svc, "r1", "conn-b", 7, 7)
	_, err = svc.SubmitMove(ctx, "r1", "conn-a", 7, 7)
	if code := rejectCode(t, err); code != RejectNotOwnCell {
		t.Errorf("Expected %s, got %s", RejectNotOwnCell, code)
	}
}

// TestEndToEndScenario replays the canonical two-player match: both first
// moves, then alice pumps her corner cell until it explodes.
func TestEndToEndScenario(t *testing.T) {
	svc := newTestService()

	mustJoin(t, svc, "r1", "conn-a", "alice", 2)
	join := mustJoin(t, svc, "r1", "conn-b", "bob", 2)
	if !join.State.Started {
		t.Fatal("Two-seat room with two players must be started")
	}

	// First moves.
	res := mustMove(t, svc, "r1", "conn-a", 0, 0)
	if got := res.State.Grid[0][0]; got != (engine.Cell{Dots: 3, Owner: engine.Red}) {
		t.Fatalf("Expected (0,0) = 3 red dots after first move, got %+v", got)
	}
	mustMove(t, svc, "r1", "conn-b", 7, 7)

	// Alice increments (0,0): 3+1 hits the threshold and the corner fires.
	res = mustMove(t, svc, "r1", "conn-a", 0, 0)
	if res.GameOver {
		t.Fatal("Cascade with blue cells remaining must not end the game")
	}
	if res.Cascades != 1 {
		t.Errorf("Expected 1 cascade frame, got %d", res.Cascades)
	}
	grid := res.State.Grid
	if got := grid[0][0]; got != (engine.Cell{Dots: 0, Owner: engine.None}) {
		t.Errorf("Expected (0,0) emptied by cascade, got %+v", got)
	}
	for _, pos := range [][2]int{{0, 1}, {1, 0}} {
		if got := grid[pos[0]][pos[1]]; got != (engine.Cell{Dots: 1, Owner: engine.Red}) {
			t.Errorf("Expected (%d,%d) = 1 red dot, got %+v", pos[0], pos[1], got)
		}
	}
	if got := grid[7][7]; got != (engine.Cell{Dots: 3, Owner: engine.Blue}) {
		t.Errorf("Expected (7,7) untouched, got %+v", got)
	}
	if res.State.Turn != 1 {
		t.Errorf("Expected turn back to bob, got %d", res.State.Turn)
	}
}

// TestSubmitMove_WinAndTerminalReplay drives a two-player game to the point
// where red's cascade swallows blue's last cell, then checks that further
// moves just restate the result.
func TestSubmitMove_WinAndTerminalReplay(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustJoin(t, svc, "r1", "conn-a", "alice", 2)
	mustJoin(t, svc, "r1", "conn-b", "bob", 2)

	mustMove(t, svc, "r1", "conn-a", 0, 0) // red corner, 3 dots
	mustMove(t, svc, "r1", "conn-b", 0, 1) // blue next door, 3 dots

	// Red fires the corner: (0,1) is converted to red and bumped to 4,
	// which chains until no blue remains.
	res := mustMove(t, svc, "r1", "conn-a", 0, 0)
	if !res.GameOver {
		t.Fatal("Expected game over after red captures blue's only cell")
	}
	if res.Winner != "alice" {
		t.Errorf("Expected winner alice, got %q", res.Winner)
	}
	if !res.FreshWin {
		t.Error("The winning move must carry the fresh-win marker")
	}
	if owners := engine.DistinctOwners(res.State.Grid); len(owners) != 1 || owners[0] != engine.Red {
		t.Errorf("Expected board owned by red only, got %v", owners)
	}

	// A finished room answers every further move with the same outcome.
	replay, err := svc.SubmitMove(ctx, "r1", "conn-b", 5, 5)
	if err != nil {
		t.Fatalf("Post-win move failed: %v", err)
	}
	if !replay.GameOver || replay.Winner != "alice" {
		t.Errorf("Expected terminal replay with winner alice, got over=%v winner=%q", replay.GameOver, replay.Winner)
	}
	if replay.FreshWin {
		t.Error("A replayed terminal answer must not carry the fresh-win marker")
	}
	if got := engine.TotalDots(replay.State.Grid); got != engine.TotalDots(res.State.Grid) {
		t.Errorf("Post-win move must not mutate the board: %d vs %d dots", got, engine.TotalDots(res.State.Grid))
	}
}

func TestLeave(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustJoin(t, svc, "r1", "conn-a", "alice", 2)
	mustJoin(t, svc, "r1", "conn-b", "bob", 2)

	res, err := svc.Leave(ctx, "r1", "conn-b")
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if !res.Removed {
		t.Error("Expected seated player to be removed")
	}
	if res.Name != "bob" || res.Color != engine.Blue {
		t.Errorf("Expected bob/blue, got %s/%s", res.Name, res.Color)
	}
	if res.RoomDeleted {
		t.Error("Room with alice still seated must survive")
	}
	if res.State == nil || res.State.Started {
		t.Error("Expected a non-started snapshot after departure")
	}

	res, err = svc.Leave(ctx, "r1", "conn-a")
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if !res.RoomDeleted {
		t.Error("Expected empty room to be deleted")
	}
	if _, err := svc.GetRoom(ctx, "r1"); err == nil {
		t.Error("Expected deleted room to be unreachable")
	}
}

func TestLeave_UnknownConnection(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	mustJoin(t, svc, "r1", "conn-a", "alice", 2)

	res, err := svc.Leave(ctx, "r1", "conn-x")
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if res.Removed {
		t.Error("Unknown connection must not remove anyone")
	}
}

func TestListRoomsAndStats(t *testing.T) {
	svc := newTestService()

	mustJoin(t, svc, "alpha", "conn-a", "alice", 2)
	mustJoin(t, svc, "alpha", "conn-b", "bob", 2)
	mustJoin(t, svc, "beta", "conn-c", "carol", 3)

	rooms, err := svc.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(rooms))
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Rooms != 2 {
		t.Errorf("Expected 2 rooms, got %d", stats.Rooms)
	}
	if stats.Players != 3 {
		t.Errorf("Expected 3 players, got %d", stats.Players)
	}
	if stats.Started != 1 {
		t.Errorf("Expected 1 started room, got %d", stats.Started)
	}
}

func TestTurnRotationWithThreePlayers(t *testing.T) {
	svc := newTestService()

	mustJoin(t, svc, "r1", "conn-a", "alice", 3)
	mustJoin(t, svc, "r1", "conn-b", "bob", 3)
	mustJoin(t, svc, "r1", "conn-c", "carol", 3)

	mustMove(t, svc, "r1", "conn-a", 0, 0)
	mustMove(t, svc, "r1", "conn-b", 3, 3)
	res := mustMove(t, svc, "r1", "conn-c", 7, 7)
	if res.State.Turn != 0 {
		t.Errorf("Expected turn to wrap to 0, got %d", res.State.Turn)
	}
}

