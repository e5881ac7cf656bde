package room

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/ikadraft/ika-draft-backend/internal/catalog"
	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

type captureSink struct{ ch chan types.GameRecord }

func (c captureSink) SaveResult(_ context.Context, rec types.GameRecord) error {
	c.ch <- rec
	return nil
}

func newTestRoom(t *testing.T, tick time.Duration, sink ResultSink) *Room {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return New(ctx, Options{
		ID:      "1",
		Catalog: catalog.Default(),
		Sink:    sink,
		Tick:    tick,
		Rng:     rand.New(rand.NewSource(1)),
	})
}

// join registers a client and drains its initialState message.
func join(t *testing.T, r *Room, id, name string, buf int) chan types.ServerMessage {
	t.Helper()
	out := make(chan types.ServerMessage, buf)
	if err := r.JoinRoom(context.Background(), id, name, out); err != nil {
		t.Fatalf("join %s: %v", id, err)
	}
	first := recv(t, out, time.Second)
	if first.Type != types.MsgInitialState {
		t.Fatalf("want initialState first, got %s", first.Type)
	}
	return out
}

func recv(t *testing.T, ch <-chan types.ServerMessage, within time.Duration) types.ServerMessage {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatalf("outbox closed unexpectedly")
		}
		return msg
	case <-time.After(within):
		t.Fatalf("timed out waiting for message")
		return types.ServerMessage{} // unreachable
	}
}

// recvType skips intermediate messages until one of the wanted type arrives.
func recvType(t *testing.T, ch <-chan types.ServerMessage, msgType string, within time.Duration) types.ServerMessage {
	t.Helper()
	deadline := time.After(within)
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				t.Fatalf("outbox closed while waiting for %s", msgType)
			}
			if msg.Type == msgType {
				return msg
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", msgType)
			return types.ServerMessage{} // unreachable
		}
	}
}

func recvNothing(t *testing.T, ch <-chan types.ServerMessage, within time.Duration) {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if ok {
			t.Fatalf("expected silence, got %+v", msg)
		}
	case <-time.After(within):
	}
}

func do(t *testing.T, r *Room, clientID string, cmd Command) {
	t.Helper()
	if err := r.Do(context.Background(), clientID, cmd); err != nil {
		t.Fatalf("%s %s: %v", clientID, cmd.Type, err)
	}
}

// seatTwoTeams joins a host on alpha and a second player on bravo.
func seatTwoTeams(t *testing.T, r *Room, buf int) (host, other chan types.ServerMessage) {
	t.Helper()
	host = join(t, r, "h", "Hana", buf)
	other = join(t, r, "p2", "Ben", buf)
	do(t, r, "h", Command{Type: CmdSelectTeam, Team: engine.TeamAlpha})
	do(t, r, "p2", Command{Type: CmdSelectTeam, Team: engine.TeamBravo})
	return host, other
}

func TestRoom_JoinSendsFullSnapshot(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	out := make(chan types.ServerMessage, 8)
	if err := r.JoinRoom(context.Background(), "c1", "Mika", out); err != nil {
		t.Fatalf("join: %v", err)
	}

	first := recv(t, out, time.Second)
	if first.Type != types.MsgInitialState {
		t.Fatalf("want initialState, got %s", first.Type)
	}
	if first.State == nil || len(first.State.Weapons) == 0 {
		t.Fatalf("initial snapshot must carry the full weapon table")
	}
	if first.State.Phase != string(engine.PhaseWaiting) {
		t.Fatalf("fresh room must be waiting, got %s", first.State.Phase)
	}
	if first.State.HostID != "c1" {
		t.Fatalf("first joiner must be host, got %q", first.State.HostID)
	}

	// Roster broadcast follows, without the weapon table.
	second := recv(t, out, time.Second)
	if second.Type != types.MsgPhaseChange || len(second.State.Weapons) != 0 {
		t.Fatalf("want trimmed phaseChange, got %+v", second)
	}
}

func TestRoom_JoinValidation(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)

	if err := r.JoinRoom(context.Background(), "c1", "", make(chan types.ServerMessage, 1)); !errors.Is(err, engine.ErrInvalidName) {
		t.Fatalf("empty name: want ErrInvalidName, got %v", err)
	}
	if err := r.JoinRoom(context.Background(), "c1", "much too long name", make(chan types.ServerMessage, 1)); !errors.Is(err, engine.ErrInvalidName) {
		t.Fatalf("long name: want ErrInvalidName, got %v", err)
	}

	for i := 0; i < MaxRoomUsers; i++ {
		join(t, r, string(rune('a'+i)), "Player", 64)
	}
	err := r.JoinRoom(context.Background(), "overflow", "Late", make(chan types.ServerMessage, 1))
	if !errors.Is(err, engine.ErrRoomFull) {
		t.Fatalf("want ErrRoomFull, got %v", err)
	}
}

func TestRoom_StartGameChecks(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	join(t, r, "h", "Hana", 64)
	join(t, r, "p2", "Ben", 64)

	if err := r.Do(context.Background(), "p2", Command{Type: CmdStartGame}); !errors.Is(err, engine.ErrNotHost) {
		t.Fatalf("non-host start: want ErrNotHost, got %v", err)
	}
	if err := r.Do(context.Background(), "h", Command{Type: CmdStartGame}); !errors.Is(err, engine.ErrNotEnoughPlayers) {
		t.Fatalf("empty teams: want ErrNotEnoughPlayers, got %v", err)
	}
}

func TestRoom_StartGameEntersBanWithFullTimer(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	host, _ := seatTwoTeams(t, r, 64)
	drain(host)

	do(t, r, "h", Command{Type: CmdStartGame})

	msg := recvType(t, host, types.MsgPhaseChange, time.Second)
	if msg.State.Phase != string(engine.PhaseBan) {
		t.Fatalf("want ban, got %s", msg.State.Phase)
	}
	if msg.State.SecondsLeft != engine.BanPhaseSeconds {
		t.Fatalf("want full ban countdown %d, got %d", engine.BanPhaseSeconds, msg.State.SecondsLeft)
	}
	if msg.State.Bans["alpha"] != 0 || msg.State.Picks["bravo"] != 0 {
		t.Fatalf("counters must start at zero")
	}
	if msg.State.StageID == catalog.OmakaseID || msg.State.RuleID == catalog.OmakaseID {
		t.Fatalf("omakase stage/rule must be resolved at start")
	}
}

func TestRoom_BanBroadcastsWeaponDelta(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	host, other := seatTwoTeams(t, r, 64)
	do(t, r, "h", Command{Type: CmdStartGame})
	drain(host)
	drain(other)

	do(t, r, "h", Command{Type: CmdBanWeapon, WeaponID: 9})

	for _, ch := range []chan types.ServerMessage{host, other} {
		delta := recvType(t, ch, types.MsgWeaponUpdate, time.Second)
		if delta.Weapon == nil || delta.Weapon.ID != 9 {
			t.Fatalf("want weapon 9 delta, got %+v", delta.Weapon)
		}
		if len(delta.Weapon.BannedBy) != 1 || delta.Weapon.BannedBy[0] != "alpha" {
			t.Fatalf("want alpha ban recorded, got %+v", delta.Weapon.BannedBy)
		}
	}
}

func TestRoom_RejectionCausesNoBroadcast(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	host, other := seatTwoTeams(t, r, 64)
	drain(host)
	drain(other)

	// Ban during waiting is illegal.
	err := r.Do(context.Background(), "h", Command{Type: CmdBanWeapon, WeaponID: 1})
	if !errors.Is(err, engine.ErrInvalidPhase) {
		t.Fatalf("want ErrInvalidPhase, got %v", err)
	}
	recvNothing(t, other, 100*time.Millisecond)
}

func TestRoom_SelectTeamRules(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	for i := 0; i < 5; i++ {
		join(t, r, string(rune('a'+i)), "Player", 64)
	}
	for i := 0; i < MaxTeamPlayers; i++ {
		do(t, r, string(rune('a'+i)), Command{Type: CmdSelectTeam, Team: engine.TeamAlpha})
	}

	err := r.Do(context.Background(), "e", Command{Type: CmdSelectTeam, Team: engine.TeamAlpha})
	if !errors.Is(err, engine.ErrTeamFull) {
		t.Fatalf("want ErrTeamFull, got %v", err)
	}

	// Moving to the other team is still allowed.
	do(t, r, "e", Command{Type: CmdSelectTeam, Team: engine.TeamBravo})

	// No team swaps once the draft started.
	do(t, r, "e", Command{Type: CmdSelectTeam, Team: engine.TeamBravo})
	do(t, r, "a", Command{Type: CmdStartGame})
	err = r.Do(context.Background(), "e", Command{Type: CmdSelectTeam, Team: engine.TeamObserver})
	if !errors.Is(err, engine.ErrInvalidPhase) {
		t.Fatalf("mid-draft team change: want ErrInvalidPhase, got %v", err)
	}
}

func TestRoom_RenameRules(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	join(t, r, "h", "Hana", 64)
	join(t, r, "p2", "Ben", 64)

	if err := r.Do(context.Background(), "p2", Command{Type: CmdRenameRoom, Name: "Scrims"}); !errors.Is(err, engine.ErrNotHost) {
		t.Fatalf("want ErrNotHost, got %v", err)
	}
	if err := r.Do(context.Background(), "h", Command{Type: CmdRenameRoom, Name: "way too long name"}); !errors.Is(err, engine.ErrInvalidName) {
		t.Fatalf("want ErrInvalidName, got %v", err)
	}
	do(t, r, "h", Command{Type: CmdRenameRoom, Name: "Scrims"})

	v, err := r.ViewNow(context.Background())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.Name != "Scrims" {
		t.Fatalf("rename not applied: %q", v.Name)
	}
}

func TestRoom_HostTransfersToNextJoined(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	join(t, r, "h", "Hana", 64)
	join(t, r, "p2", "Ben", 64)
	join(t, r, "p3", "Cleo", 64)

	r.Inbox() <- Leave{ClientID: "h"}

	v, err := r.ViewNow(context.Background())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.HostID != "p2" {
		t.Fatalf("want host p2 after transfer, got %q", v.HostID)
	}
}

func TestRoom_ResetPreservesRoster(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	host, _ := seatTwoTeams(t, r, 64)

	if err := r.Do(context.Background(), "h", Command{Type: CmdResetGame}); !errors.Is(err, engine.ErrInvalidPhase) {
		t.Fatalf("reset in waiting: want ErrInvalidPhase, got %v", err)
	}

	do(t, r, "h", Command{Type: CmdStartGame})
	do(t, r, "h", Command{Type: CmdBanWeapon, WeaponID: 3})
	drain(host)

	do(t, r, "h", Command{Type: CmdResetGame})

	msg := recvType(t, host, types.MsgPhaseChange, time.Second)
	if msg.State.Phase != string(engine.PhaseWaiting) {
		t.Fatalf("want waiting after reset, got %s", msg.State.Phase)
	}
	if msg.State.Bans["alpha"] != 0 || msg.State.SecondsLeft != 0 {
		t.Fatalf("reset left draft state: %+v", msg.State)
	}
	if len(msg.State.Users) != 2 {
		t.Fatalf("reset must keep the roster, got %d users", len(msg.State.Users))
	}
}

func TestRoom_TimerDrivesDraftToCompletion(t *testing.T) {
	results := captureSink{ch: make(chan types.GameRecord, 1)}
	r := newTestRoom(t, time.Millisecond, results)
	host, _ := seatTwoTeams(t, r, 1024)

	do(t, r, "h", Command{Type: CmdStartGame})

	// Nobody acts: the ban phase times out, then every pick turn forfeits
	// to a random weapon until the draft completes.
	var rec types.GameRecord
	select {
	case rec = <-results.ch:
	case <-time.After(10 * time.Second):
		t.Fatalf("draft did not complete on timers alone")
	}

	if len(rec.Picks["alpha"]) != engine.MaxPicksPerTeam || len(rec.Picks["bravo"]) != engine.MaxPicksPerTeam {
		t.Fatalf("forfeits must fill every pick: %+v", rec.Picks)
	}
	if len(rec.Bans["alpha"]) != 0 || len(rec.Bans["bravo"]) != 0 {
		t.Fatalf("no bans were made: %+v", rec.Bans)
	}

	done := recvType(t, host, types.MsgDraftComplete, 2*time.Second)
	if done.Result == nil {
		t.Fatalf("draftComplete must carry the record")
	}

	v, err := r.ViewNow(context.Background())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.Phase != engine.PhasePickComplete {
		t.Fatalf("want pick_complete, got %v", v.Phase)
	}
}

func TestRoom_ManualPickWinsOverTimer(t *testing.T) {
	r := newTestRoom(t, time.Hour, nil) // timer armed but never ticks
	host, other := seatTwoTeams(t, r, 256)
	do(t, r, "h", Command{Type: CmdStartGame})

	// Exhaust both ban quotas to enter pick early.
	for _, id := range []int{1, 2, 3} {
		do(t, r, "h", Command{Type: CmdBanWeapon, WeaponID: id})
	}
	for _, id := range []int{4, 5, 6} {
		do(t, r, "p2", Command{Type: CmdBanWeapon, WeaponID: id})
	}
	drain(host)
	drain(other)

	// Alpha's turn; bravo is rejected without any broadcast.
	err := r.Do(context.Background(), "p2", Command{Type: CmdPickWeapon, WeaponID: 10})
	if !errors.Is(err, engine.ErrNotYourTurn) {
		t.Fatalf("want ErrNotYourTurn, got %v", err)
	}
	recvNothing(t, other, 100*time.Millisecond)

	do(t, r, "h", Command{Type: CmdPickWeapon, WeaponID: 10})
	msg := recvType(t, other, types.MsgPhaseChange, time.Second)
	if msg.State.CurrentTurn != string(engine.TeamBravo) || msg.State.PickTurn != 1 {
		t.Fatalf("turn did not flip: %+v", msg.State)
	}
	if msg.State.SecondsLeft != engine.PickTurnSeconds {
		t.Fatalf("fresh turn must reset the countdown, got %d", msg.State.SecondsLeft)
	}
}

func TestRoom_SlowClientIsDropped(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)

	out := make(chan types.ServerMessage, 1)
	if err := r.JoinRoom(context.Background(), "slow", "Slug", out); err != nil {
		t.Fatalf("join: %v", err)
	}
	// Never drained: the join broadcast already fills the buffer, so the
	// next mutation drops the client.
	join(t, r, "fast", "Fin", 64)

	v, err := r.ViewNow(context.Background())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.UserCount != 1 {
		t.Fatalf("slow client should be dropped, got %d users", v.UserCount)
	}
}

func TestRoom_ShutdownClosesOutboxes(t *testing.T) {
	r := newTestRoom(t, time.Second, nil)
	out := join(t, r, "c1", "Mika", 64)
	drain(out)

	r.Inbox() <- Shutdown{}

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("outbox not closed on shutdown")
		}
	}
}

func drain(ch chan types.ServerMessage) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
