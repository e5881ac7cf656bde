package room

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ikadraft/ika-draft-backend/internal/catalog"
	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

// dispatch validates and applies one command. It runs on the loop goroutine;
// an error means nothing changed and nothing was broadcast.
func (r *Room) dispatch(clientID string, cmd Command) error {
	u, ok := r.users[clientID]
	if !ok {
		// Host-privileged requests from strangers read as NotHost so the
		// registry's reset contract holds for non-members too.
		switch cmd.Type {
		case CmdStartGame, CmdResetGame, CmdRenameRoom, CmdSelectStage, CmdSelectRule:
			return engine.ErrNotHost
		}
		return engine.ErrNotInRoom
	}

	switch cmd.Type {
	case CmdSelectTeam:
		return r.selectTeam(u, cmd.Team)

	case CmdRenameRoom:
		if clientID != r.hostID() {
			return engine.ErrNotHost
		}
		if !validName(cmd.Name) {
			return engine.ErrInvalidName
		}
		r.name = cmd.Name
		r.bumpAndBroadcast()
		r.notifyList()
		return nil

	case CmdStartGame:
		return r.startGame(clientID)

	case CmdResetGame:
		if clientID != r.hostID() {
			return engine.ErrNotHost
		}
		return r.applyEngine(engine.Command{Type: engine.CmdResetGame})

	case CmdSelectStage:
		if clientID != r.hostID() {
			return engine.ErrNotHost
		}
		if cmd.StageID != catalog.OmakaseID && !r.cat.HasStage(cmd.StageID) {
			return engine.ErrStageNotFound
		}
		return r.applyEngine(engine.Command{Type: engine.CmdSelectStage, StageID: cmd.StageID})

	case CmdSelectRule:
		if clientID != r.hostID() {
			return engine.ErrNotHost
		}
		if cmd.RuleID != catalog.OmakaseID && !r.cat.HasRule(cmd.RuleID) {
			return engine.ErrRuleNotFound
		}
		return r.applyEngine(engine.Command{Type: engine.CmdSelectRule, RuleID: cmd.RuleID})

	case CmdBanWeapon:
		return r.applyEngine(engine.Command{Type: engine.CmdBanWeapon, Team: u.team, WeaponID: cmd.WeaponID})

	case CmdPickWeapon:
		return r.applyEngine(engine.Command{Type: engine.CmdPickWeapon, Team: u.team, WeaponID: cmd.WeaponID})

	default:
		return engine.ErrUnsupportedCommand
	}
}

func (r *Room) selectTeam(u *user, team engine.Team) error {
	if r.state.Phase != engine.PhaseWaiting {
		return engine.ErrInvalidPhase
	}
	switch team {
	case engine.TeamAlpha, engine.TeamBravo:
		if u.team != team && r.teamCount(team) >= MaxTeamPlayers {
			return engine.ErrTeamFull
		}
	case engine.TeamObserver:
	default:
		return engine.ErrUnsupportedCommand
	}
	u.team = team
	r.bumpAndBroadcast()
	return nil
}

func (r *Room) startGame(clientID string) error {
	if clientID != r.hostID() {
		return engine.ErrNotHost
	}
	if r.state.Phase != engine.PhaseWaiting {
		return engine.ErrInvalidPhase
	}
	if r.teamCount(engine.TeamAlpha) < MinTeamPlayers || r.teamCount(engine.TeamBravo) < MinTeamPlayers {
		return engine.ErrNotEnoughPlayers
	}

	// Lock stage and rule now, resolving omakase from the catalog pools.
	stage, rule := r.state.StageID, r.state.RuleID
	if stage == catalog.OmakaseID {
		stage = r.cat.RandomStage(r.rng)
	}
	if rule == catalog.OmakaseID {
		rule = r.cat.RandomRule(r.rng)
	}
	return r.applyEngine(engine.Command{Type: engine.CmdStartGame, StageID: stage, RuleID: rule})
}

func (r *Room) teamCount(team engine.Team) int {
	n := 0
	for _, u := range r.users {
		if u.team == team {
			n++
		}
	}
	return n
}

// applyEngine funnels every draft mutation through engine.Apply and turns the
// emitted events into broadcasts, timer changes, and the one-shot result
// write.
func (r *Room) applyEngine(cmd engine.Command) error {
	old := r.state
	events, next, err := engine.Apply(old, cmd, r.rng)
	if err != nil {
		return err
	}
	r.state = next
	// Re-arm before broadcasting so the snapshot carries the fresh countdown.
	r.rearmForTransition(old, next)
	r.bumpAndBroadcast()

	for _, ev := range events {
		switch ev.Type {
		case engine.EvtWeaponUpdated:
			info := r.weaponInfo(ev.WeaponID)
			r.broadcast(types.ServerMessage{Type: types.MsgWeaponUpdate, Version: r.version, Weapon: &info})
		case engine.EvtDraftCompleted:
			r.completeDraft()
		}
	}

	if old.Phase != next.Phase {
		r.log.Info("phase change",
			zap.String("from", string(old.Phase)),
			zap.String("to", string(next.Phase)))
		r.notifyList()
	}
	return nil
}

func (r *Room) completeDraft() {
	rec := r.record()
	r.broadcast(types.ServerMessage{Type: types.MsgDraftComplete, Version: r.version, Result: &rec})
	if r.sink == nil {
		return
	}
	// Write off the loop; a failed write never wedges the room.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.sink.SaveResult(ctx, rec); err != nil {
			r.log.Error("saving game result", zap.Error(err))
		}
	}()
}

func (r *Room) record() types.GameRecord {
	bans := map[string][]int{string(engine.TeamAlpha): {}, string(engine.TeamBravo): {}}
	picks := map[string][]int{string(engine.TeamAlpha): {}, string(engine.TeamBravo): {}}
	for _, id := range r.cat.WeaponIDs() {
		ws := r.state.Weapons[id]
		if ws.SelectedBy == engine.TeamAlpha || ws.SelectedBy == engine.TeamBravo {
			picks[string(ws.SelectedBy)] = append(picks[string(ws.SelectedBy)], id)
		}
		for _, t := range []engine.Team{engine.TeamAlpha, engine.TeamBravo} {
			if ws.BannedBy[t] {
				bans[string(t)] = append(bans[string(t)], id)
			}
		}
	}
	return types.GameRecord{
		RoomID:      r.id,
		StageID:     r.state.StageID,
		RuleID:      r.state.RuleID,
		Bans:        bans,
		Picks:       picks,
		CompletedAt: time.Now().UTC(),
	}
}
