package room

import (
	"time"

	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

// timerTag identifies the phase/turn instance a countdown belongs to. A tick
// whose tag no longer matches the live tag is stale (the phase or turn
// advanced, or a newer timer was armed) and is discarded.
type timerTag struct {
	phase    engine.Phase
	pickTurn int
	gen      int
}

// rearmForTransition keeps the invariant of at most one live timer per room:
// entering ban arms the ban countdown, each new pick turn arms a fresh turn
// countdown, and terminal phases clear it.
func (r *Room) rearmForTransition(old, next engine.State) {
	switch {
	case next.Phase == engine.PhaseBan && old.Phase != engine.PhaseBan:
		r.armTimer(engine.BanPhaseSeconds)
	case next.Phase == engine.PhasePick && (old.Phase != engine.PhasePick || old.PickTurn != next.PickTurn):
		r.armTimer(engine.PickTurnSeconds)
	case next.Phase == engine.PhaseWaiting || next.Phase == engine.PhasePickComplete:
		r.stopTimer()
		r.secondsLeft = 0
	}
}

func (r *Room) armTimer(seconds int) {
	r.stopTimer()
	r.timerGen++
	r.secondsLeft = seconds
	r.timerTag = timerTag{phase: r.state.Phase, pickTurn: r.state.PickTurn, gen: r.timerGen}
	r.scheduleTick(r.timerTag)
}

func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.timerTag = timerTag{}
}

func (r *Room) scheduleTick(tag timerTag) {
	r.timer = time.AfterFunc(r.tick, func() {
		select {
		case r.inbox <- tickMsg{tag: tag}:
		case <-r.ctx.Done():
		}
	})
}

// handleTick runs on the loop goroutine, so a tick and a manual action can
// never interleave: exactly one of them ends a given turn.
func (r *Room) handleTick(tag timerTag) {
	if tag != r.timerTag {
		return // stale fire from a cancelled countdown
	}
	if r.secondsLeft > 0 {
		r.secondsLeft--
	}
	r.broadcast(types.ServerMessage{Type: types.MsgTimeUpdate, SecondsLeft: r.secondsLeft})

	if r.secondsLeft > 0 {
		r.scheduleTick(tag)
		return
	}

	switch r.state.Phase {
	case engine.PhaseBan:
		_ = r.applyEngine(engine.Command{Type: engine.CmdBanPhaseTimeout})
	case engine.PhasePick:
		_ = r.applyEngine(engine.Command{Type: engine.CmdTurnTimeout})
	default:
		r.stopTimer()
	}
}
