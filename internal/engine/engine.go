package engine

import (
	"math/rand"
)

type Team string

const (
	TeamAlpha    Team = "alpha"
	TeamBravo    Team = "bravo"
	TeamObserver Team = "observer"
	TeamNone     Team = ""
)

type Phase string

const (
	PhaseWaiting      Phase = "waiting"
	PhaseBan          Phase = "ban"
	PhasePick         Phase = "pick"
	PhasePickComplete Phase = "pick_complete"
)

// WeaponState tracks one weapon inside one room: the team holding it and the
// set of teams that have banned it.
type WeaponState struct {
	SelectedBy Team
	BannedBy   map[Team]bool
}

// State is the full draft state of one room. It is a value: Apply never
// mutates its input and returns a fresh copy on success.
type State struct {
	Phase       Phase
	CurrentTurn Team // non-empty only during pick
	PickTurn    int  // 0..TotalPickTurns
	Acted       bool // current turn owner already acted
	Bans        map[Team]int
	Picks       map[Team]int
	Weapons     map[int]WeaponState
	StageID     int
	RuleID      int
}

type CommandType string

const (
	CmdStartGame       CommandType = "StartGame"
	CmdBanWeapon       CommandType = "BanWeapon"
	CmdPickWeapon      CommandType = "PickWeapon"
	CmdSelectStage     CommandType = "SelectStage"
	CmdSelectRule      CommandType = "SelectRule"
	CmdResetGame       CommandType = "ResetGame"
	CmdBanPhaseTimeout CommandType = "BanPhaseTimeout"
	CmdTurnTimeout     CommandType = "TurnTimeout"
)

// Command is a validated-then-applied mutation request. StartGame carries the
// already-resolved stage and rule (the room resolves omakase choices before
// dispatching, so the engine stays deterministic given its rng).
type Command struct {
	Type     CommandType
	Team     Team
	WeaponID int
	StageID  int
	RuleID   int
}

type EventType string

const (
	EvtPhaseChanged   EventType = "PhaseChanged"
	EvtWeaponUpdated  EventType = "WeaponUpdated"
	EvtTurnAdvanced   EventType = "TurnAdvanced"
	EvtDraftCompleted EventType = "DraftCompleted"
)

type Event struct {
	Type     EventType
	Phase    Phase
	Team     Team
	WeaponID int
	PickTurn int
}

// Apply validates cmd against s and, when legal, returns the events to
// broadcast plus the successor state. Illegal commands return the unchanged
// input state and a reason error; nothing is mutated. rng is consulted only
// for random-weapon resolution (forfeits and the omakase pick sentinel).
func Apply(s State, cmd Command, rng *rand.Rand) ([]Event, State, error) {
	switch cmd.Type {
	case CmdSelectStage:
		if s.Phase != PhaseWaiting {
			return nil, s, ErrInvalidPhase
		}
		ns := s.clone()
		ns.StageID = cmd.StageID
		return nil, ns, nil

	case CmdSelectRule:
		if s.Phase != PhaseWaiting {
			return nil, s, ErrInvalidPhase
		}
		ns := s.clone()
		ns.RuleID = cmd.RuleID
		return nil, ns, nil

	case CmdStartGame:
		if s.Phase != PhaseWaiting {
			return nil, s, ErrInvalidPhase
		}
		ns := s.clone()
		ns.Phase = PhaseBan
		ns.StageID = cmd.StageID
		ns.RuleID = cmd.RuleID
		ns.Bans = map[Team]int{TeamAlpha: 0, TeamBravo: 0}
		ns.Picks = map[Team]int{TeamAlpha: 0, TeamBravo: 0}
		ns.PickTurn = 0
		ns.CurrentTurn = TeamNone
		ns.Acted = false
		for id := range ns.Weapons {
			ns.Weapons[id] = WeaponState{BannedBy: map[Team]bool{}}
		}
		return []Event{{Type: EvtPhaseChanged, Phase: PhaseBan}}, ns, nil

	case CmdBanWeapon:
		if s.Phase != PhaseBan {
			return nil, s, ErrInvalidPhase
		}
		if !isPlayingTeam(cmd.Team) {
			return nil, s, ErrNotYourTurn
		}
		if s.Bans[cmd.Team] >= MaxBansPerTeam {
			return nil, s, ErrQuotaExceeded
		}
		ws, ok := s.Weapons[cmd.WeaponID]
		if !ok {
			return nil, s, ErrWeaponNotFound
		}
		if ws.SelectedBy != TeamNone || ws.BannedBy[cmd.Team] {
			return nil, s, ErrDuplicateAction
		}
		ns := s.clone()
		ns.banWeapon(cmd.Team, cmd.WeaponID)
		events := []Event{{Type: EvtWeaponUpdated, WeaponID: cmd.WeaponID, Team: cmd.Team}}
		if ns.Bans[TeamAlpha] >= MaxBansPerTeam && ns.Bans[TeamBravo] >= MaxBansPerTeam {
			events = append(events, ns.enterPickPhase()...)
		}
		return events, ns, nil

	case CmdBanPhaseTimeout:
		if s.Phase != PhaseBan {
			return nil, s, ErrInvalidPhase
		}
		ns := s.clone()
		return ns.enterPickPhase(), ns, nil

	case CmdPickWeapon:
		if s.Phase != PhasePick {
			return nil, s, ErrInvalidPhase
		}
		if cmd.Team != s.CurrentTurn {
			return nil, s, ErrNotYourTurn
		}
		if s.Acted {
			return nil, s, ErrAlreadyActed
		}
		return applyPick(s, cmd.Team, cmd.WeaponID, rng)

	case CmdTurnTimeout:
		if s.Phase != PhasePick {
			return nil, s, ErrInvalidPhase
		}
		// Forfeited turn: bookkeeping identical to a manual random pick.
		return applyPick(s, s.CurrentTurn, RandomWeaponID, rng)

	case CmdResetGame:
		if s.Phase == PhaseWaiting {
			return nil, s, ErrInvalidPhase
		}
		ns := s.clone()
		ns.Phase = PhaseWaiting
		ns.CurrentTurn = TeamNone
		ns.PickTurn = 0
		ns.Acted = false
		ns.Bans = map[Team]int{TeamAlpha: 0, TeamBravo: 0}
		ns.Picks = map[Team]int{TeamAlpha: 0, TeamBravo: 0}
		for id := range ns.Weapons {
			ns.Weapons[id] = WeaponState{BannedBy: map[Team]bool{}}
		}
		return []Event{{Type: EvtPhaseChanged, Phase: PhaseWaiting}}, ns, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func applyPick(s State, team Team, weaponID int, rng *rand.Rand) ([]Event, State, error) {
	if s.Picks[team] >= MaxPicksPerTeam {
		return nil, s, ErrQuotaExceeded
	}

	picked := true
	if weaponID == RandomWeaponID {
		id, ok := RandomLegalWeapon(s, team, rng)
		if !ok {
			// Catalog exhausted: forfeit the turn with no weapon so the
			// draft still completes in bounded time.
			picked = false
		}
		weaponID = id
	} else {
		ws, ok := s.Weapons[weaponID]
		if !ok {
			return nil, s, ErrWeaponNotFound
		}
		if ws.SelectedBy != TeamNone || ws.BannedBy[team] {
			return nil, s, ErrDuplicateAction
		}
	}

	ns := s.clone()
	events := []Event{}
	if picked {
		ns.pickWeapon(team, weaponID)
		events = append(events, Event{Type: EvtWeaponUpdated, WeaponID: weaponID, Team: team})
	}
	ns.Acted = true // cleared again on every turn change
	ns.PickTurn++
	if ns.PickTurn >= TotalPickTurns {
		ns.Phase = PhasePickComplete
		ns.CurrentTurn = TeamNone
		ns.Acted = false
		events = append(events,
			Event{Type: EvtPhaseChanged, Phase: PhasePickComplete},
			Event{Type: EvtDraftCompleted})
		return events, ns, nil
	}
	ns.CurrentTurn = Opponent(team)
	ns.Acted = false
	events = append(events, Event{Type: EvtTurnAdvanced, Team: ns.CurrentTurn, PickTurn: ns.PickTurn})
	return events, ns, nil
}

func (s *State) banWeapon(team Team, id int) {
	ws := s.Weapons[id]
	ws.BannedBy[team] = true
	s.Weapons[id] = ws
	s.Bans[team]++
}

func (s *State) pickWeapon(team Team, id int) {
	ws := s.Weapons[id]
	ws.SelectedBy = team
	s.Weapons[id] = ws
	s.Picks[team]++
}

// enterPickPhase is the ban->pick transition shared by the quota and timeout
// paths. Alpha always takes the first turn.
func (s *State) enterPickPhase() []Event {
	s.Phase = PhasePick
	s.CurrentTurn = TeamAlpha
	s.PickTurn = 0
	s.Acted = false
	return []Event{
		{Type: EvtPhaseChanged, Phase: PhasePick},
		{Type: EvtTurnAdvanced, Team: TeamAlpha, PickTurn: 0},
	}
}

func (s State) clone() State {
	ns := s
	ns.Bans = map[Team]int{TeamAlpha: s.Bans[TeamAlpha], TeamBravo: s.Bans[TeamBravo]}
	ns.Picks = map[Team]int{TeamAlpha: s.Picks[TeamAlpha], TeamBravo: s.Picks[TeamBravo]}
	ns.Weapons = make(map[int]WeaponState, len(s.Weapons))
	for id, ws := range s.Weapons {
		banned := make(map[Team]bool, len(ws.BannedBy))
		for t := range ws.BannedBy {
			banned[t] = true
		}
		ns.Weapons[id] = WeaponState{SelectedBy: ws.SelectedBy, BannedBy: banned}
	}
	return ns
}
