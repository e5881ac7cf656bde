package engine

import (
	"math/rand"
	"slices"
)

const (
	MaxBansPerTeam  = 3
	MaxPicksPerTeam = 4
	TotalPickTurns  = 2 * MaxPicksPerTeam

	BanPhaseSeconds = 60
	PickTurnSeconds = 30

	// RandomWeaponID is the omakase sentinel: the server resolves it to a
	// uniformly random legal weapon at apply time.
	RandomWeaponID = -1
)

// NewState builds the waiting-phase state for a fresh or reset room from the
// immutable catalog's weapon IDs. Stage and rule start as omakase.
func NewState(weaponIDs []int) State {
	weapons := make(map[int]WeaponState, len(weaponIDs))
	for _, id := range weaponIDs {
		weapons[id] = WeaponState{BannedBy: map[Team]bool{}}
	}
	return State{
		Phase:   PhaseWaiting,
		Bans:    map[Team]int{TeamAlpha: 0, TeamBravo: 0},
		Picks:   map[Team]int{TeamAlpha: 0, TeamBravo: 0},
		Weapons: weapons,
		StageID: RandomWeaponID,
		RuleID:  RandomWeaponID,
	}
}

func Opponent(t Team) Team {
	if t == TeamAlpha {
		return TeamBravo
	}
	return TeamAlpha
}

func isPlayingTeam(t Team) bool {
	return t == TeamAlpha || t == TeamBravo
}

// CanBan reports whether team may still ban weapon id: under quota, weapon
// unselected, and not already banned by the same team.
func CanBan(s State, team Team, id int) bool {
	if s.Bans[team] >= MaxBansPerTeam {
		return false
	}
	ws, ok := s.Weapons[id]
	if !ok {
		return false
	}
	return ws.SelectedBy == TeamNone && !ws.BannedBy[team]
}

// CanPick reports whether weapon id is a legal pick for team: unpicked by
// anyone and not banned by the picking team. A ban by the opposing team does
// not block a pick.
func CanPick(s State, team Team, id int) bool {
	ws, ok := s.Weapons[id]
	if !ok {
		return false
	}
	return ws.SelectedBy == TeamNone && !ws.BannedBy[team]
}

// RandomLegalWeapon resolves the omakase sentinel for team. Candidates are
// enumerated in sorted ID order so a seeded rng yields a deterministic choice.
func RandomLegalWeapon(s State, team Team, rng *rand.Rand) (int, bool) {
	var candidates []int
	ids := make([]int, 0, len(s.Weapons))
	for id := range s.Weapons {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if CanPick(s, team, id) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
