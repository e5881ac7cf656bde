package types

// ClientMessage is the single inbound envelope for every socket command.
// Type is one of: leaveRoom, selectTeam, renameRoom, startGame, resetGame,
// banWeapon, pickWeapon, selectStage, selectRule.
type ClientMessage struct {
	Type     string `json:"type"`
	Team     string `json:"team,omitempty"`
	Name     string `json:"name,omitempty"`
	WeaponID int    `json:"weapon_id,omitempty"`
	StageID  int    `json:"stage_id,omitempty"`
	RuleID   int    `json:"rule_id,omitempty"`
}

// ServerMessage is the outbound envelope. Exactly one payload field is set
// depending on Type:
//
//	initialState   -> State (with the full weapon table)
//	phaseChange    -> State (weapon table omitted)
//	timeUpdate     -> SecondsLeft
//	weaponUpdate   -> Weapon
//	draftComplete  -> Result
//	roomListUpdate -> Rooms
//	actionRejected -> Reason (sent to the actor only)
type ServerMessage struct {
	Type        string        `json:"type"`
	Version     int           `json:"version,omitempty"`
	State       *RoomState    `json:"state,omitempty"`
	SecondsLeft int           `json:"seconds_left,omitempty"`
	Weapon      *WeaponInfo   `json:"weapon,omitempty"`
	Result      *GameRecord   `json:"result,omitempty"`
	Rooms       []RoomSummary `json:"rooms,omitempty"`
	Reason      string        `json:"reason,omitempty"`
}

const (
	MsgInitialState   = "initialState"
	MsgPhaseChange    = "phaseChange"
	MsgTimeUpdate     = "timeUpdate"
	MsgWeaponUpdate   = "weaponUpdate"
	MsgDraftComplete  = "draftComplete"
	MsgRoomListUpdate = "roomListUpdate"
	MsgActionRejected = "actionRejected"
)
