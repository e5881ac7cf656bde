package engine

import "errors"

// Every rejection is detected before mutation and mapped to one reason code
// on the wire. Timer-driven forfeiture is not an error.
var (
	ErrInvalidPhase       = errors.New("action not allowed in current phase")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrAlreadyActed       = errors.New("already acted this turn")
	ErrQuotaExceeded      = errors.New("ban or pick quota reached")
	ErrDuplicateAction    = errors.New("target already banned or picked")
	ErrNotHost            = errors.New("host only action")
	ErrRoomFull           = errors.New("room is full")
	ErrTeamFull           = errors.New("team is full")
	ErrNotEnoughPlayers   = errors.New("not enough players on each team")
	ErrInvalidName        = errors.New("name is empty or too long")
	ErrRoomNotFound       = errors.New("room not found")
	ErrNotInRoom          = errors.New("user is not in the room")
	ErrWeaponNotFound     = errors.New("weapon not found")
	ErrStageNotFound      = errors.New("stage not found")
	ErrRuleNotFound       = errors.New("rule not found")
	ErrUnsupportedCommand = errors.New("unsupported command")
)

// ReasonCode maps a rejection to its wire code for actionRejected payloads.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPhase):
		return "InvalidPhase"
	case errors.Is(err, ErrNotYourTurn):
		return "NotYourTurn"
	case errors.Is(err, ErrAlreadyActed):
		return "AlreadyActedThisTurn"
	case errors.Is(err, ErrQuotaExceeded):
		return "QuotaExceeded"
	case errors.Is(err, ErrDuplicateAction):
		return "DuplicateAction"
	case errors.Is(err, ErrNotHost):
		return "NotHost"
	case errors.Is(err, ErrRoomFull):
		return "RoomFull"
	case errors.Is(err, ErrTeamFull):
		return "TeamFull"
	case errors.Is(err, ErrNotEnoughPlayers):
		return "NotEnoughPlayers"
	case errors.Is(err, ErrInvalidName):
		return "InvalidName"
	case errors.Is(err, ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, ErrNotInRoom):
		return "NotInRoom"
	case errors.Is(err, ErrWeaponNotFound):
		return "WeaponNotFound"
	case errors.Is(err, ErrStageNotFound):
		return "StageNotFound"
	case errors.Is(err, ErrRuleNotFound):
		return "RuleNotFound"
	default:
		return "UnsupportedCommand"
	}
}
