package game

import (
	"errors"
	"fmt"

	"github.com/DedS3t/richman-engine/app/models"
)

// Every failed Outcome carries one of these. Callers match with errors.Is.
var (
	ErrNotYourTurn       = errors.New("not your turn")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrInvalidTile       = errors.New("invalid tile id")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrNoPlayers         = errors.New("no players in the game")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotOwned          = errors.New("property not owned by player")
	ErrAlreadyMortgaged  = errors.New("property already mortgaged")
	ErrNotMortgaged      = errors.New("property is not mortgaged")
	ErrWrongTileKind     = errors.New("tile is not a property")
	ErrGroupNotOwned     = errors.New("property group not fully owned")
	ErrMaxLevel          = errors.New("property already at max level")
	ErrAlreadyRolled     = errors.New("dice already rolled this turn")
	ErrTurnNotCompleted  = errors.New("turn not completed")
	ErrDebtUnresolved    = errors.New("debt must be resolved first")
	ErrCannotBuy         = errors.New("property cannot be bought now")
)

func fail(err error) models.Outcome {
	return models.Outcome{Success: false, Message: err.Error(), Err: err}
}

func failf(err error, format string, args ...interface{}) models.Outcome {
	return fail(fmt.Errorf("%w: "+format, append([]interface{}{err}, args...)...))
}

func ok(msg string, payload interface{}) models.Outcome {
	return models.Outcome{Success: true, Message: msg, Payload: payload}
}

// Failure builds a failed Outcome for a check made outside the engine.
func Failure(err error) models.Outcome { return fail(err) }
