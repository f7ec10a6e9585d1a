package game

import errorsmod "cosmossdk.io/errors"

// Codespace groups the engine's registered errors.
const Codespace = "gwent"

// Engine command failures. All are recoverable and leave the state untouched.
var (
	ErrNotYourTurn      = errorsmod.Register(Codespace, 2, "not your turn")
	ErrCardNotInHand    = errorsmod.Register(Codespace, 3, "card not in hand")
	ErrInvalidRow       = errorsmod.Register(Codespace, 4, "invalid row")
	ErrUnplayable       = errorsmod.Register(Codespace, 5, "unplayable card")
	ErrGameAlreadyEnded = errorsmod.Register(Codespace, 6, "game already ended")
	ErrGameNotStarted   = errorsmod.Register(Codespace, 7, "game not started")
)
