package net

import errorsmod "cosmossdk.io/errors"

// Codespace groups protocol errors sent to clients.
const Codespace = "net"

var (
	ErrBadChoice         = errorsmod.Register(Codespace, 2, "invalid move index")
	ErrUnexpectedMessage = errorsmod.Register(Codespace, 3, "unexpected message")
)
