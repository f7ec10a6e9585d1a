package mcp

import (
	"context"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
	gnet "github.com/peterkuimelis/gwentx/internal/net"
)

// MCPController implements match.Controller for the human side by sending
// decisions to the session's pending channel and blocking on a response.
type MCPController struct {
	session    *GameSession
	responseCh chan int
}

// NewMCPController creates the human controller of session.
func NewMCPController(session *GameSession) *MCPController {
	return &MCPController{
		session:    session,
		responseCh: make(chan int),
	}
}

// ChooseMove implements match.Controller.
func (c *MCPController) ChooseMove(ctx context.Context, snap game.Snapshot, moves []game.Move) (game.Move, error) {
	views := make([]gnet.MoveView, len(moves))
	for i, m := range moves {
		views[i] = gnet.MoveView{Index: i, Desc: m.String(), Pass: m.Pass}
	}

	pending := &PendingDecision{
		Type:  DecisionChooseMove,
		State: gnet.BuildStateView(snap, game.Human),
		Moves: views,
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Move{}, ctx.Err()
	}

	select {
	case idx := <-c.responseCh:
		if idx < 0 || idx >= len(moves) {
			return moves[len(moves)-1], nil
		}
		return moves[idx], nil
	case <-ctx.Done():
		return game.Move{}, ctx.Err()
	}
}

// RejectMove implements match.MoveRejecter.
func (c *MCPController) RejectMove(_ context.Context, _ game.Move, err error) error {
	c.session.setRejection(gnet.NewErrorView(err))
	return nil
}

// Notify implements match.Controller.
func (c *MCPController) Notify(_ context.Context, event log.GameEvent) error {
	c.session.appendEvent(*gnet.NewEventView(event, game.Human))
	return nil
}
