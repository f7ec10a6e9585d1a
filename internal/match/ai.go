package match

import (
	"context"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

// AIController plays a side with a game.Chooser. It only looks at its own
// hand and the public parts of the snapshot.
type AIController struct {
	Side    game.Side
	Chooser game.Chooser
}

// NewAIController wraps chooser for side.
func NewAIController(side game.Side, chooser game.Chooser) *AIController {
	return &AIController{Side: side, Chooser: chooser}
}

func (a *AIController) ChooseMove(_ context.Context, snap game.Snapshot, _ []game.Move) (game.Move, error) {
	return a.Chooser.Choose(snap.ChooserView(a.Side)).Move(), nil
}

func (a *AIController) Notify(context.Context, log.GameEvent) error {
	return nil
}
