// Package match drives one engine to completion by asking a controller per
// side for moves.
package match

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

// DefaultMaxRetries is how many times a side is re-prompted after an
// illegal move before it is made to pass.
const DefaultMaxRetries = 3

// Controller supplies the moves of one side.
type Controller interface {
	// ChooseMove picks one of moves. snap is the full match state; the
	// controller is responsible for hiding whatever its player may not see.
	ChooseMove(ctx context.Context, snap game.Snapshot, moves []game.Move) (game.Move, error)

	// Notify delivers an event. Errors are ignored by the match.
	Notify(ctx context.Context, event log.GameEvent) error
}

// MoveRejecter is implemented by controllers that want the engine error
// behind a refused move.
type MoveRejecter interface {
	RejectMove(ctx context.Context, move game.Move, err error) error
}

// Config holds configuration for creating a match.
type Config struct {
	Human      []game.Card // human card pool
	AI         []game.Card // AI card pool
	Seed       int64       // RNG seed (0 for time-based)
	Rand       game.Rand   // overrides Seed when set
	Logger     log.EventLogger
	MaxRetries int // re-prompts after an illegal move (0 = DefaultMaxRetries)
}

// Match runs a single game between two controllers.
type Match struct {
	ID          string
	Engine      *game.Engine
	Controllers [2]Controller
	Logger      log.EventLogger

	human, ai  []game.Card
	maxRetries int
	ctx        context.Context
}

// New creates a match. Nothing is dealt until Run.
func New(cfg Config, human, ai Controller) *Match {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = DefaultMaxRetries
	}
	m := &Match{
		ID:          uuid.NewString(),
		Controllers: [2]Controller{human, ai},
		Logger:      logger,
		human:       cfg.Human,
		ai:          cfg.AI,
		maxRetries:  retries,
		ctx:         context.Background(),
	}
	m.Engine = game.NewEngine(game.EngineConfig{
		Rand:   cfg.Rand,
		Seed:   cfg.Seed,
		Logger: &fanout{m: m},
	})
	return m
}

// Run deals the match and loops until it is over or ctx is cancelled.
func (m *Match) Run(ctx context.Context) (game.Outcome, error) {
	m.ctx = ctx
	m.Engine.StartGame(m.human, m.ai)

	for !m.Engine.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return game.Outcome{}, err
		}
		if err := m.runTurn(); err != nil {
			return game.Outcome{}, err
		}
	}
	return m.Engine.Outcome(), nil
}

// runTurn obtains and applies exactly one command for the side to move.
func (m *Match) runTurn() error {
	side := m.Engine.Turn()
	if len(m.Engine.Hand(side)) == 0 {
		return m.Engine.Pass(side)
	}

	ctrl := m.Controllers[side]
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		moves := m.Engine.LegalMoves(side)
		move, err := ctrl.ChooseMove(m.ctx, m.Engine.Snapshot(), moves)
		if err != nil {
			return fmt.Errorf("%s controller: %w", side, err)
		}
		err = m.Engine.Apply(side, move)
		if err == nil {
			return nil
		}
		if r, ok := ctrl.(MoveRejecter); ok {
			_ = r.RejectMove(m.ctx, move, err)
		}
	}
	return m.Engine.Pass(side)
}

// fanout records events in the match logger and forwards them to both
// controllers.
type fanout struct {
	m *Match
}

func (f *fanout) Log(event log.GameEvent) {
	f.m.Logger.Log(event)
	if events := f.m.Logger.Events(); len(events) > 0 {
		event = events[len(events)-1]
	}
	for _, c := range f.m.Controllers {
		if c != nil {
			_ = c.Notify(f.m.ctx, event)
		}
	}
}

func (f *fanout) Events() []log.GameEvent {
	return f.m.Logger.Events()
}
