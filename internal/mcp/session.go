package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
	"github.com/peterkuimelis/gwentx/internal/match"
	gnet "github.com/peterkuimelis/gwentx/internal/net"
)

// DecisionType identifies what the match is waiting for.
type DecisionType string

const (
	DecisionChooseMove DecisionType = "choose_move"
	DecisionGameOver   DecisionType = "game_over"
)

// PendingDecision is a decision the match is waiting for.
type PendingDecision struct {
	Type  DecisionType
	State *gnet.StateView
	Moves []gnet.MoveView
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string           `json:"session_id"`
	Events    []gnet.EventView `json:"events"`
	State     *gnet.StateView  `json:"state,omitempty"`
	Pending   *PendingView     `json:"pending,omitempty"`
	Rejected  *gnet.ErrorView  `json:"rejected,omitempty"`
	GameOver  bool             `json:"game_over"`
	Winner    string           `json:"winner,omitempty"`
	Draw      bool             `json:"draw,omitempty"`
	Result    string           `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type  DecisionType    `json:"type"`
	Moves []gnet.MoveView `json:"moves,omitempty"`
}

// SessionConfig describes the match a session plays.
type SessionConfig struct {
	Catalog      *catalog.Catalog
	Decks        catalog.DeckFile
	HumanDeck    int // 1-indexed
	AIDeck       int // 1-indexed; 0 picks the deck after the human's
	RandomDecks  int // when > 0, both sides play random catalog decks of this size
	Seed         int64
	AIPlayChance float64
	Logger       *zap.Logger
}

// GameSession is one match in which the MCP client plays the human side
// against the AI. The match runs in its own goroutine and stops at every
// human decision.
type GameSession struct {
	ID string

	match  *match.Match
	ctrl   *MCPController
	cancel context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu        sync.Mutex
	events    []gnet.EventView
	rejection *gnet.ErrorView
	gameOver  bool
	outcome   game.Outcome
	err       error
	result    string
}

// NewGameSession builds the match and starts it.
func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	rng := game.NewRand(cfg.Seed)
	decks, err := cfg.Decks.ForMatch(cfg.Catalog, rng, cfg.HumanDeck, cfg.AIDeck, cfg.RandomDecks)
	if err != nil {
		return nil, err
	}

	sess := &GameSession{pendingCh: make(chan *PendingDecision, 1)}
	sess.ctrl = NewMCPController(sess)

	sess.match = match.New(match.Config{
		Human:  decks.Human,
		AI:     decks.AI,
		Rand:   rng,
		Logger: log.NewZapLogger(cfg.Logger),
	}, sess.ctrl, match.NewAIController(game.AI, game.NewRandomChooser(rng, cfg.AIPlayChance)))
	sess.ID = sess.match.ID

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go sess.run(ctx)

	return sess, nil
}

func (s *GameSession) run(ctx context.Context) {
	out, err := s.match.Run(ctx)

	s.mu.Lock()
	s.gameOver = true
	s.outcome = out
	s.err = err
	if err != nil {
		s.result = fmt.Sprintf("error: %v", err)
	} else {
		s.result = out.String()
	}
	s.mu.Unlock()

	final := &PendingDecision{
		Type:  DecisionGameOver,
		State: gnet.BuildStateView(s.match.Engine.Snapshot(), game.Human),
	}
	select {
	case s.pendingCh <- final:
	default:
	}
}

// Close stops the match if it is still running.
func (s *GameSession) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev gnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *GameSession) setRejection(ev *gnet.ErrorView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejection = ev
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []gnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []gnet.EventView{}
	}
	return events
}

// waitForPending blocks until the match needs the next human decision or
// ends, then builds a ToolResponse with the accumulated events.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	select {
	case pending := <-s.pendingCh:
		s.currentPending = pending
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.response(), nil
}

// response describes the session as it stands.
func (s *GameSession) response() *ToolResponse {
	resp := &ToolResponse{SessionID: s.ID, Events: s.drainEvents()}

	s.mu.Lock()
	resp.Rejected, s.rejection = s.rejection, nil
	over, out, failed, result := s.gameOver, s.outcome, s.err != nil, s.result
	s.mu.Unlock()

	pending := s.currentPending
	if pending != nil {
		resp.State = pending.State
	}
	if over && (pending == nil || pending.Type == DecisionGameOver) {
		resp.GameOver = true
		if !failed {
			resp.Draw = out.Draw
			if !out.Draw {
				resp.Winner = out.Winner.String()
			}
		}
		resp.Result = result
		return resp
	}
	if pending != nil {
		resp.Pending = &PendingView{Type: pending.Type, Moves: pending.Moves}
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

func (s *GameSession) over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}
