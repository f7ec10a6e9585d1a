package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/catalog"
)

// Tools serves one game session at a time to an MCP client.
type Tools struct {
	Catalog      *catalog.Catalog
	Decks        catalog.DeckFile
	Seed         int64   // default seed for start_game (0 for time-based)
	AIPlayChance float64 // probability the AI plays a card; 0 never plays
	Logger       *zap.Logger

	mu     sync.Mutex
	active *GameSession
}

// RegisterTools adds all game tools to the MCP server.
func (t *Tools) RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), t.handleStartGame)
	s.AddTool(playMoveTool(), t.handlePlayMove)
	s.AddTool(passTool(), t.handlePass)
	s.AddTool(getGameStateTool(), t.handleGetGameState)
	s.AddTool(listDecksTool(), t.handleListDecks)
}

// Close stops the active session, if any.
func (t *Tools) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		t.active.Close()
		t.active = nil
	}
}

// maxRandomDeck bounds the random_deck argument of start_game.
const maxRandomDeck = 100

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Gwent match. You play the human side against the AI. "+
			"Returns the opening events, your view of the board and the list of legal moves."),
		mcp.WithNumber("deck", mcp.Description("Your deck number (1-indexed, see list_decks). Defaults to 1.")),
		mcp.WithNumber("ai_deck", mcp.Description("AI deck number (1-indexed). Defaults to the deck after yours.")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for a reproducible match. 0 or omitted for random.")),
		mcp.WithNumber("random_deck", mcp.Description("When set, both sides play random decks of this many cards drawn from the whole catalog instead of numbered decks.")),
	)
}

func playMoveTool() mcp.Tool {
	return mcp.NewTool("play_move",
		mcp.WithDescription("Play one of the pending moves. The AI answers before this returns."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into pending.moves")),
	)
}

func passTool() mcp.Tool {
	return mcp.NewTool("pass",
		mcp.WithDescription("Pass for the rest of the round. The round ends once both sides have passed."),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a move. Read-only."),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the available decks with their card counts and total power."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		if !t.active.over() {
			return mcp.NewToolResultErrorf("A game is already running (session %s). Only one game at a time is supported.", t.active.ID), nil
		}
		t.active.Close()
		t.active = nil
	}

	deck := request.GetInt("deck", 1)
	aiDeck := request.GetInt("ai_deck", 0)
	if deck < 1 || deck > len(t.Decks.Decks) {
		return mcp.NewToolResultErrorf("deck must be between 1 and %d", len(t.Decks.Decks)), nil
	}
	if aiDeck < 0 || aiDeck > len(t.Decks.Decks) {
		return mcp.NewToolResultErrorf("ai_deck must be between 1 and %d", len(t.Decks.Decks)), nil
	}
	randomDeck := request.GetInt("random_deck", 0)
	if randomDeck < 0 || randomDeck > maxRandomDeck {
		return mcp.NewToolResultErrorf("random_deck must be between 0 and %d", maxRandomDeck), nil
	}
	seed := int64(request.GetInt("seed", 0))
	if seed == 0 {
		seed = t.Seed
	}

	sess, err := NewGameSession(SessionConfig{
		Catalog:      t.Catalog,
		Decks:        t.Decks,
		HumanDeck:    deck,
		AIDeck:       aiDeck,
		RandomDecks:  randomDeck,
		Seed:         seed,
		AIPlayChance: t.AIPlayChance,
		Logger:       t.Logger,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	t.active = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handlePlayMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending, errResult := t.pendingMove()
	if errResult != nil {
		return errResult, nil
	}
	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Moves) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Moves)-1), nil
	}
	return t.submit(ctx, index)
}

func (t *Tools) handlePass(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending, errResult := t.pendingMove()
	if errResult != nil {
		return errResult, nil
	}
	for _, m := range pending.Moves {
		if m.Pass {
			return t.submit(ctx, m.Index)
		}
	}
	return mcp.NewToolResultError("Passing is not possible right now."), nil
}

func (t *Tools) handleGetGameState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(t.active.response())), nil
}

// DeckSummary describes one entry of the deck file.
type DeckSummary struct {
	Number  int           `json:"number"`
	Name    string        `json:"name"`
	Faction string        `json:"faction,omitempty"`
	Stats   catalog.Stats `json:"stats"`
}

func (t *Tools) handleListDecks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []DeckSummary
	for i, d := range t.Decks.Decks {
		cards, err := d.Build(t.Catalog)
		if err != nil {
			return mcp.NewToolResultErrorf("deck %d: %v", i+1, err), nil
		}
		out = append(out, DeckSummary{Number: i + 1, Name: d.Name, Faction: d.Faction, Stats: catalog.ComputeStats(cards)})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultErrorf("marshal decks: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// pendingMove returns the decision a move may answer, or a tool error.
// Must be called with mu held.
func (t *Tools) pendingMove() (*PendingDecision, *mcp.CallToolResult) {
	if t.active == nil {
		return nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	pending := t.active.currentPending
	if pending == nil || pending.Type != DecisionChooseMove {
		return nil, mcp.NewToolResultError("No pending move. The game is over; use start_game to play again.")
	}
	return pending, nil
}

// submit hands index to the waiting controller and returns once the match
// needs the next decision. Must be called with mu held.
func (t *Tools) submit(ctx context.Context, index int) (*mcp.CallToolResult, error) {
	sess := t.active
	select {
	case sess.ctrl.responseCh <- index:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
