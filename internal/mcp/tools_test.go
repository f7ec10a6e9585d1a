package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/game"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTools(t *testing.T) *Tools {
	tools := &Tools{
		Catalog:      catalog.Builtin(),
		Decks:        catalog.StarterDecks(),
		Seed:         42,
		AIPlayChance: game.DefaultAIPlayPct,
	}
	t.Cleanup(tools.Close)
	return tools
}

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func call(t *testing.T, h handler, args map[string]any) *ToolResponse {
	t.Helper()
	res, err := h(context.Background(), request(args))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	return &resp
}

func callErr(t *testing.T, h handler, args map[string]any) string {
	t.Helper()
	res, err := h(context.Background(), request(args))
	require.NoError(t, err)
	require.True(t, res.IsError)
	return resultText(t, res)
}

func TestStartGame(t *testing.T) {
	tools := newTools(t)
	resp := call(t, tools.handleStartGame, map[string]any{"deck": float64(1)})

	_, err := uuid.Parse(resp.SessionID)
	require.NoError(t, err)
	assert.False(t, resp.GameOver)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, DecisionChooseMove, resp.Pending.Type)
	require.NotEmpty(t, resp.Pending.Moves)
	assert.True(t, resp.Pending.Moves[len(resp.Pending.Moves)-1].Pass)

	require.NotNil(t, resp.State)
	assert.Equal(t, 1, resp.State.Round)
	assert.True(t, resp.State.IsYourTurn)
	assert.Len(t, resp.State.You.Hand, 10)
	assert.Nil(t, resp.State.Opponent.Hand)

	var types []string
	for _, ev := range resp.Events {
		types = append(types, ev.Type)
		if ev.Type == "Draw" && ev.Player == "AI" {
			assert.Empty(t, ev.Card)
		}
	}
	assert.Contains(t, types, "NewMatch")
	assert.Contains(t, types, "RoundStart")
}

func TestStartGameTwice(t *testing.T) {
	tools := newTools(t)
	call(t, tools.handleStartGame, nil)
	assert.Contains(t, callErr(t, tools.handleStartGame, nil), "already running")
}

func TestStartGameBadDeck(t *testing.T) {
	tools := newTools(t)
	callErr(t, tools.handleStartGame, map[string]any{"deck": float64(7)})
	callErr(t, tools.handleStartGame, map[string]any{"ai_deck": float64(-1)})
}

func TestStartGameRandomDecks(t *testing.T) {
	tools := newTools(t)
	callErr(t, tools.handleStartGame, map[string]any{"random_deck": float64(-1)})
	callErr(t, tools.handleStartGame, map[string]any{"random_deck": float64(maxRandomDeck + 1)})

	// Deck numbers are not consulted for random decks.
	resp := call(t, tools.handleStartGame, map[string]any{"random_deck": float64(12), "ai_deck": float64(2)})
	require.NotNil(t, resp.State)
	assert.NotEmpty(t, resp.State.You.Hand)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, DecisionChooseMove, resp.Pending.Type)
}

func TestNoGame(t *testing.T) {
	tools := newTools(t)
	callErr(t, tools.handleGetGameState, nil)
	callErr(t, tools.handlePass, nil)
	callErr(t, tools.handlePlayMove, map[string]any{"index": float64(0)})
}

func TestPlayMove(t *testing.T) {
	tools := newTools(t)
	start := call(t, tools.handleStartGame, nil)
	handBefore := len(start.State.You.Hand)

	resp := call(t, tools.handlePlayMove, map[string]any{"index": float64(0)})
	assert.Nil(t, resp.Rejected)

	var played bool
	for _, ev := range resp.Events {
		if ev.Player == "Human" && (ev.Type == "PlayUnit" || ev.Type == "PlaySpecial" || ev.Type == "PlayWeather") {
			played = true
		}
	}
	assert.True(t, played, "expected a human play event in %v", resp.Events)
	if !resp.GameOver {
		require.NotNil(t, resp.State)
		assert.Less(t, len(resp.State.You.Hand), handBefore)
	}
}

func TestPlayMoveInvalidIndex(t *testing.T) {
	tools := newTools(t)
	call(t, tools.handleStartGame, nil)
	assert.Contains(t, callErr(t, tools.handlePlayMove, map[string]any{"index": float64(500)}), "Invalid index")
	callErr(t, tools.handlePlayMove, nil)
}

func TestPassUntilGameOver(t *testing.T) {
	tools := newTools(t)
	resp := call(t, tools.handleStartGame, nil)

	for i := 0; !resp.GameOver; i++ {
		require.Less(t, i, 50, "match did not end")
		resp = call(t, tools.handlePass, nil)
	}

	// A side that never plays a card cannot win a round.
	assert.True(t, resp.Draw || resp.Winner == "AI", "result %q", resp.Result)
	assert.NotEmpty(t, resp.Result)
	assert.Nil(t, resp.Pending)

	state := call(t, tools.handleGetGameState, nil)
	assert.True(t, state.GameOver)
	assert.Empty(t, state.Events)

	callErr(t, tools.handlePass, nil)

	// A finished game may be replaced.
	next := call(t, tools.handleStartGame, nil)
	assert.NotEqual(t, resp.SessionID, next.SessionID)
}

func TestGetGameStateKeepsPending(t *testing.T) {
	tools := newTools(t)
	start := call(t, tools.handleStartGame, nil)

	state := call(t, tools.handleGetGameState, nil)
	require.NotNil(t, state.Pending)
	assert.Equal(t, start.Pending.Moves, state.Pending.Moves)
	assert.Empty(t, state.Events, "events were drained by start_game")
}

func TestListDecks(t *testing.T) {
	tools := newTools(t)
	res, err := tools.handleListDecks(context.Background(), request(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var decks []DeckSummary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decks))
	require.Len(t, decks, 2)
	assert.Equal(t, "Northern Realms", decks[0].Name)
	assert.Equal(t, 2, decks[1].Number)
	assert.Positive(t, decks[0].Stats.TotalPower)
}
