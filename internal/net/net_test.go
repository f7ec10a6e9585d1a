package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"

	errorsmod "cosmossdk.io/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

func testServer() *Server {
	return &Server{
		Catalog:      catalog.Builtin(),
		Decks:        catalog.StarterDecks(),
		Seed:         42,
		AIPlayChance: game.DefaultAIPlayPct,
	}
}

// scriptedClient plays the remote side of a connection. answer is called
// for every choose_move and returns the index to send.
type scriptedClient struct {
	conn     net.Conn
	answer   func(msg ServerMessage) int
	messages []ServerMessage
}

func (sc *scriptedClient) run(join ClientMessage) <-chan error {
	done := make(chan error, 1)
	go func() {
		enc := json.NewEncoder(sc.conn)
		dec := json.NewDecoder(sc.conn)
		if err := enc.Encode(join); err != nil {
			done <- err
			return
		}
		for {
			var msg ServerMessage
			if err := dec.Decode(&msg); err != nil {
				done <- err
				return
			}
			sc.messages = append(sc.messages, msg)
			switch msg.Type {
			case MsgChooseMove:
				if err := enc.Encode(ClientMessage{Type: MsgMove, Index: sc.answer(msg)}); err != nil {
					done <- err
					return
				}
			case MsgGameOver:
				done <- nil
				return
			}
		}
	}()
	return done
}

func (sc *scriptedClient) ofType(typ string) []ServerMessage {
	var out []ServerMessage
	for _, m := range sc.messages {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

func lastMove(msg ServerMessage) int { return len(msg.Moves) - 1 }

func TestBuildStateViewHidesOpponentHand(t *testing.T) {
	_, human, err := catalog.StarterDecks().Deck(1, catalog.Builtin())
	require.NoError(t, err)
	_, ai, err := catalog.StarterDecks().Deck(2, catalog.Builtin())
	require.NoError(t, err)

	e := game.NewEngine(game.EngineConfig{Seed: 1})
	e.StartGame(human, ai)

	sv := BuildStateView(e.Snapshot(), game.Human)
	assert.True(t, sv.IsYourTurn)
	assert.Equal(t, 1, sv.Round)
	assert.Len(t, sv.You.Hand, game.InitialHandSize)
	assert.Equal(t, game.InitialHandSize, sv.Opponent.HandCount)
	assert.Nil(t, sv.Opponent.Hand)
	assert.Equal(t, 2, sv.You.Gems)
	assert.Equal(t, "melee", sv.You.Rows[0].Row)
	assert.Equal(t, "siege", sv.You.Rows[2].Row)

	aiView := BuildStateView(e.Snapshot(), game.AI)
	assert.False(t, aiView.IsYourTurn)
	assert.Nil(t, aiView.Opponent.Hand)
	assert.Equal(t, e.Hand(game.AI)[0].Card.Name, aiView.You.Hand[0].Name)
}

func TestEventViewRedactsOpponentDeck(t *testing.T) {
	tests := []struct {
		name   string
		event  log.GameEvent
		hidden bool
	}{
		{"draw", log.NewDrawEvent(1, 1, "Cynthia"), true},
		{"zero-power filter", log.NewZeroPowerFilteredEvent(1, 1, "Cynthia"), true},
		{"rank synthesis", log.NewRankSynthesizedEvent(1, 1, "Cynthia", "siege"), true},
		{"unit played", log.NewPlayUnitEvent(1, 1, "Cynthia", 4, "ranged"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			own := NewEventView(tt.event, game.AI)
			assert.Equal(t, "Cynthia", own.Card)
			assert.Contains(t, own.Details, "Cynthia")

			other := NewEventView(tt.event, game.Human)
			assert.Equal(t, "AI", other.Player)
			assert.Equal(t, tt.event.Type.String(), other.Type)
			if tt.hidden {
				assert.Empty(t, other.Card)
				assert.Empty(t, other.Row)
				assert.NotContains(t, other.Details, "Cynthia")
			} else {
				assert.Equal(t, "Cynthia", other.Card)
			}
		})
	}
}

func TestErrorViewCodes(t *testing.T) {
	ev := NewErrorView(errorsmod.Wrapf(game.ErrCardNotInHand, "card %d", 7))
	assert.Equal(t, game.Codespace, ev.Codespace)
	assert.Equal(t, uint32(3), ev.Code)
	assert.Contains(t, ev.Log, "card not in hand")

	ev = NewErrorView(ErrBadChoice)
	assert.Equal(t, Codespace, ev.Codespace)
	assert.Equal(t, uint32(2), ev.Code)
}

func TestServeHumanAlwaysPasses(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	sc := &scriptedClient{conn: clientConn, answer: lastMove}
	done := sc.run(ClientMessage{Type: MsgJoin, DeckNumber: 1})

	out, err := testServer().Serve(context.Background(), serverConn)
	require.NoError(t, err)
	require.NoError(t, <-done)

	// A side that never scores cannot win a round.
	assert.True(t, out.Draw || out.Winner == game.AI, "outcome %v", out)

	overs := sc.ofType(MsgGameOver)
	require.Len(t, overs, 1)
	assert.Equal(t, out.String(), overs[0].Result)
	_, err = uuid.Parse(overs[0].GameID)
	require.NoError(t, err)

	prompts := sc.ofType(MsgChooseMove)
	require.NotEmpty(t, prompts)
	for _, p := range prompts {
		require.NotNil(t, p.State)
		assert.True(t, p.State.IsYourTurn)
		assert.True(t, p.Moves[len(p.Moves)-1].Pass)
		assert.Nil(t, p.State.Opponent.Hand)
	}

	for _, n := range sc.ofType(MsgNotify) {
		require.NotNil(t, n.Event)
		switch n.Event.Type {
		case "Draw", "ZeroPowerFiltered", "RankSynthesized":
			if n.Event.Player == "AI" {
				assert.Empty(t, n.Event.Card)
			}
		}
	}
}

func TestServeZeroChanceAINeverPlays(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	sc := &scriptedClient{conn: clientConn, answer: lastMove}
	done := sc.run(ClientMessage{Type: MsgJoin, DeckNumber: 1})

	srv := testServer()
	srv.AIPlayChance = 0
	out, err := srv.Serve(context.Background(), serverConn)
	require.NoError(t, err)
	require.NoError(t, <-done)

	// Nobody scores, so every round ties.
	assert.True(t, out.Draw, "outcome %v", out)
	for _, n := range sc.ofType(MsgNotify) {
		if n.Event.Player == "AI" {
			assert.NotContains(t, []string{"PlayUnit", "PlaySpecial", "PlayWeather"}, n.Event.Type)
		}
	}
}

func TestServeRandomDecks(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	sc := &scriptedClient{conn: clientConn, answer: lastMove}
	// The deck number would be out of range for the deck file.
	done := sc.run(ClientMessage{Type: MsgJoin, DeckNumber: 42})

	srv := testServer()
	srv.RandomDecks = 15
	_, err := srv.Serve(context.Background(), serverConn)
	require.NoError(t, err)
	require.NoError(t, <-done)

	assert.Empty(t, sc.ofType(MsgError))
	require.Len(t, sc.ofType(MsgGameOver), 1)
}

func TestServeRepromptsOnBadIndex(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	first := true
	sc := &scriptedClient{conn: clientConn, answer: func(msg ServerMessage) int {
		if first {
			first = false
			return 999
		}
		return lastMove(msg)
	}}
	done := sc.run(ClientMessage{Type: MsgJoin})

	_, err := testServer().Serve(context.Background(), serverConn)
	require.NoError(t, err)
	require.NoError(t, <-done)

	errs := sc.ofType(MsgError)
	require.NotEmpty(t, errs)
	assert.Equal(t, Codespace, errs[0].Error.Codespace)
	assert.Equal(t, uint32(2), errs[0].Error.Code)
}

func TestServeUnknownDeck(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	var msg ServerMessage
	read := make(chan error, 1)
	go func() {
		if err := json.NewEncoder(clientConn).Encode(ClientMessage{Type: MsgJoin, DeckNumber: 9}); err != nil {
			read <- err
			return
		}
		read <- json.NewDecoder(clientConn).Decode(&msg)
	}()

	_, err := testServer().Serve(context.Background(), serverConn)
	require.ErrorIs(t, err, catalog.ErrDeckNotFound)
	require.NoError(t, <-read)
	assert.Equal(t, MsgError, msg.Type)
	assert.Equal(t, catalog.Codespace, msg.Error.Codespace)
	serverConn.Close()
}

func TestServeRejectsMissingHandshake(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	var msg ServerMessage
	read := make(chan error, 1)
	go func() {
		if err := json.NewEncoder(clientConn).Encode(ClientMessage{Type: MsgMove}); err != nil {
			read <- err
			return
		}
		read <- json.NewDecoder(clientConn).Decode(&msg)
	}()

	_, err := testServer().Serve(context.Background(), serverConn)
	require.ErrorIs(t, err, ErrUnexpectedMessage)
	require.NoError(t, <-read)
	assert.Equal(t, uint32(3), msg.Error.Code)
	serverConn.Close()
}

func TestClientREPL(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	e := game.NewEngine(game.EngineConfig{Seed: 1})
	_, human, err := catalog.StarterDecks().Deck(1, catalog.Builtin())
	require.NoError(t, err)
	e.StartGame(human, nil)

	got := make(chan ClientMessage, 1)
	go func() {
		enc := json.NewEncoder(serverConn)
		dec := json.NewDecoder(serverConn)
		_ = enc.Encode(ServerMessage{Type: MsgNotify, Event: &EventView{Round: 1, Details: "Human draws Catapult"}})
		_ = enc.Encode(ServerMessage{
			Type:  MsgChooseMove,
			State: BuildStateView(e.Snapshot(), game.Human),
			Moves: []MoveView{{Index: 0, Desc: "Play Catapult"}, {Index: 1, Desc: "Pass", Pass: true}},
		})
		var reply ClientMessage
		_ = dec.Decode(&reply)
		got <- reply
		_ = enc.Encode(ServerMessage{Type: MsgError, Error: NewErrorView(game.ErrNotYourTurn)})
		_ = enc.Encode(ServerMessage{Type: MsgGameOver, Result: "AI wins the match (Human has no gems left)"})
	}()

	var out bytes.Buffer
	c := NewClient(clientConn, strings.NewReader("abc\n7\n2\n"), &out)
	require.NoError(t, c.RunREPL(context.Background()))

	reply := <-got
	assert.Equal(t, MsgMove, reply.Type)
	assert.Equal(t, 1, reply.Index)

	text := out.String()
	assert.Contains(t, text, "R1  | Human draws Catapult")
	assert.Contains(t, text, "Enter a number between 1 and 2")
	assert.Contains(t, text, "2) Pass")
	assert.Contains(t, text, "Your turn")
	assert.Contains(t, text, "! not your turn (gwent/2)")
	assert.Contains(t, text, "GAME OVER")
	assert.Contains(t, text, "AI wins the match")
}

func TestClientREPLInputEnds(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	go func() {
		_ = json.NewEncoder(serverConn).Encode(ServerMessage{
			Type:  MsgChooseMove,
			Moves: []MoveView{{Index: 0, Desc: "Pass", Pass: true}},
		})
	}()

	c := NewClient(clientConn, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, c.RunREPL(context.Background()))
}

func TestPlayLocal(t *testing.T) {
	var out bytes.Buffer
	c := NewClient(nil, strings.NewReader(strings.Repeat("1\n", 500)), &out)

	require.NoError(t, PlayLocal(context.Background(), testServer(), 1, c))
	assert.Contains(t, out.String(), "GAME OVER")
	assert.Contains(t, out.String(), "New match")
}
