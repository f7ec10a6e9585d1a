package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	errorsmod "cosmossdk.io/errors"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

// NetworkController implements match.Controller over a connection.
type NetworkController struct {
	GameID string

	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	side game.Side
	mu   sync.Mutex
}

// NewNetworkController creates a controller playing side over conn.
func NewNetworkController(conn net.Conn, side game.Side) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		side: side,
	}
}

// BuildStateView creates a StateView from the perspective of side. The
// opponent's hand is reduced to a count.
func BuildStateView(snap game.Snapshot, side game.Side) *StateView {
	sv := &StateView{
		Round:      snap.Round,
		Phase:      snap.Phase.String(),
		IsYourTurn: !snap.Over && snap.Turn == side,
		You:        playerView(snap, side, true),
		Opponent:   playerView(snap, side.Opponent(), false),
	}
	for _, r := range snap.Weather {
		sv.Weather = append(sv.Weather, r.String())
	}
	for _, h := range snap.History {
		sv.History = append(sv.History, h.String())
	}
	return sv
}

func playerView(snap game.Snapshot, side game.Side, isOwner bool) PlayerView {
	ps := snap.Player(side)
	pv := PlayerView{
		Name:         side.String(),
		Gems:         ps.Gems,
		Score:        ps.Score,
		Passed:       ps.Passed,
		HandCount:    len(ps.Hand),
		DiscardCount: len(ps.Discard),
		DeckCount:    ps.DeckSize,
	}
	if isOwner {
		for _, c := range ps.Hand {
			pv.Hand = append(pv.Hand, NewCardView(c))
		}
	}
	for i, r := range game.Rows {
		rv := RowView{Row: r.String(), Score: ps.RowScores[i], Weathered: snap.IsWeathered(r)}
		for _, c := range ps.Row(r) {
			rv.Cards = append(rv.Cards, NewCardView(c))
		}
		pv.Rows[i] = rv
	}
	return pv
}

// NewCardView describes a card instance for the client.
func NewCardView(ci game.CardInstance) CardView {
	c := ci.Card
	cv := CardView{
		ID:       ci.ID,
		Name:     c.Name,
		Category: c.Category.String(),
		Power:    c.BasePower(),
		Gold:     c.IsGold(),
	}
	if c.Row.Valid() {
		cv.Row = c.Row.String()
	}
	if !c.Effects.Empty() {
		cv.Effects = c.Effects.String()
	}
	return cv
}

// NewEventView converts an event for delivery to viewer. Events about the
// opponent's hidden deck and hand do not name the card.
func NewEventView(event log.GameEvent, viewer game.Side) *EventView {
	ev := &EventView{
		Seq:     event.Seq,
		Round:   event.Round,
		Player:  log.PlayerName(event.Player),
		Type:    event.Type.String(),
		Card:    event.Card,
		Row:     event.Row,
		Details: event.Details,
	}
	if event.Player == int(viewer) {
		return ev
	}
	owner := log.PlayerName(event.Player)
	switch event.Type {
	case log.EventDraw:
		ev.Card = ""
		ev.Details = fmt.Sprintf("%s draws a card", owner)
	case log.EventZeroPowerFiltered:
		ev.Card = ""
		ev.Details = fmt.Sprintf("A zero-power unit is removed from %s's deck", owner)
	case log.EventRankSynthesized:
		ev.Card, ev.Row = "", ""
		ev.Details = fmt.Sprintf("%s's deck gains a card", owner)
	}
	return ev
}

// NewErrorView maps err onto its registered codespace and code.
func NewErrorView(err error) *ErrorView {
	codespace, code, msg := errorsmod.ABCIInfo(err, false)
	return &ErrorView{Codespace: codespace, Code: code, Log: msg}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	if msg.GameID == "" {
		msg.GameID = nc.GameID
	}
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ReadJoin reads the client's handshake.
func (nc *NetworkController) ReadJoin() (ClientMessage, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg, err := nc.recv()
	if err != nil {
		return ClientMessage{}, fmt.Errorf("read join message: %w", err)
	}
	if msg.Type != MsgJoin {
		err := errorsmod.Wrapf(ErrUnexpectedMessage, "got %q, want %q", msg.Type, MsgJoin)
		_ = nc.send(ServerMessage{Type: MsgError, Error: NewErrorView(err)})
		return ClientMessage{}, err
	}
	return msg, nil
}

// ChooseMove implements match.Controller. Answers that are not a valid
// move index are reported and the prompt is repeated.
func (nc *NetworkController) ChooseMove(ctx context.Context, snap game.Snapshot, moves []game.Move) (game.Move, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	views := make([]MoveView, len(moves))
	for i, m := range moves {
		views[i] = MoveView{Index: i, Desc: m.String(), Pass: m.Pass}
	}
	prompt := ServerMessage{
		Type:  MsgChooseMove,
		Moves: views,
		State: BuildStateView(snap, nc.side),
	}

	for {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}
		if err := nc.send(prompt); err != nil {
			return game.Move{}, fmt.Errorf("send choose_move: %w", err)
		}
		resp, err := nc.recv()
		if err != nil {
			return game.Move{}, fmt.Errorf("recv move: %w", err)
		}

		var bad error
		switch {
		case resp.Type != MsgMove:
			bad = errorsmod.Wrapf(ErrUnexpectedMessage, "got %q, want %q", resp.Type, MsgMove)
		case resp.Index < 0 || resp.Index >= len(moves):
			bad = errorsmod.Wrapf(ErrBadChoice, "index %d out of range [0,%d)", resp.Index, len(moves))
		default:
			return moves[resp.Index], nil
		}
		if err := nc.send(ServerMessage{Type: MsgError, Error: NewErrorView(bad)}); err != nil {
			return game.Move{}, fmt.Errorf("send error: %w", err)
		}
	}
}

// RejectMove implements match.MoveRejecter.
func (nc *NetworkController) RejectMove(_ context.Context, _ game.Move, err error) error {
	return nc.SendError(err)
}

// SendError reports err to the client without ending the session.
func (nc *NetworkController) SendError(err error) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgError, Error: NewErrorView(err)})
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(out game.Outcome) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{Type: MsgGameOver, Draw: out.Draw, Result: out.String()}
	if !out.Draw {
		msg.Winner = out.Winner.String()
	}
	return nc.send(msg)
}

// Notify implements match.Controller.
func (nc *NetworkController) Notify(_ context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgNotify, Event: NewEventView(event, nc.side)})
}
