package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer
	enc  *json.Encoder
}

// NewClient creates a REPL reading choices from in and printing to out.
// conn may be nil when the client is handed to PlayLocal.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect dials a server, sends the deck choice, and runs the REPL.
func Connect(ctx context.Context, addr string, deckNumber int, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	c := NewClient(conn, in, out)
	if err := c.Join(deckNumber); err != nil {
		return err
	}
	fmt.Fprintln(out, "Connected! Waiting for game to start...")
	return c.RunREPL(ctx)
}

func (c *Client) encoder() *json.Encoder {
	if c.enc == nil {
		c.enc = json.NewEncoder(c.conn)
	}
	return c.enc
}

// Join sends the handshake with the chosen deck (1-indexed).
func (c *Client) Join(deckNumber int) error {
	if err := c.encoder().Encode(ClientMessage{Type: MsgJoin, DeckNumber: deckNumber}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return nil
}

// RunREPL reads server messages and handles them interactively until the
// game is over.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgChooseMove:
			c.renderState(msg.State)
			c.renderMoves(msg.Moves)
			idx, err := c.readChoice(len(msg.Moves))
			if err != nil {
				return err
			}
			if err := c.encoder().Encode(ClientMessage{Type: MsgMove, Index: idx}); err != nil {
				return fmt.Errorf("send move: %w", err)
			}

		case MsgError:
			if msg.Error != nil {
				fmt.Fprintf(c.out, "! %s (%s/%d)\n", msg.Error.Log, msg.Error.Codespace, msg.Error.Code)
			}

		case MsgGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	fmt.Fprintf(c.out, "R%-2d | %s\n", ev.Round, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	// Opponent rows are drawn mirrored: siege on top.
	opp := sv.Opponent
	fmt.Fprintf(w, "║  OPPONENT %s  Score: %d  Hand: %d  Deck: %d  Discard: %d%s\n",
		formatGems(opp.Gems), opp.Score, opp.HandCount, opp.DeckCount, opp.DiscardCount, passedTag(opp.Passed))
	for i := len(opp.Rows) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "║  %s\n", formatRow(opp.Rows[i]))
	}

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	for _, rv := range you.Rows {
		fmt.Fprintf(w, "║  %s\n", formatRow(rv))
	}
	fmt.Fprintf(w, "║  YOU %s  Score: %d  Hand: %d  Deck: %d  Discard: %d%s\n",
		formatGems(you.Gems), you.Score, you.HandCount, you.DeckCount, you.DiscardCount, passedTag(you.Passed))
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	info := fmt.Sprintf("Round %d | %s", sv.Round, sv.Phase)
	if sv.IsYourTurn {
		info += " | Your turn"
	} else {
		info += " | Opponent's turn"
	}
	if len(sv.Weather) > 0 {
		info += " | Weather: " + strings.Join(sv.Weather, ", ")
	}
	fmt.Fprintln(w, info)

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, cv := range you.Hand {
			fmt.Fprintf(w, "[%d] %s  ", i+1, formatCard(cv))
		}
		fmt.Fprintln(w)
	}
}

func formatGems(n int) string {
	return strings.Repeat("●", n) + strings.Repeat("○", max(2-n, 0))
}

func passedTag(passed bool) string {
	if passed {
		return "  [passed]"
	}
	return ""
}

func formatRow(rv RowView) string {
	s := fmt.Sprintf("%-6s (%2d)", rv.Row, rv.Score)
	if rv.Weathered {
		s += " ~"
	}
	for _, cv := range rv.Cards {
		s += " [" + formatCard(cv) + "]"
	}
	return s
}

func formatCard(cv CardView) string {
	switch cv.Category {
	case "Unit":
		s := fmt.Sprintf("%s %d", cv.Name, cv.Power)
		if cv.Gold {
			s += "*"
		}
		if cv.Effects != "" {
			s += " " + cv.Effects
		}
		return s
	default:
		return cv.Name
	}
}

func (c *Client) renderMoves(moves []MoveView) {
	fmt.Fprintln(c.out, "\nMoves:")
	for _, m := range moves {
		fmt.Fprintf(c.out, "  %d) %s\n", m.Index+1, m.Desc)
	}
}

// readChoice returns a 0-indexed choice. It fails only when input ends.
func (c *Client) readChoice(count int) (int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, fmt.Errorf("read choice: %w", io.ErrUnexpectedEOF)
			}
			return 0, fmt.Errorf("read choice: %w", err)
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
	}
}
