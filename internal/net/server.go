package net

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
	"github.com/peterkuimelis/gwentx/internal/match"
)

// Server hosts matches between one remote human and the AI.
type Server struct {
	Catalog      *catalog.Catalog
	Decks        catalog.DeckFile
	Port         string
	AIDeck       int     // AI deck number (1-indexed); 0 picks the deck after the human's
	RandomDecks  int     // when > 0, both sides play random catalog decks of this size
	Seed         int64   // RNG seed (0 for time-based)
	AIPlayChance float64 // probability the AI plays a card; 0 never plays
	Logger       *zap.Logger
	Events       log.EventLogger // optional extra event sink
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Run listens on Port, waits for one client to join, then plays the match.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	s.logger().Info("waiting for player", zap.String("port", s.Port))

	// Accept exactly one connection
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	s.logger().Info("player connected", zap.Stringer("remote", conn.RemoteAddr()))

	_, err = s.Serve(ctx, conn)
	return err
}

// Serve reads the join handshake from conn and plays one match over it.
func (s *Server) Serve(ctx context.Context, conn net.Conn) (game.Outcome, error) {
	human := NewNetworkController(conn, game.Human)
	join, err := human.ReadJoin()
	if err != nil {
		return game.Outcome{}, err
	}

	rng := game.NewRand(s.Seed)
	decks, err := s.Decks.ForMatch(s.Catalog, rng, join.DeckNumber, s.AIDeck, s.RandomDecks)
	if err != nil {
		_ = human.SendError(err)
		return game.Outcome{}, err
	}

	var events log.EventLogger = log.NewZapLogger(s.logger())
	if s.Events != nil {
		events = log.Multi(events, s.Events)
	}
	m := match.New(match.Config{
		Human:  decks.Human,
		AI:     decks.AI,
		Rand:   rng,
		Logger: events,
	}, human, match.NewAIController(game.AI, game.NewRandomChooser(rng, s.AIPlayChance)))
	human.GameID = m.ID

	zl := s.logger().With(zap.String("game_id", m.ID))
	zl.Info("match started",
		zap.String("human_deck", decks.HumanName), zap.Int("human_cards", len(decks.Human)),
		zap.String("ai_deck", decks.AIName), zap.Int("ai_cards", len(decks.AI)))

	out, err := m.Run(ctx)
	if err != nil {
		zl.Error("match aborted", zap.Error(err))
		return game.Outcome{}, fmt.Errorf("match error: %w", err)
	}
	zl.Info("match finished", zap.Stringer("outcome", out))

	if err := human.SendGameOver(out); err != nil {
		return out, fmt.Errorf("send game_over: %w", err)
	}
	return out, nil
}

// PlayLocal runs a match against the AI in-process, with the terminal REPL
// talking to the server over a pipe.
func PlayLocal(ctx context.Context, s *Server, deckNumber int, c *Client) error {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	c.conn = clientConn

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		_, err := s.Serve(ctx, serverConn)
		errCh <- err
	}()

	if err := c.Join(deckNumber); err != nil {
		return err
	}
	if err := c.RunREPL(ctx); err != nil {
		select {
		case serr := <-errCh:
			if serr != nil {
				return serr
			}
		default:
		}
		return err
	}
	return <-errCh
}
