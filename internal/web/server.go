package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/game"
	gnet "github.com/peterkuimelis/gwentx/internal/net"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	catalog.Record
	ArtPath string `json:"artPath,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number  int           `json:"number"`
	Name    string        `json:"name"`
	Faction string        `json:"faction,omitempty"`
	Cards   []string      `json:"cards"`
	Stats   catalog.Stats `json:"stats"`
}

// Options configures a Server.
type Options struct {
	Catalog *catalog.Catalog
	Decks   catalog.DeckFile
	ArtDir  string // served under /art/ when set; files are named <art_id>.jpg
	Logger  *zap.Logger
}

// Server is the gwentx web API and websocket bridge to a game server.
type Server struct {
	opts   Options
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Builtin()
	}
	s := &Server{opts: opts, logger: logger, mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Card art from filesystem
	if s.opts.ArtDir != "" {
		s.mux.Handle("GET /art/", http.StripPrefix("/art/", http.FileServer(http.Dir(s.opts.ArtDir))))
	}

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/cards/{id}", s.handleCard)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)

	// WebSocket proxy
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler exposes the routes, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) cardInfo(c game.Card) CardInfo {
	ci := CardInfo{Record: catalog.NewRecord(c)}
	if s.opts.ArtDir != "" && c.ArtID != 0 {
		ci.ArtPath = fmt.Sprintf("/art/%d.jpg", c.ArtID)
	}
	return ci
}

// handleCards lists the catalog. Optional filters: faction (includes
// neutral cards) and category.
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := s.opts.Catalog.Cards()
	if f := r.URL.Query().Get("faction"); f != "" {
		cards = s.opts.Catalog.ByFaction(game.ParseFaction(f))
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		want := game.ParseCategory(cat)
		var kept []game.Card
		for _, c := range cards {
			if c.Category == want {
				kept = append(kept, c)
			}
		}
		cards = kept
	}

	out := make([]CardInfo, 0, len(cards))
	for _, c := range cards {
		out = append(out, s.cardInfo(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}
	c, ok := s.opts.Catalog.ByID(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.cardInfo(c))
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks := make([]DeckInfo, 0, len(s.opts.Decks.Decks))
	for i, d := range s.opts.Decks.Decks {
		cards, err := d.Build(s.opts.Catalog)
		if err != nil {
			s.logger.Warn("deck does not resolve", zap.String("deck", d.Name), zap.Error(err))
			http.Error(w, "could not resolve decks", http.StatusInternalServerError)
			return
		}
		di := DeckInfo{
			Number:  i + 1,
			Name:    d.Name,
			Faction: d.Faction,
			Stats:   catalog.ComputeStats(cards),
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, c := range cards {
			if !seen[c.Name] {
				di.Cards = append(di.Cards, c.Name)
				seen[c.Name] = true
			}
		}
		decks = append(decks, di)
	}
	writeJSON(w, http.StatusOK, decks)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ConnectMessage is the first frame a browser sends on /ws.
type ConnectMessage struct {
	Type       string `json:"type"` // "connect"
	Addr       string `json:"addr"`
	DeckNumber int    `json:"deck_number"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial connect message from browser
	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Debug("websocket read connect", zap.Error(err))
		return
	}

	var connectMsg ConnectMessage
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	// Open TCP connection to game server
	var d net.Dialer
	tcpConn, err := d.DialContext(ctx, "tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(gnet.ServerMessage{
			Type:   gnet.MsgError,
			Result: fmt.Sprintf("Could not connect to game server at %s: %v", connectMsg.Addr, err),
		})
		_ = wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	zl := s.logger.With(zap.String("addr", connectMsg.Addr))
	zl.Info("bridging browser to game server", zap.Int("deck", connectMsg.DeckNumber))

	// Send join message over TCP
	if err := json.NewEncoder(tcpConn).Encode(gnet.ClientMessage{
		Type:       gnet.MsgJoin,
		DeckNumber: connectMsg.DeckNumber,
	}); err != nil {
		zl.Warn("tcp write join", zap.Error(err))
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if !errors.Is(err, io.EOF) {
					zl.Debug("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				zl.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append([]byte(strings.TrimSpace(string(data))), '\n')
			if _, err := tcpConn.Write(data); err != nil {
				zl.Debug("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
	zl.Info("game server closed the connection")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
