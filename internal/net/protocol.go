package net

// Message types for the JSON protocol over TCP. Each message is one JSON
// object per line.

const (
	MsgNotify     = "notify"
	MsgChooseMove = "choose_move"
	MsgError      = "error"
	MsgGameOver   = "game_over"

	MsgJoin = "join"
	MsgMove = "move"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type   string `json:"type"`
	GameID string `json:"game_id,omitempty"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_move"
	Moves []MoveView `json:"moves,omitempty"`
	State *StateView `json:"state,omitempty"`

	// For "error"
	Error *ErrorView `json:"error,omitempty"`

	// For "game_over"
	Winner string `json:"winner,omitempty"`
	Draw   bool   `json:"draw,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a game event as the client may see it.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round"`
	Player  string `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Row     string `json:"row,omitempty"`
	Details string `json:"details"`
}

// MoveView is a numbered move choice.
type MoveView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
	Pass  bool   `json:"pass,omitempty"`
}

// ErrorView carries a registered error as codespace and code.
type ErrorView struct {
	Codespace string `json:"codespace"`
	Code      uint32 `json:"code"`
	Log       string `json:"log"`
}

// StateView is the match from one side's perspective.
type StateView struct {
	Round      int        `json:"round"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
	Weather    []string   `json:"weather,omitempty"`
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	History    []string   `json:"history,omitempty"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Name         string     `json:"name"`
	Gems         int        `json:"gems"`
	Score        int        `json:"score"`
	Passed       bool       `json:"passed,omitempty"`
	HandCount    int        `json:"hand_count"`
	Hand         []CardView `json:"hand,omitempty"` // only for "you"
	Rows         [3]RowView `json:"rows"`
	DiscardCount int        `json:"discard_count"`
	DeckCount    int        `json:"deck_count"`
}

// RowView is one board row with its current score.
type RowView struct {
	Row       string     `json:"row"`
	Score     int        `json:"score"`
	Weathered bool       `json:"weathered,omitempty"`
	Cards     []CardView `json:"cards,omitempty"`
}

// CardView describes a card in hand or on the board.
type CardView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Power    int    `json:"power,omitempty"`
	Row      string `json:"row,omitempty"`
	Gold     bool   `json:"gold,omitempty"`
	Effects  string `json:"effects,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "move"
	Index int `json:"index"`

	// For "join" (initial handshake), 1-indexed
	DeckNumber int `json:"deck_number,omitempty"`
}
