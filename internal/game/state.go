package game

import "fmt"

const (
	StartingGems     = 2
	InitialHandSize  = 10
	RoundDrawCount   = 2
	MinCardsPerRow   = 3
	DefaultAIPlayPct = 0.8
)

// --- Deck ---

// Deck is an ordered pile; index 0 is the top (next card drawn).
type Deck struct {
	cards []*CardInstance
}

// NewDeck wraps the given instances, first element on top.
func NewDeck(cards []*CardInstance) *Deck {
	return &Deck{cards: append([]*CardInstance(nil), cards...)}
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck contents, top first.
func (d *Deck) Cards() []*CardInstance {
	return append([]*CardInstance(nil), d.cards...)
}

// Draw removes and returns the top card, or nil if the deck is empty.
func (d *Deck) Draw() *CardInstance {
	if len(d.cards) == 0 {
		return nil
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// RemoveFirst removes and returns the first card (from the top) matching pred.
func (d *Deck) RemoveFirst(pred func(*CardInstance) bool) *CardInstance {
	for i, c := range d.cards {
		if pred(c) {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return c
		}
	}
	return nil
}

// Shuffle permutes the deck in place.
func (d *Deck) Shuffle(rng Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// --- Board ---

// Board holds a player's three rows. Each row keeps play order.
type Board struct {
	rows [3][]*CardInstance
}

// Row returns the cards in r. The slice must not be modified.
func (b *Board) Row(r Row) []*CardInstance {
	if !r.Valid() {
		return nil
	}
	return b.rows[r.index()]
}

// Place appends a card to the end of r.
func (b *Board) Place(card *CardInstance, r Row) {
	b.rows[r.index()] = append(b.rows[r.index()], card)
}

// Remove takes a card off whichever row holds it. Returns false if absent.
func (b *Board) Remove(card *CardInstance) bool {
	for i, row := range b.rows {
		for j, c := range row {
			if c.ID == card.ID {
				b.rows[i] = append(row[:j], row[j+1:]...)
				return true
			}
		}
	}
	return false
}

// Units returns every card on the board, melee row first.
func (b *Board) Units() []*CardInstance {
	var result []*CardInstance
	for _, row := range b.rows {
		result = append(result, row...)
	}
	return result
}

// Count returns the number of cards on the board.
func (b *Board) Count() int {
	n := 0
	for _, row := range b.rows {
		n += len(row)
	}
	return n
}

// Clear empties every row and returns the removed cards.
func (b *Board) Clear() []*CardInstance {
	removed := b.Units()
	b.rows = [3][]*CardInstance{}
	return removed
}

// --- Player ---

// Player represents one side's entire state.
type Player struct {
	Deck    *Deck
	Hand    []*CardInstance
	Discard []*CardInstance
	Board   Board
	Passed  bool
	Gems    int
}

func newPlayer() *Player {
	return &Player{Deck: NewDeck(nil), Gems: StartingGems}
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// FindInHand returns the hand card with the given instance ID.
func (p *Player) FindInHand(id int) *CardInstance {
	for _, c := range p.Hand {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveFromHand removes a card from the hand by instance ID.
func (p *Player) RemoveFromHand(card *CardInstance) {
	for i, c := range p.Hand {
		if c.ID == card.ID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

// SendToDiscard appends a card to the discard pile.
func (p *Player) SendToDiscard(card *CardInstance) {
	p.Discard = append(p.Discard, card)
}

// RemoveFromDiscard removes a card from the discard pile by instance ID.
func (p *Player) RemoveFromDiscard(card *CardInstance) {
	for i, c := range p.Discard {
		if c.ID == card.ID {
			p.Discard = append(p.Discard[:i], p.Discard[i+1:]...)
			return
		}
	}
}

// DrawCard moves the top card of the deck into the hand.
// Returns the drawn card, or nil if the deck is empty.
func (p *Player) DrawCard() *CardInstance {
	card := p.Deck.Draw()
	if card != nil {
		p.Hand = append(p.Hand, card)
	}
	return card
}

// LoseGem removes one gem, never going below zero.
func (p *Player) LoseGem() {
	if p.Gems > 0 {
		p.Gems--
	}
}

// --- GameState ---

// RoundResult records how a round was scored.
type RoundResult struct {
	Round      int
	HumanScore int
	AIScore    int
	Winner     Side
	Tie        bool
}

func (r RoundResult) String() string {
	if r.Tie {
		return fmt.Sprintf("Round %d tied %d-%d", r.Round, r.HumanScore, r.AIScore)
	}
	return fmt.Sprintf("Round %d won by %s (%d-%d)", r.Round, r.Winner, r.HumanScore, r.AIScore)
}

// Outcome is the final result of a match.
type Outcome struct {
	Winner     Side
	Draw       bool
	HumanScore int
	AIScore    int
	Reason     string
}

func (o Outcome) String() string {
	if o.Draw {
		return fmt.Sprintf("Match drawn (%s)", o.Reason)
	}
	return fmt.Sprintf("%s wins the match (%s)", o.Winner, o.Reason)
}

// GameState holds the complete state of one match.
type GameState struct {
	Players     [2]*Player
	Round       int  // 1-based
	Turn        Side // whose command is expected next
	WeatherRows map[Row]bool
	History     []RoundResult

	nextID int

	Over    bool
	Outcome Outcome
}

// NewGameState creates an empty match state with both players at full gems.
func NewGameState() *GameState {
	return &GameState{
		Players:     [2]*Player{newPlayer(), newPlayer()},
		Round:       1,
		Turn:        Human,
		WeatherRows: make(map[Row]bool),
	}
}

// NextID generates a unique card instance ID.
func (gs *GameState) NextID() int {
	gs.nextID++
	return gs.nextID
}

// Player returns the state for a side.
func (gs *GameState) Player(s Side) *Player {
	return gs.Players[s]
}

// CurrentPlayerIsHuman reports whether the human is expected to act.
func (gs *GameState) CurrentPlayerIsHuman() bool {
	return gs.Turn == Human
}

// IsWeathered reports whether r is under a weather effect.
func (gs *GameState) IsWeathered(r Row) bool {
	return gs.WeatherRows[r]
}

// CheckGameOver sets Over when either player has run out of gems.
func (gs *GameState) CheckGameOver() bool {
	if gs.Players[Human].Gems == 0 || gs.Players[AI].Gems == 0 {
		gs.Over = true
	}
	return gs.Over
}

// CreateCardInstance creates a CardInstance from a Card definition, assigned to a side.
func (gs *GameState) CreateCardInstance(card Card, owner Side) *CardInstance {
	return &CardInstance{
		ID:    gs.NextID(),
		Owner: owner,
		Card:  card,
	}
}
