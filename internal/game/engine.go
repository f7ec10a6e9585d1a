package game

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/peterkuimelis/gwentx/internal/log"
)

// EngineConfig holds configuration for creating an engine.
type EngineConfig struct {
	Rand   Rand  // random source; built from Seed when nil
	Seed   int64 // RNG seed (0 for time-based), ignored when Rand is set
	Logger log.EventLogger
}

// Engine validates and applies commands against one match. It is the only
// code that mutates a GameState. An Engine is not safe for concurrent use.
type Engine struct {
	state     *GameState
	rng       Rand
	logger    log.EventLogger
	resolving bool
}

// NewEngine creates an engine with no match in progress.
func NewEngine(cfg EngineConfig) *Engine {
	rng := cfg.Rand
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Engine{rng: rng, logger: logger}
}

// Logger returns the event sink the engine writes to.
func (e *Engine) Logger() log.EventLogger {
	return e.logger
}

func (e *Engine) log(event log.GameEvent) {
	e.logger.Log(event)
}

// round returns the current round for event stamping.
func (e *Engine) round() int {
	if e.state == nil {
		return 0
	}
	return e.state.Round
}

// --- Setup ---

// StartGame discards any previous match and deals a new one from the two
// card pools. An empty pool yields an empty deck and hand.
func (e *Engine) StartGame(human, ai []Card) {
	gs := NewGameState()
	e.state = gs
	e.resolving = false

	pools := [2][]Card{human, ai}
	prepared := [2][]Card{}
	for _, side := range []Side{Human, AI} {
		prepared[side] = e.prepareDeck(side, pools[side])
	}
	e.log(log.NewMatchEvent(len(prepared[Human]), len(prepared[AI])))

	for _, side := range []Side{Human, AI} {
		instances := make([]*CardInstance, 0, len(prepared[side]))
		for _, card := range prepared[side] {
			instances = append(instances, gs.CreateCardInstance(card, side))
		}
		p := gs.Player(side)
		p.Deck = NewDeck(instances)
		p.Deck.Shuffle(e.rng)
		e.log(log.NewShuffleEvent(gs.Round, int(side), p.Deck.Len()))
		e.dealInitialHand(side)
	}

	e.log(log.NewRoundStartEvent(gs.Round, int(gs.Turn)))
}

// prepareDeck removes zero-power units and pads every row to MinCardsPerRow
// units by cloning the first unit of the pool.
func (e *Engine) prepareDeck(side Side, pool []Card) []Card {
	kept := make([]Card, 0, len(pool))
	for _, card := range pool {
		if card.HasZeroPower() {
			e.log(log.NewZeroPowerFilteredEvent(1, int(side), card.Name))
			continue
		}
		kept = append(kept, card)
	}

	var template *Card
	for i := range kept {
		if kept[i].IsUnit() {
			template = &kept[i]
			break
		}
	}
	if template == nil {
		return kept
	}
	base := *template

	for _, r := range Rows {
		count := 0
		for _, card := range kept {
			if card.IsUnit() && card.Row == r {
				count++
			}
		}
		for i := count; i < MinCardsPerRow; i++ {
			kept = append(kept, base.WithRow(r))
			e.log(log.NewRankSynthesizedEvent(1, int(side), base.Name, r.String()))
		}
	}
	return kept
}

// dealInitialHand draws one unit of each row first, then tops the hand up
// to InitialHandSize from the deck.
func (e *Engine) dealInitialHand(side Side) {
	p := e.state.Player(side)
	for _, r := range Rows {
		if p.HandCount() >= InitialHandSize {
			break
		}
		card := p.Deck.RemoveFirst(func(ci *CardInstance) bool {
			return ci.Card.IsUnit() && ci.Card.Row == r
		})
		if card != nil {
			p.Hand = append(p.Hand, card)
			e.log(log.NewDrawEvent(e.state.Round, int(side), card.Card.Name))
		}
	}
	for p.HandCount() < InitialHandSize {
		card := p.DrawCard()
		if card == nil {
			break
		}
		e.log(log.NewDrawEvent(e.state.Round, int(side), card.Card.Name))
	}
}

// --- Commands ---

// checkCommand runs the checks shared by every mutating command.
func (e *Engine) checkCommand(side Side) error {
	gs := e.state
	if gs == nil {
		return ErrGameNotStarted
	}
	if gs.Over {
		return errorsmod.Wrapf(ErrGameAlreadyEnded, "match finished after round %d", gs.Round)
	}
	if !side.valid() {
		return errorsmod.Wrapf(ErrNotYourTurn, "unknown side %d", side)
	}
	if gs.Turn != side {
		return errorsmod.Wrapf(ErrNotYourTurn, "%s acted during %s's turn", side, gs.Turn)
	}
	return nil
}

// reject logs a failed command and returns its error unchanged.
func (e *Engine) reject(side Side, err error) error {
	if e.state != nil {
		e.log(log.NewIllegalMoveEvent(e.round(), int(side), err.Error()))
	}
	return err
}

// PlayCard plays the hand card with instance ID cardID for side. For units,
// row overrides the card's own row unless it is RowNone. Every check runs
// before any state changes.
func (e *Engine) PlayCard(side Side, cardID int, row Row) error {
	if err := e.checkCommand(side); err != nil {
		return e.reject(side, err)
	}
	gs := e.state
	p := gs.Player(side)

	card := p.FindInHand(cardID)
	if card == nil {
		return e.reject(side, errorsmod.Wrapf(ErrCardNotInHand, "%s has no card #%d", side, cardID))
	}

	switch {
	case card.Card.IsUnit():
		target := row
		if target == RowNone {
			target = card.Card.Row
		}
		if !target.Valid() {
			return e.reject(side, errorsmod.Wrapf(ErrInvalidRow, "%s cannot be played to row %d", card.Card.Name, target))
		}
		p.RemoveFromHand(card)
		e.playUnit(side, card, target)
	case card.Card.IsWeather():
		p.RemoveFromHand(card)
		e.playWeather(side, card)
	case card.Card.IsSpecial():
		p.RemoveFromHand(card)
		e.playSpecial(side, card)
	default:
		return e.reject(side, errorsmod.Wrapf(ErrUnplayable, "%s is a %s card", card.Card.Name, card.Card.Category))
	}

	// The turn stays with side while the opponent has passed.
	if opp := side.Opponent(); !gs.Player(opp).Passed {
		gs.Turn = opp
	}
	return nil
}

// Pass ends side's participation in the current round. When both sides
// have passed the round resolves before Pass returns.
func (e *Engine) Pass(side Side) error {
	if err := e.checkCommand(side); err != nil {
		return e.reject(side, err)
	}
	gs := e.state
	gs.Player(side).Passed = true
	e.log(log.NewPassEvent(gs.Round, int(side)))

	opp := side.Opponent()
	if gs.Player(opp).Passed {
		e.endRound()
		return nil
	}
	gs.Turn = opp
	return nil
}

// --- Round & game resolution ---

func (e *Engine) endRound() {
	gs := e.state
	e.resolving = true
	defer func() { e.resolving = false }()

	hs, as := e.Score(Human), e.Score(AI)
	result := RoundResult{Round: gs.Round, HumanScore: hs, AIScore: as}
	var losers []Side
	switch {
	case hs > as:
		result.Winner = Human
		losers = []Side{AI}
	case as > hs:
		result.Winner = AI
		losers = []Side{Human}
	default:
		result.Tie = true
		losers = []Side{Human, AI}
	}
	gs.History = append(gs.History, result)

	winner := -1
	if !result.Tie {
		winner = int(result.Winner)
	}
	e.log(log.NewRoundEndEvent(gs.Round, hs, as, winner))

	for _, s := range losers {
		p := gs.Player(s)
		p.LoseGem()
		e.log(log.NewGemLostEvent(gs.Round, int(s), p.Gems))
	}

	if gs.CheckGameOver() {
		e.endGame(hs, as)
		return
	}

	// The round loser leads; the human leads after a tie.
	leader := Human
	if !result.Tie {
		leader = result.Winner.Opponent()
	}
	e.prepareNextRound(leader)
}

// endGame records the final result. A player still holding gems wins; when
// both ran out together the match is drawn.
func (e *Engine) endGame(humanScore, aiScore int) {
	gs := e.state
	out := Outcome{HumanScore: humanScore, AIScore: aiScore}
	humanGems, aiGems := gs.Player(Human).Gems, gs.Player(AI).Gems
	switch {
	case humanGems > 0 && aiGems == 0:
		out.Winner = Human
		out.Reason = "AI has no gems left"
	case aiGems > 0 && humanGems == 0:
		out.Winner = AI
		out.Reason = "Human has no gems left"
	default:
		out.Draw = true
		out.Reason = "both players lost their last gem"
	}
	gs.Over = true
	gs.Outcome = out

	winner := -1
	if !out.Draw {
		winner = int(out.Winner)
	}
	e.log(log.NewGameOverEvent(gs.Round, winner, out.Reason))
}

func (e *Engine) prepareNextRound(leader Side) {
	gs := e.state
	for _, side := range []Side{Human, AI} {
		p := gs.Player(side)
		p.Passed = false
		for _, card := range p.Board.Clear() {
			e.discard(card, "round over")
		}
	}

	gs.Round++
	gs.Turn = leader
	clear(gs.WeatherRows)

	e.log(log.NewRoundStartEvent(gs.Round, int(leader)))

	for _, side := range []Side{Human, AI} {
		for i := 0; i < RoundDrawCount; i++ {
			if e.drawValid(side) == nil {
				break
			}
		}
	}
}

// drawValid draws the next card that is not a zero-power unit. Zero-power
// units drawn on the way are dropped. Returns nil when the deck runs out.
func (e *Engine) drawValid(side Side) *CardInstance {
	p := e.state.Player(side)
	for {
		card := p.Deck.Draw()
		if card == nil {
			return nil
		}
		if card.Card.HasZeroPower() {
			e.log(log.NewZeroPowerFilteredEvent(e.state.Round, int(side), card.Card.Name))
			continue
		}
		p.Hand = append(p.Hand, card)
		e.log(log.NewDrawEvent(e.state.Round, int(side), card.Card.Name))
		return card
	}
}

// --- Queries ---

// Started reports whether StartGame has been called.
func (e *Engine) Started() bool {
	return e.state != nil
}

// Phase reports the engine's current state.
func (e *Engine) Phase() Phase {
	switch {
	case e.state == nil:
		return PhaseNotStarted
	case e.state.Over:
		return PhaseGameOver
	case e.resolving:
		return PhaseRoundOver
	case e.state.Turn == Human:
		return PhaseAwaitingHumanPlay
	default:
		return PhaseAwaitingAIPlay
	}
}

// IsGameOver reports whether some player has run out of gems.
func (e *Engine) IsGameOver() bool {
	return e.state != nil && e.state.Over
}

// Outcome returns the final result. It is the zero value until the match ends.
func (e *Engine) Outcome() Outcome {
	if e.state == nil {
		return Outcome{}
	}
	return e.state.Outcome
}

// Round returns the current round number (0 before StartGame).
func (e *Engine) Round() int {
	return e.round()
}

// Turn returns the side expected to act next.
func (e *Engine) Turn() Side {
	if e.state == nil {
		return Human
	}
	return e.state.Turn
}

// Gems returns side's remaining gems.
func (e *Engine) Gems(side Side) int {
	if e.state == nil || !side.valid() {
		return 0
	}
	return e.state.Player(side).Gems
}

// Passed reports whether side has passed this round.
func (e *Engine) Passed(side Side) bool {
	if e.state == nil || !side.valid() {
		return false
	}
	return e.state.Player(side).Passed
}

// Hand returns copies of side's hand cards.
func (e *Engine) Hand(side Side) []CardInstance {
	if e.state == nil || !side.valid() {
		return nil
	}
	return copyInstances(e.state.Player(side).Hand)
}

// Discard returns copies of side's discard pile.
func (e *Engine) Discard(side Side) []CardInstance {
	if e.state == nil || !side.valid() {
		return nil
	}
	return copyInstances(e.state.Player(side).Discard)
}

// Board returns copies of side's rows, indexed melee, ranged, siege.
func (e *Engine) Board(side Side) [3][]CardInstance {
	var rows [3][]CardInstance
	if e.state == nil || !side.valid() {
		return rows
	}
	b := &e.state.Player(side).Board
	for i, r := range Rows {
		rows[i] = copyInstances(b.Row(r))
	}
	return rows
}

// DeckSize returns the number of cards left in side's deck.
func (e *Engine) DeckSize(side Side) int {
	if e.state == nil || !side.valid() {
		return 0
	}
	return e.state.Player(side).Deck.Len()
}

// Weather returns the weathered rows in board order.
func (e *Engine) Weather() []Row {
	if e.state == nil {
		return nil
	}
	var rows []Row
	for _, r := range Rows {
		if e.state.IsWeathered(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// History returns the results of finished rounds.
func (e *Engine) History() []RoundResult {
	if e.state == nil {
		return nil
	}
	return append([]RoundResult(nil), e.state.History...)
}

// LegalMoves lists the commands side may issue right now. Units are offered
// on their own row, or on every row when they have none. Pass is always last.
func (e *Engine) LegalMoves(side Side) []Move {
	if e.checkCommand(side) != nil {
		return nil
	}
	var moves []Move
	for _, card := range e.state.Player(side).Hand {
		c := card.Card
		switch {
		case c.IsUnit() && c.Row.Valid():
			moves = append(moves, Move{CardID: card.ID, Row: c.Row,
				Desc: fmt.Sprintf("Play %s to %s", card.DisplayString(), c.Row)})
		case c.IsUnit():
			for _, r := range Rows {
				moves = append(moves, Move{CardID: card.ID, Row: r,
					Desc: fmt.Sprintf("Play %s to %s", card.DisplayString(), r)})
			}
		case c.IsWeather(), c.IsSpecial():
			moves = append(moves, Move{CardID: card.ID,
				Desc: fmt.Sprintf("Play %s", card.DisplayString())})
		}
	}
	return append(moves, Move{Pass: true, Desc: "Pass"})
}

// Apply issues m as side's command.
func (e *Engine) Apply(side Side, m Move) error {
	if m.Pass {
		return e.Pass(side)
	}
	return e.PlayCard(side, m.CardID, m.Row)
}

func copyInstances(cards []*CardInstance) []CardInstance {
	if len(cards) == 0 {
		return nil
	}
	out := make([]CardInstance, len(cards))
	for i, c := range cards {
		out[i] = *c
	}
	return out
}
