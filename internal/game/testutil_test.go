package game

import (
	"testing"

	"github.com/peterkuimelis/gwentx/internal/log"
)

// fixedRand is a deterministic Rand: Shuffle keeps the order, Intn returns
// idx (clamped) and Float64 returns f.
type fixedRand struct {
	idx int
	f   float64
}

func (r *fixedRand) Intn(n int) int {
	if r.idx >= n {
		return n - 1
	}
	return r.idx
}

func (r *fixedRand) Float64() float64 { return r.f }

func (r *fixedRand) Shuffle(n int, swap func(i, j int)) {}

// --- Card builders ---

var nextTestCardID = 1000

func testCardID() int {
	nextTestCardID++
	return nextTestCardID
}

func unit(name string, power int, row Row, effects ...Effect) Card {
	return Card{
		ID:       testCardID(),
		Name:     name,
		Category: CategoryUnit,
		Power:    power,
		HasPower: true,
		Row:      row,
		Effects:  Effects(effects...),
	}
}

func goldUnit(name string, power int, row Row, effects ...Effect) Card {
	c := unit(name, power, row, effects...)
	c.Color = Gold
	return c
}

func weatherCard(name string) Card {
	return Card{ID: testCardID(), Name: name, Category: CategoryWeather, Weather: ParseWeather(name)}
}

func specialCard(name string) Card {
	return Card{ID: testCardID(), Name: name, Category: CategorySpecial}
}

func leaderCard(name string) Card {
	return Card{ID: testCardID(), Name: name, Category: CategoryLeader, Power: 5, HasPower: true}
}

// --- Engine setup ---

// newTestEngine starts a match with empty pools so tests can place cards
// exactly where they need them.
func newTestEngine(t *testing.T) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(EngineConfig{Rand: &fixedRand{}, Logger: logger})
	e.StartGame(nil, nil)
	return e, logger
}

// give adds cards to side's hand and returns their instance IDs.
func give(e *Engine, side Side, cards ...Card) []int {
	p := e.state.Player(side)
	ids := make([]int, 0, len(cards))
	for _, c := range cards {
		ci := e.state.CreateCardInstance(c, side)
		p.Hand = append(p.Hand, ci)
		ids = append(ids, ci.ID)
	}
	return ids
}

// stack puts cards in side's deck, first card on top.
func stack(e *Engine, side Side, cards ...Card) {
	instances := make([]*CardInstance, 0, len(cards))
	for _, c := range cards {
		instances = append(instances, e.state.CreateCardInstance(c, side))
	}
	e.state.Player(side).Deck = NewDeck(instances)
}

// place puts cards straight onto side's board.
func place(e *Engine, side Side, row Row, cards ...Card) {
	for _, c := range cards {
		e.state.Player(side).Board.Place(e.state.CreateCardInstance(c, side), row)
	}
}

// bury puts cards straight into side's discard pile.
func bury(e *Engine, side Side, cards ...Card) {
	for _, c := range cards {
		e.state.Player(side).SendToDiscard(e.state.CreateCardInstance(c, side))
	}
}

func mustPlay(t *testing.T, e *Engine, side Side, id int, row Row) {
	t.Helper()
	if err := e.PlayCard(side, id, row); err != nil {
		t.Fatalf("%s play #%d: %v", side, id, err)
	}
}

func mustPass(t *testing.T, e *Engine, side Side) {
	t.Helper()
	if err := e.Pass(side); err != nil {
		t.Fatalf("%s pass: %v", side, err)
	}
}

func instances(cards ...Card) []*CardInstance {
	out := make([]*CardInstance, len(cards))
	for i, c := range cards {
		out[i] = &CardInstance{ID: i + 1, Card: c}
	}
	return out
}

func names(cards []CardInstance) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Card.Name
	}
	return out
}

func logEvents(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
}
