// Package catalog loads card definitions and turns them into game.Card
// values. Classification (category, color, row, effect tags, weather kind)
// happens here, once, when a card enters the catalog.
package catalog

import (
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/peterkuimelis/gwentx/internal/game"
)

// Codespace groups the catalog's registered errors.
const Codespace = "catalog"

var (
	ErrUnknownCard  = errorsmod.Register(Codespace, 2, "unknown card")
	ErrDeckNotFound = errorsmod.Register(Codespace, 3, "deck not found")
	ErrEmptyCatalog = errorsmod.Register(Codespace, 4, "empty catalog")
)

// Catalog is an immutable, ordered set of card definitions.
type Catalog struct {
	cards  []game.Card
	byID   map[int]int
	byName map[string]int
}

// New builds a catalog. Later cards with an already seen ID are dropped.
func New(cards []game.Card) *Catalog {
	c := &Catalog{
		byID:   make(map[int]int, len(cards)),
		byName: make(map[string]int, len(cards)),
	}
	for _, card := range cards {
		if _, dup := c.byID[card.ID]; dup {
			continue
		}
		i := len(c.cards)
		c.cards = append(c.cards, card)
		c.byID[card.ID] = i
		key := nameKey(card.Name)
		if _, ok := c.byName[key]; !ok {
			c.byName[key] = i
		}
	}
	return c
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Cards returns every card in catalog order.
func (c *Catalog) Cards() []game.Card {
	return append([]game.Card(nil), c.cards...)
}

// ByID looks a card up by catalog ID.
func (c *Catalog) ByID(id int) (game.Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return game.Card{}, false
	}
	return c.cards[i], true
}

// ByName looks a card up by name, ignoring case.
func (c *Catalog) ByName(name string) (game.Card, bool) {
	i, ok := c.byName[nameKey(name)]
	if !ok {
		return game.Card{}, false
	}
	return c.cards[i], true
}

// Lookup is ByName returning ErrUnknownCard on a miss.
func (c *Catalog) Lookup(name string) (game.Card, error) {
	card, ok := c.ByName(name)
	if !ok {
		return game.Card{}, errorsmod.Wrapf(ErrUnknownCard, "%q", name)
	}
	return card, nil
}

// Filter returns the cards matching pred, in catalog order.
func (c *Catalog) Filter(pred func(game.Card) bool) []game.Card {
	var out []game.Card
	for _, card := range c.cards {
		if pred(card) {
			out = append(out, card)
		}
	}
	return out
}

// ByFaction returns the faction's cards plus neutral ones.
func (c *Catalog) ByFaction(f game.Faction) []game.Card {
	return c.Filter(func(card game.Card) bool {
		return card.Faction == f || card.Faction == game.FactionNeutral
	})
}

// RandomDeck draws size playable cards uniformly from the catalog, with
// duplicates allowed.
func (c *Catalog) RandomDeck(rng game.Rand, size int) ([]game.Card, error) {
	playable := c.Filter(game.Card.IsPlayable)
	if len(playable) == 0 {
		return nil, errorsmod.Wrap(ErrEmptyCatalog, "no playable cards")
	}
	deck := make([]game.Card, size)
	for i := range deck {
		deck[i] = playable[rng.Intn(len(playable))]
	}
	return deck, nil
}
