package game

import (
	"strings"

	"github.com/peterkuimelis/gwentx/internal/log"
)

// playUnit places a unit and resolves its tags, medic before scorch.
func (e *Engine) playUnit(side Side, card *CardInstance, row Row) {
	gs := e.state
	p := gs.Player(side)
	p.Board.Place(card, row)
	e.log(log.NewPlayUnitEvent(gs.Round, int(side), card.Card.Name, card.Card.BasePower(), row.String()))

	if card.Card.Effects.Has(EffectMedic) {
		e.resolveMedic(side, card, row)
	}
	if card.Card.Effects.Has(EffectScorch) {
		e.resolveScorch()
	}
}

// resolveMedic revives a random non-gold unit from side's discard pile onto row.
func (e *Engine) resolveMedic(side Side, medic *CardInstance, row Row) {
	p := e.state.Player(side)
	var eligible []*CardInstance
	for _, c := range p.Discard {
		if c.Card.IsUnit() && !c.Card.IsGold() {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return
	}
	revived := eligible[e.rng.Intn(len(eligible))]
	p.RemoveFromDiscard(revived)
	p.Board.Place(revived, row)
	e.log(log.NewMedicReviveEvent(e.state.Round, int(side), medic.Card.Name, revived.Card.Name, row.String()))
}

// resolveScorch destroys every non-gold unit on either board whose base
// power equals the highest base power on the table. Gold units count toward
// the maximum but survive.
func (e *Engine) resolveScorch() {
	gs := e.state
	var all []*CardInstance
	for _, side := range []Side{Human, AI} {
		all = append(all, gs.Player(side).Board.Units()...)
	}
	if len(all) == 0 {
		return
	}

	maxPower := all[0].Card.BasePower()
	for _, c := range all[1:] {
		if pw := c.Card.BasePower(); pw > maxPower {
			maxPower = pw
		}
	}

	for _, c := range all {
		if c.Card.IsGold() || c.Card.BasePower() != maxPower {
			continue
		}
		owner := gs.Player(c.Owner)
		owner.Board.Remove(c)
		owner.SendToDiscard(c)
		e.log(log.NewScorchDestroyEvent(gs.Round, int(c.Owner), c.Card.Name, maxPower))
	}
}

// playWeather applies a weather card to the shared weather set and discards it.
func (e *Engine) playWeather(side Side, card *CardInstance) {
	gs := e.state
	switch w := card.Card.Weather; w {
	case ClearWeather:
		clear(gs.WeatherRows)
		e.log(log.NewWeatherClearedEvent(gs.Round, int(side), card.Card.Name))
	case BitingFrost, ImpenetrableFog, TorrentialRain:
		gs.WeatherRows[w.Row()] = true
		e.log(log.NewPlayWeatherEvent(gs.Round, int(side), card.Card.Name, w.Row().String()))
	default:
		e.log(log.NewPlaySpecialEvent(gs.Round, int(side), card.Card.Name, "unknown weather, no effect"))
	}
	e.discard(card, "played")
}

// specialEffects resolves special cards by lower-cased name. Commander's
// Horn needs a target row, which a special card does not carry, so it is
// not listed.
var specialEffects = map[string]struct {
	desc    string
	resolve func(e *Engine, side Side)
}{
	"scorch":   {"scorch", func(e *Engine, _ Side) { e.resolveScorch() }},
	"abrasión": {"scorch", func(e *Engine, _ Side) { e.resolveScorch() }},
}

// playSpecial resolves a special card by name and discards it. Unknown
// names have no effect.
func (e *Engine) playSpecial(side Side, card *CardInstance) {
	gs := e.state
	fx, ok := specialEffects[strings.ToLower(strings.TrimSpace(card.Card.Name))]
	if !ok {
		e.log(log.NewPlaySpecialEvent(gs.Round, int(side), card.Card.Name, "no effect"))
		e.discard(card, "played")
		return
	}
	e.log(log.NewPlaySpecialEvent(gs.Round, int(side), card.Card.Name, fx.desc))
	fx.resolve(e, side)
	e.discard(card, "played")
}

// discard moves card to its owner's discard pile.
func (e *Engine) discard(card *CardInstance, reason string) {
	e.state.Player(card.Owner).SendToDiscard(card)
	e.log(log.NewSendToDiscardEvent(e.state.Round, int(card.Owner), card.Card.Name, reason))
}
