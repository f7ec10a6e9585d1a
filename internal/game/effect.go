package game

import (
	"regexp"
	"strings"
)

// Effect is one generic ability tag derived from a card's ability text.
type Effect uint8

const (
	EffectMedic Effect = 1 << iota
	EffectSpy
	EffectTightBond
	EffectHorn
	EffectScorch
	EffectAssembly
)

var effectOrder = []Effect{EffectMedic, EffectSpy, EffectTightBond, EffectHorn, EffectScorch, EffectAssembly}

func (e Effect) String() string {
	switch e {
	case EffectMedic:
		return "medic"
	case EffectSpy:
		return "spy"
	case EffectTightBond:
		return "tight_bond"
	case EffectHorn:
		return "horn"
	case EffectScorch:
		return "scorch"
	case EffectAssembly:
		return "assembly"
	default:
		return "unknown"
	}
}

// EffectByName is the inverse of Effect.String.
func EffectByName(name string) (Effect, bool) {
	for _, e := range effectOrder {
		if e.String() == name {
			return e, true
		}
	}
	return 0, false
}

// EffectSet is a bitset of Effect tags.
type EffectSet uint8

// Effects builds a set from individual tags.
func Effects(tags ...Effect) EffectSet {
	var s EffectSet
	for _, t := range tags {
		s |= EffectSet(t)
	}
	return s
}

func (s EffectSet) Has(e Effect) bool { return s&EffectSet(e) != 0 }
func (s EffectSet) Empty() bool       { return s == 0 }

// List returns the tags in canonical order.
func (s EffectSet) List() []Effect {
	var out []Effect
	for _, e := range effectOrder {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s EffectSet) String() string {
	names := make([]string, 0, len(effectOrder))
	for _, e := range s.List() {
		names = append(names, e.String())
	}
	return strings.Join(names, "+")
}

// effectKeywords maps ability-text keywords (English and Spanish catalog
// locales) to tags.
var effectKeywords = []struct {
	keyword string
	effect  Effect
}{
	{"medic", EffectMedic},
	{"médico", EffectMedic},
	{"spy", EffectSpy},
	{"espía", EffectSpy},
	{"assembly", EffectAssembly},
	{"muster", EffectAssembly},
	{"asamblea", EffectAssembly},
	{"tight bond", EffectTightBond},
	{"vínculo estrecho", EffectTightBond},
	{"horn", EffectHorn},
	{"cuerno", EffectHorn},
	{"scorch", EffectScorch},
	{"abrasión", EffectScorch},
}

type effectPattern struct {
	re     *regexp.Regexp
	effect Effect
}

// effectPatterns match whole keywords only, with an optional plural, so
// "Thorns" is not a horn and "Espy" is not a spy.
var effectPatterns = func() []effectPattern {
	out := make([]effectPattern, len(effectKeywords))
	for i, kw := range effectKeywords {
		out[i] = effectPattern{
			re:     regexp.MustCompile(`\b` + regexp.QuoteMeta(kw.keyword) + `(?:e?s)?\b`),
			effect: kw.effect,
		}
	}
	return out
}()

// ParseEffects derives the effect tags implied by ability text. It runs once
// per card when the catalog is loaded.
func ParseEffects(ability string) EffectSet {
	if ability == "" {
		return 0
	}
	text := strings.ToLower(ability)
	var s EffectSet
	for _, p := range effectPatterns {
		if p.re.MatchString(text) {
			s |= EffectSet(p.effect)
		}
	}
	return s
}

// Weather is the kind of a weather card.
type Weather int

const (
	WeatherNone Weather = iota
	BitingFrost
	ImpenetrableFog
	TorrentialRain
	ClearWeather
)

func (w Weather) String() string {
	switch w {
	case BitingFrost:
		return "Biting Frost"
	case ImpenetrableFog:
		return "Impenetrable Fog"
	case TorrentialRain:
		return "Torrential Rain"
	case ClearWeather:
		return "Clear Weather"
	default:
		return "None"
	}
}

// Row returns the row a weather kind flattens, RowNone for Clear Weather.
func (w Weather) Row() Row {
	switch w {
	case BitingFrost:
		return RowMelee
	case ImpenetrableFog:
		return RowRanged
	case TorrentialRain:
		return RowSiege
	default:
		return RowNone
	}
}

// ParseWeather resolves a weather card's kind from its name. Separators are
// ignored so "biting-frost" and "Biting Frost" match.
func ParseWeather(name string) Weather {
	key := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(name)))
	switch key {
	case "biting frost", "escarcha mordaz":
		return BitingFrost
	case "impenetrable fog", "niebla impenetrable":
		return ImpenetrableFog
	case "torrential rain", "lluvia torrencial":
		return TorrentialRain
	case "clear weather", "cielo despejado":
		return ClearWeather
	default:
		return WeatherNone
	}
}
