package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

// Side identifies one of the two players. The human always sits at index 0.
type Side int

const (
	Human Side = iota
	AI
)

func (s Side) String() string {
	switch s {
	case Human:
		return "Human"
	case AI:
		return "AI"
	default:
		return "Unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

func (s Side) valid() bool {
	return s == Human || s == AI
}

// Row is one of the three board lanes. RowNone means "no row": non-unit
// cards, or "derive the row from the card" when passed to PlayCard.
type Row int

const (
	RowNone Row = iota
	RowMelee
	RowRanged
	RowSiege
)

// Rows lists the board rows in display order.
var Rows = [3]Row{RowMelee, RowRanged, RowSiege}

func (r Row) String() string {
	switch r {
	case RowMelee:
		return "melee"
	case RowRanged:
		return "ranged"
	case RowSiege:
		return "siege"
	default:
		return "none"
	}
}

// Valid reports whether r names a board row.
func (r Row) Valid() bool {
	return r >= RowMelee && r <= RowSiege
}

// index maps a valid row to 0..2.
func (r Row) index() int {
	return int(r) - 1
}

// RowForReach converts catalog reach (0=melee, 1=ranged, 2=siege) to a Row.
func RowForReach(reach int) Row {
	switch reach {
	case 0:
		return RowMelee
	case 1:
		return RowRanged
	case 2:
		return RowSiege
	default:
		return RowNone
	}
}

// ParseRow accepts "melee", "ranged", "siege" (any case) and returns RowNone otherwise.
func ParseRow(s string) Row {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "melee":
		return RowMelee
	case "ranged":
		return RowRanged
	case "siege":
		return RowSiege
	default:
		return RowNone
	}
}

type Category int

const (
	CategoryUnknown Category = iota
	CategoryUnit
	CategorySpecial
	CategoryWeather
	CategoryLeader
)

func (c Category) String() string {
	switch c {
	case CategoryUnit:
		return "Unit"
	case CategorySpecial:
		return "Special"
	case CategoryWeather:
		return "Weather"
	case CategoryLeader:
		return "Leader"
	default:
		return "Unknown"
	}
}

// ParseCategory maps the catalog "type" attribute to a Category.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unit":
		return CategoryUnit
	case "special", "spell", "artifact", "stratagem":
		return CategorySpecial
	case "weather":
		return CategoryWeather
	case "leader":
		return CategoryLeader
	default:
		return CategoryUnknown
	}
}

type Color int

const (
	Bronze Color = iota
	Gold
)

func (c Color) String() string {
	if c == Gold {
		return "gold"
	}
	return "bronze"
}

// ParseColor treats "gold" (any case) as Gold and everything else as Bronze.
func ParseColor(s string) Color {
	if strings.EqualFold(strings.TrimSpace(s), "gold") {
		return Gold
	}
	return Bronze
}

type Faction int

const (
	FactionNeutral Faction = iota
	FactionNorthernRealms
	FactionNilfgaard
	FactionScoiatael
	FactionMonsters
	FactionSkellige
	FactionSyndicate
)

var factionNames = map[Faction]string{
	FactionNeutral:        "neutral",
	FactionNorthernRealms: "northernrealms",
	FactionNilfgaard:      "nilfgaard",
	FactionScoiatael:      "scoiatael",
	FactionMonsters:       "monster",
	FactionSkellige:       "skellige",
	FactionSyndicate:      "syndicate",
}

func (f Faction) String() string {
	if name, ok := factionNames[f]; ok {
		return name
	}
	return "neutral"
}

// ParseFaction normalizes catalog faction names ("Northern Realms",
// "northernrealms", "Monsters"...). Unknown names map to FactionNeutral.
func ParseFaction(s string) Faction {
	key := strings.ToLower(strings.NewReplacer(" ", "", "'", "", "-", "").Replace(s))
	switch key {
	case "northernrealms":
		return FactionNorthernRealms
	case "nilfgaard":
		return FactionNilfgaard
	case "scoiatael", "scoia":
		return FactionScoiatael
	case "monster", "monsters":
		return FactionMonsters
	case "skellige":
		return FactionSkellige
	case "syndicate":
		return FactionSyndicate
	default:
		return FactionNeutral
	}
}

// Phase is the engine's externally visible state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseAwaitingHumanPlay
	PhaseAwaitingAIPlay
	PhaseRoundOver
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingHumanPlay:
		return "Awaiting Human Play"
	case PhaseAwaitingAIPlay:
		return "Awaiting AI Play"
	case PhaseRoundOver:
		return "Round Over"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "Not Started"
	}
}

// --- Card definition (static, from the catalog) ---

type Card struct {
	ID       int // catalog identity
	Name     string
	Faction  Faction
	Category Category
	Color    Color
	Power    int
	HasPower bool // false for cards that never score (specials, weather)
	Row      Row  // RowNone unless Category == CategoryUnit
	Effects  EffectSet
	Weather  Weather

	Ability   string
	Flavor    string
	Rarity    string
	Provision int
	ArtID     int
}

func (c Card) String() string {
	return c.Name
}

func (c Card) IsUnit() bool    { return c.Category == CategoryUnit }
func (c Card) IsSpecial() bool { return c.Category == CategorySpecial }
func (c Card) IsWeather() bool { return c.Category == CategoryWeather }
func (c Card) IsLeader() bool  { return c.Category == CategoryLeader }
func (c Card) IsGold() bool    { return c.Color == Gold }

// IsPlayable reports whether the card can ever leave the hand through PlayCard.
func (c Card) IsPlayable() bool {
	return c.IsUnit() || c.IsSpecial() || c.IsWeather()
}

// HasZeroPower is true for units that carry an explicit power of 0. Such
// cards are removed when a deck is prepared.
func (c Card) HasZeroPower() bool {
	return c.IsUnit() && c.HasPower && c.Power == 0
}

// BasePower returns the printed power, 0 when the card has none.
func (c Card) BasePower() int {
	if !c.HasPower {
		return 0
	}
	return c.Power
}

// WithRow returns a copy of the card assigned to a different row.
func (c Card) WithRow(r Row) Card {
	c.Row = r
	return c
}

// --- CardInstance (runtime card in deck/hand/board/discard) ---

type CardInstance struct {
	ID    int // unique within a match
	Owner Side
	Card  Card
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.Card.Name
}

// DisplayString returns a description for the event log.
func (ci *CardInstance) DisplayString() string {
	if ci == nil {
		return "(empty)"
	}
	c := ci.Card
	switch {
	case c.IsUnit():
		s := fmt.Sprintf("%s (%d, %s", c.Name, c.BasePower(), c.Row)
		if c.IsGold() {
			s += ", gold"
		}
		if !c.Effects.Empty() {
			s += ", " + c.Effects.String()
		}
		return s + ")"
	case c.IsWeather():
		return fmt.Sprintf("%s (weather)", c.Name)
	default:
		return fmt.Sprintf("%s (%s)", c.Name, strings.ToLower(c.Category.String()))
	}
}

// --- Moves ---

// Move is one legal command for a side: play a card to a row, or pass.
type Move struct {
	Pass   bool
	CardID int
	Row    Row
	Desc   string
}

func (m Move) String() string {
	if m.Desc != "" {
		return m.Desc
	}
	if m.Pass {
		return "Pass"
	}
	return fmt.Sprintf("Play card %d", m.CardID)
}
