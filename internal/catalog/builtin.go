package catalog

import "github.com/peterkuimelis/gwentx/internal/game"

// builtinEntry is one row of the compiled-in card table.
type builtinEntry struct {
	id      int
	name    string
	faction game.Faction
	cat     game.Category
	color   game.Color
	power   int
	row     game.Row
	ability string
}

const (
	nr      = game.FactionNorthernRealms
	nilf    = game.FactionNilfgaard
	neutral = game.FactionNeutral

	unit    = game.CategoryUnit
	special = game.CategorySpecial
	weather = game.CategoryWeather
	leader  = game.CategoryLeader

	bronze = game.Bronze
	gold   = game.Gold

	melee  = game.RowMelee
	ranged = game.RowRanged
	siege  = game.RowSiege
	noRow  = game.RowNone
)

// builtinCards is a classic starter set that lets the binaries and tests run
// without network access.
var builtinCards = []builtinEntry{
	// Northern Realms
	{101, "Blue Stripes Commando", nr, unit, bronze, 4, melee, "Tight Bond: doubles the strength of identical cards in the same row."},
	{102, "Poor Infantry", nr, unit, bronze, 1, melee, "Tight Bond: doubles the strength of identical cards in the same row."},
	{103, "Redanian Foot Soldier", nr, unit, bronze, 1, melee, ""},
	{104, "Yarpen Zigrin", nr, unit, bronze, 2, melee, ""},
	{105, "Sigismund Dijkstra", nr, unit, bronze, 4, melee, "Spy: place on your opponent's battlefield and draw 2 cards."},
	{106, "Prince Stennis", nr, unit, bronze, 5, melee, "Spy: place on your opponent's battlefield and draw 2 cards."},
	{107, "Siegfried of Denesle", nr, unit, bronze, 5, melee, ""},
	{108, "Ves", nr, unit, bronze, 5, melee, ""},
	{109, "Crinfrid Reavers Dragon Hunter", nr, unit, bronze, 5, ranged, "Tight Bond: doubles the strength of identical cards in the same row."},
	{110, "Dethmold", nr, unit, bronze, 6, ranged, ""},
	{111, "Keira Metz", nr, unit, bronze, 5, ranged, ""},
	{112, "Sabrina Glevissig", nr, unit, bronze, 4, ranged, ""},
	{113, "Sheldon Skaggs", nr, unit, bronze, 4, ranged, ""},
	{114, "Sile de Tansarville", nr, unit, bronze, 5, ranged, ""},
	{115, "Ballista", nr, unit, bronze, 6, siege, ""},
	{116, "Catapult", nr, unit, bronze, 8, siege, "Tight Bond: doubles the strength of identical cards in the same row."},
	{117, "Kaedweni Siege Expert", nr, unit, bronze, 1, siege, "Commander's Horn: doubles the strength of other units in its row."},
	{118, "Dun Banner Medic", nr, unit, bronze, 5, siege, "Medic: revive a unit card from your discard pile."},
	{119, "Siege Tower", nr, unit, bronze, 6, siege, ""},
	{120, "Trebuchet", nr, unit, bronze, 6, siege, ""},
	{121, "Thaler", nr, unit, bronze, 1, siege, "Spy: place on your opponent's battlefield and draw 2 cards."},
	{122, "Vernon Roche", nr, unit, gold, 10, melee, "Hero: not affected by special cards or abilities."},
	{123, "John Natalis", nr, unit, gold, 10, melee, "Hero: not affected by special cards or abilities."},
	{124, "Philippa Eilhart", nr, unit, gold, 10, ranged, "Hero: not affected by special cards or abilities."},
	{125, "Foltest: King of Temeria", nr, leader, gold, 0, noRow, "Pick an Impenetrable Fog card from your deck and play it instantly."},

	// Nilfgaard
	{201, "Impera Brigade Guard", nilf, unit, bronze, 3, melee, "Tight Bond: doubles the strength of identical cards in the same row."},
	{202, "Nausicaa Cavalry Rider", nilf, unit, bronze, 2, melee, "Tight Bond: doubles the strength of identical cards in the same row."},
	{203, "Young Emissary", nilf, unit, bronze, 5, melee, "Tight Bond: doubles the strength of identical cards in the same row."},
	{204, "Rainfarn", nilf, unit, bronze, 4, melee, ""},
	{205, "Stefan Skellen", nilf, unit, bronze, 9, melee, "Spy: place on your opponent's battlefield and draw 2 cards."},
	{206, "Vattier de Rideaux", nilf, unit, bronze, 4, melee, "Spy: place on your opponent's battlefield and draw 2 cards."},
	{207, "Black Infantry Archer", nilf, unit, bronze, 10, ranged, ""},
	{208, "Etolian Auxiliary Archers", nilf, unit, bronze, 1, ranged, "Medic: revive a unit card from your discard pile."},
	{209, "Albrich", nilf, unit, bronze, 2, ranged, ""},
	{210, "Cynthia", nilf, unit, bronze, 4, ranged, ""},
	{211, "Heavy Zerrikanian Fire Scorpion", nilf, unit, bronze, 10, siege, ""},
	{212, "Zerrikanian Fire Scorpion", nilf, unit, bronze, 5, siege, ""},
	{213, "Siege Engineer", nilf, unit, bronze, 6, siege, ""},
	{214, "Rotten Mangonel", nilf, unit, bronze, 3, siege, ""},
	{215, "Letho of Gulet", nilf, unit, gold, 10, melee, "Hero: not affected by special cards or abilities."},
	{216, "Menno Coehoorn", nilf, unit, gold, 10, melee, "Hero. Medic: revive a unit card from your discard pile."},
	{217, "Tibor Eggebracht", nilf, unit, gold, 10, ranged, "Hero: not affected by special cards or abilities."},
	{218, "Morvran Voorhis", nilf, unit, gold, 10, siege, "Hero: not affected by special cards or abilities."},
	{219, "Emhyr var Emreis: His Imperial Majesty", nilf, leader, gold, 0, noRow, "Pick a Torrential Rain card from your deck and play it instantly."},

	// Neutral
	{301, "Geralt of Rivia", neutral, unit, gold, 15, melee, "Hero: not affected by special cards or abilities."},
	{302, "Cirilla Fiona Elen Riannon", neutral, unit, gold, 15, melee, "Hero: not affected by special cards or abilities."},
	{303, "Yennefer of Vengerberg", neutral, unit, gold, 7, ranged, "Hero. Medic: revive a unit card from your discard pile."},
	{304, "Triss Merigold", neutral, unit, gold, 7, melee, "Hero: not affected by special cards or abilities."},
	{305, "Avallac'h", neutral, unit, gold, 0, melee, "Hero. Spy: place on your opponent's battlefield and draw 2 cards."},
	{306, "Villentretenmerth", neutral, unit, bronze, 7, melee, "Scorch: destroy the strongest unit cards on the battlefield."},
	{307, "Dandelion", neutral, unit, bronze, 2, melee, "Commander's Horn: doubles the strength of other units in its row."},
	{308, "Zoltan Chivay", neutral, unit, bronze, 5, melee, ""},
	{309, "Emiel Regis Rohellec Terzieff", neutral, unit, bronze, 5, melee, ""},
	{310, "Vesemir", neutral, unit, bronze, 6, melee, ""},
	{311, "Olgierd von Everec", neutral, unit, bronze, 6, melee, ""},
	{312, "Gaunter O'Dimm", neutral, unit, bronze, 2, siege, "Muster: find cards with the same name in your deck and play them."},
	{313, "Gaunter O'Dimm: Darkness", neutral, unit, bronze, 4, ranged, "Muster: find cards with the same name in your deck and play them."},

	// Weather
	{401, "Biting Frost", neutral, weather, bronze, 0, noRow, "Sets the strength of all melee units to 1 for both players."},
	{402, "Impenetrable Fog", neutral, weather, bronze, 0, noRow, "Sets the strength of all ranged units to 1 for both players."},
	{403, "Torrential Rain", neutral, weather, bronze, 0, noRow, "Sets the strength of all siege units to 1 for both players."},
	{404, "Clear Weather", neutral, weather, bronze, 0, noRow, "Removes all weather effects in play."},

	// Special
	{501, "Commander's Horn", neutral, special, bronze, 0, noRow, "Doubles the strength of all unit cards in a row."},
	{502, "Scorch", neutral, special, bronze, 0, noRow, "Discard after playing. Kills the strongest card(s) on the battlefield."},
	{503, "Decoy", neutral, special, bronze, 0, noRow, "Swap with a card on the battlefield to return it to your hand."},
}

func (b builtinEntry) card() game.Card {
	c := game.Card{
		ID:       b.id,
		Name:     b.name,
		Faction:  b.faction,
		Category: b.cat,
		Color:    b.color,
		Row:      b.row,
		Ability:  b.ability,
		Rarity:   "common",
		ArtID:    b.id,
	}
	if b.cat == game.CategoryUnit || b.cat == game.CategoryLeader {
		c.Power = b.power
		c.HasPower = true
	}
	if b.color == game.Gold {
		c.Rarity = "legendary"
	}
	// Special and weather cards carry generic text that would otherwise
	// parse as unit tags.
	if b.cat == game.CategoryUnit {
		c.Effects = game.ParseEffects(b.ability)
	}
	if b.cat == game.CategoryWeather {
		c.Weather = game.ParseWeather(b.name)
	}
	return c
}

// Builtin returns the compiled-in starter catalog.
func Builtin() *Catalog {
	cards := make([]game.Card, 0, len(builtinCards))
	for _, b := range builtinCards {
		cards = append(cards, b.card())
	}
	return New(cards)
}
