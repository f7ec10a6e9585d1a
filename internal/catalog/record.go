package catalog

import "github.com/peterkuimelis/gwentx/internal/game"

// Record is the JSON form of a card, used by the on-disk cache and the web
// API.
type Record struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Faction   string   `json:"faction"`
	Category  string   `json:"category"`
	Color     string   `json:"color"`
	Power     *int     `json:"power,omitempty"`
	Row       string   `json:"row,omitempty"`
	Effects   []string `json:"effects,omitempty"`
	Weather   string   `json:"weather,omitempty"`
	Ability   string   `json:"ability,omitempty"`
	Flavor    string   `json:"flavor,omitempty"`
	Rarity    string   `json:"rarity,omitempty"`
	Provision int      `json:"provision,omitempty"`
	ArtID     int      `json:"art_id,omitempty"`
}

// NewRecord converts a card to its JSON form.
func NewRecord(c game.Card) Record {
	r := Record{
		ID:        c.ID,
		Name:      c.Name,
		Faction:   c.Faction.String(),
		Category:  c.Category.String(),
		Color:     c.Color.String(),
		Ability:   c.Ability,
		Flavor:    c.Flavor,
		Rarity:    c.Rarity,
		Provision: c.Provision,
		ArtID:     c.ArtID,
	}
	if c.HasPower {
		power := c.Power
		r.Power = &power
	}
	if c.Row.Valid() {
		r.Row = c.Row.String()
	}
	for _, e := range c.Effects.List() {
		r.Effects = append(r.Effects, e.String())
	}
	if c.Weather != game.WeatherNone {
		r.Weather = c.Weather.String()
	}
	return r
}

// Card converts the record back. Unknown effect names are ignored.
func (r Record) Card() game.Card {
	c := game.Card{
		ID:        r.ID,
		Name:      r.Name,
		Faction:   game.ParseFaction(r.Faction),
		Category:  game.ParseCategory(r.Category),
		Color:     game.ParseColor(r.Color),
		Row:       game.ParseRow(r.Row),
		Weather:   game.ParseWeather(r.Weather),
		Ability:   r.Ability,
		Flavor:    r.Flavor,
		Rarity:    r.Rarity,
		Provision: r.Provision,
		ArtID:     r.ArtID,
	}
	if r.Power != nil {
		c.Power = *r.Power
		c.HasPower = true
	}
	for _, name := range r.Effects {
		if e, ok := game.EffectByName(name); ok {
			c.Effects |= game.Effects(e)
		}
	}
	return c
}

// Records converts a slice of cards.
func Records(cards []game.Card) []Record {
	out := make([]Record, len(cards))
	for i, c := range cards {
		out[i] = NewRecord(c)
	}
	return out
}
