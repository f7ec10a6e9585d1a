package catalog

import (
	"fmt"

	"github.com/peterkuimelis/gwentx/internal/game"
)

// Stats summarizes a deck's composition.
type Stats struct {
	TotalCards   int `json:"total_cards"`
	TotalPower   int `json:"total_power"`
	UnitCards    int `json:"unit_cards"`
	SpecialCards int `json:"special_cards"`
	WeatherCards int `json:"weather_cards"`
	GoldCards    int `json:"gold_cards"`
}

// ComputeStats counts cards by kind and sums printed power.
func ComputeStats(cards []game.Card) Stats {
	s := Stats{TotalCards: len(cards)}
	for _, c := range cards {
		s.TotalPower += c.BasePower()
		switch {
		case c.IsUnit():
			s.UnitCards++
		case c.IsSpecial():
			s.SpecialCards++
		case c.IsWeather():
			s.WeatherCards++
		}
		if c.IsGold() {
			s.GoldCards++
		}
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("%d cards, %d power (%d units, %d special, %d weather, %d gold)",
		s.TotalCards, s.TotalPower, s.UnitCards, s.SpecialCards, s.WeatherCards, s.GoldCards)
}
