package game

// ChooserView is what an AI policy may see when choosing a move.
type ChooserView struct {
	Side           Side
	Hand           []CardInstance
	Weather        []Row
	Round          int
	OwnScore       int
	OpponentScore  int
	OpponentPassed bool
}

// Decision is a policy's answer: pass, or play CardID to Row.
type Decision struct {
	Pass   bool
	CardID int
	Row    Row
}

// Move converts the decision into an engine command.
func (d Decision) Move() Move {
	if d.Pass {
		return Move{Pass: true}
	}
	return Move{CardID: d.CardID, Row: d.Row}
}

// Chooser picks a move for the AI side.
type Chooser interface {
	Choose(view ChooserView) Decision
}

// ChooserView builds the policy view for side.
func (e *Engine) ChooserView(side Side) ChooserView {
	return e.Snapshot().ChooserView(side)
}

// ChooserView builds the policy view for side from a snapshot.
func (s Snapshot) ChooserView(side Side) ChooserView {
	me, opp := s.Players[side], s.Players[side.Opponent()]
	return ChooserView{
		Side:           side,
		Hand:           me.Hand,
		Weather:        s.Weather,
		Round:          s.Round,
		OwnScore:       me.Score,
		OpponentScore:  opp.Score,
		OpponentPassed: opp.Passed,
	}
}

// RandomChooser plays a uniformly random playable card with probability
// PlayChance and passes otherwise. A PlayChance of 0 never plays.
type RandomChooser struct {
	Rand       Rand
	PlayChance float64
}

func NewRandomChooser(rng Rand, playChance float64) *RandomChooser {
	return &RandomChooser{Rand: rng, PlayChance: playChance}
}

func (c *RandomChooser) Choose(view ChooserView) Decision {
	var playable []CardInstance
	for _, ci := range view.Hand {
		if ci.Card.IsPlayable() {
			playable = append(playable, ci)
		}
	}
	if len(playable) == 0 {
		return Decision{Pass: true}
	}

	if c.Rand.Float64() >= c.PlayChance {
		return Decision{Pass: true}
	}

	pick := playable[c.Rand.Intn(len(playable))]
	row := RowNone
	if pick.Card.IsUnit() {
		row = pick.Card.Row
		if !row.Valid() {
			row = Rows[c.Rand.Intn(len(Rows))]
		}
	}
	return Decision{CardID: pick.ID, Row: row}
}
