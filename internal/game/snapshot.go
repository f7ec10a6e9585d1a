package game

// PlayerSnapshot is a read-only copy of one side's state.
type PlayerSnapshot struct {
	Side      Side
	Hand      []CardInstance
	Board     [3][]CardInstance // melee, ranged, siege
	Discard   []CardInstance
	DeckSize  int
	Passed    bool
	Gems      int
	Score     int
	RowScores [3]int
}

// Row returns the cards in r.
func (ps PlayerSnapshot) Row(r Row) []CardInstance {
	if !r.Valid() {
		return nil
	}
	return ps.Board[r.index()]
}

// Snapshot is a deep copy of a match, safe to hold while the engine moves on.
type Snapshot struct {
	Phase   Phase
	Round   int
	Turn    Side
	Weather []Row
	Players [2]PlayerSnapshot
	History []RoundResult
	Over    bool
	Outcome Outcome
}

// Player returns the snapshot for a side.
func (s Snapshot) Player(side Side) PlayerSnapshot {
	return s.Players[side]
}

// IsWeathered reports whether r was under weather when the snapshot was taken.
func (s Snapshot) IsWeathered(r Row) bool {
	for _, w := range s.Weather {
		if w == r {
			return true
		}
	}
	return false
}

// Snapshot copies the full match state. Before StartGame it only carries
// PhaseNotStarted.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{Phase: e.Phase()}
	if e.state == nil {
		return snap
	}
	gs := e.state
	snap.Round = gs.Round
	snap.Turn = gs.Turn
	snap.Weather = e.Weather()
	snap.History = e.History()
	snap.Over = gs.Over
	snap.Outcome = gs.Outcome

	for _, side := range []Side{Human, AI} {
		p := gs.Player(side)
		ps := PlayerSnapshot{
			Side:     side,
			Hand:     e.Hand(side),
			Board:    e.Board(side),
			Discard:  e.Discard(side),
			DeckSize: p.Deck.Len(),
			Passed:   p.Passed,
			Gems:     p.Gems,
			Score:    gs.Score(side),
		}
		for i, r := range Rows {
			ps.RowScores[i] = e.RowScore(side, r)
		}
		snap.Players[side] = ps
	}
	return snap
}
