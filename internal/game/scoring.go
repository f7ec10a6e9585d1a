package game

// Score returns side's current total across all three rows.
func (e *Engine) Score(side Side) int {
	if e.state == nil || !side.valid() {
		return 0
	}
	return e.state.Score(side)
}

// CalculatePlayerScore returns the human's score.
func (e *Engine) CalculatePlayerScore() int {
	return e.Score(Human)
}

// CalculateAIScore returns the AI's score.
func (e *Engine) CalculateAIScore() int {
	return e.Score(AI)
}

// RowScore returns side's score for a single row.
func (e *Engine) RowScore(side Side, r Row) int {
	if e.state == nil || !side.valid() || !r.Valid() {
		return 0
	}
	return RowScore(e.state.Player(side).Board.Row(r), e.state.IsWeathered(r))
}

// Score sums side's row scores.
func (gs *GameState) Score(side Side) int {
	b := &gs.Player(side).Board
	total := 0
	for _, r := range Rows {
		total += RowScore(b.Row(r), gs.IsWeathered(r))
	}
	return total
}

// RowScore scores one row.
//
// Under weather, gold units keep their power and every other unit is worth 1.
// Otherwise same-named units form groups scoring basePower*multiplier*size,
// where multiplier is the group size for a tight-bonded group of two or more.
// If any unit in the row has horn, the row instead scores twice the power of
// its non-horn units plus the power of its horn units.
func RowScore(cards []*CardInstance, weathered bool) int {
	if weathered {
		total := 0
		for _, c := range cards {
			if c.Card.IsGold() {
				total += c.Card.BasePower()
			} else {
				total++
			}
		}
		return total
	}

	var hasHorn bool
	var hornPower, plainPower int
	for _, c := range cards {
		if c.Card.Effects.Has(EffectHorn) {
			hasHorn = true
			hornPower += c.Card.BasePower()
		} else {
			plainPower += c.Card.BasePower()
		}
	}
	if hasHorn {
		return plainPower*2 + hornPower
	}

	total := 0
	for _, g := range groupByName(cards) {
		size := len(g)
		multiplier := 1
		if size > 1 && g[0].Card.Effects.Has(EffectTightBond) {
			multiplier = size
		}
		total += g[0].Card.BasePower() * multiplier * size
	}
	return total
}

// groupByName groups cards by name, groups ordered by first appearance.
func groupByName(cards []*CardInstance) [][]*CardInstance {
	index := make(map[string]int)
	var groups [][]*CardInstance
	for _, c := range cards {
		i, ok := index[c.Card.Name]
		if !ok {
			i = len(groups)
			index[c.Card.Name] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	return groups
}
