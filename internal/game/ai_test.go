package game

import "testing"

func TestRandomChooser(t *testing.T) {
	knight := CardInstance{ID: 1, Card: unit("Knight", 5, RowMelee)}
	rowless := CardInstance{ID: 2, Card: unit("Drifter", 3, RowNone)}
	frost := CardInstance{ID: 3, Card: weatherCard("Biting Frost")}
	leader := CardInstance{ID: 4, Card: leaderCard("Foltest")}

	tests := []struct {
		name string
		hand []CardInstance
		rng  *fixedRand
		want Decision
	}{
		{"empty hand passes", nil, &fixedRand{f: 0.1}, Decision{Pass: true}},
		{"only leaders passes", []CardInstance{leader}, &fixedRand{f: 0.1}, Decision{Pass: true}},
		{"coin says pass", []CardInstance{knight}, &fixedRand{f: 0.9}, Decision{Pass: true}},
		{"unit keeps its row", []CardInstance{leader, knight, rowless, frost}, &fixedRand{idx: 0, f: 0.1}, Decision{CardID: 1, Row: RowMelee}},
		{"rowless unit gets random row", []CardInstance{leader, knight, rowless, frost}, &fixedRand{idx: 1, f: 0.1}, Decision{CardID: 2, Row: RowRanged}},
		{"weather has no row", []CardInstance{leader, knight, rowless, frost}, &fixedRand{idx: 2, f: 0.1}, Decision{CardID: 3, Row: RowNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRandomChooser(tt.rng, 0.8)
			got := c.Choose(ChooserView{Side: AI, Hand: tt.hand})
			if got != tt.want {
				t.Errorf("Choose = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRandomChooserChanceBoundary(t *testing.T) {
	knight := CardInstance{ID: 1, Card: unit("Knight", 5, RowMelee)}

	c := NewRandomChooser(&fixedRand{f: 0.79}, DefaultAIPlayPct)
	if d := c.Choose(ChooserView{Hand: []CardInstance{knight}}); d.Pass {
		t.Error("expected a play below the chance")
	}
	c = NewRandomChooser(&fixedRand{f: 0.8}, DefaultAIPlayPct)
	if d := c.Choose(ChooserView{Hand: []CardInstance{knight}}); !d.Pass {
		t.Error("expected a pass at the chance")
	}
}

func TestRandomChooserZeroChanceNeverPlays(t *testing.T) {
	knight := CardInstance{ID: 1, Card: unit("Knight", 5, RowMelee)}
	view := ChooserView{Side: AI, Hand: []CardInstance{knight}}

	for _, f := range []float64{0, 0.1, 0.5, 0.99} {
		d := NewRandomChooser(&fixedRand{f: f}, 0).Choose(view)
		if !d.Pass {
			t.Errorf("roll %v: Choose = %+v, want pass", f, d)
		}
	}
}

func TestChooserViewPlaysThroughEngine(t *testing.T) {
	e, _ := newTestEngine(t)
	give(e, Human, unit("Knight", 5, RowMelee))
	give(e, AI, unit("Archer", 4, RowRanged))
	mustPass(t, e, Human)

	view := e.ChooserView(AI)
	if !view.OpponentPassed || len(view.Hand) != 1 || view.Round != 1 {
		t.Fatalf("view = %+v", view)
	}

	d := NewRandomChooser(&fixedRand{f: 0.1}, 0.8).Choose(view)
	if err := e.Apply(AI, d.Move()); err != nil {
		t.Fatalf("apply %+v: %v", d, err)
	}
	if e.CalculateAIScore() != 4 {
		t.Errorf("AI score = %d, want 4", e.CalculateAIScore())
	}
}
