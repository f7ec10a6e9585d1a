package catalog

import (
	"fmt"
	"os"

	errorsmod "cosmossdk.io/errors"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/gwentx/internal/game"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks" json:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name    string      `yaml:"name" json:"name"`
	Faction string      `yaml:"faction,omitempty" json:"faction,omitempty"`
	Cards   []CardEntry `yaml:"cards" json:"cards"`
}

// CardEntry names a card (or its catalog ID) and how many copies to include.
// A missing count means one copy.
type CardEntry struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	ID    int    `yaml:"id,omitempty" json:"id,omitempty"`
	Count int    `yaml:"count,omitempty" json:"count,omitempty"`
}

// ParseDeckData decodes deck YAML.
func ParseDeckData(data []byte) (DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// ReadDeckFile reads and decodes a deck file.
func ReadDeckFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, err
	}
	return ParseDeckData(data)
}

// Build resolves a deck entry's cards against cat.
func (d DeckEntry) Build(cat *Catalog) ([]game.Card, error) {
	var cards []game.Card
	for _, entry := range d.Cards {
		card, err := entry.resolve(cat)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "deck %q", d.Name)
		}
		count := entry.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

func (e CardEntry) resolve(cat *Catalog) (game.Card, error) {
	if e.ID != 0 {
		if card, ok := cat.ByID(e.ID); ok {
			return card, nil
		}
		return game.Card{}, errorsmod.Wrapf(ErrUnknownCard, "id %d", e.ID)
	}
	return cat.Lookup(e.Name)
}

// Deck returns the Nth deck (1-indexed).
func (df DeckFile) Deck(n int, cat *Catalog) (string, []game.Card, error) {
	if n < 1 || n > len(df.Decks) {
		return "", nil, errorsmod.Wrapf(ErrDeckNotFound, "deck %d (have %d decks)", n, len(df.Decks))
	}
	deck := df.Decks[n-1]
	cards, err := deck.Build(cat)
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}

// MatchDecks holds both sides' decks for one match.
type MatchDecks struct {
	HumanName string
	Human     []game.Card
	AIName    string
	AI        []game.Card
}

// RandomDeckName labels decks drawn by ForMatch from the whole catalog.
const RandomDeckName = "Random"

// ForMatch picks the decks for a match. Errors keep their registered codes
// so they can be reported over the wire. When randomSize > 0 both sides get
// random catalog decks of that size. Otherwise humanDeck and aiDeck index
// the file (1-indexed); humanDeck 0 means the first deck and aiDeck 0 the
// deck after the human's.
func (df DeckFile) ForMatch(cat *Catalog, rng game.Rand, humanDeck, aiDeck, randomSize int) (MatchDecks, error) {
	var md MatchDecks
	if randomSize > 0 {
		var err error
		if md.Human, err = cat.RandomDeck(rng, randomSize); err != nil {
			return MatchDecks{}, errorsmod.Wrap(err, "load human deck")
		}
		if md.AI, err = cat.RandomDeck(rng, randomSize); err != nil {
			return MatchDecks{}, errorsmod.Wrap(err, "load AI deck")
		}
		md.HumanName, md.AIName = RandomDeckName, RandomDeckName
		return md, nil
	}

	humanDeck = max(humanDeck, 1)
	if aiDeck <= 0 {
		aiDeck = humanDeck%max(len(df.Decks), 1) + 1
	}
	var err error
	if md.HumanName, md.Human, err = df.Deck(humanDeck, cat); err != nil {
		return MatchDecks{}, errorsmod.Wrap(err, "load human deck")
	}
	if md.AIName, md.AI, err = df.Deck(aiDeck, cat); err != nil {
		return MatchDecks{}, errorsmod.Wrap(err, "load AI deck")
	}
	return md, nil
}

// StarterDecks is the deck file used when none is configured: one deck per
// builtin faction.
func StarterDecks() DeckFile {
	return DeckFile{Decks: []DeckEntry{
		{Name: "Northern Realms", Faction: "northernrealms", Cards: []CardEntry{
			{Name: "Blue Stripes Commando", Count: 3},
			{Name: "Poor Infantry", Count: 3},
			{Name: "Redanian Foot Soldier", Count: 2},
			{Name: "Sigismund Dijkstra"},
			{Name: "Siegfried of Denesle"},
			{Name: "Crinfrid Reavers Dragon Hunter", Count: 3},
			{Name: "Keira Metz"},
			{Name: "Sheldon Skaggs"},
			{Name: "Catapult", Count: 2},
			{Name: "Kaedweni Siege Expert"},
			{Name: "Dun Banner Medic"},
			{Name: "Trebuchet"},
			{Name: "Vernon Roche"},
			{Name: "Philippa Eilhart"},
			{Name: "Geralt of Rivia"},
			{Name: "Villentretenmerth"},
			{Name: "Dandelion"},
			{Name: "Biting Frost"},
			{Name: "Torrential Rain"},
			{Name: "Clear Weather"},
			{Name: "Decoy"},
		}},
		{Name: "Nilfgaard", Faction: "nilfgaard", Cards: []CardEntry{
			{Name: "Impera Brigade Guard", Count: 3},
			{Name: "Nausicaa Cavalry Rider", Count: 3},
			{Name: "Young Emissary", Count: 2},
			{Name: "Rainfarn"},
			{Name: "Stefan Skellen"},
			{Name: "Black Infantry Archer", Count: 2},
			{Name: "Etolian Auxiliary Archers", Count: 2},
			{Name: "Cynthia"},
			{Name: "Heavy Zerrikanian Fire Scorpion"},
			{Name: "Siege Engineer"},
			{Name: "Rotten Mangonel"},
			{Name: "Letho of Gulet"},
			{Name: "Menno Coehoorn"},
			{Name: "Cirilla Fiona Elen Riannon"},
			{Name: "Yennefer of Vengerberg"},
			{Name: "Avallac'h"},
			{Name: "Zoltan Chivay"},
			{Name: "Impenetrable Fog"},
			{Name: "Biting Frost"},
			{Name: "Scorch"},
			{Name: "Commander's Horn"},
		}},
	}}
}
