package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/gwentx/internal/game"
)

const sampleDecks = `
decks:
  - name: Tiny
    cards:
      - { name: blue stripes commando, count: 3 }
      - { id: 401 }
  - name: Broken
    cards:
      - { name: Gwent Champion }
`

func writeDecks(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDeckFromFile(t *testing.T) {
	path := writeDecks(t, sampleDecks)
	cat := Builtin()

	df, err := ReadDeckFile(path)
	require.NoError(t, err)

	name, cards, err := df.Deck(1, cat)
	require.NoError(t, err)
	assert.Equal(t, "Tiny", name)
	require.Len(t, cards, 4)
	assert.Equal(t, "Blue Stripes Commando", cards[0].Name)
	assert.Equal(t, "Biting Frost", cards[3].Name)

	_, _, err = df.Deck(2, cat)
	assert.ErrorIs(t, err, ErrUnknownCard)

	_, _, err = df.Deck(3, cat)
	assert.ErrorIs(t, err, ErrDeckNotFound)

	_, err = ReadDeckFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestForMatchFromFile(t *testing.T) {
	cat := Builtin()
	df := StarterDecks()

	md, err := df.ForMatch(cat, game.NewRand(1), 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Northern Realms", md.HumanName)
	assert.Equal(t, "Nilfgaard", md.AIName)

	md, err = df.ForMatch(cat, game.NewRand(1), 2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Nilfgaard", md.HumanName)
	assert.Equal(t, "Northern Realms", md.AIName, "AI wraps to the first deck")

	_, err = df.ForMatch(cat, game.NewRand(1), 9, 0, 0)
	assert.ErrorIs(t, err, ErrDeckNotFound)
	assert.Contains(t, err.Error(), "human deck")

	_, err = df.ForMatch(cat, game.NewRand(1), 1, 9, 0)
	assert.ErrorIs(t, err, ErrDeckNotFound)
	assert.Contains(t, err.Error(), "AI deck")
}

func TestForMatchRandomDecks(t *testing.T) {
	md, err := DeckFile{}.ForMatch(Builtin(), game.NewRand(4), 0, 0, 22)
	require.NoError(t, err)
	assert.Equal(t, RandomDeckName, md.HumanName)
	assert.Equal(t, RandomDeckName, md.AIName)
	assert.Len(t, md.Human, 22)
	assert.Len(t, md.AI, 22)
	for _, c := range append(md.Human, md.AI...) {
		assert.True(t, c.IsPlayable(), c.Name)
	}

	_, err = DeckFile{}.ForMatch(New(nil), game.NewRand(4), 0, 0, 10)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestParseDeckDataInvalid(t *testing.T) {
	_, err := ParseDeckData([]byte("decks: [unterminated"))
	assert.Error(t, err)
}

// TestShippedDecksResolve checks the repository's decks.yaml and the
// compiled-in starter decks against the builtin catalog.
func TestShippedDecksResolve(t *testing.T) {
	cat := Builtin()

	data, err := os.ReadFile(filepath.Join("..", "..", "decks.yaml"))
	require.NoError(t, err)
	df, err := ParseDeckData(data)
	require.NoError(t, err)
	require.NotEmpty(t, df.Decks)
	for i, entry := range df.Decks {
		cards, err := entry.Build(cat)
		require.NoError(t, err, "deck %d", i+1)
		assert.GreaterOrEqual(t, len(cards), 20, entry.Name)
	}

	starter := StarterDecks()
	for _, entry := range starter.Decks {
		cards, err := entry.Build(cat)
		require.NoError(t, err, entry.Name)
		assert.GreaterOrEqual(t, len(cards), 20, entry.Name)
	}

	out, err := yaml.Marshal(starter)
	require.NoError(t, err)
	again, err := ParseDeckData(out)
	require.NoError(t, err)
	assert.Equal(t, starter, again)
}
