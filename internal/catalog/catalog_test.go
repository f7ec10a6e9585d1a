package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/game"
)

const samplePage = `{
  "request": {"message": "ok", "status": 200, "REQUEST": {"language": "en", "response": "json", "version": "latest"}},
  "response": {
    "2": {
      "id": {"art": 1201, "card": 112102, "audio": 0},
      "attributes": {"set": "BaseSet", "type": "Unit", "color": "Bronze", "power": 4, "reach": 0,
                     "rarity": "Common", "faction": "Northern Realms", "provision": 5},
      "name": "Blue Stripes Commando", "category": "Soldier",
      "ability": "Tight Bond: doubles the strength of identical cards.", "flavor": "For Temeria!"
    },
    "1": {
      "id": {"art": 1100, "card": 100001, "audio": 0},
      "attributes": {"set": "BaseSet", "type": "Unit", "color": "Gold", "power": 0, "reach": 2,
                     "rarity": "Legendary", "faction": "Neutral", "provision": 9},
      "name": "Avallac'h", "category": "Elf, Sage", "ability": "Espía. Médico."
    },
    "3": {
      "id": {"art": 1300, "card": 200003, "audio": 0},
      "attributes": {"set": "BaseSet", "type": "Special", "color": "Bronze", "power": null, "reach": null,
                     "rarity": "Rare", "faction": "Neutral", "provision": 8},
      "name": "Biting Frost", "category": "Hazard", "ability": "Apply a Hazard to an enemy row."
    },
    "4": {
      "id": {"art": 1400, "card": 200004, "audio": 0},
      "attributes": {"set": "BaseSet", "type": "Weather", "color": "Bronze",
                     "rarity": "Common", "faction": "Neutral", "provision": 4},
      "name": "Torrential Rain"
    },
    "5": {
      "id": {"art": 1500, "card": 300005, "audio": 0},
      "attributes": {"set": "BaseSet", "type": "Unit", "color": "Gold", "power": 5,
                     "rarity": "Legendary", "faction": "Monster", "provision": 15},
      "name": "Eredin", "category": "Leader", "ability": "Wild Hunt."
    }
  }
}`

func TestParseResponse(t *testing.T) {
	cards, err := ParseResponse([]byte(samplePage))
	require.NoError(t, err)
	require.Len(t, cards, 5)

	// Ordered by card ID.
	assert.Equal(t, 100001, cards[0].ID)
	assert.Equal(t, 300005, cards[4].ID)

	avallach := cards[0]
	assert.Equal(t, "Avallac'h", avallach.Name)
	assert.True(t, avallach.IsUnit())
	assert.True(t, avallach.IsGold())
	assert.Equal(t, game.RowSiege, avallach.Row)
	assert.True(t, avallach.HasZeroPower())
	assert.True(t, avallach.Effects.Has(game.EffectSpy))
	assert.True(t, avallach.Effects.Has(game.EffectMedic))

	commando := cards[1]
	assert.Equal(t, game.FactionNorthernRealms, commando.Faction)
	assert.Equal(t, game.RowMelee, commando.Row)
	assert.Equal(t, 4, commando.Power)
	assert.Equal(t, game.Effects(game.EffectTightBond), commando.Effects)
	assert.Equal(t, 1201, commando.ArtID)
	assert.Equal(t, 5, commando.Provision)
	assert.Equal(t, "For Temeria!", commando.Flavor)

	special := cards[2]
	assert.True(t, special.IsSpecial())
	assert.False(t, special.HasPower)
	assert.Equal(t, game.RowNone, special.Row)
	assert.Equal(t, game.WeatherNone, special.Weather, "only weather cards get a weather kind")

	rain := cards[3]
	assert.True(t, rain.IsWeather())
	assert.Equal(t, game.TorrentialRain, rain.Weather)

	eredin := cards[4]
	assert.True(t, eredin.IsLeader())
	assert.False(t, eredin.IsPlayable())
	assert.Equal(t, game.FactionMonsters, eredin.Faction)
}

func TestParseResponseEmptyPage(t *testing.T) {
	for _, body := range []string{`{"response": []}`, `{"response": {}}`, `{}`} {
		cards, err := ParseResponse([]byte(body))
		require.NoError(t, err, body)
		assert.Empty(t, cards, body)
	}

	_, err := ParseResponse([]byte(`not json`))
	assert.Error(t, err)
}

// pagedServer serves pages of one card each until lastPage, then empty pages.
func pagedServer(t *testing.T, lastPage int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query()
		assert.Equal(t, "data", q.Get("key"))
		assert.Equal(t, "json", q.Get("response"))
		assert.Equal(t, "latest", q.Get("version"))
		assert.Equal(t, strconv.Itoa(PageSize), q.Get("size"))

		page, err := strconv.Atoi(q.Get("page"))
		require.NoError(t, err)
		if page > lastPage {
			fmt.Fprint(w, `{"response": []}`)
			return
		}
		fmt.Fprintf(w, `{"response": {"0": {"id": {"card": %d}, "attributes": {"type": "Unit", "color": "Bronze", "power": 3, "reach": 1, "faction": "Nilfgaard"}, "name": "Card %d"}}}`, page+1, page)
	}))
}

func TestClientFetchAllStopsOnEmptyPage(t *testing.T) {
	var hits atomic.Int32
	srv := pagedServer(t, 2, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	cards, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "Card 0", cards[0].Name)
	assert.Equal(t, game.RowRanged, cards[0].Row)
	assert.Equal(t, int32(4), hits.Load())
}

func TestClientFetchAllPageLimit(t *testing.T) {
	var hits atomic.Int32
	srv := pagedServer(t, 100, &hits)
	defer srv.Close()

	cards, err := NewClient(srv.URL, nil).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, cards, MaxPages)
	assert.Equal(t, int32(MaxPages), hits.Load())
}

func TestClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

type stubFetcher struct {
	cards []game.Card
	err   error
	calls int
}

func (s *stubFetcher) FetchAll(ctx context.Context) ([]game.Card, error) {
	s.calls++
	return s.cards, s.err
}

func TestCacheLoadFetchesOnceThenReadsDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", DefaultCacheFile)
	fetcher := &stubFetcher{cards: Builtin().Cards()}
	cache := NewCache(path, fetcher, zap.NewNop())

	cat, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Builtin().Len(), cat.Len())
	assert.Equal(t, 1, fetcher.calls)
	assert.FileExists(t, path)

	again, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls, "second load must come from disk")
	assert.Equal(t, cat.Cards(), again.Cards())
}

func TestCacheRefreshFailure(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "cards.json"), &stubFetcher{err: errors.New("offline")}, nil)
	_, err := cache.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")

	cache.Fetcher = &stubFetcher{}
	_, err = cache.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCacheReadMissing(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "absent.json"), nil, nil)
	_, err := cache.Read()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecordRoundTrip(t *testing.T) {
	for _, card := range Builtin().Cards() {
		assert.Equal(t, card, NewRecord(card).Card(), card.Name)
	}
}

func TestBuiltinCatalog(t *testing.T) {
	cat := Builtin()
	require.Greater(t, cat.Len(), 50)

	geralt, ok := cat.ByName("geralt of rivia")
	require.True(t, ok)
	assert.True(t, geralt.IsGold())
	assert.Equal(t, 15, geralt.Power)

	medic, err := cat.Lookup("Dun Banner Medic")
	require.NoError(t, err)
	assert.True(t, medic.Effects.Has(game.EffectMedic))
	assert.Equal(t, game.RowSiege, medic.Row)

	frost, ok := cat.ByID(401)
	require.True(t, ok)
	assert.Equal(t, game.BitingFrost, frost.Weather)

	horn, err := cat.Lookup("Commander's Horn")
	require.NoError(t, err)
	assert.True(t, horn.IsSpecial())
	assert.True(t, horn.Effects.Empty())

	_, err = cat.Lookup("Gwent Champion")
	assert.ErrorIs(t, err, ErrUnknownCard)

	for _, c := range cat.ByFaction(game.FactionNilfgaard) {
		assert.Contains(t, []game.Faction{game.FactionNilfgaard, game.FactionNeutral}, c.Faction)
	}
}

func TestRandomDeck(t *testing.T) {
	deck, err := Builtin().RandomDeck(game.NewRand(3), 25)
	require.NoError(t, err)
	assert.Len(t, deck, 25)
	for _, c := range deck {
		assert.True(t, c.IsPlayable(), c.Name)
	}

	_, err = New(nil).RandomDeck(game.NewRand(3), 5)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestComputeStats(t *testing.T) {
	cat := Builtin()
	var cards []game.Card
	for _, name := range []string{"Geralt of Rivia", "Blue Stripes Commando", "Blue Stripes Commando", "Biting Frost", "Decoy"} {
		c, err := cat.Lookup(name)
		require.NoError(t, err)
		cards = append(cards, c)
	}
	assert.Equal(t, Stats{
		TotalCards:   5,
		TotalPower:   23,
		UnitCards:    3,
		SpecialCards: 1,
		WeatherCards: 1,
		GoldCards:    1,
	}, ComputeStats(cards))
}
