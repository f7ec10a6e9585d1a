package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/game"
)

const (
	DefaultURL = "https://api.gwent.one/"
	PageSize   = 50
	MaxPages   = 10
)

// apiResponse is the gwent.one "key=data" payload. The API sends an empty
// JSON array instead of an object when a page has no cards.
type apiResponse struct {
	Response json.RawMessage `json:"response"`
}

type apiCard struct {
	ID struct {
		Art   int `json:"art"`
		Card  int `json:"card"`
		Audio int `json:"audio"`
	} `json:"id"`
	Attributes struct {
		Set              string `json:"set"`
		Type             string `json:"type"`
		Armor            *int   `json:"armor"`
		Color            string `json:"color"`
		Power            *int   `json:"power"`
		Reach            *int   `json:"reach"`
		Artist           string `json:"artist"`
		Rarity           string `json:"rarity"`
		Faction          string `json:"faction"`
		Related          string `json:"related"`
		Provision        int    `json:"provision"`
		FactionSecondary string `json:"factionSecondary"`
	} `json:"attributes"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Ability     string `json:"ability"`
	AbilityHTML string `json:"ability_html"`
	KeywordHTML string `json:"keyword_html"`
	Flavor      string `json:"flavor"`
}

// toCard classifies an API record.
func (a apiCard) toCard() game.Card {
	attrs := a.Attributes
	c := game.Card{
		ID:        a.ID.Card,
		Name:      a.Name,
		Faction:   game.ParseFaction(attrs.Faction),
		Category:  game.ParseCategory(attrs.Type),
		Color:     game.ParseColor(attrs.Color),
		Ability:   a.Ability,
		Flavor:    a.Flavor,
		Rarity:    attrs.Rarity,
		Provision: attrs.Provision,
		ArtID:     a.ID.Art,
	}
	if strings.Contains(strings.ToLower(a.Category), "leader") {
		c.Category = game.CategoryLeader
	}
	if attrs.Power != nil {
		c.Power = *attrs.Power
		c.HasPower = true
	}
	switch c.Category {
	case game.CategoryUnit:
		if attrs.Reach != nil {
			c.Row = game.RowForReach(*attrs.Reach)
		}
		c.Effects = game.ParseEffects(a.Ability)
	case game.CategoryWeather:
		c.Weather = game.ParseWeather(a.Name)
	}
	return c
}

// ParseResponse decodes one gwent.one page into cards ordered by ID.
func ParseResponse(data []byte) ([]game.Card, error) {
	var resp apiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode gwent.one response: %w", err)
	}
	raw := bytes.TrimSpace(resp.Response)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}

	var records map[string]apiCard
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode gwent.one cards: %w", err)
	}
	cards := make([]game.Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, rec.toCard())
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

// Fetcher retrieves the full remote card list.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]game.Card, error)
}

// Client fetches cards from the gwent.one API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// NewClient returns a client for baseURL (DefaultURL when empty).
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

func (c *Client) pageURL(page int) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse catalog URL: %w", err)
	}
	q := u.Query()
	q.Set("key", "data")
	q.Set("response", "json")
	q.Set("version", "latest")
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(PageSize))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPage fetches a single page (0-based).
func (c *Client) FetchPage(ctx context.Context, page int) ([]game.Card, error) {
	target, err := c.pageURL(page)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page %d: unexpected status %s", page, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", page, err)
	}
	return ParseResponse(body)
}

// FetchAll walks pages until an empty one, stopping after MaxPages.
func (c *Client) FetchAll(ctx context.Context) ([]game.Card, error) {
	var all []game.Card
	for page := 0; page < MaxPages; page++ {
		cards, err := c.FetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(cards) == 0 {
			break
		}
		all = append(all, cards...)
		c.Logger.Debug("fetched catalog page", zap.Int("page", page), zap.Int("cards", len(cards)))
		if page == MaxPages-1 {
			c.Logger.Warn("catalog page limit reached", zap.Int("max_pages", MaxPages))
		}
	}
	c.Logger.Info("fetched catalog", zap.Int("cards", len(all)))
	return all, nil
}
