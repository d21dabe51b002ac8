// Package external is the location for the dnd5e-api client
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-sheet/internal/clients/external Client

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"go.uber.org/zap"

	internalDnd5e "github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// notFoundStatus is how the dnd5e-api client reports a missing resource
const notFoundStatus = "unexpected status code: 404"

// slugPattern matches characters that should be replaced in slugs
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// generateSlug turns "Toll the Dead" into the API key "toll-the-dead"
func generateSlug(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// Client defines the interface for rules lookups the roll engine needs
type Client interface {
	// GetSpellDamage fetches the damage, save and range data of a spell.
	// The key may be an API key ("fire-bolt") or a display name ("Fire Bolt").
	GetSpellDamage(ctx context.Context, spellKey string) (*internalDnd5e.SpellDamage, error)
}

// spellSource is the part of the dnd5e-api client this package uses
type spellSource interface {
	GetSpell(key string) (*entities.Spell, error)
}

type client struct {
	spells spellSource
	logger *zap.Logger
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	return &client{
		spells: dnd5e.NewCachedClient(baseClient, cfg.CacheTTL),
		logger: cfg.Logger,
	}, nil
}

func (c *client) GetSpellDamage(_ context.Context, spellKey string) (*internalDnd5e.SpellDamage, error) {
	apiKey := generateSlug(spellKey)
	if apiKey == "" {
		return nil, errors.InvalidArgument("spell key is required")
	}

	spell, err := c.spells.GetSpell(apiKey)
	if err != nil {
		if strings.Contains(err.Error(), notFoundStatus) {
			return nil, errors.NotFoundf("spell %s not found", apiKey)
		}
		c.logger.Warn("spell lookup failed", zap.String("spell", apiKey), zap.Error(err))
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get spell "+apiKey)
	}

	return convertSpellDamage(spell), nil
}

// convertSpellDamage keeps the fields the roll engine needs
func convertSpellDamage(spell *entities.Spell) *internalDnd5e.SpellDamage {
	out := &internalDnd5e.SpellDamage{
		Key:   spell.Key,
		Name:  spell.Name,
		Level: spell.SpellLevel,
		Range: spell.Range,
	}

	if spell.DC != nil && spell.DC.DCType != nil {
		out.SaveAbility = internalDnd5e.NormalizeAbilityCode(spell.DC.DCType.Name)
	}

	if spell.SpellDamage != nil {
		if spell.SpellDamage.SpellDamageType != nil {
			out.DamageType = strings.ToLower(spell.SpellDamage.SpellDamageType.Name)
		}
		out.DamageAtSlot = damageBySlot(spell.SpellDamage.SpellDamageAtSlotLevel)
	}

	return out
}

func damageBySlot(levels *entities.SpellDamageAtSlotLevel) map[int]string {
	if levels == nil {
		return nil
	}

	bySlot := map[int]string{
		1: levels.FirstLevel,
		2: levels.SecondLevel,
		3: levels.ThirdLevel,
		4: levels.FourthLevel,
		5: levels.FifthLevel,
		6: levels.SixthLevel,
		7: levels.SeventhLevel,
		8: levels.EighthLevel,
		9: levels.NinthLevel,
	}
	for slot, formula := range bySlot {
		if formula == "" {
			delete(bySlot, slot)
		}
	}
	if len(bySlot) == 0 {
		return nil
	}
	return bySlot
}
