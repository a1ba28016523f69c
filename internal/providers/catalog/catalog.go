// Package catalog holds the model tier registry: which upstream provider and
// model serve each tier, with its token budget and base sampling temperature.
//
// A Catalog is built once at startup (built-in tiers, optionally overlaid by a
// YAML file) and is read-only afterwards, so it is safe to share between
// concurrent requests without locking.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider identifies an upstream text-generation service.
type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderOpenRouter Provider = "openrouter"
)

// Tier is the client-facing model identifier.
type Tier string

const (
	TierLite   Tier = "lite"
	TierNormal Tier = "normal"
	TierHeavy  Tier = "heavy"
	TierPro    Tier = "pro"
)

// DefaultTier is used when a request does not name a model.
const DefaultTier = TierNormal

// tierOrder is the display and probe order.
var tierOrder = []Tier{TierLite, TierNormal, TierHeavy, TierPro}

// Model is one resolved registry entry.
type Model struct {
	Tier        Tier     `json:"id" yaml:"-"`
	Name        string   `json:"name" yaml:"name"`
	Provider    Provider `json:"provider" yaml:"provider"`
	ModelName   string   `json:"model_name" yaml:"model_name"`
	MaxTokens   int      `json:"max_tokens" yaml:"max_tokens"`
	Temperature float64  `json:"temperature" yaml:"temperature"`
	Description string   `json:"description" yaml:"description"`
	Speed       string   `json:"speed" yaml:"speed"`
	Quality     string   `json:"quality" yaml:"quality"`
	Free        bool     `json:"free" yaml:"free"`
}

// UnsupportedModelError is returned by Resolve for a tier outside the registry.
type UnsupportedModelError struct {
	Tier string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model type: %s", e.Tier)
}

// Catalog is an immutable tier table.
type Catalog struct {
	byTier map[Tier]Model
}

// Default returns the built-in tier table.
func Default() *Catalog {
	c := &Catalog{byTier: make(map[Tier]Model, len(tierOrder))}
	for _, m := range builtinModels() {
		c.byTier[m.Tier] = m
	}
	return c
}

// Load returns the built-in tiers overlaid with the YAML file at path.
// An empty path searches the usual config locations; when none exists the
// built-in table is returned unchanged.
func Load(path string) (*Catalog, error) {
	c := Default()

	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		return c, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read models file %q: %w", resolved, err)
	}
	if err := c.overlay(data); err != nil {
		return nil, fmt.Errorf("failed to apply models file %q: %w", resolved, err)
	}
	return c, nil
}

// IsKnownTier reports whether tier names one of the four registry tiers.
func IsKnownTier(tier string) bool {
	for _, t := range tierOrder {
		if string(t) == tier {
			return true
		}
	}
	return false
}

// Tiers returns the tier identifiers in display order.
func Tiers() []Tier {
	return append([]Tier(nil), tierOrder...)
}

// Resolve looks up a tier. It performs no I/O.
func (c *Catalog) Resolve(tier string) (Model, error) {
	m, ok := c.byTier[Tier(tier)]
	if !ok {
		return Model{}, &UnsupportedModelError{Tier: tier}
	}
	return m, nil
}

// Models returns every tier in display order.
func (c *Catalog) Models() []Model {
	result := make([]Model, 0, len(tierOrder))
	for _, t := range tierOrder {
		if m, ok := c.byTier[t]; ok {
			result = append(result, m)
		}
	}
	return result
}

// ProbeModel returns the first tier (in display order) served by provider.
func (c *Catalog) ProbeModel(provider Provider) (Model, bool) {
	for _, m := range c.Models() {
		if m.Provider == provider {
			return m, true
		}
	}
	return Model{}, false
}

type fileConfig struct {
	Tiers map[string]tierOverride `yaml:"tiers"`
}

type tierOverride struct {
	Name        *string   `yaml:"name"`
	Provider    *Provider `yaml:"provider"`
	ModelName   *string   `yaml:"model_name"`
	MaxTokens   *int      `yaml:"max_tokens"`
	Temperature *float64  `yaml:"temperature"`
	Description *string   `yaml:"description"`
	Speed       *string   `yaml:"speed"`
	Quality     *string   `yaml:"quality"`
	Free        *bool     `yaml:"free"`
}

func (c *Catalog) overlay(data []byte) error {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	for key, o := range cfg.Tiers {
		tier := Tier(strings.ToLower(strings.TrimSpace(key)))
		m, ok := c.byTier[tier]
		if !ok {
			return &UnsupportedModelError{Tier: key}
		}
		if o.Name != nil {
			m.Name = strings.TrimSpace(*o.Name)
		}
		if o.Provider != nil {
			p := Provider(strings.ToLower(strings.TrimSpace(string(*o.Provider))))
			if p != ProviderGemini && p != ProviderOpenRouter {
				return fmt.Errorf("tier %s: unknown provider %q", tier, *o.Provider)
			}
			m.Provider = p
		}
		if o.ModelName != nil {
			m.ModelName = strings.TrimSpace(*o.ModelName)
		}
		if o.MaxTokens != nil {
			m.MaxTokens = *o.MaxTokens
		}
		if o.Temperature != nil {
			m.Temperature = *o.Temperature
		}
		if o.Description != nil {
			m.Description = *o.Description
		}
		if o.Speed != nil {
			m.Speed = *o.Speed
		}
		if o.Quality != nil {
			m.Quality = *o.Quality
		}
		if o.Free != nil {
			m.Free = *o.Free
		}

		if m.ModelName == "" {
			return fmt.Errorf("tier %s: model_name must not be empty", tier)
		}
		if m.MaxTokens <= 0 {
			return fmt.Errorf("tier %s: max_tokens must be positive, got %d", tier, m.MaxTokens)
		}
		if m.Temperature < 0 || m.Temperature > 2 {
			return fmt.Errorf("tier %s: temperature %.2f out of range [0, 2]", tier, m.Temperature)
		}
		c.byTier[tier] = m
	}
	return nil
}

func resolveConfigPath(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	candidates := []string{
		"config/models.yaml",
		"/etc/quillcraft/models.yaml",
	}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		candidates = append(candidates, filepath.Join(homeDir, ".config", "quillcraft", "models.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func builtinModels() []Model {
	return []Model{
		{
			Tier:        TierLite,
			Name:        "OpenAI GPT OSS 20B",
			Provider:    ProviderOpenRouter,
			ModelName:   "openai/gpt-oss-20b:free",
			MaxTokens:   1024,
			Temperature: 0.3,
			Description: "Fast and basic rewriting",
			Speed:       "Fastest",
			Quality:     "Basic",
			Free:        true,
		},
		{
			Tier:        TierNormal,
			Name:        "GLM-4.5 Air",
			Provider:    ProviderOpenRouter,
			ModelName:   "z-ai/glm-4.5-air:free",
			MaxTokens:   2048,
			Temperature: 0.4,
			Description: "Balanced quality and speed",
			Speed:       "Fast",
			Quality:     "Good",
			Free:        true,
		},
		{
			Tier:        TierHeavy,
			Name:        "Gemini 2.5 Flash",
			Provider:    ProviderGemini,
			ModelName:   "gemini-2.0-flash-exp",
			MaxTokens:   3072,
			Temperature: 0.5,
			Description: "More accurate, slower processing",
			Speed:       "Medium",
			Quality:     "High",
			Free:        true,
		},
		{
			Tier:        TierPro,
			Name:        "Gemini 2.5 Flash Pro",
			Provider:    ProviderGemini,
			ModelName:   "gemini-2.0-flash-exp",
			MaxTokens:   4096,
			Temperature: 0.6,
			Description: "Highest quality, premium only",
			Speed:       "Slow",
			Quality:     "Excellent",
			Free:        false,
		},
	}
}
