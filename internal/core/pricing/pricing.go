package pricing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-claude-usage/internal/core/model"
)

// ModelPricing holds USD prices per million tokens.
type ModelPricing struct {
	Input      float64 `yaml:"input" json:"input"`
	Output     float64 `yaml:"output" json:"output"`
	CacheWrite float64 `yaml:"cache_write" json:"cacheWrite"`
	CacheRead  float64 `yaml:"cache_read" json:"cacheRead"`
}

// Table maps model keys (see ModelKey) to prices. It is read-only after
// construction.
type Table struct {
	prices map[string]ModelPricing
}

var defaultPrices = map[string]ModelPricing{
	model.ModelOpus45:   {Input: 5.0, Output: 25.0, CacheWrite: 6.25, CacheRead: 0.50},
	model.ModelSonnet45: {Input: 3.0, Output: 15.0, CacheWrite: 3.75, CacheRead: 0.30},
	model.ModelHaiku45:  {Input: 1.0, Output: 5.0, CacheWrite: 1.25, CacheRead: 0.10},
	model.ModelOpus:     {Input: 15.0, Output: 75.0, CacheWrite: 18.75, CacheRead: 1.50},
	model.ModelSonnet:   {Input: 3.0, Output: 15.0, CacheWrite: 3.75, CacheRead: 0.30},
	model.ModelHaiku:    {Input: 0.25, Output: 1.25, CacheWrite: 0.30, CacheRead: 0.03},
}

// DefaultTable returns the built-in price list.
func DefaultTable() *Table {
	return NewTable(defaultPrices)
}

// NewTable copies prices into a new table. The sonnet entry is the
// fallback for unknown keys and is filled from the defaults when missing.
func NewTable(prices map[string]ModelPricing) *Table {
	t := &Table{prices: make(map[string]ModelPricing, len(prices)+1)}
	for k, v := range prices {
		t.prices[k] = v
	}
	if _, ok := t.prices[model.ModelDefault]; !ok {
		t.prices[model.ModelDefault] = defaultPrices[model.ModelDefault]
	}
	return t
}

// LoadTable reads a YAML price list and merges it over the defaults:
//
//	opus-4-5: {input: 5, output: 25, cache_write: 6.25, cache_read: 0.5}
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pricing file: %w", err)
	}
	var overrides map[string]ModelPricing
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing pricing file %s: %w", path, err)
	}
	merged := make(map[string]ModelPricing, len(defaultPrices)+len(overrides))
	for k, v := range defaultPrices {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return NewTable(merged), nil
}

// Pricing returns the prices for a model key, falling back to sonnet.
func (t *Table) Pricing(key string) ModelPricing {
	if p, ok := t.prices[key]; ok {
		return p
	}
	return t.prices[model.ModelDefault]
}

// Cost returns the USD cost of the event's tokens.
func (t *Table) Cost(key string, ev model.UsageEvent) float64 {
	p := t.Pricing(key)
	return float64(ev.Input)/1_000_000*p.Input +
		float64(ev.Output)/1_000_000*p.Output +
		float64(ev.CacheRead)/1_000_000*p.CacheRead +
		float64(ev.CacheWrite)/1_000_000*p.CacheWrite
}

// CacheSavings is what cache hits saved compared with paying input price.
func (t *Table) CacheSavings(key string, cacheRead int64) float64 {
	p := t.Pricing(key)
	return float64(cacheRead) / 1_000_000 * (p.Input - p.CacheRead)
}

// ModelKey maps a full model name such as "claude-opus-4-5-20251101" to a
// pricing key. Names without a known family price as sonnet.
func ModelKey(modelName string) string {
	name := strings.ToLower(modelName)
	newer := strings.Contains(name, "4-5") || strings.Contains(name, "4.5")
	switch {
	case strings.Contains(name, "opus"):
		if newer {
			return model.ModelOpus45
		}
		return model.ModelOpus
	case strings.Contains(name, "haiku"):
		if newer {
			return model.ModelHaiku45
		}
		return model.ModelHaiku
	default:
		if newer {
			return model.ModelSonnet45
		}
		return model.ModelSonnet
	}
}
