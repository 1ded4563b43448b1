package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestDefault_ThresholdOrdering(t *testing.T) {
	// The bands must nest: discard < low-confidence < cache threshold,
	// and fuzzy credit must stay below the cache threshold so typo'd
	// input is never memoized as perfect.
	cfg := Default()
	assert.Less(t, cfg.DiscardFloor, cfg.LowConfidence)
	assert.Less(t, cfg.LowConfidence, cfg.CacheThreshold)
	assert.Less(t, cfg.FuzzyTokenWeight, cfg.CacheThreshold)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
discard_floor: 0.4
suggestion_limit: 5
synonyms:
  peek: show
triggers:
  task_management.create:
    - note down
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.4, cfg.DiscardFloor)
	assert.Equal(t, 5, cfg.SuggestionLimit)
	assert.Equal(t, "show", cfg.Synonyms["peek"])
	assert.Equal(t, []string{"note down"}, cfg.Triggers["task_management.create"])

	// Untouched fields keep their defaults.
	assert.Equal(t, Default().CacheThreshold, cfg.CacheThreshold)
	assert.Equal(t, Default().HistoryCapacity, cfg.HistoryCapacity)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discard_floor: [not a number"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_OutOfRangeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discard_floor: 1.5"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.CacheThreshold = -0.1 }},
		{"threshold above one", func(c *Config) { c.ContextBonus = 1.1 }},
		{"negative edit tolerance", func(c *Config) { c.EditTolerance = -1 }},
		{"zero history capacity", func(c *Config) { c.HistoryCapacity = 0 }},
		{"zero cache capacity", func(c *Config) { c.CacheCapacity = 0 }},
		{"negative suggestion limit", func(c *Config) { c.SuggestionLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
