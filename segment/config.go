package segment

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the full pipeline configuration. DefaultConfig carries the
// built-in feature list, name table and recommendations; a YAML file may
// override any field.
type Config struct {
	Seed                   int64             `yaml:"seed"`
	NInit                  int               `yaml:"n_init"`
	MaxIter                int               `yaml:"max_iter"`
	Tolerance              float64           `yaml:"tolerance"`
	MaxK                   int               `yaml:"max_k"`
	Features               []string          `yaml:"features"`
	ClusterNames           []string          `yaml:"cluster_names"`
	Recommendations        map[string]string `yaml:"recommendations"`
	FallbackRecommendation string            `yaml:"fallback_recommendation"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	recs := make(map[string]string, len(DefaultRecommendations))
	for name, text := range DefaultRecommendations {
		recs[name] = text
	}
	return Config{
		Seed:                   42,
		NInit:                  10,
		MaxIter:                300,
		Tolerance:              1e-4,
		MaxK:                   10,
		Features:               append([]string(nil), DefaultFeatures...),
		ClusterNames:           append([]string(nil), DefaultClusterNames...),
		Recommendations:        recs,
		FallbackRecommendation: DefaultFallbackRecommendation,
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Lists in the file replace
// the defaults; recommendation entries are merged by name.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every field. The name table must cover max_k so that any
// selectable k has a name for each cluster id.
func (c *Config) Validate() error {
	if c.NInit < 1 {
		return fmt.Errorf("n_init must be positive, got %d", c.NInit)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("max_iter must be positive, got %d", c.MaxIter)
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be a finite non-negative number, got %f", c.Tolerance)
	}
	if c.MaxK < 2 {
		return fmt.Errorf("max_k must be at least 2, got %d", c.MaxK)
	}
	if len(c.Features) == 0 {
		return fmt.Errorf("features: %w", ErrNoFeatures)
	}
	seen := make(map[string]bool, len(c.Features))
	for i, f := range c.Features {
		if !IsValidFeature(f) {
			return fmt.Errorf("features[%d]: unknown feature %q; valid: %s", i, f, strings.Join(ValidFeatureNames(), ", "))
		}
		if seen[f] {
			return fmt.Errorf("features[%d]: duplicate feature %q", i, f)
		}
		seen[f] = true
	}
	if err := NameTable(c.ClusterNames).Validate(c.MaxK); err != nil {
		return fmt.Errorf("cluster_names must cover max_k: %w", err)
	}
	if strings.TrimSpace(c.FallbackRecommendation) == "" {
		return fmt.Errorf("fallback_recommendation must not be empty")
	}
	for _, name := range c.MissingRecommendations() {
		logrus.Warnf("cluster name %q has no recommendation; the fallback text will be used", name)
	}
	return nil
}

// MissingRecommendations lists cluster names without a recommendation entry.
func (c *Config) MissingRecommendations() []string {
	var missing []string
	for _, name := range c.ClusterNames {
		if _, ok := c.Recommendations[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Model returns the K-Means settings.
func (c Config) Model() ModelConfig {
	return ModelConfig{Seed: c.Seed, NInit: c.NInit, MaxIter: c.MaxIter, Tolerance: c.Tolerance, MaxK: c.MaxK}
}

// Names returns the cluster name table.
func (c Config) Names() NameTable {
	return NameTable(c.ClusterNames)
}

// Recommender returns a Recommender built from the configured texts.
func (c Config) Recommender() *Recommender {
	return NewRecommender(c.Recommendations, c.FallbackRecommendation)
}
