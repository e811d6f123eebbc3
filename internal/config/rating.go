package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mauv0809/tribble-league/internal/rating"
)

const ratingEnvPrefix = "RATING_"

// LoadRatingConfig layers the algorithm parameters, lowest precedence first:
//  1. rating.DefaultConfig()
//  2. the YAML file at path, when path is not empty
//  3. RATING_* environment variables, with "__" separating sections
//     (RATING_STREAK__BASE_POINTS sets streak.base_points)
func LoadRatingConfig(path string) (rating.Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return rating.Config{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	envProvider := env.Provider(ratingEnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, ratingEnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return rating.Config{}, fmt.Errorf("failed to load rating env: %w", err)
	}

	cfg := rating.DefaultConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return rating.Config{}, fmt.Errorf("failed to decode rating config: %w", err)
	}
	if cfg.XP.B <= 0 {
		return rating.Config{}, fmt.Errorf("xp.b must be positive, got %v", cfg.XP.B)
	}
	if cfg.Streak.MaxMultiplier <= 0 {
		return rating.Config{}, fmt.Errorf("streak.max_multiplier must be positive, got %v", cfg.Streak.MaxMultiplier)
	}
	return cfg, nil
}
