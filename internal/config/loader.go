package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSpaceBattle loads Space Battle configuration.
// Search order: customPath -> ~/.arcade/configs/spacebattle.yaml -> ./configs/spacebattle.yaml -> embedded default
// Files only need to list the values they change; everything else keeps its default.
func LoadSpaceBattle(customPath string) (SpaceBattleConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SpaceBattleConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSpaceBattle(data)
		if err != nil {
			return SpaceBattleConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("spacebattle.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSpaceBattle(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/spacebattle.yaml"); err == nil {
		if cfg, err := parseSpaceBattle(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSpaceBattle(defaultSpaceBattleYAML)
	if err != nil {
		return DefaultSpaceBattleConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseSpaceBattle decodes a config document, such as one stored with a
// replay. Missing keys keep their defaults.
func ParseSpaceBattle(data []byte) (SpaceBattleConfig, error) {
	cfg, err := parseSpaceBattle(data)
	if err != nil {
		return SpaceBattleConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// YAML encodes the resolved config with every key present.
func (c SpaceBattleConfig) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// parseSpaceBattle decodes data over the hard-coded defaults and validates the result.
func parseSpaceBattle(data []byte) (SpaceBattleConfig, error) {
	cfg := DefaultSpaceBattleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate reports every value that would make the simulation meaningless.
func (c SpaceBattleConfig) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %g", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	if c.Gameplay.Lives < 1 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be at least 1, got %d", c.Gameplay.Lives))
	}
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("enemies.width", c.Enemies.Width)
	positive("enemies.height", c.Enemies.Height)
	positive("enemies.decorative_interval", c.Enemies.DecorativeInterval)
	positive("enemies.spawn_interval", c.Enemies.SpawnInterval)
	positive("enemies.loop_radius", c.Enemies.LoopRadius)
	positive("enemies.loop_leg_duration", c.Enemies.LoopLegDuration)
	probability("enemies.shoot_chance", c.Enemies.ShootChance)
	positive("bullets.width", c.Bullets.Width)
	positive("bullets.height", c.Bullets.Height)
	positive("bullets.player_duration", c.Bullets.PlayerDuration)
	positive("bullets.enemy_duration", c.Bullets.EnemyDuration)
	positive("hearts.width", c.Hearts.Width)
	positive("hearts.height", c.Hearts.Height)
	positive("hearts.lifetime", c.Hearts.Lifetime)
	probability("hearts.drop_chance", c.Hearts.DropChance)
	probability("audio.volume", c.Audio.Volume)

	if 2*c.Enemies.StopMargin >= c.World.Height {
		errs = append(errs, fmt.Errorf("enemies.stop_margin %g leaves no room in a world %g high", c.Enemies.StopMargin, c.World.Height))
	}
	if c.Enemies.Width >= c.World.Width {
		errs = append(errs, fmt.Errorf("enemies.width %g does not fit a world %g wide", c.Enemies.Width, c.World.Width))
	}

	return errors.Join(errs...)
}
