// Package config provides YAML-based game configuration loading and
// the difficulty model for Space Battle.
package config

// SpaceBattleConfig contains all tunable parameters of the Space Battle simulation.
// Times are in seconds and distances in world units.
type SpaceBattleConfig struct {
	World      WorldConfig      `yaml:"world"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Bullets    BulletsConfig    `yaml:"bullets"`
	Hearts     HeartsConfig     `yaml:"hearts"`
	Background BackgroundConfig `yaml:"background"`
	Audio      AudioConfig      `yaml:"audio"`
}

// WorldConfig is the size of the play area. The origin is the bottom-left corner.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GameplayConfig holds lives and the phase transition timings.
type GameplayConfig struct {
	Lives          int     `yaml:"lives"`
	StartDelay     float64 `yaml:"start_delay"`     // wait before the first in-game spawn loop
	GameOverDelay  float64 `yaml:"game_over_delay"` // wait between last life and scene transition
	TransitionFade float64 `yaml:"transition_fade"`
	HUDFade        float64 `yaml:"hud_fade"`
	FlashDuration  float64 `yaml:"flash_duration"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	StartY           float64 `yaml:"start_y"`    // fraction of world height, below the screen
	EntranceY        float64 `yaml:"entrance_y"` // fraction of world height
	EntranceDuration float64 `yaml:"entrance_duration"`
}

// EnemiesConfig defines enemy spawning and trajectories.
type EnemiesConfig struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	DecorativeInterval float64 `yaml:"decorative_interval"`
	SpawnInterval      float64 `yaml:"spawn_interval"`
	ShootChance        float64 `yaml:"shoot_chance"`
	ShootPause         float64 `yaml:"shoot_pause"`
	ShootBand          float64 `yaml:"shoot_band"`  // shoot row is drawn from the top band of this height
	ExitDepth          float64 `yaml:"exit_depth"`  // fraction of world height below the bottom edge
	LoopRadius         float64 `yaml:"loop_radius"` // radius of the decorative loop
	LoopLegDuration    float64 `yaml:"loop_leg_duration"`
	StopMargin         float64 `yaml:"stop_margin"` // decorative stop row keeps this far from top and bottom
}

// BulletsConfig defines player and enemy projectiles.
type BulletsConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	PlayerDuration float64 `yaml:"player_duration"`
	PlayerReach    float64 `yaml:"player_reach"` // fraction of world height
	EnemyDuration  float64 `yaml:"enemy_duration"`
}

// HeartsConfig defines the extra-life pickup.
type HeartsConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DropChance float64 `yaml:"drop_chance"`
	Speed      float64 `yaml:"speed"` // units per tick
	Lifetime   float64 `yaml:"lifetime"`
	MaxAngle   float64 `yaml:"max_angle"` // degrees either side of straight down
}

// BackgroundConfig defines the scrolling backdrop.
type BackgroundConfig struct {
	ScrollSpeed float64 `yaml:"scroll_speed"`
}

// AudioConfig controls the sound effects player.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 to 1.0
	SampleRate int     `yaml:"sample_rate"`
}
