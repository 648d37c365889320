package config

import (
	_ "embed"
)

//go:embed defaults/spacebattle.yaml
var defaultSpaceBattleYAML []byte

// DefaultSpaceBattleConfig returns the default Space Battle configuration.
func DefaultSpaceBattleConfig() SpaceBattleConfig {
	return SpaceBattleConfig{
		World: WorldConfig{
			Width:  414,
			Height: 736,
		},
		Gameplay: GameplayConfig{
			Lives:          3,
			StartDelay:     1.0,
			GameOverDelay:  0.5,
			TransitionFade: 0.5,
			HUDFade:        0.3,
			FlashDuration:  0.2,
		},
		Player: PlayerConfig{
			Width:            50,
			Height:           50,
			StartY:           -0.2,
			EntranceY:        0.2,
			EntranceDuration: 0.3,
		},
		Enemies: EnemiesConfig{
			Width:              50,
			Height:             50,
			DecorativeInterval: 2.0,
			SpawnInterval:      0.75,
			ShootChance:        0.2,
			ShootPause:         0.1,
			ShootBand:          100,
			ExitDepth:          0.2,
			LoopRadius:         50,
			LoopLegDuration:    1.0,
			StopMargin:         100,
		},
		Bullets: BulletsConfig{
			Width:          10,
			Height:         30,
			PlayerDuration: 1.5,
			PlayerReach:    1.2,
			EnemyDuration:  2.0,
		},
		Hearts: HeartsConfig{
			Width:      30,
			Height:     30,
			DropChance: 0.05,
			Speed:      5,
			Lifetime:   8.0,
			MaxAngle:   45,
		},
		Background: BackgroundConfig{
			ScrollSpeed: 300,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "spacebattle":
		return defaultSpaceBattleYAML
	default:
		return nil
	}
}
