package config

import (
	_ "embed"
)

//go:embed defaults/noderunner.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration.
func DefaultConfig() Config {
	return Config{
		Speed: SpeedConfig{
			TickMs:            75,
			PlayerMoveRate:    2,
			GuardMoveRate:     5,
			DigDuration:       5,
			HoleOpenTicks:     100,
			HoleCloseTicks:    20,
			TrapEscapeTicks:   70,
			GuardRespawnTicks: 40,
			GoldCarryTicks:    150,
		},
		General: GeneralConfig{
			StartLives: 5,
		},
	}
}

// DefaultYAML returns the embedded default file.
func DefaultYAML() []byte {
	return defaultYAML
}
