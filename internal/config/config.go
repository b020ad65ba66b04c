// Package config loads the Node Runner tuning file.
package config

import (
	"time"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

// Config holds all settings read from noderunner.yaml.
type Config struct {
	Speed   SpeedConfig   `yaml:"speed"`
	General GeneralConfig `yaml:"general"`
	Keys    KeysConfig    `yaml:"keys"`
}

// SpeedConfig defines the tick length and the per-entity tick rates.
type SpeedConfig struct {
	TickMs            int `yaml:"tick_ms"`
	PlayerMoveRate    int `yaml:"player_move_rate"`
	GuardMoveRate     int `yaml:"guard_move_rate"`
	DigDuration       int `yaml:"dig_duration"`
	HoleOpenTicks     int `yaml:"hole_open_ticks"`
	HoleCloseTicks    int `yaml:"hole_close_ticks"`
	TrapEscapeTicks   int `yaml:"trap_escape_ticks"`
	GuardRespawnTicks int `yaml:"guard_respawn_ticks"`
	GoldCarryTicks    int `yaml:"gold_carry_ticks"`
}

// GeneralConfig defines session settings.
type GeneralConfig struct {
	LevelsDir  string `yaml:"levels_dir"`
	StartLives int    `yaml:"start_lives"`
}

// KeysConfig lists extra key names bound to the dig actions.
type KeysConfig struct {
	DigLeft  []string `yaml:"dig_left"`
	DigRight []string `yaml:"dig_right"`
}

// Tick returns the tick duration, falling back to the default for
// non-positive values.
func (c Config) Tick() time.Duration {
	if c.Speed.TickMs <= 0 {
		return time.Duration(DefaultConfig().Speed.TickMs) * time.Millisecond
	}
	return time.Duration(c.Speed.TickMs) * time.Millisecond
}

// ToSpeed converts the rates into the simulation's Speed. Zero fields keep
// the simulation defaults, except gold_carry_ticks where 0 disables drops.
func (c Config) ToSpeed() core.Speed {
	s := core.DefaultSpeed()
	pick := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	pick(&s.PlayerMoveRate, c.Speed.PlayerMoveRate)
	pick(&s.GuardMoveRate, c.Speed.GuardMoveRate)
	pick(&s.DigDuration, c.Speed.DigDuration)
	pick(&s.HoleOpenTicks, c.Speed.HoleOpenTicks)
	pick(&s.HoleCloseTicks, c.Speed.HoleCloseTicks)
	pick(&s.TrapEscapeTicks, c.Speed.TrapEscapeTicks)
	pick(&s.GuardRespawnTicks, c.Speed.GuardRespawnTicks)
	if c.Speed.GoldCarryTicks >= 0 {
		s.GoldCarryTicks = c.Speed.GoldCarryTicks
	}
	return s
}
