package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// presetScale returns how guard pace and hole timers stretch for a preset.
// Values above 1 make the game easier.
func presetScale(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.3
	case DifficultyHard:
		return 0.75
	default:
		return 1.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Fixed and normal keep the file values.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed || preset == DifficultyNormal {
		return
	}
	k := presetScale(preset)
	s := &cfg.Speed
	s.GuardMoveRate = scaleTicks(s.GuardMoveRate, k, 2, 20)
	s.TrapEscapeTicks = scaleTicks(s.TrapEscapeTicks, k, 20, 400)
	s.HoleOpenTicks = scaleTicks(s.HoleOpenTicks, k, 30, 600)

	switch preset {
	case DifficultyEasy:
		cfg.General.StartLives++
	case DifficultyHard:
		if cfg.General.StartLives > 3 {
			cfg.General.StartLives = 3
		}
	}
}

func scaleTicks(v int, k float64, lo, hi int) int {
	if v <= 0 {
		return v
	}
	return int(clampF(math.Round(float64(v)*k), float64(lo), float64(hi)))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
