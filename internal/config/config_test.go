package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Speed, cfg.Speed)
	assert.Equal(t, def.General.StartLives, cfg.General.StartLives)
	assert.Equal(t, []string{"z", "q"}, cfg.Keys.DigLeft)
	assert.Equal(t, []string{"x", "e"}, cfg.Keys.DigRight)
}

func TestDefaultSpeedMatchesSimulation(t *testing.T) {
	assert.Equal(t, core.DefaultSpeed(), DefaultConfig().ToSpeed())
	assert.Equal(t, 75*time.Millisecond, DefaultConfig().Tick())
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("speed:\n  tick_ms: 50\n  guard_move_rate: 7\ngeneral:\n  start_lives: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Tick())
	assert.Equal(t, 7, cfg.Speed.GuardMoveRate)
	assert.Equal(t, 2, cfg.General.StartLives)
	// missing keys keep defaults
	assert.Equal(t, 100, cfg.Speed.HoleOpenTicks)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("speed: [1, 2"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Speed, cfg.Speed)
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	dir := filepath.Join(home, ".noderunner", "configs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("speed:\n  dig_duration: 9\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Speed.DigDuration)
}

func TestToSpeedZeroGoldCarryDisablesDrops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speed.GoldCarryTicks = 0
	cfg.Speed.PlayerMoveRate = 0
	s := cfg.ToSpeed()
	assert.Equal(t, 0, s.GoldCarryTicks)
	assert.Equal(t, core.DefaultSpeed().PlayerMoveRate, s.PlayerMoveRate)
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{" HARD ", DifficultyHard, true},
		{"fixed", DifficultyFixed, true},
		{"nightmare", "", false},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	assert.Equal(t, 7, easy.Speed.GuardMoveRate)
	assert.Equal(t, 91, easy.Speed.TrapEscapeTicks)
	assert.Equal(t, 130, easy.Speed.HoleOpenTicks)
	assert.Equal(t, 6, easy.General.StartLives)

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	assert.Equal(t, 4, hard.Speed.GuardMoveRate)
	assert.Equal(t, 53, hard.Speed.TrapEscapeTicks)
	assert.Equal(t, 75, hard.Speed.HoleOpenTicks)
	assert.Equal(t, 3, hard.General.StartLives)

	for _, p := range []DifficultyPreset{DifficultyNormal, DifficultyFixed} {
		cfg := DefaultConfig()
		ApplyPreset(&cfg, p)
		assert.Equal(t, DefaultConfig(), cfg, p)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+): it changes the working
// directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
