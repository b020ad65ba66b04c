package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/noderunner/internal/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/levels"
	"github.com/vovakirdan/noderunner/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "f6":
		return tea.KeyMsg{Type: tea.KeyF6}
	case "f12":
		return tea.KeyMsg{Type: tea.KeyF12}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKeyMapLookup(t *testing.T) {
	km := NewGameKeyMap(nil, []string{"C", " x "})

	tests := []struct {
		key    string
		action core.Action
		slot   int
	}{
		{"left", core.ActionLeft, 0},
		{"a", core.ActionLeft, 0},
		{"d", core.ActionRight, 0},
		{"up", core.ActionUp, 0},
		{"s", core.ActionDown, 0},
		{"z", core.ActionDigLeft, 0},
		{"q", core.ActionDigLeft, 0},
		{"e", core.ActionDigRight, 0},
		{"c", core.ActionDigRight, 0},
		{"enter", core.ActionConfirm, 0},
		{"esc", core.ActionBack, 0},
		{"f1", core.ActionPause, 0},
		{"r", core.ActionRestart, 0},
		{"f2", core.ActionRestart, 0},
		{"f6", core.ActionSave, 2},
		{"f12", core.ActionLoad, 4},
		{"ctrl+c", core.ActionQuit, 0},
		{"m", core.ActionNone, 0},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			action, slot := km.Lookup(keyMsg(tc.key))
			assert.Equal(t, tc.action, action)
			assert.Equal(t, tc.slot, slot)
		})
	}
}

func TestMergeKeysSkipsDuplicates(t *testing.T) {
	assert.Equal(t, []string{"x", "e", "c"}, mergeKeys([]string{"x", "e"}, []string{"X", "", "c", "e"}))
}

func TestMapKeyToMenuAction(t *testing.T) {
	assert.Equal(t, MenuActionUp, MapKeyToMenuAction(keyMsg("k")))
	assert.Equal(t, MenuActionDown, MapKeyToMenuAction(keyMsg("down")))
	assert.Equal(t, MenuActionSelect, MapKeyToMenuAction(keyMsg("enter")))
	assert.Equal(t, MenuActionBack, MapKeyToMenuAction(keyMsg("esc")))
	assert.Equal(t, MenuActionScoreboard, MapKeyToMenuAction(keyMsg("tab")))
	assert.Equal(t, MenuActionQuit, MapKeyToMenuAction(keyMsg("q")))
	assert.Equal(t, MenuActionNone, MapKeyToMenuAction(keyMsg("x")))
}

func TestHoldTracker(t *testing.T) {
	h := newHoldTracker()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, 0, t0)
	f := h.Frame(t0.Add(10 * time.Millisecond))
	assert.True(t, f.Has(core.ActionLeft))
	assert.True(t, f.Held[core.ActionLeft])

	// auto-repeat keeps the key held but is not a new press
	h.Press(core.ActionLeft, 0, t0.Add(40*time.Millisecond))
	f = h.Frame(t0.Add(75 * time.Millisecond))
	assert.False(t, f.Has(core.ActionLeft))
	assert.True(t, f.Active(core.ActionLeft))

	// released once repeats stop for longer than the timeout
	f = h.Frame(t0.Add(40*time.Millisecond + HoldTimeout + time.Millisecond))
	assert.False(t, f.Active(core.ActionLeft))
}

func TestHoldTrackerDigIsEdgeTriggered(t *testing.T) {
	h := newHoldTracker()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionDigLeft, 0, t0)
	assert.True(t, h.Frame(t0).Has(core.ActionDigLeft))

	h.Press(core.ActionDigLeft, 0, t0.Add(30*time.Millisecond))
	f := h.Frame(t0.Add(30 * time.Millisecond))
	assert.False(t, f.Has(core.ActionDigLeft))
	assert.False(t, f.Held[core.ActionDigLeft], "only directions are held")

	later := t0.Add(30*time.Millisecond + HoldTimeout + time.Millisecond)
	h.Press(core.ActionDigLeft, 0, later)
	assert.True(t, h.Frame(later).Has(core.ActionDigLeft))
}

func TestHoldTrackerSlotAndReset(t *testing.T) {
	h := newHoldTracker()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionSave, 3, t0)
	f := h.Frame(t0)
	assert.True(t, f.Has(core.ActionSave))
	assert.Equal(t, 3, f.Slot)
	assert.Equal(t, 0, h.Frame(t0).Slot)

	h.Press(core.ActionUp, 0, t0)
	h.Reset()
	assert.False(t, h.Frame(t0).Active(core.ActionUp))
}

type stubGame struct {
	state  core.GameState
	exit   bool
	err    error
	frames []core.InputFrame
	resets int
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Err() error               { return g.err }
func (g *stubGame) PackName() string         { return "Stub Pack" }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "stub") }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state, Exit: g.exit}
}

type recordedScore struct {
	pack         string
	level, score int
}

type scoreRecorder struct {
	saved []recordedScore
	err   error
}

func (r *scoreRecorder) SaveScore(pack string, level, score int) (int64, error) {
	r.saved = append(r.saved, recordedScore{pack, level, score})
	return int64(len(r.saved)), r.err
}

func newTestModel(g *stubGame, scores ScoreSaver) Model {
	m := NewModel(g, scores, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, Tick: 50 * time.Millisecond}, NewGameKeyMap(nil, nil))
	t0 := time.Unix(1000, 0)
	m.now = func() time.Time { return t0 }
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestModelFeedsKeysToGame(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	m.Init()
	assert.Equal(t, 1, g.resets)

	m, _ = update(t, m, keyMsg("z"))
	m, cmd := update(t, m, TickMsg(time.Now()))
	require.NotNil(t, cmd)
	require.Len(t, g.frames, 1)
	assert.True(t, g.frames[0].Has(core.ActionDigLeft))

	update(t, m, TickMsg(time.Now()))
	require.Len(t, g.frames, 2)
	assert.False(t, g.frames[1].Has(core.ActionDigLeft))
}

func TestModelSavesScoreOnce(t *testing.T) {
	g := &stubGame{}
	rec := &scoreRecorder{}
	m := newTestModel(g, rec)

	g.state = core.GameState{Score: 1200, Level: 3, GameOver: true}
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))
	require.Len(t, rec.saved, 1)
	assert.Equal(t, recordedScore{"Stub Pack", 3, 1200}, rec.saved[0])

	// a new game over after play resumes is recorded again
	g.state = core.GameState{Score: 10}
	m, _ = update(t, m, TickMsg(time.Now()))
	g.state = core.GameState{Score: 40, Level: 1, GameOver: true}
	update(t, m, TickMsg(time.Now()))
	assert.Len(t, rec.saved, 2)
}

func TestModelSkipsZeroScoreAndCollectsErrors(t *testing.T) {
	g := &stubGame{state: core.GameState{GameOver: true}}
	rec := &scoreRecorder{err: errors.New("db down")}
	m := newTestModel(g, rec)

	m, _ = update(t, m, TickMsg(time.Now()))
	assert.Empty(t, rec.saved)

	g.err = errors.New("save failed")
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))
	out := m.Outcome()
	require.Len(t, out.Errors, 1)
	assert.EqualError(t, out.Errors[0], "save failed")
}

func TestModelExitAndQuit(t *testing.T) {
	g := &stubGame{exit: true}
	m := newTestModel(g, nil)

	m, cmd := update(t, m, TickMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.True(t, m.Outcome().Exited)
	assert.False(t, m.Outcome().Quit)

	m2 := newTestModel(&stubGame{}, nil)
	m2, _ = update(t, m2, keyMsg("ctrl+c"))
	assert.True(t, m2.Outcome().Quit)
	assert.Empty(t, m2.View())
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 8})
	assert.Equal(t, 0, g.resets)
	assert.Equal(t, 30, m.screen.Width())
	assert.True(t, strings.HasPrefix(m.View(), "stub"))
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorBrightYellow)
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, '#', core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ab")
	assert.Contains(t, lines[0], "cd")
	assert.Contains(t, lines[1], "#")
}

func testPacks() []levels.Pack {
	lvl := func(name string) levels.Level { return levels.Level{Name: name, Rows: []string{"P$", "=="}} }
	return []levels.Pack{
		{Name: "Alpha", Levels: []levels.Level{lvl("One"), lvl("Two")}},
		{Name: "Beta", Levels: []levels.Level{lvl("Solo")}},
	}
}

func TestMenuSelectsPack(t *testing.T) {
	m := NewMenuModel(testPacks(), core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	assert.Contains(t, m.View(), "Alpha (2)")

	next, _ := m.Update(keyMsg("down"))
	next, cmd := next.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	res := menuResult(next.(MenuModel))
	assert.Equal(t, 1, res.Pack)
	assert.False(t, res.Quit)

	next, _ = m.Update(keyMsg("tab"))
	assert.True(t, menuResult(next.(MenuModel)).WantsScoreboard)

	next, _ = m.Update(keyMsg("esc"))
	assert.True(t, menuResult(next.(MenuModel)).Quit)
}

func TestLevelSelectChoices(t *testing.T) {
	pack := testPacks()[0]

	m := NewLevelSelectModel(pack, true, 60, 20)
	view := m.View()
	assert.Contains(t, view, "Continue")
	assert.Contains(t, view, "Start from Beginning")
	assert.Contains(t, view, " 2. Two")

	next, _ := m.Update(keyMsg("enter"))
	assert.Equal(t, &LevelSelection{Continue: true}, next.(LevelSelectModel).Selected())

	var cur tea.Model = m
	for i := 0; i < 3; i++ {
		cur, _ = cur.Update(keyMsg("down"))
	}
	cur, _ = cur.Update(keyMsg("enter"))
	assert.Equal(t, &LevelSelection{Level: 1}, cur.(LevelSelectModel).Selected())

	noCont := NewLevelSelectModel(pack, false, 60, 20)
	assert.NotContains(t, noCont.View(), "Continue")
	next, _ = noCont.Update(keyMsg("enter"))
	assert.Equal(t, &LevelSelection{Level: 0}, next.(LevelSelectModel).Selected())

	next, _ = noCont.Update(keyMsg("esc"))
	assert.True(t, next.(LevelSelectModel).WantsBack())
	assert.Nil(t, next.(LevelSelectModel).Selected())
}

func TestLevelSelectScrolls(t *testing.T) {
	pack := levels.Pack{Name: "Big"}
	for i := 0; i < 30; i++ {
		pack.Levels = append(pack.Levels, levels.Level{Name: "L"})
	}
	var cur tea.Model = NewLevelSelectModel(pack, false, 60, 14)
	for i := 0; i < 10; i++ {
		cur, _ = cur.Update(keyMsg("down"))
	}
	m := cur.(LevelSelectModel)
	assert.Equal(t, 10, m.cursor)
	assert.Equal(t, 7, m.scrollOffset)
	assert.Contains(t, m.View(), "more above")
	assert.Contains(t, m.View(), "more below")
}

type fakeScores map[string][]storage.ScoreEntry

func (f fakeScores) TopScores(pack string, limit int) ([]storage.ScoreEntry, error) {
	if pack == "Broken" {
		return nil, errors.New("no table")
	}
	return f[pack], nil
}

func (f fakeScores) GetPackStats(pack string) (*storage.PackStats, error) {
	entries := f[pack]
	if len(entries) == 0 {
		return nil, errors.New("no runs")
	}
	st := &storage.PackStats{Pack: pack, GamesCount: len(entries)}
	for _, e := range entries {
		st.HighScore = max(st.HighScore, e.Score)
		st.BestLevel = max(st.BestLevel, e.Level)
		st.TotalScore += int64(e.Score)
	}
	st.AvgScore = float64(st.TotalScore) / float64(len(entries))
	return st, nil
}

func TestScoreboardSwitchesPacks(t *testing.T) {
	scores := fakeScores{
		"Alpha": {{Pack: "Alpha", Level: 3, Score: 900, CreatedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)}},
	}
	m := NewScoreboardModel(scores, []string{"Alpha", "Beta", "Broken"}, 100, 30)
	assert.Contains(t, m.View(), "HIGH SCORES - Alpha")
	assert.Contains(t, m.View(), "900")
	assert.Contains(t, m.View(), "Best 900  Runs 1  Avg 900  Furthest node 3")

	next, _ := m.Update(keyMsg("tab"))
	sb := next.(ScoreboardModel)
	assert.Contains(t, sb.View(), "No scores recorded yet")

	next, _ = sb.Update(keyMsg("tab"))
	assert.Contains(t, next.(ScoreboardModel).View(), "no table")

	next, _ = m.Update(keyMsg("left"))
	assert.Equal(t, 2, next.(ScoreboardModel).packCursor)

	next, _ = m.Update(keyMsg("esc"))
	assert.True(t, next.(ScoreboardModel).IsGoingBack())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Built-in .", truncate("Built-in Levels", 10))
}
