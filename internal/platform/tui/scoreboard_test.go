package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

func scoreboardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	runs := []storage.Run{
		{GameID: "pacman", Score: 3000, Level: 1, Difficulty: "hard", Won: true, Duration: 95},
		{GameID: "pacman", Score: 1200, Level: 1, Difficulty: "easy", Duration: 40},
		{GameID: "pacman", Score: 800, Level: 1},
		{GameID: "pacman_marathon", Score: 9000, Level: 4, Difficulty: "normal", Duration: 600},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	return store
}

func TestScoreboardShowsCurrentMode(t *testing.T) {
	m := NewScoreboardModel(scoreboardStore(t), 100, 40)

	if len(m.modes) < 2 || m.modes[0].ID != "pacman" {
		t.Fatalf("modes = %+v, expected pacman first", m.modes)
	}
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, expected 3", len(rows))
	}
	if rows[0][1] != "3000" || rows[0][2] != "1 ★" || rows[0][3] != "hard" || rows[0][4] != "1:35" {
		t.Errorf("first row = %v, expected 3000 won on hard in 1:35", rows[0])
	}
	if rows[2][3] != "config" {
		t.Errorf("difficulty of a run without preset = %q, expected config", rows[2][3])
	}
	if m.stats == nil || m.stats.GamesCount != 3 || m.stats.Wins != 1 {
		t.Errorf("stats = %+v, expected 3 games and 1 win", m.stats)
	}
}

func TestScoreboardSwitchesMode(t *testing.T) {
	m := NewScoreboardModel(scoreboardStore(t), 100, 40)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)

	rows := m.table.Rows()
	if len(rows) != 1 || rows[0][1] != "9000" || rows[0][2] != "4" {
		t.Errorf("marathon rows = %v, expected one run of 9000 at level 4", rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if got := len(m.table.Rows()); got != 3 {
		t.Errorf("rows after going back = %d, expected 3", got)
	}
}

func TestScoreboardDifficultyFilter(t *testing.T) {
	m := NewScoreboardModel(scoreboardStore(t), 100, 40)

	// difficultyChoices: all, easy, normal, hard, fixed
	press := func() {
		next, _ := m.Update(runeKey("d"))
		m = next.(ScoreboardModel)
	}

	press()
	if m.filterName() != "easy" {
		t.Fatalf("filterName() = %q, expected easy", m.filterName())
	}
	rows := m.table.Rows()
	if len(rows) != 1 || rows[0][1] != "1200" || rows[0][0] != "1" {
		t.Errorf("easy rows = %v, expected one run of 1200 ranked 1", rows)
	}

	press()
	if len(m.table.Rows()) != 0 {
		t.Errorf("normal rows = %d, expected 0", len(m.table.Rows()))
	}
	if !strings.Contains(m.View(), "No runs on this difficulty") {
		t.Error("View() did not explain the empty filter")
	}

	for m.filter != 0 {
		press()
	}
	if got := len(m.table.Rows()); got != 3 {
		t.Errorf("rows after cycling back to all = %d, expected 3", got)
	}
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 30)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("View() without a store should show the empty message")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || cmd == nil {
		t.Error("esc should go back and quit the standalone program")
	}

	embedded := NewScoreboardModel(nil, 60, 30)
	embedded.embedded = true
	next, cmd = embedded.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd != nil {
		t.Error("embedded scoreboard must go back without quitting")
	}
}

func TestFormatPlayTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{95 * time.Second, "1:35"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{2*time.Hour + 5*time.Minute, "2h05m"},
	}
	for _, tt := range tests {
		if got := formatPlayTime(tt.d); got != tt.want {
			t.Errorf("formatPlayTime(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}
