package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

const (
	// Below this width the stats panel goes under the table.
	minWidthForStats = 90
	statsWidth       = 26
	maxScores        = 100
)

var (
	sbTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbDimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextMode   key.Binding
	PrevMode   key.Binding
	Difficulty key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Difficulty, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode, k.Difficulty},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMode:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next mode")),
		PrevMode:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev mode")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of each game mode with their stats.
type ScoreboardModel struct {
	modes   []registry.GameInfo
	mode    int
	filter  int // index into difficultyChoices; 0 shows every run
	store   *storage.Store
	runs    []storage.Run // every loaded run of the current mode
	visible []storage.Run // runs passing the difficulty filter
	stats   *storage.GameStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width     int
	height    int
	quitting  bool
	goingBack bool
	embedded  bool // runs inside another model; back must not quit the program
}

// NewScoreboardModel creates a scoreboard opened on the first game mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) wide() bool {
	return m.width >= minWidthForStats
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 7},
		{Title: "Difficulty", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 12},
	}

	height := m.height - 10
	if !m.wide() {
		height -= 9 // stats box below the table
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches runs and stats of the current mode from the store.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		if runs, err := m.store.TopScores(id, maxScores); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.applyFilter()
}

// applyFilter rebuilds the table rows from the loaded runs. Ranks are the
// positions within the filtered list.
func (m *ScoreboardModel) applyFilter() {
	want := difficultyChoices[m.filter]
	m.visible = make([]storage.Run, 0, len(m.runs))
	for _, r := range m.runs {
		if want == "" || config.DifficultyPreset(r.Difficulty) == want {
			m.visible = append(m.visible, r)
		}
	}

	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		level := fmt.Sprintf("%d", r.Level)
		if r.Won {
			level += " ★"
		}
		difficulty := r.Difficulty
		if difficulty == "" {
			difficulty = "config"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			level,
			difficulty,
			formatPlayTime(time.Duration(r.Duration) * time.Second),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// filterName is the label of the difficulty filter.
func (m ScoreboardModel) filterName() string {
	if d := difficultyChoices[m.filter]; d != "" {
		return string(d)
	}
	return "all"
}

func formatPlayTime(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.mode = (m.mode + 1) % len(m.modes)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.mode = (m.mode - 1 + len(m.modes)) % len(m.modes)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Difficulty):
			m.filter = (m.filter + 1) % len(difficultyChoices)
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.applyFilter()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(sbTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(centerText("difficulty: "+m.filterName(), m.width)))
	b.WriteString("\n\n")

	scores := sbBoxStyle.Render(m.renderTable())
	stats := sbBoxStyle.Width(statsWidth).Render(m.renderStats())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, scores, "  ", stats))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, scores, stats))
	}

	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = sbActiveTabStyle.Render(g.Title)
		} else {
			tabs[i] = sbTabStyle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderTable() string {
	if len(m.visible) == 0 {
		msg := "No scores recorded yet.\nClear a maze to get on the board!"
		if len(m.runs) > 0 {
			msg = "No runs on this difficulty."
		}
		return sbDimStyle.Italic(true).Padding(2, 4).Render(msg)
	}
	return m.table.View()
}

func (m ScoreboardModel) renderStats() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return sbDimStyle.Render("No games played.")
	}

	lines := []string{
		sbTitleStyle.Render("Stats"),
		fmt.Sprintf("Games      %d", st.GamesCount),
		fmt.Sprintf("Wins       %d", st.Wins),
		fmt.Sprintf("Best       %d", st.HighScore),
		fmt.Sprintf("Best level %d", st.BestLevel),
		fmt.Sprintf("Average    %.0f", st.AvgScore),
		fmt.Sprintf("Played     %s", formatPlayTime(st.PlayTime)),
	}
	if !st.LastPlayed.IsZero() {
		lines = append(lines, fmt.Sprintf("Last       %s", st.LastPlayed.Format("Jan 02")))
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
