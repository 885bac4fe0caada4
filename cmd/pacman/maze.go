package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman/maze"
)

var flagMazePlain bool

var mazeCmd = &cobra.Command{
	Use:   "maze",
	Short: "Print the maze",
	Long: `Print the maze the game will use, with the player start (P) and the
ghost starts (G) marked.

The maze comes from the same config lookup as 'pacman play', so this is
a quick way to check a custom layout.

Examples:
  pacman maze
  pacman maze --config ./my-maze.yaml
  pacman maze --plain > layout.txt`,
	Args: cobra.NoArgs,
	Run:  runMaze,
}

func init() {
	gameFlags(mazeCmd)
	mazeCmd.Flags().BoolVar(&flagMazePlain, "plain", false, "Print without colors or markers")
}

var (
	mazeWallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mazePelletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	mazePowerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Bold(true)
	mazeDoorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	mazePlayerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mazeGhostStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func runMaze(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadPacman(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := maze.NewClassic()
	if len(cfg.Maze.Layout) > 0 {
		m, err = maze.New(cfg.Maze.Layout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid maze layout: %v\n", err)
			os.Exit(1)
		}
	}

	if flagMazePlain {
		fmt.Println(m.String())
		return
	}

	colored := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Println(renderMaze(m, cfg, colored))
	fmt.Println()
	fmt.Printf("%dx%d, %d pellets (%d power)\n",
		m.Width(), m.Height(), m.PelletCount(), len(m.Find(maze.PowerPellet)))
}

// renderMaze draws the maze with the start markers, colored when asked.
func renderMaze(m *maze.Maze, cfg config.PacmanConfig, colored bool) string {
	ghostStarts := make(map[core.Point]bool, 4)
	for _, p := range cfg.House.Starts.Array() {
		ghostStarts[p] = true
	}

	var sb strings.Builder
	for y := range m.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range m.Width() {
			p := core.Pt(x, y)
			t := m.TileAt(p)
			r := string(t.Rune())
			style := lipgloss.NewStyle()

			switch {
			case p == cfg.Maze.PlayerStart:
				r, style = "P", mazePlayerStyle
			case ghostStarts[p]:
				r, style = "G", mazeGhostStyle
			case t == maze.Wall:
				style = mazeWallStyle
			case t == maze.Pellet:
				style = mazePelletStyle
			case t == maze.PowerPellet:
				style = mazePowerStyle
			case t == maze.GhostDoor:
				style = mazeDoorStyle
			case t == maze.Empty:
				r = " "
			}

			if colored {
				r = style.Render(r)
			}
			sb.WriteString(r)
		}
	}
	return sb.String()
}
