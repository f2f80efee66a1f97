package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cgraph/pkg/config"
)

// runPicker runs an interactive model to completion. Tests replace it.
var runPicker = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithOutput(status)).Run()
}

// =============================================================================
// FixtureListModel - Interactive graph fixture selection
// =============================================================================

// FixtureSummary describes one graph fixture of the configuration file.
type FixtureSummary struct {
	Name         string
	Concepts     int
	Relations    int
	Coreferences int
}

// summarizeFixtures lists the fixtures of f in name order.
func summarizeFixtures(f *config.File) []FixtureSummary {
	names := f.GraphNames()
	list := make([]FixtureSummary, len(names))
	for i, name := range names {
		sec := f.Graphs[name]
		list[i] = FixtureSummary{
			Name:         name,
			Concepts:     len(sec.Concepts),
			Relations:    len(sec.Relations),
			Coreferences: len(sec.Coreferences),
		}
	}
	return list
}

// FixtureListModel is the bubbletea model for picking a graph fixture.
type FixtureListModel struct {
	Title    string
	Fixtures []FixtureSummary
	Cursor   int
	Selected *FixtureSummary
	Height   int
	Offset   int
}

// NewFixtureListModel creates a fixture list model.
func NewFixtureListModel(title string, fixtures []FixtureSummary) FixtureListModel {
	return FixtureListModel{Title: title, Fixtures: fixtures, Height: 15}
}

func (m FixtureListModel) Init() tea.Cmd {
	return nil
}

func (m FixtureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Fixtures)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Fixtures) == 0 {
				return m, tea.Quit
			}
			fx := m.Fixtures[m.Cursor]
			m.Selected = &fx
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m FixtureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Fixtures))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		fx := m.Fixtures[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor, fx.Name,
			strconv.Itoa(fx.Concepts), strconv.Itoa(fx.Relations), strconv.Itoa(fx.Coreferences),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Fixture", "Concepts", "Relations", "Coref sets").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Fixtures))))

	return b.String()
}

// pickFixture asks for a fixture interactively. It returns "" when the
// user quits without choosing.
func pickFixture(f *config.File, title string) (string, error) {
	fixtures := summarizeFixtures(f)
	if len(fixtures) == 0 {
		return "", fmt.Errorf("no graph fixtures in configuration")
	}
	final, err := runPicker(NewFixtureListModel(title, fixtures))
	if err != nil {
		return "", err
	}
	fm, ok := final.(FixtureListModel)
	if !ok || fm.Selected == nil {
		return "", nil
	}
	return fm.Selected.Name, nil
}
