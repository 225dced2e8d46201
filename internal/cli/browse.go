package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/hilbert"
)

var (
	browseHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	browseCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BasisModel - page through basis states
// =============================================================================

// BasisModel is the bubbletea model of the browse command. Rows are decoded
// from the index on demand, so even large spaces open instantly.
type BasisModel struct {
	Index  *hilbert.Index
	Space  *hilbert.Space
	Cursor int
	Offset int
	Height int
}

// NewBasisModel creates a model positioned on the first basis state.
func NewBasisModel(sp *hilbert.Space, idx *hilbert.Index) BasisModel {
	return BasisModel{Index: idx, Space: sp, Height: 15}
}

func (m BasisModel) Init() tea.Cmd {
	return nil
}

func (m BasisModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup", "b":
			m.move(-m.Height)
		case "pgdown", "f", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-m.Cursor)
		case "end", "G":
			m.move(m.Index.NStates() - 1 - m.Cursor)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-7, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the basis, and scrolls the
// window so the cursor stays visible.
func (m *BasisModel) move(delta int) {
	last := m.Index.NStates() - 1
	m.Cursor = min(max(m.Cursor+delta, 0), last)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m BasisModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Basis States"))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("↑/↓ move  pgup/pgdn page  g/G first/last  q quit"))
	b.WriteString("\n\n")

	target, constrained := m.Space.Constraint()
	end := min(m.Offset+m.Height, m.Index.NStates())
	conf := make([]float64, m.Index.Size())
	rows := make([][]string, 0, end-m.Offset)
	allowed := make([]bool, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		if err := m.Index.NumberToStateInto(i, conf); err != nil {
			break
		}
		total := sum(conf)
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(i), formatState(conf), strconv.FormatFloat(total, 'g', -1, 64)})
		allowed = append(allowed, !constrained || total == target)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Index", "State", "Sum").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return browseHeaderStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if m.Offset+row == m.Cursor {
				return browseCursorStyle
			}
			if !allowed[row] {
				return browseDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Index.NStates())))
	if constrained {
		b.WriteString(browseDimStyle.Render(fmt.Sprintf("  dimmed rows break sum = %g", target)))
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// browseCommand creates the interactive basis browser.
func (c *CLI) browseCommand() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through the basis of a Hilbert space",
		Example: `  latticekit browse -L 6 --space spin --total-sz 0
  latticekit browse --config bosons.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(src.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			_, sp, err := src.requireSpace(ctx, cmd, runner)
			if err != nil {
				return err
			}
			idx, err := hilbert.NewIndex(sp)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewBasisModel(sp, idx), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return errs.Wrap(errs.ErrCodeInternal, err, "run browser")
			}
			return nil
		},
	}
	src.register(cmd, true)
	return cmd
}
