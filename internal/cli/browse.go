package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/spanview/spanview/pkg/graphio"
	"github.com/spanview/spanview/pkg/layout"
	"github.com/spanview/spanview/pkg/nav"
	"github.com/spanview/spanview/pkg/vizstate"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listMatchStyle    = lipgloss.NewStyle().Foreground(colorGreen)
)

// newBrowseCmd creates the browse command, which opens a snapshot in an
// interactive terminal UI.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <snapshot>",
		Short: "Navigate a snapshot in an interactive terminal UI",
		Long: `Browse opens a hypergraph snapshot in a terminal UI. The cursor hovers
nodes as it moves; enter focuses a node and highlights its ancestor chain.
Jump along parent and child references with p and c, and search labels
with /.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := graphio.ReadSnapshotFile(args[0])
			if err != nil {
				return err
			}

			controller := nav.New(nil)
			built, err := controller.ReplaceSnapshot(cmd.Context(), snapshot)
			if err != nil {
				printError("snapshot rejected: %v", err)
				return err
			}

			model := newBrowseModel(controller, built)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// browseModel is the bubbletea model for interactive snapshot navigation.
type browseModel struct {
	controller *nav.Controller
	layout     *layout.GraphLayout
	indices    []int

	cursor int
	offset int
	height int

	searching bool
	query     string
	status    string
}

func newBrowseModel(controller *nav.Controller, l *layout.GraphLayout) browseModel {
	m := browseModel{
		controller: controller,
		layout:     l,
		indices:    l.Indices(),
		height:     15,
	}
	if len(m.indices) > 0 {
		m.controller.HoverNode(m.indices[0])
	}
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "enter":
			m.focusCurrent()
		case "p":
			m.jumpToParent()
		case "c":
			m.jumpToChild()
		case "/":
			m.searching = true
			m.query = ""
		case "esc":
			m.controller.ClearHighlight()
			m.controller.MarkSearchMatches(nil)
			m.status = ""
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.query = ""
	case "enter":
		m.searching = false
		m.runSearch()
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
		}
	}
	return m, nil
}

// moveCursor shifts the cursor and moves the hover tag with it.
func (m *browseModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.indices) {
		return
	}
	m.cursor = next
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	m.controller.HoverNode(m.indices[m.cursor])
}

// focusCurrent selects the cursor node and highlights its ancestor chain.
func (m *browseModel) focusCurrent() {
	index := m.indices[m.cursor]
	if err := m.controller.FocusNode(context.Background(), index); err != nil {
		m.status = fmt.Sprintf("focus failed: %v", err)
		return
	}
	if path, err := m.controller.AncestorPath(index); err == nil {
		m.controller.HighlightPath(path)
	}
	m.status = fmt.Sprintf("focused node %d", index)
}

func (m *browseModel) jumpToParent() {
	n, ok := m.layout.Node(m.indices[m.cursor])
	if !ok || len(n.Parents) == 0 {
		m.status = "no parent"
		return
	}
	m.jumpTo(n.Parents[0])
}

func (m *browseModel) jumpToChild() {
	n, ok := m.layout.Node(m.indices[m.cursor])
	if !ok || len(n.Children) == 0 {
		m.status = "no children"
		return
	}
	m.jumpTo(n.Children[0])
}

// jumpTo moves the cursor to the node with the given index.
func (m *browseModel) jumpTo(index int) {
	for i, candidate := range m.indices {
		if candidate == index {
			m.moveCursor(i - m.cursor)
			return
		}
	}
	m.status = fmt.Sprintf("node %d not in layout", index)
}

// runSearch tags label substring matches and jumps to the first one.
func (m *browseModel) runSearch() {
	if m.query == "" {
		m.controller.MarkSearchMatches(nil)
		m.status = ""
		return
	}

	var matches []int
	needle := strings.ToLower(m.query)
	for _, index := range m.indices {
		n, _ := m.layout.Node(index)
		if strings.Contains(strings.ToLower(n.DisplayLabel()), needle) {
			matches = append(matches, index)
		}
	}

	m.controller.MarkSearchMatches(matches)
	m.status = fmt.Sprintf("%d matches for %q", len(matches), m.query)
	if len(matches) > 0 {
		m.jumpTo(matches[0])
	}
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Spanview"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ focus  p parent  c child  / search  esc clear  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.indices) {
		end = len(m.indices)
	}

	state := m.controller.State()
	for i := m.offset; i < end; i++ {
		index := m.indices[i]
		n, _ := m.layout.Node(index)
		tier := m.layout.Tier(index)

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := " "
		switch {
		case state.Has(index, vizstate.TagSelected):
			marker = "●"
		case state.Has(index, vizstate.TagOnActivePath):
			marker = "·"
		}

		line := fmt.Sprintf("%s%s %4d  %-28s w%-4d %s",
			cursor, marker, n.Index, truncate(n.DisplayLabel(), 28), n.Width,
			tierStyle(tier).Render(fmt.Sprintf("%-5s", tier)))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case state.Has(index, vizstate.TagSearchMatch):
			b.WriteString(listMatchStyle.Render(line))
		case tier == layout.TierInfo:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.searching {
		b.WriteString(StyleHighlight.Render("/" + m.query))
	} else if m.status != "" {
		b.WriteString(listDimStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.indices))))

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
