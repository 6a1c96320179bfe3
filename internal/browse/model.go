// Package browse is an interactive terminal browser for a replayed tree.
package browse

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dendrascience/replayfs/fstree"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	sizeStyle     = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// Model shows the children of one directory, largest first.
type Model struct {
	tree    *fstree.Tree
	dir     fstree.NodeID
	entries []fstree.NodeID
	cursor  int
	trail   []int // cursor positions of the directories above
	height  int
}

// New returns a model positioned at the root of tree.
func New(tree *fstree.Tree) Model {
	m := Model{tree: tree, dir: tree.Root()}
	m.load()
	return m
}

// Run starts the browser and blocks until the user quits.
func Run(tree *fstree.Tree, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(tree),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}

// Dir returns the directory being shown.
func (m Model) Dir() fstree.NodeID {
	return m.dir
}

// Selected returns the highlighted entry, or fstree.NoNode in an empty directory.
func (m Model) Selected() fstree.NodeID {
	if len(m.entries) == 0 {
		return fstree.NoNode
	}
	return m.entries[m.cursor]
}

func (m *Model) load() {
	m.entries = m.tree.Children(m.dir)
	slices.SortStableFunc(m.entries, func(a, b fstree.NodeID) int {
		return cmp.Compare(m.tree.Size(b), m.tree.Size(a))
	})
	if m.cursor >= len(m.entries) {
		m.cursor = max(0, len(m.entries)-1)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			m.enter()
		case "backspace", "left", "h":
			m.leave()
		}
	}
	return m, nil
}

func (m *Model) enter() {
	id := m.Selected()
	if id == fstree.NoNode {
		return
	}
	n, err := m.tree.Node(id)
	if err != nil || !n.IsDir() {
		return
	}
	m.trail = append(slices.Clip(m.trail), m.cursor)
	m.dir = id
	m.cursor = 0
	m.load()
}

func (m *Model) leave() {
	n, err := m.tree.Node(m.dir)
	if err != nil || n.Parent == fstree.NoNode {
		return
	}
	m.dir = n.Parent
	m.cursor = 0
	if last := len(m.trail) - 1; last >= 0 {
		m.cursor = m.trail[last]
		m.trail = m.trail[:last]
	}
	m.load()
}

func (m Model) View() string {
	var sb strings.Builder
	title := fmt.Sprintf("%s  %s", m.tree.Path(m.dir), HumanSize(m.tree.Size(m.dir)))
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	if len(m.entries) == 0 {
		sb.WriteString(helpStyle.Render("  (empty)"))
		sb.WriteString("\n")
	}

	width := 0
	for _, id := range m.entries {
		n, _ := m.tree.Node(id)
		width = max(width, lipgloss.Width(n.Name))
	}

	first, last := m.window()
	for i := first; i < last; i++ {
		n, _ := m.tree.Node(m.entries[i])
		name := n.Name
		padding := strings.Repeat(" ", width-lipgloss.Width(name))
		if n.IsDir() {
			name = lipgloss.NewStyle().Bold(true).Foreground(fstree.NameColor(n.Name)).Render(name + "/")
		} else {
			padding += " "
		}
		row := fmt.Sprintf("%s%s %s", name, padding, sizeStyle.Render(fmt.Sprintf("%10s", HumanSize(m.tree.Size(m.entries[i])))))
		if i == m.cursor {
			sb.WriteString("> " + selectedStyle.Render(row))
		} else {
			sb.WriteString("  " + row)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("↑/↓ move • enter open • backspace up • q quit"))
	return sb.String()
}

// window returns the range of entries that fits the terminal, keeping the
// cursor visible.
func (m Model) window() (int, int) {
	rows := m.height - 5
	if m.height == 0 || rows <= 0 || rows >= len(m.entries) {
		return 0, len(m.entries)
	}
	first := max(0, m.cursor-rows+1)
	return first, first + rows
}

// HumanSize formats a byte count with binary units.
func HumanSize(size uint64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := uint64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
