package fstree

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/taigrr/colorhash"
)

// RenderOptions controls Render output.
type RenderOptions struct {
	Color bool // colour directory names, one stable colour per name
}

var palette = []lipgloss.Color{
	"#5fafff", "#87d787", "#d7af5f", "#d787d7",
	"#5fd7d7", "#ff875f", "#afafff", "#d7d75f",
}

// NameColor returns the colour assigned to a directory name. The same name
// always gets the same colour.
func NameColor(name string) lipgloss.Color {
	idx := colorhash.HashString(name) % len(palette)
	if idx < 0 {
		idx = -idx
	}
	return palette[idx]
}

type nameStyles struct {
	color bool
}

func (s nameStyles) dir(name string) string {
	if !s.color {
		return name
	}
	return lipgloss.NewStyle().Bold(true).Foreground(NameColor(name)).Render(name)
}

func (s nameStyles) file(name string) string {
	if !s.color {
		return name
	}
	return lipgloss.NewStyle().Faint(true).Render(name)
}

// Render writes the live tree to w. Each directory lists its subdirectories
// before its files, both in the order they were discovered:
//
//	/ (48381165)
//	├── a (94853)
//	│   ├── e (584)
//	│   │   └── i 584
//	│   └── f 29116
//	└── b.txt 14848514
func (t *Tree) Render(w io.Writer, opts RenderOptions) error {
	bw := bufio.NewWriter(w)
	st := nameStyles{color: opts.Color}
	root := t.nodes[t.Root()]

	fmt.Fprintf(bw, "%s (%d)\n", st.dir(root.Name), root.CumulativeSize)
	t.renderChildren(bw, t.adjacency(), t.Root(), "", st)
	return bw.Flush()
}

func (t *Tree) renderChildren(w io.Writer, adj map[NodeID][]NodeID, id NodeID, prefix string, st nameStyles) {
	kids := slices.Clone(adj[id])
	slices.SortStableFunc(kids, func(a, b NodeID) int {
		return int(t.nodes[a].Kind) - int(t.nodes[b].Kind)
	})

	for i, c := range kids {
		branch, indent := "├── ", "│   "
		if i == len(kids)-1 {
			branch, indent = "└── ", "    "
		}
		n := t.nodes[c]
		if n.IsDir() {
			fmt.Fprintf(w, "%s%s%s (%d)\n", prefix, branch, st.dir(n.Name), n.CumulativeSize)
			t.renderChildren(w, adj, c, prefix+indent, st)
			continue
		}
		fmt.Fprintf(w, "%s%s%s %d\n", prefix, branch, st.file(n.Name), n.Size)
	}
}
