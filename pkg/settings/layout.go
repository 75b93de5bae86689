package settings

import (
	"context"
	"strings"

	"github.com/albertocavalcante/ktgradle/pkg/treesitter"
)

// Layout summarizes where plugin repositories live in a settings script:
// one entry per top-level pluginManagement block, each holding one entry
// per repositories block with the keys of its statements.
type Layout struct {
	PluginManagement [][][]string
}

// HasRepository reports whether the first pluginManagement block declares
// a repository equivalent to line.
func (l Layout) HasRepository(line string) bool {
	if len(l.PluginManagement) == 0 {
		return false
	}
	key := layoutKey(line)
	for _, repos := range l.PluginManagement[0] {
		for _, k := range repos {
			if k == key {
				return true
			}
		}
	}
	return false
}

// String renders the layout for log output.
func (l Layout) String() string {
	var sb strings.Builder
	for i, pm := range l.PluginManagement {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("pluginManagement{")
		for j, repos := range pm {
			if j > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString("repositories{" + strings.Join(repos, ";") + "}")
		}
		sb.WriteByte('}')
	}
	return sb.String()
}

// Equal reports whether both layouts hold the same blocks and keys.
func (l Layout) Equal(o Layout) bool {
	return l.String() == o.String()
}

// layoutKey is Key without statement separators, so `a; b` and `a\nb`
// compare equal.
func layoutKey(text string) string {
	return strings.ReplaceAll(Key(text), ";", "")
}

// Locator computes the Layout of settings script source.
type Locator interface {
	Layout(ctx context.Context, src []byte) (Layout, error)
}

// Layout returns the layout of the script without modifying it.
func (s *Script) Layout() Layout {
	var l Layout
	for _, pm := range childBlocks(s.root, PluginManagement) {
		var repos [][]string
		for _, r := range childBlocks(pm, Repositories) {
			keys := []string{}
			for _, c := range r.Children {
				if c.Kind == Statement || c.Kind == Block {
					var sb strings.Builder
					renderNodes(&sb, []*Node{c}, 0)
					keys = append(keys, layoutKey(sb.String()))
				}
			}
			repos = append(repos, keys)
		}
		l.PluginManagement = append(l.PluginManagement, repos)
	}
	return l
}

// childBlocks returns every child of n named name, one-line forms included.
func childBlocks(n *Node, name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == Block && c.Text == name {
			out = append(out, c)
		} else if b, _ := oneLineBlock(c, name); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Layout implements Locator.
func (StructuralValidator) Layout(_ context.Context, src []byte) (Layout, error) {
	s, err := Parse(src)
	if err != nil {
		return Layout{}, err
	}
	return s.Layout(), nil
}

// Layout implements Locator using the Kotlin syntax tree, so blocks are found
// whatever their line layout.
func (v *TreeSitterValidator) Layout(ctx context.Context, src []byte) (Layout, error) {
	parser, err := v.backend.NewParser(treesitter.Kotlin)
	if err != nil {
		return Layout{}, err
	}
	defer func() { _ = parser.Close() }()

	tree, err := parser.Parse(ctx, src)
	if err != nil {
		return Layout{}, err
	}
	defer func() { _ = tree.Close() }()

	var l Layout
	for _, pm := range treesitter.BlockCalls(tree.RootNode(), src, PluginManagement) {
		var repos [][]string
		for _, r := range treesitter.BlockCalls(pm, src, Repositories) {
			keys := []string{}
			for _, stmt := range treesitter.Statements(r) {
				keys = append(keys, layoutKey(stmt.Content(src)))
			}
			repos = append(repos, keys)
		}
		l.PluginManagement = append(l.PluginManagement, repos)
	}
	return l, nil
}
