package settings

import "strings"

const indentUnit = "    "

// Format normalizes the tree in place: runs of blank lines collapse to one
// and blank lines at the start or end of a block are dropped.
func (s *Script) Format() {
	formatNode(s.root)
}

func formatNode(n *Node) {
	n.Text = strings.TrimSpace(n.Text)

	out := n.Children[:0]
	for _, c := range n.Children {
		if c.Kind == Blank && (len(out) == 0 || out[len(out)-1].Kind == Blank) {
			continue
		}
		if c.Kind == Block {
			formatNode(c)
		}
		out = append(out, c)
	}
	for len(out) > 0 && out[len(out)-1].Kind == Blank {
		out = out[:len(out)-1]
	}
	for i := len(out); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = out
}

// String renders the script with four-space indentation.
func (s *Script) String() string {
	var sb strings.Builder
	renderNodes(&sb, s.root.Children, 0)
	return sb.String()
}

func renderNodes(sb *strings.Builder, nodes []*Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	for _, n := range nodes {
		switch n.Kind {
		case Blank:
			sb.WriteByte('\n')
		case Comment:
			for _, line := range strings.Split(n.Text, "\n") {
				line = strings.TrimSpace(line)
				if strings.HasPrefix(line, "*") {
					line = " " + line
				}
				sb.WriteString(indent + line + "\n")
			}
		case Statement:
			renderStatement(sb, n.Text, depth)
		case Block:
			if n.Text == "" {
				sb.WriteString(indent + "{\n")
			} else {
				sb.WriteString(indent + n.Text + " {\n")
			}
			renderNodes(sb, n.Children, depth+1)
			sb.WriteString(indent + "}\n")
		}
	}
}

// renderStatement indents continuation lines of a multi-line statement one
// level deeper, except lines that start by closing a bracket. Statements
// holding a raw string are written verbatim after the first indent.
func renderStatement(sb *strings.Builder, text string, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	if strings.Contains(text, `"""`) {
		sb.WriteString(indent + text + "\n")
		return
	}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			sb.WriteByte('\n')
			continue
		case i == 0, strings.HasPrefix(line, ")"), strings.HasPrefix(line, "]"), strings.HasPrefix(line, "}"):
			sb.WriteString(indent)
		default:
			sb.WriteString(indent + indentUnit)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}
