package parser

import "strings"

// Node is a concrete syntax tree node. Rule nodes carry the rule name as
// Kind and their matched symbols as Children; token nodes carry the token
// and have no children. Kinds are plain strings because composed grammars
// can introduce rules the base never declared.
type Node struct {
	Kind     string
	Span     Span
	Children []*Node
	Token    *Token
}

func (n *Node) IsToken() bool {
	return n.Token != nil
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind string) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind string) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenText() string {
	if n.Token != nil {
		return n.Token.Text
	}
	return ""
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (n *Node) Contains(offset int) bool {
	return offset >= n.Span.Start.Offset && offset < n.Span.End.Offset
}

// AtOffset returns the deepest node whose span contains the byte offset.
// Empty spans from epsilon productions never match.
func (n *Node) AtOffset(offset int) *Node {
	if n == nil || !n.Contains(offset) {
		return nil
	}
	for _, child := range n.Children {
		if found := child.AtOffset(offset); found != nil {
			return found
		}
	}
	return n
}

// EnclosingOfKind walks from n's deepest node at offset outward and returns
// the first ancestor (or the node itself) of the given kind.
func (n *Node) EnclosingOfKind(kind string, offset int) *Node {
	var best *Node
	n.Walk(func(node *Node) bool {
		if !node.Contains(offset) {
			return false
		}
		if node.Kind == kind {
			best = node
		}
		return true
	})
	return best
}

func (n *Node) String() string {
	var sb strings.Builder
	n.stringIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.stringIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) stringIndent(sb *strings.Builder, indent int, showPositions bool) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(n.Kind)
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Text)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.stringIndent(sb, indent+1, showPositions)
	}
}
