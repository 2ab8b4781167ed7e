package engine

import "github.com/dhamidi/casebook/parser"

// SceneAt reports the name of the innermost scene block enclosing the byte
// offset. It is a parse-tree lookup, not a text scan: the parser already
// tracks the span of every scene block, so the query is a walk down the tree
// built for highlighting anyway. Returns ok=false when the document does not
// parse or no scene encloses the offset.
func (e *Engine) SceneAt(doc string, offset int) (string, bool) {
	root, err := e.Parser().Parse("", doc)
	if err != nil {
		return "", false
	}
	scene := root.EnclosingOfKind("scene_block", offset)
	if scene == nil {
		return "", false
	}
	return sceneName(scene), true
}

func sceneName(scene *parser.Node) string {
	name := scene.FirstChildOfKind("scene_name")
	if name == nil {
		return ""
	}
	for _, child := range name.Children {
		if child.IsToken() {
			return child.TokenText()
		}
	}
	return ""
}

// OutlineItem is one structural entry of a document: a section, a child
// entry, or a scene block, with its name and span.
type OutlineItem struct {
	Kind  string // "section", "entry" or "scene"
	Name  string
	Depth int
	Span  parser.Span
}

// Outline lists the document's sections, child entries and scenes in
// document order, derived from the concrete syntax tree.
func (e *Engine) Outline(doc string) ([]OutlineItem, error) {
	root, err := e.Parser().Parse("", doc)
	if err != nil {
		return nil, err
	}
	var items []OutlineItem
	collectOutline(root, 0, &items)
	return items, nil
}

func collectOutline(n *parser.Node, depth int, items *[]OutlineItem) {
	childDepth := depth
	switch n.Kind {
	case "section":
		*items = append(*items, OutlineItem{Kind: "section", Name: headerName(n, "section_header"), Depth: depth, Span: n.Span})
		childDepth = depth + 1
	case "child_entry":
		*items = append(*items, OutlineItem{Kind: "entry", Name: headerName(n, "child_header"), Depth: depth, Span: n.Span})
		childDepth = depth + 1
	case "scene_block":
		*items = append(*items, OutlineItem{Kind: "scene", Name: sceneName(n), Depth: depth, Span: n.Span})
		childDepth = depth + 1
	}
	for _, child := range n.Children {
		collectOutline(child, childDepth, items)
	}
}

func headerName(n *parser.Node, headerKind string) string {
	header := n.FirstChildOfKind(headerKind)
	if header == nil {
		return ""
	}
	id := header.FirstChildOfKind("section_id")
	if id == nil {
		return ""
	}
	for _, child := range id.Children {
		if child.IsToken() {
			return child.TokenText()
		}
	}
	return ""
}
