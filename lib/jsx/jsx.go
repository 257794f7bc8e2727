package jsx

import (
	"html"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/minimact/swig-sub001/lib/ast"
)

// jsx converts elements and fragments. The grammar trims the text it
// reports for jsx_text, so text children are rebuilt from the source bytes
// between the non-text children.
func (c *converter) jsx(n *sitter.Node) ast.Expr {
	loc := c.loc(n)
	if n.Type() == "jsx_self_closing_element" {
		el := &ast.JSXElement{Loc: loc, Name: c.text(field(n, "name")), SelfClosing: true}
		el.Attrs = c.attributes(n)
		return el
	}

	open, close := c.tags(n)
	var name *sitter.Node
	if open != nil {
		name = field(open, "name")
	}

	start, end := n.StartByte(), n.EndByte()
	if open != nil {
		start = open.EndByte()
	}
	if close != nil {
		end = close.StartByte()
	}
	children := c.children(n, open, close, start, end)

	if name == nil {
		return &ast.JSXFragment{Loc: loc, Children: children}
	}
	return &ast.JSXElement{Loc: loc, Name: c.text(name), Attrs: c.attributes(open), Children: children}
}

// tags returns the opening and closing tags of an element or fragment.
func (c *converter) tags(n *sitter.Node) (open, close *sitter.Node) {
	open, close = field(n, "open_tag"), field(n, "close_tag")
	for _, ch := range c.named(n) {
		switch ch.Type() {
		case "jsx_opening_element":
			if open == nil {
				open = ch
			}
		case "jsx_closing_element":
			close = ch
		}
	}
	return open, close
}

func isTextNode(n *sitter.Node) bool {
	switch n.Type() {
	case "jsx_text", "html_character_reference":
		return true
	}
	return false
}

func (c *converter) children(n, open, close *sitter.Node, start, end uint32) []ast.Expr {
	if n.Type() == "jsx_fragment" && open == nil {
		start, end = fragmentBody(n)
	}

	var out []ast.Expr
	pos := start
	var textLoc *sitter.Node
	flush := func(upto uint32) {
		if upto > pos {
			raw := string(c.src[pos:upto])
			l := c.loc(n)
			if textLoc != nil {
				l = c.loc(textLoc)
			}
			out = append(out, &ast.JSXText{Loc: l, Value: html.UnescapeString(raw)})
		}
		textLoc = nil
	}

	for _, ch := range c.named(n) {
		if ch == nil || ch.StartByte() < start || ch.EndByte() > end {
			continue
		}
		if isTextNode(ch) {
			if textLoc == nil {
				textLoc = ch
			}
			continue
		}
		flush(ch.StartByte())
		if e := c.expr(ch); e != nil {
			out = append(out, e)
		}
		pos = ch.EndByte()
	}
	flush(end)
	return out
}

// fragmentBody returns the byte range between <> and </> of a fragment
// node whose tags are anonymous tokens.
func fragmentBody(n *sitter.Node) (uint32, uint32) {
	start, end := n.StartByte(), n.EndByte()
	count := int(n.ChildCount())
	if count >= 5 {
		start = n.Child(1).EndByte()
		end = n.Child(count - 3).StartByte()
	}
	return start, end
}

// attributes converts the attributes of an opening or self-closing tag.
func (c *converter) attributes(tag *sitter.Node) []*ast.JSXAttr {
	if tag == nil {
		return nil
	}
	name := field(tag, "name")
	var out []*ast.JSXAttr
	for _, a := range c.named(tag) {
		if name != nil && a.StartByte() == name.StartByte() && a.EndByte() == name.EndByte() {
			continue
		}
		switch a.Type() {
		case "jsx_attribute":
			out = append(out, c.attribute(a))
		case "jsx_expression":
			// {...props}
			if inner := c.first(a); inner != nil && inner.Type() == "spread_element" {
				out = append(out, &ast.JSXAttr{Loc: c.loc(a), Spread: c.expr(c.first(inner))})
			}
		}
	}
	return out
}

func (c *converter) attribute(n *sitter.Node) *ast.JSXAttr {
	kids := c.named(n)
	attr := &ast.JSXAttr{Loc: c.loc(n)}
	if len(kids) == 0 {
		return attr
	}
	attr.Name = c.text(kids[0])
	if len(kids) < 2 {
		return attr
	}
	v := kids[1]
	if v.Type() == "string" {
		raw := c.text(v)
		if len(raw) >= 2 {
			raw = raw[1 : len(raw)-1]
		}
		attr.Value = &ast.StringLit{Loc: c.loc(v), Value: html.UnescapeString(raw)}
		return attr
	}
	attr.Value = c.expr(v)
	return attr
}
