// Package htmlnode models the HTML tree produced by the markdown compiler.
//
// A tree is made of two node variants:
//
//	Leaf    tag + literal value (no tag renders the value as raw text)
//	Parent  tag + ordered children
//
// Both satisfy Node. Because they are distinct types, a node can never carry
// a value and children at the same time.
//
// Attribute values are written verbatim between double quotes. Quotes and
// ampersands inside a value are NOT escaped; callers that feed untrusted URLs
// or alt text must sanitize them first.
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for rendering.
var (
	ErrMissingValue    = errors.New("leaf node must have a value")
	ErrMissingTag      = errors.New("parent node must have a tag")
	ErrMissingChildren = errors.New("parent node must have children")
)

// Node is an element of the HTML tree.
type Node interface {
	// Render serializes the node and its subtree to HTML.
	// On error no partial output is returned.
	Render() (string, error)

	// writeHTML seals the interface to the variants of this package.
	writeHTML(b *strings.Builder) error
}

// Attribute is a single key="value" pair.
type Attribute struct {
	Key   string
	Value string
}

// Attr is shorthand for building an Attribute.
func Attr(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Attributes keeps attribute pairs in insertion order.
type Attributes []Attribute

// HTML returns the attributes as they appear inside an opening tag,
// each one prefixed by a space. Empty when there are no attributes.
func (a Attributes) HTML() string {
	if len(a) == 0 {
		return ""
	}
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (a Attributes) write(b *strings.Builder) {
	for _, attr := range a {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}
}

// Get returns the value of the first attribute named key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Leaf is a node holding a literal value and no children.
type Leaf struct {
	Tag   string // empty renders Value as raw text
	Value string
	Attrs Attributes
}

// NewLeaf creates a leaf node. Attributes are copied.
func NewLeaf(tag, value string, attrs ...Attribute) *Leaf {
	return &Leaf{Tag: tag, Value: value, Attrs: copyAttrs(attrs)}
}

// NewText creates an untagged leaf that renders as raw text.
func NewText(value string) *Leaf {
	return &Leaf{Value: value}
}

// Validate reports ErrMissingValue for a nil leaf, the only way a leaf can
// lack its value.
func (l *Leaf) Validate() error {
	if l == nil {
		return ErrMissingValue
	}
	return nil
}

// Render returns the leaf as HTML.
func (l *Leaf) Render() (string, error) {
	var b strings.Builder
	if err := l.writeHTML(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (l *Leaf) writeHTML(b *strings.Builder) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if l.Tag == "" {
		b.WriteString(l.Value)
		return nil
	}
	b.WriteByte('<')
	b.WriteString(l.Tag)
	l.Attrs.write(b)
	b.WriteByte('>')
	b.WriteString(l.Value)
	b.WriteString("</")
	b.WriteString(l.Tag)
	b.WriteByte('>')
	return nil
}

// String returns a debug representation, not HTML.
func (l *Leaf) String() string {
	if l == nil {
		return "Leaf(<nil>)"
	}
	return fmt.Sprintf("Leaf(tag=%s, value=%s, attrs=%s)", l.Tag, l.Value, l.Attrs.HTML())
}

// Parent is a node holding ordered children and no value.
type Parent struct {
	Tag      string
	Children []Node // nil is invalid, empty is fine
	Attrs    Attributes
}

// NewParent creates a parent node. The children slice is owned by the node
// after the call. Attributes are copied.
func NewParent(tag string, children []Node, attrs ...Attribute) *Parent {
	return &Parent{Tag: tag, Children: children, Attrs: copyAttrs(attrs)}
}

// Render returns the parent and its whole subtree as HTML.
func (p *Parent) Render() (string, error) {
	var b strings.Builder
	if err := p.writeHTML(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (p *Parent) writeHTML(b *strings.Builder) error {
	if p == nil {
		return ErrMissingTag
	}
	if p.Tag == "" {
		return ErrMissingTag
	}
	if p.Children == nil {
		return fmt.Errorf("%w: <%s>", ErrMissingChildren, p.Tag)
	}

	b.WriteByte('<')
	b.WriteString(p.Tag)
	p.Attrs.write(b)
	b.WriteByte('>')
	for i, child := range p.Children {
		if child == nil {
			return fmt.Errorf("%w: <%s> child %d is nil", ErrMissingValue, p.Tag, i)
		}
		if err := child.writeHTML(b); err != nil {
			return err
		}
	}
	b.WriteString("</")
	b.WriteString(p.Tag)
	b.WriteByte('>')
	return nil
}

// String returns a debug representation, not HTML.
func (p *Parent) String() string {
	if p == nil {
		return "Parent(<nil>)"
	}
	children := make([]string, len(p.Children))
	for i, c := range p.Children {
		children[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("Parent(tag=%s, children=[%s], attrs=%s)",
		p.Tag, strings.Join(children, ", "), p.Attrs.HTML())
}

func copyAttrs(attrs []Attribute) Attributes {
	if len(attrs) == 0 {
		return nil
	}
	out := make(Attributes, len(attrs))
	copy(out, attrs)
	return out
}

// Compile-time interface checks.
var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Parent)(nil)
)
