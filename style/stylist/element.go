package stylist

import (
	"strings"

	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/style/selector"
	"golang.org/x/net/html"
)

// Element is the capability set the stylist requires from a document
// element: access to the underlying HTML node for selector matching and
// to the element's dynamic state. Any concrete element representation
// satisfying it can be plugged in.
type Element interface {
	HTMLNode() *html.Node
	State() selector.State
}

// PresentationalHintsSynthesizer is an optional element capability:
// elements carrying legacy presentational attributes (bgcolor and
// friends) synthesize declarations from them. The cascade inserts these
// between user-agent rules and user/author rules.
type PresentationalHintsSynthesizer interface {
	PresentationalHints() []style.KeyValue
}

// DomElement is the default Element implementation: a plain HTML node
// with an explicit dynamic state, including synthesis of presentational
// hints from legacy attributes.
type DomElement struct {
	node  *html.Node
	state selector.State
}

// NewDomElement wraps an HTML node into a stateless DomElement.
func NewDomElement(n *html.Node) DomElement {
	return DomElement{node: n}
}

// WithState returns a copy of the element carrying the given dynamic state.
func (e DomElement) WithState(st selector.State) DomElement {
	e.state = st
	return e
}

// HTMLNode is part of interface Element.
func (e DomElement) HTMLNode() *html.Node {
	return e.node
}

// State is part of interface Element.
func (e DomElement) State() selector.State {
	return e.state
}

var _ Element = DomElement{}

// legacy presentational attributes, mapped per element type.
// https://html.spec.whatwg.org/multipage/rendering.html#presentational-hints
var presentationalAttrs = map[string]map[string]string{
	"body":  {"bgcolor": "background-color", "text": "color"},
	"table": {"bgcolor": "background-color", "width": "width", "height": "height", "align": "text-align"},
	"tr":    {"bgcolor": "background-color", "align": "text-align", "valign": "vertical-align"},
	"td":    {"bgcolor": "background-color", "width": "width", "height": "height", "align": "text-align", "valign": "vertical-align"},
	"th":    {"bgcolor": "background-color", "width": "width", "height": "height", "align": "text-align", "valign": "vertical-align"},
	"img":   {"width": "width", "height": "height", "align": "float"},
	"hr":    {"width": "width", "align": "text-align"},
	"font":  {"color": "color"},
	"p":     {"align": "text-align"},
	"div":   {"align": "text-align"},
}

// PresentationalHints synthesizes style declarations from legacy HTML
// attributes.
//
// Interface PresentationalHintsSynthesizer.
func (e DomElement) PresentationalHints() []style.KeyValue {
	if e.node == nil || e.node.Type != html.ElementNode {
		return nil
	}
	attrmap := presentationalAttrs[strings.ToLower(e.node.Data)]
	if attrmap == nil {
		return nil
	}
	var hints []style.KeyValue
	for _, a := range e.node.Attr {
		prop, ok := attrmap[strings.ToLower(a.Key)]
		if !ok || a.Val == "" {
			continue
		}
		hints = append(hints, style.KeyValue{Key: prop, Value: legacyValue(prop, a.Val)})
	}
	return hints
}

// legacyValue maps a legacy attribute value to a CSS value. Bare numbers
// in dimension attributes denote pixels.
func legacyValue(prop string, val string) style.Property {
	if prop == "width" || prop == "height" {
		if isDigits(val) {
			return style.Property(val + "px")
		}
	}
	return style.Property(val)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
