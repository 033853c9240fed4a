package styledtree

import (
	"github.com/npillmayer/cascade/style"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	htmlNode       *html.Node
	computedStyles *style.PropertyMap
	parent         *StyNode
	children       []*StyNode
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(h *html.Node) *StyNode {
	return &StyNode{htmlNode: h}
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// Parent returns the enclosing styled node, nil for the tree root.
func (sn *StyNode) Parent() *StyNode {
	return sn.parent
}

// Children returns the child nodes, in document order.
func (sn *StyNode) Children() []*StyNode {
	return sn.children
}

// Styles returns the computed styles of this node.
func (sn *StyNode) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// GetPropertyValue returns the property value for a given key.
// If the property is inheritable and not set locally, the search cascades
// to the enclosing styles. Unset properties fall back to the user-agent
// default.
func (sn *StyNode) GetPropertyValue(key string) style.Property {
	p, ok := sn.computedStyles.Property(key)
	if ok && !p.IsInherit() {
		return p
	}
	if !ok && !style.IsCascading(key) {
		return style.GetUserAgentDefaultProperty(sn.htmlNode, key)
	}
	tracer().P("key", key).Debugf("styling: cascading for key %s", key)
	for it := sn.parent; it != nil; it = it.parent {
		if v, found := it.computedStyles.Property(key); found && !v.IsInherit() {
			return v
		}
	}
	return style.GetUserAgentDefaultProperty(sn.htmlNode, key)
}
