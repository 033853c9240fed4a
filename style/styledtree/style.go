package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"sync"

	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/style/bloom"
	"github.com/npillmayer/cascade/style/cssom"
	"github.com/npillmayer/cascade/style/cssom/douceuradapter"
	"github.com/npillmayer/cascade/style/selector"
	"github.com/npillmayer/cascade/style/stylist"
	"golang.org/x/net/html"
)

// ErrNoDocument is returned when styling is invoked without a document.
var ErrNoDocument = errors.New("no document to style")

// Styler walks an HTML document and attaches computed styles to a styled
// tree, using a stylist's snapshot for the cascade. The stylist must not
// be dirty; sibling subtrees are styled concurrently, which is safe
// because lookups never mutate the snapshot.
type Styler struct {
	stylist  *stylist.Stylist
	cascader stylist.Cascader
}

// NewStyler creates a styler over a (rebuilt) stylist.
func NewStyler(sty *stylist.Stylist) *Styler {
	return &Styler{stylist: sty, cascader: stylist.ApplyDeclarations}
}

// StyleTree styles a parsed HTML document and returns the root of the
// resulting styled tree. The root carries the user-agent default
// property values.
func (st *Styler) StyleTree(doc *html.Node) (*StyNode, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	root := NewNodeForHTMLNode(doc)
	root.SetStyles(style.InitializeDefaultPropertyValues(nil))
	st.styleChildren(root, doc, bloom.New())
	return root, nil
}

// styleSubtree styles one element and descends into its children. The
// ancestor filter carries the components of all elements on the path
// from the root; it is pushed and popped around the descent.
func (st *Styler) styleSubtree(node *html.Node, parent *StyNode, bf *bloom.Filter) *StyNode {
	sn := NewNodeForHTMLNode(node)
	sn.parent = parent
	el := stylist.NewDomElement(node)
	inline := inlineStyle(node)
	var decls []stylist.DeclarationBlock
	shareable := st.stylist.PushApplicableDeclarations(el, bf, inline, selector.NoPseudo, &decls)
	tracer().P("elem", node.Data).Debugf("%d declaration blocks, shareable=%v",
		len(decls), shareable)
	sn.SetStyles(st.cascader(decls, parent.Styles()))

	bf.InsertElement(node)
	st.styleChildren(sn, node, bf)
	bf.RemoveElement(node)
	return sn
}

// styleChildren styles the element children of a node. With more than one
// child element the subtrees are styled in parallel, each against a clone
// of the ancestor filter.
func (st *Styler) styleChildren(sn *StyNode, node *html.Node, bf *bloom.Filter) {
	var elems []*html.Node
	for ch := node.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			elems = append(elems, ch)
		}
	}
	if len(elems) == 0 {
		return
	}
	sn.children = make([]*StyNode, len(elems))
	if len(elems) == 1 {
		sn.children[0] = st.styleSubtree(elems[0], sn, bf)
		return
	}
	var wg sync.WaitGroup
	for i, ch := range elems {
		wg.Add(1)
		go func(i int, ch *html.Node, bf *bloom.Filter) {
			defer wg.Done()
			sn.children[i] = st.styleSubtree(ch, sn, bf)
		}(i, ch, bf.Clone())
	}
	wg.Wait()
}

func inlineStyle(node *html.Node) *cssom.InlineStyle {
	for _, a := range node.Attr {
		if a.Key == "style" && a.Val != "" {
			inline, err := douceuradapter.ParseInline(a.Val)
			if err != nil {
				tracer().Infof("broken style attribute ignored: %v", err)
				return nil
			}
			return inline
		}
	}
	return nil
}
