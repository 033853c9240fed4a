/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/style/cssom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
//
// Rules guarded by @media blocks are flattened into the sheet's rule list
// in source order, each carrying its block's condition. @viewport
// declarations are collected separately, also carrying the condition of
// an enclosing @media block.
type CSSStyles struct {
	rules    []cssom.Rule
	viewport []cssom.ViewportRule
	media    string
	origin   cssom.Origin
}

// Wrap a douceur.css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(sheet *css.Stylesheet, origin cssom.Origin) *CSSStyles {
	s := &CSSStyles{origin: origin}
	for _, r := range sheet.Rules {
		s.appendRule(r, "")
	}
	return s
}

// Parse parses CSS text into a stylesheet adapter.
func Parse(csstext string, origin cssom.Origin) (*CSSStyles, error) {
	parsed, err := parser.Parse(csstext)
	if err != nil {
		return nil, err
	}
	return Wrap(parsed, origin), nil
}

func (sheet *CSSStyles) appendRule(r *css.Rule, condition string) {
	switch {
	case r.Kind == css.QualifiedRule:
		sheet.rules = append(sheet.rules, Rule{rule: r, condition: condition})
	case r.Name == "@media":
		for _, embedded := range r.Rules {
			sheet.appendRule(embedded, r.Prelude)
		}
	case r.Name == "@viewport":
		vr := cssom.ViewportRule{Condition: condition}
		for _, d := range r.Declarations {
			vr.Declarations = append(vr.Declarations,
				style.KeyValue{Key: d.Property, Value: style.Property(d.Value)})
		}
		sheet.viewport = append(sheet.viewport, vr)
	}
}

// SetMedia sets the media query guarding the whole sheet, as given by
// e.g. the media attribute of a <style> or <link> element.
func (sheet *CSSStyles) SetMedia(query string) {
	sheet.media = query
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.rules) == 0 && len(sheet.viewport) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	othercss := other.(*CSSStyles)
	sheet.rules = append(sheet.rules, othercss.rules...)
	sheet.viewport = append(sheet.viewport, othercss.viewport...)
}

// Rules returns all the style rules of a stylesheet, in source order.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	return sheet.rules
}

// Viewport returns the @viewport rule blocks, in source order.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Viewport() []cssom.ViewportRule {
	return sheet.viewport
}

// Media returns the media query guarding the whole sheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Media() string {
	return sheet.media
}

// Origin returns the origin of the stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Origin() cssom.Origin {
	return sheet.origin
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule struct {
	rule      *css.Rule
	condition string
}

// Selectors returns the selectors of the rule, one per comma-group.
func (r Rule) Selectors() []string {
	return r.rule.Selectors
}

// Declarations returns all declarations of the rule in source order.
// Duplicate property keys are preserved.
func (r Rule) Declarations() []cssom.Declaration {
	decl := r.rule.Declarations
	out := make([]cssom.Declaration, 0, len(decl))
	for _, d := range decl {
		out = append(out, cssom.Declaration{
			Key:       d.Property,
			Value:     style.Property(d.Value),
			Important: d.Important,
		})
	}
	return out
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r Rule) Properties() []string {
	decl := r.rule.Declarations
	props := make([]string, 0, len(decl))
	for _, d := range decl {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for a given key with this rule, e.g. "15px"
func (r Rule) Value(key string) style.Property {
	for _, d := range r.rule.Declarations {
		if d.Property == key {
			return style.Property(d.Value)
		}
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	for _, d := range r.rule.Declarations {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

// Condition returns the media query of the @media block the rule was
// nested in, or "" for top-level rules.
func (r Rule) Condition() string {
	return r.condition
}

var _ cssom.Rule = Rule{}

// ParseInline parses the contents of an HTML style attribute into an
// inline declaration block, split into normal and important declarations.
func ParseInline(styleattr string) (*cssom.InlineStyle, error) {
	decls, err := parser.ParseDeclarations(styleattr)
	if err != nil {
		return nil, err
	}
	inline := &cssom.InlineStyle{}
	for _, d := range decls {
		kv := style.KeyValue{Key: d.Property, Value: style.Property(d.Value)}
		if d.Important {
			inline.Important = append(inline.Important, kv)
		} else {
			inline.Normal = append(inline.Normal, kv)
		}
	}
	return inline, nil
}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as author-origin style sheets, honouring their media
// attribute.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	head := findElement(atom.Head, htmldoc)
	body := findElement(atom.Body, htmldoc)
	css := extractStyles(head)
	css = append(css, extractStyles(body)...)
	return css
}

func extractStyles(h *html.Node) []*CSSStyles {
	var sheets []*CSSStyles
	if h == nil {
		return nil
	}
	ch := h.FirstChild
	for ch != nil {
		if ch.DataAtom == atom.Style && ch.FirstChild != nil {
			c, err := parser.Parse(ch.FirstChild.Data)
			if err != nil {
				break
			}
			sheet := Wrap(c, cssom.OriginAuthor)
			for _, a := range ch.Attr {
				if a.Key == "media" {
					sheet.SetMedia(a.Val)
				}
			}
			sheets = append(sheets, sheet)
		}
		ch = ch.NextSibling
	}
	return sheets
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	ch := h.FirstChild
	for ch != nil {
		r := findElement(a, ch)
		if r != nil && r.DataAtom == a {
			return r
		}
		ch = ch.NextSibling
	}
	return nil
}
