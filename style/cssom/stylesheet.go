package cssom

import "github.com/npillmayer/cascade/style"

// Origin denotes the origin of a stylesheet. The cascade gives rules from
// different origins different precedence.
type Origin uint8

// Stylesheet origins, in ascending normal-importance precedence.
const (
	OriginUserAgent Origin = iota
	OriginUser
	OriginAuthor
)

func (o Origin) String() string {
	switch o {
	case OriginUserAgent:
		return "user-agent"
	case OriginUser:
		return "user"
	case OriginAuthor:
		return "author"
	}
	return "invalid"
}

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple implementations of CSS-stylesheets from the
// styling engine, we introduce an interface for CSS stylesheets. Clients
// for the styling engine will have to provide a concrete implementation
// of this interface (e.g., see package douceuradapter).
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet)   // append rules from another stylesheet
	Empty() bool              // does this stylesheet contain any rules?
	Rules() []Rule            // all style rules, in source order
	Viewport() []ViewportRule // @viewport rule blocks, in source order
	Media() string            // media query guarding the whole sheet; "" = all
	Origin() Origin           // origin of the stylesheet
}

// Declaration is a single property declaration of a rule, in source
// position. A rule may declare the same property more than once (fallback
// declarations); consumers which care about the cascade must walk the
// declarations positionally, not by key.
type Declaration struct {
	Key       string
	Value     style.Property
	Important bool
}

// Rule is the type stylesheets consist of. A rule guarded by an @media
// block carries the block's condition; the styling engine decides with the
// current device wether the rule takes effect.
//
// See interface StyleSheet.
type Rule interface {
	Selectors() []string         // the selectors of the rule, one per comma-group
	Declarations() []Declaration // all declarations, in source order
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // value of the first declaration for key
	IsImportant(string) bool     // is the first declaration for key important?
	Condition() string           // guarding media query, "" if unconditional
}

// ViewportRule is one block of @viewport declarations, possibly guarded
// by the condition of an enclosing @media block.
type ViewportRule struct {
	Condition    string
	Declarations []style.KeyValue
}

// InlineStyle is the declaration block of a style attribute, split into
// normal and important declarations. Style attributes take part in the
// cascade but have no selector, origin or source order.
type InlineStyle struct {
	Normal    []style.KeyValue
	Important []style.KeyValue
}

// IsEmpty checks wether the inline style carries any declarations.
func (is *InlineStyle) IsEmpty() bool {
	return is == nil || len(is.Normal)+len(is.Important) == 0
}

// EffectiveRules returns the style rules of a sheet which take effect for
// the given device, in source order. A sheet whose own media query fails
// yields no rules at all.
func EffectiveRules(sheet StyleSheet, device Device) []Rule {
	if !EvalMediaQuery(sheet.Media(), device) {
		return nil
	}
	var rules []Rule
	for _, r := range sheet.Rules() {
		if EvalMediaQuery(r.Condition(), device) {
			rules = append(rules, r)
		}
	}
	return rules
}
