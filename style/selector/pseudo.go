package selector

// PseudoElement identifies a pseudo-element, i.e. a virtual sub-element
// addressable by selectors but not present in the document tree.
type PseudoElement int8

// The pseudo-elements supported by the styling engine. NoPseudo denotes
// the absence of a pseudo-element, i.e. a selector subject that is a real
// document element.
const (
	NoPseudo PseudoElement = iota
	Before
	After
	Selection
	FirstLine
	FirstLetter
)

var pseudoElementNames = map[string]PseudoElement{
	"before":       Before,
	"after":        After,
	"selection":    Selection,
	"first-line":   FirstLine,
	"first-letter": FirstLetter,
}

// ParsePseudoElement maps a pseudo-element name (without colons) to its
// identity. ok is false for unknown names.
func ParsePseudoElement(name string) (pseudo PseudoElement, ok bool) {
	pseudo, ok = pseudoElementNames[name]
	return
}

func (p PseudoElement) String() string {
	for name, pe := range pseudoElementNames {
		if pe == p {
			return "::" + name
		}
	}
	return "none"
}

// CascadeType classifies how the style for a pseudo-element is computed.
type CascadeType int8

const (
	// CascadeEager pseudo-elements are resolved together with their owning
	// element; the stylist keeps a rule scope for them from the start.
	CascadeEager CascadeType = iota
	// CascadeLazy pseudo-elements are resolved on demand with a full
	// per-element rule match.
	CascadeLazy
	// CascadePrecomputed pseudo-elements never depend on a specific
	// element; their declarations are collected once per rebuild.
	CascadePrecomputed
)

// CascadeType returns the cascade classification of a pseudo-element.
func (p PseudoElement) CascadeType() CascadeType {
	switch p {
	case Before, After:
		return CascadeEager
	case Selection:
		return CascadePrecomputed
	}
	return CascadeLazy
}

// EachEagerPseudoElement calls f for every eagerly cascaded pseudo-element.
func EachEagerPseudoElement(f func(PseudoElement)) {
	f(Before)
	f(After)
}

// EachPrecomputedPseudoElement calls f for every precomputed pseudo-element.
func EachPrecomputedPseudoElement(f func(PseudoElement)) {
	f(Selection)
}
