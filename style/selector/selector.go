package selector

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/cascade/style/bloom"
	"golang.org/x/net/html"
)

// ErrEmptySelector is returned when compiling an empty selector string.
var ErrEmptySelector = errors.New("empty selector")

// Specificity is the numeric weight of a selector, derived from its
// id/class/tag counts. Higher weights win the cascade on property
// conflicts. The three specificity levels are packed into one integer
// (10 bits per level), which makes weights directly comparable with '<'.
type Specificity uint32

func packSpecificity(a, b, c int) Specificity {
	clamp := func(n int) uint32 {
		if n > 0x3ff {
			return 0x3ff
		}
		return uint32(n)
	}
	return Specificity(clamp(a)<<20 | clamp(b)<<10 | clamp(c))
}

// KeyKind discriminates the fast index keys a rule index may file a
// selector under.
type KeyKind int8

const (
	KeyUniversal KeyKind = iota
	KeyTag
	KeyClass
	KeyID
)

// Key is the fastest discriminating component of a selector's subject
// compound. Rule indexes use it to skip non-candidate rules without
// matching: preference order is id > class > tag > universal.
type Key struct {
	Kind KeyKind
	Name string
}

// DepScope describes which relatives of an element are affected when a
// dynamic-state test recorded for a selector compound flips on it.
type DepScope int8

const (
	// DepSelf: the compound is the selector subject; the element itself
	// has to be restyled.
	DepSelf DepScope = iota
	// DepSiblings: a sibling combinator separates the compound from the
	// subject; later siblings have to be restyled.
	DepSiblings
	// DepDescendants: a descendant or child combinator separates the
	// compound from the subject; the element's subtree has to be restyled.
	DepDescendants
)

// Dep records a single dynamic dependency of a selector: a state mask
// and/or attribute sensitivity, together with the scope of elements a
// change affects.
type Dep struct {
	States State
	Attrs  bool
	Scope  DepScope
}

// Selector is a compiled CSS selector for a single (comma-free) selector
// source. Matching is backed by cascadia; dynamic pseudo-classes, which
// cascadia does not know about, are stripped during compilation and
// checked against the element state bitmask instead.
//
// A compiled selector is immutable and safe for concurrent use.
type Selector struct {
	source    string
	sel       cascadia.Sel
	pseudo    PseudoElement
	states    State // state requirements of the subject compound
	deps      []Dep
	spec      Specificity
	key       Key
	ancestors []uint32 // bloom hashes of guaranteed ancestor components
	shareable bool
}

// scanned per-compound information, intermediate result of compilation.
type compound struct {
	text          string // cleaned selector text, dynamic parts stripped
	comb          byte   // combinator to the right; 0 for the subject compound
	tag           string
	id            string
	classes       []string
	states        State
	attrs         bool
	pseudos       bool // structural pseudo-classes left for cascadia
	pseudoElement PseudoElement
	stripped      int // number of dynamic pseudo-classes removed
}

// Compile parses a single selector (no comma-separated groups) into its
// compiled form. The selector may carry one pseudo-element.
func Compile(source string) (*Selector, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, ErrEmptySelector
	}
	compounds, err := splitCompounds(trimmed)
	if err != nil {
		return nil, err
	}
	if len(compounds) == 0 {
		return nil, ErrEmptySelector
	}
	s := &Selector{source: trimmed}
	stripped := 0
	for i := range compounds {
		if err := scanCompound(&compounds[i]); err != nil {
			return nil, fmt.Errorf("selector %q: %w", trimmed, err)
		}
		if compounds[i].pseudoElement != NoPseudo {
			if s.pseudo != NoPseudo {
				return nil, fmt.Errorf("selector %q: more than one pseudo-element", trimmed)
			}
			s.pseudo = compounds[i].pseudoElement
		}
		stripped += compounds[i].stripped
	}
	subject := &compounds[len(compounds)-1]
	s.states = subject.states
	s.key = keyForCompound(subject)
	s.deps = collectDeps(compounds)
	s.ancestors = ancestorHashes(compounds)
	s.shareable = isShareable(compounds, s.pseudo)

	cleaned := assemble(compounds)
	sel, err := cascadia.Parse(cleaned)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", trimmed, err)
	}
	s.sel = sel
	sp := sel.Specificity()
	c := 0
	if s.pseudo != NoPseudo {
		c = 1
	}
	s.spec = packSpecificity(sp[0], sp[1]+stripped, sp[2]+c)
	return s, nil
}

// CompileGroup compiles a comma-separated selector group into individual
// selectors, one per group entry.
func CompileGroup(source string) ([]*Selector, error) {
	var sels []*Selector
	for _, part := range splitGroup(source) {
		sel, err := Compile(part)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	if len(sels) == 0 {
		return nil, ErrEmptySelector
	}
	return sels, nil
}

// splitGroup splits a selector group on top-level commas.
func splitGroup(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				if p := strings.TrimSpace(s[start:i]); p != "" {
					parts = append(parts, p)
				}
				start = i + 1
			}
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// Match tests the selector against an element with a given dynamic state.
// State requirements on ancestor compounds are matched optimistically;
// the dependency set makes up for this by over-reporting restyles.
func (s *Selector) Match(n *html.Node, st State) bool {
	if !st.Contains(s.states) {
		return false
	}
	return s.sel.Match(n)
}

// MayMatch consults an ancestor filter: false means that at least one
// required ancestor component cannot be present, so the selector cannot
// match. true means "maybe"; an exact Match is still required.
// A nil filter never rejects.
func (s *Selector) MayMatch(f *bloom.Filter) bool {
	if f == nil {
		return true
	}
	for _, h := range s.ancestors {
		if !f.MayContainHash(h) {
			return false
		}
	}
	return true
}

// Pseudo returns the pseudo-element this selector targets, or NoPseudo.
func (s *Selector) Pseudo() PseudoElement {
	return s.pseudo
}

// Specificity returns the packed specificity weight of the selector.
func (s *Selector) Specificity() Specificity {
	return s.spec
}

// Key returns the fast index key of the selector's subject compound.
func (s *Selector) Key() Key {
	return s.key
}

// StateDeps returns the dynamic dependencies recorded for this selector.
func (s *Selector) StateDeps() []Dep {
	return s.deps
}

// Shareable reports wether an element matched by this selector may still
// share its computed style with look-alike elements. Selectors with
// state, attribute or structural pseudo-class tests, or with sibling
// combinators, defeat style sharing.
func (s *Selector) Shareable() bool {
	return s.shareable
}

func (s *Selector) String() string {
	return s.source
}

// --- Compilation internals -------------------------------------------

// splitCompounds splits a selector into compounds at top-level whitespace
// and combinators. Characters inside brackets or parentheses never split.
func splitCompounds(s string) ([]compound, error) {
	var parts []compound
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '[' || ch == '(':
			depth++
			cur.WriteByte(ch)
		case ch == ']' || ch == ')':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced brackets")
			}
			cur.WriteByte(ch)
		case depth == 0 && (ch == ' ' || ch == '\t' || ch == '>' || ch == '+' || ch == '~'):
			comb := byte(' ')
			j := i
			for j < len(s) {
				c := s[j]
				if c == '>' || c == '+' || c == '~' {
					comb = c
				} else if c != ' ' && c != '\t' {
					break
				}
				j++
			}
			if cur.Len() == 0 {
				return nil, fmt.Errorf("dangling combinator %q", string(comb))
			}
			parts = append(parts, compound{text: cur.String(), comb: comb})
			cur.Reset()
			i = j - 1
		default:
			cur.WriteByte(ch)
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced brackets")
	}
	if cur.Len() == 0 {
		return nil, errors.New("selector ends in a combinator")
	}
	parts = append(parts, compound{text: cur.String()})
	return parts, nil
}

func isNameChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' || ch == '-' || ch == '_' || ch >= 0x80
}

// scanCompound walks the simple selectors of one compound, strips dynamic
// pseudo-classes and pseudo-elements, and records tag/id/class components.
func scanCompound(c *compound) error {
	text := c.text
	var cleaned strings.Builder
	i := 0
	for i < len(text) {
		switch ch := text[i]; ch {
		case '#', '.':
			j := i + 1
			for j < len(text) && isNameChar(text[j]) {
				j++
			}
			if j == i+1 {
				return fmt.Errorf("empty name after %q", string(ch))
			}
			name := text[i+1 : j]
			if ch == '#' {
				c.id = name
			} else {
				c.classes = append(c.classes, name)
			}
			cleaned.WriteString(text[i:j])
			i = j
		case '[':
			j := i
			depth := 0
			for j < len(text) {
				if text[j] == '[' {
					depth++
				} else if text[j] == ']' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			if j == len(text) {
				return errors.New("unterminated attribute selector")
			}
			c.attrs = true
			cleaned.WriteString(text[i : j+1])
			i = j + 1
		case ':':
			colons := 1
			if i+1 < len(text) && text[i+1] == ':' {
				colons = 2
			}
			j := i + colons
			for j < len(text) && isNameChar(text[j]) {
				j++
			}
			name := strings.ToLower(text[i+colons : j])
			if name == "" {
				return errors.New("empty pseudo-class name")
			}
			arg := ""
			if j < len(text) && text[j] == '(' {
				k := j
				depth := 0
				for k < len(text) {
					if text[k] == '(' {
						depth++
					} else if text[k] == ')' {
						depth--
						if depth == 0 {
							break
						}
					}
					k++
				}
				if k == len(text) {
					return errors.New("unterminated pseudo-class argument")
				}
				arg = text[j : k+1]
				j = k + 1
			}
			if bit := stateForPseudoClass(name); bit != NoState && colons == 1 {
				c.states |= bit
				c.stripped++
			} else if pe, ok := ParsePseudoElement(name); ok && arg == "" {
				c.pseudoElement = pe
			} else {
				c.pseudos = true
				cleaned.WriteString(text[i:j])
			}
			i = j
		default:
			if !isNameChar(ch) && ch != '*' {
				return fmt.Errorf("unexpected character %q", string(ch))
			}
			j := i
			if ch == '*' {
				j++
			} else {
				for j < len(text) && isNameChar(text[j]) {
					j++
				}
			}
			if cleaned.Len() > 0 {
				return fmt.Errorf("type selector %q not at compound start", text[i:j])
			}
			if ch != '*' {
				c.tag = strings.ToLower(text[i:j])
			}
			cleaned.WriteString(strings.ToLower(text[i:j]))
			i = j
		}
	}
	c.text = cleaned.String()
	if c.text == "" {
		c.text = "*"
	}
	return nil
}

func keyForCompound(c *compound) Key {
	if c.id != "" {
		return Key{Kind: KeyID, Name: c.id}
	}
	if len(c.classes) > 0 {
		return Key{Kind: KeyClass, Name: c.classes[0]}
	}
	if c.tag != "" {
		return Key{Kind: KeyTag, Name: c.tag}
	}
	return Key{Kind: KeyUniversal}
}

func collectDeps(compounds []compound) []Dep {
	var deps []Dep
	last := len(compounds) - 1
	for i := range compounds {
		c := &compounds[i]
		if c.states == NoState && !c.attrs {
			continue
		}
		scope := DepSelf
		if i != last {
			switch c.comb {
			case '+', '~':
				scope = DepSiblings
			default:
				scope = DepDescendants
			}
		}
		deps = append(deps, Dep{States: c.states, Attrs: c.attrs, Scope: scope})
	}
	return deps
}

// ancestorHashes collects bloom hashes for components which any matching
// element's ancestor chain must carry. Only compounds followed directly by
// a descendant or child combinator qualify; compounds left of a sibling
// combinator describe relatives of an ancestor, not the ancestor itself.
func ancestorHashes(compounds []compound) []uint32 {
	var hashes []uint32
	for i := 0; i < len(compounds)-1; i++ {
		c := &compounds[i]
		if c.comb == '+' || c.comb == '~' {
			continue
		}
		if c.tag != "" {
			hashes = append(hashes, bloom.Hash(c.tag))
		}
		if c.id != "" {
			hashes = append(hashes, bloom.Hash("#"+c.id))
		}
		for _, cl := range c.classes {
			hashes = append(hashes, bloom.Hash("."+cl))
		}
	}
	return hashes
}

func isShareable(compounds []compound, pseudo PseudoElement) bool {
	if pseudo != NoPseudo {
		return false
	}
	for i := range compounds {
		c := &compounds[i]
		if c.states != NoState || c.attrs || c.pseudos {
			return false
		}
		if c.comb == '+' || c.comb == '~' {
			return false
		}
	}
	return true
}

func assemble(compounds []compound) string {
	var b strings.Builder
	for i := range compounds {
		b.WriteString(compounds[i].text)
		if i < len(compounds)-1 {
			switch compounds[i].comb {
			case '>', '+', '~':
				b.WriteString(" " + string(compounds[i].comb) + " ")
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
