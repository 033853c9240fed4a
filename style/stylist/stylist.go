package stylist

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/style/bloom"
	"github.com/npillmayer/cascade/style/cssom"
	"github.com/npillmayer/cascade/style/selector"
)

// Cascader is the value-computation function the stylist hands its
// ordered declaration lists to. It merges the declarations against an
// optional parent style; later entries win on property conflicts.
//
// Deep per-property computed-value arithmetic is outside the stylist's
// responsibility; ApplyDeclarations is a baseline implementation.
type Cascader func(decls []DeclarationBlock, parent *style.PropertyMap) *style.PropertyMap

// ApplyDeclarations is the default Cascader: it applies all declaration
// blocks in order into a fresh property map, expanding shorthand
// properties. The parent style is not consulted; inheritance is left to
// the property lookup of the styled tree.
func ApplyDeclarations(decls []DeclarationBlock, parent *style.PropertyMap) *style.PropertyMap {
	pmap := style.NewPropertyMap()
	for _, block := range decls {
		for _, kv := range block.Declarations {
			pmap.ApplyDeclaration(kv.Key, kv.Value)
		}
	}
	return pmap
}

// Stylist holds all the selectors and device characteristics for a given
// document. Rules are compiled and introduced into rule indexes keyed by
// pseudo-element identity, stylesheet origin and importance. A stylist is
// effectively created once per document.
//
// A Stylist is single-writer/many-readers: Rebuild and SetDevice require
// exclusive access, while any number of concurrent cascade lookups may
// run against the read-only snapshot a rebuild produced.
type Stylist struct {
	device              cssom.Device
	viewportConstraints *cssom.ViewportConstraints
	quirksMode          bool
	deviceDirty         bool

	builtin  []cssom.StyleSheet // built-in user-agent (and user) stylesheets
	quirks   cssom.StyleSheet   // applied only in quirks mode
	cascader Cascader

	elementMap  *scopeMaps
	pseudosMap  map[selector.PseudoElement]*scopeMaps
	precomputed map[selector.PseudoElement][]DeclarationBlock
	sourceOrder int
	deps        DependencySet
}

// Option configures a Stylist at construction time.
type Option func(*Stylist)

// WithBuiltinStyles injects the process-wide built-in stylesheets: the
// user-agent set inserted before any document stylesheet, and the
// quirks-mode sheet inserted when quirks mode is enabled.
func WithBuiltinStyles(userAgent []cssom.StyleSheet, quirks cssom.StyleSheet) Option {
	return func(s *Stylist) {
		s.builtin = userAgent
		s.quirks = quirks
	}
}

// WithCascader replaces the default value-computation function.
func WithCascader(c Cascader) Option {
	return func(s *Stylist) {
		if c != nil {
			s.cascader = c
		}
	}
}

// New creates a Stylist for a device. The stylist starts out
// device-dirty; a Rebuild is required before the first lookup.
func New(device cssom.Device, opts ...Option) *Stylist {
	s := &Stylist{
		device:      device,
		deviceDirty: true,
		cascader:    ApplyDeclarations,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetMaps()
	return s
}

func (s *Stylist) resetMaps() {
	s.elementMap = newScopeMaps()
	s.pseudosMap = make(map[selector.PseudoElement]*scopeMaps)
	selector.EachEagerPseudoElement(func(pseudo selector.PseudoElement) {
		s.pseudosMap[pseudo] = newScopeMaps()
	})
	s.precomputed = make(map[selector.PseudoElement][]DeclarationBlock)
	s.deps.Clear()
}

// SetQuirksMode enables or disables the quirks-mode stylesheet. Takes
// effect with the next rebuild.
func (s *Stylist) SetQuirksMode(enabled bool) {
	s.quirksMode = enabled
}

// IsDeviceDirty reports wether the device changed since the last rebuild.
func (s *Stylist) IsDeviceDirty() bool {
	return s.deviceDirty
}

// Device returns the device the stylist currently evaluates against.
func (s *Stylist) Device() cssom.Device {
	return s.device
}

// ViewportConstraints returns the viewport constraints derived from
// @viewport rules by the last SetDevice call, or nil.
func (s *Stylist) ViewportConstraints() *cssom.ViewportConstraints {
	return s.viewportConstraints
}

// Rebuild discards all rule indexes and repopulates them from the
// built-in stylesheets, the quirks-mode sheet (if enabled) and the given
// document stylesheets, in that order. It is a no-op, returning false,
// if neither the device is dirty nor changed is set.
//
// Rebuild requires exclusive access; no lookup may run concurrently.
func (s *Stylist) Rebuild(docSheets []cssom.StyleSheet, changed bool) bool {
	if !(s.deviceDirty || changed) {
		return false
	}
	s.resetMaps()
	s.sourceOrder = 0

	for _, sheet := range s.builtin {
		s.addStyleSheet(sheet)
	}
	if s.quirksMode && s.quirks != nil {
		s.addStyleSheet(s.quirks)
	}
	for _, sheet := range docSheets {
		s.addStyleSheet(sheet)
	}
	s.precomputePseudoStyles()

	s.deviceDirty = false
	indexed := s.elementMap.ruleCount()
	for _, scope := range s.pseudosMap {
		indexed += scope.ruleCount()
	}
	tracer().P("rules", indexed).Debugf("stylist rebuilt; %d dynamic dependencies",
		s.deps.Len())
	return true
}

// addStyleSheet compiles and indexes every style rule of a sheet which is
// effective for the current device. Source order keeps incrementing
// across sheets; it is never reset mid-rebuild.
func (s *Stylist) addStyleSheet(sheet cssom.StyleSheet) {
	if !cssom.EvalMediaQuery(sheet.Media(), s.device) {
		tracer().Debugf("stylesheet (%s) media query fails for device, skipped", sheet.Origin())
		return
	}
	rules := cssom.EffectiveRules(sheet, s.device)
	origin := sheet.Origin()
	for _, rule := range rules {
		normal, important := splitByImportance(rule)
		for _, selText := range rule.Selectors() {
			sel, err := selector.Compile(selText)
			if err != nil {
				tracer().Infof("skipping unsupported selector: %v", err)
				continue
			}
			maps := s.scopeForInsert(sel.Pseudo()).forOrigin(origin)
			if len(normal) > 0 {
				maps.normal.insert(Rule{Selector: sel, Declarations: normal, SourceOrder: s.sourceOrder})
			}
			if len(important) > 0 {
				maps.important.insert(Rule{Selector: sel, Declarations: important, SourceOrder: s.sourceOrder})
			}
			s.deps.NoteSelector(sel)
		}
		s.sourceOrder++
	}
}

// splitByImportance walks the declarations of a rule positionally, so
// that duplicate property keys (fallback declarations) keep their source
// order and the later one wins during value computation.
func splitByImportance(rule cssom.Rule) (normal, important []style.KeyValue) {
	for _, d := range rule.Declarations() {
		kv := style.KeyValue{Key: d.Key, Value: d.Value}
		if d.Important {
			important = append(important, kv)
		} else {
			normal = append(normal, kv)
		}
	}
	return normal, important
}

func (s *Stylist) scopeForInsert(pseudo selector.PseudoElement) *scopeMaps {
	if pseudo == selector.NoPseudo {
		return s.elementMap
	}
	scope, ok := s.pseudosMap[pseudo]
	if !ok {
		scope = newScopeMaps()
		s.pseudosMap[pseudo] = scope
	}
	return scope
}

func (s *Stylist) scopeFor(pseudo selector.PseudoElement) *scopeMaps {
	if pseudo == selector.NoPseudo {
		return s.elementMap
	}
	return s.pseudosMap[pseudo]
}

// precomputePseudoStyles caches the declaration lists for pseudo-elements
// whose cascade never depends on a specific element, so that per-element
// lookups for them become cache reads.
func (s *Stylist) precomputePseudoStyles() {
	selector.EachPrecomputedPseudoElement(func(pseudo selector.PseudoElement) {
		scope, ok := s.pseudosMap[pseudo]
		if !ok {
			return
		}
		delete(s.pseudosMap, pseudo)
		var decls []DeclarationBlock
		scope.userAgent.normal.appendUniversalRules(&decls)
		scope.userAgent.important.appendUniversalRules(&decls)
		s.precomputed[pseudo] = decls
	})
}

// PushApplicableDeclarations appends the applicable declarations for an
// element (or one of its pseudo-elements) to out, in exact cascade
// precedence order:
//
//  1. User-agent rules, normal importance.
//  2. Presentational hints from legacy attributes.
//  3. User rules, normal importance.
//  4. Author rules, normal importance.
//  5. Style-attribute declarations, normal importance.
//  6. Style-attribute declarations, important.
//  7. Author important, user important, user-agent important rules.
//
// Within the rule steps candidates are ordered ascending by (specificity,
// source order); later declarations win ties during value computation.
//
// The returned boolean indicates wether the element's style is
// shareable: its matched rule set is simple enough for a style-sharing
// cache to reuse the computed style for look-alike elements. This is an
// advisory signal, not a correctness requirement.
//
// PushApplicableDeclarations must not be called while the device is
// dirty, and a style attribute must never be supplied together with a
// pseudo-element; either is a contract violation and panics.
func (s *Stylist) PushApplicableDeclarations(el Element, bf *bloom.Filter,
	styleAttr *cssom.InlineStyle, pseudo selector.PseudoElement,
	out *[]DeclarationBlock) bool {
	//
	if s.deviceDirty {
		panic("stylist: lookup while device is dirty; rebuild first")
	}
	if !styleAttr.IsEmpty() && pseudo != selector.NoPseudo {
		panic("stylist: style attributes do not apply to pseudo-elements")
	}
	if pseudo.CascadeType() == selector.CascadePrecomputed {
		panic("stylist: precomputed pseudo-elements are not matched per element")
	}
	scope := s.scopeFor(pseudo)
	if scope == nil { // no rules anywhere target this pseudo-element
		return true
	}

	shareable := true

	// Step 1: normal user-agent rules.
	scope.userAgent.normal.appendMatchingRules(el, bf, out, &shareable)

	// Step 2: presentational hints.
	if pseudo == selector.NoPseudo {
		if synth, ok := el.(PresentationalHintsSynthesizer); ok {
			if hints := synth.PresentationalHints(); len(hints) > 0 {
				*out = append(*out, DeclarationBlock{Declarations: hints})
				shareable = false // never share style for elements with hints
			}
		}
	}

	// Steps 3 and 4: normal user and author rules.
	scope.user.normal.appendMatchingRules(el, bf, out, &shareable)
	scope.author.normal.appendMatchingRules(el, bf, out, &shareable)

	// Steps 5 and 6: style attribute, normal then important.
	if !styleAttr.IsEmpty() {
		if len(styleAttr.Normal) > 0 {
			*out = append(*out, DeclarationBlock{Declarations: styleAttr.Normal})
			shareable = false
		}
		if len(styleAttr.Important) > 0 {
			*out = append(*out, DeclarationBlock{Declarations: styleAttr.Important})
			shareable = false
		}
	}

	// Step 7: important rules, author before user before user-agent.
	scope.author.important.appendMatchingRules(el, bf, out, &shareable)
	scope.user.important.appendMatchingRules(el, bf, out, &shareable)
	scope.userAgent.important.appendMatchingRules(el, bf, out, &shareable)

	return shareable
}

// PrecomputedStyleFor computes the style for a precomputed pseudo-element
// from the declaration list cached at rebuild time. If no rules matched
// the pseudo-element at all, the parent style is returned unchanged.
func (s *Stylist) PrecomputedStyleFor(pseudo selector.PseudoElement,
	parent *style.PropertyMap) *style.PropertyMap {
	//
	if pseudo.CascadeType() != selector.CascadePrecomputed {
		panic("stylist: pseudo-element is not precomputed")
	}
	decls, ok := s.precomputed[pseudo]
	if !ok {
		return parent
	}
	return s.cascader(decls, parent)
}

// LazilyComputeStyleFor resolves the style of a lazily cascaded
// pseudo-element of an element. ok is false if no rules anywhere target
// the pseudo-element, in which case the caller falls back to the parent
// style. Style attributes and presentational hints never apply to
// pseudo-elements and are excluded.
func (s *Stylist) LazilyComputeStyleFor(el Element, pseudo selector.PseudoElement,
	parent *style.PropertyMap) (*style.PropertyMap, bool) {
	//
	if pseudo.CascadeType() != selector.CascadeLazy {
		panic("stylist: pseudo-element is not lazily cascaded")
	}
	if s.scopeFor(pseudo) == nil {
		return nil, false
	}
	var decls []DeclarationBlock
	s.PushApplicableDeclarations(el, nil, nil, pseudo, &decls)
	return s.cascader(decls, parent), true
}

// ComputeRestyleHint determines, from a recorded state change on an
// element, which subset of {self, later siblings, descendants} has to be
// restyled. The analysis runs over the dependency set built at rebuild
// time; it is sound but may over-report.
func (s *Stylist) ComputeRestyleHint(el Element, snapshot Snapshot,
	current selector.State) RestyleHint {
	return s.deps.computeHint(el, snapshot, current)
}

// SetDevice installs a new device description. Every @viewport rule of
// the given stylesheets is cascaded against the device to derive
// viewport constraints overriding its effective size. If any media query
// evaluates differently between the old and the new device, the stylist
// becomes dirty and the next Rebuild re-indexes.
func (s *Stylist) SetDevice(device cssom.Device, sheets []cssom.StyleSheet) {
	s.viewportConstraints = cssom.CascadeViewportRules(sheets, device)
	if s.viewportConstraints != nil {
		device = cssom.NewDevice(device.Type, s.viewportConstraints.Size)
	}
	if mediaDiffers(s.device, device, s.builtin) || mediaDiffers(s.device, device, sheets) {
		s.deviceDirty = true
	} else if s.quirksMode && s.quirks != nil &&
		mediaDiffers(s.device, device, []cssom.StyleSheet{s.quirks}) {
		s.deviceDirty = true
	}
	s.device = device
}

// mediaDiffers checks wether any media query of the sheets evaluates
// differently between two devices, i.e. the set of effective rules might
// change.
func mediaDiffers(old, next cssom.Device, sheets []cssom.StyleSheet) bool {
	for _, sheet := range sheets {
		if cssom.EvalMediaQuery(sheet.Media(), old) != cssom.EvalMediaQuery(sheet.Media(), next) {
			return true
		}
		for _, rule := range sheet.Rules() {
			cond := rule.Condition()
			if cond == "" {
				continue
			}
			if cssom.EvalMediaQuery(cond, old) != cssom.EvalMediaQuery(cond, next) {
				return true
			}
		}
	}
	return false
}
