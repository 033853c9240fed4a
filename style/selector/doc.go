/*
Package selector compiles CSS selectors for the styling engine.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

A compiled selector bundles everything the rule indexes need to know
about a selector:

  - an exact matcher, backed by cascadia,
  - the dynamic-state requirements of its subject compound (':hover' and
    friends, which a static matcher cannot decide),
  - the pseudo-element it targets, if any,
  - its specificity, packed into a single comparable integer,
  - a fast index key (id > class > tag > universal),
  - hashes of guaranteed ancestor components for the bloom pre-filter,
  - its dynamic dependencies, feeding restyle-hint computation.

Dynamic pseudo-classes are stripped from the selector text before it is
handed to cascadia and are checked against an element state bitmask
instead.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cascade.selector'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.selector")
}
