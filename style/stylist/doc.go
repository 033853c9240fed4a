/*
Package stylist resolves which styling rules apply to which element.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

This package implements the hardest part of the styling engine: for every
element of a document tree it collects the set of rules applying to it
and orders their declarations in strict cascade precedence with respect
to origin, specificity, source order and importance. The ordering is externally
observable; it determines the visual result of every styled page.

A good explanation of styling may be found in

	https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

The central type is the Stylist. It owns rule indexes keyed by
pseudo-element identity, stylesheet origin and importance, a device
description, and a dependency set for dynamic-state tracking. Callers
rebuild it whenever the stylesheet set or the device changes, then issue
any number of concurrent cascade lookups against the resulting read-only
snapshot.

Selector matching relies on the great work of
https://godoc.org/github.com/andybalholm/cascadia; stylesheets enter the
stylist through the interfaces of package cssom.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stylist

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cascade.stylist'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.stylist")
}
