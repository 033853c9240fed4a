/*
Package cssom provides the stylesheet interface boundary for CSS styling.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

In order to de-couple implementations of CSS-stylesheets from the styling
engine, this package defines interfaces StyleSheet and Rule: the engine
consumes already-parsed stylesheets through them and never looks at raw
CSS text. Clients provide a concrete implementation (e.g., see package
douceuradapter).

Having this interface imposes a performance hit. However, this
implementation of CSS-styling will never trade modularity and clarity for
performance. Clients in need for a production grade browser engine (where
performance is key) should opt for headless versions of the main browser
projects.

Besides the stylesheet interfaces the package hosts what stylesheets are
evaluated against: a Device description with media type and viewport size,
a media-query evaluator, and the cascade of @viewport rules into viewport
constraints.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cascade.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.cssom")
}
