package cssom

import (
	"github.com/npillmayer/tyse/core/dimen"
)

// ViewportConstraints are the effective viewport overrides derived from
// cascading every @viewport rule of a stylesheet set against a device.
type ViewportConstraints struct {
	Size dimen.Point
}

// CascadeViewportRules collects the @viewport declarations of all sheets
// in order (later declarations win) and derives viewport constraints from
// them. Sheets whose media query fails for the device are skipped, as are
// @viewport blocks whose enclosing @media condition fails.
// Returns nil if no sheet declares viewport properties.
func CascadeViewportRules(sheets []StyleSheet, device Device) *ViewportConstraints {
	width, height := "", ""
	for _, sheet := range sheets {
		if !EvalMediaQuery(sheet.Media(), device) {
			continue
		}
		for _, vr := range sheet.Viewport() {
			if !EvalMediaQuery(vr.Condition, device) {
				continue
			}
			for _, kv := range vr.Declarations {
				switch kv.Key {
				case "width":
					width = kv.Value.String()
				case "height":
					height = kv.Value.String()
				}
			}
		}
	}
	if width == "" && height == "" {
		return nil
	}
	size := device.ViewportSize
	if d, ok := viewportLength(width, device.ViewportSize.X); ok {
		size.X = d
	}
	if d, ok := viewportLength(height, device.ViewportSize.Y); ok {
		size.Y = d
	}
	tracer().Debugf("@viewport constraints: %v", size)
	return &ViewportConstraints{Size: size}
}

func viewportLength(value string, deviceLength dimen.DU) (dimen.DU, bool) {
	switch value {
	case "", "auto":
		return 0, false
	case "device-width", "device-height":
		return deviceLength, true
	}
	return ParseLength(value)
}
