package cssom

import (
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
)

// MediaType is the type of presentation medium a device offers.
type MediaType string

// Media types relevant for styling.
const (
	MediaAll    MediaType = "all"
	MediaScreen MediaType = "screen"
	MediaPrint  MediaType = "print"
)

// Device describes the medium stylesheets are evaluated against: a media
// type and the size of the viewport.
type Device struct {
	Type         MediaType
	ViewportSize dimen.Point
}

// NewDevice creates a device description.
func NewDevice(t MediaType, size dimen.Point) Device {
	return Device{Type: t, ViewportSize: size}
}

// EvalMediaQuery evaluates a media query list against a device. The empty
// query and "all" always hold. A list holds if any of its comma-separated
// queries holds; a query holds if its media type fits the device and every
// media feature expression is satisfied.
//
// Unknown media types never fit; unknown feature expressions are treated
// as unsatisfied, following the CSS error-handling rule that a malformed
// query evaluates to "not all".
func EvalMediaQuery(query string, d Device) bool {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return true
	}
	for _, q := range strings.Split(query, ",") {
		if evalSingleQuery(strings.TrimSpace(q), d) {
			return true
		}
	}
	return false
}

func evalSingleQuery(q string, d Device) bool {
	if q == "" {
		return true
	}
	negate := false
	if strings.HasPrefix(q, "not ") {
		negate = true
		q = strings.TrimSpace(q[4:])
	} else if strings.HasPrefix(q, "only ") {
		q = strings.TrimSpace(q[5:])
	}
	result := true
	for _, term := range strings.Split(q, " and ") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if strings.HasPrefix(term, "(") {
			if !evalFeature(strings.Trim(term, "()"), d) {
				result = false
				break
			}
		} else if !mediaTypeFits(term, d.Type) {
			result = false
			break
		}
	}
	if negate {
		return !result
	}
	return result
}

func mediaTypeFits(name string, t MediaType) bool {
	switch MediaType(name) {
	case MediaAll:
		return true
	case t:
		return true
	}
	return false
}

func evalFeature(expr string, d Device) bool {
	key, value, hasValue := cutColon(expr)
	switch key {
	case "orientation":
		if d.ViewportSize.Y >= d.ViewportSize.X {
			return value == "portrait"
		}
		return value == "landscape"
	case "width", "min-width", "max-width":
		return compareLength(key, value, hasValue, d.ViewportSize.X)
	case "height", "min-height", "max-height":
		return compareLength(key, value, hasValue, d.ViewportSize.Y)
	}
	tracer().Debugf("media feature '%s' not understood, treating as false", expr)
	return false
}

func cutColon(expr string) (string, string, bool) {
	if i := strings.IndexByte(expr, ':'); i >= 0 {
		return strings.TrimSpace(expr[:i]), strings.TrimSpace(expr[i+1:]), true
	}
	return strings.TrimSpace(expr), "", false
}

func compareLength(key, value string, hasValue bool, actual dimen.DU) bool {
	if !hasValue {
		return actual > 0
	}
	length, ok := ParseLength(value)
	if !ok {
		return false
	}
	switch {
	case strings.HasPrefix(key, "min-"):
		return actual >= length
	case strings.HasPrefix(key, "max-"):
		return actual <= length
	}
	return actual == length
}

// ParseLength parses an absolute CSS length ("600px", "12pt", …) into
// device units. Relative units which need a font context are not
// supported here; 'em' assumes the 16px default font size.
func ParseLength(value string) (dimen.DU, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	i := len(value)
	for i > 0 && (value[i-1] < '0' || value[i-1] > '9') && value[i-1] != '.' {
		i--
	}
	num, unit := value[:i], value[i:]
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	pt := float64(dimen.PT)
	switch unit {
	case "pt":
		return dimen.DU(f * pt), true
	case "px", "":
		return dimen.DU(f * pt * 3 / 4), true
	case "em":
		return dimen.DU(f * 16 * pt * 3 / 4), true
	case "in":
		return dimen.DU(f * 72 * pt), true
	case "cm":
		return dimen.DU(f * 72 / 2.54 * pt), true
	case "mm":
		return dimen.DU(f * 72 / 25.4 * pt), true
	}
	return 0, false
}
