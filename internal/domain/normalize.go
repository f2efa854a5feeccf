package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// LocationSeparator joins the two streets of an intersection.
const LocationSeparator = " & "

// numberRe matches optionally signed integers and decimals: "42", "-3", "42.5", ".5", "7.".
// Exponents, hex and thousands separators are not numbers.
var numberRe = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)$`)

// NormalizeField coerces a raw CSV value. Rules are applied in order and the
// first match wins:
//  1. the location column is canonicalized with CanonicalLocation
//  2. "yes"/"no" in any case becomes a boolean
//  3. a signed integer or decimal becomes a number
//  4. anything else is kept verbatim
//
// Only the field name and its own raw value are consulted.
func NormalizeField(name, raw string) Value {
	if name == FieldCrashLocation {
		return StringValue(CanonicalLocation(raw))
	}

	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(trimmed, "yes"):
		return BoolValue(true)
	case strings.EqualFold(trimmed, "no"):
		return BoolValue(false)
	}

	if n, ok := parseNumber(trimmed); ok {
		return NumberValue(n)
	}
	return StringValue(raw)
}

func parseNumber(s string) (float64, bool) {
	if s == "" || !numberRe.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CanonicalLocation turns "<street> & <street>" into a key that does not
// depend on street order: whitespace runs collapse to one space, each street
// is trimmed and the streets are sorted before rejoining.
func CanonicalLocation(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	if collapsed == "" {
		return ""
	}

	streets := strings.Split(collapsed, LocationSeparator)
	for i := range streets {
		streets[i] = strings.TrimSpace(streets[i])
	}
	sort.Strings(streets)
	return strings.Join(streets, LocationSeparator)
}
