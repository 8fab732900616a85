package filter

import "strings"

// BodyStyle is a display category inferred from a listing description.
type BodyStyle string

const (
	SUV         BodyStyle = "suv"
	Truck       BodyStyle = "truck"
	Convertible BodyStyle = "convertible"
	Coupe       BodyStyle = "coupe"
	Sedan       BodyStyle = "sedan"
)

// bodyKeywords is checked in order; the first keyword found wins.
var bodyKeywords = []BodyStyle{SUV, Truck, Convertible, Coupe}

// BodyStyles lists every category DeriveBodyStyle can return.
var BodyStyles = []BodyStyle{Sedan, SUV, Truck, Convertible, Coupe}

// DeriveBodyStyle classifies a description by keyword. Anything without a
// keyword is a sedan, so "suvs" and "pickup truck" both match and a
// description mentioning "no suv" is still an SUV.
//
// TODO: replace with a stored body style field on the car record once the
// catalog API carries one.
func DeriveBodyStyle(description string) BodyStyle {
	d := strings.ToLower(description)
	for _, style := range bodyKeywords {
		if strings.Contains(d, string(style)) {
			return style
		}
	}
	return Sedan
}

// ParseBodyStyle reports whether s names a known body style.
func ParseBodyStyle(s string) (BodyStyle, bool) {
	for _, style := range BodyStyles {
		if string(style) == s {
			return style, true
		}
	}
	return "", false
}
