package sched

import "fmt"

// UDAValue is a numeric input that may be either a literal double or a
// reference to a named user-defined quantity evaluated at runtime.
type UDAValue struct {
	Value    float64
	Quantity string // UDQ name; non-empty means this is a reference
	SIScale  float64
}

// Literal builds a UDAValue holding a plain double.
func Literal(v float64) UDAValue {
	return UDAValue{Value: v, SIScale: 1.0}
}

// Reference builds a UDAValue referring to the named user-defined
// quantity.
func Reference(quantity string) UDAValue {
	return UDAValue{Quantity: quantity, SIScale: 1.0}
}

// IsNumeric reports whether the value is a literal double.
func (u UDAValue) IsNumeric() bool { return u.Quantity == "" }

// IsReference reports whether the value names a user-defined quantity.
func (u UDAValue) IsReference() bool { return u.Quantity != "" }

// Zero reports whether the value is a literal exactly equal to zero.
// A quantity reference is never zero; its runtime value is unknown here.
func (u UDAValue) Zero() bool {
	return u.IsNumeric() && u.Value == 0
}

// Double returns the literal value, or an error for a quantity
// reference.
func (u UDAValue) Double() (float64, error) {
	if u.IsReference() {
		return 0, fmt.Errorf("UDA value %q is a user-defined quantity, not a number", u.Quantity)
	}
	return u.Value, nil
}

// SI returns the literal value converted to SI units. Quantity
// references convert to 0; callers needing the runtime value must go
// through the UDQ evaluation layer.
func (u UDAValue) SI() float64 {
	if u.IsReference() {
		return 0
	}
	scale := u.SIScale
	if scale == 0 {
		scale = 1.0
	}
	return u.Value * scale
}
