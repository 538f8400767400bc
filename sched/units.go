package sched

import "fmt"

// Dimension is a named physical dimension with its deck-to-SI scaling
// factor.
type Dimension struct {
	Name  string
	Scale float64
}

// SIScaling returns the factor converting a deck-unit value of this
// dimension to SI.
func (d Dimension) SIScaling() float64 { return d.Scale }

// UnitSystem resolves dimension names to conversion factors. It is
// consumed as a service; the conversion tables themselves are the
// minimal set the schedule handlers need.
type UnitSystem interface {
	Name() string
	Parse(dimension string) Dimension
}

type unitTable struct {
	name   string
	scales map[string]float64
}

func (u *unitTable) Name() string { return u.name }

func (u *unitTable) Parse(dimension string) Dimension {
	if scale, ok := u.scales[dimension]; ok {
		return Dimension{Name: dimension, Scale: scale}
	}
	panic(fmt.Sprintf("Parse: unknown dimension %q in unit system %s", dimension, u.name))
}

const (
	day   = 86400.0
	barsa = 1.0e5
	psia  = 6894.75729
	ft    = 0.3048
	stb   = 0.158987294928
	mscf  = 28.316846592
)

// MetricUnitSystem returns the METRIC convention: bars, days, m3.
func MetricUnitSystem() UnitSystem {
	return &unitTable{name: "METRIC", scales: map[string]float64{
		"1":                        1.0,
		"Pressure":                 barsa,
		"Length":                   1.0,
		"Time":                     day,
		"Temperature":              1.0,
		"LiquidSurfaceVolume/Time": 1.0 / day,
		"GasSurfaceVolume/Time":    1.0 / day,
		"ReservoirVolume/Time":     1.0 / day,
		"GasSurfaceVolume/LiquidSurfaceVolume": 1.0,
	}}
}

// FieldUnitSystem returns the FIELD convention: psi, days, stb/Mscf.
func FieldUnitSystem() UnitSystem {
	return &unitTable{name: "FIELD", scales: map[string]float64{
		"1":                        1.0,
		"Pressure":                 psia,
		"Length":                   ft,
		"Time":                     day,
		"Temperature":              1.0,
		"LiquidSurfaceVolume/Time": stb / day,
		"GasSurfaceVolume/Time":    mscf / day,
		"ReservoirVolume/Time":     stb / day,
		"GasSurfaceVolume/LiquidSurfaceVolume": mscf / stb,
	}}
}

// UnitSystemFromName returns the unit system for a deck convention name.
func UnitSystemFromName(name string) (UnitSystem, error) {
	switch name {
	case "", "METRIC":
		return MetricUnitSystem(), nil
	case "FIELD":
		return FieldUnitSystem(), nil
	default:
		return nil, fmt.Errorf("unknown unit system %q", name)
	}
}
