package sched

import "fmt"

// WellEconLimits holds the WECON economic abandonment limits of one
// well. Rates and ratios are SI.
type WellEconLimits struct {
	MinOilRate       float64
	MinGasRate       float64
	MaxWaterCut      float64
	MaxGasOilRatio   float64
	MaxWaterGasRatio float64
	Workover         string
	EndRun           bool
	FollowonWell     string
}

// NewWellEconLimits returns limits with everything disabled.
func NewWellEconLimits() WellEconLimits {
	return WellEconLimits{Workover: "NONE"}
}

// Copy returns an independent copy.
func (e WellEconLimits) Copy() WellEconLimits { return e }

// FromWECON replaces the limits with the content of a WECON record.
func (e *WellEconLimits) FromWECON(record DeckRecord) {
	e.MinOilRate = record.Item("MIN_OIL_PRODUCTION").SIDouble(0)
	e.MinGasRate = record.Item("MIN_GAS_PRODUCTION").SIDouble(0)
	e.MaxWaterCut = record.Item("MAX_WATER_CUT").Double(0)
	e.MaxGasOilRatio = record.Item("MAX_GAS_OIL").SIDouble(0)
	e.MaxWaterGasRatio = record.Item("MAX_WATER_GAS").SIDouble(0)
	e.Workover = record.Item("WORKOVER_RATIO_LIMIT").TrimmedString(0)
	if e.Workover == "" {
		e.Workover = "NONE"
	}
	e.EndRun = record.Item("END_RUN_FLAG").Bool(0)
	e.FollowonWell = record.Item("FOLLOW_ON_WELL").TrimmedString(0)
}

// WellTracerProperties maps tracer names to injection concentrations.
type WellTracerProperties struct {
	Concentrations map[string]float64
}

// NewWellTracerProperties returns an empty tracer block.
func NewWellTracerProperties() WellTracerProperties {
	return WellTracerProperties{Concentrations: make(map[string]float64)}
}

// Copy returns an independent copy.
func (t WellTracerProperties) Copy() WellTracerProperties {
	cp := NewWellTracerProperties()
	for name, conc := range t.Concentrations {
		cp.Concentrations[name] = conc
	}
	return cp
}

// SetConcentration records the injected concentration of one tracer.
func (t *WellTracerProperties) SetConcentration(tracer string, concentration float64) {
	if t.Concentrations == nil {
		t.Concentrations = make(map[string]float64)
	}
	t.Concentrations[tracer] = concentration
}

// WellPolymerProperties holds polymer injection settings (WPOLYMER)
// and the mixing/skin table bindings (WPMITAB, WSKPTAB).
type WellPolymerProperties struct {
	PolymerConcentration UDAValue
	SaltConcentration    UDAValue
	PlymwinjTable        int
	SkprwatTable         int
	SkprpolyTable        int
	ShearRefConc         float64
}

// Copy returns an independent copy.
func (p WellPolymerProperties) Copy() WellPolymerProperties { return p }

// HandleWPOLYMER applies a WPOLYMER record.
func (p *WellPolymerProperties) HandleWPOLYMER(record DeckRecord) {
	p.PolymerConcentration = record.Item("POLYMER_CONCENTRATION").UDA(0)
	p.SaltConcentration = record.Item("SALT_CONCENTRATION").UDA(0)
}

// HandleWPMITAB binds a polymer mixing table.
func (p *WellPolymerProperties) HandleWPMITAB(record DeckRecord) {
	p.PlymwinjTable = record.Item("TABLE_NUMBER").Int(0)
}

// HandleWSKPTAB binds the skin-pressure water/polymer tables.
func (p *WellPolymerProperties) HandleWSKPTAB(record DeckRecord) {
	p.SkprwatTable = record.Item("TABLE_NUMBER_WATER").Int(0)
	p.SkprpolyTable = record.Item("TABLE_NUMBER_POLYMER").Int(0)
	p.ShearRefConc = record.Item("POLYMER_CONCENTRATION").Double(0)
}

// WellFoamProperties holds foam injection settings from WFOAM.
type WellFoamProperties struct {
	FoamConcentration UDAValue
}

// Copy returns an independent copy.
func (f WellFoamProperties) Copy() WellFoamProperties { return f }

// HandleWFOAM applies a WFOAM record.
func (f *WellFoamProperties) HandleWFOAM(record DeckRecord) {
	f.FoamConcentration = record.Item("FOAM_CONCENTRATION").UDA(0)
}

// WellBrineProperties holds the injected salt concentration from WSALT.
type WellBrineProperties struct {
	SaltConcentration float64
}

// Copy returns an independent copy.
func (b WellBrineProperties) Copy() WellBrineProperties { return b }

// HandleWSALT applies a WSALT record.
func (b *WellBrineProperties) HandleWSALT(record DeckRecord) {
	b.SaltConcentration = record.Item("CONCENTRATION").SIDouble(0)
}

// WellMICPProperties holds microbially-induced calcite precipitation
// injection settings from WMICP.
type WellMICPProperties struct {
	MicrobialConcentration float64
	OxygenConcentration    float64
	UreaConcentration      float64
}

// Copy returns an independent copy.
func (m WellMICPProperties) Copy() WellMICPProperties { return m }

// HandleWMICP applies a WMICP record.
func (m *WellMICPProperties) HandleWMICP(record DeckRecord) {
	m.MicrobialConcentration = record.Item("MICROBIAL_CONCENTRATION").SIDouble(0)
	m.OxygenConcentration = record.Item("OXYGEN_CONCENTRATION").SIDouble(0)
	m.UreaConcentration = record.Item("UREA_CONCENTRATION").SIDouble(0)
}

// WDFACType selects how the flow-dependent skin D-factor is obtained.
type WDFACType int

const (
	// DFactorNone disables the D-factor.
	DFactorNone WDFACType = iota
	// DFactorWell uses the well-level constant from WDFAC.
	DFactorWell
	// DFactorConnection uses the per-connection factors from COMPDAT.
	DFactorConnection
	// DFactorCorrelation uses the WDFACCOR correlation coefficients.
	DFactorCorrelation
)

// WDFAC holds the well D-factor model.
type WDFAC struct {
	Type WDFACType

	// Well-level constant, SI.
	DFactor float64

	// Correlation coefficients.
	CoeffA, CoeffB, CoeffC float64
}

// Copy returns an independent copy.
func (d WDFAC) Copy() WDFAC { return d }

// UpdateWDFAC applies a WDFAC record.
func (d *WDFAC) UpdateWDFAC(record DeckRecord) {
	d.DFactor = record.Item("DFACTOR").SIDouble(0)
	d.Type = DFactorWell
	if d.DFactor == 0 {
		d.Type = DFactorNone
	}
}

// UpdateWDFACCOR applies a WDFACCOR record.
func (d *WDFAC) UpdateWDFACCOR(record DeckRecord) {
	d.CoeffA = record.Item("A").SIDouble(0)
	d.CoeffB = record.Item("B").Double(0)
	d.CoeffC = record.Item("C").Double(0)
	d.Type = DFactorCorrelation
	if d.CoeffA == 0 {
		d.Type = DFactorNone
	}
}

// UpdateFromConnections enables connection-level D-factors when any
// connection carries one and no explicit model is in force.
func (d *WDFAC) UpdateFromConnections(conns WellConnections) {
	if d.Type != DFactorNone {
		return
	}
	for n := 0; n < conns.Len(); n++ {
		if conns.Get(n).DFactor != 0 {
			d.Type = DFactorConnection
			return
		}
	}
}

// WVFPDP holds the WVFPDP pressure adjustments applied on top of VFP
// table lookups.
type WVFPDP struct {
	PressureAdjustment float64
	PLossScaling       float64
}

// Copy returns an independent copy.
func (w WVFPDP) Copy() WVFPDP { return w }

// HandleWVFPDP applies a WVFPDP record.
func (w *WVFPDP) HandleWVFPDP(record DeckRecord) {
	w.PressureAdjustment = record.Item("DELTA_P").SIDouble(0)
	scaling := record.Item("LOSS_SCALING_FACTOR")
	if scaling.DefaultApplied(0) {
		w.PLossScaling = 1.0
	} else {
		w.PLossScaling = scaling.Double(0)
	}
}

// WVFPEXP holds the WVFPEXP explicit-lookup and THP violation settings.
type WVFPEXP struct {
	Explicit    bool
	Shut        bool
	Prevent     string
}

// Copy returns an independent copy.
func (w WVFPEXP) Copy() WVFPEXP { return w }

// HandleWVFPEXP applies a WVFPEXP record.
func (w *WVFPEXP) HandleWVFPEXP(record DeckRecord) error {
	switch mode := record.Item("EXPLICIT_IMPLICIT").TrimmedString(0); mode {
	case "EXP":
		w.Explicit = true
	case "", "IMP":
		w.Explicit = false
	default:
		return fmt.Errorf("unknown WVFPEXP lookup mode %q", mode)
	}
	w.Shut = record.Item("CLOSE").TrimmedString(0) == "YES"
	w.Prevent = record.Item("PREVENT_THT").TrimmedString(0)
	return nil
}

// InjMultMode selects which connections a WINJMULT multiplier applies
// to.
type InjMultMode int

const (
	InjMultWellHead InjMultMode = iota
	InjMultAll
	InjMultNone
)

// WellInjMult holds the pressure-dependent injectivity multiplier from
// WINJMULT.
type WellInjMult struct {
	Mode              InjMultMode
	FracturePressure  float64
	Gradient          float64
}

// Copy returns an independent copy.
func (m WellInjMult) Copy() WellInjMult { return m }

// HandleWINJMULT applies a WINJMULT record.
func (m *WellInjMult) HandleWINJMULT(record DeckRecord, location KeywordLocation) error {
	m.FracturePressure = record.Item("FRACTURING_PRESSURE").SIDouble(0)
	m.Gradient = record.Item("MULTIPLIER_GRADIENT").SIDouble(0)
	switch mode := record.Item("MODE").TrimmedString(0); mode {
	case "", "WREV":
		m.Mode = InjMultWellHead
	case "CREV":
		m.Mode = InjMultAll
	case "CIRR":
		m.Mode = InjMultNone
	default:
		return NewInputError(location, "unknown WINJMULT mode %q", mode)
	}
	return nil
}
