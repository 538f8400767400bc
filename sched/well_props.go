package sched

import "fmt"

// ProducerCMode is one active production control. A well carries a
// bitmask of controls that are armed plus the single mode currently in
// force.
type ProducerCMode int

const (
	ProducerNONE ProducerCMode = iota
	ProducerORAT
	ProducerWRAT
	ProducerGRAT
	ProducerLRAT
	ProducerCRAT
	ProducerRESV
	ProducerBHP
	ProducerTHP
	ProducerGRUP
)

var producerCModeNames = map[ProducerCMode]string{
	ProducerNONE: "NONE", ProducerORAT: "ORAT", ProducerWRAT: "WRAT",
	ProducerGRAT: "GRAT", ProducerLRAT: "LRAT", ProducerCRAT: "CRAT",
	ProducerRESV: "RESV", ProducerBHP: "BHP", ProducerTHP: "THP",
	ProducerGRUP: "GRUP",
}

func (m ProducerCMode) String() string { return producerCModeNames[m] }

// ProducerCModeFromString parses a deck control-mode mnemonic.
func ProducerCModeFromString(s string) (ProducerCMode, error) {
	for mode, name := range producerCModeNames {
		if name == s {
			return mode, nil
		}
	}
	return ProducerNONE, fmt.Errorf("unknown production control mode %q", s)
}

// InjectorCMode is one active injection control.
type InjectorCMode int

const (
	InjectorNONE InjectorCMode = iota
	InjectorRATE
	InjectorRESV
	InjectorBHP
	InjectorTHP
	InjectorGRUP
)

var injectorCModeNames = map[InjectorCMode]string{
	InjectorNONE: "NONE", InjectorRATE: "RATE", InjectorRESV: "RESV",
	InjectorBHP: "BHP", InjectorTHP: "THP", InjectorGRUP: "GRUP",
}

func (m InjectorCMode) String() string { return injectorCModeNames[m] }

// InjectorCModeFromString parses a deck injection control mnemonic.
func InjectorCModeFromString(s string) (InjectorCMode, error) {
	for mode, name := range injectorCModeNames {
		if name == s {
			return mode, nil
		}
	}
	return InjectorNONE, fmt.Errorf("unknown injection control mode %q", s)
}

// InjectorType is the injected phase.
type InjectorType int

const (
	InjectorWater InjectorType = iota
	InjectorGas
	InjectorOil
	InjectorMulti
)

// InjectorTypeFromString parses a deck injector phase mnemonic.
func InjectorTypeFromString(s string) (InjectorType, error) {
	switch s {
	case "WATER", "WAT":
		return InjectorWater, nil
	case "GAS":
		return InjectorGas, nil
	case "OIL":
		return InjectorOil, nil
	case "MULTI":
		return InjectorMulti, nil
	default:
		return InjectorWater, fmt.Errorf("unknown injector type %q", s)
	}
}

// Default BHP limits installed when a well switches role and its old
// limit no longer applies. Producers fall back to atmospheric pressure,
// injectors to a deliberately unreachable ceiling. SI pascal.
const (
	defaultProducerBHPLimit = 101325.0
	defaultInjectorBHPLimit = 6.891e7
)

// WellProductionProperties is the production control block of one well.
// All fields are exported so snapshot equality gating can compare
// blocks structurally.
type WellProductionProperties struct {
	WellName string

	OilRate    UDAValue
	WaterRate  UDAValue
	GasRate    UDAValue
	LiquidRate UDAValue
	ResVRate   UDAValue
	BHPTarget  UDAValue
	THPTarget  UDAValue
	ALQValue   UDAValue

	// Observed history-mode pressures, SI.
	BHPH float64
	THPH float64

	VFPTableNumber int
	PredictionMode bool

	ControlBits int
	ControlMode ProducerCMode

	// WhistctlMode overrides the history-mode control of every well
	// while a WHISTCTL keyword is in force.
	WhistctlMode ProducerCMode
}

// EffectiveHistoryControl reports whether the mode can steer a
// history-matched producer.
func EffectiveHistoryControl(mode ProducerCMode) bool {
	switch mode {
	case ProducerNONE, ProducerORAT, ProducerWRAT, ProducerGRAT,
		ProducerLRAT, ProducerCRAT, ProducerRESV, ProducerBHP:
		return true
	default:
		return false
	}
}

// NewWellProductionProperties returns the block for a fresh well.
func NewWellProductionProperties(wellName string) WellProductionProperties {
	return WellProductionProperties{WellName: wellName, PredictionMode: true}
}

// Copy returns an independent copy.
func (p WellProductionProperties) Copy() WellProductionProperties { return p }

// AddControl arms a production control.
func (p *WellProductionProperties) AddControl(mode ProducerCMode) {
	p.ControlBits |= 1 << mode
}

// DropControl disarms a production control.
func (p *WellProductionProperties) DropControl(mode ProducerCMode) {
	p.ControlBits &^= 1 << mode
}

// HasControl reports whether the control is armed.
func (p WellProductionProperties) HasControl(mode ProducerCMode) bool {
	return p.ControlBits&(1<<mode) != 0
}

// ClearControls disarms every control.
func (p *WellProductionProperties) ClearControls() {
	p.ControlBits = 0
}

// ResetDefaultBHPLimit restores the atmospheric BHP floor. Applied when
// an injector becomes a producer, since the injector's BHP ceiling is
// meaningless for production.
func (p *WellProductionProperties) ResetDefaultBHPLimit() {
	p.BHPTarget = Literal(defaultProducerBHPLimit)
	p.AddControl(ProducerBHP)
}

// HandleWCONPROD applies one WCONPROD record: prediction-mode targets
// with a control armed for every non-defaulted rate item, BHP always
// armed, and the requested control mode validated against the armed
// set.
func (p *WellProductionProperties) HandleWCONPROD(wellName string, record DeckRecord) error {
	p.PredictionMode = true

	set := func(target *UDAValue, itemName string, mode ProducerCMode) {
		item := record.Item(itemName)
		*target = item.UDA(0)
		if !item.DefaultApplied(0) {
			p.AddControl(mode)
		}
	}
	set(&p.OilRate, "ORAT", ProducerORAT)
	set(&p.WaterRate, "WRAT", ProducerWRAT)
	set(&p.GasRate, "GRAT", ProducerGRAT)
	set(&p.LiquidRate, "LRAT", ProducerLRAT)
	set(&p.ResVRate, "RESV", ProducerRESV)
	set(&p.THPTarget, "THP", ProducerTHP)

	bhp := record.Item("BHP")
	if bhp.DefaultApplied(0) {
		p.BHPTarget = Literal(defaultProducerBHPLimit)
	} else {
		p.BHPTarget = bhp.UDA(0)
	}
	p.AddControl(ProducerBHP)

	if vfp := record.Item("VFP_TABLE"); !vfp.DefaultApplied(0) {
		p.VFPTableNumber = vfp.Int(0)
	}
	p.ALQValue = record.Item("ALQ").UDA(0)

	cmode, err := ProducerCModeFromString(record.Item("CMODE").TrimmedString(0))
	if err != nil {
		return err
	}
	if cmode != ProducerNONE && !p.HasControl(cmode) {
		return fmt.Errorf("well %s: control mode %s specified but its target is defaulted", wellName, cmode)
	}
	p.ControlMode = cmode
	return nil
}

// HandleWCONHIST applies one WCONHIST record: observed rates with every
// rate control armed, control mode taken from the record unless a
// WHISTCTL override is in force.
func (p *WellProductionProperties) HandleWCONHIST(whistctl ProducerCMode, record DeckRecord) error {
	p.PredictionMode = false
	p.ClearControls()

	p.OilRate = record.Item("ORAT").UDA(0)
	p.WaterRate = record.Item("WRAT").UDA(0)
	p.GasRate = record.Item("GRAT").UDA(0)
	for _, mode := range []ProducerCMode{ProducerORAT, ProducerWRAT, ProducerGRAT, ProducerLRAT, ProducerRESV} {
		p.AddControl(mode)
	}

	p.BHPH = record.Item("BHP").SIDouble(0)
	p.THPH = record.Item("THP").SIDouble(0)
	if vfp := record.Item("VFP_TABLE"); !vfp.DefaultApplied(0) {
		p.VFPTableNumber = vfp.Int(0)
	}

	cmode, err := ProducerCModeFromString(record.Item("CMODE").TrimmedString(0))
	if err != nil {
		return err
	}
	if whistctl != ProducerNONE {
		cmode = whistctl
	}
	p.ControlMode = cmode
	p.BHPTarget = Literal(0)
	p.AddControl(ProducerBHP)
	return nil
}

// HandleWELTARG retargets a single production control in place. The
// value arrives in deck units; pressure targets scale by siFactorP.
func (p *WellProductionProperties) HandleWELTARG(cmode string, value UDAValue, siFactorP float64) error {
	switch cmode {
	case "ORAT":
		p.OilRate = value
		p.AddControl(ProducerORAT)
	case "WRAT":
		p.WaterRate = value
		p.AddControl(ProducerWRAT)
	case "GRAT":
		p.GasRate = value
		p.AddControl(ProducerGRAT)
	case "LRAT":
		p.LiquidRate = value
		p.AddControl(ProducerLRAT)
	case "RESV":
		p.ResVRate = value
		p.AddControl(ProducerRESV)
	case "BHP":
		if value.IsNumeric() {
			p.BHPTarget = Literal(value.Value * siFactorP)
		} else {
			p.BHPTarget = value
		}
		p.AddControl(ProducerBHP)
	case "THP":
		if value.IsNumeric() {
			p.THPTarget = Literal(value.Value * siFactorP)
		} else {
			p.THPTarget = value
		}
		p.AddControl(ProducerTHP)
	case "VFP":
		p.VFPTableNumber = int(value.Value)
	case "LIFT":
		p.ALQValue = value
	case "GUID":
		// Guide rate retargeting is handled at the well level.
	default:
		return fmt.Errorf("WELTARG control %q is not valid for a production well", cmode)
	}
	return nil
}

// HandleWTMULT multiplies the current target of one production control
// in place. UDA-valued targets cannot be scaled.
func (p *WellProductionProperties) HandleWTMULT(cmode string, factor float64) error {
	scale := func(target *UDAValue) error {
		if target.IsReference() {
			return fmt.Errorf("cannot scale control %s: target is a named quantity %s", cmode, target.Quantity)
		}
		target.Value *= factor
		return nil
	}
	switch cmode {
	case "ORAT":
		return scale(&p.OilRate)
	case "WRAT":
		return scale(&p.WaterRate)
	case "GRAT":
		return scale(&p.GasRate)
	case "LRAT":
		return scale(&p.LiquidRate)
	case "RESV":
		return scale(&p.ResVRate)
	case "BHP":
		return scale(&p.BHPTarget)
	case "THP":
		return scale(&p.THPTarget)
	case "LIFT":
		return scale(&p.ALQValue)
	default:
		return fmt.Errorf("WTMULT control %q is not valid for a production well", cmode)
	}
}

// UpdateUDQActive records which production targets reference named
// quantities, so the UDQ engine knows which expressions feed controls.
func (p WellProductionProperties) UpdateUDQActive(udq UDQConfig, active *UDQActive) bool {
	changed := false
	for _, entry := range []struct {
		value   UDAValue
		control string
	}{
		{p.OilRate, "WCONPROD-ORAT"},
		{p.WaterRate, "WCONPROD-WRAT"},
		{p.GasRate, "WCONPROD-GRAT"},
		{p.LiquidRate, "WCONPROD-LRAT"},
		{p.ResVRate, "WCONPROD-RESV"},
		{p.BHPTarget, "WCONPROD-BHP"},
		{p.THPTarget, "WCONPROD-THP"},
	} {
		if active.Update(udq, entry.value, p.WellName, entry.control) {
			changed = true
		}
	}
	return changed
}

// WellInjectionProperties is the injection control block of one well.
type WellInjectionProperties struct {
	WellName string

	InjectorType InjectorType

	SurfaceInjectionRate   UDAValue
	ReservoirInjectionRate UDAValue
	BHPTarget              UDAValue
	THPTarget              UDAValue

	// Observed history-mode pressures, SI.
	BHPH float64
	THPH float64

	VFPTableNumber int
	PredictionMode bool

	// Injected-water fraction temperature, SI kelvin. Set by WTEMP.
	Temperature float64

	ControlBits int
	ControlMode InjectorCMode
}

// NewWellInjectionProperties returns the block for a fresh well.
func NewWellInjectionProperties(wellName string) WellInjectionProperties {
	return WellInjectionProperties{
		WellName:       wellName,
		PredictionMode: true,
		BHPTarget:      Literal(defaultInjectorBHPLimit),
	}
}

// Copy returns an independent copy.
func (p WellInjectionProperties) Copy() WellInjectionProperties { return p }

// AddControl arms an injection control.
func (p *WellInjectionProperties) AddControl(mode InjectorCMode) {
	p.ControlBits |= 1 << mode
}

// DropControl disarms an injection control.
func (p *WellInjectionProperties) DropControl(mode InjectorCMode) {
	p.ControlBits &^= 1 << mode
}

// HasControl reports whether the control is armed.
func (p WellInjectionProperties) HasControl(mode InjectorCMode) bool {
	return p.ControlBits&(1<<mode) != 0
}

// ClearControls disarms every control.
func (p *WellInjectionProperties) ClearControls() {
	p.ControlBits = 0
}

// ResetBHPLimit restores the unreachable injection BHP ceiling. Applied
// when a producer becomes an injector.
func (p *WellInjectionProperties) ResetBHPLimit() {
	p.BHPTarget = Literal(defaultInjectorBHPLimit)
}

// HandleWCONINJE applies one WCONINJE record: phase, prediction-mode
// targets with a control armed for every non-defaulted item, BHP always
// armed, GRUP armed when the well accepts group control, and the
// requested control mode validated against the armed set.
func (p *WellInjectionProperties) HandleWCONINJE(record DeckRecord, availableForGroupControl bool, wellName string) error {
	injType, err := InjectorTypeFromString(record.Item("TYPE").TrimmedString(0))
	if err != nil {
		return err
	}
	p.InjectorType = injType
	p.PredictionMode = true
	p.ClearControls()

	rate := record.Item("RATE")
	p.SurfaceInjectionRate = rate.UDA(0)
	if !rate.DefaultApplied(0) {
		p.AddControl(InjectorRATE)
	}

	resv := record.Item("RESV")
	p.ReservoirInjectionRate = resv.UDA(0)
	if !resv.DefaultApplied(0) {
		p.AddControl(InjectorRESV)
	}

	thp := record.Item("THP")
	if !thp.DefaultApplied(0) {
		p.THPTarget = thp.UDA(0)
		p.AddControl(InjectorTHP)
	}

	bhp := record.Item("BHP")
	if bhp.DefaultApplied(0) {
		p.BHPTarget = Literal(defaultInjectorBHPLimit)
	} else {
		p.BHPTarget = bhp.UDA(0)
	}
	p.AddControl(InjectorBHP)

	if vfp := record.Item("VFP_TABLE"); !vfp.DefaultApplied(0) {
		p.VFPTableNumber = vfp.Int(0)
	}
	if availableForGroupControl {
		p.AddControl(InjectorGRUP)
	}

	cmode, err := InjectorCModeFromString(record.Item("CMODE").TrimmedString(0))
	if err != nil {
		return err
	}
	if cmode != InjectorNONE && !p.HasControl(cmode) {
		return fmt.Errorf("well %s: injection control mode %s specified but its target is defaulted", wellName, cmode)
	}
	p.ControlMode = cmode
	return nil
}

// HandleWCONINJH applies one WCONINJH record: observed injection rate
// under history control.
func (p *WellInjectionProperties) HandleWCONINJH(record DeckRecord) error {
	injType, err := InjectorTypeFromString(record.Item("TYPE").TrimmedString(0))
	if err != nil {
		return err
	}
	p.InjectorType = injType
	p.PredictionMode = false
	p.ClearControls()

	p.SurfaceInjectionRate = record.Item("RATE").UDA(0)
	p.AddControl(InjectorRATE)
	p.ControlMode = InjectorRATE

	p.BHPH = record.Item("BHP").SIDouble(0)
	p.THPH = record.Item("THP").SIDouble(0)
	if vfp := record.Item("VFP_TABLE"); !vfp.DefaultApplied(0) {
		p.VFPTableNumber = vfp.Int(0)
	}
	return nil
}

// HandleWELTARG retargets a single injection control in place.
func (p *WellInjectionProperties) HandleWELTARG(cmode string, value UDAValue, siFactorP float64) error {
	switch cmode {
	case "ORAT", "WRAT", "GRAT":
		// For an injector the phase rate mnemonics all retarget the
		// surface injection rate of the injected phase.
		p.SurfaceInjectionRate = value
		p.AddControl(InjectorRATE)
	case "RATE":
		p.SurfaceInjectionRate = value
		p.AddControl(InjectorRATE)
	case "RESV":
		p.ReservoirInjectionRate = value
		p.AddControl(InjectorRESV)
	case "BHP":
		if value.IsNumeric() {
			p.BHPTarget = Literal(value.Value * siFactorP)
		} else {
			p.BHPTarget = value
		}
		p.AddControl(InjectorBHP)
	case "THP":
		if value.IsNumeric() {
			p.THPTarget = Literal(value.Value * siFactorP)
		} else {
			p.THPTarget = value
		}
		p.AddControl(InjectorTHP)
	case "VFP":
		p.VFPTableNumber = int(value.Value)
	default:
		return fmt.Errorf("WELTARG control %q is not valid for an injection well", cmode)
	}
	return nil
}

// HandleWTMULT multiplies the current target of one injection control
// in place.
func (p *WellInjectionProperties) HandleWTMULT(cmode string, factor float64) error {
	scale := func(target *UDAValue) error {
		if target.IsReference() {
			return fmt.Errorf("cannot scale control %s: target is a named quantity %s", cmode, target.Quantity)
		}
		target.Value *= factor
		return nil
	}
	switch cmode {
	case "ORAT", "WRAT", "GRAT", "RATE":
		return scale(&p.SurfaceInjectionRate)
	case "RESV":
		return scale(&p.ReservoirInjectionRate)
	case "BHP":
		return scale(&p.BHPTarget)
	case "THP":
		return scale(&p.THPTarget)
	default:
		return fmt.Errorf("WTMULT control %q is not valid for an injection well", cmode)
	}
}

// UpdateUDQActive records which injection targets reference named
// quantities.
func (p WellInjectionProperties) UpdateUDQActive(udq UDQConfig, active *UDQActive) bool {
	changed := false
	for _, entry := range []struct {
		value   UDAValue
		control string
	}{
		{p.SurfaceInjectionRate, "WCONINJE-RATE"},
		{p.ReservoirInjectionRate, "WCONINJE-RESV"},
		{p.BHPTarget, "WCONINJE-BHP"},
		{p.THPTarget, "WCONINJE-THP"},
	} {
		if active.Update(udq, entry.value, p.WellName, entry.control) {
			changed = true
		}
	}
	return changed
}
