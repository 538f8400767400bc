package sched

import "fmt"

// GuideRateTarget is the nominated phase of the GUIDERAT model.
type GuideRateTarget int

const (
	GuideRateNone GuideRateTarget = iota
	GuideRateOil
	GuideRateLiquid
	GuideRateGas
	GuideRateResV
	GuideRateCombined
)

// GuideRateTargetFromString parses the nominated-phase mnemonic.
func GuideRateTargetFromString(s string) (GuideRateTarget, error) {
	switch s {
	case "", "NONE":
		return GuideRateNone, nil
	case "OIL":
		return GuideRateOil, nil
	case "LIQ":
		return GuideRateLiquid, nil
	case "GAS":
		return GuideRateGas, nil
	case "RES":
		return GuideRateResV, nil
	case "COMB":
		return GuideRateCombined, nil
	default:
		return GuideRateNone, fmt.Errorf("unknown guide rate phase %q", s)
	}
}

// GuideRateModel is the global guide-rate formula from GUIDERAT, with
// the optional LINCOM linear-combination coefficients.
type GuideRateModel struct {
	MinCalcDelay  float64
	Target        GuideRateTarget
	A, B, C, D    float64
	E, F          float64
	AllowIncrease bool
	DampingFactor float64
	UseFreeGas    bool

	Alpha, Beta, Gamma UDAValue
}

// NewGuideRateModel builds the model from a GUIDERAT record.
func NewGuideRateModel(record DeckRecord) (GuideRateModel, error) {
	target, err := GuideRateTargetFromString(record.Item("NOMINATED_PHASE").TrimmedString(0))
	if err != nil {
		return GuideRateModel{}, err
	}
	return GuideRateModel{
		MinCalcDelay:  record.Item("MIN_CALC_TIME").SIDouble(0),
		Target:        target,
		A:             record.Item("A").Double(0),
		B:             record.Item("B").Double(0),
		C:             record.Item("C").Double(0),
		D:             record.Item("D").Double(0),
		E:             record.Item("E").Double(0),
		F:             record.Item("F").Double(0),
		AllowIncrease: record.Item("ALLOW_INCREASE").Bool(0),
		DampingFactor: record.Item("DAMPING_FACTOR").Double(0),
		UseFreeGas:    record.Item("USE_FREE_GAS").Bool(0),
	}, nil
}

// UpdateLINCOM replaces the linear-combination coefficients, reporting
// whether anything changed.
func (m *GuideRateModel) UpdateLINCOM(alpha, beta, gamma UDAValue) bool {
	if m.Alpha == alpha && m.Beta == beta && m.Gamma == gamma {
		return false
	}
	m.Alpha, m.Beta, m.Gamma = alpha, beta, gamma
	return true
}

// GuideRateConfig holds the global model plus the per-group and
// per-well guide-rate assignments currently in force.
type GuideRateConfig struct {
	Model    GuideRateModel
	HasModel bool

	ProductionGroups map[string]GroupProductionProperties
	InjectionGroups  map[string]GroupInjectionProperties
	Wells            map[string]GuideRateWell
}

// GuideRateWell is the explicit guide rate of one well from WGRUPCON.
type GuideRateWell struct {
	GuideRate   float64
	GuidePhase  string
	ScalingFactor float64
}

// NewGuideRateConfig returns an empty configuration.
func NewGuideRateConfig() GuideRateConfig {
	return GuideRateConfig{
		ProductionGroups: make(map[string]GroupProductionProperties),
		InjectionGroups:  make(map[string]GroupInjectionProperties),
		Wells:            make(map[string]GuideRateWell),
	}
}

// Copy returns an independent copy.
func (c GuideRateConfig) Copy() GuideRateConfig {
	cp := c
	cp.ProductionGroups = make(map[string]GroupProductionProperties, len(c.ProductionGroups))
	for name, props := range c.ProductionGroups {
		cp.ProductionGroups[name] = props
	}
	cp.InjectionGroups = make(map[string]GroupInjectionProperties, len(c.InjectionGroups))
	for name, props := range c.InjectionGroups {
		cp.InjectionGroups[name] = props
	}
	cp.Wells = make(map[string]GuideRateWell, len(c.Wells))
	for name, well := range c.Wells {
		cp.Wells[name] = well
	}
	return cp
}

// UpdateModel installs a new global model, reporting whether it
// changed.
func (c *GuideRateConfig) UpdateModel(model GuideRateModel) bool {
	if c.HasModel && c.Model == model {
		return false
	}
	c.Model = model
	c.HasModel = true
	return true
}

// UpdateProductionGroup records the group's guide-rate relevant
// production block.
func (c *GuideRateConfig) UpdateProductionGroup(group Group) {
	if group.Production == nil {
		return
	}
	c.ProductionGroups[group.Name] = *group.Production
}

// UpdateInjectionGroup records the group's guide-rate relevant
// injection block for one phase.
func (c *GuideRateConfig) UpdateInjectionGroup(group Group, phase Phase) {
	if block, ok := group.Injection[phase]; ok {
		c.InjectionGroups[group.Name] = *block
	}
}

// UpdateWell records a well's explicit guide rate.
func (c *GuideRateConfig) UpdateWell(name string, rate float64, phase string, scaling float64) {
	c.Wells[name] = GuideRateWell{GuideRate: rate, GuidePhase: phase, ScalingFactor: scaling}
}
