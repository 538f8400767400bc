package sched

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// GroupProducerCMode is one group production control. Values are bit
// flags so the armed-control set is a plain mask.
type GroupProducerCMode int

const (
	GroupProdNONE GroupProducerCMode = 0
	GroupProdORAT GroupProducerCMode = 1 << iota
	GroupProdWRAT
	GroupProdGRAT
	GroupProdLRAT
	GroupProdCRAT
	GroupProdRESV
	GroupProdPRBL
	GroupProdFLD
)

var groupProducerCModeNames = map[GroupProducerCMode]string{
	GroupProdNONE: "NONE", GroupProdORAT: "ORAT", GroupProdWRAT: "WRAT",
	GroupProdGRAT: "GRAT", GroupProdLRAT: "LRAT", GroupProdCRAT: "CRAT",
	GroupProdRESV: "RESV", GroupProdPRBL: "PRBL", GroupProdFLD: "FLD",
}

func (m GroupProducerCMode) String() string { return groupProducerCModeNames[m] }

// GroupProducerCModeFromString parses a deck group control mnemonic.
func GroupProducerCModeFromString(s string) (GroupProducerCMode, error) {
	for mode, name := range groupProducerCModeNames {
		if name == s {
			return mode, nil
		}
	}
	return GroupProdNONE, fmt.Errorf("unknown group production control mode %q", s)
}

// GroupInjectorCMode is one group injection control.
type GroupInjectorCMode int

const (
	GroupInjNONE GroupInjectorCMode = 0
	GroupInjRATE GroupInjectorCMode = 1 << iota
	GroupInjRESV
	GroupInjREIN
	GroupInjVREP
	GroupInjFLD
)

var groupInjectorCModeNames = map[GroupInjectorCMode]string{
	GroupInjNONE: "NONE", GroupInjRATE: "RATE", GroupInjRESV: "RESV",
	GroupInjREIN: "REIN", GroupInjVREP: "VREP", GroupInjFLD: "FLD",
}

func (m GroupInjectorCMode) String() string { return groupInjectorCModeNames[m] }

// GroupInjectorCModeFromString parses a deck group injection control
// mnemonic.
func GroupInjectorCModeFromString(s string) (GroupInjectorCMode, error) {
	for mode, name := range groupInjectorCModeNames {
		if name == s {
			return mode, nil
		}
	}
	return GroupInjNONE, fmt.Errorf("unknown group injection control mode %q", s)
}

// ExceedAction is the procedure taken when a group limit is exceeded.
type ExceedAction int

const (
	ExceedNone ExceedAction = iota
	ExceedCon
	ExceedConPlus
	ExceedWell
	ExceedPlug
	ExceedRate
)

// ExceedActionFromString parses a deck exceed-procedure mnemonic.
func ExceedActionFromString(s string) (ExceedAction, error) {
	switch s {
	case "", "NONE":
		return ExceedNone, nil
	case "CON":
		return ExceedCon, nil
	case "+CON", "CON+":
		return ExceedConPlus, nil
	case "WELL":
		return ExceedWell, nil
	case "PLUG":
		return ExceedPlug, nil
	case "RATE":
		return ExceedRate, nil
	default:
		return ExceedNone, fmt.Errorf("unknown exceed action %q", s)
	}
}

// GroupLimitAction bundles the exceed procedures of one GCONPROD
// record.
type GroupLimitAction struct {
	AllRates ExceedAction
	Water    ExceedAction
	Gas      ExceedAction
	Liquid   ExceedAction
}

// GuideRateProdTarget is the phase a group production guide rate
// applies to.
type GuideRateProdTarget int

const (
	GuideRateTargetNone GuideRateProdTarget = iota
	GuideRateTargetOil
	GuideRateTargetWater
	GuideRateTargetGas
	GuideRateTargetLiquid
	GuideRateTargetResV
	GuideRateTargetComb
	GuideRateTargetWGA
	GuideRateTargetCval
	GuideRateTargetInjV
	GuideRateTargetPotn
	GuideRateTargetForm
)

// GuideRateProdTargetFromString parses a deck guide-rate phase
// mnemonic.
func GuideRateProdTargetFromString(s string) (GuideRateProdTarget, error) {
	switch s {
	case "", "NONE":
		return GuideRateTargetNone, nil
	case "OIL":
		return GuideRateTargetOil, nil
	case "WAT", "WATER":
		return GuideRateTargetWater, nil
	case "GAS":
		return GuideRateTargetGas, nil
	case "LIQ":
		return GuideRateTargetLiquid, nil
	case "RES":
		return GuideRateTargetResV, nil
	case "COMB":
		return GuideRateTargetComb, nil
	case "WGA":
		return GuideRateTargetWGA, nil
	case "CVAL":
		return GuideRateTargetCval, nil
	case "INJV":
		return GuideRateTargetInjV, nil
	case "POTN":
		return GuideRateTargetPotn, nil
	case "FORM":
		return GuideRateTargetForm, nil
	default:
		return GuideRateTargetNone, fmt.Errorf("unknown guide rate target %q", s)
	}
}

// GroupProductionProperties is the production control block of one
// group.
type GroupProductionProperties struct {
	GroupName string

	CMode        GroupProducerCMode
	OilTarget    UDAValue
	GasTarget    UDAValue
	WaterTarget  UDAValue
	LiquidTarget UDAValue
	ResVTarget   float64

	GuideRate    float64
	GuideRateDef GuideRateProdTarget

	AvailableGroupControl bool
	LimitAction           GroupLimitAction

	ControlBits int
}

// Copy returns an independent copy.
func (p GroupProductionProperties) Copy() GroupProductionProperties { return p }

// HasControl reports whether the control is armed.
func (p GroupProductionProperties) HasControl(mode GroupProducerCMode) bool {
	return p.ControlBits&int(mode) != 0
}

// UpdateUDQActive records which group production targets reference
// named quantities.
func (p GroupProductionProperties) UpdateUDQActive(udq UDQConfig, active *UDQActive) bool {
	changed := false
	for _, entry := range []struct {
		value   UDAValue
		control string
	}{
		{p.OilTarget, "GCONPROD-ORAT"},
		{p.GasTarget, "GCONPROD-GRAT"},
		{p.WaterTarget, "GCONPROD-WRAT"},
		{p.LiquidTarget, "GCONPROD-LRAT"},
	} {
		if active.Update(udq, entry.value, p.GroupName, entry.control) {
			changed = true
		}
	}
	return changed
}

// GroupInjectionProperties is the injection control block of one group
// for one phase.
type GroupInjectionProperties struct {
	GroupName string

	Phase                 Phase
	CMode                 GroupInjectorCMode
	SurfaceTarget         UDAValue
	ReservoirTarget       UDAValue
	ReinjectionTarget     UDAValue
	VoidageTarget         UDAValue
	ReinjectionGroup      string
	VoidageGroup          string
	AvailableGroupControl bool

	ControlBits int
}

// Copy returns an independent copy.
func (p GroupInjectionProperties) Copy() GroupInjectionProperties { return p }

// HasControl reports whether the control is armed.
func (p GroupInjectionProperties) HasControl(mode GroupInjectorCMode) bool {
	return p.ControlBits&int(mode) != 0
}

// UpdateUDQActive records which group injection targets reference named
// quantities.
func (p GroupInjectionProperties) UpdateUDQActive(udq UDQConfig, active *UDQActive) bool {
	changed := false
	for _, entry := range []struct {
		value   UDAValue
		control string
	}{
		{p.SurfaceTarget, "GCONINJE-RATE"},
		{p.ReservoirTarget, "GCONINJE-RESV"},
		{p.ReinjectionTarget, "GCONINJE-REIN"},
		{p.VoidageTarget, "GCONINJE-VREP"},
	} {
		if active.Update(udq, entry.value, p.GroupName, entry.control) {
			changed = true
		}
	}
	return changed
}

// Group is one group at one report step. Wells and child groups are
// referenced by name; membership lives here while each child's parent
// name lives on the child.
type Group struct {
	Name       string
	ParentName string

	Wells       []string
	ChildGroups []string

	EfficiencyFactor        float64
	UseEfficiencyInNetwork  bool
	GroupNetVFPTable        int
	TransferGroupEfficiency bool

	InsertIndex int

	Production *GroupProductionProperties
	// Injection blocks are kept per phase.
	Injection map[Phase]*GroupInjectionProperties

	GPMaint *GPMaint
}

// NewGroup creates a group below the named parent. FIELD has an empty
// parent name.
func NewGroup(name, parent string, insertIndex int) *Group {
	return &Group{
		Name:             name,
		ParentName:       parent,
		EfficiencyFactor: 1.0,
		InsertIndex:      insertIndex,
		Injection:        make(map[Phase]*GroupInjectionProperties),
	}
}

// HasWell reports whether the well is a direct member.
func (g *Group) HasWell(well string) bool {
	for _, name := range g.Wells {
		if name == well {
			return true
		}
	}
	return false
}

// AddWell registers a well as a direct member.
func (g *Group) AddWell(well string) bool {
	if g.HasWell(well) {
		return false
	}
	g.Wells = append(g.Wells, well)
	return true
}

// DelWell removes a well from direct membership.
func (g *Group) DelWell(well string) bool {
	for n, name := range g.Wells {
		if name == well {
			g.Wells = append(g.Wells[:n:n], g.Wells[n+1:]...)
			return true
		}
	}
	return false
}

// HasChildGroup reports whether the group is a direct child.
func (g *Group) HasChildGroup(child string) bool {
	for _, name := range g.ChildGroups {
		if name == child {
			return true
		}
	}
	return false
}

// AddChildGroup registers a direct child group.
func (g *Group) AddChildGroup(child string) bool {
	if g.HasChildGroup(child) {
		return false
	}
	g.ChildGroups = append(g.ChildGroups, child)
	return true
}

// DelChildGroup removes a direct child group.
func (g *Group) DelChildGroup(child string) bool {
	for n, name := range g.ChildGroups {
		if name == child {
			g.ChildGroups = append(g.ChildGroups[:n:n], g.ChildGroups[n+1:]...)
			return true
		}
	}
	return false
}

// UpdateProduction installs a new production block when content
// differs.
func (g *Group) UpdateProduction(p GroupProductionProperties) bool {
	if g.Production != nil && cmp.Equal(*g.Production, p) {
		return false
	}
	g.Production = &p
	return true
}

// UpdateInjection installs a new injection block for the block's phase
// when content differs.
func (g *Group) UpdateInjection(p GroupInjectionProperties) bool {
	if current, ok := g.Injection[p.Phase]; ok && cmp.Equal(*current, p) {
		return false
	}
	injection := make(map[Phase]*GroupInjectionProperties, len(g.Injection)+1)
	for phase, block := range g.Injection {
		injection[phase] = block
	}
	injection[p.Phase] = &p
	g.Injection = injection
	return true
}

// GroupCollection is the ordered group set of one snapshot, with the
// same copy-on-write discipline as WellCollection.
type GroupCollection struct {
	order  []string
	byName map[string]*Group
}

// NewGroupCollection returns an empty collection.
func NewGroupCollection() GroupCollection {
	return GroupCollection{byName: make(map[string]*Group)}
}

func (c GroupCollection) clone() GroupCollection {
	cp := GroupCollection{
		order:  append([]string(nil), c.order...),
		byName: make(map[string]*Group, len(c.byName)),
	}
	for name, group := range c.byName {
		cp.byName[name] = group
	}
	return cp
}

// Has reports whether the named group exists.
func (c GroupCollection) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Len returns the number of groups.
func (c GroupCollection) Len() int { return len(c.byName) }

// Names returns all group names in insertion order.
func (c GroupCollection) Names() []string {
	return append([]string(nil), c.order...)
}

// Get returns a modifiable copy of the named group.
func (c GroupCollection) Get(name string) (Group, error) {
	group, ok := c.byName[name]
	if !ok {
		return Group{}, fmt.Errorf("no such group %q", name)
	}
	cp := *group
	cp.Wells = append([]string(nil), group.Wells...)
	cp.ChildGroups = append([]string(nil), group.ChildGroups...)
	return cp, nil
}

// Ref returns the stored group for read-only access.
func (c GroupCollection) Ref(name string) *Group {
	return c.byName[name]
}

// Add inserts a new group.
func (c *GroupCollection) Add(group *Group) {
	if _, ok := c.byName[group.Name]; !ok {
		c.order = append(c.order, group.Name)
	}
	c.byName[group.Name] = group
}

// Update commits a modified group copy, installing a new pointer only
// when the content differs from the stored instance.
func (c *GroupCollection) Update(group Group) bool {
	current, ok := c.byName[group.Name]
	if ok && cmp.Equal(*current, group) {
		return false
	}
	if !ok {
		c.order = append(c.order, group.Name)
	}
	c.byName[group.Name] = &group
	return true
}
