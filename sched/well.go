package sched

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// WellStatus is the operational status of a well. STOP keeps the well
// in the surface network without flow; at the connection level it
// behaves as SHUT.
type WellStatus int

const (
	WellOpen WellStatus = iota
	WellStop
	WellShut
	WellAuto
)

var wellStatusNames = map[WellStatus]string{
	WellOpen: "OPEN", WellStop: "STOP", WellShut: "SHUT", WellAuto: "AUTO",
}

func (s WellStatus) String() string { return wellStatusNames[s] }

// WellStatusFromString parses a deck status mnemonic.
func WellStatusFromString(s string) (WellStatus, error) {
	for status, name := range wellStatusNames {
		if name == s {
			return status, nil
		}
	}
	return WellShut, fmt.Errorf("unknown well status %q", s)
}

// Phase is a well's preferred phase from WELSPECS.
type Phase int

const (
	PhaseOil Phase = iota
	PhaseGas
	PhaseWater
	PhaseLiquid
)

// PhaseFromString parses a deck phase mnemonic.
func PhaseFromString(s string) (Phase, error) {
	switch s {
	case "OIL":
		return PhaseOil, nil
	case "GAS":
		return PhaseGas, nil
	case "WATER", "WAT":
		return PhaseWater, nil
	case "LIQ":
		return PhaseLiquid, nil
	default:
		return PhaseOil, fmt.Errorf("unknown phase %q", s)
	}
}

// Well is one well at one report step. Property blocks hang off the
// well as pointers: copying a Well is cheap and shares the blocks, and
// each Update* call installs a fresh block only when content actually
// changed. Snapshots that never touch a well therefore share all of its
// blocks with the previous step.
type Well struct {
	Name      string
	GroupName string

	HeadI, HeadJ      int
	RefDepth          float64
	RefDepthDefault   bool
	PreferredPhase    Phase
	DrainageRadius    float64
	AllowCrossFlow    bool
	AutoShutIn        bool
	Status            WellStatus
	Producer          bool
	Prediction        bool
	HasProducedFlag   bool
	HasInjectedFlag   bool
	GroupControllable bool

	GuideRate        float64
	GuideRatePhase   string
	GuideRateScaling float64

	EfficiencyFactor float64
	SolventFraction  float64
	PIScalingFactor  float64

	// InsertIndex is the creation order across the whole run; wildcard
	// resolution reports wells in this order.
	InsertIndex int

	Production  *WellProductionProperties
	Injection   *WellInjectionProperties
	Connections *WellConnections
	Econ        *WellEconLimits
	Tracer      *WellTracerProperties
	Polymer     *WellPolymerProperties
	Foam        *WellFoamProperties
	Brine       *WellBrineProperties
	MICP        *WellMICPProperties
	DFac        *WDFAC
	VFPDelta    *WVFPDP
	VFPExplicit *WVFPEXP
	Segments    *WellSegments
	InjMult     *WellInjMult
	BlockAvg    *PAvg
}

// NewWell creates a well from its WELSPECS definition. The well starts
// SHUT as a producer with no connections.
func NewWell(name, group string, headI, headJ int, phase Phase, insertIndex int) *Well {
	prod := NewWellProductionProperties(name)
	inj := NewWellInjectionProperties(name)
	conns := NewWellConnections(headI, headJ)
	econ := NewWellEconLimits()
	return &Well{
		Name:              name,
		GroupName:         group,
		HeadI:             headI,
		HeadJ:             headJ,
		RefDepthDefault:   true,
		PreferredPhase:    phase,
		AllowCrossFlow:    true,
		AutoShutIn:        true,
		Status:            WellShut,
		Producer:          true,
		Prediction:        true,
		GroupControllable: true,
		EfficiencyFactor:  1.0,
		GuideRateScaling:  1.0,
		PIScalingFactor:   1.0,
		InsertIndex:       insertIndex,
		Production:        &prod,
		Injection:         &inj,
		Connections:       &conns,
		Econ:              &econ,
	}
}

// IsProducer reports whether the well is in the producer role.
func (w *Well) IsProducer() bool { return w.Producer }

// IsInjector reports whether the well is in the injector role.
func (w *Well) IsInjector() bool { return !w.Producer }

// GetAllowCrossFlow reports whether crossflow through the well is
// permitted.
func (w *Well) GetAllowCrossFlow() bool { return w.AllowCrossFlow }

// IsAvailableForGroupControl reports whether group-level controls may
// steer this well.
func (w *Well) IsAvailableForGroupControl() bool { return w.GroupControllable }

// UpdateStatus transitions the well status, reporting whether it
// changed.
func (w *Well) UpdateStatus(status WellStatus) bool {
	if w.Status == status {
		return false
	}
	w.Status = status
	return true
}

// UpdateProduction installs a new production block when its content
// differs from the current one.
func (w *Well) UpdateProduction(p WellProductionProperties) bool {
	if w.Production != nil && cmp.Equal(*w.Production, p) {
		return false
	}
	w.Production = &p
	return true
}

// UpdateInjection installs a new injection block when its content
// differs from the current one.
func (w *Well) UpdateInjection(p WellInjectionProperties) bool {
	if w.Injection != nil && cmp.Equal(*w.Injection, p) {
		return false
	}
	w.Injection = &p
	return true
}

// UpdateConnections installs a new connection set when content differs.
func (w *Well) UpdateConnections(c WellConnections) bool {
	if w.Connections != nil && cmp.Equal(*w.Connections, c) {
		return false
	}
	w.Connections = &c
	return true
}

// UpdateEcon installs new economic limits when content differs.
func (w *Well) UpdateEcon(e WellEconLimits) bool {
	if w.Econ != nil && cmp.Equal(*w.Econ, e) {
		return false
	}
	w.Econ = &e
	return true
}

// UpdatePrediction flips the well between prediction and history mode.
func (w *Well) UpdatePrediction(prediction bool) bool {
	if w.Prediction == prediction {
		return false
	}
	w.Prediction = prediction
	return true
}

// UpdateHasProduced marks the well as having been under production
// control at least once.
func (w *Well) UpdateHasProduced() bool {
	if w.HasProducedFlag {
		return false
	}
	w.HasProducedFlag = true
	w.Producer = true
	return true
}

// UpdateHasInjected marks the well as having been under injection
// control at least once.
func (w *Well) UpdateHasInjected() bool {
	if w.HasInjectedFlag {
		return false
	}
	w.HasInjectedFlag = true
	w.Producer = false
	return true
}

// SwitchToProducer puts the well in the producer role.
func (w *Well) SwitchToProducer() { w.Producer = true }

// SwitchToInjector puts the well in the injector role.
func (w *Well) SwitchToInjector() { w.Producer = false }

// UpdateRefDepth resolves a defaulted wellhead reference depth from the
// topmost connection. Called once the COMPDAT keyword that (re)defined
// the well's connections has been fully processed.
func (w *Well) UpdateRefDepth() bool {
	if !w.RefDepthDefault || w.Connections == nil {
		return false
	}
	depth, ok := w.Connections.TopDepth()
	if !ok {
		return false
	}
	w.RefDepth = depth
	return true
}

// UpdatePAvg installs new block-average pressure controls when content
// differs.
func (w *Well) UpdatePAvg(p PAvg) bool {
	if w.BlockAvg != nil && cmp.Equal(*w.BlockAvg, p) {
		return false
	}
	w.BlockAvg = &p
	return true
}

// ApplyProdIndexScaling multiplies every connection transmissibility by
// the WELPI scaling factor.
func (w *Well) ApplyProdIndexScaling(factor float64) bool {
	if w.Connections == nil || factor == 1.0 {
		return false
	}
	conns := w.Connections.Copy()
	if !conns.ApplyGlobalWPIMULT(factor) {
		return false
	}
	w.PIScalingFactor *= factor
	w.Connections = &conns
	return true
}

// WellCollection is the ordered well set of one snapshot. Wells are
// stored behind pointers so cloning a snapshot shares every untouched
// well; Update installs a replacement pointer only when content
// changed.
type WellCollection struct {
	order  []string
	byName map[string]*Well
}

// NewWellCollection returns an empty collection.
func NewWellCollection() WellCollection {
	return WellCollection{byName: make(map[string]*Well)}
}

// clone returns a collection sharing every *Well with the receiver.
func (c WellCollection) clone() WellCollection {
	cp := WellCollection{
		order:  append([]string(nil), c.order...),
		byName: make(map[string]*Well, len(c.byName)),
	}
	for name, well := range c.byName {
		cp.byName[name] = well
	}
	return cp
}

// Has reports whether the named well exists.
func (c WellCollection) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Len returns the number of wells.
func (c WellCollection) Len() int { return len(c.byName) }

// Names returns all well names in insertion order.
func (c WellCollection) Names() []string {
	return append([]string(nil), c.order...)
}

// Get returns a modifiable copy of the named well. The copy shares the
// property blocks until an Update* call replaces one.
func (c WellCollection) Get(name string) (Well, error) {
	well, ok := c.byName[name]
	if !ok {
		return Well{}, fmt.Errorf("no such well %q", name)
	}
	return *well, nil
}

// Ref returns the stored well for read-only access.
func (c WellCollection) Ref(name string) *Well {
	return c.byName[name]
}

// Add inserts a new well. Existing wells of the same name are replaced
// in place, keeping their insertion position.
func (c *WellCollection) Add(well *Well) {
	if _, ok := c.byName[well.Name]; !ok {
		c.order = append(c.order, well.Name)
	}
	c.byName[well.Name] = well
}

// Update commits a modified well copy, installing a new pointer only
// when the content differs from the stored instance.
func (c *WellCollection) Update(well Well) bool {
	current, ok := c.byName[well.Name]
	if ok && cmp.Equal(*current, well) {
		return false
	}
	if !ok {
		c.order = append(c.order, well.Name)
	}
	c.byName[well.Name] = &well
	return true
}
