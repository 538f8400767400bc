package sched

// GasLiftGroup is the lift-gas budget of one group from GLIFTOPT.
// Negative limits mean "no limit".
type GasLiftGroup struct {
	Name        string
	MaxLiftGas  float64
	MaxTotalGas float64
}

// GasLiftWell is the lift optimization settings of one well from
// WLIFTOPT.
type GasLiftWell struct {
	Name          string
	UseOptimizer  bool
	MaxRate       float64
	WeightFactor  float64
	MinRate       float64
	IncWeight     float64
	AllocExtra    bool
}

// GasLiftOpt holds the LIFTOPT global controls plus per-group and
// per-well settings.
type GasLiftOpt struct {
	GasLiftIncrement   float64
	MinEcoGradient     float64
	MinWaitTime        float64
	AllNewton          bool

	Groups map[string]GasLiftGroup
	Wells  map[string]GasLiftWell
}

// NewGasLiftOpt returns an empty configuration.
func NewGasLiftOpt() GasLiftOpt {
	return GasLiftOpt{
		Groups: make(map[string]GasLiftGroup),
		Wells:  make(map[string]GasLiftWell),
	}
}

// Copy returns an independent copy.
func (g GasLiftOpt) Copy() GasLiftOpt {
	cp := g
	cp.Groups = make(map[string]GasLiftGroup, len(g.Groups))
	for name, group := range g.Groups {
		cp.Groups[name] = group
	}
	cp.Wells = make(map[string]GasLiftWell, len(g.Wells))
	for name, well := range g.Wells {
		cp.Wells[name] = well
	}
	return cp
}

// Active reports whether lift optimization is configured at all.
func (g GasLiftOpt) Active() bool {
	return g.GasLiftIncrement > 0
}

// FromLIFTOPT applies the global LIFTOPT record.
func (g *GasLiftOpt) FromLIFTOPT(record DeckRecord) {
	g.GasLiftIncrement = record.Item("INCREMENT_SIZE").SIDouble(0)
	g.MinEcoGradient = record.Item("MIN_ECONOMIC_GRADIENT").SIDouble(0)
	g.MinWaitTime = record.Item("MIN_INTERVAL_BETWEEN_GAS_LIFT_OPTIMIZATIONS").SIDouble(0)
	g.AllNewton = record.Item("OPTIMISE_ALL_ITERATIONS").Bool(0)
}

// AddGroup installs or replaces one group's budget.
func (g *GasLiftOpt) AddGroup(group GasLiftGroup) {
	if g.Groups == nil {
		g.Groups = make(map[string]GasLiftGroup)
	}
	g.Groups[group.Name] = group
}

// AddWell installs or replaces one well's settings.
func (g *GasLiftOpt) AddWell(well GasLiftWell) {
	if g.Wells == nil {
		g.Wells = make(map[string]GasLiftWell)
	}
	g.Wells[well.Name] = well
}
