package sched

// GConSaleGroup is the sales-gas contract of one group from GCONSALE.
type GConSaleGroup struct {
	SalesTarget UDAValue
	MaxRate     UDAValue
	MinRate     UDAValue
	MaxProc     string
}

// GConSale holds the GCONSALE sales-gas contracts keyed by group.
type GConSale struct {
	Groups map[string]GConSaleGroup
}

// NewGConSale returns an empty contract set.
func NewGConSale() GConSale {
	return GConSale{Groups: make(map[string]GConSaleGroup)}
}

// Copy returns an independent copy.
func (g GConSale) Copy() GConSale {
	cp := NewGConSale()
	for name, group := range g.Groups {
		cp.Groups[name] = group
	}
	return cp
}

// Has reports whether the group carries a sales contract.
func (g GConSale) Has(group string) bool {
	_, ok := g.Groups[group]
	return ok
}

// Add installs or replaces the contract of one group.
func (g *GConSale) Add(group string, salesTarget, maxRate, minRate UDAValue, maxProc string) {
	if g.Groups == nil {
		g.Groups = make(map[string]GConSaleGroup)
	}
	g.Groups[group] = GConSaleGroup{
		SalesTarget: salesTarget,
		MaxRate:     maxRate,
		MinRate:     minRate,
		MaxProc:     maxProc,
	}
}

// GConSumpGroup is the gas consumption/import of one group from
// GCONSUMP.
type GConSumpGroup struct {
	Consumption UDAValue
	Import      UDAValue
	NetworkNode string
}

// GConSump holds the GCONSUMP gas consumption entries keyed by group.
type GConSump struct {
	Groups map[string]GConSumpGroup
}

// NewGConSump returns an empty set.
func NewGConSump() GConSump {
	return GConSump{Groups: make(map[string]GConSumpGroup)}
}

// Copy returns an independent copy.
func (g GConSump) Copy() GConSump {
	cp := NewGConSump()
	for name, group := range g.Groups {
		cp.Groups[name] = group
	}
	return cp
}

// Has reports whether the group consumes or imports gas.
func (g GConSump) Has(group string) bool {
	_, ok := g.Groups[group]
	return ok
}

// Add installs or replaces the entry of one group.
func (g *GConSump) Add(group string, consumption, importRate UDAValue, networkNode string) {
	if g.Groups == nil {
		g.Groups = make(map[string]GConSumpGroup)
	}
	g.Groups[group] = GConSumpGroup{
		Consumption: consumption,
		Import:      importRate,
		NetworkNode: networkNode,
	}
}

// GEconGroup is the economic abandonment limits of one group from
// GECON.
type GEconGroup struct {
	MinOilRate   float64
	MinGasRate   float64
	MaxWaterCut  float64
	MaxGasOilRatio float64
	Workover     string
	EndRun       bool
}

// GEcon holds GECON limits keyed by group.
type GEcon struct {
	Groups map[string]GEconGroup
}

// NewGEcon returns an empty set.
func NewGEcon() GEcon {
	return GEcon{Groups: make(map[string]GEconGroup)}
}

// Copy returns an independent copy.
func (g GEcon) Copy() GEcon {
	cp := NewGEcon()
	for name, group := range g.Groups {
		cp.Groups[name] = group
	}
	return cp
}

// Has reports whether the group carries economic limits.
func (g GEcon) Has(group string) bool {
	_, ok := g.Groups[group]
	return ok
}

// AddGroup installs the limits of one group from a GECON record.
func (g *GEcon) AddGroup(group string, record DeckRecord) {
	if g.Groups == nil {
		g.Groups = make(map[string]GEconGroup)
	}
	workover := record.Item("WORKOVER").TrimmedString(0)
	if workover == "" {
		workover = "NONE"
	}
	g.Groups[group] = GEconGroup{
		MinOilRate:     record.Item("MIN_OIL_RATE").SIDouble(0),
		MinGasRate:     record.Item("MIN_GAS_RATE").SIDouble(0),
		MaxWaterCut:    record.Item("MAX_WCT").Double(0),
		MaxGasOilRatio: record.Item("MAX_GOR").SIDouble(0),
		Workover:       workover,
		EndRun:         record.Item("END_RUN").Bool(0),
	}
}

// GPMaint is the pressure-maintenance control of one group from
// GPMAINT.
type GPMaint struct {
	FlowTarget string
	Region     int
	Pressure   float64
	PropConst  float64
	TimeConst  float64
	ReportStep int
}

// NewGPMaint builds the control from a GPMAINT record.
func NewGPMaint(reportStep int, record DeckRecord) *GPMaint {
	return &GPMaint{
		FlowTarget: record.Item("FLOW_TARGET").TrimmedString(0),
		Region:     record.Item("REGION").Int(0),
		Pressure:   record.Item("PRESSURE_TARGET").SIDouble(0),
		PropConst:  record.Item("PROP_CONSTANT").SIDouble(0),
		TimeConst:  record.Item("TIME_CONSTANT").SIDouble(0),
		ReportStep: reportStep,
	}
}
