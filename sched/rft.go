package sched

// RFTMode selects when a well writes RFT data.
type RFTMode int

const (
	RFTNo RFTMode = iota
	RFTYes
	RFTRepeat
	RFTTimestep
	// RFTOnOpen arms a one-shot report written when the well first
	// opens.
	RFTOnOpen
)

// RFTConfig tracks per-well RFT and PLT output requests from WRFT and
// WRFTPLT.
type RFTConfig struct {
	RFT map[string]RFTMode
	PLT map[string]RFTMode

	// FirstOpen arms RFT-at-first-open for wells opened after a
	// well-less WRFT record.
	FirstOpen bool
}

// NewRFTConfig returns an empty configuration.
func NewRFTConfig() RFTConfig {
	return RFTConfig{RFT: make(map[string]RFTMode), PLT: make(map[string]RFTMode)}
}

// Copy returns an independent copy.
func (c RFTConfig) Copy() RFTConfig {
	cp := NewRFTConfig()
	cp.FirstOpen = c.FirstOpen
	for name, mode := range c.RFT {
		cp.RFT[name] = mode
	}
	for name, mode := range c.PLT {
		cp.PLT[name] = mode
	}
	return cp
}

// UpdateRFT sets the RFT mode of one well.
func (c *RFTConfig) UpdateRFT(well string, mode RFTMode) {
	if c.RFT == nil {
		c.RFT = make(map[string]RFTMode)
	}
	c.RFT[well] = mode
}

// UpdatePLT sets the PLT mode of one well.
func (c *RFTConfig) UpdatePLT(well string, mode RFTMode) {
	if c.PLT == nil {
		c.PLT = make(map[string]RFTMode)
	}
	c.PLT[well] = mode
}

// Active reports whether any well currently writes RFT or PLT data.
func (c RFTConfig) Active() bool {
	for _, mode := range c.RFT {
		if mode != RFTNo {
			return true
		}
	}
	for _, mode := range c.PLT {
		if mode != RFTNo {
			return true
		}
	}
	return c.FirstOpen
}

// PAveDepthRef selects the datum for well block average pressure.
type PAveDepthRef int

const (
	PAveRefWell PAveDepthRef = iota
	PAveRefGrid
)

// PAvg holds the WPAVE/WWPAVE block-average pressure controls of one
// well or of the run.
type PAvg struct {
	InnerWeight    float64
	ConnWeight     float64
	UseOpenConns   bool
	DepthRef       PAveDepthRef
	RefDepth       float64
	HasRefDepth    bool
}

// NewPAvg returns the defaults in force before any WPAVE.
func NewPAvg() PAvg {
	return PAvg{InnerWeight: 0.5, ConnWeight: 1.0, UseOpenConns: true}
}

// Copy returns an independent copy.
func (p PAvg) Copy() PAvg { return p }

// FromWPAVE applies a WPAVE or WWPAVE record.
func (p *PAvg) FromWPAVE(record DeckRecord) {
	if item := record.Item("F1"); !item.DefaultApplied(0) {
		p.InnerWeight = item.Double(0)
	}
	if item := record.Item("F2"); !item.DefaultApplied(0) {
		p.ConnWeight = item.Double(0)
	}
	if item := record.Item("DEPTH_CORRECTION"); !item.DefaultApplied(0) {
		p.DepthRef = PAveRefWell
		if item.TrimmedString(0) == "GRID" {
			p.DepthRef = PAveRefGrid
		}
	}
	if item := record.Item("CONNECTION"); !item.DefaultApplied(0) {
		p.UseOpenConns = item.TrimmedString(0) != "ALL"
	}
}

// SetRefDepth applies a WPAVEDEP depth override.
func (p *PAvg) SetRefDepth(depth float64) {
	p.RefDepth = depth
	p.HasRefDepth = true
}
