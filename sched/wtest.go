package sched

import "strings"

// WTestReason is one closure cause a periodic well test may probe.
type WTestReason int

const (
	WTestPhysical WTestReason = 1 << iota
	WTestEconomic
	WTestGroup
	WTestThpDesign
	WTestCompletion
)

// wtestReasonsFromString parses the WTEST reason string: one letter per
// enabled cause.
func wtestReasonsFromString(s string) WTestReason {
	var reasons WTestReason
	for _, c := range strings.ToUpper(s) {
		switch c {
		case 'P':
			reasons |= WTestPhysical
		case 'E':
			reasons |= WTestEconomic
		case 'G':
			reasons |= WTestGroup
		case 'D':
			reasons |= WTestThpDesign
		case 'C':
			reasons |= WTestCompletion
		}
	}
	return reasons
}

// WTestWell is the periodic test configuration of one well.
type WTestWell struct {
	Name        string
	Interval    float64
	Reasons     WTestReason
	TestCount   int
	StartupTime float64
	BeginStep   int
}

// WTestConfig holds the WTEST closed-well test schedule keyed by well.
type WTestConfig struct {
	Wells map[string]WTestWell
}

// NewWTestConfig returns an empty configuration.
func NewWTestConfig() WTestConfig {
	return WTestConfig{Wells: make(map[string]WTestWell)}
}

// Copy returns an independent copy.
func (c WTestConfig) Copy() WTestConfig {
	cp := NewWTestConfig()
	for name, well := range c.Wells {
		cp.Wells[name] = well
	}
	return cp
}

// Has reports whether the well is under test.
func (c WTestConfig) Has(well string) bool {
	entry, ok := c.Wells[well]
	return ok && entry.Reasons != 0
}

// AddWell applies one WTEST record to the named well. A record without
// reasons drops the well from the schedule.
func (c *WTestConfig) AddWell(well string, record DeckRecord, beginStep int) {
	if c.Wells == nil {
		c.Wells = make(map[string]WTestWell)
	}
	reasons := wtestReasonsFromString(record.Item("REASON").TrimmedString(0))
	if reasons == 0 {
		delete(c.Wells, well)
		return
	}
	c.Wells[well] = WTestWell{
		Name:        well,
		Interval:    record.Item("INTERVAL").SIDouble(0),
		Reasons:     reasons,
		TestCount:   record.Item("TEST_NUM").Int(0),
		StartupTime: record.Item("START_TIME").SIDouble(0),
		BeginStep:   beginStep,
	}
}
