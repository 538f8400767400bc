package sched

import (
	"fmt"
	"sort"
	"strings"
)

// UDQAction is what a UDQ record does to a quantity.
type UDQAction int

const (
	UDQAssign UDQAction = iota
	UDQDefine
	UDQUnits
	UDQUpdate
)

// UDQActionFromString parses a UDQ record action mnemonic.
func UDQActionFromString(s string) (UDQAction, error) {
	switch s {
	case "ASSIGN":
		return UDQAssign, nil
	case "DEFINE":
		return UDQDefine, nil
	case "UNITS":
		return UDQUnits, nil
	case "UPDATE":
		return UDQUpdate, nil
	default:
		return UDQAssign, fmt.Errorf("unknown UDQ action %q", s)
	}
}

// UDQDefinition is one user-defined quantity: either a constant
// assignment or a deferred expression, plus an optional unit string.
type UDQDefinition struct {
	Keyword     string
	Action      UDQAction
	Expression  string
	AssignValue float64
	Selector    []string
	Units       string
	ReportStep  int
}

// UDTInterpolation selects how a user-defined table looks values up.
type UDTInterpolation int

const (
	UDTNearest UDTInterpolation = iota
	UDTLinearClamp
	UDTLinearExtrapolate
)

// UDT is a one-dimensional user-defined lookup table.
type UDT struct {
	XValues       []float64
	YValues       []float64
	Interpolation UDTInterpolation
}

// Eval looks up x in the table.
func (t UDT) Eval(x float64) float64 {
	n := len(t.XValues)
	if n == 0 {
		return 0
	}
	if x <= t.XValues[0] {
		if t.Interpolation == UDTLinearExtrapolate && n > 1 {
			return extrapolate(t.XValues[0], t.YValues[0], t.XValues[1], t.YValues[1], x)
		}
		return t.YValues[0]
	}
	if x >= t.XValues[n-1] {
		if t.Interpolation == UDTLinearExtrapolate && n > 1 {
			return extrapolate(t.XValues[n-2], t.YValues[n-2], t.XValues[n-1], t.YValues[n-1], x)
		}
		return t.YValues[n-1]
	}
	idx := sort.SearchFloat64s(t.XValues, x)
	x0, x1 := t.XValues[idx-1], t.XValues[idx]
	y0, y1 := t.YValues[idx-1], t.YValues[idx]
	if t.Interpolation == UDTNearest {
		if x-x0 <= x1-x {
			return y0
		}
		return y1
	}
	return extrapolate(x0, y0, x1, y1, x)
}

func extrapolate(x0, y0, x1, y1, x float64) float64 {
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// UDQConfig holds every user-defined quantity and table defined so far.
// Definition order is preserved; redefining a keyword replaces its
// definition in place.
type UDQConfig struct {
	Order       []string
	Definitions map[string]UDQDefinition
	Tables      map[string]UDT

	// UndefinedValue is the sentinel substituted where a quantity has
	// no defined value yet.
	UndefinedValue float64
}

// NewUDQConfig returns an empty configuration.
func NewUDQConfig() UDQConfig {
	return UDQConfig{
		Definitions:    make(map[string]UDQDefinition),
		Tables:         make(map[string]UDT),
		UndefinedValue: 0,
	}
}

// Copy returns an independent copy.
func (c UDQConfig) Copy() UDQConfig {
	cp := c
	cp.Order = append([]string(nil), c.Order...)
	cp.Definitions = make(map[string]UDQDefinition, len(c.Definitions))
	for name, def := range c.Definitions {
		def.Selector = append([]string(nil), def.Selector...)
		cp.Definitions[name] = def
	}
	cp.Tables = make(map[string]UDT, len(c.Tables))
	for name, table := range c.Tables {
		cp.Tables[name] = table
	}
	return cp
}

// Has reports whether the quantity is defined.
func (c UDQConfig) Has(keyword string) bool {
	_, ok := c.Definitions[keyword]
	return ok
}

// validUDQName checks the mandatory naming convention: a quantity
// starts with W/G/F/C/S/A followed by 'U'.
func validUDQName(name string) bool {
	if len(name) < 3 {
		return false
	}
	switch name[0] {
	case 'W', 'G', 'F', 'C', 'S', 'A':
		return name[1] == 'U'
	default:
		return false
	}
}

// AddRecord applies one UDQ record at the given report step.
func (c *UDQConfig) AddRecord(record DeckRecord, location KeywordLocation, reportStep int) error {
	action, err := UDQActionFromString(record.Item("ACTION").TrimmedString(0))
	if err != nil {
		return NewInputError(location, "%v", err)
	}
	quantity := record.Item("QUANTITY").TrimmedString(0)
	if !validUDQName(quantity) {
		return NewInputError(location, "Invalid UDQ name %q", quantity)
	}
	data := record.Item("DATA").Strings()

	def := UDQDefinition{Keyword: quantity, Action: action, ReportStep: reportStep}
	if existing, ok := c.Definitions[quantity]; ok {
		def.Units = existing.Units
	} else {
		c.Order = append(c.Order, quantity)
	}

	switch action {
	case UDQAssign:
		if len(data) == 0 {
			return NewInputError(location, "ASSIGN of %s needs a value", quantity)
		}
		var value float64
		if _, err := fmt.Sscanf(data[len(data)-1], "%g", &value); err != nil {
			return NewInputError(location, "ASSIGN of %s: bad value %q", quantity, data[len(data)-1])
		}
		def.AssignValue = value
		def.Selector = append([]string(nil), data[:len(data)-1]...)
	case UDQDefine:
		if len(data) == 0 {
			return NewInputError(location, "DEFINE of %s needs an expression", quantity)
		}
		def.Expression = strings.Join(data, " ")
	case UDQUnits:
		if len(data) == 0 {
			return NewInputError(location, "UNITS of %s needs a unit string", quantity)
		}
		def.Units = data[0]
		if existing, ok := c.Definitions[quantity]; ok {
			existing.Units = data[0]
			c.Definitions[quantity] = existing
			return nil
		}
	case UDQUpdate:
		// UPDATE toggles re-evaluation; the definition body is kept.
		if existing, ok := c.Definitions[quantity]; ok {
			existing.ReportStep = reportStep
			c.Definitions[quantity] = existing
			return nil
		}
		return NewInputError(location, "UPDATE of undefined quantity %s", quantity)
	}
	c.Definitions[quantity] = def
	return nil
}

// AddTable installs a user-defined table.
func (c *UDQConfig) AddTable(name string, table UDT) {
	c.Tables[name] = table
}

// UDQActiveRecord binds one control target to the quantity feeding it.
type UDQActiveRecord struct {
	UDQKey   string
	Control  string
	WGName   string
}

// UDQActive tracks which well/group control targets are currently fed
// by user-defined quantities.
type UDQActive struct {
	Records []UDQActiveRecord
}

// Copy returns an independent copy.
func (a UDQActive) Copy() UDQActive {
	return UDQActive{Records: append([]UDQActiveRecord(nil), a.Records...)}
}

// Empty reports whether no control is UDQ-fed.
func (a UDQActive) Empty() bool { return len(a.Records) == 0 }

func (a *UDQActive) find(wgname, control string) int {
	for idx, rec := range a.Records {
		if rec.WGName == wgname && rec.Control == control {
			return idx
		}
	}
	return -1
}

// Update reconciles one control target against the given value: a
// quantity reference registers (or re-binds) the control, a literal
// drops any stale binding. Reports whether the bookkeeping changed.
func (a *UDQActive) Update(udq UDQConfig, value UDAValue, wgname, control string) bool {
	idx := a.find(wgname, control)
	if value.IsReference() && udq.Has(value.Quantity) {
		if idx >= 0 {
			if a.Records[idx].UDQKey == value.Quantity {
				return false
			}
			a.Records[idx].UDQKey = value.Quantity
			return true
		}
		a.Records = append(a.Records, UDQActiveRecord{
			UDQKey: value.Quantity, Control: control, WGName: wgname,
		})
		return true
	}
	if idx >= 0 {
		a.Records = append(a.Records[:idx:idx], a.Records[idx+1:]...)
		return true
	}
	return false
}
