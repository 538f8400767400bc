package sched

import "fmt"

// VFPProdTable is one production vertical-flow-performance table from
// VFPPROD: BHP as a function of flow, THP, water fraction, gas fraction
// and artificial lift quantity. Only the axes and the table body are
// kept; interpolation happens downstream.
type VFPProdTable struct {
	TableNum   int
	DatumDepth float64
	FloType    string
	WFRType    string
	GFRType    string
	ALQType    string

	FloAxis []float64
	THPAxis []float64
	WFRAxis []float64
	GFRAxis []float64
	ALQAxis []float64

	// Body rows keyed by (thp, wfr, gfr, alq) axis indices in record
	// order, each carrying len(FloAxis) BHP values.
	Body []VFPProdRow
}

// VFPProdRow is one body record of a VFPPROD table.
type VFPProdRow struct {
	THPIdx, WFRIdx, GFRIdx, ALQIdx int
	BHPValues                      []float64
}

// NewVFPProdTable parses a complete VFPPROD keyword.
func NewVFPProdTable(keyword DeckKeyword) (VFPProdTable, error) {
	if keyword.Size() < 6 {
		return VFPProdTable{}, NewInputError(keyword.Location(),
			"VFPPROD needs a header, five axis records and a table body")
	}
	header := keyword.Record(0)
	table := VFPProdTable{
		TableNum:   header.Item("TABLE").Int(0),
		DatumDepth: header.Item("DATUM_DEPTH").SIDouble(0),
		FloType:    header.Item("RATE_TYPE").TrimmedString(0),
		WFRType:    header.Item("WFR").TrimmedString(0),
		GFRType:    header.Item("GFR").TrimmedString(0),
		ALQType:    header.Item("ALQ_DEF").TrimmedString(0),
	}
	if table.TableNum <= 0 {
		return VFPProdTable{}, NewInputError(keyword.Location(),
			"VFPPROD table number must be positive, got %d", table.TableNum)
	}
	table.FloAxis = keyword.Record(1).Item("FLOW_VALUES").Doubles()
	table.THPAxis = keyword.Record(2).Item("THP_VALUES").Doubles()
	table.WFRAxis = keyword.Record(3).Item("WFR_VALUES").Doubles()
	table.GFRAxis = keyword.Record(4).Item("GFR_VALUES").Doubles()
	table.ALQAxis = keyword.Record(5).Item("ALQ_VALUES").Doubles()

	expected := len(table.THPAxis) * len(table.WFRAxis) * len(table.GFRAxis) * len(table.ALQAxis)
	if got := keyword.Size() - 6; got != expected {
		return VFPProdTable{}, NewInputError(keyword.Location(),
			"VFPPROD table %d: expected %d body records, got %d", table.TableNum, expected, got)
	}
	for n := 6; n < keyword.Size(); n++ {
		rec := keyword.Record(n)
		row := VFPProdRow{
			THPIdx:    rec.Item("THP_INDEX").Int(0),
			WFRIdx:    rec.Item("WFR_INDEX").Int(0),
			GFRIdx:    rec.Item("GFR_INDEX").Int(0),
			ALQIdx:    rec.Item("ALQ_INDEX").Int(0),
			BHPValues: rec.Item("VALUES").Doubles(),
		}
		if len(row.BHPValues) != len(table.FloAxis) {
			return VFPProdTable{}, NewInputError(keyword.Location(),
				"VFPPROD table %d: body record %d has %d values, flow axis has %d",
				table.TableNum, n-5, len(row.BHPValues), len(table.FloAxis))
		}
		table.Body = append(table.Body, row)
	}
	return table, nil
}

// VFPInjTable is one injection VFP table from VFPINJ.
type VFPInjTable struct {
	TableNum   int
	DatumDepth float64
	FloType    string

	FloAxis []float64
	THPAxis []float64
	Body    []VFPInjRow
}

// VFPInjRow is one body record of a VFPINJ table.
type VFPInjRow struct {
	THPIdx    int
	BHPValues []float64
}

// NewVFPInjTable parses a complete VFPINJ keyword.
func NewVFPInjTable(keyword DeckKeyword) (VFPInjTable, error) {
	if keyword.Size() < 3 {
		return VFPInjTable{}, NewInputError(keyword.Location(),
			"VFPINJ needs a header, two axis records and a table body")
	}
	header := keyword.Record(0)
	table := VFPInjTable{
		TableNum:   header.Item("TABLE").Int(0),
		DatumDepth: header.Item("DATUM_DEPTH").SIDouble(0),
		FloType:    header.Item("RATE_TYPE").TrimmedString(0),
	}
	if table.TableNum <= 0 {
		return VFPInjTable{}, NewInputError(keyword.Location(),
			"VFPINJ table number must be positive, got %d", table.TableNum)
	}
	table.FloAxis = keyword.Record(1).Item("FLOW_VALUES").Doubles()
	table.THPAxis = keyword.Record(2).Item("THP_VALUES").Doubles()
	for n := 3; n < keyword.Size(); n++ {
		rec := keyword.Record(n)
		table.Body = append(table.Body, VFPInjRow{
			THPIdx:    rec.Item("THP_INDEX").Int(0),
			BHPValues: rec.Item("VALUES").Doubles(),
		})
	}
	return table, nil
}

// VFPProdTables is the numbered production table set of one snapshot.
type VFPProdTables struct {
	Tables map[int]VFPProdTable
}

// NewVFPProdTables returns an empty set.
func NewVFPProdTables() VFPProdTables {
	return VFPProdTables{Tables: make(map[int]VFPProdTable)}
}

// Copy returns an independent copy.
func (t VFPProdTables) Copy() VFPProdTables {
	cp := NewVFPProdTables()
	for num, table := range t.Tables {
		cp.Tables[num] = table
	}
	return cp
}

// Has reports whether a table of the given number exists.
func (t VFPProdTables) Has(num int) bool {
	_, ok := t.Tables[num]
	return ok
}

// Get returns the numbered table.
func (t VFPProdTables) Get(num int) (VFPProdTable, error) {
	table, ok := t.Tables[num]
	if !ok {
		return VFPProdTable{}, fmt.Errorf("VFP production table %d not defined", num)
	}
	return table, nil
}

// Add installs or replaces a table.
func (t *VFPProdTables) Add(table VFPProdTable) {
	if t.Tables == nil {
		t.Tables = make(map[int]VFPProdTable)
	}
	t.Tables[table.TableNum] = table
}

// VFPInjTables is the numbered injection table set of one snapshot.
type VFPInjTables struct {
	Tables map[int]VFPInjTable
}

// NewVFPInjTables returns an empty set.
func NewVFPInjTables() VFPInjTables {
	return VFPInjTables{Tables: make(map[int]VFPInjTable)}
}

// Copy returns an independent copy.
func (t VFPInjTables) Copy() VFPInjTables {
	cp := NewVFPInjTables()
	for num, table := range t.Tables {
		cp.Tables[num] = table
	}
	return cp
}

// Has reports whether a table of the given number exists.
func (t VFPInjTables) Has(num int) bool {
	_, ok := t.Tables[num]
	return ok
}

// Add installs or replaces a table.
func (t *VFPInjTables) Add(table VFPInjTable) {
	if t.Tables == nil {
		t.Tables = make(map[int]VFPInjTable)
	}
	t.Tables[table.TableNum] = table
}
