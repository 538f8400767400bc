package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func udqRecord(action, quantity string, data ...string) DeckRecord {
	return NewRecord(
		NewStringItem("ACTION", action),
		NewStringItem("QUANTITY", quantity),
		NewStringItem("DATA", data...),
	)
}

func TestUDQ_AssignAndDefine(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("UDQ",
			udqRecord("ASSIGN", "WUBHP", "OP1", "250.0"),
			udqRecord("DEFINE", "WUOPR", "WOPR", "OP1", "*", "0.90"),
		),
	}, nil)
	require.NoError(t, err)

	config := s.State().UDQ.Read()
	require.True(t, config.Has("WUBHP"))
	require.True(t, config.Has("WUOPR"))
	assert.Equal(t, []string{"WUBHP", "WUOPR"}, config.Order)

	assign := config.Definitions["WUBHP"]
	assert.Equal(t, UDQAssign, assign.Action)
	assert.Equal(t, 250.0, assign.AssignValue)
	assert.Equal(t, []string{"OP1"}, assign.Selector)

	define := config.Definitions["WUOPR"]
	assert.Equal(t, UDQDefine, define.Action)
	assert.Equal(t, "WOPR OP1 * 0.90", define.Expression)
}

func TestUDQ_RedefinitionKeepsOrderAndUnits(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("UDQ",
			udqRecord("DEFINE", "FULIQ", "FOPR", "+", "FWPR"),
			udqRecord("UNITS", "FULIQ", "SM3/DAY"),
			udqRecord("DEFINE", "FULIQ", "FLPR"),
		),
	}, nil)
	require.NoError(t, err)

	config := s.State().UDQ.Read()
	assert.Equal(t, []string{"FULIQ"}, config.Order)
	def := config.Definitions["FULIQ"]
	assert.Equal(t, "FLPR", def.Expression)
	assert.Equal(t, "SM3/DAY", def.Units)
}

func TestUDQ_RejectsIllegalName(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("UDQ", udqRecord("ASSIGN", "XUOPR", "1.0")),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid UDQ name")
}

func TestUDQ_UpdateOfUndefinedQuantityFails(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("UDQ", udqRecord("UPDATE", "WUNONE")),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPDATE of undefined quantity")
}

func udtKeyword(name, interpolation string, xValues, yValues []float64) DeckKeyword {
	return kw("UDT",
		NewRecord(
			NewStringItem("TABLE_NAME", name),
			NewIntItem("DIMENSIONS", 1),
		),
		NewRecord(
			NewStringItem("INTERPOLATION_TYPE", interpolation),
			NewDoubleItem("INTERPOLATION_POINTS", xValues...),
		),
		NewRecord(NewDoubleItem("TABLE_VALUES", yValues...)),
	)
}

func TestUDT_InstallsTable(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		udtKeyword("WULOOKUP", "LC", []float64{1, 2, 3}, []float64{10, 20, 40}),
	}, nil)
	require.NoError(t, err)

	table, ok := s.State().UDQ.Read().Tables["WULOOKUP"]
	require.True(t, ok)
	assert.Equal(t, UDTLinearClamp, table.Interpolation)
	assert.Equal(t, []float64{1, 2, 3}, table.XValues)
}

func TestUDT_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		keyword DeckKeyword
		message string
	}{
		{
			"unsorted points",
			udtKeyword("WUBAD", "LC", []float64{3, 1, 2}, []float64{1, 2, 3}),
			"must be increasing",
		},
		{
			"duplicate points",
			udtKeyword("WUBAD", "LC", []float64{1, 1, 2}, []float64{1, 2, 3}),
			"must be distinct",
		},
		{
			"value count mismatch",
			udtKeyword("WUBAD", "LC", []float64{1, 2, 3}, []float64{1, 2}),
			"interpolation points but",
		},
		{
			"single point",
			udtKeyword("WUBAD", "LC", []float64{1}, []float64{1}),
			"at least two",
		},
		{
			"unknown interpolation",
			udtKeyword("WUBAD", "XX", []float64{1, 2}, []float64{1, 2}),
			"Unsupported interpolation",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSchedule()
			err := s.ApplyKeywords([]DeckKeyword{tc.keyword}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestUDT_EvalInterpolationModes(t *testing.T) {
	table := UDT{XValues: []float64{0, 10}, YValues: []float64{0, 100}}

	table.Interpolation = UDTNearest
	assert.Equal(t, 0.0, table.Eval(4.0))
	assert.Equal(t, 100.0, table.Eval(6.0))

	table.Interpolation = UDTLinearClamp
	assert.InDelta(t, 50.0, table.Eval(5.0), 1e-12)
	assert.Equal(t, 0.0, table.Eval(-5.0))
	assert.Equal(t, 100.0, table.Eval(25.0))

	table.Interpolation = UDTLinearExtrapolate
	assert.InDelta(t, -50.0, table.Eval(-5.0), 1e-12)
	assert.InDelta(t, 250.0, table.Eval(25.0), 1e-12)
}

func TestUDQActive_RebindAndDrop(t *testing.T) {
	// GIVEN a producer whose oil target is fed by a quantity
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("UDQ", udqRecord("DEFINE", "WUOPR", "WOPR", "OP1", "*", "0.90")),
		kw("WCONPROD", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewStringItem("STATUS", "OPEN"),
			NewStringItem("CMODE", "ORAT"),
			NewUDAItem("ORAT", Reference("WUOPR")),
		)),
	}, nil)
	require.NoError(t, err)

	active := s.State().UDQActive.Read()
	require.Len(t, active.Records, 1)
	assert.Equal(t, "WUOPR", active.Records[0].UDQKey)
	assert.Equal(t, "WCONPROD-ORAT", active.Records[0].Control)
	assert.Equal(t, "OP1", active.Records[0].WGName)

	// WHEN the target is re-specified with a plain number
	err = s.ApplyKeywords([]DeckKeyword{
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "ORAT", 4000.0)),
	}, nil)
	require.NoError(t, err)

	// THEN the binding is gone
	assert.True(t, s.State().UDQActive.Read().Empty())
}
