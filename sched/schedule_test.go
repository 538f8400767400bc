package sched

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUnits = MetricUnitSystem()

func newTestSchedule() *Schedule {
	return NewSchedule(testUnits, *NewParseContext(), NewErrorGuard())
}

func kw(name string, records ...DeckRecord) DeckKeyword {
	return NewKeyword(name, KeywordLocation{Filename: "CASE.DATA", Lineno: 11}, records...)
}

func welspecsRecord(well, group string, headI, headJ int, phase string) DeckRecord {
	return NewRecord(
		NewStringItem("WELL", well),
		NewStringItem("GROUP", group),
		NewIntItem("HEAD_I", headI),
		NewIntItem("HEAD_J", headJ),
		NewStringItem("PHASE", phase),
	)
}

func compdatRecord(well string, i, j, k1, k2 int, cf, depth float64) DeckRecord {
	return NewRecord(
		NewStringItem("WELL", well),
		NewIntItem("I", i),
		NewIntItem("J", j),
		NewIntItem("K1", k1),
		NewIntItem("K2", k2),
		NewStringItem("STATE", "OPEN"),
		NewDimensionedItem("CONNECTION_TRANSMISSIBILITY_FACTOR", "1", testUnits, cf),
		NewDimensionedItem("DEPTH", "Length", testUnits, depth),
	)
}

func wconprodRecord(well, status, cmode string, orat float64) DeckRecord {
	return NewRecord(
		NewStringItem("WELL", well),
		NewStringItem("STATUS", status),
		NewStringItem("CMODE", cmode),
		NewDimensionedItem("ORAT", "LiquidSurfaceVolume/Time", testUnits, orat),
	)
}

func wconinjeRecord(well, injType, status, cmode string, rate float64) DeckRecord {
	return NewRecord(
		NewStringItem("WELL", well),
		NewStringItem("TYPE", injType),
		NewStringItem("STATUS", status),
		NewStringItem("CMODE", cmode),
		NewDimensionedItem("RATE", "LiquidSurfaceVolume/Time", testUnits, rate),
	)
}

// setupProducer builds a schedule with one connected producer named
// well, under group "OPS".
func setupProducer(t *testing.T, well string) *Schedule {
	t.Helper()
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS", welspecsRecord(well, "OPS", 5, 5, "OIL")),
		kw("COMPDAT", compdatRecord(well, 5, 5, 1, 3, 100.0, 2500.0)),
	}, nil)
	require.NoError(t, err)
	return s
}

func TestSchedule_InitialStateInPlace(t *testing.T) {
	s := newTestSchedule()
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, 0, s.State().ReportStep)
}

func TestNextReportStep_SharesUntouchedWells(t *testing.T) {
	// GIVEN a producer defined at step 0
	s := setupProducer(t, "OP1")

	// WHEN a new report step starts and nothing touches the well
	step := s.NextReportStep(31.0)
	require.Equal(t, 1, step)

	// THEN both snapshots hold the identical well instance
	assert.Same(t, s.StateAt(0).Wells.Ref("OP1"), s.StateAt(1).Wells.Ref("OP1"))
	assert.Equal(t, 31.0, s.StateAt(1).SimDays)
}

func TestNextReportStep_ModificationLeavesHistoryIntact(t *testing.T) {
	s := setupProducer(t, "OP1")
	before := s.StateAt(0).Wells.Ref("OP1")

	s.NextReportStep(31.0)
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "ORAT", 1000.0)),
	}, nil)
	require.NoError(t, err)

	// The later step installed a fresh well instance.
	after := s.StateAt(1).Wells.Ref("OP1")
	assert.NotSame(t, before, after)
	assert.Equal(t, WellOpen, after.Status)

	// Step 0 still shows the pre-update status.
	assert.Same(t, before, s.StateAt(0).Wells.Ref("OP1"))
	assert.Equal(t, WellShut, before.Status)

	// Untouched property blocks stay shared between the instances.
	assert.Same(t, before.Connections, after.Connections)
	assert.NotSame(t, before.Production, after.Production)
}

func TestApplyKeywords_SameStepLastWriteWins(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "ORAT", 500.0)),
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "ORAT", 2000.0)),
	}, nil)
	require.NoError(t, err)

	prod := s.State().Wells.Ref("OP1").Production
	assert.Equal(t, 2000.0, prod.OilRate.Value)
}

func TestApplyKeywords_UnknownKeywordIgnored(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{kw("NOSUCHKW", NewRecord())}, nil)
	assert.NoError(t, err)
}

func TestRunHandler_PanicBecomesInternalError(t *testing.T) {
	ctx := &HandlerContext{keyword: kw("WCONPROD")}
	err := runHandler(func(*HandlerContext) error { panic("slot missing") }, ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Internal error: slot missing")
	assert.Contains(t, err.Error(), "CASE.DATA")
	assert.True(t, IsLogicError(err))
}

func TestRunHandler_LogicErrorGainsPrefix(t *testing.T) {
	ctx := &HandlerContext{keyword: kw("WPIMULT")}
	err := runHandler(func(*HandlerContext) error {
		return NewLogicError("accumulator missing")
	}, ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Internal error: accumulator missing")
}

func TestRunHandler_InputErrorPassesThrough(t *testing.T) {
	location := KeywordLocation{Keyword: "WCONPROD", Filename: "CASE.DATA", Lineno: 99}
	ctx := &HandlerContext{keyword: kw("WCONPROD")}
	err := runHandler(func(*HandlerContext) error {
		return NewInputError(location, "table 5 not defined")
	}, ctx)
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "Internal error"))
	assert.Contains(t, err.Error(), "line 99")
}

func TestWPIMULT_DeferredLastRecordWins(t *testing.T) {
	// GIVEN a connected producer with known transmissibility
	s := setupProducer(t, "OP1")
	base := s.State().Wells.Ref("OP1").Connections.Get(0).CF

	// WHEN two whole-well WPIMULT records arrive in the same step
	wholeWell := func(factor float64) DeckRecord {
		return NewRecord(
			NewStringItem("WELL", "OP1"),
			NewDoubleItem("WELLPI", factor),
		)
	}
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WPIMULT", wholeWell(2.0)),
		kw("WPIMULT", wholeWell(3.0)),
	}, nil)
	require.NoError(t, err)

	// THEN only the last factor is applied, once
	conns := s.State().Wells.Ref("OP1").Connections
	for n := 0; n < conns.Len(); n++ {
		assert.InDelta(t, base*3.0, conns.Get(n).CF, 1e-12)
	}
}

func TestWPIMULT_ExplicitFiltersApplyImmediately(t *testing.T) {
	s := setupProducer(t, "OP1")
	base := s.State().Wells.Ref("OP1").Connections.Get(0).CF

	record := func(factor float64) DeckRecord {
		return NewRecord(
			NewStringItem("WELL", "OP1"),
			NewDoubleItem("WELLPI", factor),
			NewIntItem("I", 5),
			NewIntItem("J", 5),
			NewIntItem("K", 1),
		)
	}
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WPIMULT", record(2.0)),
		kw("WPIMULT", record(3.0)),
	}, nil)
	require.NoError(t, err)

	// Explicit records compound instead of replacing each other, and
	// only touch the filtered connection.
	conns := s.State().Wells.Ref("OP1").Connections
	assert.InDelta(t, base*6.0, conns.Get(0).CF, 1e-12)
	assert.InDelta(t, base, conns.Get(1).CF, 1e-12)
}

func TestEXIT_SetsExitCode(t *testing.T) {
	s := newTestSchedule()
	_, ok := s.ExitCode()
	assert.False(t, ok)

	err := s.ApplyKeywords([]DeckKeyword{
		kw("EXIT", NewRecord(NewIntItem("STATUS_CODE", 3))),
	}, nil)
	require.NoError(t, err)

	code, ok := s.ExitCode()
	assert.True(t, ok)
	assert.Equal(t, 3, code)
}

func TestWELSEGS_WithoutCOMPSEGS_Fails(t *testing.T) {
	s := setupProducer(t, "OP1")

	welsegs := kw("WELSEGS",
		NewRecord(
			NewStringItem("WELL", "OP1"),
			NewDimensionedItem("TOP_DEPTH", "Length", testUnits, 2500.0),
			NewDimensionedItem("DEPTH", "Length", testUnits, 2500.0),
			NewStringItem("INFO_TYPE", "INC"),
		),
		NewRecord(
			NewIntItem("SEGMENT1", 2),
			NewIntItem("SEGMENT2", 4),
			NewIntItem("BRANCH", 1),
			NewIntItem("JOIN_SEGMENT", 1),
			NewDimensionedItem("SEGMENT_LENGTH", "Length", testUnits, 10.0),
			NewDimensionedItem("DEPTH_CHANGE", "Length", testUnits, 5.0),
		),
	)
	err := s.ApplyKeywords([]DeckKeyword{welsegs}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no COMPSEGS followed")
}

func TestWELSEGS_PairedWithCOMPSEGS(t *testing.T) {
	s := setupProducer(t, "OP1")

	welsegs := kw("WELSEGS",
		NewRecord(
			NewStringItem("WELL", "OP1"),
			NewDimensionedItem("TOP_DEPTH", "Length", testUnits, 2500.0),
			NewDimensionedItem("DEPTH", "Length", testUnits, 2500.0),
			NewStringItem("INFO_TYPE", "INC"),
		),
		NewRecord(
			NewIntItem("SEGMENT1", 2),
			NewIntItem("SEGMENT2", 4),
			NewIntItem("BRANCH", 1),
			NewIntItem("JOIN_SEGMENT", 1),
			NewDimensionedItem("SEGMENT_LENGTH", "Length", testUnits, 10.0),
			NewDimensionedItem("DEPTH_CHANGE", "Length", testUnits, 5.0),
		),
	)
	compsegs := kw("COMPSEGS",
		NewRecord(NewStringItem("WELL", "OP1")),
		NewRecord(NewIntItem("I", 5), NewIntItem("J", 5), NewIntItem("K", 1), NewIntItem("SEGMENT", 2)),
		NewRecord(NewIntItem("I", 5), NewIntItem("J", 5), NewIntItem("K", 2), NewIntItem("SEGMENT", 3)),
		NewRecord(NewIntItem("I", 5), NewIntItem("J", 5), NewIntItem("K", 3), NewIntItem("SEGMENT", 4)),
	)
	update := NewSimulatorUpdate()
	err := s.ApplyKeywords([]DeckKeyword{welsegs, compsegs}, update)
	require.NoError(t, err)

	well := s.State().Wells.Ref("OP1")
	require.NotNil(t, well.Segments)
	assert.Len(t, well.Segments.Segments, 4)
	assert.Equal(t, 2, well.Connections.Get(0).Segment)
	assert.True(t, update.WellStructureChange)
}

func TestActionWELSEGS_UndefinedWellDeferred(t *testing.T) {
	s := newTestSchedule()
	welsegs := kw("WELSEGS",
		NewRecord(
			NewStringItem("WELL", "OP9"),
			NewDimensionedItem("TOP_DEPTH", "Length", testUnits, 2500.0),
			NewDimensionedItem("DEPTH", "Length", testUnits, 2500.0),
			NewStringItem("INFO_TYPE", "INC"),
		),
		NewRecord(
			NewIntItem("SEGMENT1", 2),
			NewIntItem("SEGMENT2", 2),
			NewIntItem("BRANCH", 1),
			NewIntItem("JOIN_SEGMENT", 1),
			NewDimensionedItem("SEGMENT_LENGTH", "Length", testUnits, 10.0),
			NewDimensionedItem("DEPTH_CHANGE", "Length", testUnits, 5.0),
		),
	)

	// Inside an action the well may only come into existence when the
	// action triggers, so an undefined name is a warning, not an error.
	err := s.ApplyActionKeywords([]DeckKeyword{welsegs}, []string{"OP9"}, nil)
	require.NoError(t, err)
	assert.False(t, s.State().Wells.Has("OP9"))

	// Outside an action the same keyword is a hard error.
	err = s.ApplyKeywords([]DeckKeyword{welsegs}, nil)
	require.Error(t, err)
}

func TestApplyKeywords_OrderWithinStepMatters(t *testing.T) {
	apply := func(keywords ...DeckKeyword) *Schedule {
		s := newTestSchedule()
		require.NoError(t, s.ApplyKeywords(keywords, nil))
		return s
	}
	welspecs := kw("WELSPECS", welspecsRecord("OP1", "OPS", 5, 5, "OIL"))
	compdat := kw("COMPDAT", compdatRecord("OP1", 5, 5, 1, 3, 100.0, 2500.0))
	welopen := kw("WELOPEN", NewRecord(
		NewStringItem("WELL", "OP1"),
		NewStringItem("STATUS", "OPEN"),
	))

	// Opening before any connections exist is refused, so the well
	// stays shut for the rest of the step.
	shut := apply(welspecs, welopen, compdat)
	assert.Equal(t, WellShut, shut.State().Wells.Ref("OP1").Status)

	// The same keywords with the connections first open the well.
	open := apply(welspecs, compdat, welopen)
	assert.Equal(t, WellOpen, open.State().Wells.Ref("OP1").Status)
}

func TestSimulatorUpdate_TracksAffectedWells(t *testing.T) {
	s := setupProducer(t, "OP1")
	update := NewSimulatorUpdate()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "ORAT", 1000.0)),
	}, update)
	require.NoError(t, err)
	assert.True(t, update.AffectedWells["OP1"])
}
