package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWELSPECS_CreatesWellAndGroups(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS", welspecsRecord("OP1", "OPS", 5, 5, "OIL")),
	}, nil)
	require.NoError(t, err)

	state := s.State()
	require.True(t, state.Wells.Has("OP1"))
	well := state.Wells.Ref("OP1")
	assert.Equal(t, WellShut, well.Status)
	assert.True(t, well.IsProducer())
	assert.Equal(t, "OPS", well.GroupName)

	// The group and FIELD were created on demand.
	require.True(t, state.Groups.Has("OPS"))
	require.True(t, state.Groups.Has("FIELD"))
	assert.Equal(t, "FIELD", state.Groups.Ref("OPS").ParentName)
	assert.True(t, state.Groups.Ref("OPS").HasWell("OP1"))
	assert.True(t, state.Groups.Ref("FIELD").HasChildGroup("OPS"))

	assert.True(t, state.StepEvents.HasEvent(WellCreated))
	assert.True(t, state.EntityEvents.HasEvent("OP1", WellCreated))
}

func TestWELSPECS_ReassignsGroupOfExistingWell(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS", welspecsRecord("OP1", "NORTH", 5, 5, "OIL")),
	}, nil)
	require.NoError(t, err)

	state := s.State()
	assert.Equal(t, "NORTH", state.Wells.Ref("OP1").GroupName)
	assert.True(t, state.Groups.Ref("NORTH").HasWell("OP1"))
	assert.False(t, state.Groups.Ref("OPS").HasWell("OP1"))
	// The connections survive a reassignment.
	assert.Equal(t, 3, state.Wells.Ref("OP1").Connections.Len())
}

func TestTrimWGName_PolicyControlsDiagnostic(t *testing.T) {
	// Default policy: an embedded space is fatal.
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS", welspecsRecord("OP1 ", "OPS", 5, 5, "OIL")),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Illegal space")

	// Relaxed policy: the trimmed name is used without complaint.
	pc := NewParseContext()
	pc.Update(ParseWGNameSpace, ActionIgnore)
	s = NewSchedule(testUnits, *pc, NewErrorGuard())
	err = s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS", welspecsRecord("OP1 ", "OPS", 5, 5, "OIL")),
	}, nil)
	require.NoError(t, err)
	assert.True(t, s.State().Wells.Has("OP1"))
}

func TestCOMPDAT_ResolvesDefaultedRefDepth(t *testing.T) {
	s := setupProducer(t, "OP1")
	well := s.State().Wells.Ref("OP1")
	assert.True(t, well.RefDepthDefault)
	assert.Equal(t, 2500.0, well.RefDepth)
	assert.Equal(t, 3, well.Connections.Len())
	assert.Equal(t, 1, well.Connections.Get(0).Complnum)
	assert.Equal(t, 3, well.Connections.Get(2).Complnum)
}

func TestCOMPDAT_RedefinedCellKeepsComplnum(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("COMPDAT", compdatRecord("OP1", 5, 5, 2, 2, 999.0, 2600.0)),
	}, nil)
	require.NoError(t, err)

	conns := s.State().Wells.Ref("OP1").Connections
	assert.Equal(t, 3, conns.Len())
	assert.Equal(t, 2, conns.Get(1).Complnum)
	assert.Equal(t, 999.0, conns.Get(1).CF)
}

func TestWCONPROD_ArmsControlsFromGivenItems(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "ORAT", 1000.0)),
	}, nil)
	require.NoError(t, err)

	well := s.State().Wells.Ref("OP1")
	assert.Equal(t, WellOpen, well.Status)
	prod := well.Production
	assert.True(t, prod.HasControl(ProducerORAT))
	assert.True(t, prod.HasControl(ProducerBHP))
	assert.False(t, prod.HasControl(ProducerWRAT))
	assert.Equal(t, ProducerORAT, prod.ControlMode)
	assert.True(t, prod.PredictionMode)
	assert.True(t, s.State().StepEvents.HasEvent(ProductionUpdate))
}

func TestWCONPROD_CModeWithDefaultedTargetFails(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "GRAT", 1000.0)),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRAT")
}

func TestWCONPROD_UndefinedVFPTableFails(t *testing.T) {
	s := setupProducer(t, "OP1")
	record := NewRecord(
		NewStringItem("WELL", "OP1"),
		NewStringItem("STATUS", "OPEN"),
		NewStringItem("CMODE", "ORAT"),
		NewDimensionedItem("ORAT", "LiquidSurfaceVolume/Time", testUnits, 1000.0),
		NewIntItem("VFP_TABLE", 5),
	)
	err := s.ApplyKeywords([]DeckKeyword{kw("WCONPROD", record)}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VFP table: 5 not defined")
}

func TestWCONPROD_SwitchFromInjectorResetsBHPLimit(t *testing.T) {
	// GIVEN a well running as a water injector
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WCONINJE", wconinjeRecord("OP1", "WATER", "OPEN", "RATE", 800.0)),
	}, nil)
	require.NoError(t, err)
	require.True(t, s.State().Wells.Ref("OP1").IsInjector())

	// WHEN a WCONPROD switches it back to production
	s.NextReportStep(31.0)
	err = s.ApplyKeywords([]DeckKeyword{
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "ORAT", 1000.0)),
	}, nil)
	require.NoError(t, err)

	// THEN the BHP floor resets to atmospheric and the switch is
	// recorded
	state := s.State()
	well := state.Wells.Ref("OP1")
	assert.True(t, well.IsProducer())
	assert.Equal(t, 101325.0, well.Production.BHPTarget.Value)
	assert.True(t, well.Production.HasControl(ProducerBHP))
	assert.True(t, state.EntityEvents.HasEvent("OP1", WellSwitchedInjectorProducer))
}

func TestWCONINJE_CrossflowBannedZeroRate_ClosesWell(t *testing.T) {
	s := newTestSchedule()
	welspecs := NewRecord(
		NewStringItem("WELL", "WI1"),
		NewStringItem("GROUP", "INJ"),
		NewIntItem("HEAD_I", 2),
		NewIntItem("HEAD_J", 2),
		NewStringItem("PHASE", "WATER"),
		NewStringItem("CROSSFLOW", "NO"),
	)
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS", welspecs),
		kw("COMPDAT", compdatRecord("WI1", 2, 2, 1, 1, 50.0, 2400.0)),
		kw("WCONINJE", wconinjeRecord("WI1", "WATER", "OPEN", "RATE", 0.0)),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, WellShut, s.State().Wells.Ref("WI1").Status)
}

func TestWCONHIST_SwitchesToHistoryMode(t *testing.T) {
	s := setupProducer(t, "OP1")
	record := NewRecord(
		NewStringItem("WELL", "OP1"),
		NewStringItem("STATUS", "OPEN"),
		NewStringItem("CMODE", "ORAT"),
		NewDimensionedItem("ORAT", "LiquidSurfaceVolume/Time", testUnits, 450.0),
	)
	err := s.ApplyKeywords([]DeckKeyword{kw("WCONHIST", record)}, nil)
	require.NoError(t, err)

	well := s.State().Wells.Ref("OP1")
	assert.False(t, well.Production.PredictionMode)
	assert.False(t, well.Prediction)
	assert.Equal(t, ProducerORAT, well.Production.ControlMode)
}

func TestWHISTCTL_OverridesHistoryControl(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WHISTCTL", NewRecord(NewStringItem("CMODE", "GRAT"))),
		kw("WCONHIST", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewStringItem("STATUS", "OPEN"),
			NewStringItem("CMODE", "ORAT"),
			NewDimensionedItem("ORAT", "LiquidSurfaceVolume/Time", testUnits, 450.0),
		)),
	}, nil)
	require.NoError(t, err)

	well := s.State().Wells.Ref("OP1")
	assert.Equal(t, ProducerGRAT, well.Production.ControlMode)
}

func TestWELOPEN_WholeWellPath(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELOPEN", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewStringItem("STATUS", "OPEN"),
		)),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, WellOpen, s.State().Wells.Ref("OP1").Status)
}

func TestWELOPEN_RefusesOpeningUnconnectedWell(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS", welspecsRecord("OP1", "OPS", 5, 5, "OIL")),
		kw("WELOPEN", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewStringItem("STATUS", "OPEN"),
		)),
	}, nil)
	require.NoError(t, err)
	// No grid connections: the open request is refused, not fatal.
	assert.Equal(t, WellShut, s.State().Wells.Ref("OP1").Status)
}

func TestWELOPEN_ConnectionPathLeavesWellStatus(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELOPEN", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewStringItem("STATUS", "SHUT"),
			NewIntItem("I", 5),
			NewIntItem("J", 5),
			NewIntItem("K", 2),
		)),
	}, nil)
	require.NoError(t, err)

	well := s.State().Wells.Ref("OP1")
	assert.Equal(t, WellShut, well.Status)
	assert.Equal(t, ConnectionShut, well.Connections.Get(1).State)
	assert.Equal(t, ConnectionOpen, well.Connections.Get(0).State)
}

func TestWLIST_SetAlgebra(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS",
			welspecsRecord("OP1", "OPS", 1, 1, "OIL"),
			welspecsRecord("OP2", "OPS", 2, 2, "OIL"),
			welspecsRecord("OP3", "OPS", 3, 3, "OIL"),
		),
		kw("WLIST", NewRecord(
			NewStringItem("NAME", "*FLOOD"),
			NewStringItem("ACTION", "NEW"),
			NewStringItem("WELLS", "OP1", "OP2"),
		)),
	}, nil)
	require.NoError(t, err)

	wlm := s.State().WList.Read()
	assert.Equal(t, []string{"OP1", "OP2"}, wlm.Wells("*FLOOD"))

	// ADD and DEL adjust membership.
	err = s.ApplyKeywords([]DeckKeyword{
		kw("WLIST", NewRecord(
			NewStringItem("NAME", "*FLOOD"),
			NewStringItem("ACTION", "ADD"),
			NewStringItem("WELLS", "OP3"),
		)),
		kw("WLIST", NewRecord(
			NewStringItem("NAME", "*FLOOD"),
			NewStringItem("ACTION", "DEL"),
			NewStringItem("WELLS", "OP1"),
		)),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"OP2", "OP3"}, s.State().WList.Read().Wells("*FLOOD"))
}

func TestWLIST_MovIsExclusive(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS",
			welspecsRecord("OP1", "OPS", 1, 1, "OIL"),
			welspecsRecord("OP2", "OPS", 2, 2, "OIL"),
		),
		kw("WLIST", NewRecord(
			NewStringItem("NAME", "*A"),
			NewStringItem("ACTION", "NEW"),
			NewStringItem("WELLS", "OP1", "OP2"),
		)),
		kw("WLIST", NewRecord(
			NewStringItem("NAME", "*B"),
			NewStringItem("ACTION", "NEW"),
		)),
		kw("WLIST", NewRecord(
			NewStringItem("NAME", "*B"),
			NewStringItem("ACTION", "MOV"),
			NewStringItem("WELLS", "OP1"),
		)),
	}, nil)
	require.NoError(t, err)

	wlm := s.State().WList.Read()
	assert.Equal(t, []string{"OP2"}, wlm.Wells("*A"))
	assert.Equal(t, []string{"OP1"}, wlm.Wells("*B"))
}

func TestWellNames_ListReferenceAndWildcards(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS",
			welspecsRecord("OP3", "OPS", 1, 1, "OIL"),
			welspecsRecord("OP1", "OPS", 2, 2, "OIL"),
			welspecsRecord("WI1", "INJ", 3, 3, "WATER"),
		),
		kw("WLIST", NewRecord(
			NewStringItem("NAME", "*PROD"),
			NewStringItem("ACTION", "NEW"),
			NewStringItem("WELLS", "OP1"),
		)),
	}, nil)
	require.NoError(t, err)

	ctx := &HandlerContext{schedule: s, keyword: kw("WEFAC"), currentStep: 0,
		parseContext: *NewParseContext(), errors: NewErrorGuard()}

	// Wildcards resolve in insertion order, not lexicographic.
	names, err := ctx.WellNames("OP*", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"OP3", "OP1"}, names)

	// A leading-'*' name naming a defined list resolves to its members.
	names, err = ctx.WellNames("*PROD", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"OP1"}, names)

	// An unmatched pattern is fatal under the default policy.
	_, err = ctx.WellNames("GI*", false)
	require.Error(t, err)

	// The placeholder pattern only warns.
	names, err = ctx.WellNames("?", false)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestWellNames_ActionContextRestriction(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS",
			welspecsRecord("OP1", "OPS", 1, 1, "OIL"),
			welspecsRecord("OP2", "OPS", 2, 2, "OIL"),
		),
	}, nil)
	require.NoError(t, err)

	ctx := &HandlerContext{schedule: s, keyword: kw("WCONPROD"), currentStep: 0,
		parseContext: *NewParseContext(), errors: NewErrorGuard(),
		actionWells: []string{"OP2"}, inAction: true}

	names, err := ctx.WellNames("OP*", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"OP2"}, names)
}

func TestReadYourWrites_SameStepCreationVisible(t *testing.T) {
	// A wildcard in a later keyword of the same step sees wells created
	// by an earlier keyword of that step.
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS", welspecsRecord("OP9", "OPS", 5, 5, "OIL")),
		kw("COMPDAT", compdatRecord("OP9", 5, 5, 1, 1, 10.0, 2000.0)),
		kw("WCONPROD", wconprodRecord("OP*", "OPEN", "ORAT", 123.0)),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 123.0, s.State().Wells.Ref("OP9").Production.OilRate.Value)
}

func TestWELTARG_RetargetsSingleControl(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WCONPROD", wconprodRecord("OP1", "OPEN", "ORAT", 1000.0)),
		kw("WELTARG", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewStringItem("CMODE", "ORAT"),
			NewUDAItem("NEW_VALUE", Literal(750.0)),
		)),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 750.0, s.State().Wells.Ref("OP1").Production.OilRate.Value)
}

func TestWTMULT_RejectsQuantityReference(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WTMULT", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewStringItem("CONTROL", "ORAT"),
			NewUDAItem("FACTOR", Reference("WUMULT")),
		)),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported as multiplier")
}

func TestWEFAC_SetsEfficiencyFactor(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WEFAC", NewRecord(
			NewStringItem("WELLNAME", "OP1"),
			NewDoubleItem("EFFICIENCY_FACTOR", 0.85),
		)),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.85, s.State().Wells.Ref("OP1").EfficiencyFactor)
	assert.True(t, s.State().StepEvents.HasEvent(WellGroupEfficiencyUpdate))
}

func TestWPAVE_RejectsIllegalWeights(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WPAVE", NewRecord(
			NewDoubleItem("F1", 1.5),
			NewDoubleItem("F2", 0.5),
		)),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed 1.0")

	err = s.ApplyKeywords([]DeckKeyword{
		kw("WPAVE", NewRecord(
			NewDoubleItem("F1", 0.5),
			NewDoubleItem("F2", 1.5),
		)),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between zero and one")
}

func TestWSOLVENT_RequiresGasInjector(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WSOLVENT", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewUDAItem("SOLVENT_FRACTION", Literal(0.4)),
		)),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gas injectors")
}

func TestWTEST_EmptyReasonsDropsWell(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WTEST", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewDimensionedItem("INTERVAL", "Time", testUnits, 30.0),
			NewStringItem("REASON", "PE"),
		)),
	}, nil)
	require.NoError(t, err)
	assert.True(t, s.State().WTest.Read().Has("OP1"))

	err = s.ApplyKeywords([]DeckKeyword{
		kw("WTEST", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewDimensionedItem("INTERVAL", "Time", testUnits, 30.0),
			NewStringItem("REASON", ""),
		)),
	}, nil)
	require.NoError(t, err)
	assert.False(t, s.State().WTest.Read().Has("OP1"))
}

func TestCOMPLUMP_AssignsCompletionNumberInBox(t *testing.T) {
	// GIVEN a producer with connections in layers 1..3
	s := setupProducer(t, "OP1")

	// WHEN layers 2..3 are lumped into completion 9
	err := s.ApplyKeywords([]DeckKeyword{
		kw("COMPLUMP", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewIntItem("K1", 2),
			NewIntItem("K2", 3),
			NewIntItem("N", 9),
		)),
	}, nil)
	require.NoError(t, err)

	conns := s.State().Wells.Ref("OP1").Connections
	assert.Equal(t, 1, conns.Get(0).Complnum)
	assert.Equal(t, 9, conns.Get(1).Complnum)
	assert.Equal(t, 9, conns.Get(2).Complnum)
	assert.True(t, s.State().EntityEvents.HasEvent("OP1", CompletionChange))
}

func TestCOMPORD_RejectsDepthOrdering(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("COMPORD", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewStringItem("ORDER_TYPE", "DEPTH"),
		)),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestCSKIN_ReplacesSkinInLayerRange(t *testing.T) {
	s := setupProducer(t, "OP1")
	err := s.ApplyKeywords([]DeckKeyword{
		kw("CSKIN", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewIntItem("K1", 1),
			NewIntItem("K2", 2),
			NewDoubleItem("CONNECTION_SKIN_FACTOR", 2.5),
		)),
	}, nil)
	require.NoError(t, err)

	conns := s.State().Wells.Ref("OP1").Connections
	assert.Equal(t, 2.5, conns.Get(0).SkinFactor)
	assert.Equal(t, 2.5, conns.Get(1).SkinFactor)
	assert.Equal(t, 0.0, conns.Get(2).SkinFactor)
}

func TestWWPAVE_AppliesToNamedWellsOnly(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("WELSPECS",
			welspecsRecord("OP1", "OPS", 1, 1, "OIL"),
			welspecsRecord("OP2", "OPS", 2, 2, "OIL"),
		),
		kw("WWPAVE", NewRecord(
			NewStringItem("WELL", "OP1"),
			NewDoubleItem("F1", 0.25),
			NewDoubleItem("F2", 0.5),
		)),
	}, nil)
	require.NoError(t, err)

	op1 := s.State().Wells.Ref("OP1")
	require.NotNil(t, op1.BlockAvg)
	assert.Equal(t, 0.25, op1.BlockAvg.InnerWeight)
	assert.Nil(t, s.State().Wells.Ref("OP2").BlockAvg)
}
