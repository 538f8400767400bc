package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gruptreeKeyword(pairs ...[2]string) DeckKeyword {
	var records []DeckRecord
	for _, pair := range pairs {
		records = append(records, NewRecord(
			NewStringItem("CHILD_GROUP", pair[0]),
			NewStringItem("PARENT_GROUP", pair[1]),
		))
	}
	return kw("GRUPTREE", records...)
}

func TestGRUPTREE_BuildsTree(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"PLAT-A", "FIELD"}, [2]string{"NORTH", "PLAT-A"}),
	}, nil)
	require.NoError(t, err)

	state := s.State()
	assert.Equal(t, "PLAT-A", state.Groups.Ref("NORTH").ParentName)
	assert.True(t, state.Groups.Ref("PLAT-A").HasChildGroup("NORTH"))
	assert.True(t, state.Groups.Ref("FIELD").HasChildGroup("PLAT-A"))
}

func TestGRUPTREE_ReparentingMovesChild(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"NORTH", "PLAT-A"}, [2]string{"NORTH", "PLAT-B"}),
	}, nil)
	require.NoError(t, err)

	state := s.State()
	assert.Equal(t, "PLAT-B", state.Groups.Ref("NORTH").ParentName)
	assert.False(t, state.Groups.Ref("PLAT-A").HasChildGroup("NORTH"))
	assert.True(t, state.Groups.Ref("PLAT-B").HasChildGroup("NORTH"))
}

func gconprodRecord(group, cmode, exceed string, oilTarget, waterTarget float64, oilGiven, waterGiven bool) DeckRecord {
	items := []DeckItem{
		NewStringItem("GROUP", group),
		NewStringItem("CONTROL_MODE", cmode),
		NewStringItem("EXCEED_PROC", exceed),
	}
	if oilGiven {
		items = append(items, NewDimensionedItem("OIL_TARGET", "LiquidSurfaceVolume/Time", testUnits, oilTarget))
	}
	if waterGiven {
		items = append(items, NewDimensionedItem("WATER_TARGET", "LiquidSurfaceVolume/Time", testUnits, waterTarget))
	}
	return NewRecord(items...)
}

func TestGCONPROD_RateRuleArmsControls(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"OPS", "FIELD"}),
		kw("GCONPROD", gconprodRecord("OPS", "ORAT", "RATE", 5000.0, 3000.0, true, true)),
	}, nil)
	require.NoError(t, err)

	props := s.State().Groups.Ref("OPS").Production
	require.NotNil(t, props)
	assert.Equal(t, GroupProdORAT, props.CMode)
	assert.True(t, props.HasControl(GroupProdORAT))
	assert.True(t, props.HasControl(GroupProdWRAT))
	assert.True(t, s.State().StepEvents.HasEvent(GroupProductionUpdate))
}

func TestGCONPROD_NonRateActionLeavesTargetUnarmed(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"OPS", "FIELD"}),
		kw("GCONPROD", gconprodRecord("OPS", "ORAT", "WELL", 5000.0, 3000.0, true, true)),
	}, nil)
	require.NoError(t, err)

	props := s.State().Groups.Ref("OPS").Production
	require.NotNil(t, props)
	// The control mode itself is armed, but the rate limits only bind
	// when the exceed procedure is RATE.
	assert.True(t, props.HasControl(GroupProdORAT))
	assert.False(t, props.HasControl(GroupProdWRAT))
}

func TestGCONPROD_FieldGetsNoGuideRate(t *testing.T) {
	s := newTestSchedule()
	record := NewRecord(
		NewStringItem("GROUP", "FIELD"),
		NewStringItem("CONTROL_MODE", "ORAT"),
		NewStringItem("EXCEED_PROC", "RATE"),
		NewDimensionedItem("OIL_TARGET", "LiquidSurfaceVolume/Time", testUnits, 10000.0),
		NewDoubleItem("GUIDE_RATE", 2.5),
	)
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"OPS", "FIELD"}),
		kw("GCONPROD", record),
	}, nil)
	require.NoError(t, err)

	props := s.State().Groups.Ref("FIELD").Production
	require.NotNil(t, props)
	assert.Equal(t, 0.0, props.GuideRate)
	assert.False(t, props.AvailableGroupControl)
}

func TestGCONPROD_ZeroGuideRateMeansPotential(t *testing.T) {
	s := newTestSchedule()
	record := NewRecord(
		NewStringItem("GROUP", "OPS"),
		NewStringItem("CONTROL_MODE", "ORAT"),
		NewStringItem("EXCEED_PROC", "RATE"),
		NewDimensionedItem("OIL_TARGET", "LiquidSurfaceVolume/Time", testUnits, 10000.0),
		NewStringItem("GUIDE_RATE_DEF", "OIL"),
	)
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"OPS", "FIELD"}),
		kw("GCONPROD", record),
	}, nil)
	require.NoError(t, err)

	props := s.State().Groups.Ref("OPS").Production
	assert.Equal(t, GuideRateTargetPotn, props.GuideRateDef)
}

func TestGCONINJE_PerPhaseBlocks(t *testing.T) {
	s := newTestSchedule()
	injRecord := func(phase string, rate float64) DeckRecord {
		return NewRecord(
			NewStringItem("GROUP", "INJ"),
			NewStringItem("PHASE", phase),
			NewStringItem("CONTROL_MODE", "RATE"),
			NewDimensionedItem("SURFACE_TARGET", "LiquidSurfaceVolume/Time", testUnits, rate),
		)
	}
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"INJ", "FIELD"}),
		kw("GCONINJE", injRecord("WATER", 8000.0), injRecord("GAS", 90000.0)),
	}, nil)
	require.NoError(t, err)

	group := s.State().Groups.Ref("INJ")
	require.Len(t, group.Injection, 2)
	water := group.Injection[PhaseWater]
	gas := group.Injection[PhaseGas]
	require.NotNil(t, water)
	require.NotNil(t, gas)
	assert.Equal(t, GroupInjRATE, water.CMode)
	assert.True(t, water.HasControl(GroupInjRATE))
	assert.NotEqual(t, water.SurfaceTarget.Value, gas.SurfaceTarget.Value)
	assert.True(t, s.State().StepEvents.HasEvent(GroupInjectionUpdate))
}

func TestGEFAC_SetsGroupEfficiency(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"OPS", "FIELD"}),
		kw("GEFAC", NewRecord(
			NewStringItem("GROUP", "OPS"),
			NewDoubleItem("EFFICIENCY_FACTOR", 0.9),
		)),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.9, s.State().Groups.Ref("OPS").EfficiencyFactor)
}

func TestGCONSALE_RecordsContract(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"OPS", "FIELD"}),
		kw("GCONSALE", NewRecord(
			NewStringItem("GROUP", "OPS"),
			NewUDAItem("SALES_TARGET", Literal(50000.0)),
		)),
	}, nil)
	require.NoError(t, err)
	assert.True(t, s.State().GConSale.Read().Has("OPS"))

	// The contract implies a gas-injection role for the group.
	gas := s.State().Groups.Ref("OPS").Injection[PhaseGas]
	require.NotNil(t, gas)
	assert.Equal(t, PhaseGas, gas.Phase)
	assert.True(t, s.State().StepEvents.HasEvent(GroupInjectionUpdate))
}

func TestGPMAINT_NoneClearsControl(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		gruptreeKeyword([2]string{"OPS", "FIELD"}),
		kw("GPMAINT", NewRecord(
			NewStringItem("GROUP", "OPS"),
			NewStringItem("FLOW_TARGET", "PROD"),
			NewDimensionedItem("PRESSURE_TARGET", "Pressure", testUnits, 250.0),
		)),
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, s.State().Groups.Ref("OPS").GPMaint)

	err = s.ApplyKeywords([]DeckKeyword{
		kw("GPMAINT", NewRecord(
			NewStringItem("GROUP", "OPS"),
			NewStringItem("FLOW_TARGET", "NONE"),
		)),
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, s.State().Groups.Ref("OPS").GPMaint)
}

func TestGUIDERAT_InstallsModel(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("GUIDERAT", NewRecord(
			NewDimensionedItem("MIN_CALC_TIME", "Time", testUnits, 7.0),
			NewStringItem("NOMINATED_PHASE", "OIL"),
			NewDoubleItem("A", 1.0),
			NewDoubleItem("B", 0.5),
		)),
	}, nil)
	require.NoError(t, err)
	assert.True(t, s.State().GuideRate.Read().HasModel)
}

func TestLINCOM_RequiresGuideRateModel(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("LINCOM", NewRecord(
			NewUDAItem("ALPHA", Literal(1.0)),
			NewUDAItem("BETA", Literal(2.0)),
			NewUDAItem("GAMMA", Literal(3.0)),
		)),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GUIDERAT")
}
