package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branpropRecord(downtree, uptree string, vfpTable int) DeckRecord {
	return NewRecord(
		NewStringItem("DOWNTREE_NODE", downtree),
		NewStringItem("UPTREE_NODE", uptree),
		NewIntItem("VFP_TABLE", vfpTable),
	)
}

func TestBRANPROP_BuildsBranches(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("BRANPROP",
			branpropRecord("PLAT-A", "TERM", 9),
			branpropRecord("NORTH", "PLAT-A", 10),
		),
	}, nil)
	require.NoError(t, err)

	network := s.State().Network.Read()
	assert.True(t, network.Active())
	assert.True(t, network.HasNode("TERM"))
	assert.True(t, network.HasNode("NORTH"))
	assert.Len(t, network.UptreeBranches("NORTH"), 1)
}

func TestBRANPROP_ZeroVFPTableDropsBranch(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("BRANPROP", branpropRecord("PLAT-A", "TERM", 9)),
		kw("BRANPROP", branpropRecord("PLAT-A", "TERM", 0)),
	}, nil)
	require.NoError(t, err)
	assert.False(t, s.State().Network.Read().Active())
}

func TestNODEPROP_TerminalPressure(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("BRANPROP", branpropRecord("PLAT-A", "TERM", 9)),
		kw("NODEPROP", NewRecord(
			NewStringItem("NAME", "TERM"),
			NewDimensionedItem("PRESSURE", "Pressure", testUnits, 25.0),
		)),
	}, nil)
	require.NoError(t, err)

	node, err := s.State().Network.Read().Node("TERM")
	require.NoError(t, err)
	assert.True(t, node.HasTerminal)
	assert.InDelta(t, 25.0e5, node.TerminalPressure, 1e-9)
}

func TestNODEPROP_TerminalBelowVFPBranchFails(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("BRANPROP", branpropRecord("PLAT-A", "TERM", 9)),
		kw("NODEPROP", NewRecord(
			NewStringItem("NAME", "PLAT-A"),
			NewDimensionedItem("PRESSURE", "Pressure", testUnits, 25.0),
		)),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal pressure")
}

func TestNODEPROP_UnknownNodeFails(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("NODEPROP", NewRecord(NewStringItem("NAME", "NOWHERE"))),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected to any branch")
}

func TestNETBALAN_OverridesDefaults(t *testing.T) {
	s := newTestSchedule()
	err := s.ApplyKeywords([]DeckKeyword{
		kw("NETBALAN", NewRecord(
			NewDimensionedItem("TIME_INTERVAL", "Time", testUnits, 2.0),
			NewIntItem("MAX_ITER", 25),
		)),
	}, nil)
	require.NoError(t, err)

	balance := s.State().NetBalance.Read()
	assert.Equal(t, 2.0*86400.0, balance.Interval)
	assert.Equal(t, 25, balance.MaxIterations)
	// Items the record left out keep their defaults.
	assert.Equal(t, 0.01, balance.ThpTolerance)
}
