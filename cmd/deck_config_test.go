package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sched "github.com/reservoir-sim/reservoir-sim/sched"
)

const sampleDeck = `
units: METRIC
policies:
  PARSE_WGNAME_SPACE: IGNORE
steps:
  - days: 0.0
    keywords:
      - name: WELSPECS
        file: CASE.DATA
        line: 10
        records:
          - items:
              - name: WELL
                strings: [OP1]
              - name: GROUP
                strings: [OPS]
              - name: HEAD_I
                ints: [5]
              - name: HEAD_J
                ints: [5]
              - name: PHASE
                strings: [OIL]
  - days: 31.0
    keywords:
      - name: WCONPROD
        records:
          - items:
              - name: WELL
                strings: [OP1]
              - name: STATUS
                strings: [OPEN]
              - name: CMODE
                strings: [ORAT]
              - name: ORAT
                doubles: [5000.0]
                dim: LiquidSurfaceVolume/Time
`

func writeSampleDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDeck), 0o644))
	return path
}

func TestLoadDeck(t *testing.T) {
	deck, err := LoadDeck(writeSampleDeck(t))
	require.NoError(t, err)

	assert.Equal(t, "METRIC", deck.Units)
	require.Len(t, deck.Steps, 2)
	assert.Equal(t, 31.0, deck.Steps[1].Days)
	assert.Equal(t, "WELSPECS", deck.Steps[0].Keywords[0].Name)

	pc, err := deck.ParseContext()
	require.NoError(t, err)
	assert.Equal(t, sched.ActionIgnore, pc.Action(sched.ParseWGNameSpace))
}

func TestDeckKeyword_BuildConvertsToSI(t *testing.T) {
	deck, err := LoadDeck(writeSampleDeck(t))
	require.NoError(t, err)
	unitSystem, err := deck.UnitSystem()
	require.NoError(t, err)

	keyword := deck.Steps[1].Keywords[0].Build(unitSystem)
	assert.Equal(t, "WCONPROD", keyword.Name())
	assert.Equal(t, "DECK", keyword.Location().Filename)

	orat := keyword.Record(0).Item("ORAT")
	assert.InDelta(t, 5000.0/86400.0, orat.SIDouble(0), 1e-12)
}

func TestDeckReplayEndToEnd(t *testing.T) {
	deck, err := LoadDeck(writeSampleDeck(t))
	require.NoError(t, err)
	unitSystem, err := deck.UnitSystem()
	require.NoError(t, err)
	pc, err := deck.ParseContext()
	require.NoError(t, err)

	schedule := sched.NewSchedule(unitSystem, *pc, sched.NewErrorGuard())
	for n, step := range deck.Steps {
		if n > 0 {
			schedule.NextReportStep(step.Days)
		}
		var keywords []sched.DeckKeyword
		for _, keyword := range step.Keywords {
			keywords = append(keywords, keyword.Build(unitSystem))
		}
		require.NoError(t, schedule.ApplyKeywords(keywords, nil))
	}

	assert.Equal(t, 2, schedule.Size())
	assert.True(t, schedule.State().Wells.Has("OP1"))
}
