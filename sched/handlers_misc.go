package sched

import "github.com/sirupsen/logrus"

// miscHandlers is the registry for the remaining control keywords:
// timestepping, output thinning, VFP tables, lift optimization and the
// grid modifiers re-applied between report steps.
var miscHandlers = map[string]keywordHandler{
	"TUNING":   handleTUNING,
	"NEXTSTEP": handleNEXTSTEP,
	"NUPCOL":   handleNUPCOL,
	"SUMTHIN":  handleSUMTHIN,
	"RPTONLY":  handleRPTONLY,
	"RPTONLYO": handleRPTONLYO,
	"EXIT":     handleEXIT,
	"VFPPROD":  handleVFPPROD,
	"VFPINJ":   handleVFPINJ,
	"LIFTOPT":  handleLIFTOPT,

	"BOX":     handleGeoModifier,
	"ENDBOX":  handleGeoModifier,
	"MULTFLT": handleGeoModifier,
	"MULTPV":  handleGeoModifier,
	"MULTX":   handleGeoModifier,
	"MULTX-":  handleGeoModifier,
	"MULTY":   handleGeoModifier,
	"MULTY-":  handleGeoModifier,
	"MULTZ":   handleGeoModifier,
	"MULTZ-":  handleGeoModifier,

	"MULTREGT": handleUnsupportedModifier,
	"MULTSIG":  handleUnsupportedModifier,
	"MULTSIGV": handleUnsupportedModifier,
}

func handleTUNING(ctx *HandlerContext) error {
	state := ctx.State()
	tuning := state.Tuning.Get()
	tuning.FromTUNING(ctx.Keyword())
	if state.Tuning.Update(tuning) {
		state.StepEvents.AddEvent(TuningChange)
	}
	return nil
}

func handleNEXTSTEP(ctx *HandlerContext) error {
	state := ctx.State()
	record := ctx.Keyword().Record(0)
	state.NextTStep = NextStep{
		Value:       record.Item("MAX_STEP").SIDouble(0),
		EveryReport: record.Item("APPLY_TO_ALL").Bool(0),
		Set:         true,
	}
	state.StepEvents.AddEvent(TuningChange)
	return nil
}

func handleNUPCOL(ctx *HandlerContext) error {
	state := ctx.State()
	item := ctx.Keyword().Record(0).Item("NUM_ITER")
	if item.DefaultApplied(0) {
		logrus.Infof("Defaulted NUPCOL keyword, keeping %d target iterations", state.NupCol)
		return nil
	}
	state.NupCol = item.Int(0)
	return nil
}

func handleSUMTHIN(ctx *HandlerContext) error {
	state := ctx.State()
	interval := ctx.Keyword().Record(0).Item("TIME").SIDouble(0)
	// A non-positive interval switches thinning off.
	state.HasSumThin = interval > 0
	state.SumThin = interval
	return nil
}

func handleRPTONLY(ctx *HandlerContext) error {
	ctx.State().RptOnly = true
	return nil
}

func handleRPTONLYO(ctx *HandlerContext) error {
	ctx.State().RptOnly = false
	return nil
}

func handleEXIT(ctx *HandlerContext) error {
	record := ctx.Keyword().Record(0)
	code := record.Item("STATUS_CODE").Int(0)
	logrus.Infof("Simulation exit requested with status %d in %s line %d",
		code, ctx.Location().Filename, ctx.Location().Lineno)
	ctx.SetExitCode(code)
	return nil
}

func handleVFPPROD(ctx *HandlerContext) error {
	state := ctx.State()
	table, err := NewVFPProdTable(ctx.Keyword())
	if err != nil {
		return err
	}
	tables := state.VFPProd.Get()
	tables.Add(table)
	if state.VFPProd.Update(tables) {
		state.StepEvents.AddEvent(VFPProdUpdate)
	}
	return nil
}

func handleVFPINJ(ctx *HandlerContext) error {
	state := ctx.State()
	table, err := NewVFPInjTable(ctx.Keyword())
	if err != nil {
		return err
	}
	tables := state.VFPInj.Get()
	tables.Add(table)
	if state.VFPInj.Update(tables) {
		state.StepEvents.AddEvent(VFPInjUpdate)
	}
	return nil
}

func handleLIFTOPT(ctx *HandlerContext) error {
	state := ctx.State()
	glo := state.GasLift.Get()
	glo.FromLIFTOPT(ctx.Keyword().Record(0))
	state.GasLift.Update(glo)
	return nil
}

// handleGeoModifier stores the keyword verbatim for re-application to
// the grid when the step becomes active.
func handleGeoModifier(ctx *HandlerContext) error {
	state := ctx.State()
	state.GeoKeywords = append(state.GeoKeywords, ctx.Keyword())
	state.StepEvents.AddEvent(GeoModifier)
	ctx.RecordTransmissibilityChange()
	return nil
}

func handleUnsupportedModifier(ctx *HandlerContext) error {
	location := ctx.Location()
	logrus.Warnf("Grid modifier %s in %s line %d is not supported in the dynamic sections and will be ignored",
		location.Keyword, location.Filename, location.Lineno)
	return nil
}
