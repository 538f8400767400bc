package sched

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// wellHandlers is the registry for well definition, completion and
// control keywords.
var wellHandlers = map[string]keywordHandler{
	"COMPDAT":  handleCOMPDAT,
	"COMPLUMP": handleCOMPLUMP,
	"COMPORD":  handleCOMPORD,
	"CSKIN":    handleCSKIN,
	"WCONHIST": handleWCONHIST,
	"WCONINJE": handleWCONINJE,
	"WCONINJH": handleWCONINJH,
	"WCONPROD": handleWCONPROD,
	"WDFAC":    handleWDFAC,
	"WDFACCOR": handleWDFACCOR,
	"WECON":    handleWECON,
	"WEFAC":    handleWEFAC,
	"WELOPEN":  handleWELOPEN,
	"WELPI":    handleWELPI,
	"WELSPECS": handleWELSPECS,
	"WELTARG":  handleWELTARG,
	"WFOAM":    handleWFOAM,
	"WGRUPCON": handleWGRUPCON,
	"WHISTCTL": handleWHISTCTL,
	"WINJMULT": handleWINJMULT,
	"WINJTEMP": handleWINJTEMP,
	"WLIFTOPT": handleWLIFTOPT,
	"WLIST":    handleWLIST,
	"WMICP":    handleWMICP,
	"WPAVE":    handleWPAVE,
	"WPAVEDEP": handleWPAVEDEP,
	"WPIMULT":  handleWPIMULT,
	"WPMITAB":  handleWPMITAB,
	"WPOLYMER": handleWPOLYMER,
	"WRFT":     handleWRFT,
	"WRFTPLT":  handleWRFTPLT,
	"WSALT":    handleWSALT,
	"WSKPTAB":  handleWSKPTAB,
	"WSOLVENT": handleWSOLVENT,
	"WTEMP":    handleWTEMP,
	"WTEST":    handleWTEST,
	"WTMULT":   handleWTMULT,
	"WTRACER":  handleWTRACER,
	"WVFPDP":   handleWVFPDP,
	"WVFPEXP":  handleWVFPEXP,
	"WWPAVE":   handleWWPAVE,
}

// recordWellStatus parses the STATUS item; a defaulted item means OPEN.
func recordWellStatus(record DeckRecord) (WellStatus, error) {
	s := record.Item("STATUS").TrimmedString(0)
	if s == "" {
		s = "OPEN"
	}
	return WellStatusFromString(s)
}

func handleWELSPECS(ctx *HandlerContext) error {
	state := ctx.State()
	var fieldWells []string

	for _, record := range ctx.Keyword().Records() {
		if fip := record.Item("FIP_REGION"); !fip.DefaultApplied(0) && fip.Int(0) != 0 {
			location := ctx.Location()
			logrus.Warnf("Non-defaulted FIP region %d in WELSPECS keyword in file %s line %d is not supported. Reset to default value 0.",
				fip.Int(0), location.Filename, location.Lineno)
		}

		wellName, err := ctx.TrimWGName(record.Item("WELL").String(0))
		if err != nil {
			return err
		}
		groupName, err := ctx.TrimWGName(record.Item("GROUP").String(0))
		if err != nil {
			return err
		}

		// The name item may be a pattern or list reassigning existing
		// wells; an empty match means a new well is being created.
		existing, err := ctx.WellNames(wellName, true)
		if err != nil {
			return err
		}

		if groupName == "FIELD" {
			if len(existing) == 0 {
				fieldWells = append(fieldWells, wellName)
			} else {
				fieldWells = append(fieldWells, existing...)
			}
		}

		if !state.Groups.Has(groupName) {
			ctx.AddGroup(groupName)
		}

		if len(existing) == 0 {
			if err := welspecsCreateWell(ctx, record, wellName, groupName); err != nil {
				return err
			}
		} else {
			for _, name := range existing {
				if err := welspecsUpdateWell(ctx, record, name, groupName); err != nil {
					return err
				}
			}
		}
	}

	if len(fieldWells) > 0 {
		msg := "Problem with {keyword}\nIn {file} line {line}\nWell(s) parented directly to 'FIELD'; this is allowed but discouraged: " +
			strings.Join(fieldWells, ", ")
		if err := ctx.parseContext.HandleError(ScheduleWellInFieldGroup, msg, ctx.Location(), ctx.errors); err != nil {
			return err
		}
	}

	if !ctx.Keyword().Empty() {
		ctx.RecordWellStructureChange()
	}
	return nil
}

func welspecsCreateWell(ctx *HandlerContext, record DeckRecord, wellName, groupName string) error {
	phase, err := PhaseFromString(record.Item("PHASE").TrimmedString(0))
	if err != nil {
		return err
	}
	state := ctx.State()
	well := NewWell(wellName, groupName,
		record.Item("HEAD_I").Int(0), record.Item("HEAD_J").Int(0),
		phase, ctx.schedule.nextWellIndex())
	welspecsCommon(well, record)
	state.Wells.Add(well)
	state.StepEvents.AddEvent(WellCreated)
	state.EntityEvents.AddEvent(wellName, WellCreated)
	return ctx.AddWellToGroup(groupName, wellName)
}

func welspecsUpdateWell(ctx *HandlerContext, record DeckRecord, wellName, groupName string) error {
	state := ctx.State()
	well, err := state.Wells.Get(wellName)
	if err != nil {
		return err
	}
	welspecsCommon(&well, record)
	state.Wells.Update(well)
	return ctx.AddWellToGroup(groupName, wellName)
}

// welspecsCommon applies the WELSPECS items shared by creation and
// reassignment.
func welspecsCommon(well *Well, record DeckRecord) {
	if item := record.Item("REF_DEPTH"); !item.DefaultApplied(0) {
		well.RefDepth = item.SIDouble(0)
		well.RefDepthDefault = false
	}
	if item := record.Item("D_RADIUS"); !item.DefaultApplied(0) {
		well.DrainageRadius = item.SIDouble(0)
	}
	if item := record.Item("CROSSFLOW"); !item.DefaultApplied(0) {
		well.AllowCrossFlow = item.Bool(0)
	}
	if item := record.Item("AUTO_SHUTIN"); !item.DefaultApplied(0) {
		well.AutoShutIn = item.TrimmedString(0) != "STOP"
	}
}

func handleCOMPDAT(ctx *HandlerContext) error {
	state := ctx.State()
	touched := make(map[string]bool)

	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			conns := well.Connections.Copy()
			if err := conns.LoadCOMPDAT(record, name, ctx.Location()); err != nil {
				return err
			}
			if well.UpdateConnections(conns) {
				dfac := WDFAC{}
				if well.DFac != nil {
					dfac = well.DFac.Copy()
				}
				dfac.UpdateFromConnections(conns)
				well.DFac = &dfac
				state.Wells.Update(well)
				touched[name] = true
			}
			if conns.Empty() {
				location := ctx.Location()
				logrus.Warnf("Problem with COMPDAT/%s\nIn %s line %d\nWell %s is not connected to grid - will remain SHUT",
					name, location.Filename, location.Lineno, name)
			}
			state.EntityEvents.AddEvent(name, CompletionChange)
		}
	}
	state.StepEvents.AddEvent(CompletionChange)

	// A reference depth defaulted in WELSPECS is resolved exactly when
	// the COMPDAT keyword has been completely processed.
	for name := range touched {
		well, err := state.Wells.Get(name)
		if err != nil {
			return err
		}
		if well.UpdateRefDepth() {
			state.Wells.Update(well)
		}
	}
	if len(touched) > 0 {
		ctx.RecordWellStructureChange()
	}
	return nil
}

func handleCOMPLUMP(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		if record.Item("N").Int(0) <= 0 {
			return NewInputError(ctx.Location(),
				"Completion number in COMPLUMP must be positive, got %d", record.Item("N").Int(0))
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			conns := well.Connections.Copy()
			if conns.LumpCompletions(record) && well.UpdateConnections(conns) {
				state.Wells.Update(well)
				state.StepEvents.AddEvent(CompletionChange)
				state.EntityEvents.AddEvent(name, CompletionChange)
			}
		}
	}
	return nil
}

func handleCOMPORD(ctx *HandlerContext) error {
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		if _, err := ctx.WellNames(pattern, false); err != nil {
			return err
		}
		// Connections are stored in deck order, which is what both TRACK
		// and INPUT resolve to for the supported well geometries.
		method := record.Item("ORDER_TYPE").TrimmedString(0)
		switch method {
		case "", "TRACK", "INPUT":
		default:
			return NewInputError(ctx.Location(),
				"COMPORD ordering %q is not supported for well %s", method, pattern)
		}
	}
	return nil
}

func handleCSKIN(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			conns := well.Connections.Copy()
			if conns.SetSkinFactor(record) && well.UpdateConnections(conns) {
				state.Wells.Update(well)
				state.StepEvents.AddEvent(CompletionChange)
				state.EntityEvents.AddEvent(name, CompletionChange)
				ctx.AffectedWell(name)
			}
		}
	}
	return nil
}

func handleWCONPROD(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		status, err := recordWellStatus(record)
		if err != nil {
			return err
		}

		for _, name := range names {
			updateWell, err := ctx.UpdateWellStatus(name, status)
			if err != nil {
				return err
			}
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			switchingFromInjector := !well.IsProducer()

			props := well.Production.Copy()
			props.ClearControls()
			if well.IsAvailableForGroupControl() {
				props.AddControl(ProducerGRUP)
			}

			tableNum := record.Item("VFP_TABLE").Int(0)
			if record.Item("VFP_TABLE").DefaultApplied(0) {
				tableNum = props.VFPTableNumber
			}
			if tableNum != 0 && !state.VFPProd.Read().Has(tableNum) {
				return NewInputError(ctx.Location(),
					"Problem with well:%s VFP table: %d not defined", name, tableNum)
			}

			if err := props.HandleWCONPROD(name, record); err != nil {
				return err
			}

			if switchingFromInjector {
				props.ResetDefaultBHPLimit()
				updateWell = true
				state.EntityEvents.AddEvent(name, WellSwitchedInjectorProducer)
			}
			if well.UpdateProduction(props) {
				updateWell = true
			}
			if well.UpdatePrediction(true) {
				updateWell = true
			}
			if well.UpdateHasProduced() {
				updateWell = true
			}
			if well.Status == WellOpen {
				state.EntityEvents.AddEvent(name, RequestOpenWell)
			}
			if updateWell {
				state.StepEvents.AddEvent(ProductionUpdate)
				state.EntityEvents.AddEvent(name, ProductionUpdate)
				state.Wells.Update(well)
			}

			udqActive := state.UDQActive.Get()
			if props.UpdateUDQActive(*state.UDQ.Read(), &udqActive) {
				state.UDQActive.Update(udqActive)
			}
			ctx.AffectedWell(name)
		}
	}
	return nil
}

func handleWCONHIST(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		status, err := recordWellStatus(record)
		if err != nil {
			return err
		}

		for _, name := range names {
			if _, err := ctx.UpdateWellStatus(name, status); err != nil {
				return err
			}
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			switchingFromInjector := !well.IsProducer()
			updateWell := false

			props := well.Production.Copy()
			tableNum := record.Item("VFP_TABLE").Int(0)
			if record.Item("VFP_TABLE").DefaultApplied(0) {
				tableNum = props.VFPTableNumber
			}
			if tableNum != 0 && !state.VFPProd.Read().Has(tableNum) {
				return NewInputError(ctx.Location(),
					"Problem with well:%s VFP table: %d not defined", name, tableNum)
			}
			if err := props.HandleWCONHIST(state.WhistCtl, record); err != nil {
				return err
			}

			if switchingFromInjector {
				props.ResetDefaultBHPLimit()
				inj := well.Injection.Copy()
				inj.ResetBHPLimit()
				well.UpdateInjection(inj)
				updateWell = true
				state.EntityEvents.AddEvent(name, WellSwitchedInjectorProducer)
			}
			if well.UpdateProduction(props) {
				updateWell = true
			}
			if well.UpdatePrediction(false) {
				updateWell = true
			}
			if well.UpdateHasProduced() {
				updateWell = true
			}
			if updateWell {
				state.StepEvents.AddEvent(ProductionUpdate)
				state.EntityEvents.AddEvent(name, ProductionUpdate)
				state.Wells.Update(well)
			}

			// A history-matched well with zero observed rates and
			// banned crossflow cannot flow at all; close it.
			if !well.GetAllowCrossFlow() &&
				props.OilRate.Zero() && props.WaterRate.Zero() && props.GasRate.Zero() {
				logrus.Infof("Well %s is a history matched well with zero rate where crossflow is banned. This well will be closed at %.2f days",
					name, state.SimDays)
				if _, err := ctx.UpdateWellStatus(name, WellShut); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func handleWCONINJE(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		status, err := recordWellStatus(record)
		if err != nil {
			return err
		}

		for _, name := range names {
			if _, err := ctx.UpdateWellStatus(name, status); err != nil {
				return err
			}
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			updateWell := false

			inj := well.Injection.Copy()
			previousType := inj.InjectorType
			if err := inj.HandleWCONINJE(record, well.IsAvailableForGroupControl(), name); err != nil {
				return err
			}
			switchingFromProducer := well.IsProducer()

			if well.UpdateInjection(inj) {
				updateWell = true
			}
			if switchingFromProducer {
				state.EntityEvents.AddEvent(name, WellSwitchedInjectorProducer)
			}
			if well.UpdatePrediction(true) {
				updateWell = true
			}
			if well.UpdateHasInjected() {
				updateWell = true
			}
			if updateWell {
				state.StepEvents.AddEvent(InjectionUpdate)
				state.EntityEvents.AddEvent(name, InjectionUpdate)
				if previousType != inj.InjectorType {
					state.EntityEvents.AddEvent(name, InjectionTypeChanged)
				}
				state.Wells.Update(well)
			}

			// An injector with a zero rate limit and banned crossflow
			// cannot flow; close it with a note.
			if !well.GetAllowCrossFlow() {
				closeWell := (inj.HasControl(InjectorRATE) && inj.SurfaceInjectionRate.IsNumeric() && inj.SurfaceInjectionRate.Zero()) ||
					(inj.HasControl(InjectorRESV) && inj.ReservoirInjectionRate.IsNumeric() && inj.ReservoirInjectionRate.Zero())
				if closeWell {
					logrus.Infof("Well %s is an injector with zero rate where crossflow is banned. This well will be closed at %.2f days",
						name, state.SimDays)
					if _, err := ctx.UpdateWellStatus(name, WellShut); err != nil {
						return err
					}
				}
			}

			if current := state.Wells.Ref(name); current != nil && current.Status == WellOpen {
				state.EntityEvents.AddEvent(name, RequestOpenWell)
			}

			udqActive := state.UDQActive.Get()
			if inj.UpdateUDQActive(*state.UDQ.Read(), &udqActive) {
				state.UDQActive.Update(udqActive)
			}
			ctx.AffectedWell(name)
		}
	}
	return nil
}

func handleWCONINJH(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		status, err := recordWellStatus(record)
		if err != nil {
			return err
		}

		for _, name := range names {
			if _, err := ctx.UpdateWellStatus(name, status); err != nil {
				return err
			}
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			updateWell := false

			inj := well.Injection.Copy()
			previousType := inj.InjectorType
			if err := inj.HandleWCONINJH(record); err != nil {
				return err
			}
			switchingFromProducer := well.IsProducer()

			if well.UpdateInjection(inj) {
				updateWell = true
			}
			if switchingFromProducer {
				state.EntityEvents.AddEvent(name, WellSwitchedInjectorProducer)
			}
			if well.UpdatePrediction(false) {
				updateWell = true
			}
			if well.UpdateHasInjected() {
				updateWell = true
			}
			if updateWell {
				state.StepEvents.AddEvent(InjectionUpdate)
				state.EntityEvents.AddEvent(name, InjectionUpdate)
				if previousType != inj.InjectorType {
					state.EntityEvents.AddEvent(name, InjectionTypeChanged)
				}
				state.Wells.Update(well)
			}

			if !well.GetAllowCrossFlow() && inj.SurfaceInjectionRate.Zero() {
				logrus.Infof("Well %s is an injector with zero rate where crossflow is banned. This well will be closed at %.2f days",
					name, state.SimDays)
				if _, err := ctx.UpdateWellStatus(name, WellShut); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func handleWELTARG(ctx *HandlerContext) error {
	state := ctx.State()
	siFactorP := ctx.Units().Parse("Pressure").SIScaling()

	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		cmode := record.Item("CMODE").TrimmedString(0)
		newValue := record.Item("NEW_VALUE").UDA(0)

		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			update := false
			if well.IsProducer() {
				props := well.Production.Copy()
				if err := props.HandleWELTARG(cmode, newValue, siFactorP); err != nil {
					return err
				}
				update = well.UpdateProduction(props)
				udqActive := state.UDQActive.Get()
				if props.UpdateUDQActive(*state.UDQ.Read(), &udqActive) {
					state.UDQActive.Update(udqActive)
				}
			} else {
				inj := well.Injection.Copy()
				if err := inj.HandleWELTARG(cmode, newValue, siFactorP); err != nil {
					return err
				}
				update = well.UpdateInjection(inj)
				udqActive := state.UDQActive.Get()
				if inj.UpdateUDQActive(*state.UDQ.Read(), &udqActive) {
					state.UDQActive.Update(udqActive)
				}
			}
			if cmode == "GUID" {
				value, err := newValue.Double()
				if err != nil {
					return err
				}
				if well.GuideRate != value {
					well.GuideRate = value
					update = true
				}
			}
			if update {
				if well.IsProducer() {
					state.StepEvents.AddEvent(ProductionUpdate)
					state.EntityEvents.AddEvent(name, ProductionUpdate)
				} else {
					state.StepEvents.AddEvent(InjectionUpdate)
					state.EntityEvents.AddEvent(name, InjectionUpdate)
				}
				state.Wells.Update(well)
			}
			ctx.AffectedWell(name)
		}
	}
	return nil
}

func handleWTMULT(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		control := record.Item("CONTROL").TrimmedString(0)
		factor := record.Item("FACTOR").UDA(0)
		num := record.Item("NUM").Int(0)
		if record.Item("NUM").DefaultApplied(0) {
			num = 1
		}

		if factor.IsReference() {
			return NewInputError(ctx.Location(),
				"Use of UDA value: %s is not supported as multiplier", factor.Quantity)
		}
		if state.UDQ.Read().Has(control) {
			return NewInputError(ctx.Location(),
				"Use of UDA value: %s is not supported for control target", control)
		}
		if num != 1 {
			return NewInputError(ctx.Location(), "Only NUM=1 is supported in WTMULT keyword")
		}
		if control == "GUID" {
			return NewLogicError("multiplying guide rate is not implemented")
		}

		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			if well.IsInjector() {
				inj := well.Injection.Copy()
				if err := inj.HandleWTMULT(control, factor.Value); err != nil {
					return err
				}
				well.UpdateInjection(inj)
				state.StepEvents.AddEvent(InjectionUpdate)
				state.EntityEvents.AddEvent(name, InjectionUpdate)
			} else {
				props := well.Production.Copy()
				if err := props.HandleWTMULT(control, factor.Value); err != nil {
					return err
				}
				well.UpdateProduction(props)
				state.StepEvents.AddEvent(ProductionUpdate)
				state.EntityEvents.AddEvent(name, ProductionUpdate)
			}
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWELOPEN(ctx *HandlerContext) error {
	state := ctx.State()

	// If every connection filter item is defaulted only the well status
	// changes; otherwise only connection states change.
	connDefaulted := func(record DeckRecord) bool {
		for _, item := range []string{"I", "J", "K", "FIRST", "LAST"} {
			if record.Has(item) && !record.Item(item).DefaultApplied(0) {
				return false
			}
		}
		return true
	}

	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		statusStr := record.Item("STATUS").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}

		if connDefaulted(record) {
			status, err := WellStatusFromString(statusStr)
			if err != nil {
				return err
			}
			for _, name := range names {
				updated, err := ctx.UpdateWellStatus(name, status)
				if err != nil {
					return err
				}
				ctx.AffectedWell(name)
				if updated {
					ctx.RecordWellStructureChange()
				}
				if status == WellOpen {
					state.EntityEvents.AddEvent(name, RequestOpenWell)
				}
			}
			continue
		}

		connState, err := ConnectionStateFromString(statusStr)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			conns := well.Connections.Copy()
			if conns.SetState(connState, record) {
				well.Connections = &conns
				state.Wells.Update(well)
			}
			ctx.AffectedWell(name)
			ctx.RecordWellStructureChange()
			state.StepEvents.AddEvent(CompletionChange)
		}
	}
	return nil
}

func handleWPIMULT(ctx *HandlerContext) error {
	state := ctx.State()

	// Filter items that are defaulted, or negative, leave the record in
	// whole-well form. Whole-well records are deferred to the end of
	// the step with only the last record per well surviving; records
	// with explicit filters apply immediately.
	wholeWell := func(record DeckRecord) bool {
		for _, item := range []string{"I", "J", "K", "FIRST", "LAST"} {
			if record.Has(item) && !record.Item(item).DefaultApplied(0) && record.Item(item).Int(0) >= 0 {
				return false
			}
		}
		return true
	}

	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}

		if wholeWell(record) {
			if ctx.wpimultGlobal == nil {
				return NewLogicError("deferred WPIMULT accumulator missing in handleWPIMULT")
			}
			factor := record.Item("WELLPI").Double(0)
			for _, name := range names {
				ctx.wpimultGlobal[name] = factor
			}
			continue
		}

		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			conns := well.Connections.Copy()
			if conns.ApplyWPIMULT(record) {
				well.Connections = &conns
				state.Wells.Update(well)
			}
		}
	}
	return nil
}

func handleWELPI(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL_NAME").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		targetPI := record.Item("STEADY_STATE_PRODUCTIVITY_OR_INJECTIVITY_INDEX_VALUE").Double(0)

		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			var scaling float64 = 1.0
			if current, ok := state.TargetWellPI[name]; ok && current != 0 {
				scaling = targetPI / current
			}
			if well.ApplyProdIndexScaling(scaling) {
				state.Wells.Update(well)
			}
			state.TargetWellPI[name] = targetPI
			state.StepEvents.AddEvent(WellProductivityIndex)
			state.EntityEvents.AddEvent(name, WellProductivityIndex)
			ctx.AffectedWell(name)
		}
	}
	return nil
}

func handleWLIST(ctx *HandlerContext) error {
	state := ctx.State()
	const legalActions = "NEW:ADD:DEL:MOV"

	for _, record := range ctx.Keyword().Records() {
		name := record.Item("NAME").TrimmedString(0)
		action := record.Item("ACTION").TrimmedString(0)
		wellArgs := record.Item("WELLS").Strings()

		if !strings.Contains(legalActions, action) || action == "" {
			return fmt.Errorf("the action:%s is not recognized", action)
		}

		var wells []string
		for _, arg := range wellArgs {
			arg = strings.TrimSpace(arg)
			names, err := ctx.WellNames(arg, true)
			if err != nil {
				return err
			}
			if len(names) == 0 && !strings.Contains(arg, "*") {
				return fmt.Errorf("the well: %s has not been defined in the WELSPECS", arg)
			}
			wells = append(wells, names...)
		}

		if !strings.HasPrefix(name, "*") {
			return fmt.Errorf("the list name in WLIST must start with a '*'")
		}

		wlm := state.WList.Get()
		if action == "NEW" {
			wlm.NewList(name, wells)
		}
		if !wlm.HasList(name) {
			return fmt.Errorf("invalid well list: %s", name)
		}
		switch action {
		case "MOV":
			for _, well := range wells {
				wlm.DelWellFromAll(well)
			}
			for _, well := range wells {
				wlm.AddWell(well, name)
			}
		case "ADD":
			for _, well := range wells {
				wlm.AddWell(well, name)
			}
		case "DEL":
			for _, well := range wells {
				wlm.DelWell(well, name)
			}
		}
		state.WList.Update(wlm)
	}
	return nil
}

func handleWEFAC(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELLNAME").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		factor := record.Item("EFFICIENCY_FACTOR").Double(0)
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			if well.EfficiencyFactor != factor {
				well.EfficiencyFactor = factor
				state.EntityEvents.AddEvent(name, WellGroupEfficiencyUpdate)
				state.StepEvents.AddEvent(WellGroupEfficiencyUpdate)
				state.Wells.Update(well)
			}
		}
	}
	return nil
}

func handleWECON(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			econ := well.Econ.Copy()
			econ.FromWECON(record)
			if well.UpdateEcon(econ) {
				state.Wells.Update(well)
			}
		}
	}
	return nil
}

func handleWTEST(ctx *HandlerContext) error {
	state := ctx.State()
	config := state.WTest.Get()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			config.AddWell(name, record, ctx.CurrentStep())
		}
	}
	state.WTest.Update(config)
	return nil
}

func handleWTEMP(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		temp := record.Item("TEMP").SIDouble(0)
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			if well.IsProducer() || well.Injection.Temperature == temp {
				continue
			}
			inj := well.Injection.Copy()
			inj.Temperature = temp
			if well.UpdateInjection(inj) {
				state.Wells.Update(well)
			}
		}
	}
	return nil
}

// handleWINJTEMP mirrors WTEMP for the steam/water injection variant;
// only the injected fluid temperature is tracked.
func handleWINJTEMP(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		temp := record.Item("TEMPERATURE").SIDouble(0)
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			if well.IsProducer() || well.Injection.Temperature == temp {
				continue
			}
			inj := well.Injection.Copy()
			inj.Temperature = temp
			if well.UpdateInjection(inj) {
				state.Wells.Update(well)
			}
		}
	}
	return nil
}

func handleWTRACER(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
		}
		concentration := record.Item("CONCENTRATION").UDA(0).SI()
		tracer := record.Item("TRACER").TrimmedString(0)
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			props := NewWellTracerProperties()
			if well.Tracer != nil {
				props = well.Tracer.Copy()
			}
			props.SetConcentration(tracer, concentration)
			well.Tracer = &props
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWSALT(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			props := WellBrineProperties{}
			if well.Brine != nil {
				props = well.Brine.Copy()
			}
			props.HandleWSALT(record)
			well.Brine = &props
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWFOAM(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			props := WellFoamProperties{}
			if well.Foam != nil {
				props = well.Foam.Copy()
			}
			props.HandleWFOAM(record)
			well.Foam = &props
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWPOLYMER(ctx *HandlerContext) error {
	return applyPolymerRecord(ctx, (*WellPolymerProperties).HandleWPOLYMER)
}

func handleWPMITAB(ctx *HandlerContext) error {
	return applyPolymerRecord(ctx, (*WellPolymerProperties).HandleWPMITAB)
}

func handleWSKPTAB(ctx *HandlerContext) error {
	return applyPolymerRecord(ctx, (*WellPolymerProperties).HandleWSKPTAB)
}

func applyPolymerRecord(ctx *HandlerContext, apply func(*WellPolymerProperties, DeckRecord)) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			props := WellPolymerProperties{}
			if well.Polymer != nil {
				props = well.Polymer.Copy()
			}
			apply(&props, record)
			well.Polymer = &props
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWMICP(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			props := WellMICPProperties{}
			if well.MICP != nil {
				props = well.MICP.Copy()
			}
			props.HandleWMICP(record)
			well.MICP = &props
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWSOLVENT(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		fraction := record.Item("SOLVENT_FRACTION").UDA(0).SI()
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			if well.IsProducer() || well.Injection.InjectorType != InjectorGas {
				return fmt.Errorf("the WSOLVENT keyword can only be applied to gas injectors")
			}
			if well.SolventFraction != fraction {
				well.SolventFraction = fraction
				state.Wells.Update(well)
			}
		}
	}
	return nil
}

func handleWINJMULT(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL_NAME").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			if well.IsProducer() {
				return NewInputError(ctx.Location(),
					"Keyword WINJMULT can only apply to injectors, but well %s is a producer", name)
			}
			mult := WellInjMult{}
			if well.InjMult != nil {
				mult = well.InjMult.Copy()
			}
			if err := mult.HandleWINJMULT(record, ctx.Location()); err != nil {
				return err
			}
			well.InjMult = &mult
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWGRUPCON(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, false)
		if err != nil {
			return err
		}
		available := record.Item("GROUP_CONTROLLED").Bool(0)
		if record.Item("GROUP_CONTROLLED").DefaultApplied(0) {
			available = true
		}
		guideRate := record.Item("GUIDE_RATE").Double(0)
		scaling := record.Item("SCALING_FACTOR").Double(0)
		if record.Item("SCALING_FACTOR").DefaultApplied(0) {
			scaling = 1.0
		}
		phase := record.Item("PHASE").TrimmedString(0)

		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			changed := well.GroupControllable != available ||
				well.GuideRate != guideRate ||
				well.GuideRatePhase != phase ||
				well.GuideRateScaling != scaling
			if !changed {
				continue
			}
			well.GroupControllable = available
			well.GuideRate = guideRate
			well.GuideRatePhase = phase
			well.GuideRateScaling = scaling

			config := state.GuideRate.Get()
			config.UpdateWell(name, guideRate, phase, scaling)
			state.GuideRate.Update(config)
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWHISTCTL(ctx *HandlerContext) error {
	state := ctx.State()
	record := ctx.Keyword().Record(0)
	cmodeStr := record.Item("CMODE").TrimmedString(0)
	cmode, err := ProducerCModeFromString(cmodeStr)
	if err != nil {
		return err
	}

	if cmode != ProducerNONE {
		if !EffectiveHistoryControl(cmode) {
			logrus.Warnf("The WHISTCTL keyword specifies an un-supported control mode %s, which makes WHISTCTL keyword not affect the simulation at all", cmodeStr)
		} else {
			state.WhistCtl = cmode
		}
	}

	if record.Item("BPH_TERMINATE").TrimmedString(0) == "YES" {
		msg := "Problem with {keyword}\nIn {file} line {line}\nSetting item 2 in {keyword} to 'YES' to stop the run is not supported"
		if err := ctx.parseContext.HandleError(UnsupportedTerminateIfBHP, msg, ctx.Location(), ctx.errors); err != nil {
			return err
		}
	}

	for _, name := range state.Wells.Names() {
		well, err := state.Wells.Get(name)
		if err != nil {
			return err
		}
		if well.Production.WhistctlMode == cmode {
			continue
		}
		props := well.Production.Copy()
		props.WhistctlMode = cmode
		well.UpdateProduction(props)
		state.Wells.Update(well)
	}
	return nil
}

func handleWRFT(ctx *HandlerContext) error {
	state := ctx.State()
	config := state.RFT.Get()
	for _, record := range ctx.Keyword().Records() {
		if !record.Has("WELL") {
			continue
		}
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
		}
		for _, name := range names {
			config.UpdateRFT(name, RFTYes)
		}
	}
	config.FirstOpen = true
	state.RFT.Update(config)
	return nil
}

func rftModeFromString(s string) RFTMode {
	switch s {
	case "YES":
		return RFTYes
	case "REPT":
		return RFTRepeat
	case "TIMESTEP":
		return RFTTimestep
	case "FOPN":
		return RFTOnOpen
	default:
		return RFTNo
	}
}

func handleWRFTPLT(ctx *HandlerContext) error {
	state := ctx.State()
	config := state.RFT.Get()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
			continue
		}
		rftMode := rftModeFromString(record.Item("OUTPUT_RFT").TrimmedString(0))
		pltMode := rftModeFromString(record.Item("OUTPUT_PLT").TrimmedString(0))
		for _, name := range names {
			config.UpdateRFT(name, rftMode)
			config.UpdatePLT(name, pltMode)
		}
	}
	state.RFT.Update(config)
	return nil
}

// validatePAvg enforces the weighting factor ranges shared by WPAVE and
// WWPAVE.
func validatePAvg(pavg PAvg, location KeywordLocation) error {
	if pavg.InnerWeight > 1.0 {
		return NewInputError(location,
			"Inner block weighting F1 must not exceed 1.0. Got %g", pavg.InnerWeight)
	}
	if pavg.ConnWeight < 0.0 || pavg.ConnWeight > 1.0 {
		return NewInputError(location,
			"Connection weighting factor F2 must be between zero and one inclusive. Got %g instead.", pavg.ConnWeight)
	}
	return nil
}

func handleWPAVE(ctx *HandlerContext) error {
	state := ctx.State()
	pavg := state.PAvg.Get()
	pavg.FromWPAVE(ctx.Keyword().Record(0))
	if err := validatePAvg(pavg, ctx.Location()); err != nil {
		return err
	}
	for _, name := range state.Wells.Names() {
		well, err := state.Wells.Get(name)
		if err != nil {
			return err
		}
		if well.UpdatePAvg(pavg) {
			state.Wells.Update(well)
		}
	}
	state.PAvg.Update(pavg)
	return nil
}

func handleWWPAVE(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
		}
		pavg := NewPAvg()
		pavg.FromWPAVE(record)
		if err := validatePAvg(pavg, ctx.Location()); err != nil {
			return err
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			if well.UpdatePAvg(pavg) {
				state.Wells.Update(well)
			}
		}
	}
	return nil
}

func handleWPAVEDEP(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
		}
		item := record.Item("REFDEPTH")
		if item.DefaultApplied(0) {
			continue
		}
		depth := item.SIDouble(0)
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			pavg := NewPAvg()
			if well.BlockAvg != nil {
				pavg = well.BlockAvg.Copy()
			}
			pavg.SetRefDepth(depth)
			if well.UpdatePAvg(pavg) {
				state.Wells.Update(well)
			}
		}
	}
	return nil
}

func handleWDFAC(ctx *HandlerContext) error {
	return applyWDFACRecord(ctx, "WELL", (*WDFAC).UpdateWDFAC)
}

func handleWDFACCOR(ctx *HandlerContext) error {
	return applyWDFACRecord(ctx, "WELLNAME", (*WDFAC).UpdateWDFACCOR)
}

func applyWDFACRecord(ctx *HandlerContext, wellItem string, apply func(*WDFAC, DeckRecord)) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item(wellItem).TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			dfac := WDFAC{}
			if well.DFac != nil {
				dfac = well.DFac.Copy()
			}
			apply(&dfac, record)
			well.DFac = &dfac
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWVFPDP(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			wvfpdp := WVFPDP{}
			if well.VFPDelta != nil {
				wvfpdp = well.VFPDelta.Copy()
			}
			wvfpdp.HandleWVFPDP(record)
			well.VFPDelta = &wvfpdp
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWVFPEXP(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
		}
		for _, name := range names {
			well, err := state.Wells.Get(name)
			if err != nil {
				return err
			}
			wvfpexp := WVFPEXP{}
			if well.VFPExplicit != nil {
				wvfpexp = well.VFPExplicit.Copy()
			}
			if err := wvfpexp.HandleWVFPEXP(record); err != nil {
				return err
			}
			well.VFPExplicit = &wvfpexp
			state.Wells.Update(well)
		}
	}
	return nil
}

func handleWLIFTOPT(ctx *HandlerContext) error {
	state := ctx.State()
	glo := state.GasLift.Get()
	for _, record := range ctx.Keyword().Records() {
		pattern := record.Item("WELL").TrimmedString(0)
		names, err := ctx.WellNames(pattern, true)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			if err := ctx.InvalidNamePattern(pattern); err != nil {
				return err
			}
		}

		useOptimizer := record.Item("USE_OPTIMIZER").Bool(0)
		allocExtra := record.Item("ALLOCATE_EXTRA_LIFT_GAS").Bool(0)
		weight := record.Item("WEIGHT_FACTOR").Double(0)
		incWeight := record.Item("DELTA_GAS_RATE_WEIGHT_FACTOR").Double(0)
		minRate := record.Item("MIN_LIFT_GAS_RATE").SIDouble(0)
		maxRateItem := record.Item("MAX_LIFT_GAS_RATE")

		for _, name := range names {
			well := GasLiftWell{
				Name:         name,
				UseOptimizer: useOptimizer,
				WeightFactor: weight,
				IncWeight:    incWeight,
				MinRate:      minRate,
				AllocExtra:   allocExtra,
			}
			if !maxRateItem.DefaultApplied(0) {
				well.MaxRate = maxRateItem.SIDouble(0)
			}
			glo.AddWell(well)
		}
	}
	state.GasLift.Update(glo)
	return nil
}
