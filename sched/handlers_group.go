package sched

// groupHandlers is the registry for group tree and group control
// keywords.
var groupHandlers = map[string]keywordHandler{
	"GCONINJE": handleGCONINJE,
	"GCONPROD": handleGCONPROD,
	"GCONSALE": handleGCONSALE,
	"GCONSUMP": handleGCONSUMP,
	"GECON":    handleGECON,
	"GEFAC":    handleGEFAC,
	"GLIFTOPT": handleGLIFTOPT,
	"GPMAINT":  handleGPMAINT,
	"GRUPTREE": handleGRUPTREE,
	"GUIDERAT": handleGUIDERAT,
	"LINCOM":   handleLINCOM,
}

func groupNamesOrError(ctx *HandlerContext, pattern string) ([]string, error) {
	names := ctx.GroupNames(pattern)
	if len(names) == 0 {
		if err := ctx.InvalidNamePattern(pattern); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func handleGRUPTREE(ctx *HandlerContext) error {
	for _, record := range ctx.Keyword().Records() {
		child, err := ctx.TrimWGName(record.Item("CHILD_GROUP").String(0))
		if err != nil {
			return err
		}
		parent, err := ctx.TrimWGName(record.Item("PARENT_GROUP").String(0))
		if err != nil {
			return err
		}
		if parent == "" {
			parent = "FIELD"
		}
		ctx.AddGroup(parent)
		ctx.AddGroup(child)
		if err := ctx.AddGroupToGroup(parent, child); err != nil {
			return err
		}
	}
	return nil
}

func handleGCONPROD(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern, err := ctx.TrimWGName(record.Item("GROUP").String(0))
		if err != nil {
			return err
		}
		names, err := groupNamesOrError(ctx, pattern)
		if err != nil {
			return err
		}

		cmode, err := GroupProducerCModeFromString(record.Item("CONTROL_MODE").TrimmedString(0))
		if err != nil {
			return err
		}
		respondToParent := record.Item("RESPOND_TO_PARENT").Bool(0) ||
			record.Item("RESPOND_TO_PARENT").DefaultApplied(0)

		var limits GroupLimitAction
		if limits.AllRates, err = ExceedActionFromString(record.Item("EXCEED_PROC").TrimmedString(0)); err != nil {
			return err
		}
		if limits.Water, err = ExceedActionFromString(record.Item("WATER_EXCEED_PROCEDURE").TrimmedString(0)); err != nil {
			return err
		}
		if limits.Gas, err = ExceedActionFromString(record.Item("GAS_EXCEED_PROCEDURE").TrimmedString(0)); err != nil {
			return err
		}
		if limits.Liquid, err = ExceedActionFromString(record.Item("LIQUID_EXCEED_PROCEDURE").TrimmedString(0)); err != nil {
			return err
		}

		guideRateDef, err := GuideRateProdTargetFromString(record.Item("GUIDE_RATE_DEF").TrimmedString(0))
		if err != nil {
			return err
		}
		switch guideRateDef {
		case GuideRateTargetInjV, GuideRateTargetPotn, GuideRateTargetForm:
			msg := "Problem with {keyword}\nIn {file} line {line}\nThe supplied guide rate phase is ignored"
			if err := ctx.parseContext.HandleError(ScheduleIgnoredGuideRate, msg, ctx.Location(), ctx.errors); err != nil {
				return err
			}
		}

		for _, name := range names {
			group, err := state.Groups.Get(name)
			if err != nil {
				return err
			}
			props := GroupProductionProperties{GroupName: name}
			if group.Production != nil {
				props = group.Production.Copy()
			}

			props.CMode = cmode
			props.OilTarget = record.Item("OIL_TARGET").UDA(0)
			props.WaterTarget = record.Item("WATER_TARGET").UDA(0)
			props.GasTarget = record.Item("GAS_TARGET").UDA(0)
			props.LiquidTarget = record.Item("LIQUID_TARGET").UDA(0)
			props.ResVTarget = record.Item("RESERVOIR_FLUID_TARGET").SIDouble(0)
			props.LimitAction = limits
			props.AvailableGroupControl = (respondToParent || cmode == GroupProdFLD) && name != "FIELD"

			// A rate target only constrains the group when the matching
			// exceed procedure says RATE and the target was actually
			// given.
			props.ControlBits = int(cmode)
			if limits.AllRates == ExceedRate && !record.Item("OIL_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupProdORAT)
			}
			if (limits.AllRates == ExceedRate || limits.Water == ExceedRate) &&
				!record.Item("WATER_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupProdWRAT)
			}
			if (limits.AllRates == ExceedRate || limits.Gas == ExceedRate) &&
				!record.Item("GAS_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupProdGRAT)
			}
			if (limits.AllRates == ExceedRate || limits.Liquid == ExceedRate) &&
				!record.Item("LIQUID_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupProdLRAT)
			}
			if !record.Item("RESERVOIR_FLUID_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupProdRESV)
			}

			// FIELD carries no guide rate; a zero guide rate means
			// "distribute by potential".
			if name != "FIELD" {
				props.GuideRate = record.Item("GUIDE_RATE").Double(0)
				if props.GuideRate == 0 {
					props.GuideRateDef = GuideRateTargetPotn
				} else {
					props.GuideRateDef = guideRateDef
				}
			}

			if group.UpdateProduction(props) {
				state.StepEvents.AddEvent(GroupProductionUpdate)
				state.EntityEvents.AddEvent(name, GroupProductionUpdate)
				state.Groups.Update(group)

				config := state.GuideRate.Get()
				config.UpdateProductionGroup(group)
				state.GuideRate.Update(config)
			}

			udqActive := state.UDQActive.Get()
			if props.UpdateUDQActive(*state.UDQ.Read(), &udqActive) {
				state.UDQActive.Update(udqActive)
			}
		}
	}
	return nil
}

func handleGCONINJE(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern, err := ctx.TrimWGName(record.Item("GROUP").String(0))
		if err != nil {
			return err
		}
		names, err := groupNamesOrError(ctx, pattern)
		if err != nil {
			return err
		}

		phase, err := PhaseFromString(record.Item("PHASE").TrimmedString(0))
		if err != nil {
			return err
		}
		cmode, err := GroupInjectorCModeFromString(record.Item("CONTROL_MODE").TrimmedString(0))
		if err != nil {
			return err
		}
		respondToParent := record.Item("RESPOND_TO_PARENT").Bool(0) ||
			record.Item("RESPOND_TO_PARENT").DefaultApplied(0)

		for _, name := range names {
			group, err := state.Groups.Get(name)
			if err != nil {
				return err
			}
			props := GroupInjectionProperties{GroupName: name, Phase: phase}
			if current, ok := group.Injection[phase]; ok {
				props = current.Copy()
			}

			props.CMode = cmode
			props.SurfaceTarget = record.Item("SURFACE_TARGET").UDA(0)
			props.ReservoirTarget = record.Item("RESV_TARGET").UDA(0)
			props.ReinjectionTarget = record.Item("REINJ_TARGET").UDA(0)
			props.VoidageTarget = record.Item("VOIDAGE_TARGET").UDA(0)
			props.ReinjectionGroup = record.Item("REINJECT_GROUP").TrimmedString(0)
			props.VoidageGroup = record.Item("VOIDAGE_GROUP").TrimmedString(0)
			props.AvailableGroupControl = (respondToParent || cmode == GroupInjFLD) && name != "FIELD"

			props.ControlBits = int(cmode)
			if !record.Item("SURFACE_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupInjRATE)
			}
			if !record.Item("RESV_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupInjRESV)
			}
			if !record.Item("REINJ_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupInjREIN)
			}
			if !record.Item("VOIDAGE_TARGET").DefaultApplied(0) {
				props.ControlBits |= int(GroupInjVREP)
			}

			if group.UpdateInjection(props) {
				state.StepEvents.AddEvent(GroupInjectionUpdate)
				state.EntityEvents.AddEvent(name, GroupInjectionUpdate)
				state.Groups.Update(group)

				config := state.GuideRate.Get()
				config.UpdateInjectionGroup(group, phase)
				state.GuideRate.Update(config)
			}

			udqActive := state.UDQActive.Get()
			if props.UpdateUDQActive(*state.UDQ.Read(), &udqActive) {
				state.UDQActive.Update(udqActive)
			}
		}
	}
	return nil
}

func handleGCONSALE(ctx *HandlerContext) error {
	state := ctx.State()
	sale := state.GConSale.Get()
	for _, record := range ctx.Keyword().Records() {
		pattern, err := ctx.TrimWGName(record.Item("GROUP").String(0))
		if err != nil {
			return err
		}
		names, err := groupNamesOrError(ctx, pattern)
		if err != nil {
			return err
		}
		for _, name := range names {
			sale.Add(name,
				record.Item("SALES_TARGET").UDA(0),
				record.Item("MAX_SALES_RATE").UDA(0),
				record.Item("MIN_SALES_RATE").UDA(0),
				record.Item("MAX_PROC").TrimmedString(0))

			// A sales contract makes the group a gas injector even when
			// no GCONINJE names it.
			group, err := state.Groups.Get(name)
			if err != nil {
				return err
			}
			props := GroupInjectionProperties{GroupName: name, Phase: PhaseGas}
			if current, ok := group.Injection[PhaseGas]; ok {
				props = current.Copy()
			}
			if group.UpdateInjection(props) {
				state.StepEvents.AddEvent(GroupInjectionUpdate)
				state.EntityEvents.AddEvent(name, GroupInjectionUpdate)
				state.Groups.Update(group)
			}
		}
	}
	state.GConSale.Update(sale)
	return nil
}

func handleGCONSUMP(ctx *HandlerContext) error {
	state := ctx.State()
	sump := state.GConSump.Get()
	for _, record := range ctx.Keyword().Records() {
		pattern, err := ctx.TrimWGName(record.Item("GROUP").String(0))
		if err != nil {
			return err
		}
		names, err := groupNamesOrError(ctx, pattern)
		if err != nil {
			return err
		}
		for _, name := range names {
			sump.Add(name,
				record.Item("GAS_CONSUMP_RATE").UDA(0),
				record.Item("GAS_IMPORT_RATE").UDA(0),
				record.Item("NETWORK_NODE").TrimmedString(0))
		}
	}
	state.GConSump.Update(sump)
	return nil
}

func handleGECON(ctx *HandlerContext) error {
	state := ctx.State()
	econ := state.GEcon.Get()
	for _, record := range ctx.Keyword().Records() {
		pattern, err := ctx.TrimWGName(record.Item("GROUP").String(0))
		if err != nil {
			return err
		}
		names, err := groupNamesOrError(ctx, pattern)
		if err != nil {
			return err
		}
		for _, name := range names {
			econ.AddGroup(name, record)
		}
	}
	state.GEcon.Update(econ)
	return nil
}

func handleGEFAC(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern, err := ctx.TrimWGName(record.Item("GROUP").String(0))
		if err != nil {
			return err
		}
		names, err := groupNamesOrError(ctx, pattern)
		if err != nil {
			return err
		}
		factor := record.Item("EFFICIENCY_FACTOR").Double(0)
		if record.Item("EFFICIENCY_FACTOR").DefaultApplied(0) {
			factor = 1.0
		}
		useInNetwork := record.Item("TRANSFER_EXT_NET").Bool(0) ||
			record.Item("TRANSFER_EXT_NET").DefaultApplied(0)

		for _, name := range names {
			group, err := state.Groups.Get(name)
			if err != nil {
				return err
			}
			if group.EfficiencyFactor == factor && group.UseEfficiencyInNetwork == useInNetwork {
				continue
			}
			group.EfficiencyFactor = factor
			group.UseEfficiencyInNetwork = useInNetwork
			state.StepEvents.AddEvent(WellGroupEfficiencyUpdate)
			state.EntityEvents.AddEvent(name, WellGroupEfficiencyUpdate)
			state.Groups.Update(group)
		}
	}
	return nil
}

func handleGLIFTOPT(ctx *HandlerContext) error {
	state := ctx.State()
	glo := state.GasLift.Get()
	for _, record := range ctx.Keyword().Records() {
		pattern, err := ctx.TrimWGName(record.Item("GROUP_NAME").String(0))
		if err != nil {
			return err
		}
		names, err := groupNamesOrError(ctx, pattern)
		if err != nil {
			return err
		}

		// Defaulted limits mean "no limit", encoded as negative.
		maxLiftGas := -1.0
		if item := record.Item("MAX_LIFT_GAS_SUPPLY"); !item.DefaultApplied(0) {
			maxLiftGas = item.SIDouble(0)
		}
		maxTotalGas := -1.0
		if item := record.Item("MAX_TOTAL_GAS_RATE"); !item.DefaultApplied(0) {
			maxTotalGas = item.SIDouble(0)
		}

		for _, name := range names {
			glo.AddGroup(GasLiftGroup{
				Name:        name,
				MaxLiftGas:  maxLiftGas,
				MaxTotalGas: maxTotalGas,
			})
		}
	}
	state.GasLift.Update(glo)
	return nil
}

func handleGPMAINT(ctx *HandlerContext) error {
	state := ctx.State()
	for _, record := range ctx.Keyword().Records() {
		pattern, err := ctx.TrimWGName(record.Item("GROUP").String(0))
		if err != nil {
			return err
		}
		names, err := groupNamesOrError(ctx, pattern)
		if err != nil {
			return err
		}
		target := record.Item("FLOW_TARGET").TrimmedString(0)

		for _, name := range names {
			group, err := state.Groups.Get(name)
			if err != nil {
				return err
			}
			if target == "NONE" {
				group.GPMaint = nil
			} else {
				group.GPMaint = NewGPMaint(ctx.CurrentStep(), record)
			}
			state.Groups.Update(group)
		}
	}
	return nil
}

func handleGUIDERAT(ctx *HandlerContext) error {
	state := ctx.State()
	model, err := NewGuideRateModel(ctx.Keyword().Record(0))
	if err != nil {
		return err
	}
	config := state.GuideRate.Get()
	if config.UpdateModel(model) {
		state.GuideRate.Update(config)
	}
	return nil
}

func handleLINCOM(ctx *HandlerContext) error {
	state := ctx.State()
	record := ctx.Keyword().Record(0)
	config := state.GuideRate.Get()
	if !config.HasModel {
		return NewInputError(ctx.Location(),
			"The LINCOM keyword must be preceded by a GUIDERAT keyword")
	}
	if config.Model.UpdateLINCOM(
		record.Item("ALPHA").UDA(0),
		record.Item("BETA").UDA(0),
		record.Item("GAMMA").UDA(0)) {
		state.GuideRate.Update(config)
	}
	return nil
}
