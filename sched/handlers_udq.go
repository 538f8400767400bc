package sched

import "sort"

// udqHandlers is the registry for user-defined quantity keywords.
var udqHandlers = map[string]keywordHandler{
	"UDQ": handleUDQ,
	"UDT": handleUDT,
}

func handleUDQ(ctx *HandlerContext) error {
	state := ctx.State()
	config := state.UDQ.Get()
	for _, record := range ctx.Keyword().Records() {
		if err := config.AddRecord(record, ctx.Location(), ctx.CurrentStep()); err != nil {
			return err
		}
	}
	state.UDQ.Update(config)
	return nil
}

func handleUDT(ctx *HandlerContext) error {
	state := ctx.State()
	keyword := ctx.Keyword()
	if keyword.Size() < 3 {
		return NewInputError(ctx.Location(), "UDT needs a header, an argument record and a value record")
	}

	header := keyword.Record(0)
	name := header.Item("TABLE_NAME").TrimmedString(0)
	if !validUDQName(name) {
		return NewInputError(ctx.Location(), "Invalid table name %q in UDT", name)
	}
	if dim := header.Item("DIMENSIONS").Int(0); dim != 1 {
		return NewInputError(ctx.Location(), "Only one dimensional UDTs are supported, got %d", dim)
	}

	argRecord := keyword.Record(1)
	var interpolation UDTInterpolation
	switch argRecord.Item("INTERPOLATION_TYPE").TrimmedString(0) {
	case "NV":
		interpolation = UDTNearest
	case "LC":
		interpolation = UDTLinearClamp
	case "LL":
		interpolation = UDTLinearExtrapolate
	default:
		return NewInputError(ctx.Location(),
			"Unsupported interpolation type %q in UDT %s",
			argRecord.Item("INTERPOLATION_TYPE").TrimmedString(0), name)
	}

	xValues := argRecord.Item("INTERPOLATION_POINTS").Doubles()
	yValues := keyword.Record(2).Item("TABLE_VALUES").Doubles()
	if len(xValues) < 2 {
		return NewInputError(ctx.Location(), "UDT %s needs at least two interpolation points", name)
	}
	if !sort.Float64sAreSorted(xValues) {
		return NewInputError(ctx.Location(), "UDT %s interpolation points must be increasing", name)
	}
	for n := 1; n < len(xValues); n++ {
		if xValues[n] == xValues[n-1] {
			return NewInputError(ctx.Location(), "UDT %s interpolation points must be distinct", name)
		}
	}
	if len(xValues) != len(yValues) {
		return NewInputError(ctx.Location(),
			"UDT %s has %d interpolation points but %d values", name, len(xValues), len(yValues))
	}

	config := state.UDQ.Get()
	config.AddTable(name, UDT{XValues: xValues, YValues: yValues, Interpolation: interpolation})
	state.UDQ.Update(config)
	return nil
}
