package sched

import "github.com/sirupsen/logrus"

// mswHandlers is the registry for multisegment well keywords. A WELSEGS
// keyword must be paired with a COMPSEGS for the same well within the
// report step; the dispatcher validates the pairing when the step's
// keywords have all been processed.
var mswHandlers = map[string]keywordHandler{
	"WELSEGS":  handleWELSEGS,
	"COMPSEGS": handleCOMPSEGS,
}

func handleWELSEGS(ctx *HandlerContext) error {
	state := ctx.State()
	segments, err := NewWellSegments(ctx.Keyword())
	if err != nil {
		return err
	}
	name := segments.WellName
	well, err := state.Wells.Get(name)
	if err != nil {
		// Inside a conditional action the well may be forward-declared:
		// its WELSPECS only runs when the action triggers.
		if ctx.inAction {
			location := ctx.Location()
			logrus.Warnf("Well %s in WELSEGS at %s line %d is not defined yet. Expecting it to be defined with WELSPECS before the action triggers.",
				name, location.Filename, location.Lineno)
			return nil
		}
		return err
	}
	well.Segments = &segments
	state.Wells.Update(well)
	ctx.WelsegsHandled(name)
	ctx.RecordWellStructureChange()
	ctx.AffectedWell(name)
	return nil
}

func handleCOMPSEGS(ctx *HandlerContext) error {
	state := ctx.State()
	keyword := ctx.Keyword()
	if keyword.Empty() {
		return NewInputError(ctx.Location(), "COMPSEGS without records")
	}
	name := keyword.Record(0).Item("WELL").TrimmedString(0)
	well, err := state.Wells.Get(name)
	if err != nil {
		return err
	}
	if err := well.AttachCOMPSEGS(keyword); err != nil {
		return err
	}
	state.Wells.Update(well)
	ctx.CompsegsHandled(name)
	ctx.RecordWellStructureChange()
	ctx.AffectedWell(name)
	return nil
}
