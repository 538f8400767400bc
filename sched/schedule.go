package sched

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Schedule is the append-only timeline of control states. Index n holds
// the state in force during report step n. Earlier states are never
// mutated once a later step exists.
type Schedule struct {
	states []*ScheduleState

	parseContext ParseContext
	errors       *ErrorGuard
	units        UnitSystem

	exitCode *int

	// wellCount numbers wells in creation order across the whole run.
	wellCount int
}

// NewSchedule builds a timeline with the initial report step in place.
func NewSchedule(units UnitSystem, parseContext ParseContext, errors *ErrorGuard) *Schedule {
	return &Schedule{
		states:       []*ScheduleState{NewScheduleState()},
		parseContext: parseContext,
		errors:       errors,
		units:        units,
	}
}

// Size returns the number of report steps.
func (s *Schedule) Size() int { return len(s.states) }

// State returns the latest snapshot.
func (s *Schedule) State() *ScheduleState {
	return s.states[len(s.states)-1]
}

// StateAt returns the snapshot of report step. Panics when the step
// does not exist; asking for an unmaterialized step is a programming
// error, not an input problem.
func (s *Schedule) StateAt(step int) *ScheduleState {
	if step < 0 || step >= len(s.states) {
		panic(fmt.Sprintf("StateAt: report step %d out of range [0, %d)", step, len(s.states)))
	}
	return s.states[step]
}

// NextReportStep appends a fresh snapshot cloned from the latest one
// and returns its step index.
func (s *Schedule) NextReportStep(simDays float64) int {
	s.states = append(s.states, s.State().next(simDays))
	return len(s.states) - 1
}

// ExitCode returns the exit status requested by an EXIT keyword, if
// any.
func (s *Schedule) ExitCode() (int, bool) {
	if s.exitCode == nil {
		return 0, false
	}
	return *s.exitCode, true
}

// Units returns the deck's unit system.
func (s *Schedule) Units() UnitSystem { return s.units }

// ApplyKeywords processes one report step's keywords against the
// latest snapshot, in deck order. Whole-well WPIMULT records with
// defaulted filters are deferred and applied once at the end of the
// step, last record per well winning. The update accumulator may be
// nil.
func (s *Schedule) ApplyKeywords(keywords []DeckKeyword, update *SimulatorUpdate) error {
	return s.applyKeywords(keywords, update, nil, false)
}

// ApplyActionKeywords processes keywords fired from a conditional
// action block: well name resolution is restricted to the pre-matched
// wells.
func (s *Schedule) ApplyActionKeywords(keywords []DeckKeyword, matchingWells []string, update *SimulatorUpdate) error {
	return s.applyKeywords(keywords, update, matchingWells, true)
}

func (s *Schedule) applyKeywords(keywords []DeckKeyword, update *SimulatorUpdate, matchingWells []string, inAction bool) error {
	wpimultGlobal := make(map[string]float64)
	welsegsWells := make(map[string]KeywordLocation)
	compsegsWells := make(map[string]bool)

	for _, keyword := range keywords {
		ctx := &HandlerContext{
			schedule:      s,
			keyword:       keyword,
			currentStep:   len(s.states) - 1,
			actionWells:   matchingWells,
			inAction:      inAction,
			parseContext:  s.parseContext,
			errors:        s.errors,
			units:         s.units,
			simUpdate:     update,
			wpimultGlobal: wpimultGlobal,
			welsegsWells:  welsegsWells,
			compsegsWells: compsegsWells,
		}
		handled, err := s.handleKeyword(ctx)
		if err != nil {
			return err
		}
		if !handled {
			logrus.Debugf("Ignoring unsupported keyword %s in %s line %d",
				keyword.Name(), keyword.Location().Filename, keyword.Location().Lineno)
		}
	}

	if err := s.applyGlobalWPIMULT(wpimultGlobal); err != nil {
		return err
	}
	return s.validateSegmentedWells(welsegsWells, compsegsWells)
}

// handleKeyword dispatches to the first registry claiming the keyword:
// group, segmented-well, network, UDQ, then the general well and
// miscellaneous handlers.
func (s *Schedule) handleKeyword(ctx *HandlerContext) (bool, error) {
	for _, registry := range []map[string]keywordHandler{
		groupHandlers,
		mswHandlers,
		networkHandlers,
		udqHandlers,
		wellHandlers,
		miscHandlers,
	} {
		if handler, ok := registry[ctx.keyword.Name()]; ok {
			return true, runHandler(handler, ctx)
		}
	}
	return false, nil
}

// keywordHandler is one keyword's transactional mutation.
type keywordHandler func(*HandlerContext) error

// runHandler is the single catch point per keyword: every escaping
// failure is annotated with the keyword location, internal invariant
// violations additionally gain the "Internal error: " prefix, and
// handler panics are converted rather than propagated.
func runHandler(handler keywordHandler, ctx *HandlerContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewLogicError("%v", r)
		}
		if err != nil {
			err = wrapHandlerError(err, ctx.keyword.Location())
			logrus.Error(err.Error())
		}
	}()
	return handler(ctx)
}

// applyGlobalWPIMULT applies the deferred whole-well multipliers.
func (s *Schedule) applyGlobalWPIMULT(factors map[string]float64) error {
	state := s.State()
	for name, factor := range factors {
		well, err := state.Wells.Get(name)
		if err != nil {
			return err
		}
		conns := well.Connections.Copy()
		if conns.ApplyGlobalWPIMULT(factor) {
			well.Connections = &conns
			state.Wells.Update(well)
		}
	}
	return nil
}

// validateSegmentedWells checks that every well given a segment
// topology this step also got its connections bound to segments.
func (s *Schedule) validateSegmentedWells(welsegs map[string]KeywordLocation, compsegs map[string]bool) error {
	for name, location := range welsegs {
		if !compsegs[name] {
			well := s.State().Wells.Ref(name)
			if well != nil && well.Connections != nil && !well.Connections.Empty() {
				return NewInputError(location,
					"Well %s defined segments with WELSEGS but no COMPSEGS followed in the same report step", name)
			}
		}
	}
	return nil
}

// nextWellIndex hands out creation-order indices for new wells.
func (s *Schedule) nextWellIndex() int {
	idx := s.wellCount
	s.wellCount++
	return idx
}
