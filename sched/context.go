package sched

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// SimulatorUpdate accumulates the cross-cutting effects of keyword
// processing that a running simulator must react to: which wells were
// touched, whether any well's structure changed, and whether grid
// transmissibilities must be rebuilt.
type SimulatorUpdate struct {
	AffectedWells          map[string]bool
	WellStructureChange    bool
	TransmissibilityChange bool
}

// NewSimulatorUpdate returns an empty update.
func NewSimulatorUpdate() *SimulatorUpdate {
	return &SimulatorUpdate{AffectedWells: make(map[string]bool)}
}

// HandlerContext is the per-keyword-invocation protocol object handed
// to every handler. It never owns state: the timeline owns the
// snapshots, the driver owns the side-channel accumulators, and the
// context provides controlled access to both.
type HandlerContext struct {
	schedule    *Schedule
	keyword     DeckKeyword
	currentStep int

	// Pre-resolved matching wells when running inside a conditional
	// action block; nil otherwise.
	actionWells []string
	inAction    bool

	parseContext ParseContext
	errors       *ErrorGuard
	units        UnitSystem

	simUpdate *SimulatorUpdate

	// wpimultGlobal collects deferred whole-well WPIMULT factors; only
	// the last defaulted record per well survives, applied when the
	// step's keywords have all been processed.
	wpimultGlobal map[string]float64

	// welsegsWells / compsegsWells track which wells have seen WELSEGS
	// and COMPSEGS, for end-of-step pairing validation.
	welsegsWells  map[string]KeywordLocation
	compsegsWells map[string]bool
}

// Keyword returns the keyword being processed.
func (c *HandlerContext) Keyword() DeckKeyword { return c.keyword }

// Location returns the keyword's source location.
func (c *HandlerContext) Location() KeywordLocation { return c.keyword.Location() }

// CurrentStep returns the report step being populated.
func (c *HandlerContext) CurrentStep() int { return c.currentStep }

// State returns the snapshot being mutated.
func (c *HandlerContext) State() *ScheduleState {
	return c.schedule.StateAt(c.currentStep)
}

// StateAt returns the snapshot of an earlier report step.
func (c *HandlerContext) StateAt(step int) *ScheduleState {
	return c.schedule.StateAt(step)
}

// Units returns the deck's unit system.
func (c *HandlerContext) Units() UnitSystem { return c.units }

// AffectedWell records that the keyword touched a well.
func (c *HandlerContext) AffectedWell(name string) {
	if c.simUpdate != nil {
		c.simUpdate.AffectedWells[name] = true
	}
}

// RecordWellStructureChange flags that wells were created or their
// connections changed.
func (c *HandlerContext) RecordWellStructureChange() {
	if c.simUpdate != nil {
		c.simUpdate.WellStructureChange = true
	}
}

// RecordTransmissibilityChange flags that a geometry modifier requires
// the grid transmissibilities to be recomputed.
func (c *HandlerContext) RecordTransmissibilityChange() {
	if c.simUpdate != nil {
		c.simUpdate.TransmissibilityChange = true
	}
}

// WelsegsHandled records that the well received its segment topology.
func (c *HandlerContext) WelsegsHandled(name string) {
	if c.welsegsWells != nil {
		c.welsegsWells[name] = c.keyword.Location()
	}
}

// CompsegsHandled records that the well's connections were bound to
// segments.
func (c *HandlerContext) CompsegsHandled(name string) {
	if c.compsegsWells != nil {
		c.compsegsWells[name] = true
	}
}

// SetExitCode requests run termination with the given status (EXIT).
func (c *HandlerContext) SetExitCode(code int) {
	c.schedule.exitCode = &code
}

// InvalidNamePattern reports a pattern that matched nothing. The
// placeholder pattern "?" only warns; everything else goes through the
// configured policy for invalid names.
func (c *HandlerContext) InvalidNamePattern(pattern string) error {
	if pattern == "?" {
		logrus.Warnf("No matching wells for %s in %s line %d.",
			c.keyword.Name(), c.keyword.Location().Filename, c.keyword.Location().Lineno)
		return nil
	}
	msg := "No wells/groups match the pattern: '" + pattern + "'"
	return c.parseContext.HandleError(ScheduleInvalidName, msg, c.keyword.Location(), c.errors)
}

// WellNames resolves a well name or pattern against the current
// snapshot, in well insertion order. A leading-'*' name that matches a
// defined well list resolves to the list members. Inside a conditional
// action the result is restricted to the action's pre-matched wells.
// An empty result is an error unless allowEmpty is set.
func (c *HandlerContext) WellNames(pattern string, allowEmpty bool) ([]string, error) {
	names := c.wellNames(pattern)
	if len(names) == 0 && !allowEmpty {
		if err := c.InvalidNamePattern(pattern); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func (c *HandlerContext) wellNames(pattern string) []string {
	if pattern == "" {
		return nil
	}
	state := c.State()
	var names []string
	if strings.HasPrefix(pattern, "*") && len(pattern) > 1 && state.WList.Read().HasList(pattern) {
		for _, name := range state.WList.Read().Wells(pattern) {
			if state.Wells.Has(name) {
				names = append(names, name)
			}
		}
	} else {
		names = matchNames(pattern, state.Wells.Names())
	}
	if !c.inAction || c.actionWells == nil {
		return names
	}
	allowed := make(map[string]bool, len(c.actionWells))
	for _, name := range c.actionWells {
		allowed[name] = true
	}
	var restricted []string
	for _, name := range names {
		if allowed[name] {
			restricted = append(restricted, name)
		}
	}
	return restricted
}

// GroupNames resolves a group name or pattern against the current
// snapshot, in group insertion order.
func (c *HandlerContext) GroupNames(pattern string) []string {
	return matchNames(pattern, c.State().Groups.Names())
}

// UpdateWellStatus transitions a well's status, recording the status
// change events. Opening a well with no grid connections is refused
// with a warning; the well stays SHUT.
func (c *HandlerContext) UpdateWellStatus(name string, status WellStatus) (bool, error) {
	state := c.State()
	well, err := state.Wells.Get(name)
	if err != nil {
		return false, err
	}
	if status == WellOpen && well.Connections.Empty() {
		location := c.keyword.Location()
		logrus.Warnf("Problem with keyword %s\nIn %s line %d\nWell %s has no connections to grid and will remain SHUT",
			location.Keyword, location.Filename, location.Lineno, name)
		return false, nil
	}
	if !well.UpdateStatus(status) {
		return false, nil
	}
	state.StepEvents.AddEvent(WellStatusChange)
	state.EntityEvents.AddEvent(name, WellStatusChange)
	state.Wells.Update(well)
	return true, nil
}

// AddGroup creates a group if it does not exist, parented under FIELD
// until GRUPTREE says otherwise. The FIELD group itself is created on
// first demand.
func (c *HandlerContext) AddGroup(name string) {
	state := c.State()
	if state.Groups.Has(name) {
		return
	}
	if name != "FIELD" && !state.Groups.Has("FIELD") {
		c.AddGroup("FIELD")
	}
	group := NewGroup(name, "", state.Groups.Len())
	if name != "FIELD" {
		group.ParentName = "FIELD"
	}
	state.Groups.Add(group)
	state.StepEvents.AddEvent(GroupCreated)
	state.EntityEvents.AddEvent(name, GroupCreated)
	if name != "FIELD" {
		c.AddGroupToGroup("FIELD", name)
	}
}

// AddGroupToGroup reparents a child group under a parent, updating both
// ends of the relationship.
func (c *HandlerContext) AddGroupToGroup(parent, child string) error {
	state := c.State()
	childGroup, err := state.Groups.Get(child)
	if err != nil {
		return err
	}
	oldParent := childGroup.ParentName
	if oldParent == parent {
		parentGroup, err := state.Groups.Get(parent)
		if err != nil {
			return err
		}
		if parentGroup.AddChildGroup(child) {
			state.Groups.Update(parentGroup)
		}
		return nil
	}
	if oldParent != "" && state.Groups.Has(oldParent) {
		oldGroup, err := state.Groups.Get(oldParent)
		if err != nil {
			return err
		}
		if oldGroup.DelChildGroup(child) {
			state.Groups.Update(oldGroup)
		}
	}
	childGroup.ParentName = parent
	state.Groups.Update(childGroup)

	parentGroup, err := state.Groups.Get(parent)
	if err != nil {
		return err
	}
	parentGroup.AddChildGroup(child)
	state.Groups.Update(parentGroup)
	state.StepEvents.AddEvent(GroupChange)
	state.EntityEvents.AddEvent(child, GroupChange)
	return nil
}

// AddWellToGroup moves a well into a group, removing it from its
// previous one.
func (c *HandlerContext) AddWellToGroup(groupName, wellName string) error {
	state := c.State()
	well, err := state.Wells.Get(wellName)
	if err != nil {
		return err
	}
	if well.GroupName == groupName {
		group, err := state.Groups.Get(groupName)
		if err != nil {
			return err
		}
		if group.AddWell(wellName) {
			state.Groups.Update(group)
		}
		return nil
	}
	if well.GroupName != "" && state.Groups.Has(well.GroupName) {
		oldGroup, err := state.Groups.Get(well.GroupName)
		if err != nil {
			return err
		}
		if oldGroup.DelWell(wellName) {
			state.Groups.Update(oldGroup)
		}
	}
	well.GroupName = groupName
	state.Wells.Update(well)

	group, err := state.Groups.Get(groupName)
	if err != nil {
		return err
	}
	group.AddWell(wellName)
	state.Groups.Update(group)
	state.StepEvents.AddEvent(GroupChange)
	state.EntityEvents.AddEvent(wellName, GroupChange)
	return nil
}

// TrimWGName trims a well/group name item and routes the configured
// policy when trimming changed the value. The trimmed name is always
// what gets used, whatever the policy decides.
func (c *HandlerContext) TrimWGName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed != raw {
		msg := "Problem with keyword {keyword}\nIn {file} line {line}\nIllegal space in '" +
			raw + "' when defining WELL/GROUP."
		if err := c.parseContext.HandleError(ParseWGNameSpace, msg, c.keyword.Location(), c.errors); err != nil {
			return trimmed, err
		}
	}
	return trimmed, nil
}
