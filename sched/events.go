package sched

// ScheduleEvent is one category of state change recorded while
// processing a report step. Downstream consumers use the per-step and
// per-entity event sets to detect "did anything relevant to well W
// change this step".
type ScheduleEvent uint64

const (
	WellCreated ScheduleEvent = 1 << iota
	WellStatusChange
	CompletionChange
	ProductionUpdate
	InjectionUpdate
	InjectionTypeChanged
	WellSwitchedInjectorProducer
	RequestOpenWell
	GroupCreated
	GroupChange
	GroupProductionUpdate
	GroupInjectionUpdate
	WellGroupEfficiencyUpdate
	WellProductivityIndex
	GeoModifier
	TuningChange
	VFPProdUpdate
	VFPInjUpdate
	ActionXUpdate
)

// Events is the per-step global event bitset.
type Events struct {
	Bits ScheduleEvent
}

// Copy returns an independent copy.
func (e Events) Copy() Events { return e }

// AddEvent records an event category for the step.
func (e *Events) AddEvent(event ScheduleEvent) {
	e.Bits |= event
}

// HasEvent reports whether any of the given categories were recorded.
func (e Events) HasEvent(event ScheduleEvent) bool {
	return e.Bits&event != 0
}

// WellGroupEvents tracks event categories per well/group name for one
// report step.
type WellGroupEvents struct {
	ByName map[string]ScheduleEvent
}

// NewWellGroupEvents returns an empty per-entity event set.
func NewWellGroupEvents() WellGroupEvents {
	return WellGroupEvents{ByName: make(map[string]ScheduleEvent)}
}

// Copy returns an independent copy.
func (e WellGroupEvents) Copy() WellGroupEvents {
	cp := NewWellGroupEvents()
	for name, bits := range e.ByName {
		cp.ByName[name] = bits
	}
	return cp
}

// AddEvent records an event category against a well/group name.
func (e *WellGroupEvents) AddEvent(name string, event ScheduleEvent) {
	if e.ByName == nil {
		e.ByName = make(map[string]ScheduleEvent)
	}
	e.ByName[name] |= event
}

// HasEvent reports whether the named entity recorded any of the given
// categories this step.
func (e WellGroupEvents) HasEvent(name string, event ScheduleEvent) bool {
	return e.ByName[name]&event != 0
}
