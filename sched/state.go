package sched

// ScheduleState is the full simulator control state at one report step.
// States form an append-only timeline: each new step starts as a clone
// of its predecessor and shares every untouched sub-object with it.
type ScheduleState struct {
	ReportStep int

	// SimDays is the elapsed simulation time at the start of the step,
	// in days. Used for operator-facing notes, not for stepping.
	SimDays float64

	Wells  WellCollection
	Groups GroupCollection

	// Per-step event sets. Cleared on every step transition.
	StepEvents   Events
	EntityEvents WellGroupEvents

	Network    Shared[ExtNetwork]
	NetBalance Shared[NetworkBalance]
	GuideRate  Shared[GuideRateConfig]
	Tuning     Shared[Tuning]
	UDQ        Shared[UDQConfig]
	UDQActive  Shared[UDQActive]
	WList      Shared[WListManager]
	RFT        Shared[RFTConfig]
	VFPProd    Shared[VFPProdTables]
	VFPInj     Shared[VFPInjTables]
	GasLift    Shared[GasLiftOpt]
	WTest      Shared[WTestConfig]
	GConSale   Shared[GConSale]
	GConSump   Shared[GConSump]
	GEcon      Shared[GEcon]
	PAvg       Shared[PAvg]

	// GeoKeywords collects the geometry-modifier keywords of this step
	// verbatim for downstream re-application.
	GeoKeywords []DeckKeyword

	NupCol     int
	SumThin    float64
	HasSumThin bool
	RptOnly    bool
	NextTStep  NextStep
	WhistCtl   ProducerCMode

	// TargetWellPI remembers the WELPI targets applied so far.
	TargetWellPI map[string]float64
}

// NewScheduleState builds the state of the first report step.
func NewScheduleState() *ScheduleState {
	return &ScheduleState{
		Wells:        NewWellCollection(),
		Groups:       NewGroupCollection(),
		EntityEvents: NewWellGroupEvents(),
		Network:      NewShared(NewExtNetwork()),
		NetBalance:   NewShared(NewNetworkBalance()),
		GuideRate:    NewShared(NewGuideRateConfig()),
		Tuning:       NewShared(NewTuning()),
		UDQ:          NewShared(NewUDQConfig()),
		UDQActive:    NewShared(UDQActive{}),
		WList:        NewShared(NewWListManager()),
		RFT:          NewShared(NewRFTConfig()),
		VFPProd:      NewShared(NewVFPProdTables()),
		VFPInj:       NewShared(NewVFPInjTables()),
		GasLift:      NewShared(NewGasLiftOpt()),
		WTest:        NewShared(NewWTestConfig()),
		GConSale:     NewShared(NewGConSale()),
		GConSump:     NewShared(NewGConSump()),
		GEcon:        NewShared(NewGEcon()),
		PAvg:         NewShared(NewPAvg()),
		NupCol:       12,
		TargetWellPI: make(map[string]float64),
	}
}

// next clones the state for the following report step. Collections
// share every stored entity, Shared slots share their instances, and
// the per-step accumulators start empty.
func (s *ScheduleState) next(simDays float64) *ScheduleState {
	cp := *s
	cp.ReportStep = s.ReportStep + 1
	cp.SimDays = simDays
	cp.Wells = s.Wells.clone()
	cp.Groups = s.Groups.clone()
	cp.StepEvents = Events{}
	cp.EntityEvents = NewWellGroupEvents()
	cp.GeoKeywords = nil
	cp.NextTStep.Set = cp.NextTStep.Set && cp.NextTStep.EveryReport
	cp.TargetWellPI = make(map[string]float64, len(s.TargetWellPI))
	for name, pi := range s.TargetWellPI {
		cp.TargetWellPI[name] = pi
	}
	return &cp
}
