package sched

// Tuning holds the simulator tuning controls from TUNING. Values are
// SI. A TUNING keyword only overrides the items it actually specifies;
// everything else carries over from the previous step.
type Tuning struct {
	// Record 1: time stepping controls.
	TSInit float64
	TSMaxz float64
	TSMinz float64
	TSMchp float64
	TSFMax float64
	TSFMin float64
	TSFCnv float64
	TFDiff float64
	ThrUPT float64
	TMaxWC float64

	// Record 2: convergence targets.
	TrgTTE float64
	TrgCNV float64
	TrgMBE float64
	TrgLCV float64
	XxxTTE float64
	XxxCNV float64
	XxxMBE float64
	XxxLCV float64
	XxxWFL float64

	// Record 3: iteration limits.
	NewtMx int
	NewtMn int
	LitMax int
	LitMin int
	MxWSIt int
	MxWPIt int
	DDPLim float64
	DDSLim float64
	TrgDPR float64
}

// NewTuning returns the defaults in force before any TUNING keyword.
func NewTuning() Tuning {
	return Tuning{
		TSInit: day, TSMaxz: 365 * day, TSMinz: 0.1 * day, TSMchp: 0.15 * day,
		TSFMax: 3.0, TSFMin: 0.3, TSFCnv: 0.1, TFDiff: 1.25, ThrUPT: 1.0e20, TMaxWC: 0.0,
		TrgTTE: 0.1, TrgCNV: 0.001, TrgMBE: 1.0e-7, TrgLCV: 0.0001,
		XxxTTE: 10.0, XxxCNV: 0.01, XxxMBE: 1.0e-6, XxxLCV: 0.001, XxxWFL: 0.001,
		NewtMx: 12, NewtMn: 1, LitMax: 25, LitMin: 1, MxWSIt: 8, MxWPIt: 8,
		DDPLim: 1.0e6, DDSLim: 1.0e6, TrgDPR: 1.0e6,
	}
}

// Copy returns an independent copy.
func (t Tuning) Copy() Tuning { return t }

// FromTUNING merges a TUNING keyword into the controls: each record is
// optional, and inside a record only non-defaulted items override the
// inherited values.
func (t *Tuning) FromTUNING(keyword DeckKeyword) {
	setD := func(record DeckRecord, name string, target *float64) {
		if item := record.Item(name); record.Has(name) && !item.DefaultApplied(0) {
			*target = item.SIDouble(0)
		}
	}
	setI := func(record DeckRecord, name string, target *int) {
		if item := record.Item(name); record.Has(name) && !item.DefaultApplied(0) {
			*target = item.Int(0)
		}
	}

	if keyword.Size() > 0 {
		rec := keyword.Record(0)
		setD(rec, "TSINIT", &t.TSInit)
		setD(rec, "TSMAXZ", &t.TSMaxz)
		setD(rec, "TSMINZ", &t.TSMinz)
		setD(rec, "TSMCHP", &t.TSMchp)
		setD(rec, "TSFMAX", &t.TSFMax)
		setD(rec, "TSFMIN", &t.TSFMin)
		setD(rec, "TSFCNV", &t.TSFCnv)
		setD(rec, "TFDIFF", &t.TFDiff)
		setD(rec, "THRUPT", &t.ThrUPT)
		setD(rec, "TMAXWC", &t.TMaxWC)
	}
	if keyword.Size() > 1 {
		rec := keyword.Record(1)
		setD(rec, "TRGTTE", &t.TrgTTE)
		setD(rec, "TRGCNV", &t.TrgCNV)
		setD(rec, "TRGMBE", &t.TrgMBE)
		setD(rec, "TRGLCV", &t.TrgLCV)
		setD(rec, "XXXTTE", &t.XxxTTE)
		setD(rec, "XXXCNV", &t.XxxCNV)
		setD(rec, "XXXMBE", &t.XxxMBE)
		setD(rec, "XXXLCV", &t.XxxLCV)
		setD(rec, "XXXWFL", &t.XxxWFL)
	}
	if keyword.Size() > 2 {
		rec := keyword.Record(2)
		setI(rec, "NEWTMX", &t.NewtMx)
		setI(rec, "NEWTMN", &t.NewtMn)
		setI(rec, "LITMAX", &t.LitMax)
		setI(rec, "LITMIN", &t.LitMin)
		setI(rec, "MXWSIT", &t.MxWSIt)
		setI(rec, "MXWPIT", &t.MxWPIt)
		setD(rec, "DDPLIM", &t.DDPLim)
		setD(rec, "DDSLIM", &t.DDSLim)
		setD(rec, "TRGDPR", &t.TrgDPR)
	}
}

// NextStep is the NEXTSTEP suggested length of the next timestep.
type NextStep struct {
	Value       float64
	EveryReport bool
	Set         bool
}

// Copy returns an independent copy.
func (n NextStep) Copy() NextStep { return n }
