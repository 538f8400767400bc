package sched

import "fmt"

// Segment is one node of a multisegment well's flow path. Segment
// numbers are one-based with segment 1 at the wellhead.
type Segment struct {
	Number  int
	Branch  int
	Outlet  int
	Length  float64
	Depth   float64
	IntDiam float64
	Rough   float64
}

// WellSegments is the segment topology of one multisegment well from
// WELSEGS.
type WellSegments struct {
	WellName  string
	TopDepth  float64
	TopLength float64
	LengthMode string

	Segments []Segment
}

// Copy returns an independent copy.
func (s WellSegments) Copy() WellSegments {
	cp := s
	cp.Segments = append([]Segment(nil), s.Segments...)
	return cp
}

// Has reports whether the segment number exists.
func (s WellSegments) Has(number int) bool {
	for _, seg := range s.Segments {
		if seg.Number == number {
			return true
		}
	}
	return false
}

// NewWellSegments parses a complete WELSEGS keyword: a header record
// defining the top segment followed by one record per segment range.
func NewWellSegments(keyword DeckKeyword) (WellSegments, error) {
	if keyword.Empty() {
		return WellSegments{}, NewInputError(keyword.Location(), "WELSEGS without records")
	}
	header := keyword.Record(0)
	segments := WellSegments{
		WellName:   header.Item("WELL").TrimmedString(0),
		TopDepth:   header.Item("TOP_DEPTH").SIDouble(0),
		TopLength:  header.Item("DEPTH").SIDouble(0),
		LengthMode: header.Item("INFO_TYPE").TrimmedString(0),
	}
	segments.Segments = append(segments.Segments, Segment{
		Number: 1,
		Branch: 1,
		Depth:  segments.TopDepth,
		Length: segments.TopLength,
	})

	for n := 1; n < keyword.Size(); n++ {
		rec := keyword.Record(n)
		first := rec.Item("SEGMENT1").Int(0)
		last := rec.Item("SEGMENT2").Int(0)
		if last == 0 {
			last = first
		}
		if first <= 1 || last < first {
			return WellSegments{}, NewInputError(keyword.Location(),
				"Well %s: invalid segment range %d..%d", segments.WellName, first, last)
		}
		branch := rec.Item("BRANCH").Int(0)
		outlet := rec.Item("JOIN_SEGMENT").Int(0)
		for number := first; number <= last; number++ {
			if segments.Has(number) {
				return WellSegments{}, NewInputError(keyword.Location(),
					"Well %s: segment %d defined twice", segments.WellName, number)
			}
			segments.Segments = append(segments.Segments, Segment{
				Number:  number,
				Branch:  branch,
				Outlet:  outlet,
				Length:  rec.Item("SEGMENT_LENGTH").SIDouble(0),
				Depth:   rec.Item("DEPTH_CHANGE").SIDouble(0),
				IntDiam: rec.Item("DIAMETER").SIDouble(0),
				Rough:   rec.Item("ROUGHNESS").SIDouble(0),
			})
			// Segments after the first of a range chain onto their
			// predecessor.
			outlet = number
		}
	}
	return segments, nil
}

// AttachCOMPSEGS binds grid connections to segments from a COMPSEGS
// keyword. The first record names the well; each following record maps
// one cell to the segment covering its measured-depth interval (here
// given directly as the segment number).
func (w *Well) AttachCOMPSEGS(keyword DeckKeyword) error {
	if w.Segments == nil {
		return fmt.Errorf("well %s: COMPSEGS before WELSEGS", w.Name)
	}
	if keyword.Size() < 2 {
		return NewInputError(keyword.Location(), "COMPSEGS without connection records")
	}
	conns := w.Connections.Copy()
	changed := false
	for n := 1; n < keyword.Size(); n++ {
		rec := keyword.Record(n)
		i := rec.Item("I").Int(0)
		j := rec.Item("J").Int(0)
		k := rec.Item("K").Int(0)
		segment := rec.Item("SEGMENT").Int(0)
		if !w.Segments.Has(segment) {
			return NewInputError(keyword.Location(),
				"Well %s: COMPSEGS references undefined segment %d", w.Name, segment)
		}
		if !conns.AttachSegment(segment, i, j, k) {
			return NewInputError(keyword.Location(),
				"Well %s: COMPSEGS cell (%d,%d,%d) has no connection", w.Name, i, j, k)
		}
		changed = true
	}
	if changed {
		w.Connections = &conns
	}
	return nil
}
