package sched

import "fmt"

// ConnectionState is the open/shut state of a single well-to-cell
// connection. STOP at the connection level is a synonym for SHUT.
type ConnectionState int

const (
	ConnectionOpen ConnectionState = iota
	ConnectionShut
	ConnectionAuto
)

// ConnectionStateFromString parses a deck connection state mnemonic.
func ConnectionStateFromString(s string) (ConnectionState, error) {
	switch s {
	case "", "OPEN":
		return ConnectionOpen, nil
	case "SHUT", "STOP":
		return ConnectionShut, nil
	case "AUTO":
		return ConnectionAuto, nil
	default:
		return ConnectionShut, fmt.Errorf("unknown connection state %q", s)
	}
}

// ConnectionDirection is the penetration direction of a connection.
type ConnectionDirection int

const (
	DirectionZ ConnectionDirection = iota
	DirectionX
	DirectionY
)

func connectionDirectionFromString(s string) (ConnectionDirection, error) {
	switch s {
	case "", "Z":
		return DirectionZ, nil
	case "X":
		return DirectionX, nil
	case "Y":
		return DirectionY, nil
	default:
		return DirectionZ, fmt.Errorf("unknown connection direction %q", s)
	}
}

// Connection is one well-to-cell connection. Cell addresses are
// one-based deck coordinates.
type Connection struct {
	I, J, K  int
	Complnum int

	State ConnectionState
	Dir   ConnectionDirection

	// CF is the connection transmissibility factor, SI. Kh, skin and
	// diameter feed the productivity-index calculation downstream.
	CF         float64
	Diameter   float64
	Kh         float64
	SkinFactor float64
	DFactor    float64
	SatTable   int
	Depth      float64

	// Segment attachment for multisegment wells; zero when the well is
	// a standard well.
	Segment int
}

// WellConnections is the ordered connection set of one well. Order is
// deck order of first definition; redefining an existing cell updates
// it in place and keeps its completion number.
type WellConnections struct {
	HeadI, HeadJ int
	Conns        []Connection
}

// NewWellConnections returns an empty connection set anchored at the
// wellhead cell.
func NewWellConnections(headI, headJ int) WellConnections {
	return WellConnections{HeadI: headI, HeadJ: headJ}
}

// Copy returns an independent copy.
func (c WellConnections) Copy() WellConnections {
	cp := c
	cp.Conns = append([]Connection(nil), c.Conns...)
	return cp
}

// Empty reports whether the well has no connections.
func (c WellConnections) Empty() bool { return len(c.Conns) == 0 }

// Len returns the number of connections.
func (c WellConnections) Len() int { return len(c.Conns) }

// Get returns the connection at slice index idx.
func (c WellConnections) Get(idx int) Connection { return c.Conns[idx] }

func (c WellConnections) find(i, j, k int) int {
	for n, conn := range c.Conns {
		if conn.I == i && conn.J == j && conn.K == k {
			return n
		}
	}
	return -1
}

// HasCell reports whether a connection exists at the given cell.
func (c WellConnections) HasCell(i, j, k int) bool {
	return c.find(i, j, k) >= 0
}

// TopDepth returns the depth of the first connection in deck order, or
// false when the well has none. Used to resolve a defaulted wellhead
// reference depth once COMPDAT has been processed.
func (c WellConnections) TopDepth() (float64, bool) {
	if len(c.Conns) == 0 {
		return 0, false
	}
	return c.Conns[0].Depth, true
}

// LoadCOMPDAT applies one COMPDAT record: one connection per layer of
// the K1..K2 range, either freshly appended or updating the existing
// connection at that cell. Defaulted I/J fall back to the wellhead.
func (c *WellConnections) LoadCOMPDAT(record DeckRecord, wellName string, location KeywordLocation) error {
	i := record.Item("I").Int(0)
	j := record.Item("J").Int(0)
	if record.Item("I").DefaultApplied(0) || i == 0 {
		i = c.HeadI
	}
	if record.Item("J").DefaultApplied(0) || j == 0 {
		j = c.HeadJ
	}

	k1 := record.Item("K1").Int(0)
	k2 := record.Item("K2").Int(0)
	if k2 == 0 {
		k2 = k1
	}
	if k1 <= 0 || k2 < k1 {
		return NewInputError(location, "Well %s: invalid layer range %d..%d in COMPDAT", wellName, k1, k2)
	}

	state, err := ConnectionStateFromString(record.Item("STATE").TrimmedString(0))
	if err != nil {
		return NewInputError(location, "Well %s: %v", wellName, err)
	}
	dir, err := connectionDirectionFromString(record.Item("DIR").TrimmedString(0))
	if err != nil {
		return NewInputError(location, "Well %s: %v", wellName, err)
	}

	for k := k1; k <= k2; k++ {
		conn := Connection{
			I: i, J: j, K: k,
			State:      state,
			Dir:        dir,
			CF:         record.Item("CONNECTION_TRANSMISSIBILITY_FACTOR").SIDouble(0),
			Diameter:   record.Item("DIAMETER").SIDouble(0),
			Kh:         record.Item("KH").SIDouble(0),
			SkinFactor: record.Item("SKIN").Double(0),
			DFactor:    record.Item("D_FACTOR").SIDouble(0),
			SatTable:   record.Item("SAT_TABLE").Int(0),
			Depth:      record.Item("DEPTH").SIDouble(0),
		}
		if idx := c.find(i, j, k); idx >= 0 {
			conn.Complnum = c.Conns[idx].Complnum
			c.Conns[idx] = conn
		} else {
			conn.Complnum = len(c.Conns) + 1
			c.Conns = append(c.Conns, conn)
		}
	}
	return nil
}

// wpimultMatch reports whether the connection falls inside the
// I/J/K/completion filters of a WPIMULT record. A filter that is
// defaulted or negative matches everything.
func wpimultMatch(conn Connection, record DeckRecord) bool {
	match := func(itemName string, value int) bool {
		item := record.Item(itemName)
		if item.DefaultApplied(0) || item.Int(0) < 0 {
			return true
		}
		return item.Int(0) == value
	}
	return match("I", conn.I) &&
		match("J", conn.J) &&
		match("K", conn.K) &&
		inCompRange(conn.Complnum, record)
}

func inCompRange(complnum int, record DeckRecord) bool {
	first := record.Item("FIRST")
	last := record.Item("LAST")
	if !first.DefaultApplied(0) && first.Int(0) >= 0 && complnum < first.Int(0) {
		return false
	}
	if !last.DefaultApplied(0) && last.Int(0) >= 0 && complnum > last.Int(0) {
		return false
	}
	return true
}

// ApplyWPIMULT scales the transmissibility factor of every connection
// matched by the record's filters. Reports whether anything changed.
func (c *WellConnections) ApplyWPIMULT(record DeckRecord) bool {
	factor := record.Item("WELLPI").Double(0)
	changed := false
	for n := range c.Conns {
		if wpimultMatch(c.Conns[n], record) {
			c.Conns[n].CF *= factor
			changed = true
		}
	}
	return changed
}

// ApplyGlobalWPIMULT scales every connection's transmissibility by the
// deferred whole-well factor.
func (c *WellConnections) ApplyGlobalWPIMULT(factor float64) bool {
	if factor == 1.0 || len(c.Conns) == 0 {
		return false
	}
	for n := range c.Conns {
		c.Conns[n].CF *= factor
	}
	return true
}

// SetState transitions the connections matched by I/J/K filters of a
// WELOPEN record to the given state. Defaulted or non-positive filters
// match everything. Reports whether anything changed.
func (c *WellConnections) SetState(state ConnectionState, record DeckRecord) bool {
	match := func(itemName string, value int) bool {
		item := record.Item(itemName)
		if item.DefaultApplied(0) || item.Int(0) <= 0 {
			return true
		}
		return item.Int(0) == value
	}
	changed := false
	for n := range c.Conns {
		conn := &c.Conns[n]
		if match("I", conn.I) && match("J", conn.J) && match("K", conn.K) &&
			inCompRange(conn.Complnum, record) && conn.State != state {
			conn.State = state
			changed = true
		}
	}
	return changed
}

func boxMatch(record DeckRecord, loName, hiName string, value int) bool {
	lo := record.Item(loName)
	hi := record.Item(hiName)
	if !lo.DefaultApplied(0) && lo.Int(0) > 0 && value < lo.Int(0) {
		return false
	}
	if !hi.DefaultApplied(0) && hi.Int(0) > 0 && value > hi.Int(0) {
		return false
	}
	return true
}

// LumpCompletions assigns the completion number of one COMPLUMP record
// to every connection inside its I/J/K box. Defaulted or non-positive
// bounds match everything. Reports whether anything changed.
func (c *WellConnections) LumpCompletions(record DeckRecord) bool {
	complnum := record.Item("N").Int(0)
	changed := false
	for n := range c.Conns {
		conn := &c.Conns[n]
		if boxMatch(record, "I1", "I2", conn.I) &&
			boxMatch(record, "J1", "J2", conn.J) &&
			boxMatch(record, "K1", "K2", conn.K) &&
			conn.Complnum != complnum {
			conn.Complnum = complnum
			changed = true
		}
	}
	return changed
}

// SetSkinFactor applies one CSKIN record: the skin factor of every
// connection matched by the I/J filters and the K1..K2 range is
// replaced. Reports whether anything changed.
func (c *WellConnections) SetSkinFactor(record DeckRecord) bool {
	match := func(itemName string, value int) bool {
		item := record.Item(itemName)
		if item.DefaultApplied(0) || item.Int(0) <= 0 {
			return true
		}
		return item.Int(0) == value
	}
	skin := record.Item("CONNECTION_SKIN_FACTOR").Double(0)
	changed := false
	for n := range c.Conns {
		conn := &c.Conns[n]
		if match("I", conn.I) && match("J", conn.J) &&
			boxMatch(record, "K1", "K2", conn.K) &&
			conn.SkinFactor != skin {
			conn.SkinFactor = skin
			changed = true
		}
	}
	return changed
}

// AttachSegment binds the connections of one COMPSEGS record to a
// segment of a multisegment well.
func (c *WellConnections) AttachSegment(segment, i, j, k int) bool {
	if idx := c.find(i, j, k); idx >= 0 {
		c.Conns[idx].Segment = segment
		return true
	}
	return false
}

// AllShut reports whether every connection is shut.
func (c WellConnections) AllShut() bool {
	for _, conn := range c.Conns {
		if conn.State != ConnectionShut {
			return false
		}
	}
	return true
}
