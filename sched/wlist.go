package sched

// WList is a named, ordered set of well names usable as a single
// pattern argument elsewhere in the deck. List names always begin
// with '*'.
type WList struct {
	Name  string
	Wells []string
}

// Copy returns an independent copy.
func (w WList) Copy() WList {
	return WList{Name: w.Name, Wells: append([]string(nil), w.Wells...)}
}

// Has reports whether the list contains the well.
func (w WList) Has(well string) bool {
	for _, name := range w.Wells {
		if name == well {
			return true
		}
	}
	return false
}

// Add appends the well unless it is already a member.
func (w *WList) Add(well string) {
	if !w.Has(well) {
		w.Wells = append(w.Wells, well)
	}
}

// Del removes the well if present.
func (w *WList) Del(well string) {
	kept := w.Wells[:0]
	for _, name := range w.Wells {
		if name != well {
			kept = append(kept, name)
		}
	}
	w.Wells = kept
}

// WListManager owns all well lists defined so far.
type WListManager struct {
	Order []string
	Lists map[string]WList
}

// NewWListManager returns an empty manager.
func NewWListManager() WListManager {
	return WListManager{Lists: make(map[string]WList)}
}

// Copy returns an independent deep copy.
func (m WListManager) Copy() WListManager {
	cp := WListManager{
		Order: append([]string(nil), m.Order...),
		Lists: make(map[string]WList, len(m.Lists)),
	}
	for name, list := range m.Lists {
		cp.Lists[name] = list.Copy()
	}
	return cp
}

// HasList reports whether a list of the given name exists.
func (m WListManager) HasList(name string) bool {
	_, ok := m.Lists[name]
	return ok
}

// Wells returns the member wells of the named list, in insertion order.
func (m WListManager) Wells(name string) []string {
	return append([]string(nil), m.Lists[name].Wells...)
}

// NewList creates (or replaces) the named list with the given members.
func (m *WListManager) NewList(name string, wells []string) {
	if !m.HasList(name) {
		m.Order = append(m.Order, name)
	}
	list := WList{Name: name}
	for _, well := range wells {
		list.Add(well)
	}
	m.Lists[name] = list
}

// AddWell adds a well to the named list.
func (m *WListManager) AddWell(well, listName string) {
	list := m.Lists[listName]
	list.Name = listName
	list.Add(well)
	m.Lists[listName] = list
}

// DelWell removes a well from the named list.
func (m *WListManager) DelWell(well, listName string) {
	list := m.Lists[listName]
	list.Del(well)
	m.Lists[listName] = list
}

// DelWellFromAll removes the well from every list. Used by the MOV
// action: a moved well belongs exclusively to the target list.
func (m *WListManager) DelWellFromAll(well string) {
	for name, list := range m.Lists {
		list.Del(well)
		m.Lists[name] = list
	}
}
