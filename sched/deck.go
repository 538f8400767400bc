package sched

import (
	"fmt"
	"strings"
)

// KeywordLocation identifies where a keyword occurrence came from in the
// input deck. It is attached to every structured input error so problems
// surface with file/line context.
type KeywordLocation struct {
	Keyword  string
	Filename string
	Lineno   int
}

func (l KeywordLocation) String() string {
	return fmt.Sprintf("%s in %s line %d", l.Keyword, l.Filename, l.Lineno)
}

// ItemKind is the declared type of a DeckItem. An item never changes its
// declared kind after construction.
type ItemKind int

const (
	ItemInt ItemKind = iota
	ItemDouble
	ItemString
	// ItemUDA holds a value that may be either a literal double or a
	// reference to a named user-defined quantity.
	ItemUDA
)

// DeckItem is one typed field of a record. Default-ness is tracked per
// value index, separately from the value itself, so handlers can
// distinguish "not specified" from "specified as zero".
type DeckItem struct {
	Name string
	Kind ItemKind

	ints    []int
	doubles []float64
	strs    []string
	udas    []UDAValue

	defaulted []bool

	// Dim is the dimension name of numeric values ("Pressure", ...);
	// empty for dimensionless items. SIScale is the factor converting
	// deck units to SI, resolved against the deck's unit system when
	// the item was built.
	Dim     string
	SIScale float64
}

// NewIntItem builds an int item with the given explicit values.
func NewIntItem(name string, values ...int) DeckItem {
	return DeckItem{Name: name, Kind: ItemInt, ints: values,
		defaulted: make([]bool, len(values)), SIScale: 1.0}
}

// NewDoubleItem builds a dimensionless double item.
func NewDoubleItem(name string, values ...float64) DeckItem {
	return DeckItem{Name: name, Kind: ItemDouble, doubles: values,
		defaulted: make([]bool, len(values)), SIScale: 1.0}
}

// NewDimensionedItem builds a double item whose values carry a unit
// dimension resolved against units.
func NewDimensionedItem(name, dim string, units UnitSystem, values ...float64) DeckItem {
	item := NewDoubleItem(name, values...)
	item.Dim = dim
	item.SIScale = units.Parse(dim).SIScaling()
	return item
}

// NewStringItem builds a string item.
func NewStringItem(name string, values ...string) DeckItem {
	return DeckItem{Name: name, Kind: ItemString, strs: values,
		defaulted: make([]bool, len(values)), SIScale: 1.0}
}

// NewUDAItem builds an item holding UDA values.
func NewUDAItem(name string, values ...UDAValue) DeckItem {
	return DeckItem{Name: name, Kind: ItemUDA, udas: values,
		defaulted: make([]bool, len(values)), SIScale: 1.0}
}

// NewDefaultedItem builds an item of the given kind whose single value
// is the supplied default, flagged as default-applied.
func NewDefaultedItem(name string, kind ItemKind) DeckItem {
	item := DeckItem{Name: name, Kind: kind, defaulted: []bool{true}, SIScale: 1.0}
	switch kind {
	case ItemInt:
		item.ints = []int{0}
	case ItemDouble:
		item.doubles = []float64{0}
	case ItemString:
		item.strs = []string{""}
	case ItemUDA:
		item.udas = []UDAValue{Literal(0)}
	}
	return item
}

// WithDefault returns a copy of the item with the value at index 0
// replaced by the given default and flagged default-applied.
func (i DeckItem) WithDefaultInt(v int) DeckItem {
	item := i
	item.ints = []int{v}
	item.defaulted = []bool{true}
	return item
}

func (i DeckItem) WithDefaultDouble(v float64) DeckItem {
	item := i
	item.doubles = []float64{v}
	item.defaulted = []bool{true}
	return item
}

func (i DeckItem) WithDefaultString(v string) DeckItem {
	item := i
	item.strs = []string{v}
	item.defaulted = []bool{true}
	return item
}

// Len returns the number of values in the item.
func (i DeckItem) Len() int {
	switch i.Kind {
	case ItemInt:
		return len(i.ints)
	case ItemDouble:
		return len(i.doubles)
	case ItemString:
		return len(i.strs)
	default:
		return len(i.udas)
	}
}

// DefaultApplied reports whether the value at idx was filled in from the
// keyword's defaults rather than specified in the deck.
func (i DeckItem) DefaultApplied(idx int) bool {
	if idx >= len(i.defaulted) {
		return true
	}
	return i.defaulted[idx]
}

// HasValue reports whether a value (explicit or defaulted) exists at idx.
func (i DeckItem) HasValue(idx int) bool {
	return idx < i.Len()
}

// Int returns the int value at idx, or zero when absent.
func (i DeckItem) Int(idx int) int {
	if i.Kind != ItemInt || idx >= len(i.ints) {
		return 0
	}
	return i.ints[idx]
}

// Double returns the double value at idx in deck units.
func (i DeckItem) Double(idx int) float64 {
	switch i.Kind {
	case ItemDouble:
		if idx < len(i.doubles) {
			return i.doubles[idx]
		}
	case ItemUDA:
		if idx < len(i.udas) {
			return i.udas[idx].Value
		}
	}
	return 0
}

// SIDouble returns the double value at idx converted to SI.
func (i DeckItem) SIDouble(idx int) float64 {
	return i.Double(idx) * i.scale()
}

// String returns the string value at idx, or "" when absent.
func (i DeckItem) String(idx int) string {
	if i.Kind != ItemString || idx >= len(i.strs) {
		return ""
	}
	return i.strs[idx]
}

// TrimmedString returns the string value at idx with surrounding
// whitespace removed.
func (i DeckItem) TrimmedString(idx int) string {
	return strings.TrimSpace(i.String(idx))
}

// UDA returns the value at idx as a UDAValue. Double items convert to
// literals carrying the item's SI scaling; string items convert to
// quantity references.
func (i DeckItem) UDA(idx int) UDAValue {
	switch i.Kind {
	case ItemUDA:
		if idx < len(i.udas) {
			u := i.udas[idx]
			if u.SIScale == 0 {
				u.SIScale = i.scale()
			}
			return u
		}
	case ItemDouble:
		if idx < len(i.doubles) {
			u := Literal(i.doubles[idx])
			u.SIScale = i.scale()
			return u
		}
	case ItemString:
		if idx < len(i.strs) {
			return Reference(strings.TrimSpace(i.strs[idx]))
		}
	}
	return Literal(0)
}

// Strings returns all string values of the item.
func (i DeckItem) Strings() []string {
	return append([]string(nil), i.strs...)
}

// Doubles returns all double values of the item in deck units.
func (i DeckItem) Doubles() []float64 {
	return append([]float64(nil), i.doubles...)
}

// Bool interprets the string value at idx as a deck boolean
// ("YES"/"NO", "Y"/"N", "TRUE"/"FALSE", "1"/"0").
func (i DeckItem) Bool(idx int) bool {
	switch strings.ToUpper(i.TrimmedString(idx)) {
	case "YES", "Y", "TRUE", "T", "1":
		return true
	default:
		return false
	}
}

func (i DeckItem) scale() float64 {
	if i.SIScale == 0 {
		return 1.0
	}
	return i.SIScale
}

// DeckRecord is one row of a keyword: an ordered list of named items.
type DeckRecord struct {
	items []DeckItem
	index map[string]int
}

// NewRecord builds a record from the given items in order.
func NewRecord(items ...DeckItem) DeckRecord {
	rec := DeckRecord{items: items, index: make(map[string]int, len(items))}
	for n, item := range items {
		rec.index[item.Name] = n
	}
	return rec
}

// Item looks an item up by name. Items the deck never mentioned come
// back as fully-defaulted placeholders so handlers can treat "absent"
// and "defaulted" uniformly.
func (r DeckRecord) Item(name string) DeckItem {
	if n, ok := r.index[name]; ok {
		return r.items[n]
	}
	return DeckItem{Name: name, Kind: ItemString, defaulted: []bool{true}, SIScale: 1.0}
}

// Has reports whether the record carries an item of the given name.
func (r DeckRecord) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// ItemAt returns the item at positional index idx.
func (r DeckRecord) ItemAt(idx int) DeckItem {
	return r.items[idx]
}

// Size returns the number of items in the record.
func (r DeckRecord) Size() int {
	return len(r.items)
}

// ItemsFrom returns the items from positional index idx onwards.
func (r DeckRecord) ItemsFrom(idx int) []DeckItem {
	if idx >= len(r.items) {
		return nil
	}
	return r.items[idx:]
}

// DeckKeyword is one named command block of the deck: a name, a source
// location, and an ordered list of records. Immutable once parsed.
type DeckKeyword struct {
	name     string
	location KeywordLocation
	records  []DeckRecord
}

// NewKeyword builds a keyword from records in deck order.
func NewKeyword(name string, location KeywordLocation, records ...DeckRecord) DeckKeyword {
	location.Keyword = name
	return DeckKeyword{name: name, location: location, records: records}
}

// Name returns the keyword mnemonic, e.g. "WCONPROD".
func (k DeckKeyword) Name() string { return k.name }

// Location returns the keyword's source location.
func (k DeckKeyword) Location() KeywordLocation { return k.location }

// Records returns the keyword's records in deck order.
func (k DeckKeyword) Records() []DeckRecord { return k.records }

// Record returns the record at index idx.
func (k DeckKeyword) Record(idx int) DeckRecord { return k.records[idx] }

// Size returns the number of records.
func (k DeckKeyword) Size() int { return len(k.records) }

// Empty reports whether the keyword has no records.
func (k DeckKeyword) Empty() bool { return len(k.records) == 0 }
