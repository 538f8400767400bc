package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sched "github.com/reservoir-sim/reservoir-sim/sched"
)

// Define structs for the YAML deck format: a pre-tokenized keyword
// stream grouped into report steps.
type DeckFile struct {
	Units    string            `yaml:"units"`
	Policies map[string]string `yaml:"policies"`
	Steps    []DeckStep        `yaml:"steps"`
}

type DeckStep struct {
	Days     float64       `yaml:"days"`
	Keywords []DeckKeyword `yaml:"keywords"`
}

type DeckKeyword struct {
	Name    string       `yaml:"name"`
	File    string       `yaml:"file"`
	Line    int          `yaml:"line"`
	Records []DeckRecord `yaml:"records"`
}

type DeckRecord struct {
	Items []DeckItem `yaml:"items"`
}

type DeckItem struct {
	Name    string    `yaml:"name"`
	Ints    []int     `yaml:"ints"`
	Doubles []float64 `yaml:"doubles"`
	Strings []string  `yaml:"strings"`

	// Dim names the physical dimension of a double item; values are
	// converted from deck units to SI on load.
	Dim string `yaml:"dim"`
}

// LoadDeck reads and parses a YAML deck file.
func LoadDeck(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var deck DeckFile
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &deck, nil
}

// UnitSystem resolves the deck's unit convention.
func (d *DeckFile) UnitSystem() (sched.UnitSystem, error) {
	return sched.UnitSystemFromName(d.Units)
}

// ParseContext builds the error-policy configuration from the deck's
// policies block.
func (d *DeckFile) ParseContext() (*sched.ParseContext, error) {
	pc := sched.NewParseContext()
	for kind, action := range d.Policies {
		switch action {
		case "THROW":
			pc.Update(kind, sched.ActionThrow)
		case "WARN":
			pc.Update(kind, sched.ActionWarn)
		case "IGNORE":
			pc.Update(kind, sched.ActionIgnore)
		default:
			return nil, fmt.Errorf("unknown policy action %q for %s", action, kind)
		}
	}
	return pc, nil
}

// Build converts one YAML keyword into the engine's representation.
func (k DeckKeyword) Build(units sched.UnitSystem) sched.DeckKeyword {
	records := make([]sched.DeckRecord, 0, len(k.Records))
	for _, record := range k.Records {
		items := make([]sched.DeckItem, 0, len(record.Items))
		for _, item := range record.Items {
			items = append(items, item.build(units))
		}
		records = append(records, sched.NewRecord(items...))
	}
	file := k.File
	if file == "" {
		file = "DECK"
	}
	location := sched.KeywordLocation{Filename: file, Lineno: k.Line}
	return sched.NewKeyword(k.Name, location, records...)
}

func (i DeckItem) build(units sched.UnitSystem) sched.DeckItem {
	switch {
	case len(i.Ints) > 0:
		return sched.NewIntItem(i.Name, i.Ints...)
	case len(i.Doubles) > 0 && i.Dim != "":
		return sched.NewDimensionedItem(i.Name, i.Dim, units, i.Doubles...)
	case len(i.Doubles) > 0:
		return sched.NewDoubleItem(i.Name, i.Doubles...)
	default:
		return sched.NewStringItem(i.Name, i.Strings...)
	}
}
