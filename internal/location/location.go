// Package location holds the read-only province/district/sector reference
// data used by the submission form and, optionally, by validation.
package location

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed locations.yaml
var defaultDataset []byte

// Province is a top-level administrative unit.
type Province struct {
	Name      string     `yaml:"name" json:"name"`
	Districts []District `yaml:"districts" json:"districts"`
}

// District belongs to exactly one province.
type District struct {
	Name    string   `yaml:"name" json:"name"`
	Sectors []string `yaml:"sectors" json:"sectors"`
}

// Dataset is an immutable, indexed view of the hierarchy.
type Dataset struct {
	provinces []Province
	districts map[string][]string // province -> districts
	sectors   map[string][]string // district -> sectors
	parent    map[string]string   // district -> province
}

type document struct {
	Provinces []Province `yaml:"provinces"`
}

// Default returns the dataset compiled into the binary.
func Default() *Dataset {
	ds, err := Parse(defaultDataset)
	if err != nil {
		panic("location: embedded dataset is invalid: " + err.Error())
	}
	return ds
}

// LoadFile reads a dataset from a YAML file.
func LoadFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location dataset: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and indexes a YAML dataset. District names must be unique
// across provinces because sectors are looked up by district alone.
func Parse(raw []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode location dataset: %w", err)
	}
	if len(doc.Provinces) == 0 {
		return nil, fmt.Errorf("location dataset has no provinces")
	}

	ds := &Dataset{
		provinces: doc.Provinces,
		districts: make(map[string][]string, len(doc.Provinces)),
		sectors:   make(map[string][]string),
		parent:    make(map[string]string),
	}
	for _, p := range doc.Provinces {
		if p.Name == "" {
			return nil, fmt.Errorf("location dataset has a province without a name")
		}
		if _, dup := ds.districts[p.Name]; dup {
			return nil, fmt.Errorf("duplicate province %q", p.Name)
		}
		names := make([]string, 0, len(p.Districts))
		for _, d := range p.Districts {
			if owner, dup := ds.parent[d.Name]; dup {
				return nil, fmt.Errorf("district %q listed under %q and %q", d.Name, owner, p.Name)
			}
			ds.parent[d.Name] = p.Name
			ds.sectors[d.Name] = append([]string(nil), d.Sectors...)
			names = append(names, d.Name)
		}
		ds.districts[p.Name] = names
	}
	return ds, nil
}

// Provinces lists province names in dataset order.
func (d *Dataset) Provinces() []string {
	out := make([]string, 0, len(d.provinces))
	for _, p := range d.provinces {
		out = append(out, p.Name)
	}
	return out
}

// Districts lists the districts of a province, or nil when unknown.
func (d *Dataset) Districts(province string) []string {
	return append([]string(nil), d.districts[province]...)
}

// Sectors lists the sectors of a district, or nil when unknown.
func (d *Dataset) Sectors(district string) []string {
	return append([]string(nil), d.sectors[district]...)
}

// Tree returns the full hierarchy for rendering.
func (d *Dataset) Tree() []Province {
	out := make([]Province, len(d.provinces))
	for i, p := range d.provinces {
		out[i] = Province{Name: p.Name, Districts: make([]District, len(p.Districts))}
		for j, dist := range p.Districts {
			out[i].Districts[j] = District{Name: dist.Name, Sectors: append([]string(nil), dist.Sectors...)}
		}
	}
	return out
}

// Check reports which level of the triple falls outside the hierarchy.
// The returned map is keyed by field name and is empty when the triple is
// consistent.
func (d *Dataset) Check(province, district, sector string) map[string]string {
	problems := map[string]string{}
	if _, ok := d.districts[province]; !ok {
		problems["province"] = "unknown province"
		return problems
	}
	if d.parent[district] != province {
		problems["district"] = fmt.Sprintf("district is not in %s", province)
		return problems
	}
	for _, s := range d.sectors[district] {
		if s == sector {
			return problems
		}
	}
	problems["sector"] = fmt.Sprintf("sector is not in %s", district)
	return problems
}

// Contains reports whether the triple is a valid path in the hierarchy.
func (d *Dataset) Contains(province, district, sector string) bool {
	return len(d.Check(province, district, sector)) == 0
}
