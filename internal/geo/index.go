package geo

import (
	"fmt"
	"sort"
	"sync"
)

// Unmapped is the sentinel unit name for anything the index cannot place.
// Aggregates treat it as a bucket of its own so totals always reconcile.
const Unmapped = "Unmapped"

// Level is one tier of the administrative hierarchy.
type Level string

const (
	LevelDivision Level = "division"
	LevelDistrict Level = "district"
	LevelUpazila  Level = "upazila"
)

// Levels lists the tiers from coarsest to finest.
var Levels = []Level{LevelDivision, LevelDistrict, LevelUpazila}

// IsValid checks if the level is one of the supported enum values.
func (l Level) IsValid() bool {
	switch l {
	case LevelDivision, LevelDistrict, LevelUpazila:
		return true
	}
	return false
}

// ParseLevel validates a level name from an outer layer.
func ParseLevel(s string) (Level, error) {
	l := Level(normalizeName(s))
	if !l.IsValid() {
		return "", fmt.Errorf("unknown geographic level %q", s)
	}
	return l, nil
}

// UnmappedReason says why a chain (or part of it) could not be resolved.
type UnmappedReason string

const (
	ReasonNone                 UnmappedReason = ""
	ReasonUnknownUpazila       UnmappedReason = "unknown_upazila"
	ReasonAmbiguousUpazila     UnmappedReason = "ambiguous_upazila"
	ReasonUpazilaNotInDistrict UnmappedReason = "upazila_not_in_district"
)

// Chain is a resolved division → district → upazila path. Any tier that could
// not be resolved holds Unmapped; an unmapped division implies unmapped
// district and upazila.
type Chain struct {
	Division string
	District string
	Upazila  string
	Reason   UnmappedReason
}

// IsMapped reports whether every tier resolved.
func (c Chain) IsMapped() bool {
	return c.Division != Unmapped && c.District != Unmapped && c.Upazila != Unmapped
}

// Unit projects the chain onto one level of the hierarchy. Lower tiers are
// blanked so units at the same level compare equal.
func (c Chain) Unit(level Level) Unit {
	switch level {
	case LevelDivision:
		return Unit{Level: level, Division: c.Division}
	case LevelDistrict:
		return Unit{Level: level, Division: c.Division, District: c.District}
	default:
		return Unit{Level: LevelUpazila, Division: c.Division, District: c.District, Upazila: c.Upazila}
	}
}

// Unit identifies one geographic bucket. Parent names are carried because
// upazila names repeat across districts.
type Unit struct {
	Level    Level  `json:"level"`
	Division string `json:"division"`
	District string `json:"district,omitempty"`
	Upazila  string `json:"upazila,omitempty"`
}

// Name returns the unit's own name at its level.
func (u Unit) Name() string {
	switch u.Level {
	case LevelDivision:
		return u.Division
	case LevelDistrict:
		return u.District
	default:
		return u.Upazila
	}
}

// Parent returns the enclosing unit one level up. Divisions are their own parent.
func (u Unit) Parent() Unit {
	switch u.Level {
	case LevelUpazila:
		return Unit{Level: LevelDistrict, Division: u.Division, District: u.District}
	default:
		return Unit{Level: LevelDivision, Division: u.Division}
	}
}

type districtEntry struct {
	name     string
	division string
	upazilas map[string]string // normalized -> canonical
}

// Index answers hierarchy lookups over an immutable table. It is safe for
// concurrent use and is shared by reference.
type Index struct {
	divisions     []string
	districtOrder map[string][]string // division -> canonical district names
	districts     map[string]*districtEntry
	upazilas      map[string][]*districtEntry // normalized upazila -> owning districts
	aliases       map[string]string
	upazilaCount  int
}

var defaultIndex = sync.OnceValue(func() *Index {
	ix, err := New(bangladesh, legacyNames)
	if err != nil {
		panic(fmt.Sprintf("geo: static table is invalid: %v", err))
	}
	return ix
})

// Default returns the index built from the static Bangladesh table. It is
// built once per process.
func Default() *Index {
	return defaultIndex()
}

// New builds an index and checks the hierarchy invariants: district names are
// unique across the country and upazila names are unique within a district.
func New(table []DivisionSpec, aliases map[string]string) (*Index, error) {
	ix := &Index{
		districtOrder: make(map[string][]string, len(table)),
		districts:     make(map[string]*districtEntry),
		upazilas:      make(map[string][]*districtEntry),
		aliases:       make(map[string]string, len(aliases)),
	}
	seenDivisions := make(map[string]bool, len(table))
	for _, div := range table {
		divKey := normalizeName(div.Name)
		if divKey == "" || divKey == normalizeName(Unmapped) {
			return nil, fmt.Errorf("invalid division name %q", div.Name)
		}
		if seenDivisions[divKey] {
			return nil, fmt.Errorf("duplicate division %q", div.Name)
		}
		seenDivisions[divKey] = true
		ix.divisions = append(ix.divisions, div.Name)

		for _, dist := range div.Districts {
			distKey := normalizeName(dist.Name)
			if distKey == "" {
				return nil, fmt.Errorf("empty district name in division %q", div.Name)
			}
			if existing, ok := ix.districts[distKey]; ok {
				return nil, fmt.Errorf("district %q listed under both %q and %q", dist.Name, existing.division, div.Name)
			}
			entry := &districtEntry{
				name:     dist.Name,
				division: div.Name,
				upazilas: make(map[string]string, len(dist.Upazilas)),
			}
			for _, uz := range dist.Upazilas {
				uzKey := normalizeName(uz)
				if uzKey == "" {
					return nil, fmt.Errorf("empty upazila name in district %q", dist.Name)
				}
				if _, dup := entry.upazilas[uzKey]; dup {
					return nil, fmt.Errorf("duplicate upazila %q in district %q", uz, dist.Name)
				}
				entry.upazilas[uzKey] = uz
				ix.upazilas[uzKey] = append(ix.upazilas[uzKey], entry)
				ix.upazilaCount++
			}
			ix.districts[distKey] = entry
			ix.districtOrder[div.Name] = append(ix.districtOrder[div.Name], dist.Name)
		}
	}
	for from, to := range aliases {
		ix.aliases[normalizeName(from)] = normalizeName(to)
	}
	return ix, nil
}

func (ix *Index) key(name string) string {
	k := normalizeName(name)
	if canonical, ok := ix.aliases[k]; ok {
		return canonical
	}
	return k
}

func (ix *Index) lookupDivision(name string) (string, bool) {
	k := ix.key(name)
	for _, d := range ix.divisions {
		if normalizeName(d) == k {
			return d, true
		}
	}
	return "", false
}

// DivisionOf returns the division a district belongs to, or Unmapped.
func (ix *Index) DivisionOf(district string) string {
	if d, ok := ix.districts[ix.key(district)]; ok {
		return d.division
	}
	return Unmapped
}

// DistrictOf returns the district an upazila belongs to, or Unmapped when the
// name is unknown or shared by several districts.
func (ix *Index) DistrictOf(upazila string) string {
	owners := ix.upazilas[ix.key(upazila)]
	if len(owners) != 1 {
		return Unmapped
	}
	return owners[0].name
}

// Resolve places a location in the hierarchy. The district hint, when it
// names a known district, takes precedence: an upazila that does not belong
// to it is reported as Unmapped under that district instead of being moved.
func (ix *Index) Resolve(districtHint, upazila string) Chain {
	if districtHint != "" {
		if d, ok := ix.districts[ix.key(districtHint)]; ok {
			if uz, ok := d.upazilas[ix.key(upazila)]; ok {
				return Chain{Division: d.division, District: d.name, Upazila: uz}
			}
			reason := ReasonUnknownUpazila
			if len(ix.upazilas[ix.key(upazila)]) > 0 {
				reason = ReasonUpazilaNotInDistrict
			}
			return Chain{Division: d.division, District: d.name, Upazila: Unmapped, Reason: reason}
		}
	}

	owners := ix.upazilas[ix.key(upazila)]
	switch len(owners) {
	case 0:
		return unmappedChain(ReasonUnknownUpazila)
	case 1:
		d := owners[0]
		return Chain{Division: d.division, District: d.name, Upazila: d.upazilas[ix.key(upazila)]}
	default:
		return unmappedChain(ReasonAmbiguousUpazila)
	}
}

func unmappedChain(reason UnmappedReason) Chain {
	return Chain{Division: Unmapped, District: Unmapped, Upazila: Unmapped, Reason: reason}
}

// Divisions returns division names in table order.
func (ix *Index) Divisions() []string {
	return append([]string(nil), ix.divisions...)
}

// Districts returns the districts of a division, or nil for an unknown one.
func (ix *Index) Districts(division string) []string {
	d, ok := ix.lookupDivision(division)
	if !ok {
		return nil
	}
	return append([]string(nil), ix.districtOrder[d]...)
}

// Upazilas returns the upazilas of a district in sorted order.
func (ix *Index) Upazilas(district string) []string {
	d, ok := ix.districts[ix.key(district)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(d.upazilas))
	for _, uz := range d.upazilas {
		out = append(out, uz)
	}
	sort.Strings(out)
	return out
}

// Units enumerates every known unit at a level. Used to build dense grids.
func (ix *Index) Units(level Level) []Unit {
	var out []Unit
	for _, div := range ix.divisions {
		if level == LevelDivision {
			out = append(out, Unit{Level: level, Division: div})
			continue
		}
		for _, dist := range ix.districtOrder[div] {
			if level == LevelDistrict {
				out = append(out, Unit{Level: level, Division: div, District: dist})
				continue
			}
			for _, uz := range ix.Upazilas(dist) {
				out = append(out, Unit{Level: level, Division: div, District: dist, Upazila: uz})
			}
		}
	}
	return out
}

// Size reports the number of divisions, districts and upazilas.
func (ix *Index) Size() (divisions, districts, upazilas int) {
	return len(ix.divisions), len(ix.districts), ix.upazilaCount
}
