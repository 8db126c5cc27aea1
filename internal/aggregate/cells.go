package aggregate

import (
	"cmp"
	"slices"

	"donormatch/internal/donor/models"
	"donormatch/internal/geo"
)

// Filter returns the cells at one level, preserving order.
func Filter(cells []Cell, level geo.Level) []Cell {
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if c.Unit.Level == level {
			out = append(out, c)
		}
	}
	return out
}

// SortCells orders cells by level (coarse first), then division, district,
// upazila and blood group display order. Unmapped sorts after named units.
func SortCells(cells []Cell) {
	slices.SortStableFunc(cells, func(a, b Cell) int {
		return CompareUnitGroup(a.Unit, a.BloodGroup, b.Unit, b.BloodGroup)
	})
}

// CompareUnitGroup is the ordering used by SortCells, exported for other
// read-models keyed by (unit, blood group).
func CompareUnitGroup(ua geo.Unit, ga models.BloodGroup, ub geo.Unit, gb models.BloodGroup) int {
	return cmp.Or(
		cmp.Compare(levelRank(ua.Level), levelRank(ub.Level)),
		compareName(ua.Division, ub.Division),
		compareName(ua.District, ub.District),
		compareName(ua.Upazila, ub.Upazila),
		cmp.Compare(groupRank(ga), groupRank(gb)),
	)
}

func levelRank(l geo.Level) int {
	return slices.Index(geo.Levels, l)
}

func groupRank(g models.BloodGroup) int {
	if i := slices.Index(models.BloodGroups, g); i >= 0 {
		return i
	}
	return len(models.BloodGroups)
}

func compareName(a, b string) int {
	if (a == geo.Unmapped) != (b == geo.Unmapped) {
		if a == geo.Unmapped {
			return 1
		}
		return -1
	}
	return cmp.Compare(a, b)
}

// Totals sums the cells at one level. Because every donor lands in exactly
// one unit per level, the result is the same for every level.
type Totals struct {
	Total        int `json:"total"`
	Eligible     int `json:"eligible"`
	Incomplete   int `json:"incomplete"`
	OpenRequests int `json:"open_requests"`
}

// Sum totals the cells at the given level.
func Sum(cells []Cell, level geo.Level) Totals {
	var t Totals
	for _, c := range cells {
		if c.Unit.Level != level {
			continue
		}
		t.Total += c.TotalCount
		t.Eligible += c.EligibleCount
		t.Incomplete += c.IncompleteCount
		t.OpenRequests += c.OpenRequestCount
	}
	return t
}

// ByGroup sums eligible and total counts per blood group at one level.
func ByGroup(cells []Cell, level geo.Level) map[models.BloodGroup]Totals {
	out := make(map[models.BloodGroup]Totals, len(models.BloodGroups))
	for _, c := range cells {
		if c.Unit.Level != level {
			continue
		}
		t := out[c.BloodGroup]
		t.Total += c.TotalCount
		t.Eligible += c.EligibleCount
		t.Incomplete += c.IncompleteCount
		t.OpenRequests += c.OpenRequestCount
		out[c.BloodGroup] = t
	}
	return out
}
