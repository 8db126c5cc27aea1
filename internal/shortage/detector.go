package shortage

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"donormatch/internal/aggregate"
	"donormatch/internal/donor/models"
	"donormatch/internal/geo"
)

// DefaultThreshold is the eligible-donor count below which a cell is critical.
const DefaultThreshold = 5

// ErrInvalidThreshold rejects a threshold of zero or less. Such a value would
// silently mark every cell critical or none of them.
var ErrInvalidThreshold = errors.New("shortage threshold must be positive")

// Flag marks a (unit, blood group) cell whose eligible count is below its
// threshold. Flags exist only for cells that are short.
type Flag struct {
	Unit       geo.Unit          `json:"unit"`
	BloodGroup models.BloodGroup `json:"blood_group"`
	Count      int               `json:"count"`
	Threshold  int               `json:"threshold"`
}

// Thresholds configures detection. Overrides replace Default for individual
// blood groups (rare groups such as O- may warrant a higher bar).
type Thresholds struct {
	Default   int                       `json:"default"`
	Overrides map[models.BloodGroup]int `json:"overrides,omitempty"`
}

// DefaultThresholds is a uniform threshold of DefaultThreshold.
func DefaultThresholds() Thresholds {
	return Thresholds{Default: DefaultThreshold}
}

// Uniform returns thresholds with the same value for every group.
func Uniform(n int) Thresholds {
	return Thresholds{Default: n}
}

// For returns the threshold that applies to a blood group.
func (t Thresholds) For(g models.BloodGroup) int {
	if v, ok := t.Overrides[g]; ok {
		return v
	}
	return t.Default
}

// Validate rejects non-positive values and overrides for unknown groups.
func (t Thresholds) Validate() error {
	if t.Default <= 0 {
		return fmt.Errorf("default threshold %d: %w", t.Default, ErrInvalidThreshold)
	}
	for g, v := range t.Overrides {
		if !g.IsValid() {
			return fmt.Errorf("threshold override for unknown blood group %q", g)
		}
		if v <= 0 {
			return fmt.Errorf("threshold %d for %s: %w", v, g, ErrInvalidThreshold)
		}
	}
	return nil
}

// ParseOverrides reads "O-=8,AB+=3" into an override map.
func ParseOverrides(s string) (map[models.BloodGroup]int, error) {
	out := make(map[models.BloodGroup]int)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("threshold override %q: expected GROUP=N", part)
		}
		g, err := models.ParseBloodGroup(name)
		if err != nil {
			return nil, fmt.Errorf("threshold override %q: %w", part, err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("threshold override %q: %w", part, err)
		}
		out[g] = n
	}
	return out, nil
}

// Detect flags every cell with EligibleCount below its group's threshold.
// Detection is a full recomputation over the given cells; nothing is carried
// between calls. Cells in the unknown blood-group bucket are never flagged.
//
// Invalid thresholds reject the call: the returned slice is empty (not nil)
// and the error wraps ErrInvalidThreshold.
func Detect(cells []aggregate.Cell, t Thresholds) ([]Flag, error) {
	if err := t.Validate(); err != nil {
		return []Flag{}, err
	}
	flags := make([]Flag, 0)
	for _, c := range cells {
		if !c.BloodGroup.IsValid() {
			continue
		}
		limit := t.For(c.BloodGroup)
		if c.EligibleCount < limit {
			flags = append(flags, Flag{
				Unit:       c.Unit,
				BloodGroup: c.BloodGroup,
				Count:      c.EligibleCount,
				Threshold:  limit,
			})
		}
	}
	return flags, nil
}

// Sort orders flags the same way aggregate.SortCells orders cells.
func Sort(flags []Flag) {
	slices.SortStableFunc(flags, func(a, b Flag) int {
		return aggregate.CompareUnitGroup(a.Unit, a.BloodGroup, b.Unit, b.BloodGroup)
	})
}
