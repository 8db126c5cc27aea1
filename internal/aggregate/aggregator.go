package aggregate

import (
	"time"

	"donormatch/internal/donor/models"
	"donormatch/internal/eligibility"
	"donormatch/internal/geo"
)

// Cell is the donor/request tally for one (unit, blood group) pair.
//
// Invariants:
//   - EligibleCount + IncompleteCount <= TotalCount
//   - exactly one cell per (unit, blood group) per aggregation pass
type Cell struct {
	Unit             geo.Unit          `json:"unit"`
	BloodGroup       models.BloodGroup `json:"blood_group"`
	EligibleCount    int               `json:"eligible_count"`
	TotalCount       int               `json:"total_count"`
	IncompleteCount  int               `json:"incomplete_count"`
	OpenRequestCount int               `json:"open_request_count"`
}

type cellKey struct {
	unit  geo.Unit
	group models.BloodGroup
}

// Aggregator rolls donors up the division/district/upazila hierarchy. It holds
// only immutable configuration, so one value can serve concurrent callers.
type Aggregator struct {
	index  *geo.Index
	policy eligibility.Policy
	dense  []geo.Level
}

type Option func(*Aggregator)

// WithPolicy overrides the eligibility policy used to count eligible donors.
func WithPolicy(p eligibility.Policy) Option {
	return func(a *Aggregator) {
		a.policy = p
	}
}

// WithDenseGrid pre-creates a zero cell for every known unit and blood group
// at the given levels. A unit with no donors of a group then shows up as a
// zero-count cell instead of being absent.
func WithDenseGrid(levels ...geo.Level) Option {
	return func(a *Aggregator) {
		a.dense = append(a.dense, levels...)
	}
}

// New constructs an Aggregator. A nil index falls back to geo.Default().
func New(index *geo.Index, opts ...Option) *Aggregator {
	if index == nil {
		index = geo.Default()
	}
	a := &Aggregator{index: index, policy: eligibility.DefaultPolicy}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate produces division, district and upazila cells from one pass over
// the donors. Output order is unspecified; use SortCells for a stable order.
func (a *Aggregator) Aggregate(donors []models.Donor, asOf time.Time) []Cell {
	return a.AggregateDemand(donors, nil, asOf)
}

// AggregateDemand is Aggregate plus open-request counts per cell.
func (a *Aggregator) AggregateDemand(donors []models.Donor, requests []models.DonationRequest, asOf time.Time) []Cell {
	p := a.newPass()

	for i := range donors {
		d := &donors[i]
		group := bucketGroup(d.BloodGroup)
		chain := a.index.Resolve(d.Location.District, d.Location.Upazila)

		complete := d.HasCompleteProfile() && group != models.GroupUnknown
		eligible := complete && a.policy.Evaluate(*d, asOf).IsEligible

		for _, level := range geo.Levels {
			c := p.cell(chain.Unit(level), group)
			c.TotalCount++
			if !complete {
				c.IncompleteCount++
			}
			if eligible {
				c.EligibleCount++
			}
		}
	}

	for i := range requests {
		r := &requests[i]
		if !r.Status.IsOpen() {
			continue
		}
		group := bucketGroup(r.BloodGroup)
		chain := a.index.Resolve(r.Location.District, r.Location.Upazila)
		for _, level := range geo.Levels {
			p.cell(chain.Unit(level), group).OpenRequestCount++
		}
	}

	return p.cells()
}

func bucketGroup(g models.BloodGroup) models.BloodGroup {
	if g.IsValid() {
		return g
	}
	return models.GroupUnknown
}

// pass owns the cells of a single aggregation call. Nothing in it outlives
// the call, so concurrent aggregations never share partial state.
type pass struct {
	byKey map[cellKey]*Cell
	order []*Cell
}

func (a *Aggregator) newPass() *pass {
	p := &pass{byKey: make(map[cellKey]*Cell)}
	for _, level := range a.dense {
		for _, u := range a.index.Units(level) {
			for _, g := range models.BloodGroups {
				p.cell(u, g)
			}
		}
	}
	return p
}

func (p *pass) cell(u geo.Unit, g models.BloodGroup) *Cell {
	k := cellKey{unit: u, group: g}
	if c, ok := p.byKey[k]; ok {
		return c
	}
	c := &Cell{Unit: u, BloodGroup: g}
	p.byKey[k] = c
	p.order = append(p.order, c)
	return c
}

func (p *pass) cells() []Cell {
	out := make([]Cell, len(p.order))
	for i, c := range p.order {
		out[i] = *c
	}
	return out
}
