package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"donormatch/internal/availability"
	"donormatch/internal/donor/models"
	"donormatch/internal/eligibility"
	id "donormatch/pkg/domain"
)

// ErrFunnelNotMonotonic is returned when a stage would exceed the stage
// before it. Stage counts are built so this cannot happen; the check guards
// against regressions in how stages are reached.
var ErrFunnelNotMonotonic = errors.New("funnel stages are not monotonically non-increasing")

// Stage is one step of the donor journey.
type Stage string

const (
	StageRegistered Stage = "registered"
	StageEligible   Stage = "eligible"
	StageAvailable  Stage = "available"
	StageScheduled  Stage = "scheduled"
	StageCompleted  Stage = "completed"
)

// Stages lists the funnel in journey order.
var Stages = []Stage{StageRegistered, StageEligible, StageAvailable, StageScheduled, StageCompleted}

// FunnelStage is one row of the funnel read-model. Conversion is the share of
// the previous stage that reached this one, in percent; the first stage is 100.
type FunnelStage struct {
	Stage      Stage           `json:"stage"`
	Count      int             `json:"count"`
	Conversion decimal.Decimal `json:"conversion_pct"`
}

// Funnel counts how far each donor has progressed. A donor is counted in
// every stage up to the furthest one it reached, so a donor who has already
// donated (and is therefore temporarily ineligible) still counts as having
// passed Eligible, Available and Scheduled.
//
// Scheduled is reached through an active booking or a scheduled/in-progress
// request naming the donor; Completed through a completed request naming the
// donor on or before asOf. Requests naming donors outside the snapshot are
// ignored.
func Funnel(policy eligibility.Policy, donors []models.Donor, requests []models.DonationRequest, asOf time.Time) ([]FunnelStage, error) {
	scheduled := make(map[id.DonorID]bool)
	completed := make(map[id.DonorID]bool)
	for _, r := range requests {
		if r.DonorID == nil {
			continue
		}
		switch r.Status {
		case models.RequestScheduled, models.RequestInProgress:
			scheduled[*r.DonorID] = true
		case models.RequestCompleted:
			if r.CompletedAt == nil || !r.CompletedAt.After(asOf) {
				completed[*r.DonorID] = true
			}
		}
	}

	reached := make([]int, len(Stages))
	for _, d := range donors {
		furthest := furthestStage(policy, d, asOf, scheduled[d.ID], completed[d.ID])
		for i := 0; i <= furthest; i++ {
			reached[i]++
		}
	}

	stages := make([]FunnelStage, len(Stages))
	for i, s := range Stages {
		stages[i] = FunnelStage{Stage: s, Count: reached[i], Conversion: conversion(reached, i)}
	}
	if err := ValidateFunnel(stages); err != nil {
		return nil, err
	}
	return stages, nil
}

func furthestStage(policy eligibility.Policy, d models.Donor, asOf time.Time, scheduled, completed bool) int {
	if completed {
		return 4
	}
	result := policy.Evaluate(d, asOf)
	status := availability.DeriveStatus(result, d)
	switch {
	case scheduled || status == availability.StatusBooked || status == availability.StatusInProgress:
		return 3
	case status == availability.StatusEligible:
		return 2
	case result.IsEligible:
		return 1
	}
	return 0
}

func conversion(counts []int, i int) decimal.Decimal {
	if i == 0 {
		if counts[0] == 0 {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return Percent(counts[i], counts[i-1])
}

// ValidateFunnel asserts that no stage exceeds the stage before it.
func ValidateFunnel(stages []FunnelStage) error {
	for i := 1; i < len(stages); i++ {
		if stages[i].Count > stages[i-1].Count {
			return fmt.Errorf("%s (%d) exceeds %s (%d): %w",
				stages[i].Stage, stages[i].Count, stages[i-1].Stage, stages[i-1].Count, ErrFunnelNotMonotonic)
		}
	}
	return nil
}
