package testutil

import "testing"

type step string

const (
	stepGiven step = "Given"
	stepWhen  step = "When"
	stepThen  step = "Then"
	stepAnd   step = "And"
)

// Given, When, Then and And nest subtests so a donor journey reads top to
// bottom in -v output.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	runStep(t, stepGiven, desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	runStep(t, stepWhen, desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	runStep(t, stepThen, desc, fn)
}

// And continues the previous step at the same nesting level.
func And(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	runStep(t, stepAnd, desc, fn)
}

func runStep(t *testing.T, s step, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(string(s)+" "+desc, fn)
}
