// Package doctor runs health checks on the oops setup: settings, user rules
// and the shell integration.
package doctor

import "context"

// Status is the outcome of a single check item.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// CheckItem is one line of a check result.
type CheckItem struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
	// Fixable items are repaired by 'oops doctor --autofix'.
	Fixable bool `json:"fixable,omitempty"`
}

// Result groups the items reported by one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Check inspects one part of the setup.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunAll runs checks in order.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		results = append(results, check.Run(ctx))
	}
	return results
}

// Counts tallies item statuses across results.
type Counts struct {
	Passed  int `json:"passed"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Fixable int `json:"-"`
}

// Healthy reports whether no item failed.
func (c Counts) Healthy() bool { return c.Failed == 0 }

// Tally counts the items of results. Fixable counts warned or failed items
// that autofix can repair.
func Tally(results []Result) Counts {
	var c Counts
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				c.Passed++
				continue
			case StatusWarn:
				c.Warned++
			case StatusFail:
				c.Failed++
			}
			if item.Fixable {
				c.Fixable++
			}
		}
	}
	return c
}
