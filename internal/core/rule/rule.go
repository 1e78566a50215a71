// Package rule defines the correction rule contract and the user-declared
// pattern rules that implement it.
package rule

import (
	"github.com/colonyops/oops/internal/core/command"
)

// DefaultPriority is the priority of rules that do not declare one. Lower
// values run and rank first.
const DefaultPriority = 1000

// Rule recognises one class of failed command and proposes fixes for it.
//
// Match and Corrections must not mutate the command. Corrections is only
// called after Match returned true and may return several candidates, most
// likely first.
type Rule interface {
	Name() string
	Priority() int
	RequiresOutput() bool
	Match(cmd *command.Command) bool
	Corrections(cmd *command.Command) []string
}

// DefaultDisabler is implemented by rules that stay disabled unless listed
// explicitly in the enabled rules setting.
type DefaultDisabler interface {
	EnabledByDefault() bool
}

// EnabledByDefault reports whether r is enabled when the settings enable ALL
// rules.
func EnabledByDefault(r Rule) bool {
	if d, ok := r.(DefaultDisabler); ok {
		return d.EnabledByDefault()
	}
	return true
}

// Describer is implemented by rules that carry a one-line description.
type Describer interface {
	Description() string
}

// Describe returns the rule description, or "" when it has none.
func Describe(r Rule) string {
	if d, ok := r.(Describer); ok {
		return d.Description()
	}
	return ""
}

// Meta carries the static metadata of a rule and implements the metadata half
// of Rule. Embed it in concrete rules.
type Meta struct {
	RuleName   string
	Prio       int
	NoOutput   bool // rule can match without captured output
	OffDefault bool // disabled unless named explicitly
	Desc       string
}

func (m Meta) Name() string { return m.RuleName }

func (m Meta) Priority() int { return m.Prio }

func (m Meta) RequiresOutput() bool { return !m.NoOutput }

func (m Meta) EnabledByDefault() bool { return !m.OffDefault }

func (m Meta) Description() string { return m.Desc }

// Func adapts plain functions to the Rule interface.
type Func struct {
	Meta
	MatchFunc       func(cmd *command.Command) bool
	CorrectionsFunc func(cmd *command.Command) []string
}

func (f Func) Match(cmd *command.Command) bool {
	if f.MatchFunc == nil {
		return false
	}
	return f.MatchFunc(cmd)
}

func (f Func) Corrections(cmd *command.Command) []string {
	if f.CorrectionsFunc == nil {
		return nil
	}
	return f.CorrectionsFunc(cmd)
}

// CorrectedCommand is one candidate fix in presentation order.
type CorrectedCommand struct {
	Script     string `json:"script"`
	SourceRule string `json:"rule"`
	Priority   int    `json:"priority"`
}
