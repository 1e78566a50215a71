// Package registry builds the effective, ordered rule set for a correction
// pass from the built-in rules, user rule declarations and settings.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/rule"
)

var errDuplicateName = errors.New("a rule with this name is already registered")

// Entry is a rule in the effective set together with its resolved priority.
type Entry struct {
	Rule     rule.Rule
	Priority int
	Builtin  bool
	Source   string // rule file for user rules, empty for built-ins
}

// Name returns the rule name.
func (e Entry) Name() string { return e.Rule.Name() }

// RuleSet is an immutable, priority ordered collection of enabled rules. It is
// safe for concurrent use.
type RuleSet struct {
	entries  []Entry
	disabled []Entry
	known    []string
}

// Entries returns the enabled rules in evaluation order.
func (s *RuleSet) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Len returns the number of enabled rules.
func (s *RuleSet) Len() int {
	return len(s.entries)
}

// Lookup returns the enabled rule named name.
func (s *RuleSet) Lookup(name string) (Entry, bool) {
	for _, e := range s.entries {
		if e.Name() == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Disabled returns the valid rules that settings excluded or did not enable,
// in insertion order.
func (s *RuleSet) Disabled() []Entry {
	return slices.Clone(s.disabled)
}

// Known returns the names of every valid rule, enabled or not, in insertion
// order.
func (s *RuleSet) Known() []string {
	return slices.Clone(s.known)
}

// Build assembles the rule set. Built-ins come first in their declared order,
// followed by user rules in declaration order. Rules not enabled by settings
// are dropped, priorities are resolved against the settings overrides and the
// result is stable sorted by priority.
//
// Invalid or duplicate user rules are reported as *rule.DefinitionError values
// joined into the returned error. The set is always returned and holds every
// valid rule.
func Build(builtins []rule.Rule, decls []rule.Declaration, settings *config.Settings) (*RuleSet, error) {
	if settings == nil {
		defaults := config.DefaultSettings()
		settings = &defaults
	}

	var (
		candidates = make([]Entry, 0, len(builtins)+len(decls))
		seen       = make(map[string]struct{}, len(builtins)+len(decls))
		errs       []error
	)

	for _, r := range builtins {
		if _, dup := seen[r.Name()]; dup {
			errs = append(errs, &rule.DefinitionError{Rule: r.Name(), Err: errDuplicateName})
			continue
		}
		seen[r.Name()] = struct{}{}
		candidates = append(candidates, Entry{Rule: r, Builtin: true})
	}

	for _, d := range decls {
		compiled, err := rule.Compile(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[compiled.Name()]; dup {
			errs = append(errs, &rule.DefinitionError{Rule: d.Name, Source: d.Source, Err: errDuplicateName})
			continue
		}
		seen[compiled.Name()] = struct{}{}
		candidates = append(candidates, Entry{Rule: compiled, Source: compiled.Source()})
	}

	set := &RuleSet{known: make([]string, 0, len(candidates))}
	for _, e := range candidates {
		e.Priority = settings.RulePriority(e.Name(), e.Rule.Priority())
		set.known = append(set.known, e.Name())

		if !settings.IsRuleEnabled(e.Name(), rule.EnabledByDefault(e.Rule)) {
			set.disabled = append(set.disabled, e)
			continue
		}
		set.entries = append(set.entries, e)
	}

	slices.SortStableFunc(set.entries, func(a, b Entry) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	if len(errs) > 0 {
		return set, fmt.Errorf("load user rules: %w", errors.Join(errs...))
	}
	return set, nil
}
