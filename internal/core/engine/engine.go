// Package engine runs the match, generate, dedupe and rank pipeline of a
// correction pass.
package engine

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/registry"
	"github.com/colonyops/oops/internal/core/rule"
)

// Stage names the rule method that failed.
type Stage string

const (
	StageMatch       Stage = "match"
	StageCorrections Stage = "corrections"
)

// EvaluationWarning reports a rule that panicked while evaluating a command.
// The rule contributes nothing for that command.
type EvaluationWarning struct {
	Rule  string
	Stage Stage
	Err   error
}

func (w EvaluationWarning) Error() string {
	return fmt.Sprintf("rule %q failed during %s: %v", w.Rule, w.Stage, w.Err)
}

func (w EvaluationWarning) Unwrap() error {
	return w.Err
}

// Result is the outcome of one correction pass.
type Result struct {
	// Corrections are in presentation order. Empty means no rule matched.
	Corrections []rule.CorrectedCommand
	Warnings    []EvaluationWarning
}

// Corrector evaluates rule sets against failed commands. It holds no state
// between calls; one Corrector may serve concurrent callers.
type Corrector struct {
	log zerolog.Logger
}

// New creates a Corrector that logs rule activity to log.
func New(log zerolog.Logger) *Corrector {
	return &Corrector{log: log}
}

// Correct returns the distinct corrections the enabled rules propose for cmd.
//
// Rules are evaluated in set order. Rules that require output are skipped
// when cmd has none. Candidates equal to the original script or empty after
// trimming are dropped, and a script proposed more than once keeps only its
// first occurrence.
func (c *Corrector) Correct(cmd *command.Command, set *registry.RuleSet) Result {
	var (
		res      Result
		original = strings.TrimSpace(cmd.Script())
		seen     = make(map[string]struct{})
	)

	for _, entry := range set.Entries() {
		name := entry.Name()

		if entry.Rule.RequiresOutput() && !cmd.HasOutput() {
			c.log.Debug().Str("rule", name).Msg("skipped, no output")
			continue
		}

		matched, err := safeMatch(entry.Rule, cmd)
		if err != nil {
			res.Warnings = append(res.Warnings, c.warn(name, StageMatch, err))
			continue
		}
		if !matched {
			continue
		}

		candidates, err := safeCorrections(entry.Rule, cmd)
		if err != nil {
			res.Warnings = append(res.Warnings, c.warn(name, StageCorrections, err))
			continue
		}

		c.log.Debug().Str("rule", name).Int("priority", entry.Priority).Int("candidates", len(candidates)).Msg("matched")

		for _, script := range candidates {
			script = strings.TrimSpace(script)
			if script == "" || script == original {
				continue
			}
			if _, dup := seen[script]; dup {
				continue
			}
			seen[script] = struct{}{}

			res.Corrections = append(res.Corrections, rule.CorrectedCommand{
				Script:     script,
				SourceRule: name,
				Priority:   entry.Priority,
			})
		}
	}

	return res
}

func (c *Corrector) warn(name string, stage Stage, err error) EvaluationWarning {
	w := EvaluationWarning{Rule: name, Stage: stage, Err: err}
	c.log.Warn().Err(err).Str("rule", name).Str("stage", string(stage)).Msg("rule evaluation failed")
	return w
}

func safeMatch(r rule.Rule, cmd *command.Command) (matched bool, err error) {
	defer recoverInto(&err)
	return r.Match(cmd), nil
}

func safeCorrections(r rule.Rule, cmd *command.Command) (out []string, err error) {
	defer recoverInto(&err)
	return r.Corrections(cmd), nil
}

func recoverInto(err *error) {
	if v := recover(); v != nil {
		if e, ok := v.(error); ok {
			*err = fmt.Errorf("panic: %w", e)
			return
		}
		*err = fmt.Errorf("panic: %v", v)
	}
}
