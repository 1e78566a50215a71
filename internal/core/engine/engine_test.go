package engine

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/registry"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/core/rules"
	"github.com/colonyops/oops/internal/core/shell"
)

func fixed(name string, prio int, out ...string) rule.Rule {
	return rule.Func{
		Meta:            rule.Meta{RuleName: name, Prio: prio, NoOutput: true},
		MatchFunc:       func(*command.Command) bool { return true },
		CorrectionsFunc: func(*command.Command) []string { return out },
	}
}

func buildSet(t *testing.T, builtins []rule.Rule, decls []rule.Declaration, mutate func(*config.Settings)) *registry.RuleSet {
	t.Helper()
	s := config.DefaultSettings()
	if mutate != nil {
		mutate(&s)
	}
	set, err := registry.Build(builtins, decls, &s)
	require.NoError(t, err)
	return set
}

func scripts(res Result) []string {
	out := make([]string, 0, len(res.Corrections))
	for _, c := range res.Corrections {
		out = append(out, c.Script)
	}
	return out
}

func newCorrector() *Corrector {
	return New(zerolog.Nop())
}

func TestCorrect_Scenarios(t *testing.T) {
	builtins := rules.Builtin(rules.Options{
		Executables: func() []string { return []string{"git", "ls", "cat", "mkdir"} },
	})
	decls := []rule.Declaration{
		{Name: "myapp", MatchScript: "^myapp (.+)$", NewCommandPattern: "myapp --correct $1", RequiresOutput: boolPtr(false)},
	}
	set := buildSet(t, builtins, decls, nil)

	tests := []struct {
		name      string
		script    string
		output    string
		wantFirst string
		wantRule  string
		empty     bool
	}{
		{
			name:      "git typo",
			script:    "git psuh origin main",
			output:    "git: 'psuh' is not a git command. See 'git --help'.\n\nThe most similar command is\n\tpush\n",
			wantFirst: "git push origin main",
			wantRule:  "git_not_command",
		},
		{
			name:      "permission denied",
			script:    "cat /etc/shadow",
			output:    "cat: /etc/shadow: Permission denied",
			wantFirst: "sudo cat /etc/shadow",
			wantRule:  "sudo",
		},
		{
			name:      "missing parent directory",
			script:    "mkdir /tmp/a/b/c",
			output:    "mkdir: /tmp/a/b: No such file or directory",
			wantFirst: "mkdir -p /tmp/a/b/c",
			wantRule:  "mkdir_p",
		},
		{
			name:   "no applicable rule",
			script: "ls /nonexistent",
			output: "ls: cannot access '/nonexistent': No such file or directory",
			empty:  true,
		},
		{
			name:      "user pattern rule without output",
			script:    "myapp build",
			wantFirst: "myapp --correct build",
			wantRule:  "myapp",
		},
	}

	c := newCorrector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Correct(command.New(tt.script, tt.output, shell.Bash), set)
			assert.Empty(t, res.Warnings)

			if tt.empty {
				assert.Empty(t, res.Corrections)
				return
			}

			require.NotEmpty(t, res.Corrections)
			assert.Equal(t, tt.wantFirst, res.Corrections[0].Script)
			assert.Equal(t, tt.wantRule, res.Corrections[0].SourceRule)
		})
	}
}

func TestCorrect_Determinism(t *testing.T) {
	set := buildSet(t, []rule.Rule{
		fixed("a", 10, "x", "y"),
		fixed("b", 10, "z"),
		fixed("c", 5, "w"),
	}, nil, nil)

	cmd := command.New("orig", "", shell.Bash)
	c := newCorrector()

	first := c.Correct(cmd, set)
	for range 10 {
		assert.Equal(t, first, c.Correct(cmd, set))
	}
	assert.Equal(t, []string{"w", "x", "y", "z"}, scripts(first))
}

func TestCorrect_NoOpSuppression(t *testing.T) {
	set := buildSet(t, []rule.Rule{
		fixed("echo", 0, "git status", "  git status  ", "", "   ", "git status --short"),
	}, nil, nil)

	res := newCorrector().Correct(command.New("git status", "", shell.Bash), set)
	assert.Equal(t, []string{"git status --short"}, scripts(res))
}

func TestCorrect_DedupKeepsHigherPriorityAttribution(t *testing.T) {
	set := buildSet(t, []rule.Rule{
		fixed("low", 50, "git push origin main", "git push"),
		fixed("high", 10, "git push origin main"),
	}, nil, nil)

	res := newCorrector().Correct(command.New("git psuh origin main", "", shell.Bash), set)

	require.Len(t, res.Corrections, 2)
	assert.Equal(t, rule.CorrectedCommand{Script: "git push origin main", SourceRule: "high", Priority: 10}, res.Corrections[0])
	assert.Equal(t, rule.CorrectedCommand{Script: "git push", SourceRule: "low", Priority: 50}, res.Corrections[1])
}

func TestCorrect_DedupWithinRule(t *testing.T) {
	set := buildSet(t, []rule.Rule{fixed("a", 0, "x", "y", "x ")}, nil, nil)

	res := newCorrector().Correct(command.New("orig", "", shell.Bash), set)
	assert.Equal(t, []string{"x", "y"}, scripts(res))
}

func TestCorrect_Exclusion(t *testing.T) {
	set := buildSet(t, []rule.Rule{
		fixed("a", 0, "x"),
		fixed("b", 0, "y"),
	}, nil, func(s *config.Settings) {
		s.ExcludeRules = []string{"a"}
	})

	res := newCorrector().Correct(command.New("orig", "", shell.Bash), set)
	assert.Equal(t, []string{"y"}, scripts(res))
	for _, c := range res.Corrections {
		assert.NotEqual(t, "a", c.SourceRule)
	}
}

func TestCorrect_PriorityOverride(t *testing.T) {
	set := buildSet(t, []rule.Rule{
		fixed("a", 10, "x"),
		fixed("b", 20, "y"),
	}, nil, func(s *config.Settings) {
		s.Priority = map[string]int{"b": 1}
	})

	res := newCorrector().Correct(command.New("orig", "", shell.Bash), set)
	assert.Equal(t, []string{"y", "x"}, scripts(res))
	assert.Equal(t, 1, res.Corrections[0].Priority)
}

func TestCorrect_RequiresOutputGating(t *testing.T) {
	called := false
	needsOutput := rule.Func{
		Meta: rule.Meta{RuleName: "needs_output"},
		MatchFunc: func(*command.Command) bool {
			called = true
			return true
		},
		CorrectionsFunc: func(*command.Command) []string { return []string{"x"} },
	}
	set := buildSet(t, []rule.Rule{needsOutput, fixed("free", 0, "y")}, nil, nil)
	c := newCorrector()

	res := c.Correct(command.New("orig", "", shell.Bash), set)
	assert.False(t, called, "match must not run without output")
	assert.Equal(t, []string{"y"}, scripts(res))

	res = c.Correct(command.New("orig", "boom", shell.Bash), set)
	assert.True(t, called)
	assert.Equal(t, []string{"x", "y"}, scripts(res))
}

func TestCorrect_IsolatesPanics(t *testing.T) {
	errBoom := errors.New("boom")

	set := buildSet(t, []rule.Rule{
		fixed("first", 1, "a"),
		rule.Func{
			Meta:      rule.Meta{RuleName: "bad_match", Prio: 2, NoOutput: true},
			MatchFunc: func(*command.Command) bool { panic(errBoom) },
		},
		rule.Func{
			Meta:            rule.Meta{RuleName: "bad_corrections", Prio: 3, NoOutput: true},
			MatchFunc:       func(*command.Command) bool { return true },
			CorrectionsFunc: func(*command.Command) []string { panic("index out of range") },
		},
		fixed("last", 4, "b"),
	}, nil, nil)

	res := newCorrector().Correct(command.New("orig", "", shell.Bash), set)

	assert.Equal(t, []string{"a", "b"}, scripts(res))
	require.Len(t, res.Warnings, 2)

	assert.Equal(t, "bad_match", res.Warnings[0].Rule)
	assert.Equal(t, StageMatch, res.Warnings[0].Stage)
	assert.ErrorIs(t, res.Warnings[0], errBoom)

	assert.Equal(t, "bad_corrections", res.Warnings[1].Rule)
	assert.Equal(t, StageCorrections, res.Warnings[1].Stage)
	assert.Contains(t, res.Warnings[1].Error(), "index out of range")
}

func TestCorrect_DeclinedMatch(t *testing.T) {
	set := buildSet(t, []rule.Rule{fixed("empty", 0), fixed("other", 0, "x")}, nil, nil)

	res := newCorrector().Correct(command.New("orig", "", shell.Bash), set)
	assert.Equal(t, []string{"x"}, scripts(res))
	assert.Empty(t, res.Warnings)
}

func boolPtr(b bool) *bool { return &b }
