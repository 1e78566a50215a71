package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/core/rules"
)

func fake(name string, prio int) rule.Rule {
	return rule.Func{Meta: rule.Meta{RuleName: name, Prio: prio}}
}

func settings(mutate func(s *config.Settings)) *config.Settings {
	s := config.DefaultSettings()
	if mutate != nil {
		mutate(&s)
	}
	return &s
}

func names(set *RuleSet) []string {
	var out []string
	for _, e := range set.Entries() {
		out = append(out, e.Name())
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func TestBuild_OrderIsStableByPriority(t *testing.T) {
	builtins := []rule.Rule{
		fake("a", 1000),
		fake("b", 500),
		fake("c", 1000),
		fake("d", 500),
	}
	decls := []rule.Declaration{
		{Name: "user_1", MatchScript: "^x$", NewCommand: "y"},
		{Name: "user_2", MatchScript: "^x$", NewCommand: "y", Priority: intPtr(500)},
	}

	set, err := Build(builtins, decls, settings(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "d", "user_2", "a", "c", "user_1"}, names(set))
	assert.Equal(t, 6, set.Len())
}

func TestBuild_ZeroPriorityUserRuleSortsFirst(t *testing.T) {
	builtins := []rule.Rule{fake("mid", 500), fake("plain", rule.DefaultPriority)}
	decls := []rule.Declaration{
		{Name: "urgent", MatchScript: "^x$", NewCommand: "y", Priority: intPtr(0)},
		{Name: "unset", MatchScript: "^x$", NewCommand: "y"},
	}

	set, err := Build(builtins, decls, settings(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"urgent", "mid", "plain", "unset"}, names(set))

	e, ok := set.Lookup("urgent")
	require.True(t, ok)
	assert.Equal(t, 0, e.Priority)

	e, ok = set.Lookup("unset")
	require.True(t, ok)
	assert.Equal(t, rule.DefaultPriority, e.Priority)
}

func TestBuild_PriorityOverrides(t *testing.T) {
	builtins := []rule.Rule{fake("a", 100), fake("b", 200), fake("c", 300)}

	set, err := Build(builtins, nil, settings(func(s *config.Settings) {
		s.Priority = map[string]int{"c": 1, "a": 999}
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "b", "a"}, names(set))

	e, ok := set.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, 1, e.Priority)
	assert.Equal(t, 300, e.Rule.Priority(), "rule keeps its own default")
}

func TestBuild_Exclusion(t *testing.T) {
	builtins := []rule.Rule{fake("a", 0), fake("b", 0)}
	decls := []rule.Declaration{{Name: "mine", MatchScript: "^x$", NewCommand: "y"}}

	set, err := Build(builtins, decls, settings(func(s *config.Settings) {
		s.ExcludeRules = []string{"b", "mine"}
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, names(set))
	_, ok := set.Lookup("b")
	assert.False(t, ok)

	var disabled []string
	for _, e := range set.Disabled() {
		disabled = append(disabled, e.Name())
	}
	assert.Equal(t, []string{"b", "mine"}, disabled)
	assert.Equal(t, []string{"a", "b", "mine"}, set.Known())
}

func TestBuild_EnabledByDefault(t *testing.T) {
	builtins := []rule.Rule{
		fake("on", 0),
		rule.Func{Meta: rule.Meta{RuleName: "off", OffDefault: true}},
	}
	decls := []rule.Declaration{
		{Name: "user_off", MatchScript: "^x$", NewCommand: "y", Enabled: boolPtr(false)},
	}

	t.Run("all", func(t *testing.T) {
		set, err := Build(builtins, decls, settings(nil))
		require.NoError(t, err)
		assert.Equal(t, []string{"on"}, names(set))
	})

	t.Run("explicit", func(t *testing.T) {
		set, err := Build(builtins, decls, settings(func(s *config.Settings) {
			s.Rules = []string{config.AllRules, "off", "user_off"}
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"on", "off", "user_off"}, names(set))
	})

	t.Run("only listed", func(t *testing.T) {
		set, err := Build(builtins, decls, settings(func(s *config.Settings) {
			s.Rules = []string{"off"}
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"off"}, names(set))
	})
}

func TestBuild_InvalidUserRulesAreIsolated(t *testing.T) {
	decls := []rule.Declaration{
		{Name: "bad_regex", MatchScript: "([", NewCommand: "y", Source: "/rules/bad_regex.yaml"},
		{Name: "good", MatchScript: "^myapp (.+)$", NewCommandPattern: "myapp --correct $1"},
		{Name: "bad_group", MatchScript: "^myapp (.+)$", NewCommandPattern: "myapp $2"},
	}

	set, err := Build([]rule.Rule{fake("a", 0)}, decls, settings(nil))
	require.Error(t, err)

	assert.Equal(t, []string{"a", "good"}, names(set))

	var defErr *rule.DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, "bad_regex", defErr.Rule)
	assert.Equal(t, "/rules/bad_regex.yaml", defErr.Source)

	assert.Contains(t, err.Error(), `rule "bad_regex"`)
	assert.Contains(t, err.Error(), `rule "bad_group"`)
	assert.NotContains(t, err.Error(), `rule "good"`)
}

func TestBuild_DuplicateUserRule(t *testing.T) {
	decls := []rule.Declaration{
		{Name: "sudo", MatchScript: "^x$", NewCommand: "y", Source: "sudo.yaml"},
		{Name: "mine", MatchScript: "^x$", NewCommand: "y"},
		{Name: "mine", MatchScript: "^z$", NewCommand: "w"},
	}

	set, err := Build([]rule.Rule{fake("sudo", 0)}, decls, settings(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDuplicateName))

	assert.Equal(t, []string{"sudo", "mine"}, names(set))
	e, _ := set.Lookup("sudo")
	assert.True(t, e.Builtin)
	e, _ = set.Lookup("mine")
	assert.False(t, e.Builtin)
}

func TestBuild_NilSettings(t *testing.T) {
	set, err := Build([]rule.Rule{fake("a", 0)}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestBuild_Builtins(t *testing.T) {
	set, err := Build(rules.Builtin(rules.Options{Executables: func() []string { return nil }}), nil, settings(nil))
	require.NoError(t, err)

	got := names(set)
	require.Len(t, got, len(rules.Names()))
	assert.Equal(t, "no_command", got[len(got)-1], "highest priority value sorts last")
	assert.Equal(t, "man_no_space", got[len(got)-2])
	assert.Equal(t, "sudo", got[0])
}

func TestRuleSet_EntriesAreCopies(t *testing.T) {
	set, err := Build([]rule.Rule{fake("a", rule.DefaultPriority)}, nil, settings(nil))
	require.NoError(t, err)

	entries := set.Entries()
	entries[0].Priority = -1

	e, _ := set.Lookup("a")
	assert.Equal(t, rule.DefaultPriority, e.Priority)
}
