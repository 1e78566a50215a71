package commands

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/oops/internal/core/command"
	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/engine"
	"github.com/colonyops/oops/internal/core/logging"
	"github.com/colonyops/oops/internal/core/registry"
	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/core/rules"
)

// builtinRules returns the built-in rules tuned by settings. Tests replace it
// to avoid scanning $PATH.
var builtinRules = func(s *config.Settings) []rule.Rule {
	return rules.Builtin(rules.Options{
		NumCloseMatches:            s.NumCloseMatches,
		ExcludedSearchPathPrefixes: s.ExcludedSearchPathPrefixes,
	})
}

// loadRuleSet builds the effective rule set from the built-ins and the user
// rules in settings.RulesDir. The set is always returned; the error joins
// every rule file or rule definition that was skipped.
func loadRuleSet(s *config.Settings) (*registry.RuleSet, error) {
	decls, loadErr := config.LoadUserRules(s.RulesDir)
	set, buildErr := registry.Build(builtinRules(s), decls, s)
	return set, errors.Join(loadErr, buildErr)
}

// correct runs a full correction pass for cmd. Broken user rules are logged
// and skipped.
func correct(ctx context.Context, s *config.Settings, cmd *command.Command) engine.Result {
	set, err := loadRuleSet(s)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("some user rules were skipped")
	}

	return engine.New(logging.Component("engine")).Correct(cmd, set)
}
