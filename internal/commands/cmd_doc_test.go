package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/oops/internal/core/config"
	"github.com/colonyops/oops/internal/core/rule"
)

func TestDocCmd_PrintsMarkdownWhenPiped(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run(NewDocCmd(env.flags).Register, "doc", "rules"))
	assert.True(t, strings.HasPrefix(env.stdout.String(), "# Rule Files"))
}

// The example in the guide must stay a valid rule.
func TestRuleFilesGuide_ExampleCompiles(t *testing.T) {
	start := strings.Index(ruleFilesGuide, "```yaml\n")
	require.GreaterOrEqual(t, start, 0)
	body := ruleFilesGuide[start+len("```yaml\n"):]
	body = body[:strings.Index(body, "```")]

	env := newTestEnv(t)
	env.writeRule(t, "example.yaml", body)

	decls, err := config.LoadUserRules(env.flags.Settings.RulesDir)
	require.NoError(t, err)
	require.Len(t, decls, 1)

	_, err = rule.Compile(decls[0])
	assert.NoError(t, err)
}

func TestSettingsGuide_ListsEveryOption(t *testing.T) {
	for _, key := range []string{
		"rules", "exclude_rules", "priority", "require_confirmation", "wait_command",
		"wait_slow_command", "slow_commands", "no_colors", "theme", "debug",
		"num_close_matches", "excluded_search_path_prefixes", "env", "alter_history", "rules_dir",
	} {
		assert.Contains(t, settingsGuide, "`"+key+"`")
	}
}
