package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/oops/internal/core/doctor"
)

func TestDoctorCmd_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.flags.Settings.ExcludeRules = []string{"no_such_rule"}
	cmd := NewDoctorCmd(env.flags)
	cmd.getenv = envMap(map[string]string{"SHELL": "/bin/sh"})

	// The shell binary may be missing on the test host; only the report
	// shape is asserted here.
	_ = env.run(cmd.Register, "doctor", "--format", "json")

	var out struct {
		Healthy bool            `json:"healthy"`
		Summary doctor.Counts   `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &out))

	require.Len(t, out.Checks, 3)
	assert.Equal(t, "Settings", out.Checks[0].Name)
	assert.Equal(t, "Rules", out.Checks[1].Name)
	assert.Equal(t, "Shell", out.Checks[2].Name)
	assert.Positive(t, out.Summary.Warned, "missing settings file and unknown rule warn")
}

func TestDoctorCmd_AutofixCreatesRulesDir(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewDoctorCmd(env.flags)
	cmd.getenv = envMap(map[string]string{"SHELL": "/bin/sh"})
	var text bytes.Buffer
	cmd.errOut = &text

	_ = env.run(cmd.Register, "doctor")
	assert.Contains(t, text.String(), "Oops Doctor")
	assert.Contains(t, text.String(), "oops doctor --autofix")
	assert.NoDirExists(t, env.flags.Settings.RulesDir)

	text.Reset()
	cmd = NewDoctorCmd(env.flags)
	cmd.getenv = envMap(map[string]string{"SHELL": "/bin/sh"})
	cmd.errOut = &text

	_ = env.run(cmd.Register, "doctor", "--autofix")
	assert.DirExists(t, env.flags.Settings.RulesDir)
	assert.Contains(t, text.String(), "created")
}
