package doctor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheck struct {
	result Result
}

func (s stubCheck) Name() string                 { return s.result.Name }
func (s stubCheck) Run(_ context.Context) Result { return s.result }

func TestRunAll_KeepsOrder(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		stubCheck{Result{Name: "Settings", Items: []CheckItem{{Label: "x", Status: StatusPass}}}},
		stubCheck{Result{Name: "Rules", Items: []CheckItem{{Label: "y", Status: StatusFail}}}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "Settings", results[0].Name)
	assert.Equal(t, "Rules", results[1].Name)
}

func TestCheckItem_JSONStatus(t *testing.T) {
	data, err := json.Marshal(CheckItem{Label: "rules", Status: StatusWarn, Fixable: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"rules","status":"warn","fixable":true}`, string(data))
}

func TestTally(t *testing.T) {
	tests := []struct {
		name        string
		results     []Result
		want        Counts
		wantHealthy bool
	}{
		{
			name:        "empty",
			want:        Counts{},
			wantHealthy: true,
		},
		{
			name: "mixed",
			results: []Result{
				{Items: []CheckItem{{Status: StatusPass}, {Status: StatusWarn, Fixable: true}}},
				{Items: []CheckItem{{Status: StatusFail}, {Status: StatusPass, Fixable: true}}},
			},
			want:        Counts{Passed: 2, Warned: 1, Failed: 1, Fixable: 1},
			wantHealthy: false,
		},
		{
			name: "warnings only",
			results: []Result{
				{Items: []CheckItem{{Status: StatusWarn}, {Status: StatusWarn}}},
			},
			want:        Counts{Warned: 2},
			wantHealthy: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tally(tt.results)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantHealthy, got.Healthy())
		})
	}
}
