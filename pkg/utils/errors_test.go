package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenErrors(t *testing.T) {
	a := errors.New("a")
	b := errors.New("b")
	c := errors.New("c")

	tests := []struct {
		name string
		err  error
		want []error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "single", err: a, want: []error{a}},
		{name: "joined", err: errors.Join(a, b), want: []error{a, b}},
		{name: "nested join", err: errors.Join(a, errors.Join(b, c)), want: []error{a, b, c}},
		{name: "wrapped join", err: fmt.Errorf("load: %w", errors.Join(a, b)), want: []error{a, b}},
		{name: "nil entries dropped", err: errors.Join(nil, a), want: []error{a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenErrors(tt.err))
		})
	}
}

func TestFlattenErrors_KeepsPlainWrap(t *testing.T) {
	a := errors.New("a")
	wrapped := fmt.Errorf("context: %w", a)

	got := FlattenErrors(wrapped)
	assert.Equal(t, []error{wrapped}, got)
}
