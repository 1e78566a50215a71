// Package tui holds the interactive correction selector.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/oops/internal/core/rule"
	"github.com/colonyops/oops/internal/core/styles"
)

// ErrAborted is returned by Select when the user dismissed the selector.
var ErrAborted = errors.New("aborted")

// Selector is a single line bubbletea model that steps through corrections
// one at a time until the user accepts or aborts.
type Selector struct {
	corrections []rule.CorrectedCommand
	index       int
	keys        selectorKeys
	help        help.Model
	showRule    bool

	accepted bool
	aborted  bool
}

// NewSelector creates a selector over corrections, which must not be empty.
// showRule appends the name of the rule that produced each correction.
func NewSelector(corrections []rule.CorrectedCommand, showRule bool) Selector {
	h := help.New()
	h.ShortSeparator = "/"
	h.Styles.ShortKey = styles.KeyHintStyle
	h.Styles.ShortDesc = styles.KeyHintStyle
	h.Styles.ShortSeparator = styles.KeyHintStyle

	return Selector{
		corrections: corrections,
		keys:        newSelectorKeys(),
		help:        h,
		showRule:    showRule,
	}
}

func (s Selector) Init() tea.Cmd {
	return nil
}

func (s Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	n := len(s.corrections)
	switch {
	case key.Matches(keyMsg, s.keys.Accept):
		s.accepted = true
		return s, tea.Quit
	case key.Matches(keyMsg, s.keys.Abort):
		s.aborted = true
		return s, tea.Quit
	case key.Matches(keyMsg, s.keys.Prev):
		s.index = (s.index - 1 + n) % n
	case key.Matches(keyMsg, s.keys.Next):
		s.index = (s.index + 1) % n
	}
	return s, nil
}

func (s Selector) View() string {
	if s.accepted || s.aborted {
		return ""
	}

	c := s.corrections[s.index]
	line := styles.CorrectionStyle.Render(c.Script)
	if s.showRule {
		line += " " + styles.RuleNameStyle.Render("("+c.SourceRule+")")
	}
	if len(s.corrections) > 1 {
		line += " " + styles.CounterStyle.Render(fmt.Sprintf("[%d/%d]", s.index+1, len(s.corrections)))
	}
	return line + " " + styles.KeyHintStyle.Render("[") + s.help.View(s.keys) + styles.KeyHintStyle.Render("]")
}

// Current returns the correction on screen.
func (s Selector) Current() rule.CorrectedCommand {
	return s.corrections[s.index]
}

// Accepted reports whether the user accepted the current correction.
func (s Selector) Accepted() bool {
	return s.accepted
}

// Options configure Select.
type Options struct {
	// Output receives the selector; stdout is left for the chosen script.
	Output io.Writer
	// Input overrides the controlling terminal, for tests.
	Input io.Reader
	// ShowRule displays the source rule next to each correction.
	ShowRule bool
}

// Select runs the selector and returns the accepted correction. It returns
// ErrAborted when the user dismissed the selector.
func Select(ctx context.Context, corrections []rule.CorrectedCommand, opts Options) (rule.CorrectedCommand, error) {
	if len(corrections) == 0 {
		return rule.CorrectedCommand{}, errors.New("no corrections to select from")
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(out),
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	} else {
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	final, err := tea.NewProgram(NewSelector(corrections, opts.ShowRule), progOpts...).Run()
	if err != nil {
		return rule.CorrectedCommand{}, fmt.Errorf("run selector: %w", err)
	}

	s := final.(Selector)
	if !s.Accepted() {
		return rule.CorrectedCommand{}, ErrAborted
	}
	return s.Current(), nil
}
