package rule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/oops/internal/core/command"
)

// Declaration is a user rule as written in a rule file.
type Declaration struct {
	Name              string `yaml:"name"                json:"name"`
	Enabled           *bool  `yaml:"enabled"             json:"enabled,omitempty"`
	Priority          *int   `yaml:"priority"            json:"priority,omitempty"`
	MatchScript       string `yaml:"match_script"        json:"match_script"`
	MatchOutput       string `yaml:"match_output"        json:"match_output,omitempty"`
	NewCommand        string `yaml:"new_command"         json:"new_command,omitempty"`
	NewCommandPattern string `yaml:"new_command_pattern" json:"new_command_pattern,omitempty"`
	RequiresOutput    *bool  `yaml:"requires_output"     json:"requires_output,omitempty"`

	// Source is the file the declaration was read from, for error messages.
	Source string `yaml:"-" json:"-"`
}

// DefinitionError reports a user rule that cannot be used.
type DefinitionError struct {
	Rule   string
	Source string
	Err    error
}

func (e *DefinitionError) Error() string {
	name := e.Rule
	if name == "" {
		name = "<unnamed>"
	}
	if e.Source != "" {
		return fmt.Sprintf("rule %q (%s): %v", name, e.Source, e.Err)
	}
	return fmt.Sprintf("rule %q: %v", name, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

var (
	errRequired         = errors.New("is required")
	errCommandExclusive = errors.New("exactly one of new_command or new_command_pattern must be set")
	errNegativePriority = errors.New("must not be negative")
)

// Validate checks the declaration and returns criterio.FieldErrors describing
// every problem found.
func (d Declaration) Validate() error {
	var script *regexp.Regexp

	errs := criterio.ValidateStruct(
		criterio.Run("name", d.Name, func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errRequired
			}
			return nil
		}),
		criterio.Run("priority", d.Priority, func(p *int) error {
			if p != nil && *p < 0 {
				return errNegativePriority
			}
			return nil
		}),
		criterio.Run("match_script", d.MatchScript, func(s string) error {
			if s == "" {
				return errRequired
			}
			re, err := regexp.Compile(s)
			if err != nil {
				return fmt.Errorf("invalid regex %q: %w", s, err)
			}
			script = re
			return nil
		}),
		criterio.Run("match_output", d.MatchOutput, func(s string) error {
			if s == "" {
				return nil
			}
			if _, err := regexp.Compile(s); err != nil {
				return fmt.Errorf("invalid regex %q: %w", s, err)
			}
			return nil
		}),
		d.validateCommand(),
	)
	if errs != nil {
		return errs
	}

	return criterio.Run("new_command_pattern", d.NewCommandPattern, func(tmpl string) error {
		return checkReferences(tmpl, script)
	})
}

func (d Declaration) validateCommand() error {
	if (d.NewCommand == "") == (d.NewCommandPattern == "") {
		return criterio.NewFieldErrors("new_command", errCommandExclusive)
	}
	return nil
}

// checkReferences verifies every capture reference in tmpl ($1, ${1}, $name,
// ${name}) exists in re. "$$" is a literal dollar sign.
func checkReferences(tmpl string, re *regexp.Regexp) error {
	for _, ref := range references(tmpl) {
		if n, err := strconv.Atoi(ref); err == nil {
			if n > re.NumSubexp() {
				return fmt.Errorf("references group $%d but match_script has %d capture group(s)", n, re.NumSubexp())
			}
			continue
		}
		if re.SubexpIndex(ref) < 0 {
			return fmt.Errorf("references unknown named group %q", ref)
		}
	}
	return nil
}

func references(tmpl string) []string {
	var refs []string
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i+1 >= len(tmpl) {
			continue
		}
		next := tmpl[i+1]
		switch {
		case next == '$':
			i++
		case next == '{':
			end := strings.IndexByte(tmpl[i+2:], '}')
			if end < 0 {
				continue
			}
			refs = append(refs, tmpl[i+2:i+2+end])
			i += 2 + end
		default:
			j := i + 1
			for j < len(tmpl) && isNameByte(tmpl[j]) {
				j++
			}
			if j > i+1 {
				refs = append(refs, tmpl[i+1:j])
				i = j - 1
			}
		}
	}
	return refs
}

func isNameByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// PatternRule is a compiled Declaration.
type PatternRule struct {
	Meta
	script   *regexp.Regexp
	output   *regexp.Regexp
	literal  string
	template string
	source   string
}

// Compile validates d and builds the rule. Failures are reported as
// *DefinitionError.
func Compile(d Declaration) (*PatternRule, error) {
	if err := d.Validate(); err != nil {
		return nil, &DefinitionError{Rule: d.Name, Source: d.Source, Err: err}
	}

	prio := DefaultPriority
	if d.Priority != nil {
		prio = *d.Priority
	}

	r := &PatternRule{
		Meta: Meta{
			RuleName:   d.Name,
			Prio:       prio,
			NoOutput:   d.RequiresOutput != nil && !*d.RequiresOutput,
			OffDefault: d.Enabled != nil && !*d.Enabled,
		},
		script:   regexp.MustCompile(d.MatchScript),
		literal:  d.NewCommand,
		template: d.NewCommandPattern,
		source:   d.Source,
	}
	if d.MatchOutput != "" {
		r.output = regexp.MustCompile(d.MatchOutput)
	}
	return r, nil
}

// Source returns the file the rule was declared in.
func (r *PatternRule) Source() string {
	return r.source
}

func (r *PatternRule) Match(cmd *command.Command) bool {
	if !r.script.MatchString(cmd.Script()) {
		return false
	}
	if r.output == nil {
		return true
	}
	out, ok := cmd.Output()
	return ok && r.output.MatchString(out)
}

// Corrections returns the literal replacement, or the script with its first
// match_script match replaced by the expanded pattern.
func (r *PatternRule) Corrections(cmd *command.Command) []string {
	if r.literal != "" {
		return []string{r.literal}
	}

	script := cmd.Script()
	loc := r.script.FindStringSubmatchIndex(script)
	if loc == nil {
		return nil
	}

	expanded := r.script.ExpandString(nil, r.template, script, loc)
	return []string{script[:loc[0]] + string(expanded) + script[loc[1]:]}
}
