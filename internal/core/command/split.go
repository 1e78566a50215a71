package command

import (
	"strings"
	"unicode"

	"github.com/colonyops/oops/internal/core/shell"
)

type quoteState int

const (
	quoteNone quoteState = iota
	quoteSingle
	quoteDouble
)

// Split tokenizes a command line following the quoting rules of sh. It is
// lenient: an unterminated quote keeps the partial token (without the
// opening quote) and a trailing escape character is kept literally. Split
// never fails.
func Split(s string, sh shell.Shell) []string {
	escape := '\\'
	if sh == shell.PowerShell {
		escape = '`'
	}

	var (
		tokens  []string
		cur     strings.Builder
		started bool
		state   = quoteNone
		runes   = []rune(s)
	)

	flush := func() {
		if started {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		started = false
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch state {
		case quoteSingle:
			if r == '\'' {
				state = quoteNone
				continue
			}
			// fish allows \' and \\ inside single quotes
			if sh == shell.Fish && r == '\\' && i+1 < len(runes) && (runes[i+1] == '\'' || runes[i+1] == '\\') {
				i++
				cur.WriteRune(runes[i])
				continue
			}
			cur.WriteRune(r)

		case quoteDouble:
			if r == '"' {
				state = quoteNone
				continue
			}
			if r == escape && i+1 < len(runes) && escapableInDouble(runes[i+1]) {
				i++
				if runes[i] != '\n' {
					cur.WriteRune(runes[i])
				}
				continue
			}
			cur.WriteRune(r)

		default:
			switch {
			case unicode.IsSpace(r):
				flush()
			case r == '\'':
				state = quoteSingle
				started = true
			case r == '"':
				state = quoteDouble
				started = true
			case r == escape:
				started = true
				if i+1 < len(runes) {
					i++
					if runes[i] != '\n' {
						cur.WriteRune(runes[i])
					}
					continue
				}
				cur.WriteRune(r)
			default:
				started = true
				cur.WriteRune(r)
			}
		}
	}

	flush()
	return tokens
}

func escapableInDouble(r rune) bool {
	switch r {
	case '"', '\\', '$', '`', '\n':
		return true
	}
	return false
}

// Join quotes each token when needed and joins them with spaces, producing a
// line that Split turns back into the same tokens.
func Join(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = quote(p)
	}
	return strings.Join(quoted, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsFunc(s, needsQuoting) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(`'"\$`+"`"+`&|;<>()*?[]#~!{}`, r)
}
