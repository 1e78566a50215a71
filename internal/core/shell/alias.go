package shell

import (
	"fmt"

	"github.com/colonyops/oops/pkg/tmpl"
)

// AliasData is the template input for the shell integration function.
type AliasData struct {
	Name         string // function name, e.g. "fuck"
	Binary       string // oops executable
	AlterHistory bool   // push the corrected command into shell history
}

const posixAlias = `{{ .Name }} () {
    OOPS_PREVIOUS=$(fc -ln -1 | tail -n 1);
    OOPS_CMD=$(
        OOPS_SHELL={{ .Shell }} OOPS_ALIAS={{ .Name | shq }} OOPS_HISTORY="$OOPS_PREVIOUS" {{ .Binary }} "$@"
    ) && eval "$OOPS_CMD";
{{- if and .AlterHistory .HistoryPush }}
    {{ .HistoryPush }}
{{- end }}
    unset OOPS_PREVIOUS OOPS_CMD;
}
`

const fishAlias = `function {{ .Name }} -d "Correct your previous console command"
    set -l oops_previous (builtin history search --max 1)
    set -l oops_cmd (env OOPS_SHELL=fish OOPS_ALIAS={{ .Name | shq }} OOPS_HISTORY=$oops_previous {{ .Binary }} $argv)
    and eval $oops_cmd
{{- if .AlterHistory }}
    and builtin history delete --exact --case-sensitive -- {{ .Name | shq }}
    and builtin history merge
{{- end }}
end
`

const powershellAlias = `function {{ .Name }} {
    $history = (Get-History -Count 1).CommandLine;
    if (-not [string]::IsNullOrWhiteSpace($history)) {
        $env:OOPS_SHELL = "powershell";
        $env:OOPS_ALIAS = "{{ .Name }}";
        $env:OOPS_HISTORY = $history;
        $fix = & {{ .Binary }} $args;
        if (-not [string]::IsNullOrWhiteSpace($fix)) {
            if ($fix.StartsWith("echo")) { $fix = $fix.Substring(5) }
            else { iex "$fix" }
        }
        Remove-Item Env:OOPS_HISTORY
    }
}
`

type aliasView struct {
	AliasData
	Shell       string
	HistoryPush string
}

// Alias renders the shell function that wires oops into the shell. The
// function captures the previous command, asks oops for a correction and
// evaluates whatever oops prints on stdout.
func (s Shell) Alias(data AliasData) (string, error) {
	if data.Name == "" {
		data.Name = "fuck"
	}
	if data.Binary == "" {
		data.Binary = "oops"
	}

	var src string
	switch s {
	case Fish:
		src = fishAlias
	case PowerShell:
		src = powershellAlias
	case Bash, Zsh, Sh:
		src = posixAlias
	default:
		return "", fmt.Errorf("unsupported shell %q", s)
	}

	out, err := tmpl.Render(src, aliasView{
		AliasData:   data,
		Shell:       string(s),
		HistoryPush: s.historyPush(),
	})
	if err != nil {
		return "", fmt.Errorf("render %s alias: %w", s, err)
	}
	return out, nil
}

func (s Shell) historyPush() string {
	switch s {
	case Zsh:
		return `test -n "$OOPS_CMD" && print -s $OOPS_CMD;`
	case Bash:
		return `test -n "$OOPS_CMD" && history -s $OOPS_CMD;`
	}
	return ""
}
