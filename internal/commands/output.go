package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/colonyops/oops/internal/tui/jsoncolor"
	"github.com/colonyops/oops/pkg/iojson"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeJSON writes v as JSON to out, colorized when out is a terminal.
func writeJSON(out io.Writer, v any) error {
	if !isTerminal(out) {
		return iojson.WriteWith(out, os.Stderr, v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(out, jsoncolor.Colorize(data))
	return err
}
