// Package output renders CLI results as human-readable text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format selects how results are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatAuto Format = "auto"
)

// ParseFormat maps a flag value to a Format. Unknown values fall back to
// FormatAuto so the TTY check decides.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatAuto
	}
}

// DetectFormat resolves FormatAuto against the destination writer: text when
// w is a terminal, JSON otherwise. An explicit format wins unchanged.
func DetectFormat(w io.Writer, explicit Format) Format {
	if explicit != FormatAuto {
		return explicit
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: file descriptors fit in int
		return FormatText
	}
	return FormatJSON
}

// Formatter writes values in a fixed, already-resolved format.
type Formatter struct {
	mode Format
	w    io.Writer
}

func NewFormatter(mode Format, w io.Writer) *Formatter {
	return &Formatter{mode: mode, w: w}
}

// Format reports the resolved format.
func (f *Formatter) Format() Format {
	return f.mode
}

// IsJSON reports whether Print emits JSON. Commands branch on this to
// build machine-readable payloads instead of tables.
func (f *Formatter) IsJSON() bool {
	return f.mode == FormatJSON
}

// Print renders v in the formatter's format, terminated by a newline.
func (f *Formatter) Print(v any) error {
	if f.mode == FormatJSON {
		enc := json.NewEncoder(f.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	switch val := v.(type) {
	case string:
		_, err := fmt.Fprintln(f.w, val)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.w, val.String())
		return err
	default:
		_, err := fmt.Fprintf(f.w, "%v\n", val)
		return err
	}
}
