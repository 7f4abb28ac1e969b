package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownFormat is returned by Write for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown report format")

const (
	FormatText = "text"
	FormatOrg  = "org"
	FormatJSON = "json"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Write renders r in the named format.
func Write(w io.Writer, r Report, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		PrintText(w, r)
		return nil
	case FormatOrg:
		return WriteOrg(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
