package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format is how a command renders its result.
type Format string

const (
	JSON  Format = "json"
	EDN   Format = "edn"
	Table Format = "table"
)

// Parse accepts json (default), edn and table.
func Parse(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return JSON, nil
	case JSON, EDN, Table:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// Envelope is the shape of every command result: the payload under "data",
// plus optional "meta" (counts, the query that produced it).
type Envelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// Write renders v in format f. The table format needs an Envelope whose
// Data is Tabular.
func Write(w io.Writer, v any, f Format, pretty bool) error {
	switch f {
	case "", JSON:
		return WriteJSON(w, v, pretty)
	case EDN:
		return WriteEDN(w, v, pretty)
	case Table:
		env, ok := v.(Envelope)
		if !ok {
			return fmt.Errorf("format %s: unsupported output %T", f, v)
		}
		t, ok := env.Data.(Tabular)
		if !ok {
			return fmt.Errorf("format %s: unsupported output %T", f, env.Data)
		}
		return WriteTable(w, t)
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

// WriteJSON writes strict JSON, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
