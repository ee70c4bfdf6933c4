package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/wetigu/ai-playground/internal/errors"
)

// table is the tabular form of a value.
type table struct {
	header []string
	rows   [][]string
	footer string
}

// render writes v in the configured output format. The table form is only
// used for the table format.
func (a *app) render(v any, t table) error {
	switch a.cfg.Output {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		return writeTable(a.out, t)
	default:
		return errors.New("S140").WithDetail(fmt.Sprintf("Output format %q is not supported.", a.cfg.Output))
	}
}

func writeTable(w io.Writer, t table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if t.footer != "" {
		fmt.Fprintln(w, t.footer)
	}
	return nil
}

// readPayload decodes a write payload from a YAML or JSON file. The path "-"
// reads standard input.
func readPayload[W any](path string, stdin io.Reader) (W, error) {
	var payload W

	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return payload, errors.New("S120").WithDetail(fmt.Sprintf("Could not read %s.", path)).Wrap(err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&payload); err != nil {
		return payload, errors.New("S120").WithDetail(fmt.Sprintf("Could not decode %s.", path)).Wrap(err)
	}
	return payload, nil
}
