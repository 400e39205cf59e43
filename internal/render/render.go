// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes a types.ProgramInfo for standard output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/anchor-idl/pkg/types"
)

// ParseFormat validates a format name. The empty string selects JSON.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", types.FormatJSON:
		return types.FormatJSON, nil
	case types.FormatYAML, types.FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use json, yaml, or table", s)
	}
}

// Write renders info to w in the given format.
func Write(w io.Writer, info *types.ProgramInfo, format types.OutputFormat) error {
	switch format {
	case types.FormatJSON, "":
		return WriteJSON(w, info)
	case types.FormatYAML:
		return WriteYAML(w, info)
	case types.FormatTable:
		return WriteTable(w, info)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteJSON writes info as two-space indented JSON followed by a newline.
// Type text such as Signer<'info> is written literally, not HTML-escaped.
func WriteJSON(w io.Writer, info *types.ProgramInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// WriteYAML writes info as YAML using the same key names as WriteJSON.
func WriteYAML(w io.Writer, info *types.ProgramInfo) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteTable writes a human-readable summary: the program identifier, then
// one table per non-empty section.
func WriteTable(w io.Writer, info *types.ProgramInfo) error {
	programID := info.ProgramID
	if programID == "" {
		programID = "(none)"
	}
	if _, err := fmt.Fprintf(w, "Program: %s\n", programID); err != nil {
		return err
	}

	var tables []table.Writer

	if len(info.Instructions) > 0 {
		t := newTable("Instructions", "#", "Name", "Arguments")
		for i, ins := range info.Instructions {
			args := make([]string, len(ins.Arguments))
			for j, a := range ins.Arguments {
				args[j] = a.Name + ": " + a.TypeName
			}
			t.AppendRow(table.Row{i + 1, ins.Name, strings.Join(args, "\n")})
		}
		tables = append(tables, t)
	}

	if len(info.Accounts) > 0 {
		t := newTable("Accounts", "Account", "Field", "Type")
		for _, a := range info.Accounts {
			appendFieldRows(t, a.Name, a.Fields)
		}
		tables = append(tables, t)
	}

	if len(info.Errors) > 0 {
		t := newTable("Errors", "Code", "Name", "Message")
		for _, e := range info.Errors {
			t.AppendRow(table.Row{e.Code, e.Name, e.Message})
		}
		tables = append(tables, t)
	}

	if len(info.Structs) > 0 {
		t := newTable("Structs", "Struct", "Field", "Type")
		for _, s := range info.Structs {
			appendFieldRows(t, s.Name, s.Fields)
		}
		tables = append(tables, t)
	}

	for _, t := range tables {
		if _, err := fmt.Fprintf(w, "\n%s\n", t.Render()); err != nil {
			return err
		}
	}
	return nil
}

func newTable(title string, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row(header))
	return t
}

// appendFieldRows writes one row per field, naming the owner on the first
// row only. A struct without fields still gets a row.
func appendFieldRows(t table.Writer, owner string, fields []types.FieldInfo) {
	if len(fields) == 0 {
		t.AppendRow(table.Row{owner, "", ""})
		return
	}
	for i, f := range fields {
		name := ""
		if i == 0 {
			name = owner
		}
		t.AppendRow(table.Row{name, f.Name, f.TypeName})
	}
}
