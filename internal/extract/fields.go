// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/anchor-idl/pkg/types"
)

// parseFields splits a flat struct body into (name, type) pairs in source
// order. Blank lines are skipped. Lines starting with '#' are attribute
// lines; they are consumed but never attached to the following field. Any
// other line containing a colon is a field: the name is the last token
// before the first colon (dropping a visibility qualifier such as pub) and
// the type is everything after it, trimmed. Remaining lines are ignored.
func parseFields(body string) []types.FieldInfo {
	fields := []types.FieldInfo{}
	var attrs []string

	for _, line := range splitLines(body) {
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			attrs = append(attrs, line)
			continue
		}

		if namePart, typePart, ok := strings.Cut(line, ":"); ok {
			fields = append(fields, types.FieldInfo{
				Name:     lastToken(namePart),
				TypeName: strings.TrimSpace(typePart),
			})
		}
		attrs = attrs[:0]
	}

	return fields
}

// parseArguments splits an instruction's trailing argument list. Splitting
// is on every comma, so a comma inside a generic type breaks the argument
// in two. Each fragment is cut at its first colon; fragments without one
// are dropped.
func parseArguments(list string) []types.ArgumentInfo {
	args := []types.ArgumentInfo{}
	if list == "" {
		return args
	}

	for _, frag := range strings.Split(list, ",") {
		frag = strings.TrimSpace(frag)
		namePart, typePart, ok := strings.Cut(frag, ":")
		if !ok {
			continue
		}
		args = append(args, types.ArgumentInfo{
			Name:     strings.TrimSpace(namePart),
			TypeName: strings.TrimSpace(typePart),
		})
	}

	return args
}

// splitLines splits body into lines trimmed of surrounding whitespace.
func splitLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

// lastToken returns the last whitespace-separated token of s, or "".
func lastToken(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// firstToken returns the first whitespace-separated token of s, or "".
func firstToken(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
