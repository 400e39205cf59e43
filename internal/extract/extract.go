// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"log/slog"

	"github.com/pdiddy/anchor-idl/pkg/types"
)

// Extract runs every rule with the default rule set.
func Extract(content string) *types.ProgramInfo {
	return defaultPatterns.Extract(content)
}

// Extract applies each rule once over content and assembles the results.
// The rules read the same text and share no state; a fragment that does
// not match a rule is skipped without a diagnostic, so Extract never fails.
func (p *Patterns) Extract(content string) *types.ProgramInfo {
	info := types.NewProgramInfo()
	info.ProgramID = p.ProgramID(content)
	info.Instructions = p.Instructions(content)
	info.Accounts = p.Accounts(content)
	info.Errors = p.Errors(content)
	info.Structs = p.Structs(content)

	slog.Debug("extracted program interface",
		"program_id", info.ProgramID,
		"instructions", len(info.Instructions),
		"accounts", len(info.Accounts),
		"errors", len(info.Errors),
		"structs", len(info.Structs),
	)
	return info
}

// ProgramID returns the literal of the first declare_id! in content, or ""
// when there is none. Later declarations are ignored.
func (p *Patterns) ProgramID(content string) string {
	m := programIDRe.FindStringSubmatch(content)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// Instructions returns every function whose first parameter is the
// configured context parameter, with its trailing arguments.
func (p *Patterns) Instructions(content string) []types.InstructionInfo {
	instructions := []types.InstructionInfo{}
	for _, m := range p.instruction.FindAllStringSubmatch(content, -1) {
		// m[2] is the context's account bundle; the record does not carry it.
		instructions = append(instructions, types.InstructionInfo{
			Name:      m[1],
			Arguments: parseArguments(m[3]),
		})
	}
	return instructions
}

// Accounts returns every #[derive(Accounts)] struct with its fields.
func (p *Patterns) Accounts(content string) []types.AccountInfo {
	accounts := []types.AccountInfo{}
	for _, m := range accountsRe.FindAllStringSubmatch(content, -1) {
		accounts = append(accounts, types.AccountInfo{
			Name:   m[1],
			Fields: parseFields(m[2]),
		})
	}
	return accounts
}

// Structs returns every pub struct with its fields. Account bundles are not
// filtered out, so they also appear in Accounts.
func (p *Patterns) Structs(content string) []types.StructInfo {
	structs := []types.StructInfo{}
	for _, m := range structRe.FindAllStringSubmatch(content, -1) {
		structs = append(structs, types.StructInfo{
			Name:   m[1],
			Fields: parseFields(m[2]),
		})
	}
	return structs
}

// Errors returns the variants of the first error enumeration. Codes count
// up from the configured base in declaration order and the message repeats
// the name. Text after the leading token of a variant line is discarded.
func (p *Patterns) Errors(content string) []types.ErrorInfo {
	errs := []types.ErrorInfo{}
	m := errorEnumRe.FindStringSubmatch(content)
	if len(m) < 2 {
		return errs
	}

	code := p.rules.ErrorCodeBase
	for _, line := range splitLines(m[1]) {
		if line == "" || line[0] == '#' {
			continue
		}
		name := firstToken(line)
		errs = append(errs, types.ErrorInfo{
			Name:    name,
			Code:    code,
			Message: name,
		})
		code++
	}
	return errs
}
