// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recognizes program interface declarations in module
// source text and assembles them into a types.ProgramInfo.
// patterns.go holds the declaration patterns.
//
// The patterns are textual and deliberately unaware of nesting: a struct
// body ends at the first closing brace, an argument list ends at the first
// closing parenthesis, and arguments are split on every comma.
package extract

import (
	"fmt"
	"regexp"

	"github.com/pdiddy/anchor-idl/pkg/types"
)

// Fixed declaration patterns. They are constants of the tool, so a
// compilation failure panics at package init.
var (
	// programIDRe matches declare_id!("...") and captures the literal.
	programIDRe = regexp.MustCompile(`declare_id!\("([^"]+)"\)`)

	// accountsRe matches a struct carrying #[derive(Accounts)], generic over
	// one parameter list, and captures its name and flat body.
	accountsRe = regexp.MustCompile(`#\[derive\(Accounts\)\]\s+pub struct (\w+)<[^>]*>\s*\{([^}]+)\}`)

	// structRe matches every pub struct, with or without generics, and
	// captures its name and flat body.
	structRe = regexp.MustCompile(`pub struct (\w+)(?:<[^>]*>)?\s*\{([^}]+)\}`)

	// errorEnumRe matches the error enumeration and captures its body.
	errorEnumRe = regexp.MustCompile(`pub enum Error\s*\{([^}]+)\}`)
)

// instructionPattern is the template for instruction signatures. The
// context parameter name is substituted literally; the one space after the
// comma is part of the shape.
const instructionPattern = `pub fn (\w+)\(%s: Context<([^>]+)>(?:, ([^)]+))?\)`

// Patterns is the compiled rule set for one extraction run.
type Patterns struct {
	rules       types.Rules
	instruction *regexp.Regexp
}

// NewPatterns compiles the instruction rule for the given context parameter
// name. An empty ContextParam falls back to types.DefaultRules; ErrorCodeBase
// is used as given, so zero numbers errors from 0.
func NewPatterns(rules types.Rules) *Patterns {
	if rules.ContextParam == "" {
		rules.ContextParam = types.DefaultRules().ContextParam
	}
	return &Patterns{
		rules:       rules,
		instruction: regexp.MustCompile(fmt.Sprintf(instructionPattern, regexp.QuoteMeta(rules.ContextParam))),
	}
}

// Rules returns the effective rule set.
func (p *Patterns) Rules() types.Rules {
	return p.rules
}

// defaultPatterns backs the package-level Extract.
var defaultPatterns = NewPatterns(types.DefaultRules())
