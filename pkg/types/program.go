// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the interface record produced by anchor-idl and
// the configuration shared by its subcommands.
package types

// ProgramInfo is the aggregate interface record for one program module.
// Every list mirrors the order of appearance in the source text. A struct
// recognized by more than one rule appears once in each matching list.
type ProgramInfo struct {
	// ProgramID is the literal passed to declare_id!, or empty when absent.
	ProgramID string `json:"program_id" yaml:"program_id"`

	// Instructions lists the exported entry points taking an execution context.
	Instructions []InstructionInfo `json:"instructions" yaml:"instructions"`

	// Accounts lists the structs marked as account bundles.
	Accounts []AccountInfo `json:"accounts" yaml:"accounts"`

	// Errors lists the variants of the error enumeration.
	Errors []ErrorInfo `json:"errors" yaml:"errors"`

	// Structs lists every struct declaration, account bundles included.
	Structs []StructInfo `json:"structs" yaml:"structs"`
}

// NewProgramInfo returns an empty record whose lists are non-nil, so the
// serialized form always carries [] rather than null.
func NewProgramInfo() *ProgramInfo {
	return &ProgramInfo{
		Instructions: []InstructionInfo{},
		Accounts:     []AccountInfo{},
		Errors:       []ErrorInfo{},
		Structs:      []StructInfo{},
	}
}

// IsEmpty reports whether nothing was extracted.
func (p *ProgramInfo) IsEmpty() bool {
	return p.ProgramID == "" && len(p.Instructions) == 0 && len(p.Accounts) == 0 &&
		len(p.Errors) == 0 && len(p.Structs) == 0
}

// InstructionInfo describes one exported instruction handler.
type InstructionInfo struct {
	Name      string         `json:"name" yaml:"name"`
	Arguments []ArgumentInfo `json:"arguments" yaml:"arguments"`
}

// ArgumentInfo is a (name, type) pair from an instruction signature. The
// execution-context parameter is never listed.
type ArgumentInfo struct {
	Name     string `json:"name" yaml:"name"`
	TypeName string `json:"type_name" yaml:"type_name"`
}

// AccountInfo describes a resource-account input schema.
type AccountInfo struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []FieldInfo `json:"fields" yaml:"fields"`
}

// FieldInfo is a (name, type) pair from a struct body. Attribute lines
// preceding a field are never recorded.
type FieldInfo struct {
	Name     string `json:"name" yaml:"name"`
	TypeName string `json:"type_name" yaml:"type_name"`
}

// ErrorInfo is one declared error code.
type ErrorInfo struct {
	// Name is the leading token of the variant line.
	Name string `json:"name" yaml:"name"`

	// Code is assigned sequentially from the configured base (6000 by default).
	Code uint32 `json:"code" yaml:"code"`

	// Message currently repeats Name; message text is not read from source.
	Message string `json:"message" yaml:"message"`
}

// StructInfo describes a plain data structure.
type StructInfo struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []FieldInfo `json:"fields" yaml:"fields"`
}
