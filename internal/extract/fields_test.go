// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/anchor-idl/pkg/types"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []types.FieldInfo
	}{
		{
			name: "visibility qualifier dropped",
			body: "\n    pub owner: Pubkey,\n    amount: u64,\n",
			want: []types.FieldInfo{
				{Name: "owner", TypeName: "Pubkey,"},
				{Name: "amount", TypeName: "u64,"},
			},
		},
		{
			name: "attribute lines not attached",
			body: "\n    #[account(\n        mut,\n        seeds = [b\"offer\"],\n    )]\n    pub offer: Account<'info, Offer>,\n",
			want: []types.FieldInfo{
				{Name: "offer", TypeName: "Account<'info, Offer>,"},
			},
		},
		{
			name: "restricted visibility keeps last token",
			body: "pub(crate) vault: Pubkey",
			want: []types.FieldInfo{{Name: "vault", TypeName: "Pubkey"}},
		},
		{
			name: "cut at first colon",
			body: "program: anchor_lang::system_program::System",
			want: []types.FieldInfo{{Name: "program", TypeName: "anchor_lang::system_program::System"}},
		},
		{
			name: "colon with no name",
			body: ": u8",
			want: []types.FieldInfo{{Name: "", TypeName: "u8"}},
		},
		{
			name: "comments and stray lines skipped",
			body: "// Students will complete this struct\n  \n",
			want: []types.FieldInfo{},
		},
		{
			name: "windows line endings",
			body: "a: u8,\r\nb: u16,\r\n",
			want: []types.FieldInfo{
				{Name: "a", TypeName: "u8,"},
				{Name: "b", TypeName: "u16,"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFields(tt.body))
		})
	}
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		list string
		want []types.ArgumentInfo
	}{
		{"empty", "", []types.ArgumentInfo{}},
		{"single", "id: u64", []types.ArgumentInfo{{Name: "id", TypeName: "u64"}}},
		{
			name: "trailing comma ignored",
			list: "id: u64, amount: u64,",
			want: []types.ArgumentInfo{
				{Name: "id", TypeName: "u64"},
				{Name: "amount", TypeName: "u64"},
			},
		},
		{
			name: "fragment without colon dropped",
			list: "id: u64, orphan",
			want: []types.ArgumentInfo{{Name: "id", TypeName: "u64"}},
		},
		{
			name: "nested comma splits",
			list: "pair: (u8, u16)",
			want: []types.ArgumentInfo{{Name: "pair", TypeName: "(u8"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseArguments(tt.list))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, "name", lastToken("  pub name "))
	assert.Equal(t, "", lastToken("   "))
	assert.Equal(t, "Variant", firstToken("  Variant = 1, // doc"))
	assert.Equal(t, "", firstToken(""))
}
