package domain

// Alias is one lit-style tool substitution: the directive token on the left,
// the tool it names plus implied flags on the right. The table is used in
// both directions: the parser expands aliases into executable vectors, the
// test synthesizer contracts matching vectors back into aliases.
type Alias struct {
	// Token is the directive spelling, e.g. "%cheri_purecap_cc1".
	Token string
	// Tool is the executable the alias stands for.
	Tool ToolKind
	// Flags are the tool arguments the alias implies, e.g. the triple and
	// ABI selection folded into a purecap alias.
	Flags []string
}

// Aliases is the built-in substitution table, most specific first. Expansion
// picks the first entry whose token matches; contraction picks the first
// entry whose tool and implied flags are all present in the command.
var Aliases = []Alias{
	{
		Token: "%cheri_purecap_cc1",
		Tool:  ToolClang,
		Flags: []string{"-cc1", "-triple", "cheri-unknown-freebsd", "-target-abi", "purecap"},
	},
	{
		Token: "%cheri_cc1",
		Tool:  ToolClang,
		Flags: []string{"-cc1", "-triple", "cheri-unknown-freebsd"},
	},
	{
		Token: "%clang_cc1",
		Tool:  ToolClang,
		Flags: []string{"-cc1"},
	},
	{
		Token: "%clang",
		Tool:  ToolClang,
	},
	{
		Token: "%cheri_llc",
		Tool:  ToolLLC,
		Flags: []string{"-mtriple=cheri-unknown-freebsd"},
	},
	{
		Token: "%llc",
		Tool:  ToolLLC,
	},
	{
		Token: "%opt",
		Tool:  ToolOpt,
	},
}

// LookupAlias returns the alias entry for a directive token.
func LookupAlias(token string) (Alias, bool) {
	for _, a := range Aliases {
		if a.Token == token {
			return a, true
		}
	}
	return Alias{}, false
}
