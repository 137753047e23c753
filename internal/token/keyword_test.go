package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"const":    KwConst,
		"void":     KwVoid,
		"int":      KwInt,
		"char":     KwChar,
		"double":   KwDouble,
		"struct":   KwStruct,
		"if":       KwIf,
		"else":     KwElse,
		"switch":   KwSwitch,
		"case":     KwCase,
		"default":  KwDefault,
		"while":    KwWhile,
		"for":      KwFor,
		"do":       KwDo,
		"return":   KwReturn,
		"break":    KwBreak,
		"continue": KwContinue,
		"print":    KwPrint,
		"scan":     KwScan,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// регистр важен
	notKw := []string{"Int", "VOID", "Return", "main", "printf", "float", "goto"}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
