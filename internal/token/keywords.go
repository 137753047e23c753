package token

var keywords = map[string]Kind{
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

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
