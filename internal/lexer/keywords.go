package lexer

// typeKeywords are the named primitive/container type keywords (§4.1.8).
var typeKeywords = map[string]bool{
	"string":   true,
	"number":   true,
	"boolean":  true,
	"datetime": true,
	"duration": true,
}

// reservedKeywords are the structural keywords of the grammar (§4.1.9).
// "any" is lexed as a keyword on its own; the parser matches "any{}" and
// "any[]" as token sequences following it.
var reservedKeywords = map[string]bool{
	"config":       true,
	"constraints":  true,
	"requires":     true,
	"conflicts":    true,
	"with":         true,
	"validate":     true,
	"exists":       true,
	"count_keys":   true,
	"all_keys":     true,
	"wildcard_keys": true,
	"subset":       true,
	"any":          true,
}

// lookupKeyword reports whether lexeme is a word with a fixed token kind
// and, if so, that kind: KindType for a type keyword, KindKeyword for a
// reserved structural keyword, KindBoolean for true/false, and KindNumber
// for nan/inf.
func lookupKeyword(lexeme string) (kind TokenKind, ok bool) {
	if typeKeywords[lexeme] {
		return KindType, true
	}
	if reservedKeywords[lexeme] {
		return KindKeyword, true
	}
	if lexeme == "true" || lexeme == "false" {
		return KindBoolean, true
	}
	if lexeme == "nan" || lexeme == "inf" {
		return KindNumber, true
	}
	return 0, false
}

// durationShorthandSuffixes are the recognized shorthand duration units.
var durationShorthandSuffixes = []string{"ms", "y", "mo", "w", "d", "h", "m", "s"}
