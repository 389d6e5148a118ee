package lexer

// TokenKind classifies a Token for highlighting and grammar purposes.
type TokenKind int

const (
	KindComment TokenKind = iota
	KindString
	KindDatetime
	KindDuration
	KindNumber
	KindBoolean
	KindKeyword
	KindType
	KindIdentifier
	KindOperator
	KindPunctuator
	KindUnknown
)

// semanticTokenOrder is the fixed LSP semantic-token legend order required
// by the adapter; it is not TokenKind's own iota order.
var semanticTokenOrder = []TokenKind{
	KindDatetime, KindDuration, KindNumber, KindBoolean, KindKeyword,
	KindType, KindIdentifier, KindPunctuator, KindOperator, KindComment,
	KindString, KindUnknown,
}

// SemanticTokenTypes returns the fixed semantic-token type legend in the
// order the LSP adapter advertises it.
func SemanticTokenTypes() []string {
	names := make([]string, len(semanticTokenOrder))
	for i, k := range semanticTokenOrder {
		names[i] = k.String()
	}
	return names
}

// SemanticIndex returns k's position in the fixed semantic-token legend.
func (k TokenKind) SemanticIndex() int {
	for i, c := range semanticTokenOrder {
		if c == k {
			return i
		}
	}
	return -1
}

func (k TokenKind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindString:
		return "string"
	case KindDatetime:
		return "datetime"
	case KindDuration:
		return "duration"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindKeyword:
		return "keyword"
	case KindType:
		return "type"
	case KindIdentifier:
		return "identifier"
	case KindOperator:
		return "operator"
	case KindPunctuator:
		return "punctuator"
	default:
		return "unknown"
	}
}

// NumberClass tags the numeric literal subclass a Number token carries.
type NumberClass int

const (
	NumberNone NumberClass = iota
	NumberInteger
	NumberFloat
	NumberNaN
	NumberInfinity
)

// StringClass tags the string literal subclass a String token carries.
type StringClass int

const (
	StringNone StringClass = iota
	StringBasic
	StringMultiLineBasic
	StringRaw
	StringMultiLineRaw
)

// DateTimeClass tags the datetime literal subclass a Datetime token carries.
type DateTimeClass int

const (
	DateTimeNone DateTimeClass = iota
	OffsetDateTime
	LocalDateTime
	LocalDate
	LocalTime
)

// DescriptorCategory is the top-level tag of a TypeDescriptor.
type DescriptorCategory int

const (
	DescInvalid DescriptorCategory = iota
	DescBoolean
	DescNumeric
	DescString
	DescDateTime
	DescDuration
)

// TypeDescriptor is the literal-class property a Token or literal Expr
// carries, as described by SPEC_FULL.md §3.
type TypeDescriptor struct {
	Category DescriptorCategory
	Number   NumberClass
	Str      StringClass
	DateTime DateTimeClass
}

var (
	DescriptorInvalid  = TypeDescriptor{Category: DescInvalid}
	DescriptorBoolean  = TypeDescriptor{Category: DescBoolean}
	DescriptorDuration = TypeDescriptor{Category: DescDuration}
)

func NumberDescriptor(c NumberClass) TypeDescriptor {
	return TypeDescriptor{Category: DescNumeric, Number: c}
}

func StringDescriptor(c StringClass) TypeDescriptor {
	return TypeDescriptor{Category: DescString, Str: c}
}

func DateTimeDescriptor(c DateTimeClass) TypeDescriptor {
	return TypeDescriptor{Category: DescDateTime, DateTime: c}
}

// Token is a single lexical unit: its literal text, kind, optional literal
// descriptor, and source region.
type Token struct {
	Value  string
	Kind   TokenKind
	Prop   *TypeDescriptor
	Range  Region
	Index  int // position of this token within the owning stream
}

// IsBareIdentifier reports whether Value would lex back to an identifier
// token without requiring backtick quoting.
func IsBareIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !isAlpha(r) {
				return false
			}
			continue
		}
		if !isAlphaNumeric(r) {
			return false
		}
	}
	return true
}
