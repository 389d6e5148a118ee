// Package parser builds a CSL abstract syntax tree from a lexer token
// stream via recursive descent, and records a token-index to definition
// map used by the LSP adapter.
package parser

import "github.com/csl-lang/csl/internal/lexer"

// Primitive is one of the built-in scalar type categories.
type Primitive int

const (
	PrimitiveString Primitive = iota
	PrimitiveNumber
	PrimitiveBoolean
	PrimitiveDatetime
	PrimitiveDuration
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveString:
		return "string"
	case PrimitiveNumber:
		return "number"
	case PrimitiveBoolean:
		return "boolean"
	case PrimitiveDatetime:
		return "datetime"
	case PrimitiveDuration:
		return "duration"
	default:
		return "invalid"
	}
}

// Literal is a literal text/descriptor pair, used for allowedValues and
// default values (SPEC_FULL §3).
type Literal struct {
	Text string
	Prop lexer.TypeDescriptor
}

// CSLType is the tagged-variant type of a key or array element. Exactly one
// of the concrete *Type fields is meaningful, selected by Tag.
type CSLType interface {
	Region() lexer.Region
	cslType()
}

type TypeTag int

const (
	TypePrimitive TypeTag = iota
	TypeTable
	TypeArray
	TypeUnion
	TypeAnyTable
	TypeAnyArray
	TypeInvalid
)

// PrimitiveType is a scalar type, optionally restricted to an enum of
// literal values.
type PrimitiveType struct {
	Prim          Primitive
	AllowedValues []Literal
	Annotations   []*Annotation
	Reg           lexer.Region
}

func (t *PrimitiveType) Region() lexer.Region { return t.Reg }
func (t *PrimitiveType) cslType()             {}

// TableType is a brace-enclosed set of key definitions plus an optional
// wildcard key and constraints block.
type TableType struct {
	ExplicitKeys []*KeyDefinition
	WildcardKey  *KeyDefinition
	Constraints  []Constraint
	Reg          lexer.Region
}

func (t *TableType) Region() lexer.Region { return t.Reg }
func (t *TableType) cslType()             {}

// Key looks up an explicit key by name, or nil.
func (t *TableType) Key(name string) *KeyDefinition {
	for _, k := range t.ExplicitKeys {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// ArrayType is an array whose elements share ElementType.
type ArrayType struct {
	ElementType CSLType
	Reg         lexer.Region
}

func (t *ArrayType) Region() lexer.Region { return t.Reg }
func (t *ArrayType) cslType()             {}

// UnionType is a flattened, at-least-two-member union of member types.
type UnionType struct {
	MemberTypes []CSLType
	Reg         lexer.Region
}

func (t *UnionType) Region() lexer.Region { return t.Reg }
func (t *UnionType) cslType()             {}

// AnyTableType is the opaque `any{}` type.
type AnyTableType struct{ Reg lexer.Region }

func (t *AnyTableType) Region() lexer.Region { return t.Reg }
func (t *AnyTableType) cslType()             {}

// AnyArrayType is the opaque `any[]` type.
type AnyArrayType struct{ Reg lexer.Region }

func (t *AnyArrayType) Region() lexer.Region { return t.Reg }
func (t *AnyArrayType) cslType()             {}

// InvalidType marks a type position the parser could not recover into a
// concrete shape; parsing continues regardless.
type InvalidType struct{ Reg lexer.Region }

func (t *InvalidType) Region() lexer.Region { return t.Reg }
func (t *InvalidType) cslType()             {}

// KeyDefinition is one `name: type = default;` entry in a TableType, or the
// synthesized wildcard key.
type KeyDefinition struct {
	Name            string
	IsWildcard      bool
	IsOptional      bool
	Type            CSLType
	Annotations     []*Annotation
	DefaultValue    *Literal
	NameRegion      lexer.Region
	DefinitionRegion lexer.Region
}

// globalAnnotations is the fixed set of annotation names attached to keys
// rather than to the type/expression they decorate (SPEC_FULL §3).
var globalAnnotations = map[string]bool{
	"deprecated": true,
}

// IsGlobalAnnotationName reports whether name belongs to the global set.
func IsGlobalAnnotationName(name string) bool {
	return globalAnnotations[name]
}

// Annotation is an `@name(args...)` decorator.
type Annotation struct {
	Name string
	Args []Expr
	Reg  lexer.Region
}

// ConstraintTag discriminates the Constraint variants.
type ConstraintTag int

const (
	ConstraintConflict ConstraintTag = iota
	ConstraintDependency
	ConstraintValidate
)

// Constraint is the tagged variant of a `constraints { }` block entry.
type Constraint interface {
	Region() lexer.Region
	Tag() ConstraintTag
}

type ConflictConstraint struct {
	First, Second Expr
	Reg           lexer.Region
}

func (c *ConflictConstraint) Region() lexer.Region { return c.Reg }
func (c *ConflictConstraint) Tag() ConstraintTag    { return ConstraintConflict }

type DependencyConstraint struct {
	Dependent, Condition Expr
	Reg                  lexer.Region
}

func (c *DependencyConstraint) Region() lexer.Region { return c.Reg }
func (c *DependencyConstraint) Tag() ConstraintTag    { return ConstraintDependency }

type ValidateConstraint struct {
	Expr Expr
	Reg  lexer.Region
}

func (c *ValidateConstraint) Region() lexer.Region { return c.Reg }
func (c *ValidateConstraint) Tag() ConstraintTag    { return ConstraintValidate }

// ConfigSchema is a top-level `config Name { ... }` block.
type ConfigSchema struct {
	Name       string
	RootTable  *TableType
	Reg        lexer.Region
	NameRegion lexer.Region
}
