package ast

import "github.com/foursquare/fsltool/token"

// FQLTypeKind tags the FQLType variant. FQLType is represented as a
// single struct with a kind tag rather than an interface hierarchy: the
// printer and code-equality routine are exhaustive switches over this
// tag, so adding a variant makes every call site that needs updating
// impossible to miss (spec.md §9's "dynamic dispatch over AST variants"
// note; the same tradeoff mitranim/sqlp's nodes.go documents when
// choosing a tagged struct over one-interface-per-case).
type FQLTypeKind int

const (
	TNamed FQLTypeKind = iota
	TObject
	TUnion
	TOptional
	TTemplate
	TTuple
	TStringLiteral
	TNumberLiteral
	TFunction
	TIsolated
)

func (k FQLTypeKind) String() string {
	switch k {
	case TNamed:
		return "named"
	case TObject:
		return "object"
	case TUnion:
		return "union"
	case TOptional:
		return "optional"
	case TTemplate:
		return "template"
	case TTuple:
		return "tuple"
	case TStringLiteral:
		return "string_literal"
	case TNumberLiteral:
		return "number_literal"
	case TFunction:
		return "function"
	case TIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// ObjectField is one `key: type` (or `key?: type`) pair of an object
// type literal.
type ObjectField struct {
	Key      *TextNode
	Type     *FQLType
	Optional bool
}

// FuncParamForm distinguishes the two ways a function type can spell
// its parameter list: `short` positional form `(A, B) => T`, or `long`
// form carrying per-parameter names (parsed but not separately modeled
// beyond their types, since the core never evaluates FQL).
type FuncParamForm int

const (
	ParamsShort FuncParamForm = iota
	ParamsLong
)

// FunctionType is the `(params) => T` type.
type FunctionType struct {
	ParamForm FuncParamForm
	Params    []*FQLType
	Variadic  bool
	Return    *FQLType
}

// FQLType is the recursive tagged variant described in spec.md §3.
type FQLType struct {
	Kind FQLTypeKind
	Pos  token.Position
	owner *Allocator

	// TNamed
	Name *TextNode

	// TObject
	Fields   []ObjectField
	Wildcard *FQLType // optional

	// TUnion
	Lhs, Rhs *FQLType

	// TOptional, TIsolated
	Inner *FQLType

	// TTemplate: name<params...>
	TemplateName   *TextNode
	TemplateParams []*FQLType

	// TTuple
	TupleTypes []*FQLType

	// TStringLiteral, TNumberLiteral
	Literal *TextNode

	// TFunction
	Function *FunctionType
}

// Owner returns the allocator this node was obtained from.
func (t *FQLType) Owner() *Allocator {
	if t == nil {
		return nil
	}
	return t.owner
}
