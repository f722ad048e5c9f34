// Package token defines the lexical tokens produced by the FSL lexer and
// the source positions attached to every AST leaf.
package token

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	Illegal Kind = iota
	EOF

	Ident
	String
	Int
	Decimal

	// Punctuation
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	LParen    // (
	RParen    // )
	Comma     // ,
	Semicolon // ;
	Colon     // :
	Assign    // =
	Pipe      // |
	Question  // ?
	Star      // *
	FatArrow  // =>
	Lt        // <
	Gt        // >
	Dot       // .

	// Keywords
	KwAccessProvider
	KwCollection
	KwFunction
	KwRole
	KwAs
	KwIndex
	KwUnique
	KwCheck
	KwCompute
	KwHistoryDays
	KwTTLDays
	KwMigrations
	KwMembership
	KwPrivileges
	KwTrue
	KwFalse
	KwNull
)

// "access provider" is two words; the lexer never emits KwAccessProvider
// directly; the parser recognizes the two-ident sequence "access" "provider".
var keywords = map[string]Kind{
	"collection":  KwCollection,
	"function":    KwFunction,
	"role":        KwRole,
	"as":          KwAs,
	"index":       KwIndex,
	"unique":      KwUnique,
	"check":       KwCheck,
	"compute":     KwCompute,
	"history_days": KwHistoryDays,
	"ttl_days":    KwTTLDays,
	"migrations":  KwMigrations,
	"membership":  KwMembership,
	"privileges":  KwPrivileges,
	"true":        KwTrue,
	"false":       KwFalse,
	"null":        KwNull,
}

// Lookup resolves an identifier's keyword kind, or Ident if it is not a
// reserved word. "access provider" is two words and is special-cased by
// the parser, not here.
func Lookup(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

func (k Kind) String() string {
	switch k {
	case Illegal:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case Ident:
		return "IDENT"
	case String:
		return "STRING"
	case Int:
		return "INT"
	case Decimal:
		return "DECIMAL"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case LParen:
		return "("
	case RParen:
		return ")"
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Colon:
		return ":"
	case Assign:
		return "="
	case Pipe:
		return "|"
	case Question:
		return "?"
	case Star:
		return "*"
	case FatArrow:
		return "=>"
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Dot:
		return "."
	case KwAccessProvider:
		return "access provider"
	case KwCollection:
		return "collection"
	case KwFunction:
		return "function"
	case KwRole:
		return "role"
	case KwAs:
		return "as"
	case KwIndex:
		return "index"
	case KwUnique:
		return "unique"
	case KwCheck:
		return "check"
	case KwCompute:
		return "compute"
	case KwHistoryDays:
		return "history_days"
	case KwTTLDays:
		return "ttl_days"
	case KwMigrations:
		return "migrations"
	case KwMembership:
		return "membership"
	case KwPrivileges:
		return "privileges"
	case KwTrue:
		return "true"
	case KwFalse:
		return "false"
	case KwNull:
		return "null"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Position is a fully resolved source location: file, 1-based line and
// column, plus the byte offset and length into the source buffer. Every
// token and every AST leaf derived from a token carries one.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
	Length int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid reports whether p was ever set by the lexer, as opposed to the
// zero value used by synthetic nodes that have no source origin.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line != 0
}

// Token is one lexical unit with its exact source span.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}
