// Package tsgen renders a minimal TypeScript declaration file from a
// SchemaTree's collection definitions, satisfying spec.md §1(b) and the
// typescript_definitions FFI operation. Emission is out of core scope
// beyond the AST's input contract, so this package depends only on ast.
package tsgen

import (
	"fmt"
	"strings"

	"github.com/foursquare/fsltool/ast"
)

// namedTypeMap translates FSL named scalar types to their TypeScript
// equivalents; anything absent is emitted as-is (assumed to name
// another generated interface or a built-in FQL type left opaque).
var namedTypeMap = map[string]string{
	"String":  "string",
	"Int":     "number",
	"Number":  "number",
	"Boolean": "boolean",
	"Date":    "Date",
	"Null":    "null",
	"Any":     "any",
}

// Generate renders one `export interface <Name> { ... }` per collection
// declaration in tree, in declaration order.
func Generate(tree *ast.SchemaTree) (string, error) {
	var b strings.Builder
	for _, d := range tree.Declarations {
		if d.Kind != ast.DeclCollection {
			continue
		}
		if err := writeInterface(&b, d.Collection); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeInterface(b *strings.Builder, c *ast.CollectionDecl) error {
	fmt.Fprintf(b, "export interface %s {\n", c.Name.Text)
	for _, m := range c.Members {
		switch m.Kind {
		case ast.MemberField:
			optional, tsType := renderType(m.Field.Type)
			fmt.Fprintf(b, "  %s%s: %s;\n", m.Field.Name.Text, optMark(optional), tsType)
		case ast.MemberComputedField:
			optional, tsType := renderType(m.ComputedField.Type)
			fmt.Fprintf(b, "  %s%s: %s;\n", m.ComputedField.Name.Text, optMark(optional), tsType)
		}
	}
	b.WriteString("}\n\n")
	return nil
}

func optMark(optional bool) string {
	if optional {
		return "?"
	}
	return ""
}

// renderType translates an FQLType to TypeScript. A nil type (the field
// carried no annotation) renders as `unknown`, per spec.md §3's "absence
// means unknown" rule.
func renderType(t *ast.FQLType) (optional bool, tsType string) {
	if t == nil {
		return false, "unknown"
	}
	switch t.Kind {
	case ast.TNamed:
		name := t.Name.Text
		if mapped, ok := namedTypeMap[name]; ok {
			return false, mapped
		}
		return false, name
	case ast.TStringLiteral:
		return false, fmt.Sprintf("%q", t.Literal.Text)
	case ast.TNumberLiteral:
		return false, t.Literal.Text
	case ast.TOptional:
		_, inner := renderType(t.Inner)
		return true, inner
	case ast.TIsolated:
		_, inner := renderType(t.Inner)
		return false, inner
	case ast.TUnion:
		_, lhs := renderType(t.Lhs)
		_, rhs := renderType(t.Rhs)
		return false, lhs + " | " + rhs
	case ast.TTemplate:
		params := make([]string, len(t.TemplateParams))
		for i, p := range t.TemplateParams {
			_, params[i] = renderType(p)
		}
		return false, fmt.Sprintf("%s<%s>", t.TemplateName.Text, strings.Join(params, ", "))
	case ast.TTuple:
		parts := make([]string, len(t.TupleTypes))
		for i, elem := range t.TupleTypes {
			_, parts[i] = renderType(elem)
		}
		return false, "[" + strings.Join(parts, ", ") + "]"
	case ast.TObject:
		var b strings.Builder
		b.WriteString("{ ")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString("; ")
			}
			_, fieldType := renderType(f.Type)
			fmt.Fprintf(&b, "%s%s: %s", f.Key.Text, optMark(f.Optional), fieldType)
		}
		b.WriteString(" }")
		return false, b.String()
	case ast.TFunction:
		params := make([]string, len(t.Function.Params))
		for i, p := range t.Function.Params {
			_, params[i] = renderType(p)
		}
		_, ret := renderType(t.Function.Return)
		return false, fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), ret)
	default:
		return false, "unknown"
	}
}
