package ast

import "strings"

// IdentRef is one identifier-like token found in an ExprBlob by
// WalkIdentifiers, together with its byte span within Blob.Text. It is
// the FQL-body analogue of a TextNode: the linker treats each IdentRef
// as a rewrite point even though the expression behind it was never
// structurally parsed.
type IdentRef struct {
	Text  string
	Start int
	End   int
}

func isIdentStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPartByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}

// WalkIdentifiers performs a minimal, lazy tokenization of blob's text —
// identifiers, string literals, line comments, everything else skipped
// byte-by-byte — and yields every identifier-like token in order. This
// is deliberately not a full FQL parse (spec.md §1, §9): the linker only
// needs candidate UDF-name references, and role predicates/computed
// field expressions only need the same scan.
func WalkIdentifiers(blob *ExprBlob) []IdentRef {
	if blob == nil {
		return nil
	}
	return walkIdentifiers(blob.Text)
}

func walkIdentifiers(src string) []IdentRef {
	var out []IdentRef
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case isIdentStartByte(c):
			s := i
			i++
			for i < n && isIdentPartByte(src[i]) {
				i++
			}
			out = append(out, IdentRef{Text: src[s:i], Start: s, End: i})
		case c == '"':
			i++
			for i < n && src[i] != '"' {
				if src[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
			if i < n {
				i++
			}
		case c == '/' && i+1 < n && src[i+1] == '/':
			for i < n && src[i] != '\n' {
				i++
			}
		default:
			i++
		}
	}
	return out
}

// RewriteIdentifiers replaces every identifier occurrence in blob whose
// text is a key of rename with its mapped value, rebuilding blob.Text in
// a single pass. It is a no-op if no identifier in blob matches.
func RewriteIdentifiers(blob *ExprBlob, rename map[string]string) {
	if blob == nil || len(rename) == 0 {
		return
	}
	refs := walkIdentifiers(blob.Text)
	changed := false
	for _, r := range refs {
		if _, ok := rename[r.Text]; ok {
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	var b strings.Builder
	last := 0
	for _, r := range refs {
		if newName, ok := rename[r.Text]; ok {
			b.WriteString(blob.Text[last:r.Start])
			b.WriteString(newName)
			last = r.End
		}
	}
	b.WriteString(blob.Text[last:])
	blob.Text = b.String()
}
