package printer

import "github.com/foursquare/fsltool/ast"

// printExprBlob re-emits a captured FQL expression body verbatim except
// for indentation, which is rewritten to match the printer's current
// depth (spec.md §4.2 rule 4). The blob is never reparsed; only its
// line breaks are used to find re-indentation points.
func (p *Printer) printExprBlob(b *ast.ExprBlob) {
	if b == nil {
		return
	}
	p.mapIdent("", b.Pos)
	lines := splitLines(b.Text)
	if len(lines) == 1 {
		p.write(lines[0])
		return
	}
	p.write(lines[0])
	p.write("\n")
	bodyIndent := p.indentStr() + "  "
	for i := 1; i < len(lines)-1; i++ {
		trimmed := trimLeadingSpace(lines[i])
		if trimmed == "" {
			p.write("\n")
			continue
		}
		p.write(bodyIndent)
		p.write(trimmed)
		p.write("\n")
	}
	p.write(p.indentStr())
	p.write(trimLeadingSpace(lines[len(lines)-1]))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			end := i
			if end > start && s[end-1] == '\r' {
				end--
			}
			lines = append(lines, s[start:end])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func trimLeadingSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}
