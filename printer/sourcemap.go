package printer

import (
	"encoding/base64"
	"encoding/json"
)

// mapping records that the generated text starting at (GenLine,GenCol)
// originated from (OrigFile,OrigLine,OrigCol). Symbol is set only for
// identifiers the linker mangled, naming the pre-mangling original.
type mapping struct {
	GenLine  int    `json:"genLine"`
	GenCol   int    `json:"genCol"`
	OrigFile string `json:"origFile"`
	OrigLine int    `json:"origLine"`
	OrigCol  int    `json:"origCol"`
	Symbol   string `json:"symbol,omitempty"`
}

// sourceMap accumulates mappings for one Print call. It is not a general
// source-map-v3 encoder (no VLQ segment packing): spec.md §4.2/§6.3 only
// requires the printer's output be traceable back to original positions,
// not interop with an external source-map consumer, so the mapping list
// is emitted as plain JSON.
type sourceMap struct {
	file     string
	mappings []mapping
}

func newSourceMap(destFile string) *sourceMap {
	return &sourceMap{file: destFile}
}

// Record adds one generated->original mapping. Called by the printer
// immediately before writing a TextNode or an expression blob, using the printer's current
// output position as the generated side. origFile is passed explicitly
// (rather than read off a token.Position) so a caller-supplied sources
// override can replace the file recorded on the token at parse time.
func (sm *sourceMap) Record(genLine, genCol int, origFile string, origLine, origCol int, symbol string) {
	sm.mappings = append(sm.mappings, mapping{
		GenLine:  genLine,
		GenCol:   genCol,
		OrigFile: origFile,
		OrigLine: origLine,
		OrigCol:  origCol,
		Symbol:   symbol,
	})
}

type sourceMapDoc struct {
	Version  int       `json:"version"`
	File     string    `json:"file"`
	Mappings []mapping `json:"mappings"`
}

// InlineComment renders the accumulated mappings as a trailing
// `//# sourceMappingURL=data:application/json;base64,...` comment, the
// same inline-data-URI convention JS source maps use, per spec.md §6.3.
func (sm *sourceMap) InlineComment() string {
	doc := sourceMapDoc{Version: 1, File: sm.file, Mappings: sm.mappings}
	raw, err := json.Marshal(doc)
	if err != nil {
		raw = []byte(`{"version":1,"mappings":[]}`)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	return "//# sourceMappingURL=data:application/json;base64," + encoded
}
