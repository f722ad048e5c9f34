// Package ffi exposes the core as the handle-based foreign-function
// surface described in spec.md §6.2: every operation takes and returns
// an opaque tree handle plus UTF-8 byte runs, any failure is reported as
// a single-line stderr diagnostic plus a null/negative return, and byte
// runs the core allocates must be released by the host via
// fsl_free_bytes. Grounded on the cgo handle-table and C.CBytes/
// C.GoBytes conventions shown in the pack's tree-sitter bindings
// (other_examples' boldsoftware-treesitter and
// uber-research-last-diff-analyzer Go/cgo wrappers).
package ffi

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/hashicorp/go-hclog"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/linker"
	"github.com/foursquare/fsltool/parser"
	"github.com/foursquare/fsltool/printer"
	"github.com/foursquare/fsltool/rolemerge"
	"github.com/foursquare/fsltool/treeops"
	"github.com/foursquare/fsltool/tsgen"
)

var (
	errInvalidKind             = errors.New("ffi: invalid declaration kind string")
	errInvalidMangledNamesJSON = errors.New("ffi: invalid mangled names json")
	errInvalidSourcesJSON      = errors.New("ffi: invalid sources json")
	errUnknownHandle           = errors.New("ffi: unknown tree handle")

	diagLog = hclog.Default().Named("fsltool-ffi")
)

func diagnostic(op string, err error) {
	diagLog.Error("operation failed", "op", op, "error", err)
}

var (
	handles    sync.Map // int64 -> *ast.SchemaTree
	nextHandle int64
)

func store(t *ast.SchemaTree) C.longlong {
	id := atomic.AddInt64(&nextHandle, 1)
	handles.Store(id, t)
	return C.longlong(id)
}

func lookup(h C.longlong) (*ast.SchemaTree, bool) {
	v, ok := handles.Load(int64(h))
	if !ok {
		return nil, false
	}
	return v.(*ast.SchemaTree), true
}

// cBytes copies a Go byte slice into core-owned C memory the host must
// eventually pass to fsl_free_bytes.
func cBytes(b []byte) (*C.char, C.int) {
	if len(b) == 0 {
		return nil, 0
	}
	ptr := C.CBytes(b)
	return (*C.char)(ptr), C.int(len(b))
}

func goBytes(ptr *C.char, length C.int) []byte {
	if ptr == nil || length == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(ptr), length)
}

//export fsl_parse
func fsl_parse(src *C.char, srcLen C.int, filename *C.char) C.longlong {
	data := goBytes(src, srcLen)
	file := C.GoString(filename)
	tree, err := parser.ParseFile(file, data)
	if err != nil {
		diagnostic("parse", err)
		return -1
	}
	return store(tree)
}

//export fsl_clone
func fsl_clone(h C.longlong) C.longlong {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("clone", errUnknownHandle)
		return -1
	}
	return store(tree.Clone(nil))
}

//export fsl_dispose
func fsl_dispose(h C.longlong) {
	if tree, ok := lookup(h); ok {
		tree.Dispose()
		handles.Delete(int64(h))
	}
}

//export fsl_length
func fsl_length(h C.longlong) C.int {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("length", errUnknownHandle)
		return -1
	}
	return C.int(tree.Length())
}

//export fsl_sort
func fsl_sort(h C.longlong) {
	if tree, ok := lookup(h); ok {
		treeops.Sort(tree)
	}
}

//export fsl_merge_trees
func fsl_merge_trees(a, b C.longlong) C.longlong {
	ta, ok1 := lookup(a)
	tb, ok2 := lookup(b)
	if !ok1 || !ok2 {
		diagnostic("merge_trees", errUnknownHandle)
		return -1
	}
	merged := ast.Merge(ta, tb)
	handles.Delete(int64(a))
	handles.Delete(int64(b))
	return store(merged)
}

//export fsl_link_functions
func fsl_link_functions(h C.longlong) (*C.char, C.int) {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("link_functions", errUnknownHandle)
		return nil, 0
	}
	mangled, err := linker.Link(tree)
	if err != nil {
		diagnostic("link_functions", err)
		return nil, 0
	}
	out, err := json.Marshal(mangled)
	if err != nil {
		diagnostic("link_functions", err)
		return nil, 0
	}
	return cBytes(out)
}

//export fsl_merge_roles
func fsl_merge_roles(h C.longlong) C.longlong {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("merge_roles", errUnknownHandle)
		return -1
	}
	merged, err := rolemerge.Merge(tree)
	if err != nil {
		diagnostic("merge_roles", err)
		return -1
	}
	tree.Declarations = merged
	return h
}

//export fsl_filter_by_kind
func fsl_filter_by_kind(h C.longlong, kindStr *C.char) C.longlong {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("filter_by_kind", errUnknownHandle)
		return -1
	}
	kind, ok := ast.ParseDeclKind(C.GoString(kindStr))
	if !ok {
		diagnostic("filter_by_kind", errInvalidKind)
		return -1
	}
	return store(treeops.Filter(tree, kind))
}

//export fsl_remove_declaration
func fsl_remove_declaration(h C.longlong, kindStr, name *C.char) {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("remove_declaration", errUnknownHandle)
		return
	}
	kind, ok := ast.ParseDeclKind(C.GoString(kindStr))
	if !ok {
		diagnostic("remove_declaration", errInvalidKind)
		return
	}
	treeops.Remove(tree, kind, C.GoString(name))
}

//export fsl_strip_roles_resource
func fsl_strip_roles_resource(h C.longlong, name *C.char) {
	if tree, ok := lookup(h); ok {
		treeops.StripRolesResource(tree, C.GoString(name))
	}
}

//export fsl_list_declarations
func fsl_list_declarations(h C.longlong) (*C.char, C.int) {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("list_declarations", errUnknownHandle)
		return nil, 0
	}
	out, err := treeops.ListDeclarations(tree)
	if err != nil {
		diagnostic("list_declarations", err)
		return nil, 0
	}
	return cBytes(out)
}

//export fsl_canonical
func fsl_canonical(h C.longlong, sourceMapFile *C.char, mangledMapJSON *C.char, sourcesJSON *C.char) (*C.char, C.int) {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("canonical", errUnknownHandle)
		return nil, 0
	}
	opts := printer.Options{SourceMapFile: C.GoString(sourceMapFile)}
	if mangledMapJSON != nil {
		if raw := C.GoString(mangledMapJSON); raw != "" {
			var m map[string]string
			if err := json.Unmarshal([]byte(raw), &m); err != nil {
				// InvalidMangledNamesJson (spec.md §7): recoverable, the
				// printer continues without symbol info.
				diagnostic("canonical", errInvalidMangledNamesJSON)
			} else {
				opts.MangledNames = m
			}
		}
	}
	if sourcesJSON != nil {
		if raw := C.GoString(sourcesJSON); raw != "" {
			var m map[string]string
			if err := json.Unmarshal([]byte(raw), &m); err != nil {
				// InvalidSourcesJson (spec.md §7): recoverable, the
				// printer continues attributing mappings to each
				// declaration's own parse-time source file.
				diagnostic("canonical", errInvalidSourcesJSON)
			} else {
				opts.Sources = m
			}
		}
	}
	text, err := printer.Print(tree, opts)
	if err != nil {
		diagnostic("canonical", err)
		return nil, 0
	}
	return cBytes([]byte(text))
}

//export fsl_typescript_definitions
func fsl_typescript_definitions(h C.longlong) (*C.char, C.int) {
	tree, ok := lookup(h)
	if !ok {
		diagnostic("typescript_definitions", errUnknownHandle)
		return nil, 0
	}
	text, err := tsgen.Generate(tree)
	if err != nil {
		diagnostic("typescript_definitions", err)
		return nil, 0
	}
	return cBytes([]byte(text))
}

//export fsl_free_bytes
func fsl_free_bytes(ptr *C.char) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}
