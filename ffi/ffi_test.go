package ffi

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/base64"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func cstr(s string) *C.char {
	return C.CString(s)
}

func TestParseLengthDispose(t *testing.T) {
	src := cstr("collection Users { name: String; }")
	defer C.free(unsafe.Pointer(src))

	h := fsl_parse(src, C.int(len("collection Users { name: String; }")), cstr("t.fsl"))
	require.GreaterOrEqual(t, int64(h), int64(0))
	require.Equal(t, C.int(1), fsl_length(h))

	fsl_dispose(h)
	require.Equal(t, C.int(-1), fsl_length(h))
}

func TestParseInvalidSourceReturnsNegative(t *testing.T) {
	src := cstr("collection {{{")
	defer C.free(unsafe.Pointer(src))
	h := fsl_parse(src, C.int(len("collection {{{")), cstr("t.fsl"))
	require.Equal(t, C.longlong(-1), h)
}

func TestCanonicalAndFreeBytes(t *testing.T) {
	src := cstr("function greet() { 1 }")
	defer C.free(unsafe.Pointer(src))
	h := fsl_parse(src, C.int(len("function greet() { 1 }")), cstr("t.fsl"))
	require.GreaterOrEqual(t, int64(h), int64(0))
	defer fsl_dispose(h)

	ptr, n := fsl_canonical(h, nil, nil, nil)
	require.Greater(t, int(n), 0)
	out := C.GoStringN(ptr, n)
	require.Contains(t, out, "function greet()")
	fsl_free_bytes(ptr)
}

func TestCanonicalWithSourcesJSONOverridesOriginFile(t *testing.T) {
	src := cstr("function greet() { 1 }")
	defer C.free(unsafe.Pointer(src))
	h := fsl_parse(src, C.int(len("function greet() { 1 }")), cstr("t.fsl"))
	defer fsl_dispose(h)

	ptr, n := fsl_canonical(h, cstr("out.fsl"), nil, cstr(`{"greet":"merged/from/other.fsl"}`))
	require.Greater(t, int(n), 0)
	out := C.GoStringN(ptr, n)
	const marker = "//# sourceMappingURL=data:application/json;base64,"
	idx := strings.LastIndex(out, marker)
	require.Greater(t, idx, -1)
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(out[idx+len(marker):]))
	require.NoError(t, err)
	require.Contains(t, string(raw), "merged/from/other.fsl")
	fsl_free_bytes(ptr)
}

func TestCanonicalWithMalformedSourcesJSONIsRecoverable(t *testing.T) {
	src := cstr("function greet() { 1 }")
	defer C.free(unsafe.Pointer(src))
	h := fsl_parse(src, C.int(len("function greet() { 1 }")), cstr("t.fsl"))
	defer fsl_dispose(h)

	ptr, n := fsl_canonical(h, nil, nil, cstr("not valid json"))
	require.Greater(t, int(n), 0)
	out := C.GoStringN(ptr, n)
	require.Contains(t, out, "function greet()")
	fsl_free_bytes(ptr)
}

func TestFilterByKindInvalidKind(t *testing.T) {
	src := cstr("function greet() { 1 }")
	defer C.free(unsafe.Pointer(src))
	h := fsl_parse(src, C.int(len("function greet() { 1 }")), cstr("t.fsl"))
	defer fsl_dispose(h)

	out := fsl_filter_by_kind(h, cstr("not_a_kind"))
	require.Equal(t, C.longlong(-1), out)
}

func TestCloneProducesIndependentHandle(t *testing.T) {
	src := cstr("collection Users { name: String; }")
	defer C.free(unsafe.Pointer(src))
	h := fsl_parse(src, C.int(len("collection Users { name: String; }")), cstr("t.fsl"))
	defer fsl_dispose(h)

	clone := fsl_clone(h)
	require.NotEqual(t, h, clone)
	defer fsl_dispose(clone)

	fsl_remove_declaration(clone, cstr("collection"), cstr("Users"))
	require.Equal(t, C.int(0), fsl_length(clone))
	require.Equal(t, C.int(1), fsl_length(h))
}

func TestListDeclarations(t *testing.T) {
	src := cstr("function greet() { 1 }")
	defer C.free(unsafe.Pointer(src))
	h := fsl_parse(src, C.int(len("function greet() { 1 }")), cstr("t.fsl"))
	defer fsl_dispose(h)

	ptr, n := fsl_list_declarations(h)
	require.Greater(t, int(n), 0)
	out := C.GoStringN(ptr, n)
	require.Contains(t, out, `"name":"greet"`)
	fsl_free_bytes(ptr)
}
