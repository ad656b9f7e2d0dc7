package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivet-lang/rivetcore/internal/ast"
	"github.com/rivet-lang/rivetcore/internal/sym"
)

func TestPathEncodesLengthPrefixedSegments(t *testing.T) {
	got := Path([]string{"core", "String", "len"}, RoleMethod)
	assert.Equal(t, "_R4core6String3lenM", got)
}

func TestPathNoRoleOmitsSuffix(t *testing.T) {
	got := PathNoRole([]string{"core", "Vec"})
	assert.Equal(t, "_R4core3Vec", got)
}

func TestEscapeOnlyTouchesReservedWords(t *testing.T) {
	assert.Equal(t, "_ri_class", Escape("class"))
	assert.Equal(t, "widget", Escape("widget"), "non-reserved names pass through unchanged")
}

func TestIsReservedCoversCxxAndPlatformCollisions(t *testing.T) {
	for _, name := range []string{"class", "template", "small", "unix", "namespace"} {
		assert.True(t, IsReserved(name), "IsReserved(%q) should be true", name)
	}
	assert.False(t, IsReserved("rivet_handles_this_fine"))
}

func TestSymbolMangleFunctionVsMethod(t *testing.T) {
	g := sym.NewGraph()
	_, modScope := g.NewModule("app", false, ast.Pos{})

	fnSym, err := g.AddFn(modScope, ast.Pub, "run", &sym.FnData{}, ast.Pos{})
	require.NoError(t, err)
	assert.Equal(t, "_R3app3runF", Symbol(g, fnSym))

	typeSym, typeScope, err := g.AddType(modScope, ast.Pub, "Widget", sym.Struct, &sym.TypeData{Kind: sym.Struct}, ast.Pos{})
	require.NoError(t, err)
	methodSym, err := g.AddFn(typeScope, ast.Pub, "draw", &sym.FnData{IsMethod: true}, ast.Pos{})
	require.NoError(t, err)

	assert.Equal(t, "_R3app6Widget4drawM", Symbol(g, methodSym))
	assert.Equal(t, "_R3app6Widget", Symbol(g, typeSym))
}

func TestGeneratedPathUsesZRole(t *testing.T) {
	got := GeneratedPath("init_args")
	assert.Equal(t, "_R9init_argsZ", got)
}

func TestPathNormalizesUnicodeSegmentsToNFC(t *testing.T) {
	// "café" spelled with a combining acute accent (NFD, 5 runes/6 bytes)
	// must mangle identically to the precomposed form (NFC, 4 runes/5
	// bytes): both name the same identifier, just encoded differently.
	nfd := "café"
	nfc := "café"
	require.NotEqual(t, nfd, nfc, "test fixture must use genuinely different byte encodings")
	assert.Equal(t, PathNoRole([]string{nfc}), PathNoRole([]string{nfd}))
	assert.Equal(t, "_R5café", PathNoRole([]string{nfd}))
}
