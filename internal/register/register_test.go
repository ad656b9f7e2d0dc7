package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivet-lang/rivetcore/internal/ast"
	"github.com/rivet-lang/rivetcore/internal/errors"
	"github.com/rivet-lang/rivetcore/internal/sym"
)

func pos(line int) ast.Pos { return ast.Pos{File: "t.ri", Line: line} }

func newTestRegistrar() (*Registrar, *sym.Graph, *errors.CollectingReporter, *sym.Symbol) {
	g := sym.NewGraph()
	reporter := &errors.CollectingReporter{}
	voidType := &ast.NamedType{Name: "void"}
	r := New(g, reporter, voidType)
	modID, _ := g.NewModule("main", false, pos(0))
	modSym := g.Symbol(modID)
	return r, g, reporter, modSym
}

// A duplicate field is reported once, at the second field's position,
// and the later field is discarded.
func TestDuplicateFieldDiscarded(t *testing.T) {
	r, g, reporter, modSym := newTestRegistrar()

	structDecl := &ast.StructDecl{
		Name: "S", Pos_: pos(1),
		Decls: []ast.Decl{
			&ast.FieldDecl{Name: "x", Type: &ast.NamedType{Name: "i32"}, Pos_: pos(2)},
			&ast.FieldDecl{Name: "x", Type: &ast.NamedType{Name: "i32"}, Pos_: pos(3)},
		},
	}
	r.WalkFiles([]SourceFile{{File: &ast.File{Decls: []ast.Decl{structDecl}}, ModuleSym: modSym}})

	dups := reporter.ByCode(errors.RegDuplicateField)
	require.Len(t, dups, 1)
	assert.Equal(t, 3, dups[0].Span.Line, "duplicate should be reported at the second field's line")

	sSym := mustLookup(t, g, modSym.OwnScope, "S")
	assert.Len(t, sSym.Type.Fields, 1)
}

// A duplicate enum variant is reported once and skipped; the surviving
// variants keep their source-order ordinals.
func TestEnumDuplicateVariantSkipped(t *testing.T) {
	r, g, reporter, modSym := newTestRegistrar()

	enumDecl := &ast.EnumDecl{
		Name: "E", Underlying: &ast.NamedType{Name: "i32"},
		Values: []string{"A", "B", "A"},
		Pos_:   pos(1),
	}
	r.WalkFiles([]SourceFile{{File: &ast.File{Decls: []ast.Decl{enumDecl}}, ModuleSym: modSym}})

	dups := reporter.ByCode(errors.RegDuplicateEnumValue)
	require.Len(t, dups, 1)

	eSym := mustLookup(t, g, modSym.OwnScope, "E")
	info := eSym.Type.Enum
	assert.Equal(t, int64(0), info.Values["A"])
	assert.Equal(t, int64(1), info.Values["B"])
	assert.Len(t, info.Variants, 2)
}

func TestDuplicateSymbolInScope(t *testing.T) {
	r, _, reporter, modSym := newTestRegistrar()

	fn := func(name string, p ast.Pos) *ast.FnDecl {
		return &ast.FnDecl{Name: name, NamePos: p, Ret: &ast.NamedType{Name: "void"}}
	}
	f := &ast.File{Decls: []ast.Decl{fn("f", pos(1)), fn("f", pos(2))}}
	r.WalkFiles([]SourceFile{{File: f, ModuleSym: modSym}})

	dups := reporter.ByCode(errors.RegDuplicateSymbol)
	require.Len(t, dups, 1)
	assert.Equal(t, 2, dups[0].Span.Line)

	first := f.Decls[0].(*ast.FnDecl)
	assert.NotNil(t, first.Sym, "first `f` should have a symbol attached")
	second := f.Decls[1].(*ast.FnDecl)
	assert.Nil(t, second.Sym, "second (rejected) `f` should not have a symbol attached")
}

// Extend on an unknown named type creates exactly one Placeholder; a
// second extend of the same name reuses it.
func TestExtendCreatesAndReusesPlaceholder(t *testing.T) {
	r, g, reporter, modSym := newTestRegistrar()

	ext1 := &ast.ExtendDecl{Target: &ast.NamedType{Name: "Foo"}, Pos_: pos(1)}
	ext2 := &ast.ExtendDecl{Target: &ast.NamedType{Name: "Foo"}, Pos_: pos(2)}
	f := &ast.File{Decls: []ast.Decl{ext1, ext2}}
	r.WalkFiles([]SourceFile{{File: f, ModuleSym: modSym}})

	require.Empty(t, reporter.Reports)

	fooSym := mustLookup(t, g, modSym.OwnScope, "Foo")
	assert.Equal(t, sym.Placeholder, fooSym.Type.Kind)
	assert.Equal(t, sym.Priv, fooSym.Vis)

	resolved1, _ := ext1.ResolvedSym.(*sym.Symbol)
	resolved2, _ := ext2.ResolvedSym.(*sym.Symbol)
	assert.Same(t, fooSym, resolved1)
	assert.Same(t, fooSym, resolved2)

	// Only one Placeholder should exist in the module scope.
	count := 0
	for _, id := range g.Scope(modSym.OwnScope).Order() {
		if s := g.Symbol(id); s.Kind == sym.KindType && s.Name == "Foo" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtendInvalidTargetUnifiesBothRejectionPaths(t *testing.T) {
	r, _, reporter, modSym := newTestRegistrar()

	// Neither a NamedType nor a pre-bound ResolvedType: a tuple type.
	bad := &ast.ExtendDecl{Target: &ast.TupleType{}, Pos_: pos(1)}
	f := &ast.File{Decls: []ast.Decl{bad}}
	r.WalkFiles([]SourceFile{{File: f, ModuleSym: modSym}})

	invalid := reporter.ByCode(errors.RegInvalidExtendTarget)
	assert.Len(t, invalid, 1)
}

// ABI save/restore: after an ExternBlock, ambient ABI returns to what it
// was before entering.
func TestExternBlockABISaveRestore(t *testing.T) {
	r, _, reporter, modSym := newTestRegistrar()

	extern := &ast.ExternBlockDecl{
		ABI: ast.CABI, Pos_: pos(1),
		Decls: []ast.Decl{
			&ast.FnDecl{Name: "c_fn", NamePos: pos(2), Ret: &ast.NamedType{Name: "void"}},
		},
	}
	after := &ast.FnDecl{Name: "rivet_fn", NamePos: pos(3), Ret: &ast.NamedType{Name: "void"}}
	f := &ast.File{Decls: []ast.Decl{extern, after}}
	r.WalkFiles([]SourceFile{{File: f, ModuleSym: modSym}})

	require.Empty(t, reporter.Reports)

	cFn := extern.Decls[0].(*ast.FnDecl).Sym.(*sym.Symbol)
	assert.Equal(t, sym.CABI, cFn.Fn.ABI)
	rivetFn := after.Sym.(*sym.Symbol)
	assert.Equal(t, sym.RivetABI, rivetFn.Fn.ABI, "ABI must not leak from the extern block")
}

// Runtime-module adoption: string/Error bind to pre-existing handles and
// do not create new Type symbols; Vec does create one and is recorded.
func TestRuntimeModuleAdoption(t *testing.T) {
	g := sym.NewGraph()
	reporter := &errors.CollectingReporter{}
	r := New(g, reporter, &ast.NamedType{Name: "void"})

	runtimeModID, runtimeModScope := g.NewModule("core", true, pos(0))
	runtimeModSym := g.Symbol(runtimeModID)
	stringSym, _, err := g.AddType(runtimeModScope, sym.Pub, "string", sym.Class, &sym.TypeData{Class: &sym.ClassInfo{Base: sym.NoID}}, pos(0))
	require.NoError(t, err)
	errorSym, _, err := g.AddType(runtimeModScope, sym.Pub, "Error", sym.Class, &sym.TypeData{Class: &sym.ClassInfo{Base: sym.NoID}}, pos(0))
	require.NoError(t, err)
	r.Adopt = RuntimeAdoptions{StringSym: stringSym, ErrorSym: errorSym}

	stringDecl := &ast.ClassDecl{Name: "string", Pos_: pos(1)}
	errorDecl := &ast.ClassDecl{Name: "Error", Pos_: pos(2)}
	vecDecl := &ast.ClassDecl{Name: "Vec", Pos_: pos(3)}
	f := &ast.File{IsRuntime: true, Decls: []ast.Decl{stringDecl, errorDecl, vecDecl}}
	r.WalkFiles([]SourceFile{{File: f, ModuleSym: runtimeModSym}})

	assert.Same(t, stringSym, stringDecl.Sym.(*sym.Symbol), "`string` should bind to the pre-existing handle")
	assert.Same(t, errorSym, errorDecl.Sym.(*sym.Symbol), "`Error` should bind to the pre-existing handle")

	vecSym, ok := vecDecl.Sym.(*sym.Symbol)
	require.True(t, ok)
	require.NotNil(t, vecSym)
	assert.Equal(t, "Vec", vecSym.Name, "`Vec` should create a new Type symbol")
	assert.Same(t, vecSym, r.VecSym, "VecSym should be recorded on the registrar")

	// No extra `string`/`Error` symbols were added to the runtime scope.
	seen := map[string]int{}
	for _, id := range g.Scope(runtimeModScope).Order() {
		seen[g.Symbol(id).Name]++
	}
	assert.Equal(t, 1, seen["string"])
}

// A destructor registers as a private unsafe method named `_dtor` taking
// a single `self` argument of the enclosing type and returning void.
func TestDestructorSynthesizesDtorMethod(t *testing.T) {
	r, g, reporter, modSym := newTestRegistrar()

	structDecl := &ast.StructDecl{
		Name: "Buf", Pos_: pos(1),
		Decls: []ast.Decl{
			&ast.DestructorDecl{SelfIsMut: true, Pos_: pos(2)},
		},
	}
	r.WalkFiles([]SourceFile{{File: &ast.File{Decls: []ast.Decl{structDecl}}, ModuleSym: modSym}})

	require.Empty(t, reporter.Reports)

	bufSym := mustLookup(t, g, modSym.OwnScope, "Buf")
	dtor := mustLookup(t, g, bufSym.OwnScope, "_dtor")
	assert.Equal(t, sym.Priv, dtor.Vis)
	require.NotNil(t, dtor.Fn)
	assert.True(t, dtor.Fn.IsMethod)
	assert.True(t, dtor.Fn.IsUnsafe)
	assert.False(t, dtor.Fn.IsExtern)
	assert.True(t, dtor.Fn.HasBody)
	assert.True(t, dtor.Fn.SelfIsMut)
	require.Len(t, dtor.Fn.Args, 1)
	assert.Equal(t, "self", dtor.Fn.Args[0].Name)
	selfType, ok := dtor.Fn.Args[0].Type.(*ast.ResolvedType)
	require.True(t, ok, "self must carry a resolved type handle, not a name to re-look-up")
	assert.Same(t, bufSym, selfType.Sym.(*sym.Symbol))
	assert.Equal(t, 2, dtor.Pos.Line, "the synthesized fn is positioned at the destructor, not the type")
}

// A destructor declared inside an extern "C" block inherits the ambient
// ABI at the point of declaration.
func TestDestructorInheritsAmbientABI(t *testing.T) {
	r, g, reporter, modSym := newTestRegistrar()

	extern := &ast.ExternBlockDecl{
		ABI: ast.CABI, Pos_: pos(1),
		Decls: []ast.Decl{
			&ast.StructDecl{
				Name: "Handle", Pos_: pos(2),
				Decls: []ast.Decl{&ast.DestructorDecl{Pos_: pos(3)}},
			},
		},
	}
	r.WalkFiles([]SourceFile{{File: &ast.File{Decls: []ast.Decl{extern}}, ModuleSym: modSym}})

	require.Empty(t, reporter.Reports)
	handleSym := mustLookup(t, g, modSym.OwnScope, "Handle")
	dtor := mustLookup(t, g, handleSym.OwnScope, "_dtor")
	assert.Equal(t, sym.CABI, dtor.Fn.ABI)
}

// Scope restore after a nested type: declarations following a struct land
// back in the module scope, not the struct's.
func TestScopeRestoresAfterNestedType(t *testing.T) {
	r, g, reporter, modSym := newTestRegistrar()

	f := &ast.File{Decls: []ast.Decl{
		&ast.StructDecl{
			Name: "Inner", Pos_: pos(1),
			Decls: []ast.Decl{
				&ast.FnDecl{Name: "method", IsMethod: true, NamePos: pos(2), Ret: &ast.NamedType{Name: "void"}},
			},
		},
		&ast.FnDecl{Name: "free_fn", NamePos: pos(3), Ret: &ast.NamedType{Name: "void"}},
	}}
	r.WalkFiles([]SourceFile{{File: f, ModuleSym: modSym}})

	require.Empty(t, reporter.Reports)
	innerSym := mustLookup(t, g, modSym.OwnScope, "Inner")
	mustLookup(t, g, innerSym.OwnScope, "method")
	freeFn := mustLookup(t, g, modSym.OwnScope, "free_fn")
	assert.Equal(t, modSym.OwnScope, freeFn.Scope, "free_fn must land in the module scope")

	_, found := g.Scope(modSym.OwnScope).Lookup("method")
	assert.False(t, found, "method must not leak into the module scope")
}

func TestExtendReusesCheckerBoundSymbolWithoutLookup(t *testing.T) {
	r, g, reporter, modSym := newTestRegistrar()

	target, _, err := g.AddType(modSym.OwnScope, sym.Pub, "Known", sym.Struct, &sym.TypeData{
		Struct: &sym.StructInfo{},
	}, pos(1))
	require.NoError(t, err)

	ext := &ast.ExtendDecl{
		Target:      &ast.TupleType{}, // would be invalid, but the bound symbol wins outright
		ResolvedSym: target,
		Decls: []ast.Decl{
			&ast.FnDecl{Name: "added", IsMethod: true, NamePos: pos(3), Ret: &ast.NamedType{Name: "void"}},
		},
		Pos_: pos(2),
	}
	r.WalkFiles([]SourceFile{{File: &ast.File{Decls: []ast.Decl{ext}}, ModuleSym: modSym}})

	require.Empty(t, reporter.Reports)
	mustLookup(t, g, target.OwnScope, "added")
}

func mustLookup(t *testing.T, g *sym.Graph, scope sym.ID, name string) *sym.Symbol {
	t.Helper()
	id, ok := g.Scope(scope).Lookup(name)
	require.True(t, ok, "symbol %q not found in scope", name)
	return g.Symbol(id)
}
